package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.bug.st/serial"

	"github.com/ablareau/elgw/elink"
)

func main() {
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the ExpressLink module")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("at-timeout", "5s", "Per-command response deadline")
	flag.Int("event-queue-size", 32, "Capacity of the asynchronous event queue")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	sessionConfig, err := elink.NewConfigBuilder().
		WithATTimeout(config.ATTimeout).
		WithInitTimeout(30 * time.Second).
		WithEventQueueSize(config.EventQueueSize).
		WithDialer(elink.SerialDialer{
			PortName: config.SerialPort,
			Mode: &serial.Mode{
				BaudRate: config.BaudRate,
				DataBits: 8,
				Parity:   serial.NoParity,
				StopBits: serial.OneStopBit,
			},
		}).
		Build()
	if err != nil {
		logger.Error("Failed to create session config", "error", err)
		os.Exit(1)
	}

	session, err := elink.New(context.Background(), sessionConfig)
	if err != nil {
		logger.Error("Failed to open module session", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting ExpressLink gateway", "serial_port", config.SerialPort)

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: NewServer(
			logger.With("component", "server"),
			session,
		),
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig)

	logger.Info("Closing module session")
	if err := session.Close(); err != nil {
		logger.Error("Failed to close session", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
		os.Exit(1)
	}
}
