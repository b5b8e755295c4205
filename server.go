package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/ablareau/elgw/elink"
)

// moduleSession is the slice of the elink.Session API the HTTP layer
// needs. Narrowed to an interface so handlers can be tested against a
// stub.
type moduleSession interface {
	Connect(ctx context.Context) error
	Status(ctx context.Context) (elink.Status, error)
	Publish(ctx context.Context, topicIndex int, payload string) error
	PollEvent(ctx context.Context) (elink.Event, bool, error)
}

// Server handles incoming HTTP requests for interacting with the
// module session.
//
// The session core performs no internal locking, so the server holds
// one mutex and serializes every command cycle through it.
type Server struct {
	logger  *slog.Logger
	session moduleSession

	mu sync.Mutex
}

func NewServer(logger *slog.Logger, session moduleSession) *Server {
	return &Server{logger: logger, session: session}
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /connect", s.handleConnect)
	mux.HandleFunc("POST /publish", s.handlePublish)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// handleConnect brings up the module's cloud connection
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.session.Connect(r.Context())
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to connect", "error", err)
		s.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.logger.Info("Module connected")
	w.WriteHeader(http.StatusOK)
}

// handlePublish sends a message on a bound topic index
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	type PublishRequest struct {
		TopicIndex int    `json:"topic_index"`
		Message    string `json:"message"`
	}

	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Message == "" {
		s.sendError(w, "'message' field is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.session.Publish(r.Context(), req.TopicIndex, req.Message)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to publish", "error", err, "topic_index", req.TopicIndex)
		s.sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Info("Message published", "topic_index", req.TopicIndex, "message_length", len(req.Message))
	w.WriteHeader(http.StatusOK)
}

// handleStatus reports the module's connection state
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status, err := s.session.Status(r.Context())
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to query status", "error", err)
		s.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.sendJSON(w, map[string]bool{
		"connected": status.Connected,
		"onboarded": status.Onboarded,
	})
}

// handleEvents drains pending module events, oldest first
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	type EventResponse struct {
		Code     int    `json:"code"`
		Param    int    `json:"param"`
		Mnemonic string `json:"mnemonic"`
		Detail   string `json:"detail,omitempty"`
	}

	events := []EventResponse{}
	s.mu.Lock()
	for {
		ev, ok, err := s.session.PollEvent(r.Context())
		if err != nil {
			s.mu.Unlock()
			s.logger.Error("Failed to poll events", "error", err)
			s.sendError(w, err.Error(), http.StatusBadGateway)
			return
		}
		if !ok {
			break
		}
		events = append(events, EventResponse{
			Code:     int(ev.Code),
			Param:    ev.Param,
			Mnemonic: ev.Mnemonic,
			Detail:   ev.Detail,
		})
	}
	s.mu.Unlock()

	s.sendJSON(w, events)
}
