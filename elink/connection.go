package elink

import (
	"context"
	"strconv"
	"strings"
)

// Connect establishes the module's connection to the network and the
// cloud endpoint. It blocks until the module reports the outcome, which
// includes a TLS handshake on the module side, so the configured
// ConnectTimeout applies when the context carries no deadline.
func (s *Session) Connect(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok && s.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ConnectTimeout)
		defer cancel()
	}
	_, err := s.exec(ctx, "CONNECT")
	return err
}

// ConnectAsync requests a non-blocking connect (CONNECT!). The module
// acknowledges immediately and reports the outcome later with a CONNECT
// event.
func (s *Session) ConnectAsync(ctx context.Context) error {
	_, err := s.exec(ctx, "CONNECT!")
	return err
}

// Disconnect drops the module's network connection.
func (s *Session) Disconnect(ctx context.Context) error {
	_, err := s.exec(ctx, "DISCONNECT")
	return err
}

// Status is the module's connection state as reported by CONNECT?.
type Status struct {
	// Connected reports an established cloud connection.
	Connected bool
	// Onboarded reports that the module has left the staging account.
	Onboarded bool
}

// Status queries the module's connection state.
func (s *Session) Status(ctx context.Context) (Status, error) {
	resp, err := s.exec(ctx, "CONNECT?")
	if err != nil {
		return Status{}, err
	}
	return Status{
		Connected: resp.Field(0) == "1",
		Onboarded: resp.Field(1) == "1",
	}, nil
}

// Sleep puts the module into a power-saving mode for the given number
// of seconds. Mode selects a vendor-specific sleep mode; leave it empty
// for the default.
func (s *Session) Sleep(ctx context.Context, seconds int, mode string) error {
	_, err := s.exec(ctx, "SLEEP"+mode, strconv.Itoa(seconds))
	return err
}

// Reset reboots the module.
func (s *Session) Reset(ctx context.Context) error {
	_, err := s.exec(ctx, "RESET")
	return err
}

// FactoryReset restores the module to factory state, wiping all
// persisted configuration.
func (s *Session) FactoryReset(ctx context.Context) error {
	_, err := s.exec(ctx, "FACTORY_RESET")
	return err
}

// Confmode puts the module into configuration mode. The default
// advertisement name is used when name is empty.
func (s *Session) Confmode(ctx context.Context, name string) error {
	if name == "" {
		name = "AWS-IoT-ExpressLink"
	}
	_, err := s.exec(ctx, "CONFMODE", name)
	return err
}

// Time returns the module's current time line: {date YYYY/MM/DD}
// {time hh:mm:ss.xx} {source}. Empty when the module has no time source
// yet.
func (s *Session) Time(ctx context.Context) (string, error) {
	resp, err := s.exec(ctx, "TIME?")
	if err != nil {
		return "", err
	}
	return strings.Join(resp.Fields, " "), nil
}

// Where returns the module's location fix line: {date} {time} {lat}
// {long} {elev} {accuracy} {source}.
func (s *Session) Where(ctx context.Context) (string, error) {
	resp, err := s.exec(ctx, "WHERE?")
	if err != nil {
		return "", err
	}
	return strings.Join(resp.Fields, " "), nil
}
