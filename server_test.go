package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ablareau/elgw/elink"
)

// stubSession is a canned moduleSession for handler tests.
type stubSession struct {
	connectErr error
	status     elink.Status
	statusErr  error
	publishErr error

	published []struct {
		topicIndex int
		payload    string
	}
	events  []elink.Event
	pollErr error
}

func (s *stubSession) Connect(ctx context.Context) error { return s.connectErr }

func (s *stubSession) Status(ctx context.Context) (elink.Status, error) {
	return s.status, s.statusErr
}

func (s *stubSession) Publish(ctx context.Context, topicIndex int, payload string) error {
	if s.publishErr != nil {
		return s.publishErr
	}
	s.published = append(s.published, struct {
		topicIndex int
		payload    string
	}{topicIndex, payload})
	return nil
}

func (s *stubSession) PollEvent(ctx context.Context) (elink.Event, bool, error) {
	if s.pollErr != nil {
		return elink.Event{}, false, s.pollErr
	}
	if len(s.events) == 0 {
		return elink.Event{}, false, nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true, nil
}

func newTestServer(session moduleSession) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(logger, session)
}

func TestHandleConnect(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := newTestServer(&stubSession{})
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/connect", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("module failure", func(t *testing.T) {
		server := newTestServer(&stubSession{connectErr: errors.New("ERR 14 UNABLE TO CONNECT")})
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/connect", nil))

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		server := newTestServer(&stubSession{})
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/connect", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestHandlePublish(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		session := &stubSession{}
		server := newTestServer(session)
		body := strings.NewReader(`{"topic_index": 2, "message": "hello"}`)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/publish", body))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		if len(session.published) != 1 {
			t.Fatalf("expected 1 publish, got %d", len(session.published))
		}
		if session.published[0].topicIndex != 2 || session.published[0].payload != "hello" {
			t.Errorf("unexpected publish call: %+v", session.published[0])
		}
	})

	t.Run("missing message", func(t *testing.T) {
		server := newTestServer(&stubSession{})
		body := strings.NewReader(`{"topic_index": 2}`)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/publish", body))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := newTestServer(&stubSession{})
		body := strings.NewReader(`{"topic_index": `)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/publish", body))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("module failure", func(t *testing.T) {
		server := newTestServer(&stubSession{publishErr: errors.New("ERR 1 not connected")})
		body := strings.NewReader(`{"topic_index": 1, "message": "hello"}`)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/publish", body))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestHandleStatus(t *testing.T) {
	server := newTestServer(&stubSession{status: elink.Status{Connected: true}})
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var status map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !status["connected"] || status["onboarded"] {
		t.Errorf("unexpected status payload: %v", status)
	}
}

func TestHandleEvents(t *testing.T) {
	t.Run("drains queue in order", func(t *testing.T) {
		session := &stubSession{events: []elink.Event{
			{Code: elink.EventConnect, Param: 0, Mnemonic: "CONNECT"},
			{Code: elink.EventMsg, Param: 1, Mnemonic: "MSG"},
		}}
		server := newTestServer(session)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var events []struct {
			Code     int    `json:"code"`
			Param    int    `json:"param"`
			Mnemonic string `json:"mnemonic"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Mnemonic != "CONNECT" || events[1].Mnemonic != "MSG" {
			t.Errorf("events out of order: %v", events)
		}
	})

	t.Run("empty queue yields empty list", func(t *testing.T) {
		server := newTestServer(&stubSession{})
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Errorf("expected empty JSON list, got %q", body)
		}
	})

	t.Run("poll failure", func(t *testing.T) {
		server := newTestServer(&stubSession{pollErr: errors.New("transport gone")})
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})
}
