package elink

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"
)

// Compile-time interface checks for the transport doubles.
var (
	_ Transport = (*TestTransport)(nil)
	_ Transport = (*MockTransport)(nil)
	_ Dialer    = TestDialer{}
	_ Dialer    = (*MockDialer)(nil)
	_ Dialer    = SerialDialer{}
	_ Dialer    = (DialerFunc)(nil)
)

func TestSerialDialerValidation(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		var nilCtx context.Context
		_, err := SerialDialer{PortName: "/dev/ttyUSB0"}.Dial(nilCtx)
		if err == nil || err.Error() != "elink: context is nil" {
			t.Errorf("expected nil-context error, got %v", err)
		}
	})

	t.Run("missing port name", func(t *testing.T) {
		_, err := SerialDialer{}.Dial(context.Background())
		if err == nil || err.Error() != "elink: serial port name is required" {
			t.Errorf("expected missing-port error, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := SerialDialer{PortName: "/dev/ttyUSB0"}.Dial(ctx)
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("nonexistent port", func(t *testing.T) {
		_, err := SerialDialer{PortName: "/dev/nonexistent-port"}.Dial(context.Background())
		if err == nil {
			t.Error("expected open failure for nonexistent port")
		}
	})
}

func TestMockDialerDial(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := NewMockTransport(ctrl)
	dialer := NewMockDialer(ctrl)
	dialer.EXPECT().Dial(gomock.Any()).Return(transport, nil)

	got, err := dialer.Dial(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != transport {
		t.Error("expected the mock transport back")
	}
}

func TestDialerFunc(t *testing.T) {
	transport := NewTestTransport()
	defer transport.Close()

	d := DialerFunc(func(ctx context.Context) (Transport, error) {
		return transport, nil
	})
	got, err := d.Dial(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Transport(transport) {
		t.Error("expected the wrapped transport back")
	}
}
