package elink

import (
	"time"
)

// Config holds the settings for a Session.
type Config struct {
	// Dialer opens the byte transport to the module. Required.
	Dialer Dialer
	// ATTimeout is the default per-command response deadline, applied
	// when the caller's context carries none.
	ATTimeout time.Duration
	// ConnectTimeout is the deadline for the blocking CONNECT command,
	// which covers a full TLS handshake on the module side.
	ConnectTimeout time.Duration
	// InitTimeout bounds the self-test during New.
	InitTimeout time.Duration
	// EventQueueSize is the capacity of the asynchronous event queue.
	// The oldest unconsumed event is evicted when it overflows.
	EventQueueSize int
	// SelfTestRetries is the number of liveness probes attempted during
	// New before giving up.
	SelfTestRetries int
}

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.ATTimeout == 0 {
		c.ATTimeout = 5 * time.Second
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 2 * time.Minute
	}
	if c.InitTimeout == 0 {
		c.InitTimeout = 30 * time.Second
	}
	if c.EventQueueSize == 0 {
		c.EventQueueSize = 32
	}
	if c.SelfTestRetries == 0 {
		c.SelfTestRetries = 5
	}
}

// ConfigBuilder assembles a Config fluently.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

func (b *ConfigBuilder) WithATTimeout(d time.Duration) *ConfigBuilder {
	b.config.ATTimeout = d
	return b
}

func (b *ConfigBuilder) WithConnectTimeout(d time.Duration) *ConfigBuilder {
	b.config.ConnectTimeout = d
	return b
}

func (b *ConfigBuilder) WithInitTimeout(d time.Duration) *ConfigBuilder {
	b.config.InitTimeout = d
	return b
}

func (b *ConfigBuilder) WithEventQueueSize(n int) *ConfigBuilder {
	b.config.EventQueueSize = n
	return b
}

// Build validates the assembled Config and applies defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	if err := b.config.validate(); err != nil {
		return Config{}, err
	}
	config := b.config
	config.setDefaults()
	return config, nil
}
