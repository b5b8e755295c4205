package elink

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Persistent configuration dictionary keys recognized by the module.
// Indexed keys (Topic{n}, Shadow{n}) are formed with their accessors.
const (
	KeyAbout          = "About"
	KeyVersion        = "Version"
	KeyTechSpec       = "TechSpec"
	KeyThingName      = "ThingName"
	KeyCertificate    = "Certificate"
	KeyCustomName     = "CustomName"
	KeyEndpoint       = "Endpoint"
	KeyRootCA         = "RootCA"
	KeyDefenderPeriod = "DefenderPeriod"
	KeyHOTACert       = "HOTAcertificate"
	KeyOTACert        = "OTAcertificate"
	KeySSID           = "SSID"
	KeyPassphrase     = "Passphrase"
	KeyAPN            = "APN"
	KeyQoS            = "QoS"
	KeyEnableShadow   = "EnableShadow"
	KeyShadowToken    = "ShadowToken"
)

// ConfGet reads one key from the module's configuration dictionary.
func (s *Session) ConfGet(ctx context.Context, key string) (string, error) {
	resp, err := s.exec(ctx, "CONF?", key)
	if err != nil {
		return "", fmt.Errorf("get config %s: %w", key, err)
	}
	if len(resp.Lines) > 0 {
		return strings.Join(resp.Lines, "\n"), nil
	}
	return resp.Field(0), nil
}

// ConfSet writes one key in the module's configuration dictionary. The
// value persists across module resets.
func (s *Session) ConfSet(ctx context.Context, key, value string) error {
	if _, err := s.exec(ctx, "CONF", key+"="+value); err != nil {
		return fmt.Errorf("set config %s: %w", key, err)
	}
	return nil
}

// confGetPEM reads a certificate-style key, requesting PEM format.
func (s *Session) confGetPEM(ctx context.Context, key string) (string, error) {
	pem, err := s.ConfGet(ctx, key+" pem")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimPrefix(pem, "pem")), nil
}

func (s *Session) About(ctx context.Context) (string, error) {
	return s.ConfGet(ctx, KeyAbout)
}

func (s *Session) Version(ctx context.Context) (string, error) {
	return s.ConfGet(ctx, KeyVersion)
}

func (s *Session) TechSpec(ctx context.Context) (string, error) {
	return s.ConfGet(ctx, KeyTechSpec)
}

// ThingName is the module's immutable device identity.
func (s *Session) ThingName(ctx context.Context) (string, error) {
	return s.ConfGet(ctx, KeyThingName)
}

// Certificate returns the module's device certificate in PEM form.
func (s *Session) Certificate(ctx context.Context) (string, error) {
	return s.confGetPEM(ctx, KeyCertificate)
}

// RootCA returns the configured root certificate authority in PEM form.
func (s *Session) RootCA(ctx context.Context) (string, error) {
	return s.confGetPEM(ctx, KeyRootCA)
}

func (s *Session) Endpoint(ctx context.Context) (string, error) {
	return s.ConfGet(ctx, KeyEndpoint)
}

func (s *Session) SetEndpoint(ctx context.Context, endpoint string) error {
	return s.ConfSet(ctx, KeyEndpoint, endpoint)
}

func (s *Session) CustomName(ctx context.Context) (string, error) {
	return s.ConfGet(ctx, KeyCustomName)
}

func (s *Session) SetCustomName(ctx context.Context, name string) error {
	return s.ConfSet(ctx, KeyCustomName, name)
}

func (s *Session) SSID(ctx context.Context) (string, error) {
	return s.ConfGet(ctx, KeySSID)
}

func (s *Session) SetSSID(ctx context.Context, ssid string) error {
	return s.ConfSet(ctx, KeySSID, ssid)
}

// SetPassphrase stores the network passphrase. The key is write-only:
// the module refuses to read it back.
func (s *Session) SetPassphrase(ctx context.Context, passphrase string) error {
	return s.ConfSet(ctx, KeyPassphrase, passphrase)
}

func (s *Session) APN(ctx context.Context) (string, error) {
	return s.ConfGet(ctx, KeyAPN)
}

func (s *Session) SetAPN(ctx context.Context, apn string) error {
	return s.ConfSet(ctx, KeyAPN, apn)
}

// DefenderPeriod reads the Device Defender reporting period in seconds;
// 0 means disabled.
func (s *Session) DefenderPeriod(ctx context.Context) (int, error) {
	v, err := s.ConfGet(ctx, KeyDefenderPeriod)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func (s *Session) SetDefenderPeriod(ctx context.Context, seconds int) error {
	return s.ConfSet(ctx, KeyDefenderPeriod, strconv.Itoa(seconds))
}

func (s *Session) SetShadowToken(ctx context.Context, token string) error {
	return s.ConfSet(ctx, KeyShadowToken, token)
}

func (s *Session) QoS(ctx context.Context) (int, error) {
	v, err := s.ConfGet(ctx, KeyQoS)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func (s *Session) SetQoS(ctx context.Context, qos int) error {
	return s.ConfSet(ctx, KeyQoS, strconv.Itoa(qos))
}

func (s *Session) EnableShadow(ctx context.Context, enable bool) error {
	v := "0"
	if enable {
		v = "1"
	}
	return s.ConfSet(ctx, KeyEnableShadow, v)
}

func topicKey(index int) string { return "Topic" + strconv.Itoa(index) }

// Topic reads the topic name bound to a topic index.
func (s *Session) Topic(ctx context.Context, index int) (string, error) {
	return s.ConfGet(ctx, topicKey(index))
}

// SetTopic binds a topic name to a topic index for SEND/GET/SUBSCRIBE.
func (s *Session) SetTopic(ctx context.Context, index int, name string) error {
	return s.ConfSet(ctx, topicKey(index), strings.TrimSpace(name))
}

func shadowKey(index int) string { return "Shadow" + strconv.Itoa(index) }

// ShadowName reads the named-shadow binding of a shadow index.
func (s *Session) ShadowName(ctx context.Context, index int) (string, error) {
	return s.ConfGet(ctx, shadowKey(index))
}

// SetShadowName binds a named shadow to a shadow index.
func (s *Session) SetShadowName(ctx context.Context, index int, name string) error {
	return s.ConfSet(ctx, shadowKey(index), name)
}
