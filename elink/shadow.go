package elink

import (
	"context"
	"strconv"
	"strings"
)

// UnnamedShadow selects the classic unnamed device shadow in the shadow
// operations below.
const UnnamedShadow = -1

func shadowCmd(index int) string {
	if index < 0 {
		return "SHADOW"
	}
	return "SHADOW" + strconv.Itoa(index)
}

// ShadowInit initializes communication with the device shadow service
// for the given shadow index. The module confirms asynchronously with a
// SHADOW_INIT or SHADOW_INIT_FAILED event.
func (s *Session) ShadowInit(ctx context.Context, index int) error {
	_, err := s.exec(ctx, shadowCmd(index), "INIT")
	return err
}

// ShadowDoc requests the current shadow document. The document arrives
// asynchronously; retrieve it with ShadowGetDoc after the SHADOW_DOC
// event.
func (s *Session) ShadowDoc(ctx context.Context, index int) error {
	_, err := s.exec(ctx, shadowCmd(index), "DOC")
	return err
}

// ShadowGetDoc retrieves the shadow document requested by ShadowDoc.
func (s *Session) ShadowGetDoc(ctx context.Context, index int) (string, error) {
	return s.shadowFetch(ctx, index, "DOC")
}

// ShadowUpdate requests an update of the shadow's reported state with
// the given JSON document.
func (s *Session) ShadowUpdate(ctx context.Context, index int, state string) error {
	_, err := s.exec(ctx, shadowCmd(index), "UPDATE", state)
	return err
}

// ShadowGetUpdate retrieves the result of the last ShadowUpdate.
func (s *Session) ShadowGetUpdate(ctx context.Context, index int) (string, error) {
	return s.shadowFetch(ctx, index, "UPDATE")
}

// ShadowSubscribe subscribes to delta updates for the shadow.
func (s *Session) ShadowSubscribe(ctx context.Context, index int) error {
	_, err := s.exec(ctx, shadowCmd(index), "SUBSCRIBE")
	return err
}

// ShadowUnsubscribe removes the delta subscription for the shadow.
func (s *Session) ShadowUnsubscribe(ctx context.Context, index int) error {
	_, err := s.exec(ctx, shadowCmd(index), "UNSUBSCRIBE")
	return err
}

// ShadowGetDelta retrieves the delta document announced by a
// SHADOW_DELTA event.
func (s *Session) ShadowGetDelta(ctx context.Context, index int) (string, error) {
	return s.shadowFetch(ctx, index, "DELTA")
}

// ShadowDelete requests deletion of the shadow document.
func (s *Session) ShadowDelete(ctx context.Context, index int) error {
	_, err := s.exec(ctx, shadowCmd(index), "DELETE")
	return err
}

// ShadowGetDelete retrieves the result of the last ShadowDelete.
func (s *Session) ShadowGetDelete(ctx context.Context, index int) (string, error) {
	return s.shadowFetch(ctx, index, "DELETE")
}

func (s *Session) shadowFetch(ctx context.Context, index int, what string) (string, error) {
	resp, err := s.exec(ctx, shadowCmd(index), "GET", what)
	if err != nil {
		return "", err
	}
	if len(resp.Lines) > 0 {
		return strings.Join(resp.Lines, "\n"), nil
	}
	return strings.Join(resp.Fields, " "), nil
}
