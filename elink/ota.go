package elink

import (
	"context"
	"strconv"
	"strings"
)

// OTACode is the module's over-the-air update state, as reported by the
// OTA? query.
type OTACode int

const (
	// OTANone — no OTA in progress.
	OTANone OTACode = 0
	// OTAUpdateProposed — a module firmware update is proposed; the
	// detail carries the version. Accept or reject it.
	OTAUpdateProposed OTACode = 1
	// OTAHostUpdateProposed — a host image update is proposed; the
	// detail carries operator metadata.
	OTAHostUpdateProposed OTACode = 2
	// OTAInProgress — download and signature verification not yet
	// complete.
	OTAInProgress OTACode = 3
	// OTAModuleImageReady — verified module firmware awaiting reboot.
	OTAModuleImageReady OTACode = 4
	// OTAHostImageReady — verified host image ready to be read; the
	// detail carries its size.
	OTAHostImageReady OTACode = 5
)

// OTAState queries the module's OTA state and the optional detail.
func (s *Session) OTAState(ctx context.Context) (OTACode, string, error) {
	resp, err := s.exec(ctx, "OTA?")
	if err != nil {
		return OTANone, "", err
	}
	code, err := strconv.Atoi(resp.Field(0))
	if err != nil {
		return OTANone, "", ErrMalformed
	}
	detail := strings.Join(resp.Fields[1:], " ")
	return OTACode(code), detail, nil
}

// OTAAccept accepts a proposed OTA update.
func (s *Session) OTAAccept(ctx context.Context) error {
	_, err := s.exec(ctx, "OTA", "ACCEPT")
	return err
}

// OTARead reads up to count bytes of a verified host image from the
// module's OTA buffer.
func (s *Session) OTARead(ctx context.Context, count int) (string, error) {
	resp, err := s.exec(ctx, "OTA", "READ", strconv.Itoa(count))
	if err != nil {
		return "", err
	}
	if len(resp.Lines) > 0 {
		return strings.Join(resp.Lines, "\n"), nil
	}
	return resp.Field(0), nil
}

// OTASeek repositions the OTA read cursor, to the start when address is
// negative.
func (s *Session) OTASeek(ctx context.Context, address int) error {
	var err error
	if address < 0 {
		_, err = s.exec(ctx, "OTA", "SEEK")
	} else {
		_, err = s.exec(ctx, "OTA", "SEEK", strconv.Itoa(address))
	}
	return err
}

// OTAClose ends the OTA operation in progress.
func (s *Session) OTAClose(ctx context.Context) error {
	_, err := s.exec(ctx, "OTA", "CLOSE")
	return err
}

// OTAFlush commits a completed OTA transfer.
func (s *Session) OTAFlush(ctx context.Context) error {
	_, err := s.exec(ctx, "OTA", "FLUSH")
	return err
}
