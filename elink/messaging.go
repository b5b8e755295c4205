package elink

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Subscribe binds topicName to the given topic index and subscribes to
// it. The module confirms asynchronously with a SUBACK or SUBNACK
// event.
func (s *Session) Subscribe(ctx context.Context, topicIndex int, topicName string) error {
	if err := s.SetTopic(ctx, topicIndex, topicName); err != nil {
		return err
	}
	_, err := s.exec(ctx, "SUBSCRIBE"+strconv.Itoa(topicIndex))
	return err
}

// Unsubscribe removes the subscription on the given topic index.
func (s *Session) Unsubscribe(ctx context.Context, topicIndex int) error {
	_, err := s.exec(ctx, "UNSUBSCRIBE"+strconv.Itoa(topicIndex))
	return err
}

// Publish sends payload on the topic bound to topicIndex. The payload
// is typically JSON or a base64-encoded blob; delimiter characters are
// escaped on the wire and restored by the module.
func (s *Session) Publish(ctx context.Context, topicIndex int, payload string) error {
	if payload == "" {
		return fmt.Errorf("publish on topic %d: empty payload", topicIndex)
	}
	_, err := s.exec(ctx, "SEND"+strconv.Itoa(topicIndex), payload)
	return err
}

// GetMessage retrieves the pending message on the topic bound to
// topicIndex. ok is false when no message is pending.
func (s *Session) GetMessage(ctx context.Context, topicIndex int) (message string, ok bool, err error) {
	resp, err := s.exec(ctx, "GET"+strconv.Itoa(topicIndex))
	if err != nil {
		return "", false, err
	}
	if len(resp.Lines) == 0 && len(resp.Fields) == 0 {
		return "", false, nil
	}
	if len(resp.Lines) > 0 {
		return strings.Join(resp.Lines, "\n"), true, nil
	}
	return strings.Join(resp.Fields, " "), true, nil
}

// NextMessage retrieves the next pending message on any subscribed
// topic (the unindexed GET form). The module reports the topic name on
// the first continuation line and the message body on the rest.
func (s *Session) NextMessage(ctx context.Context) (topic, message string, ok bool, err error) {
	resp, err := s.exec(ctx, "GET")
	if err != nil {
		return "", "", false, err
	}
	if len(resp.Lines) == 0 {
		return "", "", false, nil
	}
	topic = resp.Lines[0]
	message = strings.Join(resp.Lines[1:], "\n")
	return topic, message, true, nil
}
