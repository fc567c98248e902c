package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned for a non-2xx response. Message is the backend's
// "error" field when the body carries one.
type StatusError struct {
	Op      string
	Code    int
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(string(e.Body))
	}
	if msg == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Code, msg)
}
