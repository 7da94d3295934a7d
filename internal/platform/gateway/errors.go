package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RemoteError is a non-success answer from the API. Not-found, conflict and
// every other status share this one type.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// newRemoteError extracts the human-readable "detail" from an error body,
// falling back to "HTTP <status>".
func newRemoteError(status int, body []byte) *RemoteError {
	re := &RemoteError{Status: status, Message: fmt.Sprintf("HTTP %d", status)}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return re
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		if strings.TrimSpace(detail) != "" {
			re.Message = detail
		}
		return re
	}

	// Request validation failures arrive as a list of {"msg": ...} items.
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		var msgs []string
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			re.Message = strings.Join(msgs, "; ")
		}
	}
	return re
}

// Message returns the text a user should see for err.
func Message(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// notified marks an error the user has already been alerted about.
type notified struct {
	err error
}

func (n *notified) Error() string { return n.err.Error() }
func (n *notified) Unwrap() error { return n.err }

// Notified reports whether err, or an error it wraps, was already shown to
// the user by the gateway. Transport failures count as well as API errors.
func Notified(err error) bool {
	var n *notified
	return errors.As(err, &n)
}
