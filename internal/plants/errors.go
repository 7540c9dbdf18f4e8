package plants

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackMessage is used when a failure carries no usable text.
const FallbackMessage = "Request failed"

// RequestError is the single failure kind surfaced by the client: transport
// failures, non-2xx responses and unusable bodies all end up here.
type RequestError struct {
	Op         string // e.g. "GET /api/today"
	StatusCode int    // zero for transport failures
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e == nil {
		return FallbackMessage
	}
	if strings.TrimSpace(e.Message) == "" {
		return FallbackMessage
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Message returns the human-readable text for err, falling back to a generic
// message when err has none.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return FallbackMessage
	}
	return msg
}

// statusError builds the error for a non-2xx response. The message prefers a
// string "detail" or "message" field in a JSON body, then "HTTP <status>".
func statusError(op string, status int, body []byte) *RequestError {
	msg := messageFromBody(body)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &RequestError{Op: op, StatusCode: status, Message: msg}
}

func messageFromBody(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, field := range []string{"detail", "message"} {
		raw, ok := payload[field]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}
