package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stocklens/go-inventory-client/internal/utils"
)

// ErrSessionExpired is returned when a request is rejected as unauthorized
// and no usable refresh token remains, or when the refresh attempt itself
// fails. It is always accompanied by session teardown.
var ErrSessionExpired = errors.New("session expired")

// RequestError is any non-2xx response other than a terminal 401. Message is
// pulled from the response body when one can be parsed.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// genericErrorMessage is the fallback when a failure body carries nothing
// readable. Matches the message the dashboard shows.
const genericErrorMessage = "an error occurred while fetching data"

// newRequestError extracts a human-readable message from an error body.
// The API answers either {"message": ...}, {"detail": ...} or a Django-style
// field-error object {"field": ["msg", ...], ...}.
func newRequestError(status int, body []byte) *RequestError {
	return &RequestError{Status: status, Message: errorMessage(body)}
}

func errorMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return genericErrorMessage
	}

	if msg, ok := payload["message"].(string); ok && msg != "" {
		return msg
	}
	if msg, ok := payload["detail"].(string); ok && msg != "" {
		return msg
	}

	if msg := FlattenFieldErrors(payload); msg != "" {
		return msg
	}
	return genericErrorMessage
}

// FlattenFieldErrors aggregates a field-error object into a single message,
// fields in stable order, messages in server order.
func FlattenFieldErrors(payload map[string]any) string {
	fields := make([]string, 0, len(payload))
	for field := range payload {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var messages []string
	for _, field := range fields {
		switch v := payload[field].(type) {
		case []any:
			messages = append(messages, utils.ToStringSlice(v)...)
		case string:
			messages = append(messages, v)
		}
	}
	return strings.Join(messages, ", ")
}
