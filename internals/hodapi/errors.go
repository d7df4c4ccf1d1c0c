package hodapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// APIError is a backend response with status >= 400.
type APIError struct {
	Method string
	Path   string
	Status int
	Data   map[string]any
	Body   []byte
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	e := &APIError{Method: method, Path: path, Status: status, Body: body}
	var m map[string]any
	if len(body) > 0 && sonic.Unmarshal(body, &m) == nil {
		e.Data = m
	}
	return e
}

func (e *APIError) Error() string {
	if msg := e.backendMessage(); msg != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.Status)
}

// backendMessage follows the precedence data.error, then data.message.
func (e *APIError) backendMessage() string {
	if e.Data == nil {
		return ""
	}
	for _, k := range []string{"error", "message"} {
		if s, ok := e.Data[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// TransportError is a request that never produced a response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a request that ran out of time, either
// on the caller's deadline or the client timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// Message extracts the text to show the user for err: the backend's
// "error" field, then its "message" field, then fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.backendMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusOf(err) == fiber.StatusNotFound
}
