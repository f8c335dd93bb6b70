package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Compare with errors.Is; every *Error matches exactly one.
var (
	// ErrConfiguration is returned when the provider selection or its
	// credential is unusable.
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation is returned when a required input is missing or blank.
	ErrValidation = errors.New("validation error")

	// ErrProvider is returned when the remote call fails (transport, auth,
	// quota). The upstream message is kept verbatim.
	ErrProvider = errors.New("provider error")

	// ErrEmptyResponse is returned when the provider replied with blank text.
	ErrEmptyResponse = errors.New("empty response")

	// ErrParse is returned when the reply cannot be decoded into the expected
	// structure.
	ErrParse = errors.New("parse error")
)

// Error carries a failure kind together with the operation that produced it
// and, for validation failures, the offending field.
type Error struct {
	Kind  error
	Op    string
	Field string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	case e.Field != "":
		b.WriteString(e.Field)
		b.WriteString(" is required")
	default:
		b.WriteString(e.Kind.Error())
	}
	return b.String()
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// configError builds a configuration failure with a formatted message.
func configError(format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Err: fmt.Errorf(format, args...)}
}

// providerError wraps an upstream failure, keeping its message.
func providerError(provider string, err error) error {
	return &Error{Kind: ErrProvider, Op: provider, Err: err}
}

// ValidationError reports a missing required input.
func ValidationError(field string) error {
	return &Error{Kind: ErrValidation, Field: field}
}

// EmptyResponseError reports a blank reply from a provider.
func EmptyResponseError() error {
	return &Error{Kind: ErrEmptyResponse, Err: errors.New("received empty response from AI service")}
}

// ParseError reports a reply that could not be decoded.
func ParseError(msg string) error {
	return &Error{Kind: ErrParse, Err: errors.New(msg)}
}

// Kind returns the kind sentinel of err, or nil if err carries none.
func Kind(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}

// FriendlyMessage turns err into a message suitable for end users. It only
// affects presentation; the error kind is never changed.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "401") || strings.Contains(lower, "unauthorized"):
		return "Authentication failed. Please check your API key."
	case strings.Contains(msg, "429") || strings.Contains(lower, "rate limit"):
		return "Rate limit exceeded. Please try again later."
	case strings.Contains(lower, "timeout"):
		return "Request timed out. Please try again."
	}

	if upstream := embeddedErrorMessage(msg); upstream != "" {
		return upstream
	}
	return msg
}

// embeddedErrorMessage digs an upstream `{"error": {"message": ...}}` or
// `{"error": "..."}` body out of an error string.
func embeddedErrorMessage(msg string) string {
	v, ok := ExtractEmbeddedJSON(msg)
	if !ok {
		return ""
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	switch e := obj["error"].(type) {
	case string:
		return e
	case map[string]any:
		if m, ok := e["message"].(string); ok {
			return m
		}
	}
	if m, ok := obj["message"].(string); ok {
		return m
	}
	return ""
}
