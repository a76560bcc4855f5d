package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when credentials or settings are missing.
	ErrConfiguration = errors.New("configuration error")
	// ErrInput is returned for a malformed repository URL or date.
	ErrInput = errors.New("input error")
	// ErrQuery is returned when an API request fails.
	ErrQuery = errors.New("query error")
)

// QueryError describes a failed page request. StatusCode is 0 when no response
// was received (transport failure or timeout).
type QueryError struct {
	Endpoint   string
	Page       int
	StatusCode int
	Body       string
	Err        error
}

func (e *QueryError) Error() string {
	msg := e.Body
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("API request error: %s page %d: status %d: %s", e.Endpoint, e.Page, e.StatusCode, msg)
	}
	return fmt.Sprintf("API request error: %s page %d: %s", e.Endpoint, e.Page, msg)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is makes every QueryError match ErrQuery.
func (e *QueryError) Is(target error) bool { return target == ErrQuery }
