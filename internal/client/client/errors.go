package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/zivohub/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("no active session")
	ErrBadResponse  = errors.New("unexpected response from server")
)

// ServiceError is an error reported by the provider. Message is passed
// through verbatim so it can be shown to the user.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap lets callers match auth rejections with errors.Is(err, ErrUnauthorized)
// and missing resources with errors.Is(err, common.ErrorNotFound).
func (e *ServiceError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	}
	return nil
}
