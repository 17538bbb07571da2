package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/zivohub/internal/client/client"
	"github.com/dmitrijs2005/zivohub/internal/common"
)

var (
	// ErrBusy is returned when the same action is already in flight.
	ErrBusy = errors.New("request already in progress")

	// ErrResendCooldown is returned while the resend cooldown is running.
	ErrResendCooldown = errors.New("resend is not available yet")

	ErrAlreadyAuthenticated  = errors.New("already authenticated")
	ErrNoPendingConfirmation = errors.New("no pending confirmation")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrAttachmentsDisabled   = errors.New("attachment storage is not configured")
)

// ConnectivityMessage is the only text shown to the user when a call could not complete.
const ConnectivityMessage = "Network error. Please check your connection and try again."

// ValidationError is a local, pre-network rejection of user input.
// Message is user facing; Field names the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap makes every validation failure match common.ErrorInvalidArgument.
func (e *ValidationError) Unwrap() error { return common.ErrorInvalidArgument }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// ConnectivityError means the call itself failed. Its message is generic;
// the cause is kept for errors.Is/As and logs only.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string { return ConnectivityMessage }

func (e *ConnectivityError) Unwrap() error { return e.Err }

// classify leaves provider errors untouched and turns everything else
// (transport failures, undecodable responses) into a ConnectivityError.
// Context cancellation is returned as is.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se *client.ServiceError
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &ConnectivityError{Err: err}
}

// UserMessage renders err the way it should be shown to the user:
// validation and provider messages verbatim, everything else generic.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *client.ServiceError
	if errors.As(err, &se) {
		return se.Error()
	}
	var ce *ConnectivityError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	switch {
	case errors.Is(err, ErrBusy), errors.Is(err, ErrResendCooldown),
		errors.Is(err, ErrAlreadyAuthenticated), errors.Is(err, ErrNoPendingConfirmation),
		errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrAttachmentsDisabled):
		return err.Error()
	}
	return fmt.Sprintf("unexpected error: %v", err)
}
