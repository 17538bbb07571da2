// Package services contains application services for the ZivoHub client.
// This file defines AccountFlow: signup, confirmation and login on top of a
// hosted AuthService.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/zivohub/internal/client/client"
	"github.com/dmitrijs2005/zivohub/internal/client/models"
	"github.com/dmitrijs2005/zivohub/internal/clock"
	"github.com/dmitrijs2005/zivohub/internal/common"
	"github.com/dmitrijs2005/zivohub/internal/logging"
)

const (
	// DefaultCooldownTicks is the resend cooldown length in ticks.
	DefaultCooldownTicks = 60
	cooldownTick         = time.Second
)

// State is the position of an AccountFlow in
// Unauthenticated -> PendingConfirmation -> Authenticated.
type State int

const (
	StateUnauthenticated State = iota
	StatePendingConfirmation
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StatePendingConfirmation:
		return "pending_confirmation"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// PendingConfirmation is the in-memory record of a signup awaiting
// out-of-band verification.
type PendingConfirmation struct {
	Identity models.Identity
	// Channel is where the verification was dispatched.
	Channel models.Channel
	Account *models.Account
}

// SignupRequest carries the signup form. Password and ConfirmPassword are
// zeroed once Signup returns.
type SignupRequest struct {
	Name            string
	Identity        models.Identity
	Password        []byte
	ConfirmPassword []byte
}

// LoginRequest carries the login form. Password is zeroed once Login returns.
type LoginRequest struct {
	Identity models.Identity
	Password []byte
}

// sessionSource is implemented by AuthService clients that keep the
// provider-issued session (e.g. *client.RESTClient).
type sessionSource interface {
	Session() (*models.Session, bool)
}

// FlowOption configures an AccountFlow.
type FlowOption func(*AccountFlow)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) FlowOption {
	return func(f *AccountFlow) { f.log = l }
}

// WithClock replaces the clock driving the resend cooldown.
func WithClock(c clock.Clock) FlowOption {
	return func(f *AccountFlow) { f.clock = c }
}

// WithCooldownTicks sets the resend cooldown length (one tick per second).
func WithCooldownTicks(n int) FlowOption {
	return func(f *AccountFlow) {
		if n > 0 {
			f.cooldownTicks = n
		}
	}
}

// AccountFlow owns the signup -> confirmation -> login transitions for one
// user. Each action has its own busy flag: a second call of an action that
// is still in flight fails with ErrBusy and never reaches the AuthService.
type AccountFlow struct {
	auth          client.AuthService
	log           logging.Logger
	clock         clock.Clock
	cooldownTicks int
	cooldown      *Cooldown

	mu      sync.Mutex
	state   State
	pending *PendingConfirmation
	session *models.Session

	signupBusy atomic.Bool
	checkBusy  atomic.Bool
	resendBusy atomic.Bool
	loginBusy  atomic.Bool
}

// NewAccountFlow returns an AccountFlow in the Unauthenticated state bound
// to the given AuthService.
func NewAccountFlow(auth client.AuthService, opts ...FlowOption) *AccountFlow {
	f := &AccountFlow{
		auth:          auth,
		log:           logging.Nop(),
		clock:         clock.New(),
		cooldownTicks: DefaultCooldownTicks,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.cooldown = NewCooldown(f.clock, cooldownTick)
	return f
}

// Signup validates the form locally and, when valid, registers the account
// with metadata {name, role: "student"}. On success the flow moves to
// PendingConfirmation carrying the submitted contact value.
//
// Errors: *ValidationError (no network call made), *client.ServiceError
// (provider message verbatim), *ConnectivityError, ErrBusy,
// ErrAlreadyAuthenticated.
func (f *AccountFlow) Signup(ctx context.Context, req SignupRequest) error {
	defer common.WipeAll(req.Password, req.ConfirmPassword)

	if !f.signupBusy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer f.signupBusy.Store(false)

	if f.State() == StateAuthenticated {
		return ErrAlreadyAuthenticated
	}

	if err := validateSignup(req); err != nil {
		f.log.Debug(ctx, "signup rejected", "field", err.Field)
		return err
	}

	ch := req.Identity.Channel()
	metadata := map[string]string{
		"name": strings.TrimSpace(req.Name),
		"role": models.RoleStudent,
	}

	account, err := f.auth.SignUp(ctx, req.Identity, req.Password, metadata)
	if err != nil {
		f.log.Warn(ctx, "signup failed", "channel", ch, "error", err)
		return classify(err)
	}

	f.cooldown.Stop()

	f.mu.Lock()
	f.state = StatePendingConfirmation
	f.pending = &PendingConfirmation{Identity: req.Identity, Channel: ch, Account: account}
	f.mu.Unlock()

	f.log.Info(ctx, "signup succeeded, awaiting confirmation", "channel", ch)
	return nil
}

func validateSignup(req SignupRequest) *ValidationError {
	if strings.TrimSpace(req.Name) == "" {
		return invalid("name", "Please enter your name")
	}
	if !common.EqualSecret(req.Password, req.ConfirmPassword) {
		return invalid("confirm_password", "Passwords do not match")
	}
	if utf8.RuneCount(req.Password) < common.MinPasswordLength {
		return invalid("password", "Password must be at least 6 characters long")
	}
	if req.Identity.Empty() {
		if req.Identity.Channel() == models.ChannelPhone {
			return invalid("phone", "Please enter a phone number")
		}
		return invalid("email", "Please enter an email address")
	}
	return nil
}

// CheckConfirmed asks the AuthService for the current account and reports
// whether it carries a confirmation timestamp for the pending channel. When
// it does, the flow becomes Authenticated. "Not yet" is (false, nil) and
// leaves the state unchanged, as does any error.
func (f *AccountFlow) CheckConfirmed(ctx context.Context) (bool, error) {
	if !f.checkBusy.CompareAndSwap(false, true) {
		return false, ErrBusy
	}
	defer f.checkBusy.Store(false)

	pending, ok := f.Pending()
	if !ok {
		return false, ErrNoPendingConfirmation
	}

	account, err := f.auth.GetCurrentUser(ctx)
	if err != nil {
		if errors.Is(err, client.ErrNoSession) {
			return false, nil
		}
		f.log.Warn(ctx, "confirmation check failed", "error", err)
		return false, classify(err)
	}
	if !account.ConfirmedVia(pending.Channel) {
		f.log.Debug(ctx, "account not confirmed yet", "channel", pending.Channel)
		return false, nil
	}

	session := &models.Session{Account: account}
	if src, ok := f.auth.(sessionSource); ok {
		if s, ok := src.Session(); ok {
			session = s
			session.Account = account
		}
	}

	f.mu.Lock()
	if f.state != StatePendingConfirmation {
		f.mu.Unlock()
		return false, ErrNoPendingConfirmation
	}
	f.state = StateAuthenticated
	f.pending = nil
	f.session = session
	f.mu.Unlock()

	f.cooldown.Stop()
	f.log.Info(ctx, "account confirmed", "channel", pending.Channel)
	return true, nil
}

// ResendConfirmation re-dispatches the verification for the pending contact
// value. Success starts the resend cooldown; failure leaves it idle.
func (f *AccountFlow) ResendConfirmation(ctx context.Context) error {
	if !f.resendBusy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer f.resendBusy.Store(false)

	pending, ok := f.Pending()
	if !ok {
		return ErrNoPendingConfirmation
	}
	if f.cooldown.Active() {
		return ErrResendCooldown
	}

	if err := f.auth.ResendVerification(ctx, pending.Identity); err != nil {
		f.log.Warn(ctx, "resend failed", "channel", pending.Channel, "error", err)
		return classify(err)
	}

	f.cooldown.Start(f.cooldownTicks)
	f.log.Info(ctx, "verification resent", "channel", pending.Channel, "cooldown", f.cooldownTicks)
	return nil
}

// Login signs in with a password and moves straight to Authenticated.
// Confirmation status is not checked here; an AuthService that refuses
// unconfirmed accounts reports that as a *client.ServiceError.
func (f *AccountFlow) Login(ctx context.Context, req LoginRequest) error {
	defer common.WipeByteArray(req.Password)

	if !f.loginBusy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer f.loginBusy.Store(false)

	if f.State() == StateAuthenticated {
		return ErrAlreadyAuthenticated
	}

	if err := validateLogin(req); err != nil {
		f.log.Debug(ctx, "login rejected", "field", err.Field)
		return err
	}

	ch := req.Identity.Channel()
	session, err := f.auth.SignInWithPassword(ctx, req.Identity, req.Password)
	if err != nil {
		f.log.Warn(ctx, "login failed", "channel", ch, "error", err)
		return classify(err)
	}

	f.mu.Lock()
	f.state = StateAuthenticated
	f.pending = nil
	f.session = session
	f.mu.Unlock()

	f.cooldown.Stop()
	f.log.Info(ctx, "login succeeded", "channel", ch)
	return nil
}

func validateLogin(req LoginRequest) *ValidationError {
	if req.Identity.Empty() {
		if req.Identity.Channel() == models.ChannelPhone {
			return invalid("phone", "phone number required")
		}
		return invalid("email", "email address required")
	}
	if len(req.Password) == 0 {
		return invalid("password", "password required")
	}
	return nil
}

// State returns the current flow state.
func (f *AccountFlow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Pending returns a copy of the pending confirmation, if any.
func (f *AccountFlow) Pending() (PendingConfirmation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		return PendingConfirmation{}, false
	}
	return *f.pending, true
}

// Session returns the authenticated session, if any.
func (f *AccountFlow) Session() (*models.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil, false
	}
	s := *f.session
	return &s, true
}

// ResendRemaining returns the cooldown ticks left before resend is allowed again.
func (f *AccountFlow) ResendRemaining() int {
	return f.cooldown.Remaining()
}

// Close releases the cooldown timer and discards any pending confirmation.
// An established session is kept.
func (f *AccountFlow) Close() {
	f.cooldown.Stop()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StatePendingConfirmation {
		f.state = StateUnauthenticated
		f.pending = nil
	}
}
