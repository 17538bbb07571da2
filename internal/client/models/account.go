package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleStudent is the only role assigned by this client on signup.
const RoleStudent = "student"

// Account is the provider's view of a user as returned to the client.
// Credentials are never part of it.
type Account struct {
	ID               uuid.UUID
	Email            string
	Phone            string
	Name             string
	Role             string
	EmailConfirmedAt *time.Time
	PhoneConfirmedAt *time.Time
	CreatedAt        time.Time
}

// ConfirmedVia reports whether the account has a confirmation timestamp for ch.
func (a *Account) ConfirmedVia(ch Channel) bool {
	if a == nil {
		return false
	}
	if ch == ChannelPhone {
		return a.PhoneConfirmedAt != nil
	}
	return a.EmailConfirmedAt != nil
}

// Confirmed reports whether any channel has been confirmed.
func (a *Account) Confirmed() bool {
	return a.ConfirmedVia(ChannelEmail) || a.ConfirmedVia(ChannelPhone)
}

// Session is an authenticated session issued by the provider.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Account      *Account
}

// Expired reports whether the access token is past its expiry at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}
