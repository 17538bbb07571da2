// Package models defines client-side data models used by the ZivoHub CLI.
package models

import (
	"fmt"
	"strings"
)

// Channel classifies the contact method used for signup, login and verification.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// ParseChannel maps user input ("email", "phone", "sms") to a Channel.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "email", "e":
		return ChannelEmail, nil
	case "phone", "sms", "p":
		return ChannelPhone, nil
	default:
		return "", fmt.Errorf("unknown channel %q", s)
	}
}

// DeliveryName is the human name of the out-of-band delivery for the channel.
func (c Channel) DeliveryName() string {
	if c == ChannelPhone {
		return "SMS"
	}
	return "email"
}

// Identity is either an email address or a phone number, never both.
// The zero value is an email identity with an empty address.
type Identity struct {
	channel Channel
	value   string
}

// EmailIdentity returns an identity carrying an email address.
func EmailIdentity(email string) Identity {
	return Identity{channel: ChannelEmail, value: strings.TrimSpace(email)}
}

// PhoneIdentity returns an identity carrying a phone number.
func PhoneIdentity(phone string) Identity {
	return Identity{channel: ChannelPhone, value: strings.TrimSpace(phone)}
}

// NewIdentity builds the identity variant selected by ch.
func NewIdentity(ch Channel, value string) Identity {
	if ch == ChannelPhone {
		return PhoneIdentity(value)
	}
	return EmailIdentity(value)
}

// Channel reports which variant the identity holds.
func (i Identity) Channel() Channel {
	if i.channel == "" {
		return ChannelEmail
	}
	return i.channel
}

// Value returns the contact value regardless of variant.
func (i Identity) Value() string { return i.value }

// Empty reports whether the contact value is blank.
func (i Identity) Empty() bool { return i.value == "" }

// Email returns the address when the identity is an email identity.
func (i Identity) Email() (string, bool) {
	if i.Channel() != ChannelEmail {
		return "", false
	}
	return i.value, true
}

// Phone returns the number when the identity is a phone identity.
func (i Identity) Phone() (string, bool) {
	if i.Channel() != ChannelPhone {
		return "", false
	}
	return i.value, true
}

// Fields renders the identity as the single wire field the provider expects:
// {"email": ...} or {"phone": ...}.
func (i Identity) Fields() map[string]string {
	return map[string]string{string(i.Channel()): i.value}
}

func (i Identity) String() string {
	return string(i.Channel()) + ":" + i.value
}
