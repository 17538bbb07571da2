package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_ExactlyOneVariant(t *testing.T) {
	email := EmailIdentity("  t@x.com ")
	require.Equal(t, ChannelEmail, email.Channel())
	require.Equal(t, "t@x.com", email.Value())

	v, ok := email.Email()
	require.True(t, ok)
	require.Equal(t, "t@x.com", v)
	_, ok = email.Phone()
	require.False(t, ok)
	require.Equal(t, map[string]string{"email": "t@x.com"}, email.Fields())

	phone := PhoneIdentity("+263 77 000 0000")
	_, ok = phone.Email()
	require.False(t, ok)
	v, ok = phone.Phone()
	require.True(t, ok)
	require.Equal(t, "+263 77 000 0000", v)
	require.Equal(t, map[string]string{"phone": "+263 77 000 0000"}, phone.Fields())
}

func TestIdentity_ZeroValueIsEmptyEmail(t *testing.T) {
	var id Identity
	assert.Equal(t, ChannelEmail, id.Channel())
	assert.True(t, id.Empty())
}

func TestNewIdentity_FollowsChannel(t *testing.T) {
	assert.Equal(t, ChannelPhone, NewIdentity(ChannelPhone, "1").Channel())
	assert.Equal(t, ChannelEmail, NewIdentity(ChannelEmail, "a@b").Channel())
	assert.True(t, NewIdentity(ChannelPhone, "   ").Empty())
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		in      string
		want    Channel
		wantErr bool
	}{
		{in: "email", want: ChannelEmail},
		{in: " Phone ", want: ChannelPhone},
		{in: "sms", want: ChannelPhone},
		{in: "e", want: ChannelEmail},
		{in: "fax", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChannel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAccount_ConfirmedVia(t *testing.T) {
	now := time.Now()
	a := &Account{EmailConfirmedAt: &now}

	assert.True(t, a.ConfirmedVia(ChannelEmail))
	assert.False(t, a.ConfirmedVia(ChannelPhone))
	assert.True(t, a.Confirmed())

	var nilAcc *Account
	assert.False(t, nilAcc.ConfirmedVia(ChannelEmail))
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&Session{}).Expired(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Minute)}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now}).Expired(now))

	var s *Session
	assert.False(t, s.Expired(now))
}

func TestHomeworkStatus_Valid(t *testing.T) {
	assert.True(t, HomeworkAll.Valid())
	assert.True(t, HomeworkOverdue.Valid())
	assert.False(t, HomeworkStatus("done").Valid())
}
