// Package common contains shared constants, sentinel errors and small
// helpers used across ZivoHub components.
package common

// ApplicationName is shown in the CLI banner and sent as the client info header.
const ApplicationName = "ZivoHub"

// Header names used on outbound requests to the hosted provider.
const (
	APIKeyHeaderName        = "apikey"
	AuthorizationHeaderName = "Authorization"
	ClientInfoHeaderName    = "X-Client-Info"
	PreferHeaderName        = "Prefer"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6
