// Package client contains the client-side contracts for the hosted backend
// used by ZivoHub, and their implementations.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts for the two external collaborators:
//     AuthService (signup, password sign-in, current user, verification
//     resend, health) and DataStore (query and insert of records).
//  2. A concrete REST implementation (see RESTClient) speaking the
//     Supabase-compatible auth and data endpoints over HTTPS. It keeps the
//     current session in memory, attaches the access token to requests and
//     refreshes it once it has expired.
//
// # Error Handling
//
// Transport failures (no network, timeouts, gateway errors) are reported as
// ErrUnavailable. Provider rejections are reported as *ServiceError carrying
// the provider's message verbatim; 401/403 responses also match
// ErrUnauthorized with errors.Is.
//
// Concurrency & Contexts
//
// RESTClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
