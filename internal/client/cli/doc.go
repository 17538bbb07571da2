// Package cli provides the interactive ZivoHub command-line client.
//
// It wires configuration, the hosted backend client, the account flow and
// the lesson/homework services into a REPL. Typical flow: sign up, wait for
// the confirmation (check it with "confirm", "resend" if needed), log in,
// then browse lessons and homework from the dashboard.
//
// Key features:
//   - Signup with email or phone, confirmation check, resend with cooldown
//   - Login with email or phone
//   - Dashboard greeting with online/offline indicator
//   - Lessons list and course enrollment
//   - Homework list with status filter and attachment submission
//   - Language switching (English, Shona, Ndebele)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
