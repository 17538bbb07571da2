package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isPending() bool
	Signup(ctx context.Context) error
	Confirm(ctx context.Context) error
	Resend(ctx context.Context) error
	Login(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Lessons(ctx context.Context) error
	Enroll(ctx context.Context) error
	Homework(ctx context.Context, args []string) error
	Submit(ctx context.Context, args []string) error
	Language(ctx context.Context, args []string) error
}

const (
	helpGuest     = "Available commands: signup, login, lang [code], exit"
	helpPending   = "Available commands: confirm, resend, signup, login, lang [code], exit"
	helpLoggedIn  = "Available commands: dashboard, lessons, enroll, homework [all|pending|submitted|overdue], submit <id> <file>, lang [code], exit"
	unknownPrefix = "Unknown command:"
)

// runREPL starts a read-eval-print loop for the ZivoHub CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - signup         - create an account
//	  - login          - authenticate
//
//	Awaiting confirmation:
//	  - confirm        - check whether the account has been confirmed
//	  - resend         - resend the confirmation (rate limited)
//
//	Logged in:
//	  - dashboard      - greeting and menu
//	  - lessons        - list lessons
//	  - enroll         - enroll in a course
//	  - homework [s]   - list assignments, optionally by status
//	  - submit <id> <file> - submit an attachment
//
//	Always:
//	  - lang [code]    - show or switch the language
//	  - help, exit | quit
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("zh %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isLoggedIn():
				printlnFn(helpLoggedIn)
			case a.isPending():
				printlnFn(helpPending)
			default:
				printlnFn(helpGuest)
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "confirm":
			_ = a.Confirm(ctx)

		case "resend":
			_ = a.Resend(ctx)

		case "login":
			_ = a.Login(ctx)

		case "dashboard", "home":
			_ = a.Dashboard(ctx)

		case "lessons":
			_ = a.Lessons(ctx)

		case "enroll":
			_ = a.Enroll(ctx)

		case "homework", "hw":
			_ = a.Homework(ctx, args)

		case "submit":
			_ = a.Submit(ctx, args)

		case "lang":
			_ = a.Language(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn(unknownPrefix, cmd)
		}

		if err != nil {
			return
		}
	}
}
