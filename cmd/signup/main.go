// Command signup is a terminal front end for the registration form. It
// prompts for email, password and confirmation, shows inline validation
// messages, and submits once the form is valid.
package main

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var secret func() ([]byte, error)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		secret = func() ([]byte, error) { return term.ReadPassword(fd) }
	}

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, secret))
}
