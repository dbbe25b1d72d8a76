package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/judydsp/provabruno/internal/platform/config"
	"github.com/judydsp/provabruno/internal/platform/logger"
	"github.com/judydsp/provabruno/internal/registration/client"
	"github.com/judydsp/provabruno/internal/registration/form"
	"github.com/judydsp/provabruno/internal/registration/metrics"
	"github.com/judydsp/provabruno/internal/registration/models"
	"github.com/judydsp/provabruno/internal/registration/validation"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// run drives one form session. secret reads a masked line from a terminal;
// nil means plain line reads.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, secret func() ([]byte, error)) int {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	showPassword := fs.Bool("show-password", false, "echo passwords while typing")
	attempts := fs.Int("attempts", 3, "prompt rounds before giving up on an invalid form")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.ClientFromEnv()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	log := logger.NewWithWriter(stderr, cfg.LogLevel)
	m := metrics.New(prometheus.NewRegistry())

	c := form.New(
		client.New(cfg.APIURL,
			client.WithTimeout(cfg.HTTPTimeout),
			client.WithLogger(log),
			client.WithMetrics(m),
		),
		form.WithLogger(log),
		form.WithMetrics(m),
	)
	if *showPassword {
		c.TogglePasswordVisibility()
	}
	c.SetEmail(*email)
	c.SetPassword(*password)
	c.SetConfirmPassword(*confirm)

	p := &prompter{in: bufio.NewReader(stdin), out: stdout, secret: secret}
	if err := fill(c, p, *attempts); err != nil {
		printInlineErrors(stdout, c.Fields())
		if !errors.Is(err, errInvalidForm) {
			fmt.Fprintln(stderr, err)
		}
		return exitFailure
	}

	result, err := c.Submit(ctx)
	fmt.Fprintln(stdout, result.Message)
	if err != nil {
		return exitFailure
	}
	c.Reset()
	return exitOK
}

var errInvalidForm = errors.New("form still invalid")

// fill prompts for every failing field until the form is valid or the
// rounds run out. The first round stays quiet about fields nobody typed yet.
func fill(c *form.Controller, p *prompter, rounds int) error {
	for round := 0; !c.IsFormValid(); round++ {
		if round >= rounds {
			return errInvalidForm
		}
		if round > 0 {
			printInlineErrors(p.out, c.Fields())
		}
		flags := c.Flags()
		if flags.EmailError {
			v, err := p.line("Email: ")
			if err != nil {
				return err
			}
			c.SetEmail(v)
		}
		if flags.PasswordError {
			v, err := p.password("Senha: ", c.PasswordVisible())
			if err != nil {
				return err
			}
			c.SetPassword(v)
		}
		if c.Flags().ConfirmError {
			v, err := p.password("Repetir Senha: ", c.PasswordVisible())
			if err != nil {
				return err
			}
			c.SetConfirmPassword(v)
		}
	}
	return nil
}

func printInlineErrors(w io.Writer, f models.Fields) {
	var ve *models.ValidationError
	if !errors.As(validation.Validate(f), &ve) {
		return
	}
	for _, k := range ve.Kinds {
		fmt.Fprintf(w, "  %s\n", k.Message())
	}
}

type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	secret func() ([]byte, error)
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || s == "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *prompter) password(label string, visible bool) (string, error) {
	if visible || p.secret == nil {
		return p.line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := p.secret()
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
