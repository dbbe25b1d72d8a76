// Package form implements the registration form session: field state, flags
// derived from it, and the single request that creates the account.
package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/judydsp/provabruno/internal/registration/metrics"
	"github.com/judydsp/provabruno/internal/registration/models"
	"github.com/judydsp/provabruno/internal/registration/validation"
)

// Submitter sends one registration request to the service.
type Submitter interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
}

// Snapshot is a consistent view of the session for rendering.
type Snapshot struct {
	Fields          models.Fields
	Flags           models.Flags
	State           models.SubmissionState
	Message         string
	PasswordVisible bool
}

// Controller owns one form session. Field setters re-derive every flag under
// the same lock, so a reader never sees flags computed from older values.
type Controller struct {
	mu        sync.Mutex
	submitter Submitter
	logger    *slog.Logger
	metrics   *metrics.Metrics

	fields          models.Fields
	flags           models.Flags
	passwordVisible bool
	state           models.SubmissionState
	message         string
	inFlight        int
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// New returns an empty session.
func New(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		submitter: submitter,
		logger:    slog.New(slog.DiscardHandler),
		state:     models.StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.flags = validation.Derive(c.fields)
	return c
}

func (c *Controller) SetEmail(value string) {
	c.update(func(f *models.Fields) { f.Email = value })
}

func (c *Controller) SetPassword(value string) {
	c.update(func(f *models.Fields) { f.Password = value })
}

func (c *Controller) SetConfirmPassword(value string) {
	c.update(func(f *models.Fields) { f.ConfirmPassword = value })
}

func (c *Controller) update(apply func(*models.Fields)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	apply(&c.fields)
	c.flags = validation.Derive(c.fields)
}

func (c *Controller) Fields() models.Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

func (c *Controller) Flags() models.Flags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags
}

func (c *Controller) IsFormValid() bool {
	return c.Flags().FormValid
}

func (c *Controller) State() models.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Message is the last submission message shown to the user.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Fields:          c.fields,
		Flags:           c.flags,
		State:           c.state,
		Message:         c.message,
		PasswordVisible: c.passwordVisible,
	}
}

// TogglePasswordVisibility flips display masking. Values are untouched.
func (c *Controller) TogglePasswordVisibility() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passwordVisible = !c.passwordVisible
	return c.passwordVisible
}

func (c *Controller) PasswordVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passwordVisible
}

// Submit sends the registration request once. While the form is invalid it
// returns a *models.ValidationError and performs no I/O. A failed request
// returns the populated Result together with the *models.SubmissionError;
// field values are kept so the user can edit and resubmit. Concurrent calls
// are not merged: each one issues its own request.
func (c *Controller) Submit(ctx context.Context) (models.Result, error) {
	c.mu.Lock()
	if !c.flags.FormValid {
		err := validation.Validate(c.fields)
		state := c.state
		c.mu.Unlock()
		c.metrics.IncrementBlocked()
		return models.Result{State: state}, err
	}
	req := models.RegisterRequest{Email: c.fields.Email, Senha: c.fields.Password}
	c.state = models.StateSubmitting
	c.message = ""
	c.inFlight++
	c.mu.Unlock()

	resp, err := c.submitter.Register(ctx, req)

	result := resultFor(resp, err)

	c.mu.Lock()
	c.inFlight--
	if c.inFlight == 0 {
		c.state = result.State
	}
	c.message = result.Message
	c.mu.Unlock()

	if err != nil {
		c.logger.WarnContext(ctx, "registration failed", "kind", string(result.Kind))
		return result, err
	}
	c.logger.InfoContext(ctx, "registration succeeded")
	return result, nil
}

func resultFor(resp *models.RegisterResponse, err error) models.Result {
	if err != nil {
		kind := models.KindOf(err)
		return models.Result{State: models.StateFailed, Kind: kind, Message: kind.Message()}
	}
	msg := models.MessageSuccess
	if resp != nil && resp.Mensagem != "" {
		msg = resp.Mensagem
	}
	return models.Result{State: models.StateSuccess, Message: msg}
}

// InFlight reports how many submissions are awaiting a response.
func (c *Controller) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Acknowledge marks the message as shown and returns the session to Idle
// unless another request is still outstanding.
func (c *Controller) Acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight > 0 {
		return
	}
	c.state = models.StateIdle
}

// Reset discards the session, as when the user navigates away.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = models.Fields{}
	c.flags = validation.Derive(c.fields)
	c.passwordVisible = false
	c.state = models.StateIdle
	c.message = ""
}
