package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/judydsp/provabruno/internal/accounts/models"
	"github.com/judydsp/provabruno/internal/accounts/store"
	"github.com/judydsp/provabruno/internal/platform/metrics"
	regmodels "github.com/judydsp/provabruno/internal/registration/models"
	"github.com/judydsp/provabruno/internal/registration/validation"
	dErrors "github.com/judydsp/provabruno/pkg/domain-errors"
	"github.com/judydsp/provabruno/pkg/email"
	"github.com/judydsp/provabruno/pkg/platform/sentinel"
)

type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

// Service creates accounts. Transport and storage concerns stay outside.
type Service struct {
	accounts   AccountStore
	logger     *slog.Logger
	metrics    *metrics.Metrics
	bcryptCost int
	now        func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(accounts AccountStore, opts ...Option) *Service {
	s := &Service{
		accounts:   accounts,
		logger:     slog.New(slog.DiscardHandler),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register applies the same email and password rules as the form, then
// stores a new account. A taken email yields CodeConflict.
func (s *Service) Register(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error) {
	if !validation.ValidateEmail(req.Email) {
		return nil, dErrors.New(dErrors.CodeValidation, regmodels.MessageInvalidEmail)
	}
	if !validation.ValidatePassword(req.Senha) {
		return nil, dErrors.New(dErrors.CodeValidation, regmodels.MessageWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), s.bcryptCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	first, last := email.DeriveNameFromEmail(req.Email)
	account := &models.Account{
		ID:           uuid.New(),
		Email:        store.NormalizeEmail(req.Email),
		FirstName:    first,
		LastName:     last,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.incrementConflicts()
			s.logger.InfoContext(ctx, "registration refused, email taken")
			return nil, dErrors.New(dErrors.CodeConflict, regmodels.MessageConflict)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
	}

	s.incrementCreated()
	s.logger.InfoContext(ctx, "account created", "account_id", account.ID.String())
	return account, nil
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementAccountsCreated()
	}
}

func (s *Service) incrementConflicts() {
	if s.metrics != nil {
		s.metrics.IncrementConflicts()
	}
}
