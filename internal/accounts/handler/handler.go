package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/judydsp/provabruno/internal/accounts/models"
	"github.com/judydsp/provabruno/internal/platform/middleware"
	regmodels "github.com/judydsp/provabruno/internal/registration/models"
	dErrors "github.com/judydsp/provabruno/pkg/domain-errors"
	"github.com/judydsp/provabruno/pkg/platform/httputil"
)

const maxBodyBytes = 16 << 10

// Service defines the account operations the handler needs.
type Service interface {
	Register(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error)
}

// Handler serves the registration endpoint.
type Handler struct {
	accounts Service
	logger   *slog.Logger
}

func New(accounts Service, logger *slog.Logger) *Handler {
	return &Handler{accounts: accounts, logger: logger}
}

// Register mounts the routes on r.
func (h *Handler) Register(r chi.Router) {
	accountsRouter := chi.NewRouter()
	accountsRouter.Use(middleware.Recovery(h.logger))
	accountsRouter.Use(chimw.RequestID)
	accountsRouter.Use(middleware.Logger(h.logger))
	accountsRouter.Use(chimw.Timeout(30 * time.Second))
	accountsRouter.Post("/usuarios", h.handleCreateAccount)

	r.Mount("/", accountsRouter)
}

func (h *Handler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(r)

	var req models.CreateAccountRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create account request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := validateCreateAccountRequest(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	account, err := h.accounts.Register(ctx, req)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeConflict) && !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "failed to create account",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, models.CreateAccountResponse{
		ID:       account.ID.String(),
		Mensagem: regmodels.MessageSuccess,
	})
}

// validateCreateAccountRequest rejects bodies that are missing fields or too
// large before any hashing happens. The email shape rule lives in the
// service. bcrypt only reads the first 72 bytes.
func validateCreateAccountRequest(req models.CreateAccountRequest) error {
	if !govalidator.StringLength(req.Email, "3", "254") {
		return dErrors.New(dErrors.CodeInvalidInput, regmodels.MessageInvalidEmail)
	}
	if !govalidator.ByteLength(req.Senha, "1", "72") {
		return dErrors.New(dErrors.CodeInvalidInput, "senha must be between 1 and 72 bytes")
	}
	return nil
}
