package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user as held by the registration service.
type Account struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// CreateAccountRequest mirrors the body sent by registration clients.
type CreateAccountRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// CreateAccountResponse is returned with 201 Created.
type CreateAccountResponse struct {
	ID       string `json:"id"`
	Mensagem string `json:"mensagem"`
}
