// Package httputil renders JSON responses and domain errors for HTTP handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "github.com/judydsp/provabruno/pkg/domain-errors"
)

// ErrorResponse is the JSON error envelope. Mensagem repeats the description
// because registration clients display that field verbatim.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Mensagem         string `json:"mensagem,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status and envelope. Internal errors never
// expose their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	var description string
	if de, ok := asDomainError(err); ok {
		code = de.Code
		description = de.Message
	}
	status := dErrors.ToHTTPStatus(code)

	resp := ErrorResponse{Error: string(code)}
	if status != http.StatusInternalServerError {
		resp.ErrorDescription = description
		resp.Mensagem = description
	}
	WriteJSON(w, status, resp)
}

func asDomainError(err error) (*dErrors.Error, bool) {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
