package models

// Fields holds the raw values typed into the registration form.
type Fields struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// Flags are derived from Fields. They are never set directly; see
// validation.Derive.
type Flags struct {
	EmailError    bool
	PasswordError bool
	ConfirmError  bool
	FormValid     bool
}

// SubmissionState tracks one form session's request lifecycle.
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateSuccess    SubmissionState = "success"
	StateFailed     SubmissionState = "failed"
)

// RegisterRequest is the body sent to the registration service.
type RegisterRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// RegisterResponse is the optional body returned by the registration service.
type RegisterResponse struct {
	ID       string `json:"id,omitempty"`
	Mensagem string `json:"mensagem,omitempty"`
}

// Result is what a finished submission surfaces to the user.
type Result struct {
	State   SubmissionState
	Kind    SubmissionKind
	Message string
}

// User-facing messages.
const (
	MessageSuccess              = "Sucesso ao cadastrar"
	MessageConflict             = "Usuario já cadastrado"
	MessageServerFault          = "Um erro inesperado ocorreu"
	MessageNetworkFailure       = "erro de conexão"
	MessageInvalidEmail         = "Email inválido ou bloqueado"
	MessageWeakPassword         = "Senha fraca (mínimo 8 caracteres, 1 maiúscula, 1 número, 1 símbolo)"
	MessageConfirmationMismatch = "As senhas não coincidem"
)
