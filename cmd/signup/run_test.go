package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judydsp/provabruno/internal/registration/models"
)

type fakeService struct {
	status int
	calls  atomic.Int32

	mu   sync.Mutex
	last models.RegisterRequest
}

func (f *fakeService) lastRequest() models.RegisterRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *fakeService) start(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		var req models.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.last = req
		f.mu.Unlock()
		w.WriteHeader(f.status)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("SIGNUP_API_URL", srv.URL)
}

func runWith(t *testing.T, args []string, stdin string, secret func() ([]byte, error)) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, secret)
	return code, stdout.String()
}

func TestRunWithFlags(t *testing.T) {
	svc := &fakeService{status: http.StatusCreated}
	svc.start(t)

	code, out := runWith(t, []string{"-email", "a@b.com", "-password", "Abcdef1!", "-confirm", "Abcdef1!"}, "", nil)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, models.MessageSuccess)
	assert.Equal(t, int32(1), svc.calls.Load())
	assert.Equal(t, models.RegisterRequest{Email: "a@b.com", Senha: "Abcdef1!"}, svc.lastRequest())
}

func TestRunPromptsAndReportsConflict(t *testing.T) {
	svc := &fakeService{status: http.StatusConflict}
	svc.start(t)

	code, out := runWith(t, nil, "a@b.com\nAbcdef1!\nAbcdef1!\n", nil)

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "Repetir Senha: ")
	assert.Contains(t, out, models.MessageConflict)
}

func TestRunReasksOnlyFailingFields(t *testing.T) {
	svc := &fakeService{status: http.StatusCreated}
	svc.start(t)

	code, out := runWith(t, nil, "not-an-email\nAbcdef1!\nAbcdef1!\na@b.com\n", nil)

	require.Equal(t, exitOK, code)
	assert.Contains(t, out, models.MessageInvalidEmail)
	assert.Equal(t, 2, strings.Count(out, "Email: "))
	assert.Equal(t, 1, strings.Count(out, "Repetir Senha: "))
	assert.Equal(t, "a@b.com", svc.lastRequest().Email)
}

func TestRunInvalidFormNeverSubmits(t *testing.T) {
	svc := &fakeService{status: http.StatusCreated}
	svc.start(t)

	code, out := runWith(t, []string{"-email", "teste@test.com", "-password", "abcdefgh", "-confirm", "abcdefg"}, "", nil)

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, out, models.MessageInvalidEmail)
	assert.Contains(t, out, models.MessageWeakPassword)
	assert.Contains(t, out, models.MessageConfirmationMismatch)
	assert.Equal(t, int32(0), svc.calls.Load())
}

func TestRunReadsMaskedPasswords(t *testing.T) {
	svc := &fakeService{status: http.StatusCreated}
	svc.start(t)
	var secretReads int
	secret := func() ([]byte, error) {
		secretReads++
		return []byte("Abcdef1!"), nil
	}

	code, _ := runWith(t, []string{"-email", "a@b.com"}, "", secret)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, 2, secretReads)
}

func TestRunShowPasswordBypassesMasking(t *testing.T) {
	svc := &fakeService{status: http.StatusCreated}
	svc.start(t)
	secret := func() ([]byte, error) {
		t.Fatal("masked reader must not be used when passwords are visible")
		return nil, nil
	}

	code, _ := runWith(t, []string{"-show-password", "-email", "a@b.com"}, "Abcdef1!\nAbcdef1!\n", secret)

	assert.Equal(t, exitOK, code)
}

func TestRunUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	t.Setenv("SIGNUP_API_URL", srv.URL)

	code, out := runWith(t, []string{"-email", "a@b.com", "-password", "Abcdef1!", "-confirm", "Abcdef1!"}, "", nil)

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, out, models.MessageNetworkFailure)
}

func TestRunBadFlag(t *testing.T) {
	code, _ := runWith(t, []string{"-nope"}, "", nil)
	assert.Equal(t, exitUsage, code)
}
