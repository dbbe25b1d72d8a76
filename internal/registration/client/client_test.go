package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judydsp/provabruno/internal/registration/metrics"
	"github.com/judydsp/provabruno/internal/registration/models"
)

var validRequest = models.RegisterRequest{Email: "a@b.com", Senha: "Abcdef1!"}

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestRegister(t *testing.T) {
	t.Run("sends email and senha as JSON to /usuarios", func(t *testing.T) {
		var got models.RegisterRequest
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, RegisterPath, r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"u1","mensagem":"Conta criada"}`))
		})

		resp, err := New(srv.URL + "/").Register(context.Background(), validRequest)

		require.NoError(t, err)
		assert.Equal(t, validRequest, got)
		assert.Equal(t, "Conta criada", resp.Mensagem)
		assert.Equal(t, "u1", resp.ID)
	})

	t.Run("any 2xx without a body is success", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		resp, err := New(srv.URL).Register(context.Background(), validRequest)

		require.NoError(t, err)
		assert.Empty(t, resp.Mensagem)
	})

	t.Run("malformed success body is ignored", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{not json`))
		})

		resp, err := New(srv.URL).Register(context.Background(), validRequest)

		require.NoError(t, err)
		assert.Equal(t, &models.RegisterResponse{}, resp)
	})

	t.Run("classifies failures", func(t *testing.T) {
		tests := []struct {
			name   string
			status int
			want   models.SubmissionKind
		}{
			{"conflict", http.StatusConflict, models.Conflict},
			{"internal server error", http.StatusInternalServerError, models.ServerFault},
			{"service unavailable", http.StatusServiceUnavailable, models.ServerFault},
			{"bad request", http.StatusBadRequest, models.ServerFault},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte(`{"mensagem":"server says no"}`))
				})

				resp, err := New(srv.URL).Register(context.Background(), validRequest)

				require.Error(t, err)
				assert.Nil(t, resp)
				var se *models.SubmissionError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.want, se.Kind)
				assert.Equal(t, tt.status, se.StatusCode)
				assert.Equal(t, "server says no", se.Mensagem)
			})
		}
	})

	t.Run("no response is a network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := New(url).Register(context.Background(), validRequest)

		assert.Equal(t, models.NetworkFailure, models.KindOf(err))
	})

	t.Run("configured timeout surfaces as a network failure", func(t *testing.T) {
		release := make(chan struct{})
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			<-release
		})
		defer close(release)

		_, err := New(srv.URL, WithTimeout(20*time.Millisecond)).Register(context.Background(), validRequest)

		assert.Equal(t, models.NetworkFailure, models.KindOf(err))
	})

	t.Run("timeout applies to a client supplied after it", func(t *testing.T) {
		release := make(chan struct{})
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			<-release
		})
		defer close(release)

		supplied := &http.Client{}
		c := New(srv.URL, WithTimeout(20*time.Millisecond), WithHTTPClient(supplied))
		_, err := c.Register(context.Background(), validRequest)

		assert.Equal(t, models.NetworkFailure, models.KindOf(err))
		assert.Zero(t, supplied.Timeout)
	})

	t.Run("sends exactly one request per call", func(t *testing.T) {
		var calls atomic.Int32
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := New(srv.URL).Register(context.Background(), validRequest)

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestRegisterRecordsOutcomeMetrics(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	m := metrics.New(prometheus.NewRegistry())

	_, err := New(srv.URL, WithMetrics(m)).Register(context.Background(), validRequest)

	require.Error(t, err)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Submissions.WithLabelValues("conflict")))
}
