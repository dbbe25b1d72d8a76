package httptransport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/judydsp/provabruno/internal/accounts/handler"
	"github.com/judydsp/provabruno/internal/accounts/service"
	"github.com/judydsp/provabruno/internal/accounts/store"
	"github.com/judydsp/provabruno/internal/platform/metrics"
	"github.com/judydsp/provabruno/internal/registration/client"
	"github.com/judydsp/provabruno/internal/registration/form"
	"github.com/judydsp/provabruno/internal/registration/models"
	"github.com/judydsp/provabruno/pkg/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.DiscardHandler)
	svc := service.New(store.New(),
		service.WithMetrics(metrics.New(reg)),
		service.WithBcryptCost(bcrypt.MinCost),
		service.WithLogger(logger),
	)
	srv := httptest.NewServer(NewRouter(reg, handler.New(svc, logger)))
	t.Cleanup(srv.Close)
	return srv
}

func TestRegistrationEndToEnd(t *testing.T) {
	testutil.Given(t, "a running registration service", func(t *testing.T) {
		srv := newTestServer(t)
		ctx := context.Background()

		testutil.When(t, "a valid form is submitted", func(t *testing.T) {
			c := form.New(client.New(srv.URL))
			c.SetEmail("a@b.com")
			c.SetPassword("Abcdef1!")
			c.SetConfirmPassword("Abcdef1!")

			result, err := c.Submit(ctx)

			testutil.Then(t, "the account is created", func(t *testing.T) {
				require.NoError(t, err)
				assert.Equal(t, models.StateSuccess, result.State)
				assert.Equal(t, models.MessageSuccess, result.Message)
			})
		})

		testutil.When(t, "the same email registers again", func(t *testing.T) {
			c := form.New(client.New(srv.URL))
			c.SetEmail("A@B.com")
			c.SetPassword("Xyzabc2@")
			c.SetConfirmPassword("Xyzabc2@")

			result, err := c.Submit(ctx)

			testutil.Then(t, "the failure is classified as a conflict", func(t *testing.T) {
				require.Error(t, err)
				assert.Equal(t, models.Conflict, result.Kind)
				assert.Equal(t, models.MessageConflict, result.Message)
			})
			testutil.And(t, "the fields keep their values", func(t *testing.T) {
				assert.Equal(t, "A@B.com", c.Fields().Email)
			})
		})

		testutil.When(t, "the metrics endpoint is scraped", func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/metrics")
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			testutil.Then(t, "created and conflict counters are exposed", func(t *testing.T) {
				assert.Contains(t, string(body), "signup_accounts_created_total 1")
				assert.Contains(t, string(body), "signup_accounts_conflicts_total 1")
			})
		})
	})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnreachableServiceIsNetworkFailure(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL
	srv.Close()

	c := form.New(client.New(url))
	c.SetEmail("a@b.com")
	c.SetPassword("Abcdef1!")
	c.SetConfirmPassword("Abcdef1!")

	result, err := c.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, models.NetworkFailure, result.Kind)
	assert.Equal(t, models.MessageNetworkFailure, c.Message())
}

func TestServerAcceptsAddressesTheFormAccepts(t *testing.T) {
	srv := newTestServer(t)

	for _, addr := range []string{"a,b@c.com", "a(b)@c.com", "a@b..com", "a<b>@c.com"} {
		t.Run(addr, func(t *testing.T) {
			c := form.New(client.New(srv.URL))
			c.SetEmail(addr)
			c.SetPassword("Abcdef1!")
			c.SetConfirmPassword("Abcdef1!")
			require.True(t, c.IsFormValid())

			result, err := c.Submit(context.Background())

			require.NoError(t, err)
			assert.Equal(t, models.StateSuccess, result.State)
		})
	}
}
