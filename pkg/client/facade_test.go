package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// recorder answers every request with an empty object and remembers
// "METHOD /path?query" for each call.
type recorder struct {
	*httptest.Server
	mu    sync.Mutex
	calls []string
}

func newRecorder(t *testing.T) *recorder {
	t.Helper()
	r := &recorder{}
	r.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		call := req.Method + " " + req.URL.EscapedPath()
		if req.URL.RawQuery != "" {
			call += "?" + req.URL.RawQuery
		}
		r.mu.Lock()
		r.calls = append(r.calls, call)
		r.mu.Unlock()
		if req.Method == http.MethodGet {
			fmt.Fprint(w, `{"data":[],"meta":{"total":0}}`)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(r.Close)
	return r
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return ""
	}
	return r.calls[len(r.calls)-1]
}

func TestFacadeRoutes(t *testing.T) {
	rec := newRecorder(t)
	c := newTestClient(rec.URL, "tok")
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"block user", func() error { return c.BlockUser(ctx, "u1") }, "PATCH /users/u1/block"},
		{"unblock user", func() error { return c.UnblockUser(ctx, "u1") }, "PATCH /users/u1/unblock"},
		{"product active", func() error { return c.SetProductActive(ctx, "p1", false) }, "PATCH /products/p1/status"},
		{"occasion status", func() error {
			_, err := c.UpdateOccasionStatus(ctx, "o1", domain.OccasionConfirmed)
			return err
		}, "PATCH /occasions/o1/status"},
		{"payments page", func() error {
			_, err := c.Payments.List(ctx, ListParams{Page: 2, Limit: 20})
			return err
		}, "GET /payments?limit=20&page=2"},
		{"history", func() error {
			_, err := c.NotificationHistory.All(ctx)
			return err
		}, "GET /notifications/dashboard/history?limit=1000"},
		{"escaped id", func() error { return c.Taxes.Delete(ctx, "a/b") }, "DELETE /taxes/a%2Fb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.want, rec.last())
		})
	}
}

func TestUpdateOccasionStatus_RejectsUnknownStatus(t *testing.T) {
	rec := newRecorder(t)
	c := newTestClient(rec.URL, "tok")
	_, err := c.UpdateOccasionStatus(context.Background(), "o1", "lost")
	require.Error(t, err)
	assert.Empty(t, rec.last(), "no request should be sent")
}

func TestLogout_RevokesAndClears(t *testing.T) {
	rec := newRecorder(t)
	store := NewMemoryTokenStore(domain.TokenPair{AccessToken: "acc", RefreshToken: "ref"})
	require.NoError(t, store.SetAdmin(&domain.Admin{ID: "a1"}))
	c := New(rec.URL, store)

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, "POST /auth/logout", rec.last())
	assert.False(t, c.LoggedIn())
	_, err := c.Me()
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestLogout_ServerFailureStillClears(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := newTestClient(srv.URL, "acc")
	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.LoggedIn())
}

func TestClassifyAndUserMessage(t *testing.T) {
	base := HTTPError{StatusCode: 401, Message: "Unauthorized"}
	tests := []struct {
		name string
		err  error
		kind ErrorKind
		msg  string
	}{
		{"nil", nil, KindUnknown, ""},
		{"expired wins over cause", fmt.Errorf("%w: %w", ErrSessionExpired, &AuthError{HTTPError: base}), KindSessionExpired, "session expired, run `backoffice login`"},
		{"auth", fmt.Errorf("client.X: %w", &AuthError{HTTPError: base}), KindAuth, "not authorized"},
		{"timeout", &NetworkError{Err: context.DeadlineExceeded}, KindNetwork, "request timed out"},
		{"validation", &ValidationError{HTTPError: HTTPError{StatusCode: 409, Message: "code taken"}}, KindValidation, "code taken"},
		{"server", &ServerError{HTTPError: HTTPError{StatusCode: 503, Message: "down"}}, KindServer, "server error (503): down"},
		{"plain", errors.New("boom"), KindUnknown, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, Classify(tt.err))
			assert.Equal(t, tt.msg, UserMessage(tt.err))
		})
	}
	assert.Equal(t, "session_expired", KindSessionExpired.String())
}
