package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// fakeAPI is an API server whose /products endpoint only accepts validToken,
// and whose refresh endpoint can be held open until released.
type fakeAPI struct {
	*httptest.Server

	refreshOK    bool
	refreshCalls atomic.Int32
	unauthorized atomic.Int32
	failAfter    int32 // unauthorized responses before allFailed closes
	allFailed    chan struct{}
	release      chan struct{} // refresh handler blocks until closed, if set
	alwaysDeny   bool
	status       int // forced status for /products, if non-zero

	mu         sync.Mutex
	validToken string
	seenAuth   []string
}

func newFakeAPI(t *testing.T, refreshOK bool) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		refreshOK:  refreshOK,
		validToken: "new-access",
		allFailed:  make(chan struct{}),
	}
	var once sync.Once
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh-token":
			f.refreshCalls.Add(1)
			if f.release != nil {
				select {
				case <-f.release:
				case <-time.After(5 * time.Second):
				}
			}
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
			if !f.refreshOK || body["refreshToken"] != "old-refresh" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid refresh token"}) //nolint:errcheck
				return
			}
			json.NewEncoder(w).Encode(domain.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}) //nolint:errcheck

		case "/products":
			auth := r.Header.Get("Authorization")
			f.mu.Lock()
			f.seenAuth = append(f.seenAuth, auth)
			valid := auth == "Bearer "+f.validToken
			f.mu.Unlock()
			if f.status != 0 {
				w.WriteHeader(f.status)
				json.NewEncoder(w).Encode(map[string]string{"message": "boom"}) //nolint:errcheck
				return
			}
			if !valid || f.alwaysDeny {
				if f.unauthorized.Add(1) >= f.failAfter {
					once.Do(func() { close(f.allFailed) })
				}
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "jwt expired"}) //nolint:errcheck
				return
			}
			json.NewEncoder(w).Encode([]domain.Product{{ID: "p1", Name: "Rose Box"}}) //nolint:errcheck

		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.Close)
	return f
}

func staleStore() *MemoryTokenStore {
	return NewMemoryTokenStore(domain.TokenPair{AccessToken: "old-access", RefreshToken: "old-refresh"})
}

func TestRefresh_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	const n = 8
	api := newFakeAPI(t, true)
	api.failAfter = n
	api.release = api.allFailed // refresh answers once every request has seen its 401

	store := staleStore()
	c := New(api.URL, store)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			page, err := c.Products.List(context.Background(), ListParams{})
			if err != nil {
				return err
			}
			if len(page.Items) != 1 {
				return errors.New("unexpected page size")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), api.refreshCalls.Load(), "exactly one refresh call")
	pair, _ := store.Tokens()
	assert.Equal(t, domain.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, pair)
}

func TestRefresh_FailureRejectsEveryWaiter(t *testing.T) {
	const n = 6
	api := newFakeAPI(t, false)
	api.failAfter = n
	api.release = api.allFailed

	var expired atomic.Int32
	store := staleStore()
	c := New(api.URL, store, WithSessionExpiredHandler(func() { expired.Add(1) }))

	errs := make([]error, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, errs[i] = c.Products.List(context.Background(), ListParams{})
			return nil
		})
	}
	done := make(chan struct{})
	go func() {
		g.Wait() //nolint:errcheck // goroutines never return an error
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("requests hung after a failed refresh")
	}

	for i, err := range errs {
		require.Error(t, err, "request %d", i)
		assert.ErrorIs(t, err, ErrSessionExpired, "request %d", i)
		assert.Equal(t, KindSessionExpired, Classify(err))
	}
	assert.Equal(t, int32(1), api.refreshCalls.Load(), "exactly one refresh call")
	assert.GreaterOrEqual(t, expired.Load(), int32(1))

	pair, _ := store.Tokens()
	assert.Empty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestRefresh_SecondUnauthorizedIsTerminal(t *testing.T) {
	api := newFakeAPI(t, true)
	api.alwaysDeny = true

	c := New(api.URL, staleStore())
	_, err := c.Products.List(context.Background(), ListParams{})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, KindAuth, Classify(err))
	assert.Equal(t, int32(1), api.refreshCalls.Load())
	assert.Equal(t, int32(2), api.unauthorized.Load(), "original attempt plus a single retry")
}

func TestRefresh_LaterRequestsUseNewToken(t *testing.T) {
	api := newFakeAPI(t, true)
	c := New(api.URL, staleStore())

	_, err := c.Products.List(context.Background(), ListParams{})
	require.NoError(t, err)
	_, err = c.Products.List(context.Background(), ListParams{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), api.refreshCalls.Load())
	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.seenAuth, 3)
	assert.Equal(t, []string{"Bearer old-access", "Bearer new-access", "Bearer new-access"}, api.seenAuth)
}

func TestRefresh_ServerErrorSkipsRefresh(t *testing.T) {
	api := newFakeAPI(t, true)
	api.status = http.StatusInternalServerError

	c := New(api.URL, staleStore())
	_, err := c.Products.List(context.Background(), ListParams{})

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, int32(0), api.refreshCalls.Load())
}

func TestRefresh_StaleUnauthorizedRetriesWithoutRefresh(t *testing.T) {
	store := staleStore()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh-token" {
			t.Error("refresh endpoint must not be called")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if calls.Add(1) == 1 {
			// Another request refreshed while this one was in flight.
			store.SetTokens(domain.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}) //nolint:errcheck
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "Bearer new-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]domain.Product{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, store)
	_, err := c.Products.List(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRefresh_CancelledTriggerDoesNotFailWaiters(t *testing.T) {
	api := newFakeAPI(t, true)
	api.release = make(chan struct{})

	c := New(api.URL, staleStore())

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Products.List(ctxA, ListParams{})
		errA <- err
	}()
	require.Eventually(t, func() bool { return api.refreshCalls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	errB := make(chan error, 1)
	go func() {
		_, err := c.Products.List(context.Background(), ListParams{})
		errB <- err
	}()
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.pending) == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancelA()
	close(api.release)

	assert.ErrorIs(t, <-errA, context.Canceled)
	assert.NoError(t, <-errB)
	assert.Equal(t, int32(1), api.refreshCalls.Load())

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.False(t, c.refreshing)
	assert.Empty(t, c.pending)
}

func TestRefresh_WaiterHonoursOwnContext(t *testing.T) {
	c := New("http://127.0.0.1:0", staleStore())
	c.mu.Lock()
	c.refreshing = true
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.awaitRefresh(ctx, "old-access")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.mu.Lock()
	assert.Len(t, c.pending, 1, "abandoned waiter stays queued until the refresh drains it")
	c.refreshing = false
	c.pending = nil
	c.mu.Unlock()
}

func TestRefresh_MissingRefreshTokenExpiresWithoutCall(t *testing.T) {
	api := newFakeAPI(t, true)
	var expired atomic.Int32
	c := New(api.URL, NewMemoryTokenStore(domain.TokenPair{AccessToken: "old-access"}),
		WithSessionExpiredHandler(func() { expired.Add(1) }))

	_, err := c.Products.List(context.Background(), ListParams{})
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(0), api.refreshCalls.Load())
	assert.Equal(t, int32(1), expired.Load())
	assert.False(t, c.LoggedIn())
}

func TestWithRateLimit(t *testing.T) {
	c := New("http://example.invalid", nil, WithRateLimit(0, 0))
	assert.Nil(t, c.limiter)

	c = New("http://example.invalid", nil, WithRateLimit(5, 0))
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())
}

func TestRefresh_WaitersQueueInArrivalOrder(t *testing.T) {
	api := newFakeAPI(t, true)
	api.release = make(chan struct{})
	c := New(api.URL, staleStore())

	results := make(chan error, 4)
	go func() {
		_, err := c.Products.List(context.Background(), ListParams{})
		results <- err
	}()
	require.Eventually(t, func() bool { return api.refreshCalls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	var snapshots [][]chan error
	for i := 1; i <= 3; i++ {
		go func() { results <- c.awaitRefresh(context.Background(), "old-access") }()
		require.Eventually(t, func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			return len(c.pending) == i
		}, 2*time.Second, 5*time.Millisecond)
		c.mu.Lock()
		snapshots = append(snapshots, append([]chan error(nil), c.pending...))
		c.mu.Unlock()
	}
	// Each arrival is appended behind the ones already queued.
	for i := 1; i < len(snapshots); i++ {
		assert.Equal(t, snapshots[i-1], snapshots[i][:i])
	}

	close(api.release)
	for i := 0; i < 4; i++ {
		assert.NoError(t, <-results)
	}
	assert.Equal(t, int32(1), api.refreshCalls.Load())
}
