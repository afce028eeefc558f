package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/naveenspark/backoffice/pkg/domain"
)

const (
	loginPath   = "/auth/admin/login"
	refreshPath = "/auth/refresh-token"
	logoutPath  = "/auth/logout"

	defaultTimeout             = 30 * time.Second
	defaultCloudinaryURL       = "https://api.cloudinary.com/v1_1/%s/image/upload"
	requestIDHeader            = "X-Request-ID"
	maxSuccessBody       int64 = 32 << 20
)

// Client is the back-office API client. It is safe for concurrent use.
//
// Every request reads the access token from the TokenStore at send time.
// A 401 triggers at most one refresh across all in-flight requests; the
// others wait for its outcome and retry once with whatever token is stored
// when they resume.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenStore
	limiter       *rate.Limiter
	log           zerolog.Logger
	onExpired     func()
	cloudinaryURL string

	mu         sync.Mutex
	refreshing bool
	pending    []chan error

	// Catalog
	Products   *Collection[domain.Product, ProductInput]
	Brands     *Collection[domain.Brand, BrandInput]
	Categories *Collection[domain.Category, CategoryInput]

	// Logistics
	Regions          *Collection[domain.Region, RegionInput]
	Cities           *Collection[domain.City, CityInput]
	DeliveryPartners *Collection[domain.DeliveryPartner, DeliveryPartnerInput]
	DeliveryRecords  *Collection[domain.DeliveryRecord, DeliveryRecordInput]

	// Commerce
	Payments       *Listing[domain.Payment]
	Offers         *Collection[domain.Offer, OfferInput]
	Withdrawals    *Listing[domain.Withdrawal]
	Taxes          *Collection[domain.Tax, TaxInput]
	PackagingTypes *Collection[domain.PackagingType, PackagingTypeInput]
	Companies      *Collection[domain.Company, CompanyInput]

	// Occasions and people
	Occasions     *Listing[domain.Occasion]
	OccasionTypes *Collection[domain.OccasionType, OccasionTypeInput]
	Users         *Listing[domain.User]

	// Notifications
	NotificationTemplates *Collection[domain.NotificationTemplate, NotificationTemplateInput]
	NotificationHistory   *Listing[domain.NotificationSend]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRateLimit caps outgoing requests. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithSessionExpiredHandler registers fn to run after a failed refresh has
// cleared the stored session.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// WithCloudinaryURL overrides the upload URL template; %s is the cloud name.
func WithCloudinaryURL(tmpl string) Option {
	return func(c *Client) {
		if tmpl != "" {
			c.cloudinaryURL = tmpl
		}
	}
}

// New creates a new API client.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore(domain.TokenPair{})
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log:           zerolog.Nop(),
		cloudinaryURL: defaultCloudinaryURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Products = newCollection[domain.Product, ProductInput](c, "Products", "/products")
	c.Brands = newCollection[domain.Brand, BrandInput](c, "Brands", "/brands")
	c.Categories = newCollection[domain.Category, CategoryInput](c, "Categories", "/product-categories")

	c.Regions = newCollection[domain.Region, RegionInput](c, "Regions", "/regions")
	c.Cities = newCollection[domain.City, CityInput](c, "Cities", "/cities")
	c.DeliveryPartners = newCollection[domain.DeliveryPartner, DeliveryPartnerInput](c, "DeliveryPartners", "/delivery-partners")
	c.DeliveryRecords = newCollection[domain.DeliveryRecord, DeliveryRecordInput](c, "DeliveryRecords", "/delivery-records")

	c.Payments = newListing[domain.Payment](c, "Payments", "/payments")
	c.Offers = newCollection[domain.Offer, OfferInput](c, "Offers", "/offers")
	c.Withdrawals = newListing[domain.Withdrawal](c, "Withdrawals", "/withdrawals")
	c.Taxes = newCollection[domain.Tax, TaxInput](c, "Taxes", "/taxes")
	c.PackagingTypes = newCollection[domain.PackagingType, PackagingTypeInput](c, "PackagingTypes", "/packaging-types")
	c.Companies = newCollection[domain.Company, CompanyInput](c, "Companies", "/companies")

	c.Occasions = newListing[domain.Occasion](c, "Occasions", "/occasions")
	c.OccasionTypes = newCollection[domain.OccasionType, OccasionTypeInput](c, "OccasionTypes", "/occasion-types")
	c.Users = newListing[domain.User](c, "Users", "/users")

	c.NotificationTemplates = newCollection[domain.NotificationTemplate, NotificationTemplateInput](c, "NotificationTemplates", "/notifications/dashboard/templates")
	c.NotificationHistory = newListing[domain.NotificationSend](c, "NotificationHistory", "/notifications/dashboard/history")
	return c
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPatch, path, body, out)
}

// doRequest sends the request and runs the refresh-and-retry protocol on 401.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	sentWith, err := c.send(ctx, method, path, body, out)
	if !IsStatus(err, http.StatusUnauthorized) || isAuthEndpoint(path) {
		return err
	}

	if rerr := c.awaitRefresh(ctx, sentWith); rerr != nil {
		return rerr
	}

	_, err = c.send(ctx, method, path, body, out)
	return err
}

// awaitRefresh either joins the refresh in flight or becomes the one that
// performs it. Waiters are released in the order they queued. sentWith is
// the access token the failed request carried.
func (c *Client) awaitRefresh(ctx context.Context, sentWith string) error {
	c.mu.Lock()
	if c.refreshing {
		wait := make(chan error, 1)
		c.pending = append(c.pending, wait)
		queued := len(c.pending)
		c.mu.Unlock()

		c.log.Debug().Int("queued", queued).Msg("waiting for token refresh")
		select {
		case err := <-wait:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	// A refresh that completed while this request was on the wire already
	// replaced the token it was sent with; just retry.
	if current := c.accessToken(); current != "" && current != sentWith {
		c.mu.Unlock()
		return nil
	}
	c.refreshing = true
	c.mu.Unlock()

	// Detached so one caller giving up does not fail the refresh for every
	// queued request. The HTTP client timeout still applies.
	err := c.refreshSession(context.WithoutCancel(ctx))

	c.mu.Lock()
	waiters := c.pending
	c.pending = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, w := range waiters {
		w <- err
	}
	return err
}

// refreshSession exchanges the stored refresh token for a new pair. Any
// failure clears the stored session.
func (c *Client) refreshSession(ctx context.Context) error {
	started := time.Now()
	c.log.Info().Msg("refreshing session")

	err := func() error {
		pair, err := c.tokens.Tokens()
		if err != nil {
			return fmt.Errorf("read tokens: %w", err)
		}
		if pair.RefreshToken == "" {
			return fmt.Errorf("no refresh token stored")
		}
		var fresh domain.TokenPair
		if _, err := c.send(ctx, http.MethodPost, refreshPath, map[string]string{"refreshToken": pair.RefreshToken}, &fresh); err != nil {
			return err
		}
		if fresh.AccessToken == "" {
			return fmt.Errorf("refresh response has no access token")
		}
		if fresh.RefreshToken == "" {
			fresh.RefreshToken = pair.RefreshToken
		}
		return c.tokens.SetTokens(fresh)
	}()
	if err == nil {
		c.log.Info().Dur("duration", time.Since(started)).Msg("session refreshed")
		return nil
	}

	c.log.Warn().Err(err).Msg("session refresh failed, clearing credentials")
	if clearErr := c.tokens.Clear(); clearErr != nil {
		c.log.Error().Err(clearErr).Msg("clear credentials")
	}
	if c.onExpired != nil {
		c.onExpired()
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, err)
}

func (c *Client) accessToken() string {
	pair, err := c.tokens.Tokens()
	if err != nil {
		c.log.Warn().Err(err).Msg("read tokens")
		return ""
	}
	return pair.AccessToken
}

func isAuthEndpoint(path string) bool {
	return path == loginPath || path == refreshPath
}

// send performs one HTTP round trip and reports the access token it used.
func (c *Client) send(ctx context.Context, method, path string, body any, out any) (string, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	var token string
	if !isAuthEndpoint(path) {
		token = c.accessToken()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return token, fmt.Errorf("rate limit: %w", err)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("api request failed")
		return token, &NetworkError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("duration", time.Since(started)).
		Msg("api request")

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return token, errorFromResponse(resp.StatusCode, []byte(fmt.Sprintf("failed to read body: %v", readErr)))
		}
		return token, errorFromResponse(resp.StatusCode, respBody)
	}

	if out == nil {
		return token, nil
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSuccessBody))
	if err != nil {
		return token, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}
	if err := decode(data, out); err != nil {
		return token, fmt.Errorf("decode response: %w", err)
	}
	return token, nil
}
