// Package igdb provides an IGDB catalog API client abstracted behind
// interfaces for testability. Requests are authenticated with a bearer
// token from a TokenProvider plus the Client-ID header IGDB requires.
package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gamescout/gamescout/internal/apperr"
	"github.com/gamescout/gamescout/internal/metrics"
)

const (
	defaultAPIURL = "https://api.igdb.com/v4"

	// MaxSearchLimit caps search result sets; larger requests are clamped.
	MaxSearchLimit = 50

	// popularRatingCountFloor filters popularity listings to games with a
	// meaningful number of blended ratings.
	popularRatingCountFloor = 50
)

// CatalogClient defines the catalog operations the aggregation layer
// depends on. Single-result lookups return nil (not an error) when the
// upstream result set is empty.
type CatalogClient interface {
	SearchByName(ctx context.Context, query string, limit int) ([]Game, error)
	GetByID(ctx context.Context, id int64) (*Game, error)
	GetBySlug(ctx context.Context, slug string) (*Game, error)
	ListPlatforms(ctx context.Context) ([]Platform, error)
	ListPopular(ctx context.Context, limit int) ([]Game, error)
	ListByPlatform(ctx context.Context, platformID int64, limit int) ([]Game, error)
}

// Client implements CatalogClient against the IGDB v4 API.
type Client struct {
	tokens      TokenProvider
	clientID    string
	apiURL      string
	client      *http.Client
	limiter     *RateLimiter
	callTimeout time.Duration
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithAPIURL overrides the default IGDB endpoint.
func WithAPIURL(u string) ClientOption {
	return func(c *Client) {
		c.apiURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a limiter consulted before every request.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.limiter = r
	}
}

// WithCallTimeout sets the per-call deadline. Exceeding it surfaces as an
// UpstreamError with status "timeout".
func WithCallTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.callTimeout = d
	}
}

// NewClient creates an IGDB API client. clientID is sent as the Client-ID
// header on every request, alongside the bearer token from tokens.
func NewClient(tokens TokenProvider, clientID string, opts ...ClientOption) *Client {
	c := &Client{
		tokens:      tokens,
		clientID:    clientID,
		apiURL:      defaultAPIURL,
		client:      &http.Client{},
		callTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchByName returns up to limit games matching the search term, in the
// provider's relevance order. Limits above MaxSearchLimit are clamped.
func (c *Client) SearchByName(ctx context.Context, query string, limit int) ([]Game, error) {
	if limit <= 0 || limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	body := newQuery().
		Search(query).
		Fields(searchFields...).
		Limit(limit).
		String()

	var games []Game
	if err := c.post(ctx, "/games", body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GetByID returns the game with the given id, or nil if it does not exist.
func (c *Client) GetByID(ctx context.Context, id int64) (*Game, error) {
	body := newQuery().
		Where(fmt.Sprintf("id = %d", id)).
		Fields(detailFields...).
		Limit(1).
		String()

	return c.getOne(ctx, body)
}

// GetBySlug returns the game with the given slug, or nil if it does not
// exist.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*Game, error) {
	body := newQuery().
		Where(fmt.Sprintf("slug = %q", slug)).
		Fields(detailFields...).
		Limit(1).
		String()

	return c.getOne(ctx, body)
}

func (c *Client) getOne(ctx context.Context, body string) (*Game, error) {
	var games []Game
	if err := c.post(ctx, "/games", body, &games); err != nil {
		return nil, err
	}
	if len(games) == 0 {
		// Absence is a normal outcome, not a failure.
		return nil, nil
	}
	return &games[0], nil
}

// ListPlatforms returns the platform directory sorted by name.
func (c *Client) ListPlatforms(ctx context.Context) ([]Platform, error) {
	body := newQuery().
		Fields("name", "abbreviation", "platform_family.name").
		Limit(500).
		Sort("name", "asc").
		String()

	var platforms []Platform
	if err := c.post(ctx, "/platforms", body, &platforms); err != nil {
		return nil, err
	}
	return platforms, nil
}

// ListPopular returns games with enough blended ratings to be considered
// popular, sorted descending by blended rating.
func (c *Client) ListPopular(ctx context.Context, limit int) ([]Game, error) {
	if limit <= 0 || limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	body := newQuery().
		Fields(searchFields...).
		Where(fmt.Sprintf("total_rating_count > %d", popularRatingCountFloor)).
		Sort("total_rating", "desc").
		Limit(limit).
		String()

	var games []Game
	if err := c.post(ctx, "/games", body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ListByPlatform returns the top-rated games for one platform.
func (c *Client) ListByPlatform(ctx context.Context, platformID int64, limit int) ([]Game, error) {
	if limit <= 0 || limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	body := newQuery().
		Fields(searchFields...).
		Where(fmt.Sprintf("platforms = (%d)", platformID)).
		Sort("total_rating", "desc").
		Limit(limit).
		String()

	var games []Game
	if err := c.post(ctx, "/games", body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) post(ctx context.Context, endpoint, body string, dst any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.apiURL+endpoint,
		strings.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating catalog request: %w", err)
	}

	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamRequestDuration.
		WithLabelValues(apperr.ProviderCatalog).
		Observe(time.Since(start).Seconds())

	if err != nil {
		if isTimeout(err) {
			metrics.UpstreamRequestsTotal.
				WithLabelValues(apperr.ProviderCatalog, metrics.OutcomeTimeout).
				Inc()
			return apperr.UpstreamTimeout(apperr.ProviderCatalog)
		}
		metrics.UpstreamRequestsTotal.
			WithLabelValues(apperr.ProviderCatalog, metrics.OutcomeError).
			Inc()
		return fmt.Errorf("executing catalog request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading catalog response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.
			WithLabelValues(apperr.ProviderCatalog, metrics.OutcomeError).
			Inc()
		return apperr.Upstream(apperr.ProviderCatalog, resp.StatusCode)
	}

	metrics.UpstreamRequestsTotal.
		WithLabelValues(apperr.ProviderCatalog, metrics.OutcomeSuccess).
		Inc()

	if err := json.Unmarshal(respBody, dst); err != nil {
		return fmt.Errorf("parsing catalog response: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
