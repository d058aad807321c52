// Package cheapshark provides a client for the CheapShark pricing API.
// All endpoints are unauthenticated GETs; non-success responses surface as
// apperr.UpstreamError. The client performs no retries.
package cheapshark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gamescout/gamescout/internal/apperr"
	"github.com/gamescout/gamescout/internal/metrics"
)

const defaultBaseURL = "https://www.cheapshark.com/api/1.0"

// PricingClient defines the operations the aggregation layer needs from
// the pricing provider.
type PricingClient interface {
	SearchByTitle(ctx context.Context, title string) ([]Game, error)
	ListStores(ctx context.Context) ([]Store, error)
	GetDealsForGame(ctx context.Context, gameID string) (*GameDetails, error)
}

// Client implements PricingClient against the CheapShark REST API.
type Client struct {
	baseURL     string
	client      *http.Client
	callTimeout time.Duration
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default CheapShark endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithCallTimeout sets the per-call deadline. Exceeding it surfaces as an
// UpstreamError with status "timeout".
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.callTimeout = d
	}
}

// NewClient creates a CheapShark API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		client:      &http.Client{},
		callTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchByTitle returns games whose title matches the search term, in the
// provider's relevance order.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]Game, error) {
	params := url.Values{}
	params.Set("title", title)

	var games []Game
	if err := c.get(ctx, "/games?"+params.Encode(), &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ListStores returns the store directory, including inactive stores.
func (c *Client) ListStores(ctx context.Context) ([]Store, error) {
	var stores []Store
	if err := c.get(ctx, "/stores", &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// GetDealsForGame returns the current deals and cheapest-ever price for a
// CheapShark game id.
func (c *Client) GetDealsForGame(ctx context.Context, gameID string) (*GameDetails, error) {
	params := url.Values{}
	params.Set("id", gameID)

	details := &GameDetails{}
	if err := c.get(ctx, "/games?"+params.Encode(), details); err != nil {
		return nil, err
	}
	return details, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+path,
		http.NoBody,
	)
	if err != nil {
		return fmt.Errorf("creating pricing request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamRequestDuration.
		WithLabelValues(apperr.ProviderPricing).
		Observe(time.Since(start).Seconds())

	if err != nil {
		if isTimeout(err) {
			metrics.UpstreamRequestsTotal.
				WithLabelValues(apperr.ProviderPricing, metrics.OutcomeTimeout).
				Inc()
			return apperr.UpstreamTimeout(apperr.ProviderPricing)
		}
		metrics.UpstreamRequestsTotal.
			WithLabelValues(apperr.ProviderPricing, metrics.OutcomeError).
			Inc()
		return fmt.Errorf("executing pricing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading pricing response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.
			WithLabelValues(apperr.ProviderPricing, metrics.OutcomeError).
			Inc()
		return apperr.Upstream(apperr.ProviderPricing, resp.StatusCode)
	}

	metrics.UpstreamRequestsTotal.
		WithLabelValues(apperr.ProviderPricing, metrics.OutcomeSuccess).
		Inc()

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("parsing pricing response: %w", err)
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

// DealRedirectURL returns the CheapShark redirect link for a deal.
func DealRedirectURL(dealID string) string {
	return "https://www.cheapshark.com/redirect?dealID=" + url.QueryEscape(dealID)
}

// ImageURL resolves a relative CheapShark image path (e.g. a store icon)
// to an absolute URL.
func ImageURL(path string) string {
	return "https://www.cheapshark.com" + path
}
