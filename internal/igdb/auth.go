package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gamescout/gamescout/internal/apperr"
	"github.com/gamescout/gamescout/internal/metrics"
)

const (
	defaultTokenURL = "https://id.twitch.tv/oauth2/token" //nolint:gosec // not a credential

	// safetyWindow is subtracted from the reported token lifetime: a token
	// within five minutes of expiry is never handed to a client call.
	safetyWindow = 5 * time.Minute
)

// TokenProvider defines the interface for obtaining bearer tokens for the
// catalog provider.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// ClientCredentialsProvider implements TokenProvider using the Twitch
// OAuth2 client credentials flow IGDB authenticates with. It caches the
// token and refreshes before expiry. The mutex is held across the refresh,
// so concurrent callers that observe a stale token coalesce into a single
// credential exchange.
type ClientCredentialsProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	client       *http.Client

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time // for testing
}

// AuthOption configures the ClientCredentialsProvider.
type AuthOption func(*ClientCredentialsProvider)

// WithTokenURL overrides the default Twitch token endpoint.
func WithTokenURL(u string) AuthOption {
	return func(p *ClientCredentialsProvider) {
		p.tokenURL = u
	}
}

// WithAuthHTTPClient overrides the default HTTP client.
func WithAuthHTTPClient(c *http.Client) AuthOption {
	return func(p *ClientCredentialsProvider) {
		p.client = c
	}
}

// WithAuthNowFunc overrides the time function for testing.
func WithAuthNowFunc(f func() time.Time) AuthOption {
	return func(p *ClientCredentialsProvider) {
		p.nowFunc = f
	}
}

// NewClientCredentialsProvider creates a token provider for the given
// credentials. Missing credentials are not an error here; Token reports
// them as a ConfigError before any network call.
func NewClientCredentialsProvider(
	clientID, clientSecret string,
	opts ...AuthOption,
) *ClientCredentialsProvider {
	p := &ClientCredentialsProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Token returns a valid access token, performing a credential exchange if
// the cached token is absent or within the safety window of expiry.
func (p *ClientCredentialsProvider) Token(ctx context.Context) (string, error) {
	if p.clientID == "" || p.clientSecret == "" {
		return "", &apperr.ConfigError{
			Reason: "catalog client id and secret must be configured",
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.nowFunc().Before(p.expiry.Add(-safetyWindow)) {
		return p.token, nil
	}

	return p.refreshLocked(ctx)
}

// Reset discards the cached token, forcing the next Token call to perform
// a fresh exchange. Test-only escape hatch, unused by production flows.
func (p *ClientCredentialsProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.token = ""
	p.expiry = time.Time{}
}

func (p *ClientCredentialsProvider) refreshLocked(ctx context.Context) (string, error) {
	// The Twitch token endpoint takes credentials as query parameters, not
	// a form body.
	params := url.Values{
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.tokenURL+"?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &apperr.AuthError{Status: resp.StatusCode}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}

	p.token = tokenResp.AccessToken
	p.expiry = p.nowFunc().Add(
		time.Duration(tokenResp.ExpiresIn) * time.Second,
	)

	metrics.TokenRefreshesTotal.Inc()

	return p.token, nil
}
