package igdb_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamescout/gamescout/internal/apperr"
	"github.com/gamescout/gamescout/internal/igdb"
)

// tokenJSON returns a valid Twitch OAuth2 token response as JSON bytes.
func tokenJSON(token string, expiresIn int) []byte {
	return []byte(fmt.Sprintf(
		`{"access_token":%q,"expires_in":%d,"token_type":"bearer"}`,
		token, expiresIn,
	))
}

func TestClientCredentialsProvider_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantToken  string
		errContain string
	}{
		{
			name: "successful token fetch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-id", r.URL.Query().Get("client_id"))
				assert.Equal(t, "test-secret", r.URL.Query().Get("client_secret"))
				assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(tokenJSON("test-token-123", 7200))
			},
			wantToken: "test-token-123",
		},
		{
			name: "server returns 401",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr:    true,
			errContain: "status 401",
		},
		{
			name: "server returns 500",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			errContain: "status 500",
		},
		{
			name: "server returns invalid JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("not json"))
			},
			wantErr:    true,
			errContain: "parsing token response",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			provider := igdb.NewClientCredentialsProvider(
				"test-id",
				"test-secret",
				igdb.WithTokenURL(srv.URL),
			)

			token, err := provider.Token(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestClientCredentialsProvider_MissingCredentials(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write(tokenJSON("x", 7200))
	}))
	defer srv.Close()

	provider := igdb.NewClientCredentialsProvider("", "", igdb.WithTokenURL(srv.URL))

	_, err := provider.Token(context.Background())
	require.Error(t, err)

	var cfgErr *apperr.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, int32(0), calls.Load(), "missing creds must be detected before any network call")
}

func TestClientCredentialsProvider_AuthError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	provider := igdb.NewClientCredentialsProvider(
		"test-id", "test-secret",
		igdb.WithTokenURL(srv.URL),
	)

	_, err := provider.Token(context.Background())
	require.Error(t, err)

	var authErr *apperr.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusForbidden, authErr.Status)
}

func TestClientCredentialsProvider_TokenReuse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(tokenJSON("cached-token", 7200))
	}))
	defer srv.Close()

	provider := igdb.NewClientCredentialsProvider(
		"test-id", "test-secret",
		igdb.WithTokenURL(srv.URL),
	)

	for i := 0; i < 3; i++ {
		token, err := provider.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "cached-token", token)
	}

	assert.Equal(t, int32(1), calls.Load(), "valid token must be reused, not re-fetched")
}

func TestClientCredentialsProvider_SafetyWindowRefresh(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(tokenJSON(fmt.Sprintf("token-%d", n), 3600))
	}))
	defer srv.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	nowFunc := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	provider := igdb.NewClientCredentialsProvider(
		"test-id", "test-secret",
		igdb.WithTokenURL(srv.URL),
		igdb.WithAuthNowFunc(nowFunc),
	)

	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	// 54 minutes in: still outside the 5-minute safety window of a 60-minute
	// lifetime, so the cached token is reused.
	mu.Lock()
	now = now.Add(54 * time.Minute)
	mu.Unlock()

	token, err = provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	// 56 minutes in: inside the safety window. A fresh exchange happens even
	// though the token has not strictly expired.
	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	token, err = provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientCredentialsProvider_Reset(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(tokenJSON("t", 7200))
	}))
	defer srv.Close()

	provider := igdb.NewClientCredentialsProvider(
		"test-id", "test-secret",
		igdb.WithTokenURL(srv.URL),
	)

	_, err := provider.Token(context.Background())
	require.NoError(t, err)

	provider.Reset()

	_, err = provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientCredentialsProvider_ConcurrentRefreshCoalesces(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond) // widen the race window
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(tokenJSON("shared-token", 7200))
	}))
	defer srv.Close()

	provider := igdb.NewClientCredentialsProvider(
		"test-id", "test-secret",
		igdb.WithTokenURL(srv.URL),
	)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := provider.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "shared-token", token)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(),
		"concurrent callers must share one credential exchange")
}
