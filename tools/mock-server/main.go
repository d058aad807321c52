// Package main implements a mock upstream server for local development.
// It simulates the IGDB API (including the Twitch OAuth token endpoint) and
// the CheapShark API with canned data, so the gamescout server can run
// end-to-end without real credentials or network access.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type mockGame struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Summary          string   `json:"summary,omitempty"`
	TotalRating      *float64 `json:"total_rating,omitempty"`
	TotalRatingCount *int     `json:"total_rating_count,omitempty"`
	FirstReleaseDate int64    `json:"first_release_date,omitempty"`
}

type mockDeal struct {
	StoreID     string `json:"storeID"`
	DealID      string `json:"dealID"`
	Price       string `json:"price"`
	RetailPrice string `json:"retailPrice"`
	Savings     string `json:"savings"`
}

func rating(v float64, count int) (*float64, *int) {
	return &v, &count
}

func fixtures() []mockGame {
	r1, c1 := rating(94.5, 3100)
	r2, c2 := rating(87.2, 820)
	return []mockGame{
		{ID: 1942, Name: "The Witcher 3: Wild Hunt", Slug: "the-witcher-3-wild-hunt",
			Summary: "An open world RPG.", TotalRating: r1, TotalRatingCount: c1,
			FirstReleaseDate: 1431993600},
		{ID: 14593, Name: "Hollow Knight", Slug: "hollow-knight",
			Summary: "A challenging action adventure.", TotalRating: r2, TotalRatingCount: c2,
			FirstReleaseDate: 1487894400},
	}
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth2/token", tokenHandler(logger))
	mux.HandleFunc("POST /v4/games", gamesHandler(logger, fixtures()))
	mux.HandleFunc("POST /v4/platforms", platformsHandler())
	mux.HandleFunc("GET /api/1.0/games", pricingGamesHandler())
	mux.HandleFunc("GET /api/1.0/stores", pricingStoresHandler())

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock upstream server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

// tokenHandler mimics the Twitch client-credentials exchange. Credentials
// arrive as query parameters and are required but never verified.
func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client_id") == "" || q.Get("client_secret") == "" {
			logger.Warn("token request missing credentials")
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"status":  400,
				"message": "missing client id or secret",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "mock-token-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   5587808,
			"token_type":   "bearer",
		})
		logger.Info("issued mock token")
	}
}

var (
	searchClause = regexp.MustCompile(`search "([^"]*)"`)
	idClause     = regexp.MustCompile(`where id = (\d+)`)
	slugClause   = regexp.MustCompile(`where slug = "([^"]*)"`)
)

// gamesHandler answers apicalypse queries against the canned catalog. It
// understands search, where id, and where slug clauses; anything else
// returns the full set.
func gamesHandler(logger *slog.Logger, games []mockGame) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Client-ID") == "" || r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"status": 401, "message": "authentication required",
			})
			return
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400})
			return
		}
		query := string(raw)
		logger.Debug("catalog query", "body", query)

		if m := idClause.FindStringSubmatch(query); m != nil {
			id, _ := strconv.ParseInt(m[1], 10, 64)
			writeJSON(w, http.StatusOK, filterGames(games, func(g mockGame) bool {
				return g.ID == id
			}))
			return
		}

		if m := slugClause.FindStringSubmatch(query); m != nil {
			writeJSON(w, http.StatusOK, filterGames(games, func(g mockGame) bool {
				return g.Slug == m[1]
			}))
			return
		}

		if m := searchClause.FindStringSubmatch(query); m != nil {
			needle := strings.ToLower(m[1])
			writeJSON(w, http.StatusOK, filterGames(games, func(g mockGame) bool {
				return strings.Contains(strings.ToLower(g.Name), needle)
			}))
			return
		}

		writeJSON(w, http.StatusOK, games)
	}
}

func filterGames(games []mockGame, keep func(mockGame) bool) []mockGame {
	out := []mockGame{}
	for _, g := range games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func platformsHandler() http.HandlerFunc {
	platforms := []map[string]any{
		{"id": 6, "name": "PC (Microsoft Windows)", "abbreviation": "PC"},
		{"id": 48, "name": "PlayStation 4", "abbreviation": "PS4"},
		{"id": 130, "name": "Nintendo Switch", "abbreviation": "Switch"},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Client-ID") == "" || r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"status": 401, "message": "authentication required",
			})
			return
		}
		writeJSON(w, http.StatusOK, platforms)
	}
}

// pricingGamesHandler serves both the title search (?title=) and the game
// detail lookup (?id=) shapes of the pricing API.
func pricingGamesHandler() http.HandlerFunc {
	search := []map[string]any{
		{"gameID": "146", "external": "The Witcher 3: Wild Hunt", "cheapest": "9.99",
			"internalName": "THEWITCHER3WILDHUNT"},
		{"gameID": "219", "external": "Hollow Knight", "cheapest": "7.49",
			"internalName": "HOLLOWKNIGHT"},
	}
	details := map[string]any{
		"info": map[string]any{"title": "The Witcher 3: Wild Hunt"},
		"cheapestPriceEver": map[string]any{
			"price": "2.99",
			"date":  1574899200,
		},
		"deals": []mockDeal{
			{StoreID: "1", DealID: "d1", Price: "9.99", RetailPrice: "39.99", Savings: "75.00"},
			{StoreID: "7", DealID: "d2", Price: "11.99", RetailPrice: "39.99", Savings: "70.01"},
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("id") != "" {
			writeJSON(w, http.StatusOK, details)
			return
		}

		title := strings.ToLower(q.Get("title"))
		out := []map[string]any{}
		for _, g := range search {
			name, _ := g["external"].(string)
			if title == "" || strings.Contains(strings.ToLower(name), title) {
				out = append(out, g)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func pricingStoresHandler() http.HandlerFunc {
	stores := []map[string]any{
		{"storeID": "1", "storeName": "Steam", "isActive": 1,
			"images": map[string]string{"icon": "/img/stores/icons/0.png"}},
		{"storeID": "7", "storeName": "GOG", "isActive": 1,
			"images": map[string]string{"icon": "/img/stores/icons/6.png"}},
		{"storeID": "2", "storeName": "GamersGate", "isActive": 0,
			"images": map[string]string{"icon": "/img/stores/icons/1.png"}},
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, stores)
	}
}
