// Package agg orchestrates the catalog and pricing providers into merged,
// cached responses. The catalog is the primary source: its errors fail the
// operation. Pricing is enrichment: its errors are logged and the
// operation degrades to catalog-only data.
package agg

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gamescout/gamescout/internal/apperr"
	"github.com/gamescout/gamescout/internal/cache"
	"github.com/gamescout/gamescout/internal/cheapshark"
	"github.com/gamescout/gamescout/internal/igdb"
	"github.com/gamescout/gamescout/internal/match"
	"github.com/gamescout/gamescout/internal/metrics"
	domain "github.com/gamescout/gamescout/pkg/types"
)

// Response-cache TTLs. Search results churn quickly; the store directory
// barely changes.
const (
	searchTTL    = 5 * time.Minute
	gameTTL      = 10 * time.Minute
	popularTTL   = 10 * time.Minute
	platformsTTL = 24 * time.Hour
	storesTTL    = 24 * time.Hour
)

const minQueryLen = 2

// Aggregator composes the catalog and pricing clients behind cache-first
// reads. One Aggregator is built at process start and shared by all
// requests; cache and token state live for the process lifetime.
type Aggregator struct {
	catalog igdb.CatalogClient
	pricing cheapshark.PricingClient
	log     *slog.Logger

	searches  *cache.Cache[[]domain.SearchResult]
	games     *cache.Cache[*domain.GameDetails]
	popular   *cache.Cache[[]domain.SearchResult]
	platforms *cache.Cache[[]domain.Platform]
	stores    *cache.Cache[map[string]domain.Store]
}

// New creates an Aggregator over the given provider clients.
func New(
	catalog igdb.CatalogClient,
	pricing cheapshark.PricingClient,
	log *slog.Logger,
) *Aggregator {
	return &Aggregator{
		catalog:   catalog,
		pricing:   pricing,
		log:       log,
		searches:  cache.New[[]domain.SearchResult](searchTTL),
		games:     cache.New[*domain.GameDetails](gameTTL),
		popular:   cache.New[[]domain.SearchResult](popularTTL),
		platforms: cache.New[[]domain.Platform](platformsTTL),
		stores:    cache.New[map[string]domain.Store](storesTTL),
	}
}

// Search returns merged search results for query. The second return value
// reports whether the response was served from cache.
//
// The catalog and pricing searches run concurrently. A pricing failure is
// swallowed (results carry no pricing fields); a catalog failure fails the
// whole operation.
func (a *Aggregator) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, bool, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLen {
		return nil, false, &apperr.ValidationError{
			Reason: fmt.Sprintf("search query must be at least %d characters", minQueryLen),
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > igdb.MaxSearchLimit {
		limit = igdb.MaxSearchLimit
	}

	key := cache.Key("search", match.Normalize(query), strconv.Itoa(limit))
	if cached, ok := a.searches.Get(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("search").Inc()
		return cached, true, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("search").Inc()

	var (
		wg           sync.WaitGroup
		catalogGames []igdb.Game
		catalogErr   error
		pricingGames []cheapshark.Game
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		catalogGames, catalogErr = a.catalog.SearchByName(ctx, query, limit)
	}()
	go func() {
		defer wg.Done()
		games, err := a.pricing.SearchByTitle(ctx, query)
		if err != nil {
			// Pricing is enrichment, never a blocking dependency.
			a.log.Warn("pricing search failed, continuing without prices",
				"query", query, "error", err)
			metrics.EnrichmentFailuresTotal.Inc()
			return
		}
		pricingGames = games
	}()
	wg.Wait()

	if catalogErr != nil {
		return nil, false, fmt.Errorf("catalog search: %w", catalogErr)
	}

	results := make([]domain.SearchResult, 0, len(catalogGames))
	for i := range catalogGames {
		r := toSearchResult(&catalogGames[i])
		if outcome := match.Match(r.Name, pricingGames); outcome.Found() {
			r.CheapestPrice = outcome.Game.Cheapest
			r.PricingGameID = outcome.Game.GameID
		}
		results = append(results, r)
	}

	a.searches.Set(key, results)
	return results, false, nil
}

// Details returns the fully-merged record for one catalog game id.
func (a *Aggregator) Details(ctx context.Context, id int64) (*domain.GameDetails, bool, error) {
	key := cache.Key("game", strconv.FormatInt(id, 10))
	if cached, ok := a.games.Get(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("game").Inc()
		return cached, true, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("game").Inc()

	game, err := a.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("catalog lookup: %w", err)
	}
	if game == nil {
		return nil, false, &apperr.NotFoundError{
			Kind: "game",
			ID:   strconv.FormatInt(id, 10),
		}
	}

	details := a.enrich(ctx, game)
	a.games.Set(key, details)
	return details, false, nil
}

// DetailsBySlug is Details keyed by catalog slug instead of id.
func (a *Aggregator) DetailsBySlug(ctx context.Context, slug string) (*domain.GameDetails, bool, error) {
	key := cache.Key("game", "slug", slug)
	if cached, ok := a.games.Get(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("game").Inc()
		return cached, true, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("game").Inc()

	game, err := a.catalog.GetBySlug(ctx, slug)
	if err != nil {
		return nil, false, fmt.Errorf("catalog lookup: %w", err)
	}
	if game == nil {
		return nil, false, &apperr.NotFoundError{Kind: "game", ID: slug}
	}

	details := a.enrich(ctx, game)
	a.games.Set(key, details)
	return details, false, nil
}

// enrich attaches pricing data to a catalog game. Every failure inside the
// enrichment branch is logged and swallowed; the returned record is valid
// with or without pricing fields.
func (a *Aggregator) enrich(ctx context.Context, game *igdb.Game) *domain.GameDetails {
	details := toGameDetails(game)

	if err := a.attachPricing(ctx, game.Name, details); err != nil {
		a.log.Warn("pricing enrichment failed, returning catalog-only details",
			"game", game.Name, "error", err)
		metrics.EnrichmentFailuresTotal.Inc()
	}

	return details
}

func (a *Aggregator) attachPricing(ctx context.Context, name string, details *domain.GameDetails) error {
	candidates, err := a.pricing.SearchByTitle(ctx, name)
	if err != nil {
		return fmt.Errorf("pricing search: %w", err)
	}

	outcome := match.Match(name, candidates)
	if !outcome.Found() {
		return nil
	}
	if outcome.Kind == match.KindFallback {
		a.log.Debug("no exact pricing match, using top search result",
			"game", name, "candidate", outcome.Game.External)
	}

	// Deals and the store directory are independent; fetch them jointly.
	var (
		deals    *cheapshark.GameDetails
		storeMap map[string]domain.Store
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		deals, err = a.pricing.GetDealsForGame(gctx, outcome.Game.GameID)
		if err != nil {
			return fmt.Errorf("pricing deals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		storeMap, err = a.storeDirectory(gctx)
		if err != nil {
			return fmt.Errorf("store directory: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	sorted := make([]cheapshark.Deal, len(deals.Deals))
	copy(sorted, deals.Deals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dealPrice(sorted[i]) < dealPrice(sorted[j])
	})

	details.Deals = make([]domain.Deal, 0, len(sorted))
	for _, d := range sorted {
		store, known := storeMap[d.StoreID]
		if !known {
			store = domain.Store{Name: "Store " + d.StoreID}
		}
		details.Deals = append(details.Deals, domain.Deal{
			StoreName:   store.Name,
			StoreIcon:   store.Icon,
			Price:       d.Price,
			RetailPrice: d.RetailPrice,
			Savings:     d.Savings,
			DealURL:     cheapshark.DealRedirectURL(d.DealID),
		})
	}

	if deals.CheapestPriceEver.Price != "" {
		details.CheapestPriceEver = &domain.PricePoint{
			Price: deals.CheapestPriceEver.Price,
			Date:  formatDate(deals.CheapestPriceEver.Date),
		}
	}

	return nil
}

// storeDirectory returns the pricing store map, cache-backed with a long
// TTL since the directory changes rarely.
func (a *Aggregator) storeDirectory(ctx context.Context) (map[string]domain.Store, error) {
	if cached, ok := a.stores.Get("stores"); ok {
		metrics.CacheHitsTotal.WithLabelValues("stores").Inc()
		return cached, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("stores").Inc()

	stores, err := a.pricing.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	storeMap := toStoreMap(stores)
	a.stores.Set("stores", storeMap)
	return storeMap, nil
}

// Stores returns the pricing store directory as a list.
func (a *Aggregator) Stores(ctx context.Context) ([]domain.Store, error) {
	storeMap, err := a.storeDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}

	out := make([]domain.Store, 0, len(storeMap))
	for _, s := range storeMap {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Popular returns the catalog's popular games, without pricing enrichment.
func (a *Aggregator) Popular(ctx context.Context, limit int) ([]domain.SearchResult, bool, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > igdb.MaxSearchLimit {
		limit = igdb.MaxSearchLimit
	}

	key := cache.Key("popular", strconv.Itoa(limit))
	if cached, ok := a.popular.Get(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("popular").Inc()
		return cached, true, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("popular").Inc()

	games, err := a.catalog.ListPopular(ctx, limit)
	if err != nil {
		return nil, false, fmt.Errorf("catalog popular: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(games))
	for i := range games {
		results = append(results, toSearchResult(&games[i]))
	}

	a.popular.Set(key, results)
	return results, false, nil
}

// ByPlatform returns the top-rated catalog games for one platform, without
// pricing enrichment.
func (a *Aggregator) ByPlatform(ctx context.Context, platformID int64, limit int) ([]domain.SearchResult, bool, error) {
	if platformID <= 0 {
		return nil, false, &apperr.ValidationError{Reason: "platform id must be positive"}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > igdb.MaxSearchLimit {
		limit = igdb.MaxSearchLimit
	}

	key := cache.Key("platform", strconv.FormatInt(platformID, 10), strconv.Itoa(limit))
	if cached, ok := a.popular.Get(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("popular").Inc()
		return cached, true, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("popular").Inc()

	games, err := a.catalog.ListByPlatform(ctx, platformID, limit)
	if err != nil {
		return nil, false, fmt.Errorf("catalog platform games: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(games))
	for i := range games {
		results = append(results, toSearchResult(&games[i]))
	}

	a.popular.Set(key, results)
	return results, false, nil
}

// Platforms returns the catalog's platform directory.
func (a *Aggregator) Platforms(ctx context.Context) ([]domain.Platform, bool, error) {
	if cached, ok := a.platforms.Get("platforms"); ok {
		metrics.CacheHitsTotal.WithLabelValues("platforms").Inc()
		return cached, true, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("platforms").Inc()

	platforms, err := a.catalog.ListPlatforms(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("catalog platforms: %w", err)
	}

	out := make([]domain.Platform, 0, len(platforms))
	for _, p := range platforms {
		dp := domain.Platform{ID: p.ID, Name: p.Name, Abbreviation: p.Abbreviation}
		if p.PlatformFamily != nil {
			dp.Family = p.PlatformFamily.Name
		}
		out = append(out, dp)
	}

	a.platforms.Set("platforms", out)
	return out, false, nil
}

// Cleanup evicts expired entries from every response cache and returns the
// total evicted. Invoked periodically by the janitor.
func (a *Aggregator) Cleanup() int {
	removed := a.searches.Cleanup() +
		a.games.Cleanup() +
		a.popular.Cleanup() +
		a.platforms.Cleanup() +
		a.stores.Cleanup()
	metrics.CacheEvictionsTotal.Add(float64(removed))
	return removed
}

// ClearCaches drops every cached response. Test escape hatch.
func (a *Aggregator) ClearCaches() {
	a.searches.Clear()
	a.games.Clear()
	a.popular.Clear()
	a.platforms.Clear()
	a.stores.Clear()
}

// dealPrice parses a string-encoded deal price for ordering. Unparseable
// prices sort last.
func dealPrice(d cheapshark.Deal) float64 {
	v, err := strconv.ParseFloat(d.Price, 64)
	if err != nil {
		return float64(1 << 62)
	}
	return v
}
