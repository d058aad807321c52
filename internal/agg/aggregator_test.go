package agg_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamescout/gamescout/internal/agg"
	"github.com/gamescout/gamescout/internal/apperr"
	"github.com/gamescout/gamescout/internal/cheapshark"
	"github.com/gamescout/gamescout/internal/igdb"
)

// fakeCatalog implements igdb.CatalogClient with canned responses and call
// counters.
type fakeCatalog struct {
	games     []igdb.Game
	byID      map[int64]*igdb.Game
	bySlug    map[string]*igdb.Game
	platforms []igdb.Platform
	err       error

	searchCalls atomic.Int32
	getCalls    atomic.Int32
}

func (f *fakeCatalog) SearchByName(_ context.Context, _ string, _ int) ([]igdb.Game, error) {
	f.searchCalls.Add(1)
	return f.games, f.err
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*igdb.Game, error) {
	f.getCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeCatalog) GetBySlug(_ context.Context, slug string) (*igdb.Game, error) {
	f.getCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.bySlug[slug], nil
}

func (f *fakeCatalog) ListPlatforms(context.Context) ([]igdb.Platform, error) {
	return f.platforms, f.err
}

func (f *fakeCatalog) ListPopular(_ context.Context, _ int) ([]igdb.Game, error) {
	return f.games, f.err
}

func (f *fakeCatalog) ListByPlatform(_ context.Context, _ int64, _ int) ([]igdb.Game, error) {
	return f.games, f.err
}

// fakePricing implements cheapshark.PricingClient.
type fakePricing struct {
	games     []cheapshark.Game
	stores    []cheapshark.Store
	deals     *cheapshark.GameDetails
	searchErr error
	storesErr error
	dealsErr  error

	searchCalls atomic.Int32
	dealsCalls  atomic.Int32
}

func (f *fakePricing) SearchByTitle(_ context.Context, _ string) ([]cheapshark.Game, error) {
	f.searchCalls.Add(1)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.games, nil
}

func (f *fakePricing) ListStores(context.Context) ([]cheapshark.Store, error) {
	if f.storesErr != nil {
		return nil, f.storesErr
	}
	return f.stores, nil
}

func (f *fakePricing) GetDealsForGame(_ context.Context, _ string) (*cheapshark.GameDetails, error) {
	f.dealsCalls.Add(1)
	if f.dealsErr != nil {
		return nil, f.dealsErr
	}
	return f.deals, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func witcher() *igdb.Game {
	rating := 92.5
	return &igdb.Game{
		ID:          1942,
		Name:        "The Witcher 3",
		Slug:        "the-witcher-3",
		TotalRating: &rating,
	}
}

func TestSearch_ValidatesQueryBeforeAnyNetworkCall(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{}
	pricing := &fakePricing{}
	a := agg.New(catalog, pricing, discard())

	for _, q := range []string{"a", " a ", "", "  "} {
		_, _, err := a.Search(context.Background(), q, 20)

		var valErr *apperr.ValidationError
		require.ErrorAs(t, err, &valErr, "query %q", q)
	}

	assert.Equal(t, int32(0), catalog.searchCalls.Load())
	assert.Equal(t, int32(0), pricing.searchCalls.Load())
}

func TestSearch_MergesExactPricingMatch(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{games: []igdb.Game{*witcher()}}
	pricing := &fakePricing{games: []cheapshark.Game{
		{GameID: "9", External: "The Witcher 3: Wild Hunt", Cheapest: "14.99"},
		{GameID: "7", External: "The Witcher 3", Cheapest: "9.99"},
	}}
	a := agg.New(catalog, pricing, discard())

	results, cached, err := a.Search(context.Background(), "witcher 3", 20)
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, results, 1)

	// The exact normalized match wins over the provider's first result.
	assert.Equal(t, "9.99", results[0].CheapestPrice)
	assert.Equal(t, "7", results[0].PricingGameID)
}

func TestSearch_CachesResults(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{games: []igdb.Game{*witcher()}}
	pricing := &fakePricing{}
	a := agg.New(catalog, pricing, discard())

	_, cached, err := a.Search(context.Background(), "Witcher 3", 20)
	require.NoError(t, err)
	assert.False(t, cached)

	// Same query modulo case and punctuation hits the same cache entry.
	results, cached, err := a.Search(context.Background(), "witcher-3", 20)
	require.NoError(t, err)
	assert.True(t, cached)
	require.Len(t, results, 1)

	assert.Equal(t, int32(1), catalog.searchCalls.Load())

	// A different limit is a different cache key.
	_, cached, err = a.Search(context.Background(), "witcher 3", 10)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, int32(2), catalog.searchCalls.Load())
}

func TestSearch_PricingFailureDegradesGracefully(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{games: []igdb.Game{
		*witcher(),
		{ID: 2, Name: "The Witcher 2", Slug: "the-witcher-2"},
	}}
	pricing := &fakePricing{searchErr: apperr.Upstream(apperr.ProviderPricing, 503)}
	a := agg.New(catalog, pricing, discard())

	results, cached, err := a.Search(context.Background(), "witcher", 20)
	require.NoError(t, err, "pricing failure must not fail the search")
	assert.False(t, cached)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Empty(t, r.CheapestPrice, "no price must be attached on pricing failure")
		assert.Empty(t, r.PricingGameID)
	}
}

func TestSearch_CatalogFailurePropagates(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{err: apperr.Upstream(apperr.ProviderCatalog, 500)}
	pricing := &fakePricing{games: []cheapshark.Game{{GameID: "1", External: "X"}}}
	a := agg.New(catalog, pricing, discard())

	_, _, err := a.Search(context.Background(), "witcher", 20)
	require.Error(t, err)

	var upErr *apperr.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, apperr.ProviderCatalog, upErr.Provider)
}

func TestDetails_SortsDealsAndResolvesStores(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{byID: map[int64]*igdb.Game{1942: witcher()}}
	pricing := &fakePricing{
		games: []cheapshark.Game{{GameID: "7", External: "The Witcher 3"}},
		deals: &cheapshark.GameDetails{
			CheapestPriceEver: cheapshark.CheapestRef{Price: "2.99", Date: 1574830000},
			Deals: []cheapshark.Deal{
				{StoreID: "1", DealID: "d1", Price: "19.99", RetailPrice: "39.99", Savings: "50.00"},
				{StoreID: "99", DealID: "d2", Price: "4.99", RetailPrice: "39.99", Savings: "87.52"},
				{StoreID: "2", DealID: "d3", Price: "9.99", RetailPrice: "39.99", Savings: "75.01"},
			},
		},
		stores: []cheapshark.Store{
			{StoreID: "1", StoreName: "Steam", Images: cheapshark.StoreImages{Icon: "/img/1.png"}},
			{StoreID: "2", StoreName: "GOG"},
		},
	}
	a := agg.New(catalog, pricing, discard())

	details, cached, err := a.Details(context.Background(), 1942)
	require.NoError(t, err)
	assert.False(t, cached)

	require.Len(t, details.Deals, 3)
	assert.Equal(t, "4.99", details.Deals[0].Price)
	assert.Equal(t, "9.99", details.Deals[1].Price)
	assert.Equal(t, "19.99", details.Deals[2].Price)

	// Unknown store ids get a synthesized label instead of being dropped.
	assert.Equal(t, "Store 99", details.Deals[0].StoreName)
	assert.Equal(t, "GOG", details.Deals[1].StoreName)
	assert.Equal(t, "Steam", details.Deals[2].StoreName)
	assert.Equal(t, "https://www.cheapshark.com/img/1.png", details.Deals[2].StoreIcon)
	assert.Contains(t, details.Deals[0].DealURL, "dealID=d2")

	require.NotNil(t, details.CheapestPriceEver)
	assert.Equal(t, "2.99", details.CheapestPriceEver.Price)
	assert.Equal(t, "2019-11-27", details.CheapestPriceEver.Date)
}

func TestDetails_NotFoundSkipsPricing(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{byID: map[int64]*igdb.Game{}}
	pricing := &fakePricing{}
	a := agg.New(catalog, pricing, discard())

	_, _, err := a.Details(context.Background(), 999999999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	assert.Equal(t, int32(0), pricing.searchCalls.Load(),
		"pricing enrichment must never run for an unknown game")
}

func TestDetails_EnrichmentFailureDegradesGracefully(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{byID: map[int64]*igdb.Game{1942: witcher()}}
	pricing := &fakePricing{
		games:    []cheapshark.Game{{GameID: "7", External: "The Witcher 3"}},
		dealsErr: errors.New("pricing exploded"),
	}
	a := agg.New(catalog, pricing, discard())

	details, _, err := a.Details(context.Background(), 1942)
	require.NoError(t, err, "enrichment failure must not fail the details call")
	assert.Equal(t, "The Witcher 3", details.Name)
	assert.Nil(t, details.Deals)
	assert.Nil(t, details.CheapestPriceEver)
}

func TestDetails_NoPricingCandidatesLeavesFieldsOmitted(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{byID: map[int64]*igdb.Game{1942: witcher()}}
	pricing := &fakePricing{games: nil}
	a := agg.New(catalog, pricing, discard())

	details, _, err := a.Details(context.Background(), 1942)
	require.NoError(t, err)
	assert.Nil(t, details.Deals)
	assert.Nil(t, details.CheapestPriceEver)
	assert.Equal(t, int32(0), pricing.dealsCalls.Load())
}

func TestDetails_CachesMergedRecord(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{byID: map[int64]*igdb.Game{1942: witcher()}}
	pricing := &fakePricing{}
	a := agg.New(catalog, pricing, discard())

	_, cached, err := a.Details(context.Background(), 1942)
	require.NoError(t, err)
	assert.False(t, cached)

	_, cached, err = a.Details(context.Background(), 1942)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, int32(1), catalog.getCalls.Load())
}

func TestDetailsBySlug(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{bySlug: map[string]*igdb.Game{"the-witcher-3": witcher()}}
	pricing := &fakePricing{}
	a := agg.New(catalog, pricing, discard())

	details, cached, err := a.DetailsBySlug(context.Background(), "the-witcher-3")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, int64(1942), details.ID)

	_, _, err = a.DetailsBySlug(context.Background(), "no-such-game")
	assert.True(t, apperr.IsNotFound(err))
}

func TestDetails_TransformsCatalogFields(t *testing.T) {
	t.Parallel()

	ratingCount := 120
	game := witcher()
	game.RatingCount = &ratingCount
	game.FirstReleaseDate = 1431993600 // 2015-05-19
	game.Cover = &igdb.Image{ImageID: "co1wyy"}
	game.Screenshots = []igdb.Image{{ImageID: "sc1"}, {ImageID: "sc2"}}
	game.Websites = []igdb.Website{
		{URL: "https://thewitcher.com", Category: 1},
		{URL: "https://example.com/unknown", Category: 42},
	}
	game.InvolvedCompanies = []igdb.InvolvedCompany{
		{Company: igdb.Company{Name: "CD Projekt Red"}, Developer: true},
		{Company: igdb.Company{Name: "CD Projekt"}, Publisher: true},
		{Company: igdb.Company{Name: "Both Hats"}, Developer: true, Publisher: true},
	}

	catalog := &fakeCatalog{byID: map[int64]*igdb.Game{1942: game}}
	a := agg.New(catalog, &fakePricing{}, discard())

	details, _, err := a.Details(context.Background(), 1942)
	require.NoError(t, err)

	assert.Equal(t, "2015-05-19", details.ReleaseDate)
	assert.Equal(t, "https://images.igdb.com/igdb/image/upload/t_cover_big/co1wyy.jpg", details.CoverURL)
	assert.Len(t, details.Screenshots, 2)
	assert.Equal(t, []string{"CD Projekt Red", "Both Hats"}, details.Developers)
	assert.Equal(t, []string{"CD Projekt", "Both Hats"}, details.Publishers)
	require.Len(t, details.Websites, 2)
	assert.Equal(t, "official", details.Websites[0].Category)
	assert.Equal(t, "other", details.Websites[1].Category)
	require.NotNil(t, details.RatingCount)
	assert.Equal(t, 120, *details.RatingCount)
}

func TestStores_CachedDirectory(t *testing.T) {
	t.Parallel()

	pricing := &fakePricing{stores: []cheapshark.Store{
		{StoreID: "2", StoreName: "GOG"},
		{StoreID: "1", StoreName: "Steam"},
	}}
	a := agg.New(&fakeCatalog{}, pricing, discard())

	stores, err := a.Stores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Steam", stores[0].Name, "stores are sorted by id")

	// Second call is served from the 24h store cache.
	pricing.storesErr = errors.New("directory down")
	stores, err = a.Stores(context.Background())
	require.NoError(t, err)
	assert.Len(t, stores, 2)
}

func TestPopularAndPlatforms(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		games: []igdb.Game{*witcher()},
		platforms: []igdb.Platform{
			{ID: 48, Name: "PlayStation 4", Abbreviation: "PS4",
				PlatformFamily: &igdb.PlatformFamily{Name: "PlayStation"}},
		},
	}
	a := agg.New(catalog, &fakePricing{}, discard())

	popular, cached, err := a.Popular(context.Background(), 10)
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, popular, 1)
	assert.Empty(t, popular[0].CheapestPrice)

	_, cached, err = a.Popular(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, cached)

	platforms, cached, err := a.Platforms(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, platforms, 1)
	assert.Equal(t, "PlayStation", platforms[0].Family)

	_, cached, err = a.Platforms(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
}

func TestByPlatform(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{games: []igdb.Game{*witcher()}}
	a := agg.New(catalog, &fakePricing{}, discard())

	_, _, err := a.ByPlatform(context.Background(), 0, 10)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)

	results, cached, err := a.ByPlatform(context.Background(), 130, 10)
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].CheapestPrice)

	_, cached, err = a.ByPlatform(context.Background(), 130, 10)
	require.NoError(t, err)
	assert.True(t, cached)
}

func TestCleanupReportsEvictions(t *testing.T) {
	t.Parallel()

	a := agg.New(&fakeCatalog{games: []igdb.Game{*witcher()}}, &fakePricing{}, discard())

	_, _, err := a.Search(context.Background(), "witcher", 20)
	require.NoError(t, err)

	// Nothing has expired yet.
	assert.Equal(t, 0, a.Cleanup())

	a.ClearCaches()
	_, cached, err := a.Search(context.Background(), "witcher", 20)
	require.NoError(t, err)
	assert.False(t, cached)
}
