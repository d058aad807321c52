package agg

import (
	"time"

	"github.com/gamescout/gamescout/internal/cheapshark"
	"github.com/gamescout/gamescout/internal/igdb"
	domain "github.com/gamescout/gamescout/pkg/types"
)

// toSearchResult projects a catalog game into the search result shape.
func toSearchResult(g *igdb.Game) domain.SearchResult {
	return domain.SearchResult{
		ID:               g.ID,
		Name:             g.Name,
		Slug:             g.Slug,
		Summary:          g.Summary,
		Rating:           g.Rating,
		AggregatedRating: g.AggregatedRating,
		TotalRating:      g.TotalRating,
		ReleaseDate:      formatDate(g.FirstReleaseDate),
		CoverURL:         coverURL(g.Cover),
		Platforms:        toPlatforms(g.Platforms),
		Genres:           toGenres(g.Genres),
	}
}

// toGameDetails builds the full merged record from a catalog game, without
// pricing enrichment.
func toGameDetails(g *igdb.Game) *domain.GameDetails {
	d := &domain.GameDetails{
		ID:                    g.ID,
		Name:                  g.Name,
		Slug:                  g.Slug,
		Summary:               g.Summary,
		Storyline:             g.Storyline,
		Rating:                g.Rating,
		RatingCount:           g.RatingCount,
		AggregatedRating:      g.AggregatedRating,
		AggregatedRatingCount: g.AggregatedRatingCount,
		TotalRating:           g.TotalRating,
		TotalRatingCount:      g.TotalRatingCount,
		ReleaseDate:           formatDate(g.FirstReleaseDate),
		CoverURL:              coverURL(g.Cover),
		Platforms:             toPlatforms(g.Platforms),
		Genres:                toGenres(g.Genres),
	}

	for _, s := range g.Screenshots {
		if s.ImageID != "" {
			d.Screenshots = append(d.Screenshots, igdb.ImageURL(s.ImageID, igdb.SizeScreenshotBig))
		}
	}

	for _, ic := range g.InvolvedCompanies {
		if ic.Developer {
			d.Developers = append(d.Developers, ic.Company.Name)
		}
		if ic.Publisher {
			d.Publishers = append(d.Publishers, ic.Company.Name)
		}
	}

	for _, w := range g.Websites {
		d.Websites = append(d.Websites, domain.Website{
			URL:      w.URL,
			Category: igdb.WebsiteCategoryName(w.Category),
		})
	}

	return d
}

func toPlatforms(in []igdb.Platform) []domain.Platform {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Platform, 0, len(in))
	for _, p := range in {
		dp := domain.Platform{
			ID:           p.ID,
			Name:         p.Name,
			Abbreviation: p.Abbreviation,
		}
		if p.PlatformFamily != nil {
			dp.Family = p.PlatformFamily.Name
		}
		out = append(out, dp)
	}
	return out
}

func toGenres(in []igdb.Genre) []domain.Genre {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Genre, 0, len(in))
	for _, g := range in {
		out = append(out, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return out
}

func toStoreMap(stores []cheapshark.Store) map[string]domain.Store {
	out := make(map[string]domain.Store, len(stores))
	for _, s := range stores {
		store := domain.Store{
			ID:   s.StoreID,
			Name: s.StoreName,
		}
		if s.Images.Icon != "" {
			store.Icon = cheapshark.ImageURL(s.Images.Icon)
		}
		out[s.StoreID] = store
	}
	return out
}

func coverURL(cover *igdb.Image) string {
	if cover == nil || cover.ImageID == "" {
		return ""
	}
	return igdb.ImageURL(cover.ImageID, igdb.SizeCoverBig)
}

// formatDate renders a Unix timestamp in seconds as a UTC calendar date.
// Zero (field absent upstream) renders as empty.
func formatDate(sec int64) string {
	if sec == 0 {
		return ""
	}
	return time.Unix(sec, 0).UTC().Format("2006-01-02")
}
