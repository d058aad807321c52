// Package types defines the merged domain records gamescout exposes:
// catalog metadata optionally enriched with pricing data. API handlers,
// the CLI client, and the aggregation layer all share these shapes.
//
// Pricing fields are omitted entirely when no pricing match was found;
// absence of a price is never rendered as a zero price.
package types

// SearchResult is one lightly-merged entry in a search response.
type SearchResult struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Summary          string     `json:"summary,omitempty"`
	Rating           *float64   `json:"rating,omitempty"`
	AggregatedRating *float64   `json:"aggregatedRating,omitempty"`
	TotalRating      *float64   `json:"totalRating,omitempty"`
	ReleaseDate      string     `json:"releaseDate,omitempty"`
	CoverURL         string     `json:"coverUrl,omitempty"`
	Platforms        []Platform `json:"platforms,omitempty"`
	Genres           []Genre    `json:"genres,omitempty"`

	// Pricing enrichment; both set together when a match was found.
	CheapestPrice string `json:"cheapestPrice,omitempty"`
	PricingGameID string `json:"pricingGameId,omitempty"`
}

// GameDetails is the fully-merged record for one game.
type GameDetails struct {
	ID                    int64      `json:"id"`
	Name                  string     `json:"name"`
	Slug                  string     `json:"slug"`
	Summary               string     `json:"summary,omitempty"`
	Storyline             string     `json:"storyline,omitempty"`
	Rating                *float64   `json:"rating,omitempty"`
	RatingCount           *int       `json:"ratingCount,omitempty"`
	AggregatedRating      *float64   `json:"aggregatedRating,omitempty"`
	AggregatedRatingCount *int       `json:"aggregatedRatingCount,omitempty"`
	TotalRating           *float64   `json:"totalRating,omitempty"`
	TotalRatingCount      *int       `json:"totalRatingCount,omitempty"`
	ReleaseDate           string     `json:"releaseDate,omitempty"`
	CoverURL              string     `json:"coverUrl,omitempty"`
	Screenshots           []string   `json:"screenshots,omitempty"`
	Platforms             []Platform `json:"platforms,omitempty"`
	Genres                []Genre    `json:"genres,omitempty"`
	Developers            []string   `json:"developers,omitempty"`
	Publishers            []string   `json:"publishers,omitempty"`
	Websites              []Website  `json:"websites,omitempty"`

	// Pricing enrichment.
	Deals             []Deal      `json:"deals,omitempty"`
	CheapestPriceEver *PricePoint `json:"cheapestPriceEver,omitempty"`
}

// Platform is a game platform reference.
type Platform struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Family       string `json:"family,omitempty"`
}

// Genre is a game genre reference.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Website is an external link with a named category.
type Website struct {
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Deal is one store's offer, enriched with the store's display name and
// icon. Prices stay string-encoded decimals as the pricing provider sends
// them.
type Deal struct {
	StoreName   string `json:"storeName"`
	StoreIcon   string `json:"storeIcon,omitempty"`
	Price       string `json:"price"`
	RetailPrice string `json:"retailPrice"`
	Savings     string `json:"savings"`
	DealURL     string `json:"dealUrl"`
}

// PricePoint is a price at a calendar date (YYYY-MM-DD).
type PricePoint struct {
	Price string `json:"price"`
	Date  string `json:"date"`
}

// Store is a pricing store directory entry.
type Store struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}
