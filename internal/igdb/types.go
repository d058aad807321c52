package igdb

// Game is an IGDB game record in the wire shape of the /games endpoint.
// Fields the query did not project arrive as zero values; optional numeric
// ratings use pointers so a missing rating is never mistaken for 0.
type Game struct {
	ID                    int64             `json:"id"`
	Name                  string            `json:"name"`
	Slug                  string            `json:"slug"`
	Summary               string            `json:"summary,omitempty"`
	Storyline             string            `json:"storyline,omitempty"`
	Rating                *float64          `json:"rating,omitempty"`
	RatingCount           *int              `json:"rating_count,omitempty"`
	AggregatedRating      *float64          `json:"aggregated_rating,omitempty"`
	AggregatedRatingCount *int              `json:"aggregated_rating_count,omitempty"`
	TotalRating           *float64          `json:"total_rating,omitempty"`
	TotalRatingCount      *int              `json:"total_rating_count,omitempty"`
	FirstReleaseDate      int64             `json:"first_release_date,omitempty"`
	Cover                 *Image            `json:"cover,omitempty"`
	Platforms             []Platform        `json:"platforms,omitempty"`
	Genres                []Genre           `json:"genres,omitempty"`
	Screenshots           []Image           `json:"screenshots,omitempty"`
	Websites              []Website         `json:"websites,omitempty"`
	InvolvedCompanies     []InvolvedCompany `json:"involved_companies,omitempty"`
}

// Image references an IGDB-hosted image by id.
type Image struct {
	ID      int64  `json:"id"`
	ImageID string `json:"image_id"`
}

// Platform is an IGDB platform record.
type Platform struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Abbreviation   string          `json:"abbreviation,omitempty"`
	PlatformFamily *PlatformFamily `json:"platform_family,omitempty"`
}

// PlatformFamily groups related platforms (e.g. PlayStation).
type PlatformFamily struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Genre is an IGDB genre record.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Website is an external link tagged with IGDB's numeric category code.
type Website struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Category int    `json:"category"`
}

// InvolvedCompany relates a company to a game with role flags; developer
// and publisher lists are derived from these.
type InvolvedCompany struct {
	ID        int64   `json:"id"`
	Company   Company `json:"company"`
	Developer bool    `json:"developer"`
	Publisher bool    `json:"publisher"`
}

// Company is an IGDB company record.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
