// Package handlers implements HTTP handlers for the gamescout API.
package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/gamescout/gamescout/pkg/types"
)

// GameService is the aggregation surface the game endpoints depend on.
type GameService interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, bool, error)
	Details(ctx context.Context, id int64) (*domain.GameDetails, bool, error)
	DetailsBySlug(ctx context.Context, slug string) (*domain.GameDetails, bool, error)
	Popular(ctx context.Context, limit int) ([]domain.SearchResult, bool, error)
}

// GamesHandler handles game search and detail endpoints.
type GamesHandler struct {
	svc GameService
}

// NewGamesHandler creates a new GamesHandler.
func NewGamesHandler(svc GameService) *GamesHandler {
	return &GamesHandler{svc: svc}
}

// --- Input/Output types ---

// SearchGamesInput is the input for the game search endpoint.
type SearchGamesInput struct {
	Query string `query:"q"     doc:"Game title to search for"             example:"witcher 3"`
	Limit int    `query:"limit" doc:"Maximum results to return (default 20)" minimum:"1" maximum:"50"`
}

// SearchGamesOutput is the response for the game search endpoint.
type SearchGamesOutput struct {
	Body struct {
		Results []domain.SearchResult `json:"results"`
		Total   int                   `json:"total"`
		Cached  bool                  `json:"cached"`
	}
}

// GetGameInput is the input for getting a game by catalog ID.
type GetGameInput struct {
	ID int64 `path:"id" doc:"Catalog game ID" example:"1942"`
}

// GetGameBySlugInput is the input for getting a game by slug.
type GetGameBySlugInput struct {
	Slug string `path:"slug" doc:"Catalog game slug" example:"the-witcher-3-wild-hunt"`
}

// GetGameOutput is the response for the game detail endpoints.
type GetGameOutput struct {
	Body struct {
		Game   domain.GameDetails `json:"game"`
		Cached bool               `json:"cached"`
	}
}

// PopularGamesInput is the input for the popular games endpoint.
type PopularGamesInput struct {
	Limit int `query:"limit" doc:"Maximum results to return (default 20)" minimum:"1" maximum:"50"`
}

// PopularGamesOutput is the response for the popular games endpoint.
type PopularGamesOutput struct {
	Body struct {
		Results []domain.SearchResult `json:"results"`
		Total   int                   `json:"total"`
		Cached  bool                  `json:"cached"`
	}
}

// --- Handlers ---

// Search returns catalog results for a title query, enriched with the
// cheapest known price where the pricing provider has a match.
func (h *GamesHandler) Search(
	ctx context.Context,
	input *SearchGamesInput,
) (*SearchGamesOutput, error) {
	results, cached, err := h.svc.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, mapError(err)
	}

	out := &SearchGamesOutput{}
	out.Body.Results = results
	out.Body.Total = len(results)
	out.Body.Cached = cached
	return out, nil
}

// Get returns the full detail view for a single game by catalog ID.
func (h *GamesHandler) Get(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	details, cached, err := h.svc.Details(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	out := &GetGameOutput{}
	out.Body.Game = *details
	out.Body.Cached = cached
	return out, nil
}

// GetBySlug returns the full detail view for a single game by catalog slug.
func (h *GamesHandler) GetBySlug(
	ctx context.Context,
	input *GetGameBySlugInput,
) (*GetGameOutput, error) {
	details, cached, err := h.svc.DetailsBySlug(ctx, input.Slug)
	if err != nil {
		return nil, mapError(err)
	}

	out := &GetGameOutput{}
	out.Body.Game = *details
	out.Body.Cached = cached
	return out, nil
}

// Popular returns highly rated games from the catalog.
func (h *GamesHandler) Popular(
	ctx context.Context,
	input *PopularGamesInput,
) (*PopularGamesOutput, error) {
	results, cached, err := h.svc.Popular(ctx, input.Limit)
	if err != nil {
		return nil, mapError(err)
	}

	out := &PopularGamesOutput{}
	out.Body.Results = results
	out.Body.Total = len(results)
	out.Body.Cached = cached
	return out, nil
}

// RegisterGameRoutes registers game endpoints with the Huma API.
func RegisterGameRoutes(api huma.API, h *GamesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-games",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/search",
		Summary:     "Search games",
		Description: "Searches the catalog by title and annotates results with the cheapest known price.",
		Tags:        []string{"games"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "get-popular-games",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/popular",
		Summary:     "List popular games",
		Description: "Returns highly rated games from the catalog.",
		Tags:        []string{"games"},
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.Popular)

	huma.Register(api, huma.Operation{
		OperationID: "get-game",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/{id}",
		Summary:     "Get game details",
		Description: "Returns full game details including platforms, companies, and current deals.",
		Tags:        []string{"games"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "get-game-by-slug",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/slug/{slug}",
		Summary:     "Get game details by slug",
		Description: "Returns full game details looked up by catalog slug.",
		Tags:        []string{"games"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.GetBySlug)
}
