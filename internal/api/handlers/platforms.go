package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/gamescout/gamescout/pkg/types"
)

// PlatformService is the aggregation surface the platform endpoints depend on.
type PlatformService interface {
	Platforms(ctx context.Context) ([]domain.Platform, bool, error)
	ByPlatform(ctx context.Context, platformID int64, limit int) ([]domain.SearchResult, bool, error)
}

// PlatformsHandler handles the platform directory endpoint.
type PlatformsHandler struct {
	svc PlatformService
}

// NewPlatformsHandler creates a new PlatformsHandler.
func NewPlatformsHandler(svc PlatformService) *PlatformsHandler {
	return &PlatformsHandler{svc: svc}
}

// ListPlatformsInput is the input for the platform directory endpoint.
type ListPlatformsInput struct{}

// ListPlatformsOutput is the response for the platform directory endpoint.
type ListPlatformsOutput struct {
	Body struct {
		Platforms []domain.Platform `json:"platforms"`
		Total     int               `json:"total"`
		Cached    bool              `json:"cached"`
	}
}

// PlatformGamesInput is the input for the per-platform top games endpoint.
type PlatformGamesInput struct {
	ID    int64 `path:"id"     doc:"Catalog platform ID"                      example:"130"`
	Limit int   `query:"limit" doc:"Maximum results to return (default 20)" minimum:"1" maximum:"50"`
}

// PlatformGamesOutput is the response for the per-platform top games endpoint.
type PlatformGamesOutput struct {
	Body struct {
		Results []domain.SearchResult `json:"results"`
		Total   int                   `json:"total"`
		Cached  bool                  `json:"cached"`
	}
}

// List returns the catalog platform directory.
func (h *PlatformsHandler) List(
	ctx context.Context,
	_ *ListPlatformsInput,
) (*ListPlatformsOutput, error) {
	platforms, cached, err := h.svc.Platforms(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	out := &ListPlatformsOutput{}
	out.Body.Platforms = platforms
	out.Body.Total = len(platforms)
	out.Body.Cached = cached
	return out, nil
}

// Games returns the top-rated games for one platform.
func (h *PlatformsHandler) Games(
	ctx context.Context,
	input *PlatformGamesInput,
) (*PlatformGamesOutput, error) {
	results, cached, err := h.svc.ByPlatform(ctx, input.ID, input.Limit)
	if err != nil {
		return nil, mapError(err)
	}

	out := &PlatformGamesOutput{}
	out.Body.Results = results
	out.Body.Total = len(results)
	out.Body.Cached = cached
	return out, nil
}

// RegisterPlatformRoutes registers platform endpoints with the Huma API.
func RegisterPlatformRoutes(api huma.API, h *PlatformsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-platforms",
		Method:      http.MethodGet,
		Path:        "/api/v1/platforms",
		Summary:     "List platforms",
		Description: "Returns the catalog platform directory sorted by name.",
		Tags:        []string{"platforms"},
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "list-platform-games",
		Method:      http.MethodGet,
		Path:        "/api/v1/platforms/{id}/games",
		Summary:     "List top games for a platform",
		Description: "Returns the highest rated catalog games for one platform.",
		Tags:        []string{"platforms"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.Games)
}
