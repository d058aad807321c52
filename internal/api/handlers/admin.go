package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// CacheAdmin is the cache maintenance surface the admin endpoints depend on.
type CacheAdmin interface {
	Cleanup() int
	ClearCaches()
}

// AdminHandler handles cache maintenance endpoints.
type AdminHandler struct {
	caches CacheAdmin
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(caches CacheAdmin) *AdminHandler {
	return &AdminHandler{caches: caches}
}

// FlushCachesInput is the input for the cache flush endpoint.
type FlushCachesInput struct{}

// FlushCachesOutput is the response for the cache flush endpoint.
type FlushCachesOutput struct {
	Body StatusResponse
}

// CleanupCachesInput is the input for the cache cleanup endpoint.
type CleanupCachesInput struct{}

// CleanupCachesOutput is the response for the cache cleanup endpoint.
type CleanupCachesOutput struct {
	Body struct {
		Evicted int `json:"evicted" doc:"Number of expired entries removed"`
	}
}

// FlushCaches drops every cached response.
func (h *AdminHandler) FlushCaches(
	_ context.Context,
	_ *FlushCachesInput,
) (*FlushCachesOutput, error) {
	h.caches.ClearCaches()
	return &FlushCachesOutput{Body: StatusResponse{Status: "flushed"}}, nil
}

// CleanupCaches removes expired cache entries and reports how many were evicted.
func (h *AdminHandler) CleanupCaches(
	_ context.Context,
	_ *CleanupCachesInput,
) (*CleanupCachesOutput, error) {
	out := &CleanupCachesOutput{}
	out.Body.Evicted = h.caches.Cleanup()
	return out, nil
}

// RegisterAdminRoutes registers cache maintenance endpoints with the Huma API.
func RegisterAdminRoutes(api huma.API, h *AdminHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "flush-caches",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/cache/flush",
		Summary:     "Flush caches",
		Description: "Drops every cached response so the next requests refetch from upstream.",
		Tags:        []string{"admin"},
	}, h.FlushCaches)

	huma.Register(api, huma.Operation{
		OperationID: "cleanup-caches",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/cache/cleanup",
		Summary:     "Clean up caches",
		Description: "Removes expired cache entries immediately instead of waiting for the janitor.",
		Tags:        []string{"admin"},
	}, h.CleanupCaches)
}
