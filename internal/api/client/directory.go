package client

import (
	"context"
	"fmt"
	"strconv"

	domain "github.com/gamescout/gamescout/pkg/types"
)

// PlatformsResponse wraps a platform directory response.
type PlatformsResponse struct {
	Platforms []domain.Platform `json:"platforms"`
	Total     int               `json:"total"`
	Cached    bool              `json:"cached"`
}

// StoresResponse wraps a store directory response.
type StoresResponse struct {
	Stores []domain.Store `json:"stores"`
	Total  int            `json:"total"`
}

// ListPlatforms returns the catalog platform directory.
func (c *Client) ListPlatforms(ctx context.Context) (*PlatformsResponse, error) {
	var resp PlatformsResponse
	if err := c.get(ctx, "/api/v1/platforms", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlatformGames returns the top-rated games for one platform.
func (c *Client) PlatformGames(ctx context.Context, platformID int64, limit int) (*SearchResponse, error) {
	path := fmt.Sprintf("/api/v1/platforms/%d/games", platformID)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp SearchResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListStores returns the pricing provider's store directory.
func (c *Client) ListStores(ctx context.Context) (*StoresResponse, error) {
	var resp StoresResponse
	if err := c.get(ctx, "/api/v1/stores", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FlushCaches drops every cached response on the server.
func (c *Client) FlushCaches(ctx context.Context) error {
	return c.post(ctx, "/api/v1/admin/cache/flush", nil)
}

// CleanupCaches removes expired cache entries and returns the eviction count.
func (c *Client) CleanupCaches(ctx context.Context) (int, error) {
	var resp struct {
		Evicted int `json:"evicted"`
	}
	if err := c.post(ctx, "/api/v1/admin/cache/cleanup", &resp); err != nil {
		return 0, err
	}
	return resp.Evicted, nil
}
