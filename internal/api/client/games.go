package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/gamescout/gamescout/pkg/types"
)

// SearchResponse wraps a game search response.
type SearchResponse struct {
	Results []domain.SearchResult `json:"results"`
	Total   int                   `json:"total"`
	Cached  bool                  `json:"cached"`
}

// GameResponse wraps a game detail response.
type GameResponse struct {
	Game   domain.GameDetails `json:"game"`
	Cached bool               `json:"cached"`
}

// SearchGames searches the catalog by title.
func (c *Client) SearchGames(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/games/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetGame returns full details for a game by catalog ID.
func (c *Client) GetGame(ctx context.Context, id int64) (*GameResponse, error) {
	var resp GameResponse
	if err := c.get(ctx, fmt.Sprintf("/api/v1/games/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetGameBySlug returns full details for a game by catalog slug.
func (c *Client) GetGameBySlug(ctx context.Context, slug string) (*GameResponse, error) {
	var resp GameResponse
	if err := c.get(ctx, "/api/v1/games/slug/"+url.PathEscape(slug), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PopularGames returns highly rated games from the catalog.
func (c *Client) PopularGames(ctx context.Context, limit int) (*SearchResponse, error) {
	path := "/api/v1/games/popular"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp SearchResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
