package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/gamescout/gamescout/pkg/types"
)

// StoreService is the aggregation surface the store endpoint depends on.
type StoreService interface {
	Stores(ctx context.Context) ([]domain.Store, error)
}

// StoresHandler handles the pricing store directory endpoint.
type StoresHandler struct {
	svc StoreService
}

// NewStoresHandler creates a new StoresHandler.
func NewStoresHandler(svc StoreService) *StoresHandler {
	return &StoresHandler{svc: svc}
}

// ListStoresInput is the input for the store directory endpoint.
type ListStoresInput struct{}

// ListStoresOutput is the response for the store directory endpoint.
type ListStoresOutput struct {
	Body struct {
		Stores []domain.Store `json:"stores"`
		Total  int            `json:"total"`
	}
}

// List returns the pricing provider's store directory.
func (h *StoresHandler) List(
	ctx context.Context,
	_ *ListStoresInput,
) (*ListStoresOutput, error) {
	stores, err := h.svc.Stores(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	out := &ListStoresOutput{}
	out.Body.Stores = stores
	out.Body.Total = len(stores)
	return out, nil
}

// RegisterStoreRoutes registers store endpoints with the Huma API.
func RegisterStoreRoutes(api huma.API, h *StoresHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-stores",
		Method:      http.MethodGet,
		Path:        "/api/v1/stores",
		Summary:     "List stores",
		Description: "Returns the active storefronts known to the pricing provider.",
		Tags:        []string{"stores"},
		Errors:      []int{http.StatusBadGateway},
	}, h.List)
}
