package handlers

import (
	"context"
	"net/http"

	"github.com/quantfolio/folio-portal/internal/cache"
	"github.com/quantfolio/folio-portal/internal/client"
	"github.com/quantfolio/folio-portal/internal/common"
	"github.com/quantfolio/folio-portal/internal/holdings"
	"github.com/quantfolio/folio-portal/internal/models"
	"github.com/quantfolio/folio-portal/internal/selection"
)

// HoldingsResponse is the aggregated holdings payload: one entry per
// instrument, each carrying its per-portfolio lots for row expansion.
type HoldingsResponse struct {
	Funds  []models.AggregatedHolding `json:"funds"`
	Stocks []models.AggregatedHolding `json:"stocks"`
}

// HoldingsHandler serves consolidated holdings for the selected portfolios.
type HoldingsHandler struct {
	logger    *common.Logger
	fetchFn   func(context.Context, []int) (*client.Holdings, error)
	selection *selection.Store
	dataCache *cache.DataCache
}

// NewHoldingsHandler creates a new holdings handler. fetchFn retrieves raw
// lots from the backing API; dataCache may be nil.
func NewHoldingsHandler(logger *common.Logger, fetchFn func(context.Context, []int) (*client.Holdings, error), sel *selection.Store, dataCache *cache.DataCache) *HoldingsHandler {
	return &HoldingsHandler{
		logger:    logger,
		fetchFn:   fetchFn,
		selection: sel,
		dataCache: dataCache,
	}
}

// ServeHTTP handles GET /api/holdings. A portfolios query parameter
// overrides the stored selection for this request only.
func (h *HoldingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	_, portfolioIDs := h.selection.Effective(r.URL.Query())
	scope := selectionScope(portfolioIDs)

	key := cache.MakeKey(scope, "GET", "/api/holdings")
	if h.dataCache != nil {
		if cached, ok := h.dataCache.Get(key); ok {
			if resp, ok := cached.(*HoldingsResponse); ok {
				WriteData(w, http.StatusOK, resp)
				return
			}
		}
	}

	raw, err := h.fetchFn(r.Context(), portfolioIDs)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to fetch holdings")
		}
		WriteError(w, http.StatusBadGateway, "portfolio API unavailable")
		return
	}

	resp := &HoldingsResponse{
		Funds:  holdings.Aggregate(raw.Funds),
		Stocks: holdings.Aggregate(raw.Stocks),
	}

	if h.dataCache != nil {
		h.dataCache.Set(key, resp)
	}

	WriteData(w, http.StatusOK, resp)
}
