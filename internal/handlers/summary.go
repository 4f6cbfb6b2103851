package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/quantfolio/folio-portal/internal/cache"
	"github.com/quantfolio/folio-portal/internal/common"
	"github.com/quantfolio/folio-portal/internal/models"
	"github.com/quantfolio/folio-portal/internal/selection"
	"github.com/quantfolio/folio-portal/internal/summary"
)

// SummaryResponse pairs the per-asset-type breakdown (restricted to the
// selected types) with the portfolio-wide totals reduced over it.
type SummaryResponse struct {
	Breakdown map[models.AssetType]models.AssetBreakdown `json:"breakdown"`
	Totals    summary.Totals                             `json:"totals"`
}

// SummaryHandler serves dashboard summary totals for the current selection.
type SummaryHandler struct {
	logger    *common.Logger
	fetchFn   func(context.Context, []int) (map[models.AssetType]models.AssetBreakdown, error)
	selection *selection.Store
	dataCache *cache.DataCache
}

// NewSummaryHandler creates a new summary handler. fetchFn retrieves the
// per-asset-type breakdown from the backing API; dataCache may be nil.
func NewSummaryHandler(logger *common.Logger, fetchFn func(context.Context, []int) (map[models.AssetType]models.AssetBreakdown, error), sel *selection.Store, dataCache *cache.DataCache) *SummaryHandler {
	return &SummaryHandler{
		logger:    logger,
		fetchFn:   fetchFn,
		selection: sel,
		dataCache: dataCache,
	}
}

// ServeHTTP handles GET /api/summary. Both the assets and portfolios query
// parameters override the stored selection for this request only. The
// breakdown is fetched per portfolio scope and cached; totals are recomputed
// per request since the asset filter is cheap to apply.
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	assetTypes, portfolioIDs := h.selection.Effective(r.URL.Query())
	scope := selectionScope(portfolioIDs)

	breakdown, err := h.fetch(r.Context(), scope, portfolioIDs)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to fetch summary")
		}
		WriteError(w, http.StatusBadGateway, "portfolio API unavailable")
		return
	}

	visible := make(map[models.AssetType]models.AssetBreakdown, len(assetTypes))
	for _, t := range assetTypes {
		if b, ok := breakdown[t]; ok {
			visible[t] = b
		}
	}

	totals := summary.Compute(breakdown, assetTypes)
	if h.logger != nil {
		h.logger.Debug().
			Str("total_value", common.FormatMoney(totals.TotalValue)).
			Str("day_change", common.FormatSignedMoney(totals.DayPL)).
			Int("asset_types", len(assetTypes)).
			Msg("summary computed")
	}

	WriteData(w, http.StatusOK, SummaryResponse{
		Breakdown: visible,
		Totals:    totals,
	})
}

func (h *SummaryHandler) fetch(ctx context.Context, scope string, portfolioIDs []int) (map[models.AssetType]models.AssetBreakdown, error) {
	key := cache.MakeKey(scope, "GET", "/api/summary")
	if h.dataCache != nil {
		if cached, ok := h.dataCache.Get(key); ok {
			if breakdown, ok := cached.(map[models.AssetType]models.AssetBreakdown); ok {
				return breakdown, nil
			}
		}
	}

	breakdown, err := h.fetchFn(ctx, portfolioIDs)
	if err != nil {
		return nil, err
	}
	if h.dataCache != nil {
		h.dataCache.Set(key, breakdown)
	}
	return breakdown, nil
}

// selectionScope serializes a portfolio ID list for cache keying.
func selectionScope(ids []int) string {
	if len(ids) == 0 {
		return "portfolios="
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "portfolios=" + strings.Join(parts, ",")
}
