package handlers

import (
	"context"
	"net/http"

	"github.com/quantfolio/folio-portal/internal/cache"
	"github.com/quantfolio/folio-portal/internal/common"
	"github.com/quantfolio/folio-portal/internal/models"
	"github.com/quantfolio/folio-portal/internal/selection"
)

// PortfoliosHandler serves the portfolio list and keeps the selection store
// reconciled against it.
type PortfoliosHandler struct {
	logger    *common.Logger
	listFn    func(context.Context) ([]models.PortfolioRef, error)
	selection *selection.Store
	dataCache *cache.DataCache
}

// NewPortfoliosHandler creates a new portfolios handler. listFn fetches the
// valid portfolio universe from the backing API; dataCache may be nil.
func NewPortfoliosHandler(logger *common.Logger, listFn func(context.Context) ([]models.PortfolioRef, error), sel *selection.Store, dataCache *cache.DataCache) *PortfoliosHandler {
	return &PortfoliosHandler{
		logger:    logger,
		listFn:    listFn,
		selection: sel,
		dataCache: dataCache,
	}
}

// ServeHTTP handles GET /api/portfolios. Every fresh list is a new valid-ID
// universe: the portfolio selection is pruned to the intersection before the
// response is written, so clients never see a selection referencing deleted
// portfolios.
func (h *PortfoliosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	refs, err := h.fetch(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to fetch portfolios")
		}
		WriteError(w, http.StatusBadGateway, "portfolio API unavailable")
		return
	}

	ids := make([]int, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	if h.selection.Reconcile(r.Context(), ids) && h.logger != nil {
		h.logger.Info().Int("valid", len(ids)).Msg("portfolio selection pruned to valid universe")
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"portfolios": refs,
		"selected":   h.selection.Portfolios(),
	})
}

func (h *PortfoliosHandler) fetch(ctx context.Context) ([]models.PortfolioRef, error) {
	key := cache.MakeKey("", "GET", "/api/portfolios")
	if h.dataCache != nil {
		if cached, ok := h.dataCache.Get(key); ok {
			if refs, ok := cached.([]models.PortfolioRef); ok {
				return refs, nil
			}
		}
	}

	refs, err := h.listFn(ctx)
	if err != nil {
		return nil, err
	}
	if h.dataCache != nil {
		h.dataCache.Set(key, refs)
	}
	return refs, nil
}
