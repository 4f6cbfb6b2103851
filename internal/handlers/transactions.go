package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/quantfolio/folio-portal/internal/cache"
	"github.com/quantfolio/folio-portal/internal/common"
	"github.com/quantfolio/folio-portal/internal/models"
	"github.com/quantfolio/folio-portal/internal/selection"
)

// TransactionsHandler forwards transaction reads and writes to the backing
// API. Writes invalidate cached holdings and summary results, since a new or
// edited transaction changes both.
type TransactionsHandler struct {
	logger    *common.Logger
	listFn    func(context.Context, []int) ([]models.Transaction, error)
	createFn  func(context.Context, models.Transaction) (*models.Transaction, error)
	updateFn  func(context.Context, string, models.Transaction) (*models.Transaction, error)
	selection *selection.Store
	dataCache *cache.DataCache
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(
	logger *common.Logger,
	listFn func(context.Context, []int) ([]models.Transaction, error),
	createFn func(context.Context, models.Transaction) (*models.Transaction, error),
	updateFn func(context.Context, string, models.Transaction) (*models.Transaction, error),
	sel *selection.Store,
	dataCache *cache.DataCache,
) *TransactionsHandler {
	return &TransactionsHandler{
		logger:    logger,
		listFn:    listFn,
		createFn:  createFn,
		updateFn:  updateFn,
		selection: sel,
		dataCache: dataCache,
	}
}

// Update handles PUT /api/transactions/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "transaction not found")
		return
	}

	var txn models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.updateFn(r.Context(), id, txn)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("id", id).Str("error", err.Error()).Msg("failed to update transaction")
		}
		WriteError(w, http.StatusBadGateway, "portfolio API unavailable")
		return
	}

	h.invalidate()
	WriteData(w, http.StatusOK, updated)
}

// List handles GET /api/transactions, scoped to the effective portfolio
// selection.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	_, portfolioIDs := h.selection.Effective(r.URL.Query())

	txns, err := h.listFn(r.Context(), portfolioIDs)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to list transactions")
		}
		WriteError(w, http.StatusBadGateway, "portfolio API unavailable")
		return
	}

	WriteData(w, http.StatusOK, txns)
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var txn models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := h.createFn(r.Context(), txn)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to create transaction")
		}
		WriteError(w, http.StatusBadGateway, "portfolio API unavailable")
		return
	}

	h.invalidate()
	WriteData(w, http.StatusCreated, created)
}

// invalidate drops cached results a transaction write makes stale.
func (h *TransactionsHandler) invalidate() {
	if h.dataCache == nil {
		return
	}
	h.dataCache.InvalidatePrefix("/api/holdings")
	h.dataCache.InvalidatePrefix("/api/summary")
	h.dataCache.InvalidatePrefix("/api/portfolios")
}
