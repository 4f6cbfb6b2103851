package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/quantfolio/folio-portal/internal/common"
	"github.com/quantfolio/folio-portal/internal/models"
	"github.com/quantfolio/folio-portal/internal/selection"
)

// selectionResponse pairs the snapshot with the canonical query string the
// dashboard writes into the address bar for shareable URLs.
type selectionResponse struct {
	selection.Snapshot
	Query string `json:"query"`
}

func newSelectionResponse(sel *selection.Store) selectionResponse {
	encoded, _ := sel.EncodeQuery(url.Values{})
	return selectionResponse{
		Snapshot: sel.Snapshot(),
		Query:    encoded.Encode(),
	}
}

// SelectionHandler exposes the selection state store over the API.
type SelectionHandler struct {
	logger    *common.Logger
	selection *selection.Store
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(logger *common.Logger, sel *selection.Store) *SelectionHandler {
	return &SelectionHandler{logger: logger, selection: sel}
}

// ServeHTTP routes /api/selection.
// GET returns the current snapshot; PUT replaces both sets.
func (h *SelectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SelectionHandler) get(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, newSelectionResponse(h.selection))
}

// putRequest is the PUT /api/selection body. Omitted fields leave the
// corresponding set untouched.
type putRequest struct {
	AssetTypes *[]string `json:"asset_types"`
	Portfolios *[]int    `json:"portfolios"`
}

func (h *SelectionHandler) put(w http.ResponseWriter, r *http.Request) {
	var req putRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()

	if req.Portfolios != nil {
		if len(*req.Portfolios) == 0 {
			h.selection.ClearPortfolios(ctx)
		} else {
			h.selection.SetPortfolios(ctx, *req.Portfolios)
		}
	}

	if req.AssetTypes != nil {
		// Replace the asset set by toggling against a select-all baseline:
		// unknown tags drop silently, an all-unknown list resolves to the
		// full domain per the non-empty invariant.
		h.selection.SelectAllAssetTypes(ctx)
		keep := make(map[models.AssetType]bool)
		for _, tag := range *req.AssetTypes {
			if t, ok := models.ParseAssetType(tag); ok {
				keep[t] = true
			}
		}
		if len(keep) > 0 {
			for _, t := range models.AllAssetTypes() {
				if !keep[t] {
					h.selection.ToggleAssetType(ctx, t)
				}
			}
		}
	}

	WriteData(w, http.StatusOK, newSelectionResponse(h.selection))
}

// ToggleHandler handles POST /api/selection/toggle: flips one asset type or
// one portfolio per request.
type ToggleHandler struct {
	logger    *common.Logger
	selection *selection.Store
}

// NewToggleHandler creates a new toggle handler.
func NewToggleHandler(logger *common.Logger, sel *selection.Store) *ToggleHandler {
	return &ToggleHandler{logger: logger, selection: sel}
}

type toggleRequest struct {
	AssetType   string `json:"asset_type,omitempty"`
	PortfolioID *int   `json:"portfolio_id,omitempty"`
}

// ServeHTTP handles POST /api/selection/toggle.
func (h *ToggleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()
	switch {
	case req.AssetType != "":
		t, ok := models.ParseAssetType(req.AssetType)
		if !ok {
			WriteError(w, http.StatusBadRequest, "unknown asset type: "+req.AssetType)
			return
		}
		h.selection.ToggleAssetType(ctx, t)
	case req.PortfolioID != nil:
		h.selection.TogglePortfolio(ctx, *req.PortfolioID)
	default:
		WriteError(w, http.StatusBadRequest, "asset_type or portfolio_id is required")
		return
	}

	WriteData(w, http.StatusOK, newSelectionResponse(h.selection))
}
