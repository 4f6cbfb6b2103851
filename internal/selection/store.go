// Package selection manages the dashboard's two multi-select filter sets:
// selected portfolio IDs and selected asset types. State is the join of
// three layers with precedence URL query > persisted store > default. Memory
// is authoritative; the URL and the key-value store are write targets and
// one-time read sources at initialization.
package selection

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"sync"

	"github.com/quantfolio/folio-portal/internal/common"
	"github.com/quantfolio/folio-portal/internal/interfaces"
	"github.com/quantfolio/folio-portal/internal/models"
)

// Persisted store keys. Values are JSON arrays, mirroring what the web UI
// keeps in browser local storage.
const (
	KeyAssetTypes = "selection:asset-types"
	KeyPortfolios = "selection:portfolios"
)

// Query parameter names on the URL channel.
const (
	ParamAssets     = "assets"
	ParamPortfolios = "portfolios"
)

// Store holds the two selection sets. All state transitions are synchronous;
// persistence is best-effort and never fails the caller. Safe for concurrent
// use by HTTP handlers.
type Store struct {
	mu         sync.RWMutex
	assetTypes map[models.AssetType]bool
	portfolios map[int]bool
	kv         interfaces.KeyValueStorage
	logger     *common.Logger
}

// New creates an uninitialized Store. kv may be nil, in which case the store
// is memory-only for the session. Call Initialize before first use.
func New(kv interfaces.KeyValueStorage, logger *common.Logger) *Store {
	return &Store{
		assetTypes: make(map[models.AssetType]bool),
		portfolios: make(map[int]bool),
		kv:         kv,
		logger:     logger,
	}
}

// Initialize resolves the starting state for both sets. A present URL
// parameter wins outright; otherwise the persisted value is used; otherwise
// the type-specific default (full domain for asset types, empty for
// portfolios). Unknown asset tags in the URL are silently dropped; portfolio
// IDs are not filtered here because the valid universe may not be known yet.
func (s *Store) Initialize(ctx context.Context, query url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assetTypes = s.resolveAssetTypes(ctx, query)
	s.portfolios = s.resolvePortfolios(ctx, query)
}

func (s *Store) resolveAssetTypes(ctx context.Context, query url.Values) map[models.AssetType]bool {
	if query != nil && query.Has(ParamAssets) {
		if set := parseAssetTags(query.Get(ParamAssets)); len(set) > 0 {
			return set
		}
		// Every tag was unknown: empty asset selection is disallowed.
		return fullAssetDomain()
	}

	if s.kv != nil {
		if raw, err := s.kv.Get(ctx, KeyAssetTypes); err == nil {
			var tags []string
			if err := json.Unmarshal([]byte(raw), &tags); err == nil {
				set := make(map[models.AssetType]bool, len(tags))
				for _, tag := range tags {
					if t, ok := models.ParseAssetType(tag); ok {
						set[t] = true
					}
				}
				if len(set) > 0 {
					return set
				}
			}
		}
	}

	return fullAssetDomain()
}

func (s *Store) resolvePortfolios(ctx context.Context, query url.Values) map[int]bool {
	if query != nil && query.Has(ParamPortfolios) {
		return parsePortfolioIDs(query.Get(ParamPortfolios))
	}

	if s.kv != nil {
		if raw, err := s.kv.Get(ctx, KeyPortfolios); err == nil {
			var ids []int
			if err := json.Unmarshal([]byte(raw), &ids); err == nil {
				set := make(map[int]bool, len(ids))
				for _, id := range ids {
					set[id] = true
				}
				return set
			}
		}
	}

	return make(map[int]bool)
}

// ToggleAssetType flips membership of one asset type. Toggling the last
// selected type off resets the set to the full domain: asset-type selection
// can never be empty.
func (s *Store) ToggleAssetType(ctx context.Context, t models.AssetType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.assetTypes[t] {
		delete(s.assetTypes, t)
		if len(s.assetTypes) == 0 {
			s.assetTypes = fullAssetDomain()
		}
	} else {
		s.assetTypes[t] = true
	}
	s.persistAssetTypes(ctx)
}

// SelectAllAssetTypes resets the asset-type set to the full domain.
// No-op (including persistence) when already all-selected.
func (s *Store) SelectAllAssetTypes(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.assetTypes) == len(models.AllAssetTypes()) {
		return
	}
	s.assetTypes = fullAssetDomain()
	s.persistAssetTypes(ctx)
}

// TogglePortfolio flips membership of one portfolio ID. Unlike asset types,
// an empty portfolio selection is a valid terminal state.
func (s *Store) TogglePortfolio(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.portfolios[id] {
		delete(s.portfolios, id)
	} else {
		s.portfolios[id] = true
	}
	s.persistPortfolios(ctx)
}

// SetPortfolios replaces the portfolio set outright.
func (s *Store) SetPortfolios(ctx context.Context, ids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[int]bool, len(ids))
	for _, id := range ids {
		next[id] = true
	}
	s.portfolios = next
	s.persistPortfolios(ctx)
}

// ClearPortfolios empties the portfolio selection.
func (s *Store) ClearPortfolios(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.portfolios) == 0 {
		return
	}
	s.portfolios = make(map[int]bool)
	s.persistPortfolios(ctx)
}

// Reconcile prunes the portfolio selection to the intersection with a fresh
// valid-ID universe. Only a strict shrink mutates and re-persists state;
// a superset universe is a no-op. Returns true when the selection changed.
func (s *Store) Reconcile(ctx context.Context, valid []int) bool {
	validSet := make(map[int]bool, len(valid))
	for _, id := range valid {
		validSet[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[int]bool, len(s.portfolios))
	for id := range s.portfolios {
		if validSet[id] {
			next[id] = true
		}
	}
	if len(next) == len(s.portfolios) {
		return false
	}

	s.portfolios = next
	s.persistPortfolios(ctx)
	return true
}

// AssetTypes returns the selected asset types in domain display order.
func (s *Store) AssetTypes() []models.AssetType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AssetType, 0, len(s.assetTypes))
	for _, t := range models.AllAssetTypes() {
		if s.assetTypes[t] {
			out = append(out, t)
		}
	}
	return out
}

// Portfolios returns the selected portfolio IDs in ascending order.
func (s *Store) Portfolios() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int, 0, len(s.portfolios))
	for id := range s.portfolios {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// IsAllAssetsSelected reports whether the asset-type set equals the full
// domain. Consumers use this to short-circuit redundant "select all" calls
// and to disable the control in the UI.
func (s *Store) IsAllAssetsSelected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assetTypes) == len(models.AllAssetTypes())
}

// persistAssetTypes writes the asset-type set to the store layer.
// Best-effort: failures are logged and swallowed, in-memory state stays
// authoritative. Must be called with mu held.
func (s *Store) persistAssetTypes(ctx context.Context) {
	if s.kv == nil {
		return
	}
	tags := make([]string, 0, len(s.assetTypes))
	for _, t := range models.AllAssetTypes() {
		if s.assetTypes[t] {
			tags = append(tags, string(t))
		}
	}
	data, err := json.Marshal(tags)
	if err == nil {
		err = s.kv.Set(ctx, KeyAssetTypes, string(data))
	}
	if err != nil && s.logger != nil {
		s.logger.Debug().Str("key", KeyAssetTypes).Str("error", err.Error()).Msg("selection persist failed")
	}
}

// persistPortfolios writes the portfolio set to the store layer. Best-effort,
// same contract as persistAssetTypes. Must be called with mu held.
func (s *Store) persistPortfolios(ctx context.Context) {
	if s.kv == nil {
		return
	}
	ids := make([]int, 0, len(s.portfolios))
	for id := range s.portfolios {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	data, err := json.Marshal(ids)
	if err == nil {
		err = s.kv.Set(ctx, KeyPortfolios, string(data))
	}
	if err != nil && s.logger != nil {
		s.logger.Debug().Str("key", KeyPortfolios).Str("error", err.Error()).Msg("selection persist failed")
	}
}

func fullAssetDomain() map[models.AssetType]bool {
	set := make(map[models.AssetType]bool)
	for _, t := range models.AllAssetTypes() {
		set[t] = true
	}
	return set
}
