package selection

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/quantfolio/folio-portal/internal/models"
)

// parseAssetTags parses a comma-separated asset tag list, silently dropping
// tags outside the known domain.
func parseAssetTags(raw string) map[models.AssetType]bool {
	set := make(map[models.AssetType]bool)
	for _, part := range strings.Split(raw, ",") {
		if t, ok := models.ParseAssetType(part); ok {
			set[t] = true
		}
	}
	return set
}

// parsePortfolioIDs parses a comma-separated integer list, ignoring anything
// that does not parse. IDs are not checked against the valid universe here.
func parsePortfolioIDs(raw string) map[int]bool {
	set := make(map[int]bool)
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			set[id] = true
		}
	}
	return set
}

// Effective resolves the selection a single request should see without
// mutating the store: a present query parameter overrides the corresponding
// set for that request only, with the same parsing rules as Initialize.
func (s *Store) Effective(query url.Values) (assets []models.AssetType, portfolios []int) {
	assets = s.AssetTypes()
	portfolios = s.Portfolios()

	if query == nil {
		return assets, portfolios
	}

	if query.Has(ParamAssets) {
		if set := parseAssetTags(query.Get(ParamAssets)); len(set) > 0 {
			assets = assets[:0]
			for _, t := range models.AllAssetTypes() {
				if set[t] {
					assets = append(assets, t)
				}
			}
		}
	}

	if query.Has(ParamPortfolios) {
		set := parsePortfolioIDs(query.Get(ParamPortfolios))
		ids := make([]int, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		portfolios = ids
	}

	return assets, portfolios
}

// EncodeQuery writes the current selection into a copy of the given query
// values, following the URL channel rules: the assets parameter is omitted
// when the full domain is selected, and the portfolios parameter is omitted
// when the selection is empty. The changed result is false when the encoded
// values already match the input, so callers can skip redundant URL updates
// and avoid history churn.
func (s *Store) EncodeQuery(query url.Values) (encoded url.Values, changed bool) {
	encoded = url.Values{}
	for k, v := range query {
		encoded[k] = append([]string(nil), v...)
	}

	if s.IsAllAssetsSelected() {
		encoded.Del(ParamAssets)
	} else {
		tags := make([]string, 0, 4)
		for _, t := range s.AssetTypes() {
			tags = append(tags, string(t))
		}
		encoded.Set(ParamAssets, strings.Join(tags, ","))
	}

	ids := s.Portfolios()
	if len(ids) == 0 {
		encoded.Del(ParamPortfolios)
	} else {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(id)
		}
		encoded.Set(ParamPortfolios, strings.Join(parts, ","))
	}

	changed = query.Get(ParamAssets) != encoded.Get(ParamAssets) ||
		query.Get(ParamPortfolios) != encoded.Get(ParamPortfolios) ||
		query.Has(ParamAssets) != encoded.Has(ParamAssets) ||
		query.Has(ParamPortfolios) != encoded.Has(ParamPortfolios)
	return encoded, changed
}

// Snapshot is the selection state exposed over the API.
type Snapshot struct {
	AssetTypes          []models.AssetType `json:"asset_types"`
	Portfolios          []int              `json:"portfolios"`
	IsAllAssetsSelected bool               `json:"is_all_assets_selected"`
}

// Snapshot returns the current state of both sets.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		AssetTypes:          s.AssetTypes(),
		Portfolios:          s.Portfolios(),
		IsAllAssetsSelected: s.IsAllAssetsSelected(),
	}
}
