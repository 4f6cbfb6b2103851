// Package models defines data structures for the folio portal.
package models

import "strings"

// AssetType is a coarse category tag used to filter dashboard views.
type AssetType string

const (
	AssetMutualFunds AssetType = "mutual-funds"
	AssetStocks      AssetType = "stocks"
	AssetMetals      AssetType = "metals"
	AssetFixedIncome AssetType = "fixed-income"
)

// AllAssetTypes returns the full asset-type domain in display order.
// Callers must not mutate the returned slice.
func AllAssetTypes() []AssetType {
	return []AssetType{AssetMutualFunds, AssetStocks, AssetMetals, AssetFixedIncome}
}

// ParseAssetType normalizes an asset-type tag. It accepts both the portal's
// kebab-case tags ("mutual-funds") and the backing API's enum spelling
// ("MUTUAL_FUND"). Returns false for anything outside the known domain.
func ParseAssetType(s string) (AssetType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mutual-funds", "mutual_fund", "mutual_funds", "mf":
		return AssetMutualFunds, true
	case "stocks", "stock", "equity":
		return AssetStocks, true
	case "metals", "metal", "gold":
		return AssetMetals, true
	case "fixed-income", "fixed_income", "fd":
		return AssetFixedIncome, true
	}
	return "", false
}
