// Package models defines data structures for the folio portal.
package models

// AssetBreakdown is the backing API's per-asset-type summary record.
// OneDayPL and OneDayPLPct are optional on the wire; absent values decode
// to zero and are treated as "no movement" by the totals reducer.
type AssetBreakdown struct {
	TotalInvested   float64 `json:"total_invested"`
	CurrentValue    float64 `json:"current_value"`
	UnrealizedGains float64 `json:"unrealized_gains"`
	RealizedGains   float64 `json:"realized_gains"`
	TotalGains      float64 `json:"total_gains"`
	ReturnsPct      float64 `json:"returns_percentage"`
	HoldingCount    int     `json:"holding_count"`
	OneDayPL        float64 `json:"one_day_profit_loss,omitempty"`
	OneDayPLPct     float64 `json:"one_day_profit_loss_percentage,omitempty"`
}
