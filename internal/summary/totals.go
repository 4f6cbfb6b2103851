// Package summary reduces the backing API's per-asset-type breakdown into
// portfolio-wide totals for the dashboard summary cards.
package summary

import "github.com/quantfolio/folio-portal/internal/models"

// Totals is the reduction over the selected asset types. Percentage fields
// are zero when their denominator is not positive, never NaN or Inf.
type Totals struct {
	TotalValue    float64 `json:"total_value"`
	TotalInvested float64 `json:"total_invested"`
	TotalGain     float64 `json:"total_gain"`
	TotalGainPct  float64 `json:"total_gain_percentage"`
	DayPL         float64 `json:"day_profit_loss"`
	DayPLPct      float64 `json:"day_profit_loss_percentage"`
}

// Compute sums the breakdown records for the selected asset types. Asset
// types missing from the breakdown contribute nothing; a missing one-day
// figure is treated as zero.
//
// The day-change denominator is a reconstructed previous-day value,
// current minus today's change per asset type, since the API supplies no
// authoritative previous-value field. This convention is deliberate — do not
// substitute a different formula.
func Compute(breakdown map[models.AssetType]models.AssetBreakdown, selected []models.AssetType) Totals {
	var t Totals
	var previousValue float64

	for _, assetType := range selected {
		b, ok := breakdown[assetType]
		if !ok {
			continue
		}
		t.TotalValue += b.CurrentValue
		t.TotalInvested += b.TotalInvested
		t.TotalGain += b.TotalGains
		t.DayPL += b.OneDayPL
		previousValue += b.CurrentValue - b.OneDayPL
	}

	if t.TotalInvested > 0 {
		t.TotalGainPct = t.TotalGain / t.TotalInvested * 100
	}
	if previousValue > 0 {
		t.DayPLPct = t.DayPL / previousValue * 100
	}

	return t
}
