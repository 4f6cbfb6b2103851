// Package holdings consolidates per-portfolio holding lots into
// per-instrument aggregates for the dashboard holdings table.
package holdings

import "github.com/quantfolio/folio-portal/internal/models"

// Aggregate collapses a list of lots into one AggregatedHolding per distinct
// instrument key, in first-encountered order. All lots must belong to a
// single instrument class (funds or stocks) from a single fetch.
//
// Monetary fields and units are summed across lots sharing a key. Display
// metadata (name, detail) comes from the first-encountered lot for that key.
// The weighted-average cost is recomputed from the full retained lot list on
// every addition rather than folded into the previous average, so rounding
// error does not compound. A zero unit sum leaves AvgCost nil; a zero
// invested sum leaves TotalPLPct nil. The function is pure: the input slice
// is never modified and malformed lots (missing fields decode to zero) are
// carried through rather than rejected.
func Aggregate(lots []models.HoldingLot) []models.AggregatedHolding {
	if len(lots) == 0 {
		return nil
	}

	index := make(map[string]int, len(lots))
	out := make([]models.AggregatedHolding, 0, len(lots))

	for _, lot := range lots {
		i, seen := index[lot.Key]
		if !seen {
			i = len(out)
			index[lot.Key] = i
			out = append(out, models.AggregatedHolding{
				Key:    lot.Key,
				Name:   lot.Name,
				Detail: lot.Detail,
			})
		}

		agg := &out[i]
		agg.Units += lot.Units
		agg.TotalInvested += lot.TotalInvested
		agg.CurrentValue += lot.CurrentValue
		agg.RealizedPL += lot.RealizedPL
		agg.UnrealizedPL += lot.UnrealizedPL
		agg.TotalPL += lot.TotalPL
		agg.Lots = append(agg.Lots, lot)

		recompute(agg)
	}

	return out
}

// recompute refreshes the derived fields of an aggregate from its full lot
// list: unit-weighted average cost and total profit/loss percentage. Zero
// denominators leave the corresponding field unset.
func recompute(agg *models.AggregatedHolding) {
	var weighted, units float64
	for _, lot := range agg.Lots {
		weighted += lot.Units * lot.AvgCost
		units += lot.Units
	}
	if units != 0 {
		avg := weighted / units
		agg.AvgCost = &avg
	} else {
		agg.AvgCost = nil
	}

	if agg.TotalInvested > 0 {
		pct := agg.TotalPL / agg.TotalInvested * 100
		agg.TotalPLPct = &pct
	}
}
