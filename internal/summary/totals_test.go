package summary

import (
	"math"
	"testing"

	"github.com/quantfolio/folio-portal/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCompute_SingleAssetType(t *testing.T) {
	breakdown := map[models.AssetType]models.AssetBreakdown{
		models.AssetMutualFunds: {
			TotalInvested: 100000,
			CurrentValue:  125000,
			TotalGains:    25000,
			OneDayPL:      1000,
		},
	}

	totals := Compute(breakdown, []models.AssetType{models.AssetMutualFunds})

	assert.InDelta(t, 125000, totals.TotalValue, 1e-6)
	assert.InDelta(t, 100000, totals.TotalInvested, 1e-6)
	assert.InDelta(t, 25000, totals.TotalGain, 1e-6)
	assert.InDelta(t, 25.0, totals.TotalGainPct, 1e-6)
	assert.InDelta(t, 1000, totals.DayPL, 1e-6)
	// Day change computed against reconstructed previous value 124000.
	assert.InDelta(t, 0.80645, totals.DayPLPct, 1e-4)
}

func TestCompute_SumsAcrossSelectedTypes(t *testing.T) {
	breakdown := map[models.AssetType]models.AssetBreakdown{
		models.AssetMutualFunds: {TotalInvested: 50000, CurrentValue: 60000, TotalGains: 10000, OneDayPL: 500},
		models.AssetStocks:      {TotalInvested: 30000, CurrentValue: 27000, TotalGains: -3000, OneDayPL: -200},
		models.AssetMetals:      {TotalInvested: 10000, CurrentValue: 12000, TotalGains: 2000},
	}

	totals := Compute(breakdown, []models.AssetType{models.AssetMutualFunds, models.AssetStocks})

	// Metals excluded: not selected.
	assert.InDelta(t, 87000, totals.TotalValue, 1e-6)
	assert.InDelta(t, 80000, totals.TotalInvested, 1e-6)
	assert.InDelta(t, 7000, totals.TotalGain, 1e-6)
	assert.InDelta(t, 8.75, totals.TotalGainPct, 1e-6)
	assert.InDelta(t, 300, totals.DayPL, 1e-6)
	assert.InDelta(t, 300.0/86700*100, totals.DayPLPct, 1e-6)
}

func TestCompute_SelectedTypeMissingFromBreakdown(t *testing.T) {
	breakdown := map[models.AssetType]models.AssetBreakdown{
		models.AssetStocks: {TotalInvested: 1000, CurrentValue: 1100, TotalGains: 100},
	}

	totals := Compute(breakdown, models.AllAssetTypes())

	assert.InDelta(t, 1100, totals.TotalValue, 1e-6)
	assert.InDelta(t, 10.0, totals.TotalGainPct, 1e-6)
}

func TestCompute_ZeroInvestedYieldsZeroPercent(t *testing.T) {
	breakdown := map[models.AssetType]models.AssetBreakdown{
		models.AssetStocks: {CurrentValue: 500, TotalGains: 500},
	}

	totals := Compute(breakdown, []models.AssetType{models.AssetStocks})

	assert.Zero(t, totals.TotalGainPct)
	assert.False(t, math.IsNaN(totals.TotalGainPct))
	assert.False(t, math.IsInf(totals.DayPLPct, 0))
}

func TestCompute_NonPositivePreviousValueYieldsZeroDayPct(t *testing.T) {
	// Day gain equals current value: previous value reconstructs to zero.
	breakdown := map[models.AssetType]models.AssetBreakdown{
		models.AssetStocks: {TotalInvested: 100, CurrentValue: 100, OneDayPL: 100},
	}

	totals := Compute(breakdown, []models.AssetType{models.AssetStocks})

	assert.InDelta(t, 100, totals.DayPL, 1e-6)
	assert.Zero(t, totals.DayPLPct)
}

func TestCompute_EmptySelection(t *testing.T) {
	breakdown := map[models.AssetType]models.AssetBreakdown{
		models.AssetStocks: {TotalInvested: 1000, CurrentValue: 1100},
	}

	totals := Compute(breakdown, nil)
	assert.Equal(t, Totals{}, totals)
}
