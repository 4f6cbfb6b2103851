// Package models defines data structures for the folio portal.
package models

// HoldingLot is one portfolio's position in a single instrument. Instruments
// held across several portfolios arrive as separate lots, one per portfolio.
// Lots are produced fresh on every backing-API fetch and are never mutated.
type HoldingLot struct {
	Key           string  `json:"key"` // ISIN for funds, ticker symbol for stocks
	Name          string  `json:"name"`
	Detail        string  `json:"detail,omitempty"` // AMC for funds, exchange for stocks
	PortfolioID   int     `json:"portfolio_id"`
	PortfolioName string  `json:"portfolio_name"`
	Units         float64 `json:"units"`
	AvgCost       float64 `json:"avg_cost"` // average_nav (funds) or average_price (stocks)
	TotalInvested float64 `json:"total_invested"`
	CurrentValue  float64 `json:"current_value"`
	RealizedPL    float64 `json:"realized_profit_loss"`
	UnrealizedPL  float64 `json:"unrealized_profit_loss"`
	TotalPL       float64 `json:"total_profit_loss"`
	TotalPLPct    float64 `json:"total_profit_loss_percentage"`
}

// AggregatedHolding is one instrument consolidated across every portfolio
// that holds it. Monetary fields are arithmetic sums over the contributing
// lots; AvgCost is the unit-weighted average recomputed over all lots.
// AvgCost is nil when the summed units are zero, and TotalPLPct is nil when
// nothing was invested — the UI renders a placeholder for either.
type AggregatedHolding struct {
	Key           string       `json:"key"`
	Name          string       `json:"name"`
	Detail        string       `json:"detail,omitempty"`
	Units         float64      `json:"units"`
	AvgCost       *float64     `json:"avg_cost,omitempty"`
	TotalInvested float64      `json:"total_invested"`
	CurrentValue  float64      `json:"current_value"`
	RealizedPL    float64      `json:"realized_profit_loss"`
	UnrealizedPL  float64      `json:"unrealized_profit_loss"`
	TotalPL       float64      `json:"total_profit_loss"`
	TotalPLPct    *float64     `json:"total_profit_loss_percentage,omitempty"`
	Lots          []HoldingLot `json:"lots"` // encounter order, expandable in the UI
}

// PortfolioCount returns the number of portfolios contributing to the aggregate.
func (a *AggregatedHolding) PortfolioCount() int {
	return len(a.Lots)
}
