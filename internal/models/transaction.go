// Package models defines data structures for the folio portal.
package models

import "time"

// Transaction is a single buy/sell record forwarded to the backing API.
// The portal does no validation beyond shape — transaction rules live
// server-side.
type Transaction struct {
	ID             string    `json:"id,omitempty"`
	PortfolioID    int       `json:"portfolio_id"`
	InstrumentKey  string    `json:"instrument_key"` // ISIN or ticker
	InstrumentName string    `json:"instrument_name,omitempty"`
	Type           string    `json:"type"` // buy, sell
	Units          float64   `json:"units"`
	Price          float64   `json:"price"`
	Amount         float64   `json:"amount"`
	TradeDate      time.Time `json:"trade_date"`
	Notes          string    `json:"notes,omitempty"`
}
