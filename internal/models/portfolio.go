// Package models defines data structures for the folio portal.
package models

import "time"

// PortfolioRef identifies one portfolio known to the backing API. The ID set
// from the latest fetch is the valid universe for selection reconciliation.
type PortfolioRef struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
