// Package client communicates with the backing portfolio REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quantfolio/folio-portal/internal/models"
)

// FolioClient communicates with the backing portfolio REST API.
type FolioClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFolioClient creates a new client targeting the given API URL.
func NewFolioClient(baseURL string) *FolioClient {
	return &FolioClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// envelope is the backing API's standard response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error,omitempty"`
}

// fundLot is the wire shape of one mutual fund position.
type fundLot struct {
	ISIN          string  `json:"isin"`
	SchemeName    string  `json:"scheme_name"`
	AMC           string  `json:"amc"`
	PortfolioID   int     `json:"portfolio_id"`
	PortfolioName string  `json:"portfolio_name"`
	CurrentUnits  float64 `json:"current_units"`
	AverageNAV    float64 `json:"average_nav"`
	TotalInvested float64 `json:"total_invested"`
	CurrentValue  float64 `json:"current_value"`
	RealizedPL    float64 `json:"realized_profit_loss"`
	UnrealizedPL  float64 `json:"unrealized_profit_loss"`
	TotalPL       float64 `json:"total_profit_loss"`
	TotalPLPct    float64 `json:"total_profit_loss_percentage"`
}

// stockLot is the wire shape of one stock position.
type stockLot struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"company_name"`
	Exchange      string  `json:"exchange"`
	PortfolioID   int     `json:"portfolio_id"`
	PortfolioName string  `json:"portfolio_name"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"average_price"`
	TotalInvested float64 `json:"total_invested"`
	CurrentValue  float64 `json:"current_value"`
	RealizedPL    float64 `json:"realized_profit_loss"`
	UnrealizedPL  float64 `json:"unrealized_profit_loss"`
	TotalPL       float64 `json:"total_profit_loss"`
	TotalPLPct    float64 `json:"total_profit_loss_percentage"`
}

// Holdings carries one fetch's fund and stock lots, normalized for the
// aggregator. Optional wire fields decode to zero so downstream logic never
// branches on presence.
type Holdings struct {
	Funds  []models.HoldingLot
	Stocks []models.HoldingLot
}

func (l fundLot) toHoldingLot() models.HoldingLot {
	return models.HoldingLot{
		Key:           l.ISIN,
		Name:          l.SchemeName,
		Detail:        l.AMC,
		PortfolioID:   l.PortfolioID,
		PortfolioName: l.PortfolioName,
		Units:         l.CurrentUnits,
		AvgCost:       l.AverageNAV,
		TotalInvested: l.TotalInvested,
		CurrentValue:  l.CurrentValue,
		RealizedPL:    l.RealizedPL,
		UnrealizedPL:  l.UnrealizedPL,
		TotalPL:       l.TotalPL,
		TotalPLPct:    l.TotalPLPct,
	}
}

func (l stockLot) toHoldingLot() models.HoldingLot {
	return models.HoldingLot{
		Key:           l.Symbol,
		Name:          l.CompanyName,
		Detail:        l.Exchange,
		PortfolioID:   l.PortfolioID,
		PortfolioName: l.PortfolioName,
		Units:         l.Quantity,
		AvgCost:       l.AveragePrice,
		TotalInvested: l.TotalInvested,
		CurrentValue:  l.CurrentValue,
		RealizedPL:    l.RealizedPL,
		UnrealizedPL:  l.UnrealizedPL,
		TotalPL:       l.TotalPL,
		TotalPLPct:    l.TotalPLPct,
	}
}

// get performs a GET and unwraps the response envelope into dest.
func (c *FolioClient) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	return c.do(req, dest)
}

func (c *FolioClient) do(req *http.Request, dest interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach portfolio API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("portfolio API returned %d: %s", resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if env.Status != "" && env.Status != "ok" {
		return fmt.Errorf("portfolio API error: %s", env.Error)
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

// portfoliosQuery serializes selected portfolio IDs for request scoping.
// An empty selection sends no parameter, which the API reads as "all".
func portfoliosQuery(ids []int) url.Values {
	query := url.Values{}
	if len(ids) == 0 {
		return query
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	query.Set("portfolios", strings.Join(parts, ","))
	return query
}

// GetPortfolios fetches the list of valid portfolios.
// GET /api/portfolios -> { status: "ok", data: [PortfolioRef] }
func (c *FolioClient) GetPortfolios(ctx context.Context) ([]models.PortfolioRef, error) {
	var refs []models.PortfolioRef
	if err := c.get(ctx, "/api/portfolios", nil, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// GetSummary fetches the per-asset-type breakdown for the given portfolios.
// GET /api/summary?portfolios=1,2 -> { data: { "MUTUAL_FUND": {...}, ... } }
// Breakdown keys outside the known asset-type domain are dropped.
func (c *FolioClient) GetSummary(ctx context.Context, portfolioIDs []int) (map[models.AssetType]models.AssetBreakdown, error) {
	var raw map[string]models.AssetBreakdown
	if err := c.get(ctx, "/api/summary", portfoliosQuery(portfolioIDs), &raw); err != nil {
		return nil, err
	}

	breakdown := make(map[models.AssetType]models.AssetBreakdown, len(raw))
	for key, b := range raw {
		if t, ok := models.ParseAssetType(key); ok {
			breakdown[t] = b
		}
	}
	return breakdown, nil
}

// GetHoldings fetches fund and stock lots for the given portfolios.
// GET /api/holdings?portfolios=1,2 -> { data: { funds: [...], stocks: [...] } }
func (c *FolioClient) GetHoldings(ctx context.Context, portfolioIDs []int) (*Holdings, error) {
	var raw struct {
		Funds  []fundLot  `json:"funds"`
		Stocks []stockLot `json:"stocks"`
	}
	if err := c.get(ctx, "/api/holdings", portfoliosQuery(portfolioIDs), &raw); err != nil {
		return nil, err
	}

	out := &Holdings{
		Funds:  make([]models.HoldingLot, len(raw.Funds)),
		Stocks: make([]models.HoldingLot, len(raw.Stocks)),
	}
	for i, l := range raw.Funds {
		out.Funds[i] = l.toHoldingLot()
	}
	for i, l := range raw.Stocks {
		out.Stocks[i] = l.toHoldingLot()
	}
	return out, nil
}

// ListTransactions fetches transactions for the given portfolios.
// GET /api/transactions?portfolios=1 -> { data: [Transaction] }
func (c *FolioClient) ListTransactions(ctx context.Context, portfolioIDs []int) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := c.get(ctx, "/api/transactions", portfoliosQuery(portfolioIDs), &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// CreateTransaction records a new transaction.
// POST /api/transactions -> { data: Transaction }
func (c *FolioClient) CreateTransaction(ctx context.Context, txn models.Transaction) (*models.Transaction, error) {
	return c.sendTransaction(ctx, http.MethodPost, "/api/transactions", txn)
}

// UpdateTransaction edits an existing transaction.
// PUT /api/transactions/{id} -> { data: Transaction }
func (c *FolioClient) UpdateTransaction(ctx context.Context, id string, txn models.Transaction) (*models.Transaction, error) {
	return c.sendTransaction(ctx, http.MethodPut, "/api/transactions/"+url.PathEscape(id), txn)
}

func (c *FolioClient) sendTransaction(ctx context.Context, method, path string, txn models.Transaction) (*models.Transaction, error) {
	jsonData, err := json.Marshal(txn)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var created models.Transaction
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
