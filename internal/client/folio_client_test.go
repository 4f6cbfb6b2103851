package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quantfolio/folio-portal/internal/models"
)

func TestGetPortfolios(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/portfolios" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","data":[{"id":1,"name":"Retirement"},{"id":2,"name":"Family"}]}`))
	}))
	defer server.Close()

	c := NewFolioClient(server.URL)
	refs, err := c.GetPortfolios(context.Background())
	if err != nil {
		t.Fatalf("GetPortfolios failed: %v", err)
	}

	if len(refs) != 2 {
		t.Fatalf("expected 2 portfolios, got %d", len(refs))
	}
	if refs[0].ID != 1 || refs[0].Name != "Retirement" {
		t.Errorf("unexpected first portfolio: %+v", refs[0])
	}
}

func TestGetSummary_ScopesAndNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("portfolios"); got != "1,3" {
			t.Errorf("expected portfolios=1,3, got %q", got)
		}
		w.Write([]byte(`{"status":"ok","data":{
			"MUTUAL_FUND":{"total_invested":100000,"current_value":125000,"total_gains":25000,"one_day_profit_loss":1000},
			"STOCK":{"total_invested":50000,"current_value":48000,"total_gains":-2000},
			"CRYPTO":{"total_invested":999}
		}}`))
	}))
	defer server.Close()

	c := NewFolioClient(server.URL)
	breakdown, err := c.GetSummary(context.Background(), []int{1, 3})
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if len(breakdown) != 2 {
		t.Fatalf("expected unknown asset keys dropped, got %d entries", len(breakdown))
	}
	mf := breakdown[models.AssetMutualFunds]
	if mf.TotalInvested != 100000 || mf.OneDayPL != 1000 {
		t.Errorf("unexpected mutual fund breakdown: %+v", mf)
	}
	st := breakdown[models.AssetStocks]
	if st.OneDayPL != 0 {
		t.Errorf("missing one-day figure must decode to zero, got %v", st.OneDayPL)
	}
}

func TestGetHoldings_MapsWireShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","data":{
			"funds":[{"isin":"INF001","scheme_name":"Index Fund","amc":"AMC One",
				"portfolio_id":1,"portfolio_name":"Retirement",
				"current_units":100.5,"average_nav":25.25,
				"total_invested":2537.63,"current_value":2800.00,
				"unrealized_profit_loss":262.37,"total_profit_loss":262.37}],
			"stocks":[{"symbol":"RELIANCE","company_name":"Reliance Industries","exchange":"NSE",
				"portfolio_id":2,"portfolio_name":"Family",
				"quantity":50,"average_price":2400,
				"total_invested":120000,"current_value":130000,
				"unrealized_profit_loss":10000,"total_profit_loss":10000}]
		}}`))
	}))
	defer server.Close()

	c := NewFolioClient(server.URL)
	holdings, err := c.GetHoldings(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetHoldings failed: %v", err)
	}

	if len(holdings.Funds) != 1 || len(holdings.Stocks) != 1 {
		t.Fatalf("expected 1 fund and 1 stock lot, got %d/%d", len(holdings.Funds), len(holdings.Stocks))
	}

	fund := holdings.Funds[0]
	if fund.Key != "INF001" || fund.Units != 100.5 || fund.AvgCost != 25.25 {
		t.Errorf("fund lot not normalized: %+v", fund)
	}
	if fund.Detail != "AMC One" || fund.PortfolioID != 1 {
		t.Errorf("fund metadata lost: %+v", fund)
	}

	stock := holdings.Stocks[0]
	if stock.Key != "RELIANCE" || stock.Units != 50 || stock.AvgCost != 2400 {
		t.Errorf("stock lot not normalized: %+v", stock)
	}
	if stock.Detail != "NSE" {
		t.Errorf("stock exchange lost: %+v", stock)
	}
}

func TestGetHoldings_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","error":"boom"}`))
	}))
	defer server.Close()

	c := NewFolioClient(server.URL)
	if _, err := c.GetHoldings(context.Background(), nil); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestCreateTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var txn models.Transaction
		if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		txn.ID = "txn-1"
		w.WriteHeader(http.StatusCreated)
		resp := map[string]interface{}{"status": "ok", "data": txn}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewFolioClient(server.URL)
	created, err := c.CreateTransaction(context.Background(), models.Transaction{
		PortfolioID:   1,
		InstrumentKey: "INF001",
		Type:          "buy",
		Units:         10,
		Price:         25.5,
		Amount:        255,
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if created.ID != "txn-1" {
		t.Errorf("expected server-assigned id, got %q", created.ID)
	}
}

func TestUpdateTransaction_PathEscapes(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"status":"ok","data":{"id":"txn 2"}}`))
	}))
	defer server.Close()

	c := NewFolioClient(server.URL)
	if _, err := c.UpdateTransaction(context.Background(), "txn 2", models.Transaction{}); err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}
	if gotPath != "/api/transactions/txn%202" {
		t.Errorf("expected escaped path, got %q", gotPath)
	}
}

func TestEnvelopeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","error":"portfolio not found"}`))
	}))
	defer server.Close()

	c := NewFolioClient(server.URL)
	if _, err := c.GetPortfolios(context.Background()); err == nil {
		t.Error("expected error for error-status envelope")
	}
}
