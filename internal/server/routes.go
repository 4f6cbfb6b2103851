package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	mux.HandleFunc("/api/portfolios", s.app.PortfoliosHandler.ServeHTTP)
	mux.HandleFunc("/api/selection", s.app.SelectionHandler.ServeHTTP)
	mux.HandleFunc("/api/selection/toggle", s.app.ToggleHandler.ServeHTTP)
	mux.HandleFunc("/api/holdings", s.app.HoldingsHandler.ServeHTTP)
	mux.HandleFunc("/api/summary", s.app.SummaryHandler.ServeHTTP)

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, s.app.TransactionsHandler.List, s.app.TransactionsHandler.Create)
	})
	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceItem(w, r, nil, s.app.TransactionsHandler.Update, nil)
	})

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
