// Package app wires configuration, storage, the backing-API client, and the
// HTTP handlers into one application object.
package app

import (
	"context"
	"time"

	"github.com/quantfolio/folio-portal/internal/cache"
	"github.com/quantfolio/folio-portal/internal/client"
	"github.com/quantfolio/folio-portal/internal/common"
	"github.com/quantfolio/folio-portal/internal/config"
	"github.com/quantfolio/folio-portal/internal/handlers"
	"github.com/quantfolio/folio-portal/internal/interfaces"
	"github.com/quantfolio/folio-portal/internal/selection"
	"github.com/quantfolio/folio-portal/internal/storage"
)

// App holds all application components and dependencies.
type App struct {
	Config    *config.Config
	Logger    *common.Logger
	Storage   interfaces.StorageManager
	Selection *selection.Store
	Client    *client.FolioClient
	DataCache *cache.DataCache

	// HTTP handlers
	HealthHandler       *handlers.HealthHandler
	VersionHandler      *handlers.VersionHandler
	PortfoliosHandler   *handlers.PortfoliosHandler
	SelectionHandler    *handlers.SelectionHandler
	ToggleHandler       *handlers.ToggleHandler
	HoldingsHandler     *handlers.HoldingsHandler
	SummaryHandler      *handlers.SummaryHandler
	TransactionsHandler *handlers.TransactionsHandler
}

// New initializes the application with all dependencies. Storage is optional:
// if the backend cannot be opened the portal runs memory-only and filter
// selections simply do not survive restarts.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	if mgr, err := storage.NewStorageManager(logger, cfg); err != nil {
		logger.Warn().
			Str("path", cfg.Storage.Badger.Path).
			Str("error", err.Error()).
			Msg("storage unavailable, selections will not persist")
	} else {
		a.Storage = mgr
	}

	var kv interfaces.KeyValueStorage
	if a.Storage != nil {
		kv = a.Storage.KeyValueStorage()
	}

	a.Selection = selection.New(kv, logger)
	a.Selection.Initialize(context.Background(), nil)

	a.Client = client.NewFolioClient(cfg.API.URL)
	a.DataCache = cache.New(time.Duration(cfg.Cache.TTLSeconds)*time.Second, cfg.Cache.MaxEntries)

	a.initHandlers()

	logger.Info().
		Str("api", cfg.API.URL).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	a.PortfoliosHandler = handlers.NewPortfoliosHandler(a.Logger, a.Client.GetPortfolios, a.Selection, a.DataCache)
	a.SelectionHandler = handlers.NewSelectionHandler(a.Logger, a.Selection)
	a.ToggleHandler = handlers.NewToggleHandler(a.Logger, a.Selection)
	a.HoldingsHandler = handlers.NewHoldingsHandler(a.Logger, a.Client.GetHoldings, a.Selection, a.DataCache)
	a.SummaryHandler = handlers.NewSummaryHandler(a.Logger, a.Client.GetSummary, a.Selection, a.DataCache)
	a.TransactionsHandler = handlers.NewTransactionsHandler(
		a.Logger,
		a.Client.ListTransactions,
		a.Client.CreateTransaction,
		a.Client.UpdateTransaction,
		a.Selection,
		a.DataCache,
	)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
