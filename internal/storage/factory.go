// Package storage constructs the portal's storage backend.
package storage

import (
	"github.com/quantfolio/folio-portal/internal/common"
	"github.com/quantfolio/folio-portal/internal/config"
	"github.com/quantfolio/folio-portal/internal/interfaces"
	"github.com/quantfolio/folio-portal/internal/storage/badger"
)

// NewStorageManager creates a new storage manager based on config.
func NewStorageManager(logger *common.Logger, cfg *config.Config) (interfaces.StorageManager, error) {
	return badger.NewManager(logger, &cfg.Storage.Badger)
}
