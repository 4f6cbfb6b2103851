// Package interfaces declares the storage contracts the portal depends on.
package interfaces

import "context"

// StorageManager provides access to the portal's storage interfaces.
// Implementations can be swapped (BadgerDB now, centralised DB later).
type StorageManager interface {
	KeyValueStorage() KeyValueStorage
	Close() error
}

// KeyValueStorage provides basic key-value operations. The selection store
// uses it as a browser-local-storage analogue: small JSON payloads under
// well-known keys, written best-effort.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string]string, error)
}
