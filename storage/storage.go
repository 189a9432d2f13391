package storage

import (
	"context"
	"errors"
)

// Keys under which the application persists its documents.
const (
	KeyCategories = "burgerhub_categories"
	KeyProducts   = "burgerhub_products"
	KeyCart       = "burgerhub_cart"
	KeyAdminAuth  = "burgerhub_is_admin"
)

var (
	// ErrNotFound is returned when no document exists under a key.
	ErrNotFound = errors.New("document not found")
	// ErrQuotaExceeded is returned when the backend refuses a write for lack of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Documents is a key/value store of whole documents. Every Put replaces the
// previous document under the key.
type Documents interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	Delete(ctx context.Context, key string) error
}
