package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/burgerhub/menu-ordering/storage"
)

// loadCollection decodes the collection stored under key. A missing document
// yields an empty collection; an undecodable one is reported, never reset.
func loadCollection[T any](ctx context.Context, docs storage.Documents, key string) ([]T, error) {
	body, err := docs.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	items := []T{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrMalformedDocument, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func saveCollection[T any](ctx context.Context, docs storage.Documents, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	body, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := docs.Put(ctx, key, body); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func documentExists(ctx context.Context, docs storage.Documents, key string) (bool, error) {
	_, err := docs.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	return true, nil
}
