// Package repository implements the data access layer for the application.
// Each repository owns one persisted collection and its invariants; every
// mutation is a read-modify-write cycle over the backing document,
// retried on version conflicts so concurrent writers never lose updates.
package repository

import (
	"context"
	"errors"

	"chronicle/internal/models"
	"chronicle/internal/observability"
	"chronicle/internal/store"
)

// casRetries bounds how often a read-modify-write cycle is retried when
// another writer got in between.
const casRetries = 5

// mutateDoc applies fn to the document at key and writes it back with the
// version read, retrying on conflict. fn sees the zero value when the
// document does not exist yet.
func mutateDoc[T any](ctx context.Context, s store.Store, key string, fn func(*T) error) (*T, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		var doc T
		version, err := s.Get(ctx, key, &doc)
		if err != nil {
			return nil, err
		}
		if err := fn(&doc); err != nil {
			return nil, err
		}
		if _, err := s.Put(ctx, key, doc, version); err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				observability.StoreConflicts.WithLabelValues(key).Inc()
				continue
			}
			return nil, err
		}
		return &doc, nil
	}
	return nil, models.NewConflictError("Document is being modified concurrently, please retry")
}
