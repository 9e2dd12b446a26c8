// Package merge consolidates duplicate categories and descriptions into a
// canonical entity while preserving transaction history.
package merge

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/store"
)

// Engine performs merges and count repairs.
type Engine struct {
	store *store.Store
	log   zerolog.Logger
}

// NewEngine creates a merge Engine.
func NewEngine(st *store.Store, log zerolog.Logger) *Engine {
	return &Engine{store: st, log: log}
}

// MergeCategories re-points every transaction from the source category to
// the target, folds the source's count into the target, and soft-deletes
// the source. Both entities must exist; a missing one fails the merge
// before any write.
//
// The target is persisted last: a crash mid-merge leaves transactions
// repointed and the source drained, which a retry converges from because
// repointing an already-repointed transaction is a no-op and the drained
// source contributes zero count.
func (e *Engine) MergeCategories(ctx context.Context, targetName, sourceName string) (model.Category, error) {
	// Fail fast before any write when either entity is missing.
	if _, err := e.store.FindCategory(ctx, targetName); err != nil {
		return model.Category{}, err
	}
	if _, err := e.store.FindCategory(ctx, sourceName); err != nil {
		return model.Category{}, err
	}

	var target model.Category
	now := time.Now()
	err := e.store.WithTx(ctx, func(tx *store.Store) error {
		// The repoint comes first: it takes the write lock, so the reads
		// below see the state left by any merge that committed before us.
		// A concurrent or retried merge then finds the source already
		// drained and adds zero.
		repointed, err := tx.RepointCategory(ctx, sourceName, targetName)
		if err != nil {
			return err
		}

		target, err = tx.FindCategory(ctx, targetName)
		if err != nil {
			return err
		}
		source, err := tx.FindCategory(ctx, sourceName)
		if err != nil {
			return err
		}

		target.Count += source.Count
		target.DateUpdated = now

		source.Count = 0
		source.ActiveStatus = false
		source.DateUpdated = now
		if err := tx.UpdateCategory(ctx, source); err != nil {
			return err
		}

		e.log.Info().
			Str("target", targetName).
			Str("source", sourceName).
			Int64("repointed", repointed).
			Msg("categories merged")
		return tx.UpdateCategory(ctx, target)
	})
	if err != nil {
		return model.Category{}, err
	}
	return target, nil
}

// MergeDescriptions is MergeCategories for description entities.
func (e *Engine) MergeDescriptions(ctx context.Context, targetName, sourceName string) (model.Description, error) {
	if _, err := e.store.FindDescription(ctx, targetName); err != nil {
		return model.Description{}, err
	}
	if _, err := e.store.FindDescription(ctx, sourceName); err != nil {
		return model.Description{}, err
	}

	var target model.Description
	now := time.Now()
	err := e.store.WithTx(ctx, func(tx *store.Store) error {
		repointed, err := tx.RepointDescription(ctx, sourceName, targetName)
		if err != nil {
			return err
		}

		target, err = tx.FindDescription(ctx, targetName)
		if err != nil {
			return err
		}
		source, err := tx.FindDescription(ctx, sourceName)
		if err != nil {
			return err
		}

		target.Count += source.Count
		target.DateUpdated = now

		source.Count = 0
		source.ActiveStatus = false
		source.DateUpdated = now
		if err := tx.UpdateDescription(ctx, source); err != nil {
			return err
		}

		e.log.Info().
			Str("target", targetName).
			Str("source", sourceName).
			Int64("repointed", repointed).
			Msg("descriptions merged")
		return tx.UpdateDescription(ctx, target)
	})
	if err != nil {
		return model.Description{}, err
	}
	return target, nil
}

// RecountCategory repairs the denormalized count by recomputing it from
// the transactions that reference the category.
func (e *Engine) RecountCategory(ctx context.Context, name string) (model.Category, error) {
	c, err := e.store.FindCategory(ctx, name)
	if err != nil {
		return model.Category{}, err
	}

	n, err := e.store.CountTransactionsByCategory(ctx, name)
	if err != nil {
		return model.Category{}, err
	}

	c.Count = n
	c.DateUpdated = time.Now()
	if err := e.store.UpdateCategory(ctx, c); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// RecountDescription repairs the description count projection.
func (e *Engine) RecountDescription(ctx context.Context, name string) (model.Description, error) {
	d, err := e.store.FindDescription(ctx, name)
	if err != nil {
		return model.Description{}, err
	}

	n, err := e.store.CountTransactionsByDescription(ctx, name)
	if err != nil {
		return model.Description{}, err
	}

	d.Count = n
	d.DateUpdated = time.Now()
	if err := e.store.UpdateDescription(ctx, d); err != nil {
		return model.Description{}, err
	}
	return d, nil
}
