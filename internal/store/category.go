package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/model"
)

// Categories and descriptions share the same named-counter shape; the
// queries differ only in table name. Table names are compiled-in constants,
// never caller input.

type namedCount struct {
	Name         string
	ActiveStatus bool
	Count        int64
	DateAdded    time.Time
	DateUpdated  time.Time
}

func (s *Store) findNamed(ctx context.Context, table, entity, name string) (namedCount, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT name, active_status, count, date_added, date_updated
		FROM `+table+` WHERE name = ?`, name)

	var (
		n              namedCount
		active         int64
		added, updated string
	)
	err := row.Scan(&n.Name, &active, &n.Count, &added, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return namedCount{}, &errs.NotFoundError{Entity: entity, Key: name}
	}
	if err != nil {
		return namedCount{}, fmt.Errorf("finding %s %q: %w", entity, name, err)
	}
	n.ActiveStatus = active != 0
	n.DateAdded = parseStamp(added)
	n.DateUpdated = parseStamp(updated)
	return n, nil
}

func (s *Store) insertNamed(ctx context.Context, table, entity string, n namedCount) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO `+table+` (name, active_status, count, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?)`,
		n.Name, boolToInt(n.ActiveStatus), n.Count,
		n.DateAdded.Format(stampFormat), n.DateUpdated.Format(stampFormat))
	if err != nil {
		return mapConflict(entity, n.Name, err)
	}
	return nil
}

func (s *Store) updateNamed(ctx context.Context, table, entity string, n namedCount) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE `+table+` SET active_status = ?, count = ?, date_updated = ?
		WHERE name = ?`,
		boolToInt(n.ActiveStatus), n.Count, n.DateUpdated.Format(stampFormat), n.Name)
	if err != nil {
		return fmt.Errorf("updating %s %q: %w", entity, n.Name, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return &errs.NotFoundError{Entity: entity, Key: n.Name}
	}
	return nil
}

// FindCategory looks up a category by name.
func (s *Store) FindCategory(ctx context.Context, name string) (model.Category, error) {
	n, err := s.findNamed(ctx, "categories", "category", name)
	if err != nil {
		return model.Category{}, err
	}
	return model.Category(n), nil
}

// InsertCategory creates a category; duplicates surface as ConflictError.
func (s *Store) InsertCategory(ctx context.Context, c model.Category) error {
	return s.insertNamed(ctx, "categories", "category", namedCount(c))
}

// UpdateCategory persists count and active-status changes.
func (s *Store) UpdateCategory(ctx context.Context, c model.Category) error {
	return s.updateNamed(ctx, "categories", "category", namedCount(c))
}

// FindDescription looks up a description by name.
func (s *Store) FindDescription(ctx context.Context, name string) (model.Description, error) {
	n, err := s.findNamed(ctx, "descriptions", "description", name)
	if err != nil {
		return model.Description{}, err
	}
	return model.Description(n), nil
}

// InsertDescription creates a description; duplicates surface as ConflictError.
func (s *Store) InsertDescription(ctx context.Context, d model.Description) error {
	return s.insertNamed(ctx, "descriptions", "description", namedCount(d))
}

// UpdateDescription persists count and active-status changes.
func (s *Store) UpdateDescription(ctx context.Context, d model.Description) error {
	return s.updateNamed(ctx, "descriptions", "description", namedCount(d))
}
