package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/model"
)

// FindParameter looks up an active system parameter by name.
func (s *Store) FindParameter(ctx context.Context, name string) (model.Parameter, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT name, value, active_status, date_added, date_updated
		FROM parameters WHERE name = ? AND active_status = 1`, name)

	var (
		p              model.Parameter
		active         int64
		added, updated string
	)
	err := row.Scan(&p.Name, &p.Value, &active, &added, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Parameter{}, &errs.NotFoundError{Entity: "parameter", Key: name}
	}
	if err != nil {
		return model.Parameter{}, fmt.Errorf("finding parameter %q: %w", name, err)
	}

	p.ActiveStatus = active != 0
	p.DateAdded = parseStamp(added)
	p.DateUpdated = parseStamp(updated)
	return p, nil
}

// SaveParameter upserts a system parameter by name.
func (s *Store) SaveParameter(ctx context.Context, p model.Parameter) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO parameters (name, value, active_status, date_added, date_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
		    value = excluded.value,
		    active_status = excluded.active_status,
		    date_updated = excluded.date_updated`,
		p.Name, p.Value, boolToInt(p.ActiveStatus),
		p.DateAdded.Format(stampFormat), p.DateUpdated.Format(stampFormat))
	if err != nil {
		return fmt.Errorf("saving parameter %q: %w", p.Name, err)
	}
	return nil
}
