package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres persists conversions in a `conversions` table so registry
// state survives restarts. Selected with registry.backend: postgres.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres creates a Postgres-backed registry on an existing pool.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Create(ctx context.Context, meshID string) error {
	query := `
		INSERT INTO conversions (
			mesh_id, status, progress, error_message, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	now := time.Now()
	_, err := p.db.ExecContext(ctx, query, meshID, StatusProcessing, 0, "", now, now)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create conversion: %w", err)
	}

	return nil
}

func (p *Postgres) Get(ctx context.Context, meshID string) (*Conversion, error) {
	query := `
		SELECT mesh_id, status, progress, error_message, created_at, updated_at
		FROM conversions
		WHERE mesh_id = $1
	`

	var conv Conversion
	if err := p.db.GetContext(ctx, &conv, query, meshID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversion: %w", err)
	}

	return &conv, nil
}

func (p *Postgres) Update(ctx context.Context, meshID string, upd Update) error {
	query := `
		UPDATE conversions
		SET status = COALESCE($1, status),
		    progress = COALESCE($2, progress),
		    error_message = COALESCE($3, error_message),
		    updated_at = $4
		WHERE mesh_id = $5
	`

	res, err := p.db.ExecContext(ctx, query,
		nullableString(upd.Status),
		nullableInt(upd.Progress),
		nullableString(upd.Error),
		time.Now(),
		meshID,
	)
	if err != nil {
		return fmt.Errorf("failed to update conversion: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
