package counters

import (
	"context"
	"fmt"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/dbx"
)

// PostgresRepository stores counters in a single-row-per-name table.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Next increments the named counter and returns the post-increment value.
// The upsert creates the row at 1 on first use, so there is no separate
// check-then-create window; the whole read-modify-write is one statement.
func (r *PostgresRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO counters (name, seq)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`
	var seq int64
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return seq, nil
}
