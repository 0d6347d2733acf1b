// Package tag implements the Tag repository using PostgreSQL, including the
// batch name resolver used when attaching tags to activities.
package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/plantracker/plantracker-backend/internal/adapter/postgres"
	"github.com/plantracker/plantracker-backend/internal/domain"
)

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tag repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `INSERT INTO tags (id, name) VALUES ($1, $2) RETURNING id, name`

const listSQL = `SELECT id, name FROM tags ORDER BY name OFFSET $1 LIMIT $2`

// resolveSQL upserts a single name. The no-op DO UPDATE makes RETURNING yield
// the existing row on conflict, so a name maps to exactly one tag row no
// matter how often it repeats within or across batches.
const resolveSQL = `
INSERT INTO tags (id, name) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET name = excluded.name
RETURNING id, name`

// Create inserts a new tag with a unique name.
// Returns domain.ErrAlreadyExists if the name is taken.
func (r *Repo) Create(ctx context.Context, name string) (*domain.Tag, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.Tag
	if err := q.QueryRow(ctx, createSQL, uuid.New(), name).Scan(&t.ID, &t.Name); err != nil {
		return nil, postgres.MapError(err, "tag", uuid.Nil)
	}
	return &t, nil
}

// List returns tags ordered by name with offset pagination.
// Returns an empty slice (not nil) when there are no tags.
func (r *Repo) List(ctx context.Context, skip, limit int) ([]domain.Tag, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

// Resolve maps tag names to tag entities, creating any that do not yet exist.
// Input order is preserved and duplicate names collapse to a single tag.
// Names are opaque strings: no trimming, matching is exact and case-sensitive.
func (r *Repo) Resolve(ctx context.Context, names []string) ([]domain.Tag, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	seen := make(map[string]struct{}, len(names))
	tags := make([]domain.Tag, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		var t domain.Tag
		if err := q.QueryRow(ctx, resolveSQL, uuid.New(), name).Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		tags = append(tags, t)
	}

	return tags, nil
}
