package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Upsert writes one item's attribute map under its path.
func (p *Postgres) Upsert(ctx context.Context, path string, attrs map[string]any) error {
	query := `
	INSERT INTO items (path, attrs, indexed_at)
	VALUES ($1, $2, now())
	ON CONFLICT (path) DO UPDATE SET attrs = EXCLUDED.attrs, indexed_at = now()`

	if _, err := p.pool.Exec(ctx, query, path, attrs); err != nil {
		return fmt.Errorf("failed to index %s: %w", path, err)
	}
	return nil
}

// DeleteVanished removes index rows under root whose paths were not seen
// by the current walk. Returns the removed paths.
func (p *Postgres) DeleteVanished(ctx context.Context, root string, seen []string) ([]string, error) {
	query, args := vanishedSQL(root, seen)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to prune vanished items under %s: %w", root, err)
	}
	defer rows.Close()

	var removed []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to prune vanished items under %s: %w", root, err)
		}
		removed = append(removed, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to prune vanished items under %s: %w", root, err)
	}

	if len(removed) > 0 {
		log.Info().Str("root", root).Int("removed", len(removed)).Msg("Pruned vanished items")
	}
	return removed, nil
}

// vanishedSQL builds the prune statement. A walk that saw no files must
// still clear the root: a nil slice reaches the server as NULL, and
// `NOT (path = ANY(NULL))` filters out every row, so the seen filter is
// dropped entirely when there is nothing to keep.
func vanishedSQL(root string, seen []string) (string, []any) {
	if len(seen) == 0 {
		return `DELETE FROM items WHERE path LIKE $1 RETURNING path`,
			[]any{scopePattern(root)}
	}
	return `DELETE FROM items WHERE path LIKE $1 AND NOT (path = ANY($2)) RETURNING path`,
		[]any{scopePattern(root), seen}
}

// Count reports the number of indexed items.
func (p *Postgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count indexed items: %w", err)
	}
	return n, nil
}
