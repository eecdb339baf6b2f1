package engine

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/kopischke/mdsearch/internal/attr"
	"github.com/kopischke/mdsearch/internal/predicate"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// Postgres backs the metadata index with a single items table
// (path TEXT PRIMARY KEY, attrs JSONB). Predicates compile to WHERE
// fragments over attrs.
type Postgres struct {
	pool       *pgxpool.Pool
	roots      map[Scope]string
	canRelease bool
}

// New connects the engine and resolves its release capability once.
// Session-named prepared statements cannot be deallocated through
// transaction-pooling proxies, so the probe decides whether query
// handles hold dedicated connections (released explicitly) or run as
// one-shot pool queries.
func New(ctx context.Context, config Config, roots map[Scope]string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to metadata index: %w", err)
	}

	return &Postgres{
		pool:       pool,
		roots:      roots,
		canRelease: detectRelease(ctx, pool),
	}, nil
}

// NewWithBackoff retries the initial connection, doubling the delay
// between attempts.
func NewWithBackoff(ctx context.Context, config Config, roots map[Scope]string, maxRetries int) (*Postgres, error) {
	delay := time.Second
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		eng, err := New(ctx, config, roots)
		if err == nil {
			if pingErr := eng.pool.Ping(ctx); pingErr == nil {
				return eng, nil
			} else {
				err = pingErr
				eng.Close()
			}
		}

		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("Metadata index not reachable")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("metadata index unreachable after %d attempts: %w", maxRetries, lastErr)
}

func detectRelease(ctx context.Context, pool *pgxpool.Pool) bool {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return false
	}
	defer conn.Release()

	if _, err := conn.Conn().Prepare(ctx, "mdsearch_release_probe", "SELECT 1"); err != nil {
		return false
	}
	if err := conn.Conn().Deallocate(ctx, "mdsearch_release_probe"); err != nil {
		return false
	}
	return true
}

func (p *Postgres) CanRelease() bool { return p.canRelease }

func (p *Postgres) Close() { p.pool.Close() }

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// EnsureSchema creates the items table and its attribute index.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			path TEXT PRIMARY KEY,
			attrs JSONB NOT NULL,
			indexed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS items_attrs_idx ON items USING GIN (attrs)`,
	}

	for _, stmt := range stmts {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure index schema: %w", err)
		}
	}
	return nil
}

var queryCounter atomic.Uint64

func (p *Postgres) NewQuery(pred string, valueKeys, sortKeys []string) (Query, error) {
	where, args, err := predicate.Compile(pred)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	for _, key := range valueKeys {
		if !attr.Known(key) {
			return nil, fmt.Errorf("failed to build query: unknown attribute %q", key)
		}
	}
	for _, key := range sortKeys {
		if !attr.Known(key) {
			return nil, fmt.Errorf("failed to build query: unknown sort attribute %q", key)
		}
		if key == attr.Path {
			return nil, fmt.Errorf("failed to build query for sort key %q: %w", key, ErrUnsortableKey)
		}
	}

	return &pgQuery{
		eng:       p,
		name:      fmt.Sprintf("mdq_%d", queryCounter.Add(1)),
		where:     where,
		args:      args,
		valueKeys: valueKeys,
		sortKeys:  sortKeys,
	}, nil
}

type pgQuery struct {
	eng       *Postgres
	name      string
	where     string
	args      []any
	valueKeys []string
	sortKeys  []string
	scopes    []Scope
	maxCount  int

	conn    *pgxpool.Conn // held only when the engine requires explicit release
	results []map[string]any
}

func (q *pgQuery) SetSearchScopes(scopes ...Scope) { q.scopes = scopes }

func (q *pgQuery) SetMaxCount(n int) { q.maxCount = n }

func (q *pgQuery) Execute(ctx context.Context) error {
	sql, args, err := q.buildSQL()
	if err != nil {
		return err
	}

	if !q.eng.canRelease {
		rows, err := q.eng.pool.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("query execution failed: %w", err)
		}
		defer rows.Close()
		return q.collect(rows.Next, rows.Scan, rows.Err)
	}

	conn, err := q.eng.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("query execution failed: %w", err)
	}

	if _, err := conn.Conn().Prepare(ctx, q.name, sql); err != nil {
		conn.Release()
		return fmt.Errorf("query execution failed: %w", err)
	}

	rows, err := conn.Query(ctx, q.name, args...)
	if err != nil {
		conn.Release()
		return fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	q.conn = conn
	return q.collect(rows.Next, rows.Scan, rows.Err)
}

func (q *pgQuery) collect(next func() bool, scan func(...any) error, rowsErr func() error) error {
	for next() {
		var attrs map[string]any
		if err := scan(&attrs); err != nil {
			return fmt.Errorf("failed to read result row: %w", err)
		}
		q.results = append(q.results, attrs)
	}
	if err := rowsErr(); err != nil {
		return fmt.Errorf("query execution failed: %w", err)
	}
	return nil
}

func (q *pgQuery) buildSQL() (string, []any, error) {
	var sb strings.Builder
	args := append([]any(nil), q.args...)

	sb.WriteString("SELECT attrs FROM items WHERE (")
	sb.WriteString(q.where)
	sb.WriteString(")")

	if len(q.scopes) > 0 {
		clauses := make([]string, 0, len(q.scopes))
		for _, scope := range q.scopes {
			root, ok := q.eng.roots[scope]
			if !ok {
				return "", nil, fmt.Errorf("query execution failed: no root configured for scope %q", scope)
			}
			args = append(args, scopePattern(root))
			clauses = append(clauses, fmt.Sprintf("path LIKE $%d", len(args)))
		}
		sb.WriteString(" AND (")
		sb.WriteString(strings.Join(clauses, " OR "))
		sb.WriteString(")")
	}

	if len(q.sortKeys) > 0 {
		orders := make([]string, 0, len(q.sortKeys))
		for _, key := range q.sortKeys {
			orders = append(orders, orderExpr(key)+" ASC NULLS FIRST")
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(orders, ", "))
	}

	if q.maxCount > 0 {
		args = append(args, q.maxCount)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	return sb.String(), args, nil
}

func scopePattern(root string) string {
	root = strings.TrimSuffix(root, "/")
	return root + "/%"
}

func orderExpr(key string) string {
	kind, _ := attr.KindOf(key)
	switch kind {
	case attr.KindNumber:
		return fmt.Sprintf("(attrs->>'%s')::numeric", key)
	case attr.KindDate:
		return fmt.Sprintf("(attrs->>'%s')::timestamptz", key)
	default:
		return fmt.Sprintf("attrs->>'%s'", key)
	}
}

func (q *pgQuery) ResultCount() int { return len(q.results) }

func (q *pgQuery) ResultAt(i int) Item { return &pgItem{attrs: q.results[i]} }

// Stop ends gathering. Results are buffered during Execute, so there is
// nothing in flight to cancel here.
func (q *pgQuery) Stop() {}

// Release deallocates the session statement and returns the dedicated
// connection. Only meaningful when the engine reported CanRelease; the
// handle must not be used afterwards.
func (q *pgQuery) Release() {
	if q.conn == nil {
		return
	}
	if err := q.conn.Conn().Deallocate(context.Background(), q.name); err != nil {
		log.Warn().Err(err).Str("query", q.name).Msg("Failed to deallocate query statement")
	}
	q.conn.Release()
	q.conn = nil
}

type pgItem struct {
	attrs map[string]any
}

// CopyAttributes maps requested keys to plain values, converting stored
// date strings back to time.Time. Absent attributes stay absent.
func (it *pgItem) CopyAttributes(keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		raw, ok := it.attrs[key]
		if !ok || raw == nil {
			continue
		}

		if kind, known := attr.KindOf(key); known && kind == attr.KindDate {
			if s, isString := raw.(string); isString {
				if ts, err := time.Parse(time.RFC3339, s); err == nil {
					out[key] = ts
					continue
				}
			}
		}
		out[key] = raw
	}
	return out
}
