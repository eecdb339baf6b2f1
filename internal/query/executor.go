// Package query runs metadata searches and fixes up the one sort order
// the engine cannot produce natively.
package query

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/kopischke/mdsearch/internal/attr"
	"github.com/kopischke/mdsearch/internal/engine"
)

// ErrBadQuery marks failures caused by the request itself (malformed
// predicate, unknown attribute) as opposed to engine failures.
var ErrBadQuery = errors.New("bad query")

// Request describes one find call. Zero values select the defaults:
// search everything indexed, return only the item path, keep the
// engine's natural order, no result cap.
type Request struct {
	Predicate      string
	Scopes         []engine.Scope
	Attributes     []string
	SortAttributes []string
	MaxResults     int
}

type Executor struct {
	eng    engine.Engine
	logger *zerolog.Logger
}

func NewExecutor(eng engine.Engine, logger *zerolog.Logger) *Executor {
	return &Executor{
		eng:    eng,
		logger: logger,
	}
}

// Find executes the request synchronously and returns the matched items
// as attribute maps. A zero-match query returns an empty slice, not an
// error.
//
// The engine sorts natively on every attribute except kMDItemPath. When
// the sort key sequence contains the path attribute, the sequence is
// split at its first occurrence: the prefix is delegated to the engine,
// and a stable in-process pass then re-sorts the collected results over
// the full sequence. Attributes fetched only for that pass are stripped
// from the returned items.
func (e *Executor) Find(ctx context.Context, req Request) ([]map[string]any, error) {
	scopes := req.Scopes
	if len(scopes) == 0 {
		scopes = []engine.Scope{engine.ScopeComputer}
	}

	attributes := req.Attributes
	if len(attributes) == 0 {
		attributes = []string{attr.Path}
	}

	nativeSort, secondary := splitSortKeys(req.SortAttributes)

	fetch := attributes
	var extra []string
	if secondary {
		// The in-process comparator walks the full key sequence, so
		// every sort key must be present on the collected items.
		for _, key := range req.SortAttributes {
			if !contains(fetch, key) {
				fetch = append(append([]string(nil), fetch...), key)
				extra = append(extra, key)
			}
		}
	}

	q, err := e.eng.NewQuery(req.Predicate, fetch, nativeSort)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadQuery, err)
	}

	// One guaranteed cleanup for every exit path below. Release is
	// capability-gated: an engine that manages handle lifetime itself
	// must not see an explicit release.
	defer func() {
		q.Stop()
		if e.eng.CanRelease() {
			q.Release()
		}
	}()

	q.SetSearchScopes(scopes...)
	if req.MaxResults > 0 {
		q.SetMaxCount(req.MaxResults)
	}

	if err := q.Execute(ctx); err != nil {
		return nil, fmt.Errorf("metadata query failed: %w", err)
	}

	count := q.ResultCount()
	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, q.ResultAt(i).CopyAttributes(fetch))
	}

	e.logger.Debug().
		Str("predicate", req.Predicate).
		Int("count", count).
		Bool("secondary_sort", secondary).
		Msg("Query executed")

	if secondary {
		sort.SliceStable(items, func(i, j int) bool {
			return attr.Less(items[i], items[j], req.SortAttributes)
		})
	}

	for _, key := range extra {
		for _, item := range items {
			delete(item, key)
		}
	}

	return items, nil
}

// splitSortKeys separates the natively sortable prefix from the rest.
// Everything before the first kMDItemPath goes to the engine; the path
// key and anything after it force the in-process pass.
func splitSortKeys(sortKeys []string) (native []string, secondary bool) {
	for i, key := range sortKeys {
		if key == attr.Path {
			return sortKeys[:i], true
		}
	}
	return sortKeys, false
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
