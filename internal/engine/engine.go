// Package engine is the indexed metadata search facility. Queries are
// handle-based: build one with NewQuery, execute it synchronously, read
// the buffered results, then stop and (where supported) release it.
package engine

import (
	"context"
	"errors"
)

// Scope names a search domain. The set is fixed; roots are resolved
// from configuration at engine construction.
type Scope string

const (
	// ScopeComputer searches everything indexed.
	ScopeComputer Scope = "kMDQueryScopeComputer"
	// ScopeHome restricts the search to the home directory root.
	ScopeHome Scope = "kMDQueryScopeHome"
	// ScopeNetwork restricts the search to mounted network roots.
	ScopeNetwork Scope = "kMDQueryScopeNetwork"
)

// KnownScope reports whether s is one of the defined scope constants.
func KnownScope(s Scope) bool {
	switch s {
	case ScopeComputer, ScopeHome, ScopeNetwork:
		return true
	}
	return false
}

//go:generate mockgen -destination=internal/query/mocks/engine_mock.go -package=mocks github.com/kopischke/mdsearch/internal/engine Engine,Query,Item

// ErrUnsortableKey is returned by NewQuery when a sort key cannot be
// ordered natively by the engine. kMDItemPath is the known case; callers
// wanting path order must sort collected results themselves.
var ErrUnsortableKey = errors.New("engine cannot sort natively by this attribute")

// Engine builds queries against the metadata index.
type Engine interface {
	// NewQuery compiles predicate and prepares a query fetching
	// valueKeys, natively ordered by sortKeys.
	NewQuery(predicate string, valueKeys, sortKeys []string) (Query, error)

	// CanRelease reports whether query handles must be explicitly
	// released. Resolved once at engine construction; when false the
	// engine manages handle lifetime itself and Release must not be
	// called.
	CanRelease() bool
}

// Query is a single-use query handle. Execute runs to completion before
// returning; results are buffered on the handle afterwards.
type Query interface {
	SetSearchScopes(scopes ...Scope)

	// SetMaxCount caps the result set. Callers skip the call entirely
	// for "no cap"; n must be positive.
	SetMaxCount(n int)

	Execute(ctx context.Context) error
	ResultCount() int
	ResultAt(i int) Item

	// Stop ends result gathering. Always safe to call after Execute.
	Stop()

	// Release frees the native resources behind the handle. Call at
	// most once, and only when the engine's CanRelease reports true.
	Release()
}

// Item is one matched entry. CopyAttributes returns only the attributes
// the item actually has, as plain JSON-serializable values.
type Item interface {
	CopyAttributes(keys []string) map[string]any
}
