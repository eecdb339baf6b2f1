package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kopischke/mdsearch/internal/attr"
)

func testEngine() *Postgres {
	return &Postgres{
		roots: map[Scope]string{
			ScopeComputer: "/",
			ScopeHome:     "/home/someone",
		},
	}
}

func TestNewQuery_Validation(t *testing.T) {
	eng := testEngine()

	if _, err := eng.NewQuery(`kMDItemFSName ==`, nil, nil); err == nil {
		t.Error("malformed predicate should fail query construction")
	}
	if _, err := eng.NewQuery(`kMDItemFSSize > 0`, []string{"kMDItemBogus"}, nil); err == nil {
		t.Error("unknown value key should fail query construction")
	}
	if _, err := eng.NewQuery(`kMDItemFSSize > 0`, nil, []string{"kMDItemBogus"}); err == nil {
		t.Error("unknown sort key should fail query construction")
	}

	_, err := eng.NewQuery(`kMDItemFSSize > 0`, nil, []string{attr.Path})
	if !errors.Is(err, ErrUnsortableKey) {
		t.Errorf("path sort key should yield ErrUnsortableKey, got %v", err)
	}

	if _, err := eng.NewQuery(`kMDItemFSSize > 0`, []string{attr.Path}, []string{attr.ContentType}); err != nil {
		t.Errorf("valid query failed: %v", err)
	}
}

func TestBuildSQL(t *testing.T) {
	eng := testEngine()

	q, err := eng.NewQuery(`kMDItemFSSize > 4096`, []string{attr.Path}, []string{attr.ContentType, attr.FSSize})
	if err != nil {
		t.Fatal(err)
	}

	pq := q.(*pgQuery)
	pq.SetSearchScopes(ScopeHome)
	pq.SetMaxCount(25)

	sql, args, err := pq.buildSQL()
	if err != nil {
		t.Fatal(err)
	}

	want := `SELECT attrs FROM items WHERE ((attrs->>'kMDItemFSSize')::numeric > $1)` +
		` AND (path LIKE $2)` +
		` ORDER BY attrs->>'kMDItemContentType' ASC NULLS FIRST, (attrs->>'kMDItemFSSize')::numeric ASC NULLS FIRST` +
		` LIMIT $3`
	if sql != want {
		t.Errorf("sql = %q\nwant  %q", sql, want)
	}

	if len(args) != 3 || args[0] != float64(4096) || args[1] != "/home/someone/%" || args[2] != 25 {
		t.Errorf("args = %v", args)
	}
}

func TestBuildSQL_NoScopeNoSortNoCap(t *testing.T) {
	eng := testEngine()

	q, err := eng.NewQuery(`kMDItemFSName == "a.txt"`, []string{attr.Path}, nil)
	if err != nil {
		t.Fatal(err)
	}

	sql, args, err := q.(*pgQuery).buildSQL()
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(sql, "ORDER BY") || strings.Contains(sql, "LIMIT") || strings.Contains(sql, "path LIKE") {
		t.Errorf("unexpected clauses in %q", sql)
	}
	if len(args) != 1 {
		t.Errorf("args = %v", args)
	}
}

func TestBuildSQL_UnknownScope(t *testing.T) {
	eng := testEngine()

	q, err := eng.NewQuery(`kMDItemFSSize > 0`, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	pq := q.(*pgQuery)
	pq.SetSearchScopes(ScopeNetwork) // no root configured in testEngine

	if _, _, err := pq.buildSQL(); err == nil {
		t.Error("scope without a configured root should fail")
	}
}

func TestScopePattern(t *testing.T) {
	if got := scopePattern("/home/someone/"); got != "/home/someone/%" {
		t.Errorf("scopePattern trailing slash = %q", got)
	}
	if got := scopePattern("/"); got != "/%" {
		t.Errorf("scopePattern root = %q", got)
	}
}

func TestVanishedSQL(t *testing.T) {
	sql, args := vanishedSQL("/home/someone", []string{"/home/someone/a.txt"})
	if !strings.Contains(sql, "ANY($2)") || len(args) != 2 {
		t.Errorf("seen paths not bound: %q %v", sql, args)
	}

	// An emptied root must still be pruned. With no seen paths the ANY
	// filter has to go away: binding a nil or empty array would make the
	// WHERE clause NULL and keep every stale row alive.
	sql, args = vanishedSQL("/home/someone", nil)
	if strings.Contains(sql, "ANY") {
		t.Errorf("empty walk still filters on seen paths: %q", sql)
	}
	if len(args) != 1 || args[0] != "/home/someone/%" {
		t.Errorf("args = %v", args)
	}
}

func TestItem_CopyAttributes(t *testing.T) {
	item := &pgItem{attrs: map[string]any{
		attr.Path:             "/docs/a.txt",
		attr.FSSize:           float64(42),
		attr.ModificationDate: "2024-03-01T12:00:00Z",
		attr.UserTags:         []any{"urgent", "work"},
	}}

	out := item.CopyAttributes([]string{attr.Path, attr.FSSize, attr.ModificationDate, attr.UserTags, attr.ContentType})

	if out[attr.Path] != "/docs/a.txt" || out[attr.FSSize] != float64(42) {
		t.Errorf("scalar attributes wrong: %v", out)
	}

	ts, ok := out[attr.ModificationDate].(time.Time)
	if !ok || !ts.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("date not converted: %v", out[attr.ModificationDate])
	}

	if _, present := out[attr.ContentType]; present {
		t.Error("absent attribute must stay absent")
	}
	if tags, ok := out[attr.UserTags].([]any); !ok || len(tags) != 2 {
		t.Errorf("tags wrong: %v", out[attr.UserTags])
	}
}
