package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kopischke/mdsearch/internal/attr"
	"github.com/kopischke/mdsearch/internal/stream"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestWalker_Attributes(t *testing.T) {
	dir := t.TempDir()
	txtPath := writeFile(t, dir, "notes.txt", "hello")
	writeFile(t, dir, "sub/data.mystery", "????")

	collected := map[string]map[string]any{}
	w := NewWalker(nil, testLogger())
	err := w.Walk(dir, func(path string, attrs map[string]any) error {
		collected[path] = attrs
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	if len(collected) != 2 {
		t.Fatalf("collected %d files, want 2", len(collected))
	}

	txt := collected[txtPath]
	if txt[attr.FSName] != "notes.txt" {
		t.Errorf("FSName = %v", txt[attr.FSName])
	}
	if txt[attr.DisplayName] != "notes" {
		t.Errorf("DisplayName = %v", txt[attr.DisplayName])
	}
	if txt[attr.FSSize] != float64(5) {
		t.Errorf("FSSize = %v", txt[attr.FSSize])
	}
	if txt[attr.ContentType] != "public.plain-text" {
		t.Errorf("ContentType = %v", txt[attr.ContentType])
	}
	if _, ok := txt[attr.ModificationDate].(time.Time); !ok {
		t.Errorf("ModificationDate not a time: %v", txt[attr.ModificationDate])
	}

	// Unknown extension: content type could not be determined, so the
	// attribute must be absent rather than empty.
	mystery := collected[filepath.Join(dir, "sub", "data.mystery")]
	if _, present := mystery[attr.ContentType]; present {
		t.Error("undeterminable content type should be absent")
	}
	if _, present := mystery[attr.Kind]; present {
		t.Error("undeterminable kind should be absent")
	}
}

func TestWalker_Excludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.txt", "x")
	writeFile(t, dir, "skip.tmp", "x")
	writeFile(t, dir, ".git/config", "x")

	var paths []string
	w := NewWalker([]string{"*.tmp", ".git"}, testLogger())
	err := w.Walk(dir, func(path string, attrs map[string]any) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	if len(paths) != 1 || filepath.Base(paths[0]) != "keep.txt" {
		t.Errorf("excludes not applied, walked: %v", paths)
	}
}

type fakeStore struct {
	upserts map[string]map[string]any
	pruned  []string
}

func (s *fakeStore) Upsert(_ context.Context, path string, attrs map[string]any) error {
	if s.upserts == nil {
		s.upserts = map[string]map[string]any{}
	}
	s.upserts[path] = attrs
	return nil
}

func (s *fakeStore) DeleteVanished(_ context.Context, root string, seen []string) ([]string, error) {
	s.pruned = seen
	return []string{"/gone/x.txt", "/gone/y.txt", "/gone/z.txt"}, nil
}

type fakePublisher struct {
	events []stream.IndexEvent
}

func (p *fakePublisher) Publish(_ context.Context, event stream.IndexEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func TestPipeline_IndexRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "aa")
	writeFile(t, dir, "b.md", "bb")

	store := &fakeStore{}
	pub := &fakePublisher{}
	pipeline := NewPipeline(NewWalker(nil, testLogger()), store, pub, testLogger())

	stats, err := pipeline.IndexRoot(context.Background(), dir)
	if err != nil {
		t.Fatalf("IndexRoot failed: %v", err)
	}

	if stats.Indexed != 2 {
		t.Errorf("Indexed = %d, want 2", stats.Indexed)
	}
	if stats.Removed != 3 {
		t.Errorf("Removed = %d, want 3", stats.Removed)
	}
	if len(store.pruned) != 2 {
		t.Errorf("prune saw %d paths, want 2", len(store.pruned))
	}
	// Two indexed events for the walked files, then one removal per
	// pruned path.
	if len(pub.events) != 5 {
		t.Fatalf("published %d events, want 5", len(pub.events))
	}
	var indexed, removed int
	for _, ev := range pub.events {
		if ev.Path == "" {
			t.Errorf("malformed event: %+v", ev)
		}
		switch ev.Event {
		case stream.EventIndexed:
			indexed++
		case stream.EventRemoved:
			removed++
		}
	}
	if indexed != 2 || removed != 3 {
		t.Errorf("indexed = %d, removed = %d, want 2 and 3", indexed, removed)
	}
}

func TestPipeline_NilPublisher(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "aa")

	pipeline := NewPipeline(NewWalker(nil, testLogger()), &fakeStore{}, nil, testLogger())
	if _, err := pipeline.IndexRoot(context.Background(), dir); err != nil {
		t.Fatalf("IndexRoot without publisher failed: %v", err)
	}
}
