//go:build linux

package ingest

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/kopischke/mdsearch/internal/attr"
)

func TestPlatformAttributes_Times(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.txt", "x")

	info, err := os.Stat(p)
	if err != nil {
		t.Fatal(err)
	}

	attrs := platformAttributes(p, info)
	created, ok := attrs[attr.CreationDate].(time.Time)
	if !ok {
		t.Fatalf("CreationDate = %v", attrs[attr.CreationDate])
	}
	if _, ok := attrs[attr.LastUsedDate].(time.Time); !ok {
		t.Fatalf("LastUsedDate = %v", attrs[attr.LastUsedDate])
	}
	if time.Since(created) > time.Minute {
		t.Errorf("creation time implausibly old: %v", created)
	}
}

func TestReadUserTags(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tagged.txt", "x")

	if err := syscall.Setxattr(p, userTagsXattr, []byte("urgent, work"), 0); err != nil {
		t.Skipf("xattrs not supported on this filesystem: %v", err)
	}

	tags := readUserTags(p)
	if len(tags) != 2 || tags[0] != "urgent" || tags[1] != "work" {
		t.Errorf("tags = %v", tags)
	}

	if got := readUserTags(writeFile(t, dir, "plain.txt", "x")); got != nil {
		t.Errorf("untagged file yields %v, want none", got)
	}
}
