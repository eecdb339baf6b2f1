//go:build !linux

package ingest

import "io/fs"

// platformAttributes has no portable source for inode times or user tags
// here; the attributes stay absent, meaning "could not be determined".
func platformAttributes(string, fs.FileInfo) map[string]any { return nil }
