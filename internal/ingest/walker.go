// Package ingest walks filesystem roots and feeds item metadata into
// the index.
package ingest

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kopischke/mdsearch/internal/attr"
)

// utiTypes maps file extensions to UTI-style content types and a human
// readable kind label. Extensions outside the table have no determinable
// content type; the attribute is then simply absent.
var utiTypes = map[string]struct {
	ContentType string
	Kind        string
}{
	".txt":  {"public.plain-text", "Plain Text Document"},
	".md":   {"net.daringfireball.markdown", "Markdown Document"},
	".html": {"public.html", "HTML Document"},
	".xml":  {"public.xml", "XML Document"},
	".json": {"public.json", "JSON Document"},
	".yaml": {"public.yaml", "YAML Document"},
	".yml":  {"public.yaml", "YAML Document"},
	".csv":  {"public.comma-separated-values-text", "CSV Document"},
	".pdf":  {"com.adobe.pdf", "PDF Document"},
	".png":  {"public.png", "PNG Image"},
	".jpg":  {"public.jpeg", "JPEG Image"},
	".jpeg": {"public.jpeg", "JPEG Image"},
	".gif":  {"com.compuserve.gif", "GIF Image"},
	".mp3":  {"public.mp3", "MP3 Audio"},
	".mp4":  {"public.mpeg-4", "MPEG-4 Video"},
	".zip":  {"public.zip-archive", "ZIP Archive"},
	".go":   {"public.go-source", "Go Source"},
	".py":   {"public.python-script", "Python Script"},
	".sh":   {"public.shell-script", "Shell Script"},
}

// DetectContentType resolves the content type and kind label for a file
// name. The second return is false when the type cannot be determined;
// callers must then leave the attributes unset rather than guessing.
func DetectContentType(name string) (contentType, kind string, ok bool) {
	entry, found := utiTypes[strings.ToLower(path.Ext(name))]
	if !found {
		return "", "", false
	}
	return entry.ContentType, entry.Kind, true
}

type Walker struct {
	excludes []string // base-name glob patterns skipped during the walk
	logger   *zerolog.Logger
}

func NewWalker(excludes []string, logger *zerolog.Logger) *Walker {
	return &Walker{
		excludes: excludes,
		logger:   logger,
	}
}

// Walk visits every regular file under root and calls fn with its
// attribute map. Unreadable entries are logged and skipped; only fn
// errors abort the walk.
func (w *Walker) Walk(root string, fn func(path string, attrs map[string]any) error) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn().Err(err).Str("path", p).Msg("Skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if w.excluded(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			w.logger.Warn().Err(err).Str("path", p).Msg("Skipping entry without file info")
			return nil
		}

		return fn(p, fileAttributes(p, name, info))
	})
}

func (w *Walker) excluded(name string) bool {
	for _, pattern := range w.excludes {
		if matched, err := path.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// fileAttributes builds the indexable attribute map for one file.
// Undeterminable attributes (content type of an unknown extension) are
// left out entirely — absent means "could not be determined", never an
// error.
func fileAttributes(p, name string, info fs.FileInfo) map[string]any {
	attrs := map[string]any{
		attr.Path:             p,
		attr.FSName:           name,
		attr.DisplayName:      strings.TrimSuffix(name, path.Ext(name)),
		attr.FSSize:           float64(info.Size()),
		attr.ModificationDate: info.ModTime().UTC(),
	}

	if contentType, kind, ok := DetectContentType(name); ok {
		attrs[attr.ContentType] = contentType
		attrs[attr.Kind] = kind
	}

	for key, value := range platformAttributes(p, info) {
		attrs[key] = value
	}

	return attrs
}
