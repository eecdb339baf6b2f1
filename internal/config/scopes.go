package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kopischke/mdsearch/internal/engine"
)

// ScopesFile maps the engine's scope constants to filesystem roots.
// Top-level excludes apply to every scope; each entry may add its own.
type ScopesFile struct {
	Scopes   []ScopeEntry `yaml:"scopes"`
	Excludes []string     `yaml:"excludes"`
}

type ScopeEntry struct {
	Name     string   `yaml:"name"` // "computer", "home" or "network"
	Root     string   `yaml:"root"`
	Excludes []string `yaml:"excludes"` // base-name globs skipped under this root
}

var scopeNames = map[string]engine.Scope{
	"computer": engine.ScopeComputer,
	"home":     engine.ScopeHome,
	"network":  engine.ScopeNetwork,
}

// ScopeByName resolves a short scope name ("home") to its constant.
func ScopeByName(name string) (engine.Scope, bool) {
	scope, ok := scopeNames[name]
	return scope, ok
}

// LoadScopes reads path and returns the scope-to-root mapping plus the
// indexer excludes per scope (the file-wide list merged with each
// entry's own). A missing file yields the defaults: computer at / and
// home at $HOME, with no excludes.
func LoadScopes(path string) (map[engine.Scope]string, map[engine.Scope][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultScopes(), nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read scopes file %s: %w", path, err)
	}

	var file ScopesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse scopes file %s: %w", path, err)
	}

	roots := make(map[engine.Scope]string, len(file.Scopes))
	excludes := make(map[engine.Scope][]string, len(file.Scopes))
	for _, entry := range file.Scopes {
		scope, ok := scopeNames[entry.Name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown scope %q in %s", entry.Name, path)
		}
		if entry.Root == "" {
			return nil, nil, fmt.Errorf("scope %q has no root in %s", entry.Name, path)
		}
		roots[scope] = entry.Root
		excludes[scope] = append(append([]string(nil), file.Excludes...), entry.Excludes...)
	}

	if _, ok := roots[engine.ScopeComputer]; !ok {
		roots[engine.ScopeComputer] = "/"
		excludes[engine.ScopeComputer] = file.Excludes
	}

	return roots, excludes, nil
}

func defaultScopes() map[engine.Scope]string {
	roots := map[engine.Scope]string{
		engine.ScopeComputer: "/",
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots[engine.ScopeHome] = home
	}
	return roots
}
