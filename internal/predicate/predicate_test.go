package predicate

import (
	"strings"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "string equality",
			input:    `kMDItemFSName == "foo.txt"`,
			wantSQL:  `attrs->>'kMDItemFSName' = $1`,
			wantArgs: []any{"foo.txt"},
		},
		{
			name:     "single quotes",
			input:    `kMDItemFSName == 'foo.txt'`,
			wantSQL:  `attrs->>'kMDItemFSName' = $1`,
			wantArgs: []any{"foo.txt"},
		},
		{
			name:     "wildcard",
			input:    `kMDItemFSName == "report*"`,
			wantSQL:  `attrs->>'kMDItemFSName' LIKE $1`,
			wantArgs: []any{"report%"},
		},
		{
			name:     "case-insensitive wildcard",
			input:    `kMDItemDisplayName == "annual*"c`,
			wantSQL:  `attrs->>'kMDItemDisplayName' ILIKE $1`,
			wantArgs: []any{"annual%"},
		},
		{
			name:     "negated pattern",
			input:    `kMDItemFSName != "*.tmp"`,
			wantSQL:  `attrs->>'kMDItemFSName' NOT LIKE $1`,
			wantArgs: []any{"%.tmp"},
		},
		{
			name:     "numeric comparison",
			input:    `kMDItemFSSize > 4096`,
			wantSQL:  `(attrs->>'kMDItemFSSize')::numeric > $1`,
			wantArgs: []any{float64(4096)},
		},
		{
			name:     "date comparison",
			input:    `kMDItemContentModificationDate >= "2024-01-01"`,
			wantSQL:  `(attrs->>'kMDItemContentModificationDate')::timestamptz >= $1::timestamptz`,
			wantArgs: []any{"2024-01-01"},
		},
		{
			name:     "tag membership",
			input:    `kMDItemUserTags == "urgent"`,
			wantSQL:  `attrs->'kMDItemUserTags' ? $1`,
			wantArgs: []any{"urgent"},
		},
		{
			name:     "conjunction",
			input:    `kMDItemContentType == "public.text" && kMDItemFSSize <= 1024`,
			wantSQL:  `(attrs->>'kMDItemContentType' = $1 AND (attrs->>'kMDItemFSSize')::numeric <= $2)`,
			wantArgs: []any{"public.text", float64(1024)},
		},
		{
			name:     "disjunction with grouping and negation",
			input:    `!(kMDItemFSName == "a") || kMDItemFSSize < 10`,
			wantSQL:  `(NOT (attrs->>'kMDItemFSName' = $1) OR (attrs->>'kMDItemFSSize')::numeric < $2)`,
			wantArgs: []any{"a", float64(10)},
		},
		{
			name:    "in range",
			input:   `InRange(kMDItemFSSize, 100, 200)`,
			wantSQL: `((attrs->>'kMDItemFSSize')::numeric >= $1 AND (attrs->>'kMDItemFSSize')::numeric <= $2)`,
			wantArgs: []any{
				float64(100), float64(200),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sql, args, err := Compile(tc.input)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tc.input, err)
			}
			if sql != tc.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tc.wantSQL)
			}
			if len(args) != len(tc.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tc.wantArgs)
			}
			for i := range args {
				if args[i] != tc.wantArgs[i] {
					t.Errorf("arg %d = %v, want %v", i, args[i], tc.wantArgs[i])
				}
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"unknown key", `kMDItemBogus == "x"`, "unknown attribute"},
		{"single equals", `kMDItemFSName = "x"`, "use '=='"},
		{"unterminated string", `kMDItemFSName == "x`, "unterminated string"},
		{"missing operand", `kMDItemFSSize >`, "numeric literal"},
		{"type mismatch", `kMDItemFSSize == "big"`, "numeric literal"},
		{"ordering on list", `kMDItemUserTags < "a"`, "not applicable to lists"},
		{"trailing garbage", `kMDItemFSSize > 1 kMDItemFSSize`, "unexpected"},
		{"stray ampersand", `kMDItemFSSize > 1 & kMDItemFSSize < 2`, "stray '&'"},
		{"empty input", ``, "unexpected"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Compile(tc.input)
			if err == nil {
				t.Fatalf("Compile(%q) unexpectedly succeeded", tc.input)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}
