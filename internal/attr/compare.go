package attr

import (
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	collatorMu sync.Mutex
	collator   = collate.New(resolveLocale())
)

// resolveLocale picks the collation locale once at startup. The chain is
// MDSEARCH_LOCALE, then the usual POSIX variables, then US English.
func resolveLocale() language.Tag {
	for _, env := range []string{"MDSEARCH_LOCALE", "LC_COLLATE", "LC_ALL", "LANG"} {
		raw := os.Getenv(env)
		if raw == "" || raw == "C" || raw == "POSIX" {
			continue
		}
		// "en_US.UTF-8" -> "en-US"
		if i := strings.IndexAny(raw, ".@"); i >= 0 {
			raw = raw[:i]
		}
		raw = strings.ReplaceAll(raw, "_", "-")
		if tag, err := language.Parse(raw); err == nil {
			return tag
		}
	}
	return language.AmericanEnglish
}

// Compare orders two attribute values for cascading sorts.
//
// Undefined (nil) handling is deliberately asymmetric: a defined first
// operand against an undefined second one is deemed lesser, while an
// undefined first operand is deemed greater. This matches the engine's
// own convention when it scans a cascading key list top-down; callers
// must not rely on Compare being a strict total order across nil.
//
// Strings order by the process locale, numbers, dates and booleans by
// numeric difference, lists by length then element-wise. Any other
// shape (and any mixed-type pair) compares equal, so unknown values
// pass through without disturbing the cascade.
func Compare(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if b == nil {
		return -1
	}
	if a == nil {
		return 1
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			collatorMu.Lock()
			defer collatorMu.Unlock()
			return collator.CompareString(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return boolToInt(av) - boolToInt(bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return sign(av.Sub(bv).Nanoseconds())
		}
	case []any:
		if bv, ok := b.([]any); ok {
			if d := len(av) - len(bv); d != 0 {
				return sign(int64(d))
			}
			for i := range av {
				if d := Compare(av[i], bv[i]); d != 0 {
					return d
				}
			}
			return 0
		}
	default:
		if af, ok := toFloat(a); ok {
			if bf, ok := toFloat(b); ok {
				switch {
				case af < bf:
					return -1
				case af > bf:
					return 1
				}
				return 0
			}
		}
	}

	return 0
}

// Less reports whether item x sorts before item y under the given
// attribute key sequence, using the first non-zero comparison.
func Less(x, y map[string]any, sortKeys []string) bool {
	for _, key := range sortKeys {
		if d := Compare(x[key], y[key]); d != 0 {
			return d < 0
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func sign(d int64) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}
