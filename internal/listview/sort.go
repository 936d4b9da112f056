package listview

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names a record field and a direction. A sequence of keys forms a
// lexicographic multi-key comparator: later keys break ties left by earlier
// ones.
type SortKey struct {
	Key        string `json:"key"`
	Descending bool   `json:"descending"`
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T\s].*)?$`)

var isoDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

// compareValues orders two field values. Nil sorts after any defined value
// regardless of direction; otherwise the comparison is chosen by type:
// ISO-date-like strings as timestamps, strings by collation, numbers
// numerically, time.Time chronologically, anything else by its string form.
func compareValues(col *collate.Collator, a, b any) int {
	a, b = normalize(a), normalize(b)

	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			if isoDatePattern.MatchString(as) && isoDatePattern.MatchString(bs) {
				at, aok := parseISODate(as)
				bt, bok := parseISODate(bs)
				if aok && bok {
					return at.Compare(bt)
				}
			}
			return col.CompareString(as, bs)
		}
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// normalize unwraps pointer values so nil pointers sort as null.
func normalize(v any) any {
	switch p := v.(type) {
	case nil:
		return nil
	case *string:
		if p == nil {
			return nil
		}
		return *p
	case *int:
		if p == nil {
			return nil
		}
		return *p
	case *int64:
		if p == nil {
			return nil
		}
		return *p
	case *float64:
		if p == nil {
			return nil
		}
		return *p
	case *time.Time:
		if p == nil {
			return nil
		}
		return *p
	default:
		return v
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// compareRecords walks the sort keys in order until one yields a non-zero
// result. Direction flips the order of defined values only; null placement
// is unaffected. Undeclared keys are skipped.
func (v *View[T]) compareRecords(a, b T, keys []SortKey) int {
	for _, key := range keys {
		accessor := v.desc.Field(key.Key)
		if accessor == nil {
			continue
		}
		av, bv := normalize(accessor(a)), normalize(accessor(b))
		if av == nil && bv == nil {
			continue
		}
		if av == nil {
			return 1
		}
		if bv == nil {
			return -1
		}
		if c := compareValues(v.col, av, bv); c != 0 {
			if key.Descending {
				return -c
			}
			return c
		}
	}
	return 0
}
