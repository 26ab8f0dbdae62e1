package record

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lifehub-service/internal/model"
)

// apply evaluates list options over already-scoped records. Both backends
// share this so filter and sort semantics cannot drift between them.
func apply(records []model.ModuleRecord, opts ListOptions) []model.ModuleRecord {
	out := records
	if len(opts.Filters) > 0 {
		out = make([]model.ModuleRecord, 0, len(records))
		for _, r := range records {
			if matchesAll(&r, opts.Filters) {
				out = append(out, r)
			}
		}
	}

	if len(opts.Sorts) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return lessBySorts(&out[i], &out[j], opts.Sorts)
		})
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []model.ModuleRecord{}
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out
}

func matchesAll(r *model.ModuleRecord, filters []Filter) bool {
	for _, f := range filters {
		if !matches(r.Field(f.Field), f) {
			return false
		}
	}
	return true
}

func matches(fieldValue interface{}, f Filter) bool {
	switch f.Operator {
	case model.OperatorEmpty:
		return isEmpty(fieldValue)
	case model.OperatorNotEmpty:
		return !isEmpty(fieldValue)
	case model.OperatorEquals:
		return equalValues(fieldValue, f.Value)
	case model.OperatorNotEquals:
		return !equalValues(fieldValue, f.Value)
	case model.OperatorContains:
		return containsValue(fieldValue, f.Value)
	case model.OperatorGt:
		cmp, ok := compareValues(fieldValue, f.Value)
		return ok && cmp > 0
	case model.OperatorLt:
		cmp, ok := compareValues(fieldValue, f.Value)
		return ok && cmp < 0
	default:
		return false
	}
}

func isEmpty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []interface{}:
		return len(x) == 0
	}
	return false
}

func equalValues(a, b interface{}) bool {
	if na, aok := asNumber(a); aok {
		if nb, bok := asNumber(b); bok {
			return na == nb
		}
	}
	if ba, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			return ba == bb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// containsValue handles both multi-select fields (element membership) and
// plain strings (case-insensitive substring).
func containsValue(fieldValue, want interface{}) bool {
	if list, ok := fieldValue.([]interface{}); ok {
		for _, item := range list {
			if equalValues(item, want) {
				return true
			}
		}
		return false
	}
	s, ok := fieldValue.(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(fmt.Sprint(want)))
}

// compareValues orders two field values. Numbers compare numerically,
// everything else lexicographically, which also covers ISO date strings.
func compareValues(a, b interface{}) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if na, aok := asNumber(a); aok {
		if nb, bok := asNumber(b); bok {
			switch {
			case na < nb:
				return -1, true
			case na > nb:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b)), true
}

func asNumber(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		n, err := strconv.ParseFloat(x, 64)
		return n, err == nil
	}
	return 0, false
}

func lessBySorts(a, b *model.ModuleRecord, sorts []Sort) bool {
	for _, s := range sorts {
		av, bv := a.Field(s.Field), b.Field(s.Field)
		// Missing values always sort to the end.
		if isEmpty(av) != isEmpty(bv) {
			return isEmpty(bv)
		}
		cmp, ok := compareValues(av, bv)
		if !ok || cmp == 0 {
			continue
		}
		if s.Direction == model.SortDesc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}
