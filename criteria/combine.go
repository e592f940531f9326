package criteria

import (
	"encoding/json"

	mapset "github.com/deckarep/golang-set"
)

// key returns a deterministic structural fingerprint of a criterion, used
// for the dedupe step of CombineAnd/CombineOr (inv. 3's "structural
// equality"). Two criteria that marshal identically are, for the
// algebra's purposes, the same criterion.
func key(c Criterion) string {
	data, err := json.Marshal(c)

	if err != nil {
		return ``
	}

	return string(data)
}

// flattenChildren inlines any child of the same kind as parent (inv. 1),
// the same flatten-until-fixpoint approach as the pack's
// google-zoekt/query/query.go flattenAndOr/flatten pair.
func flattenChildren(children []Criterion, isAnd bool) []Criterion {
	var out []Criterion

	for _, ch := range children {
		switch c := ch.(type) {
		case *And:
			if isAnd {
				out = append(out, flattenChildren(c.Children, isAnd)...)
				continue
			}
		case *Or:
			if !isAnd {
				out = append(out, flattenChildren(c.Children, isAnd)...)
				continue
			}
		}

		out = append(out, ch)
	}

	return out
}

// dedupe drops structurally-identical repeats, preserving first-seen order.
func dedupe(children []Criterion) []Criterion {
	seen := make(map[string]bool, len(children))
	out := make([]Criterion, 0, len(children))

	for _, c := range children {
		k := key(c)

		if seen[k] {
			continue
		}

		seen[k] = true
		out = append(out, c)
	}

	return out
}

// coalesceOrTerms implements inv. 7: multiple or-combinable Terms over the
// same field collapse into one Terms holding the union of values.
func coalesceOrTerms(children []Criterion) []Criterion {
	type group struct {
		field string
		mode  ExecutionMode
		union mapset.Set
	}

	order := make([]string, 0)
	groups := make(map[string]*group)
	out := make([]Criterion, 0, len(children))

	for _, c := range children {
		t, ok := c.(*Terms)

		if !ok || !t.ExecutionMode.orCombinable() {
			out = append(out, c)
			continue
		}

		g, exists := groups[t.Field]

		if !exists {
			g = &group{field: t.Field, mode: t.ExecutionMode, union: mapset.NewThreadUnsafeSet()}
			groups[t.Field] = g
			order = append(order, t.Field)
		}

		g.union = g.union.Union(t.Values)
	}

	merged := make(map[string]Criterion, len(order))

	for _, field := range order {
		g := groups[field]
		merged[field] = &Terms{Field: g.field, Values: g.union, ExecutionMode: g.mode}
	}

	final := make([]Criterion, 0, len(out)+len(order))
	placed := make(map[string]bool, len(order))

	for _, c := range children {
		if t, ok := c.(*Terms); ok && t.ExecutionMode.orCombinable() {
			if !placed[t.Field] {
				final = append(final, merged[t.Field])
				placed[t.Field] = true
			}

			continue
		}

		final = append(final, c)
	}

	return final
}

// tighten keeps, for a given comparison, the bound that admits fewer
// values: the smaller value for an upper bound (lt/le), the larger value
// for a lower bound (gt/ge). Comparison is attempted via float64; specs
// that cannot be compared numerically are simply overwritten by the later
// spec (best-effort, matching the pack's leniency around mixed types).
func tighten(cmp Comparison, existing, incoming interface{}) interface{} {
	ef, eok := toFloat(existing)
	inf, iok := toFloat(incoming)

	if !eok || !iok {
		return incoming
	}

	switch cmp {
	case LT, LE:
		if inf < ef {
			return incoming
		}

		return existing
	case GT, GE:
		if inf > ef {
			return incoming
		}

		return existing
	default:
		return incoming
	}
}

func toFloat(v interface{}) (float64, bool) {
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
	default:
		return 0, false
	}
}

// mergeAndRanges implements inv. 8: same-field Range criteria merge into
// one Range whose spec set is the union, ties broken by tightening.
func mergeAndRanges(children []Criterion) []Criterion {
	order := make([]string, 0)
	merged := make(map[string]*Range)
	out := make([]Criterion, 0, len(children))

	for _, c := range children {
		r, ok := c.(*Range)

		if !ok {
			out = append(out, c)
			continue
		}

		existing, has := merged[r.Field]

		if !has {
			specs := make(map[Comparison]interface{}, len(r.Specs))

			for k, v := range r.Specs {
				specs[k] = v
			}

			merged[r.Field] = &Range{Field: r.Field, Specs: specs}
			order = append(order, r.Field)
			continue
		}

		for cmp, v := range r.Specs {
			if cur, ok := existing.Specs[cmp]; ok {
				existing.Specs[cmp] = tighten(cmp, cur, v)
			} else {
				existing.Specs[cmp] = v
			}
		}
	}

	final := make([]Criterion, 0, len(out)+len(order))
	placed := make(map[string]bool, len(order))

	for _, c := range children {
		if r, ok := c.(*Range); ok {
			if !placed[r.Field] {
				final = append(final, merged[r.Field])
				placed[r.Field] = true
			}

			continue
		}

		final = append(final, c)
	}

	return final
}

// CombineAnd builds a conjunction, enforcing invariants 1, 2, 3, 5, 8.
func CombineAnd(children ...Criterion) Criterion {
	flat := flattenChildren(children, true)

	var absorbed []Criterion

	for _, c := range flat {
		if IsFalse(c) {
			return False
		}

		if IsTrue(c) {
			continue
		}

		absorbed = append(absorbed, c)
	}

	absorbed = dedupe(absorbed)
	absorbed = mergeAndRanges(absorbed)

	switch len(absorbed) {
	case 0:
		return True
	case 1:
		return absorbed[0]
	default:
		return &And{Children: absorbed}
	}
}

// CombineOr builds a disjunction, enforcing invariants 1, 2, 3, 6, 7.
func CombineOr(children ...Criterion) Criterion {
	flat := flattenChildren(children, false)

	var absorbed []Criterion

	for _, c := range flat {
		if IsTrue(c) {
			return True
		}

		if IsFalse(c) {
			continue
		}

		absorbed = append(absorbed, c)
	}

	absorbed = dedupe(absorbed)
	absorbed = coalesceOrTerms(absorbed)

	switch len(absorbed) {
	case 0:
		return False
	case 1:
		return absorbed[0]
	default:
		return &Or{Children: absorbed}
	}
}

// Negate builds a negation, enforcing invariants 3, 4, and the
// Missing/Exists symmetry (§4.C).
func Negate(inner Criterion) Criterion {
	switch c := inner.(type) {
	case *Not:
		return c.Inner
	case *Missing:
		return &Exists{Field: c.Field}
	case *Exists:
		return &Missing{Field: c.Field}
	default:
		if IsTrue(inner) {
			return False
		}

		if IsFalse(inner) {
			return True
		}

		return &Not{Inner: inner}
	}
}
