// Package criteria implements the criteria algebra of §3/§4.C: the sum
// type of filter nodes, the smart combinators that enforce its
// invariants, and the boolean simplifier that runs inside them.
package criteria

import (
	"encoding/json"
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set"
)

// Criterion is implemented by every criteria algebra variant. Criteria
// are immutable values: once constructed and combined they are
// serialized once and discarded (§3 Lifecycle).
type Criterion interface {
	json.Marshaler
	// name is the stable JSON object key used on serialization (§3).
	name() string
	isCriterion()
}

// ExecutionMode is a Terms execution hint (§GLOSSARY).
type ExecutionMode string

const (
	ExecPlain ExecutionMode = `plain`
	ExecBool  ExecutionMode = `bool`
	ExecAnd   ExecutionMode = `and`
	ExecOr    ExecutionMode = `or`
)

// orCombinable reports whether a Terms in this execution mode may be
// coalesced with another same-field Terms inside an Or.combine (inv. 7).
func (self ExecutionMode) orCombinable() bool {
	switch self {
	case ExecPlain, ExecBool, ExecOr:
		return true
	default:
		return false
	}
}

// Comparison is a Range operator.
type Comparison string

const (
	LT Comparison = `lt`
	LE Comparison = `le`
	GT Comparison = `gt`
	GE Comparison = `ge`
)

// Term is an exact-match criterion: field == value.
type Term struct {
	Field  string
	Value  interface{}
	Member string // optional, original member-chain string for diagnostics
}

func (*Term) isCriterion() {}
func (*Term) name() string { return `term` }

func (self *Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		`term`: map[string]interface{}{
			self.Field: self.Value,
		},
	})
}

func (self *Term) String() string {
	return fmt.Sprintf("term(%s=%v)", self.Field, self.Value)
}

// Terms is a set-membership criterion: field in values.
type Terms struct {
	Field         string
	Values        mapset.Set
	ExecutionMode ExecutionMode
	Member        string
}

func (*Terms) isCriterion() {}
func (*Terms) name() string { return `terms` }

func (self *Terms) sortedValues() []interface{} {
	vals := self.Values.ToSlice()

	sort.Slice(vals, func(i, j int) bool {
		return fmt.Sprintf("%v", vals[i]) < fmt.Sprintf("%v", vals[j])
	})

	return vals
}

func (self *Terms) MarshalJSON() ([]byte, error) {
	payload := map[string]interface{}{
		self.Field: self.sortedValues(),
	}

	if self.ExecutionMode != `` && self.ExecutionMode != ExecPlain {
		payload[`execution`] = string(self.ExecutionMode)
	}

	return json.Marshal(map[string]interface{}{
		`terms`: payload,
	})
}

func (self *Terms) String() string {
	return fmt.Sprintf("terms(%s in %v, %s)", self.Field, self.sortedValues(), self.ExecutionMode)
}

// BuildTerms constructs a Terms (or its degenerate Term/False form) per
// invariant 9: a single value collapses to Term, zero values collapses to
// ConstantCriteria.False.
func BuildTerms(field string, mode ExecutionMode, values ...interface{}) Criterion {
	set := mapset.NewThreadUnsafeSet()

	for _, v := range values {
		set.Add(v)
	}

	switch set.Cardinality() {
	case 0:
		return False
	case 1:
		return &Term{Field: field, Value: set.ToSlice()[0]}
	default:
		return &Terms{Field: field, Values: set, ExecutionMode: mode}
	}
}

// RangeSpec is one (comparison, value) bound of a Range criterion.
type RangeSpec struct {
	Comparison Comparison
	Value      interface{}
}

// Range is a bounds criterion: at most one spec per comparison (§3).
type Range struct {
	Field  string
	Specs  map[Comparison]interface{}
	Member string
}

func (*Range) isCriterion() {}
func (*Range) name() string { return `range` }

func (self *Range) MarshalJSON() ([]byte, error) {
	bounds := make(map[string]interface{}, len(self.Specs))

	for cmp, v := range self.Specs {
		bounds[string(cmp)] = v
	}

	return json.Marshal(map[string]interface{}{
		`range`: map[string]interface{}{
			self.Field: bounds,
		},
	})
}

func (self *Range) String() string {
	return fmt.Sprintf("range(%s, %v)", self.Field, self.Specs)
}

// NewRange builds a single-spec Range criterion.
func NewRange(field string, cmp Comparison, value interface{}) *Range {
	return &Range{
		Field: field,
		Specs: map[Comparison]interface{}{cmp: value},
	}
}

// Missing is a "field has no value" criterion.
type Missing struct {
	Field string
}

func (*Missing) isCriterion() {}
func (*Missing) name() string { return `missing` }

func (self *Missing) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		`missing`: map[string]interface{}{`field`: self.Field},
	})
}

func (self *Missing) String() string {
	return fmt.Sprintf("missing(%s)", self.Field)
}

// Exists is a "field has a value" criterion.
type Exists struct {
	Field string
}

func (*Exists) isCriterion() {}
func (*Exists) name() string { return `exists` }

func (self *Exists) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		`exists`: map[string]interface{}{`field`: self.Field},
	})
}

func (self *Exists) String() string {
	return fmt.Sprintf("exists(%s)", self.Field)
}

// Prefix is a string-prefix criterion.
type Prefix struct {
	Field  string
	Prefix string
}

func (*Prefix) isCriterion() {}
func (*Prefix) name() string { return `prefix` }

func (self *Prefix) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		`prefix`: map[string]interface{}{self.Field: self.Prefix},
	})
}

func (self *Prefix) String() string {
	return fmt.Sprintf("prefix(%s, %q)", self.Field, self.Prefix)
}

// Regexp is a regular-expression criterion.
type Regexp struct {
	Field   string
	Pattern string
}

func (*Regexp) isCriterion() {}
func (*Regexp) name() string { return `regexp` }

func (self *Regexp) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		`regexp`: map[string]interface{}{self.Field: self.Pattern},
	})
}

func (self *Regexp) String() string {
	return fmt.Sprintf("regexp(%s, %q)", self.Field, self.Pattern)
}

// Not negates its inner criterion. Use Negate to construct one — it
// applies invariants 3/4 and the Missing/Exists symmetry.
type Not struct {
	Inner Criterion
}

func (*Not) isCriterion() {}
func (*Not) name() string { return `not` }

func (self *Not) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		`not`: map[string]interface{}{`filter`: self.Inner},
	})
}

func (self *Not) String() string {
	return fmt.Sprintf("not(%s)", describeOne(self.Inner))
}

// And is a conjunction of two or more criteria. Use CombineAnd to
// construct one — it enforces invariants 1, 2, 5, 8.
type And struct {
	Children []Criterion
}

func (*And) isCriterion() {}
func (*And) name() string { return `and` }

func (self *And) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		`and`: map[string]interface{}{`filters`: self.Children},
	})
}

func (self *And) String() string {
	return joinChildren(`and`, self.Children)
}

// Or is a disjunction of two or more criteria. Use CombineOr to
// construct one — it enforces invariants 1, 2, 6, 7.
type Or struct {
	Children []Criterion
}

func (*Or) isCriterion() {}
func (*Or) name() string { return `or` }

func (self *Or) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		`or`: map[string]interface{}{`filters`: self.Children},
	})
}

func (self *Or) String() string {
	return joinChildren(`or`, self.Children)
}

// constCriteria is the sentinel True/False criterion. Interned per §5.
type constCriteria struct {
	value bool
}

func (*constCriteria) isCriterion() {}

func (self *constCriteria) name() string {
	if self.value {
		return `match_all`
	}

	return `match_none`
}

func (self *constCriteria) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		self.name(): map[string]interface{}{},
	})
}

func (self *constCriteria) String() string {
	return self.name()
}

// True and False are the interned ConstantCriteria singletons (§3, §5).
var True Criterion = &constCriteria{value: true}
var False Criterion = &constCriteria{value: false}

// IsTrue reports whether c is the True sentinel.
func IsTrue(c Criterion) bool {
	cc, ok := c.(*constCriteria)
	return ok && cc.value
}

// IsFalse reports whether c is the False sentinel.
func IsFalse(c Criterion) bool {
	cc, ok := c.(*constCriteria)
	return ok && !cc.value
}
