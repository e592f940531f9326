// Package translate implements the predicate translator (§4.E): a
// recursive-descent rewrite from an expression AST to a criteria tree,
// dispatching on node shape via the pattern-recognition rules B, C, L, M,
// N, and K.
package translate

import (
	"fmt"

	"github.com/ghetzel/go-stockutil/log"

	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/errs"
	"github.com/ghetzel/esquery/eval"
	"github.com/ghetzel/esquery/expr"
	"github.com/ghetzel/esquery/mapping"
)

// MaxDepth bounds the recursive descent (grounded on the other-examples
// es_translator.go's maxDepth/currentDepth guard) so a pathological input
// tree raises an Argument error instead of overflowing the stack.
var MaxDepth = 64

// Translator translates a single predicate lambda into a criteria tree.
// It is pure and stateless per call (§5): concurrent translations with
// independent Translator values, or a single Translator shared across
// goroutines, never interfere — Mapping must itself be concurrency-safe.
type Translator struct {
	Mapping   mapping.Mapping
	Evaluator *eval.Evaluator
	MaxDepth  int
}

// New builds a Translator against the given mapping, with a fresh default
// partial-evaluator cache.
func New(m mapping.Mapping) *Translator {
	return &Translator{
		Mapping:   m,
		Evaluator: eval.NewDefault(),
		MaxDepth:  MaxDepth,
	}
}

// Translate is the entry point (§4.E): given a lambda of shape
// `x => body(x)` returning boolean, produce a criterion. The lambda's
// body is first partially evaluated (§4.D), then recursively translated.
func (self *Translator) Translate(l *expr.Lambda) (criteria.Criterion, error) {
	if l == nil {
		return nil, errs.New(errs.Argument, "lambda must not be nil", nil)
	}

	evaluator := self.Evaluator

	if evaluator == nil {
		evaluator = eval.NewDefault()
	}

	folded, err := evaluator.Eval(l.Body, l.Param.Name)

	if err != nil {
		return nil, err
	}

	return self.translateNode(folded, 0)
}

// TranslateAll translates a set of independent lambdas and CombineAnds
// the results — useful for a host that has already split a compound
// predicate at a `Where` boundary (SPEC_FULL.md §4, grounded on
// zoekt.NewAnd's convenience-constructor shape). It composes criteria;
// it never executes anything (the Non-goals of §1 still apply).
func (self *Translator) TranslateAll(lambdas ...*expr.Lambda) (criteria.Criterion, error) {
	children := make([]criteria.Criterion, 0, len(lambdas))

	for _, l := range lambdas {
		c, err := self.Translate(l)

		if err != nil {
			return nil, err
		}

		children = append(children, c)
	}

	return criteria.CombineAnd(children...), nil
}

func (self *Translator) maxDepth() int {
	if self.MaxDepth > 0 {
		return self.MaxDepth
	}

	return MaxDepth
}

// translateNode is the recursive-descent dispatcher. Every node passes
// through unwrap first (stripping outer Convert/Quote/`.Value`, Rule C /
// Rule N), matching §4.E's "Dispatch is by the top node of body after
// stripping outer Convert... and outer Quote."
func (self *Translator) translateNode(node expr.Node, depth int) (criteria.Criterion, error) {
	if depth > self.maxDepth() {
		return nil, errs.New(errs.Argument, fmt.Sprintf("expression exceeds max depth %d", self.maxDepth()), node)
	}

	node, err := self.unwrap(node)

	if err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case *expr.Constant:
		return self.translateConstant(n)

	case *expr.Binary:
		return self.translateBinary(n, depth)

	case *expr.Unary:
		return self.translateUnary(n, depth)

	case *expr.MethodCall:
		return self.translateMethodCall(n, depth)

	case *expr.Member:
		return self.translateBareMember(n)

	default:
		return nil, errs.New(errs.Unsupported, fmt.Sprintf("cannot translate node of type %T", node), node)
	}
}

// translateConstant implements Rule K: a constant predicate body
// translates to the corresponding ConstantCriteria sentinel.
func (self *Translator) translateConstant(c *expr.Constant) (criteria.Criterion, error) {
	if c.IsNull() {
		return nil, errs.New(errs.Unsupported, "a null constant is not a valid predicate body", c)
	}

	b, ok := c.Value.(bool)

	if !ok {
		return nil, errs.New(errs.Unsupported, "a non-boolean constant is not a valid predicate body", c)
	}

	if b {
		log.Debugf("esquery/translate: constant-true predicate body")
		return criteria.True, nil
	}

	return criteria.False, nil
}

// translateBareMember handles a predicate body that is itself a plain
// member access: `r.IsActive` (a boolean field test) or `r.Age.HasValue`
// (Rule N, handled in rules_nullable.go).
func (self *Translator) translateBareMember(mem *expr.Member) (criteria.Criterion, error) {
	if mem.Name == `HasValue` {
		return self.translateHasValue(mem)
	}

	if mem.StaticType.Kind != dal.KindBool {
		return nil, errs.New(errs.Unsupported, "a bare member access must be boolean-valued to stand as a predicate", mem)
	}

	field, leaf, err := self.fieldOf(mem)

	if err != nil {
		return nil, err
	}

	value, err := self.Mapping.FormatValue(leaf, true)

	if err != nil {
		return nil, wrapFormatErr(mem, err)
	}

	return &criteria.Term{Field: field, Value: value}, nil
}
