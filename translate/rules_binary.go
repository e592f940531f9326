package translate

import (
	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/errs"
	"github.com/ghetzel/esquery/expr"
)

// translateBinary implements Rule B (equality/range) and Rule L's binary
// logical operators (AndAlso/OrElse), which share the Binary node shape.
func (self *Translator) translateBinary(b *expr.Binary, depth int) (criteria.Criterion, error) {
	switch b.Op {
	case expr.AndAlso:
		return self.translateAndAlso(b, depth)

	case expr.OrElse:
		return self.translateOrElse(b, depth)

	case expr.Equal, expr.NotEqual:
		return self.translateEquality(b, depth)

	case expr.LessThan, expr.LessEq, expr.GreaterThan, expr.GreaterEq:
		return self.translateRange(b, depth)

	default:
		return nil, errs.New(errs.Unsupported, "unsupported binary operator", b)
	}
}

// translateEquality implements Rule B's equality branch. The
// boolean-constant shortcut (`<boolean-valued expr> == true`/`== false`)
// is checked first and against BOTH operands, generically — not just a
// bare member chain — because it changes the SHAPE of the result (a
// recursive translation of the other side, possibly Negate-wrapped)
// rather than merely its value, and that shape change applies equally to
// a compound boolean sub-expression (`(r.A == "x") == true`) as to a
// plain field test (`r.Flag == true`). It must win before the generic
// member/constant branch below ever inspects the operands.
func (self *Translator) translateEquality(b *expr.Binary, depth int) (criteria.Criterion, error) {
	left, err := self.unwrap(b.Left)

	if err != nil {
		return nil, err
	}

	right, err := self.unwrap(b.Right)

	if err != nil {
		return nil, err
	}

	negated := b.Op == expr.NotEqual

	if flag, ok := boolConstant(left); ok {
		return self.translateBoolShortcut(right, flag, negated, depth)
	}

	if flag, ok := boolConstant(right); ok {
		return self.translateBoolShortcut(left, flag, negated, depth)
	}

	if isMemberChain(left) && !isMemberChain(right) {
		return self.translateEqualityPair(left.(*expr.Member), right, negated, depth)
	}

	if isMemberChain(right) && !isMemberChain(left) {
		return self.translateEqualityPair(right.(*expr.Member), left, negated, depth)
	}

	return nil, errs.New(errs.Unsupported, "equality must compare a field to a constant", b)
}

// boolConstant reports whether node is a non-null boolean Constant, and
// its value.
func boolConstant(node expr.Node) (bool, bool) {
	c, ok := node.(*expr.Constant)

	if !ok || c.IsNull() {
		return false, false
	}

	flag, ok := c.Value.(bool)
	return flag, ok
}

// translateBoolShortcut recursively translates the non-constant side of
// a `<expr> == <bool constant>` comparison, negating the result when the
// constant and the equality operator disagree in sign.
func (self *Translator) translateBoolShortcut(other expr.Node, flag, negated bool, depth int) (criteria.Criterion, error) {
	inner, err := self.translateNode(other, depth+1)

	if err != nil {
		return nil, err
	}

	if flag == negated {
		return criteria.Negate(inner), nil
	}

	return inner, nil
}

// translateEqualityPair handles `member OP constant` once the operands
// have been normalized into that shape (the boolean-constant shortcut
// already ruled out above), OP already reduced to a simple
// equality/inequality flag.
func (self *Translator) translateEqualityPair(mem *expr.Member, other expr.Node, negated bool, depth int) (criteria.Criterion, error) {
	if isNullConstant(other) {
		field, _, err := self.fieldOf(mem)

		if err != nil {
			return nil, err
		}

		if negated {
			return &criteria.Exists{Field: field}, nil
		}

		return &criteria.Missing{Field: field}, nil
	}

	field, leaf, err := self.fieldOf(mem)

	if err != nil {
		return nil, err
	}

	value, err := self.formatConstant(leaf, other)

	if err != nil {
		return nil, err
	}

	term := &criteria.Term{Field: field, Value: value}

	if negated {
		return criteria.Negate(term), nil
	}

	return term, nil
}

// translateRange implements Rule B's range branch: `member OP constant`
// for the four ordering operators, normalizing operand order (and
// inverting the comparison) when the member appears on the right.
func (self *Translator) translateRange(b *expr.Binary, depth int) (criteria.Criterion, error) {
	left, err := self.unwrap(b.Left)

	if err != nil {
		return nil, err
	}

	right, err := self.unwrap(b.Right)

	if err != nil {
		return nil, err
	}

	op := b.Op
	var mem *expr.Member
	var other expr.Node

	switch {
	case isMemberChain(left) && !isMemberChain(right):
		mem = left.(*expr.Member)
		other = right

	case isMemberChain(right) && !isMemberChain(left):
		mem = right.(*expr.Member)
		other = left
		op = invertComparison(op)

	default:
		return nil, errs.New(errs.Unsupported, "range comparison must compare a field to a constant", b)
	}

	field, leaf, err := self.fieldOf(mem)

	if err != nil {
		return nil, err
	}

	value, err := self.formatConstant(leaf, other)

	if err != nil {
		return nil, err
	}

	return criteria.NewRange(field, comparisonFor(op), value), nil
}

// invertComparison swaps a range operator's operand order: `5 < r.Age`
// becomes `r.Age > 5`.
func invertComparison(op expr.BinaryOp) expr.BinaryOp {
	switch op {
	case expr.LessThan:
		return expr.GreaterThan
	case expr.LessEq:
		return expr.GreaterEq
	case expr.GreaterThan:
		return expr.LessThan
	case expr.GreaterEq:
		return expr.LessEq
	default:
		return op
	}
}

func comparisonFor(op expr.BinaryOp) criteria.Comparison {
	switch op {
	case expr.LessThan:
		return criteria.LT
	case expr.LessEq:
		return criteria.LE
	case expr.GreaterThan:
		return criteria.GT
	case expr.GreaterEq:
		return criteria.GE
	default:
		return criteria.LT
	}
}
