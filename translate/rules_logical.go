package translate

import (
	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/errs"
	"github.com/ghetzel/esquery/expr"
)

// translateAndAlso implements Rule L's conjunction: both sides translate
// independently and combine through CombineAnd, which applies the
// algebra's flattening/absorption/dedup invariants.
func (self *Translator) translateAndAlso(b *expr.Binary, depth int) (criteria.Criterion, error) {
	left, err := self.translateNode(b.Left, depth+1)

	if err != nil {
		return nil, err
	}

	right, err := self.translateNode(b.Right, depth+1)

	if err != nil {
		return nil, err
	}

	return criteria.CombineAnd(left, right), nil
}

// translateOrElse implements Rule L's disjunction.
func (self *Translator) translateOrElse(b *expr.Binary, depth int) (criteria.Criterion, error) {
	left, err := self.translateNode(b.Left, depth+1)

	if err != nil {
		return nil, err
	}

	right, err := self.translateNode(b.Right, depth+1)

	if err != nil {
		return nil, err
	}

	return criteria.CombineOr(left, right), nil
}

// translateUnary dispatches the remaining unary operators once unwrap
// (Convert/Quote elision) has already run in translateNode. By the time
// a Unary reaches here Convert/Quote have been stripped; a boolean Not is
// translated, and any other operator (Negate) is rejected as Unsupported.
func (self *Translator) translateUnary(u *expr.Unary, depth int) (criteria.Criterion, error) {
	switch u.Op {
	case expr.Not:
		inner, err := self.translateNode(u.Operand, depth+1)

		if err != nil {
			return nil, err
		}

		return criteria.Negate(inner), nil

	default:
		return nil, errs.New(errs.Unsupported, "unsupported unary operator in predicate position", u)
	}
}
