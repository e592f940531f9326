package translate

import (
	"fmt"

	"github.com/ghetzel/go-stockutil/log"

	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/errs"
	"github.com/ghetzel/esquery/expr"
)

// numericRank orders the numeric kinds for the widening check: a
// conversion is widening iff rank(to) >= rank(from).
var numericRank = map[dal.Kind]int{
	dal.KindInt:     0,
	dal.KindFloat:   1,
	dal.KindDecimal: 2,
}

// isWidening implements this module's resolution of §9's Open Question:
// Convert is elided transparently only for widening numeric conversions
// and for any conversion targeting a boolean-compatible type; anything
// else (narrowing, or between unrelated kinds) is rejected rather than
// silently changing equality semantics.
func isWidening(from, to dal.Type) bool {
	if from.Kind == to.Kind {
		return true
	}

	if to.Kind == dal.KindBool {
		return true
	}

	if from.IsNumeric() && to.IsNumeric() {
		return numericRank[to.Kind] >= numericRank[from.Kind]
	}

	return false
}

// unwrap strips outer Convert/Quote wrappers and trailing `.Value`
// nullable unwrapping (Rule C, Rule N) from node, validating every
// Convert against isWidening. It is the single place node normalization
// happens before a rule inspects node's shape.
func (self *Translator) unwrap(node expr.Node) (expr.Node, error) {
	for {
		switch n := node.(type) {
		case *expr.Unary:
			switch n.Op {
			case expr.Quote:
				node = n.Operand
				continue

			case expr.Convert:
				from := expr.StaticTypeOf(n.Operand)

				if !isWidening(from, n.Type) {
					return nil, errs.New(
						errs.Unsupported,
						fmt.Sprintf("conversion from %s to %s is not widening", from, n.Type),
						node,
					)
				}

				log.Debugf("esquery/translate: eliding widening convert %s -> %s", from, n.Type)
				node = n.Operand
				continue
			}

		case *expr.Member:
			if n.Name == `Value` {
				node = n.Target
				continue
			}
		}

		return node, nil
	}
}

// isMemberChain reports whether node (already unwrapped) is a Member
// spine rooted at the predicate's bound parameter.
func isMemberChain(node expr.Node) bool {
	mem, ok := node.(*expr.Member)

	if !ok {
		return false
	}

	_, _, ok = expr.MemberChain(mem)
	return ok
}
