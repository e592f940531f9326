package eval

import (
	"github.com/ghetzel/go-stockutil/stringutil"
	"github.com/ghetzel/go-stockutil/typeutil"

	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/expr"
)

// foldBinary evaluates a Binary node whose operands are both already
// Constant, for the closed-over-arithmetic case (e.g. a captured
// `10 + offset` subexpression). Only Add and the comparison operators are
// folded here — AndAlso/OrElse are left for the boolean simplifier once
// translated to criteria, since folding them here would bypass Rule K's
// ConstantCriteria.True/False handling at the translator layer.
func foldBinary(op expr.BinaryOp, left, right *expr.Constant) (*expr.Constant, bool) {
	switch op {
	case expr.Add:
		if typeutil.IsKindOfString(left.Value) || typeutil.IsKindOfString(right.Value) {
			return &expr.Constant{
				Value:      typeutil.String(left.Value) + typeutil.String(right.Value),
				StaticType: dal.String,
			}, true
		}

		return &expr.Constant{
			Value:      typeutil.Float(left.Value) + typeutil.Float(right.Value),
			StaticType: dal.Float,
		}, true

	case expr.Equal:
		eq, err := stringutil.RelaxedEqual(typeutil.String(left.Value), typeutil.String(right.Value))
		return &expr.Constant{Value: err == nil && eq, StaticType: dal.Bool}, true

	case expr.NotEqual:
		eq, err := stringutil.RelaxedEqual(typeutil.String(left.Value), typeutil.String(right.Value))
		return &expr.Constant{Value: err != nil || !eq, StaticType: dal.Bool}, true

	case expr.LessThan:
		return &expr.Constant{Value: typeutil.Float(left.Value) < typeutil.Float(right.Value), StaticType: dal.Bool}, true

	case expr.LessEq:
		return &expr.Constant{Value: typeutil.Float(left.Value) <= typeutil.Float(right.Value), StaticType: dal.Bool}, true

	case expr.GreaterThan:
		return &expr.Constant{Value: typeutil.Float(left.Value) > typeutil.Float(right.Value), StaticType: dal.Bool}, true

	case expr.GreaterEq:
		return &expr.Constant{Value: typeutil.Float(left.Value) >= typeutil.Float(right.Value), StaticType: dal.Bool}, true

	default:
		return nil, false
	}
}

// foldUnary evaluates a Unary node whose operand is already Constant.
func foldUnary(op expr.UnaryOp, target dal.Type, operand *expr.Constant) (*expr.Constant, bool) {
	switch op {
	case expr.Not:
		return &expr.Constant{Value: !typeutil.Bool(operand.Value), StaticType: dal.Bool}, true

	case expr.Negate:
		return &expr.Constant{Value: -typeutil.Float(operand.Value), StaticType: operand.StaticType}, true

	case expr.Convert:
		return &expr.Constant{Value: operand.Value, StaticType: target}, true

	case expr.Quote:
		return operand, true

	default:
		return nil, false
	}
}
