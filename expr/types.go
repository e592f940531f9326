package expr

import "github.com/ghetzel/esquery/dal"

// StaticTypeOf returns the static type a node evaluates to, used by Rule
// C's widening-conversion check.
func StaticTypeOf(node Node) dal.Type {
	switch n := node.(type) {
	case nil:
		return dal.Type{}
	case *Constant:
		return n.StaticType
	case *Parameter:
		return n.StaticType
	case *Member:
		return n.StaticType
	case *MethodCall:
		return n.Returns
	case *Unary:
		if n.Op == Convert {
			return n.Type
		}

		return StaticTypeOf(n.Operand)
	case *Binary:
		switch n.Op {
		case Add:
			return StaticTypeOf(n.Left)
		default:
			return dal.Bool
		}
	default:
		return dal.Type{}
	}
}

// StripValue unwraps a trailing `.Value` member access on a nullable
// chain (Rule N: "memberChain.Value inside another expression is treated
// as memberChain").
func StripValue(node Node) Node {
	for {
		m, ok := node.(*Member)

		if !ok || m.Name != `Value` {
			return node
		}

		node = m.Target
	}
}
