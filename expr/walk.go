package expr

// ReferencesParameter reports whether node contains, anywhere in its
// subtree, a Parameter node bound to the given name. The partial
// evaluator uses this to decide independence (§4.D): a node with no such
// descendant can be folded to a Constant.
func ReferencesParameter(node Node, name string) bool {
	switch n := node.(type) {
	case nil:
		return false
	case *Constant:
		return false
	case *Parameter:
		return n.Name == name
	case *Member:
		return ReferencesParameter(n.Target, name)
	case *Binary:
		return ReferencesParameter(n.Left, name) || ReferencesParameter(n.Right, name)
	case *Unary:
		return ReferencesParameter(n.Operand, name)
	case *MethodCall:
		if ReferencesParameter(n.Receiver, name) {
			return true
		}

		for _, a := range n.Args {
			if ReferencesParameter(a, name) {
				return true
			}
		}

		return false
	case *Lambda:
		return ReferencesParameter(n.Body, name)
	default:
		return false
	}
}

// StripConvert peels off any run of outer Convert and Quote Unary nodes,
// returning the innermost node. It does not validate conversions; the
// translator normalizes operands with its own unwrap, which also rejects
// non-widening Converts.
func StripConvert(node Node) Node {
	for {
		u, ok := node.(*Unary)

		if !ok {
			return node
		}

		if u.Op == Convert || u.Op == Quote {
			node = u.Operand
			continue
		}

		return node
	}
}

// MemberChain walks a Member spine down to its root, returning the
// ordered (root-to-leaf) member names and the root Parameter. ok is false
// if the spine's root is not a Parameter.
func MemberChain(node Node) (names []string, root *Parameter, ok bool) {
	var segs []string
	cur := node

	for {
		switch n := cur.(type) {
		case *Member:
			segs = append(segs, n.Name)
			cur = n.Target
		case *Parameter:
			// reverse segs
			out := make([]string, len(segs))

			for i, s := range segs {
				out[len(segs)-1-i] = s
			}

			return out, n, true
		default:
			return nil, nil, false
		}
	}
}
