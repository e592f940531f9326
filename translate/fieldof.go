package translate

import (
	"github.com/ghetzel/esquery/errs"
	"github.com/ghetzel/esquery/expr"
)

// fieldOf resolves node (expected to be a Member chain rooted at the
// predicate parameter, after unwrap) to its dotted field path via the
// translator's Mapping. It returns the resolved field name and the leaf
// Member (for FormatValue's benefit).
func (self *Translator) fieldOf(node expr.Node) (string, *expr.Member, error) {
	mem, ok := node.(*expr.Member)

	if !ok {
		return ``, nil, errs.New(errs.Unsupported, "expected a member access rooted at the predicate parameter", node)
	}

	if _, _, ok := expr.MemberChain(mem); !ok {
		return ``, nil, errs.New(errs.Unsupported, "member chain root is not the predicate parameter", node)
	}

	name, err := self.Mapping.FieldName(mem)

	if err != nil {
		return ``, nil, errs.Wrap(errs.Unsupported, "resolving field name", node, err)
	}

	return name, mem, nil
}

// formatConstant resolves a Constant node's value through the mapping's
// FormatValue policy for the given member.
func (self *Translator) formatConstant(member *expr.Member, node expr.Node) (interface{}, error) {
	c, ok := node.(*expr.Constant)

	if !ok {
		return nil, errs.New(errs.Unsupported, "expected a constant operand", node)
	}

	value, err := self.Mapping.FormatValue(member, c.Value)

	if err != nil {
		return nil, wrapFormatErr(node, err)
	}

	return value, nil
}

// wrapFormatErr propagates a Mapping.FormatValue failure, preserving its
// Kind (e.g. errs.DomainRange for an undefined enum member) when it is
// already a typed *errs.Error rather than flattening it to Unsupported.
func wrapFormatErr(node expr.Node, err error) error {
	if e, ok := err.(*errs.Error); ok {
		return e
	}

	return errs.Wrap(errs.Unsupported, "formatting value", node, err)
}

func isNullConstant(node expr.Node) bool {
	c, ok := node.(*expr.Constant)
	return ok && c.IsNull()
}

func asConstantSequence(node expr.Node) ([]interface{}, bool) {
	c, ok := node.(*expr.Constant)

	if !ok {
		return nil, false
	}

	switch v := c.Value.(type) {
	case []interface{}:
		return v, true
	default:
		return nil, false
	}
}
