// Package expr models the source-agnostic expression AST the translator
// consumes: the shape a deferred-execution query builder produces for a
// predicate lambda over a user-defined record type.
package expr

import (
	"fmt"
	"strings"

	"github.com/ghetzel/esquery/dal"
)

// Node is implemented by every AST node variant. The translator never
// mutates a Node in place; rewrite passes build replacement nodes.
type Node interface {
	fmt.Stringer
	isNode()
}

// Constant is a literal or closed-over value folded in by the partial
// evaluator (or present in the source tree already, e.g. a string literal).
type Constant struct {
	Value      interface{}
	StaticType dal.Type
}

func (*Constant) isNode() {}

func (self *Constant) String() string {
	if self.Value == nil {
		return `null`
	}

	return fmt.Sprintf("%v", self.Value)
}

// IsNull reports whether this constant represents the absence of a value,
// either a literal nil or a nullable type with no value set.
func (self *Constant) IsNull() bool {
	return self.Value == nil
}

// Parameter is the bound root of a predicate: the document record.
type Parameter struct {
	Name       string
	StaticType dal.Type
}

func (*Parameter) isNode() {}

func (self *Parameter) String() string {
	return self.Name
}

// Invoker stands in for the host environment's reflection/invocation
// facilities (§4.D, §9's reflection note): the core takes evaluation of a
// closed-over value as an injected dependency rather than performing
// reflection itself. A Member or MethodCall node that is independent of
// the bound parameter may carry an Invoker describing how to compute its
// value during partial evaluation.
type Invoker interface {
	Invoke() (interface{}, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func() (interface{}, error)

func (self InvokerFunc) Invoke() (interface{}, error) {
	return self()
}

// Member is a member-access node: target.Name. Target is nil for a static
// member (a constant accessed through a type rather than an instance).
// Invoker is non-nil when this member closes over a value outside the
// predicate parameter (e.g. a captured local variable) and is therefore
// a partial-evaluation candidate.
type Member struct {
	Target     Node
	Name       string
	StaticType dal.Type
	Declaring  dal.Type
	Invoker    Invoker
}

func (*Member) isNode() {}

func (self *Member) String() string {
	if self.Target == nil {
		return self.Name
	}

	return self.Target.String() + `.` + self.Name
}

// BinaryOp enumerates the recognized binary operators.
type BinaryOp int

const (
	Equal BinaryOp = iota
	NotEqual
	LessThan
	LessEq
	GreaterThan
	GreaterEq
	AndAlso
	OrElse
	Add
)

func (self BinaryOp) String() string {
	switch self {
	case Equal:
		return `==`
	case NotEqual:
		return `!=`
	case LessThan:
		return `<`
	case LessEq:
		return `<=`
	case GreaterThan:
		return `>`
	case GreaterEq:
		return `>=`
	case AndAlso:
		return `&&`
	case OrElse:
		return `||`
	case Add:
		return `+`
	default:
		return `?`
	}
}

// Binary is a two-operand operator node.
type Binary struct {
	Op    BinaryOp
	Left  Node
	Right Node
}

func (*Binary) isNode() {}

func (self *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", self.Left, self.Op, self.Right)
}

// UnaryOp enumerates the recognized unary operators.
type UnaryOp int

const (
	Not UnaryOp = iota
	Convert
	Negate
	Quote
)

func (self UnaryOp) String() string {
	switch self {
	case Not:
		return `!`
	case Convert:
		return `convert`
	case Negate:
		return `-`
	case Quote:
		return `quote`
	default:
		return `?`
	}
}

// Unary is a single-operand operator node. Type is the conversion target
// when Op == Convert; otherwise it is the zero Type.
type Unary struct {
	Op      UnaryOp
	Operand Node
	Type    dal.Type
}

func (*Unary) isNode() {}

func (self *Unary) String() string {
	if self.Op == Convert {
		return fmt.Sprintf("convert(%s, %s)", self.Operand, self.Type)
	}

	return fmt.Sprintf("%s%s", self.Op, self.Operand)
}

// MethodIdentity identifies a well-known method by declaring type, name,
// and arity — the table key Rule M dispatches on (§9: a table, not
// inheritance-based double dispatch).
type MethodIdentity struct {
	Declaring string
	Name      string
	Arity     int
}

func (self MethodIdentity) String() string {
	return fmt.Sprintf("%s.%s/%d", self.Declaring, self.Name, self.Arity)
}

// MethodCall is a call to a recognized method. Receiver is nil for a
// static call (e.g. Object.Equals(x, y)).
type MethodCall struct {
	Receiver  Node
	Identity  MethodIdentity
	Args      []Node
	Declaring dal.Type
	Returns   dal.Type
	Invoker   Invoker
}

func (*MethodCall) isNode() {}

func (self *MethodCall) String() string {
	args := make([]string, len(self.Args))

	for i, a := range self.Args {
		args[i] = a.String()
	}

	recv := ``

	if self.Receiver != nil {
		recv = self.Receiver.String() + `.`
	}

	return fmt.Sprintf("%s%s(%s)", recv, self.Identity.Name, strings.Join(args, `, `))
}

// Lambda is a predicate: param => body, where body is expected to be
// boolean-valued.
type Lambda struct {
	Param Parameter
	Body  Node
}

func (*Lambda) isNode() {}

func (self *Lambda) String() string {
	return fmt.Sprintf("%s => %s", self.Param.Name, self.Body)
}
