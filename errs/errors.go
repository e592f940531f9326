// Package errs defines the translation error surface (§7): a single
// typed error carrying a Kind and the offending node, plus the
// dal.errors-style Is*Err predicate helpers.
package errs

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ghetzel/esquery/expr"
)

// Kind is one of the four translation failure categories (§7).
type Kind int

const (
	// Unsupported: an expression node or method the translator does not
	// know (an unknown method identity, a member chain whose root is
	// not the bound parameter, String.Contains/StartsWith/EndsWith).
	Unsupported Kind = iota

	// Evaluation: the partial evaluator failed to compute a closed-over
	// value.
	Evaluation

	// Argument: a null/invalid input to a constructor that forbids it
	// (a blank field name, a null criteria list).
	Argument

	// DomainRange: an enum value not defined on its type when
	// formatting as a symbolic name.
	DomainRange
)

func (self Kind) String() string {
	switch self {
	case Unsupported:
		return `Unsupported`
	case Evaluation:
		return `Evaluation`
	case Argument:
		return `Argument`
	case DomainRange:
		return `DomainRange`
	default:
		return `Unknown`
	}
}

// Error is the single error type this module ever returns from a
// translation entry point (§7: "All errors propagate to the caller...
// There is no local recovery").
type Error struct {
	Kind    Kind
	Message string
	Node    expr.Node
	cause   error
}

func (self *Error) Error() string {
	if self.Node != nil {
		return fmt.Sprintf("%s: %s (at %s)", self.Kind, self.Message, self.Node)
	}

	return fmt.Sprintf("%s: %s", self.Kind, self.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.As/errors.Is.
func (self *Error) Unwrap() error {
	return self.cause
}

// New builds an Error with no wrapped cause.
func New(kind Kind, message string, node expr.Node) *Error {
	return &Error{Kind: kind, Message: message, Node: node}
}

// Wrap builds an Error that wraps an underlying cause (e.g. a panic or
// error surfaced from a user-supplied Invoker thunk).
func Wrap(kind Kind, message string, node expr.Node, cause error) *Error {
	return &Error{Kind: kind, Message: message, Node: node, cause: errors.WithMessage(cause, message)}
}

func kindOf(err error) (Kind, bool) {
	if err == nil {
		return 0, false
	}

	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}

	return 0, false
}

// IsUnsupported reports whether err is a translation error of kind Unsupported.
func IsUnsupported(err error) bool {
	k, ok := kindOf(err)
	return ok && k == Unsupported
}

// IsEvaluation reports whether err is a translation error of kind Evaluation.
func IsEvaluation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == Evaluation
}

// IsArgument reports whether err is a translation error of kind Argument.
func IsArgument(err error) bool {
	k, ok := kindOf(err)
	return ok && k == Argument
}

// IsDomainRange reports whether err is a translation error of kind DomainRange.
func IsDomainRange(err error) bool {
	k, ok := kindOf(err)
	return ok && k == DomainRange
}
