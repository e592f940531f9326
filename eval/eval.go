package eval

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ghetzel/esquery/errs"
	"github.com/ghetzel/esquery/expr"
)

// DefaultCacheSize bounds the memoization cache an Evaluator keeps for
// repeated Invoker subtrees (grounded on pivot's backends/fs.go record
// cache sizing convention). Entries are keyed by node identity and live
// as long as the Evaluator, so they persist across Eval calls.
var DefaultCacheSize = 256

// Evaluator folds every subtree of an expression that is independent of
// the predicate's bound parameter into a Constant node. It is safe for
// concurrent use: the cache is internally synchronized and Invoker values
// are contractually pure (§5).
type Evaluator struct {
	cache *lru.Cache
}

// New constructs an Evaluator with the given memoization cache size. A
// size of 0 disables memoization.
func New(cacheSize int) *Evaluator {
	ev := &Evaluator{}

	if cacheSize > 0 {
		if c, err := lru.New(cacheSize); err == nil {
			ev.cache = c
		}
	}

	return ev
}

// NewDefault constructs an Evaluator using DefaultCacheSize.
func NewDefault() *Evaluator {
	return New(DefaultCacheSize)
}

func (self *Evaluator) invoke(node expr.Node, invoker expr.Invoker) (value interface{}, err error) {
	if invoker == nil {
		return nil, errs.New(errs.Evaluation, "no invoker available for closed-over subtree", node)
	}

	if self.cache != nil {
		if cached, ok := self.cache.Get(node); ok {
			return cached, nil
		}
	}

	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = errs.Wrap(errs.Evaluation, fmt.Sprintf("evaluating closed-over value: %s", node), node, fmt.Errorf("panic: %v", r))
		}
	}()

	value, err = invoker.Invoke()

	if err != nil {
		return nil, errs.Wrap(errs.Evaluation, fmt.Sprintf("evaluating closed-over value: %s", node), node, err)
	}

	if self.cache != nil {
		self.cache.Add(node, value)
	}

	return value, nil
}

// Eval rewrites root, replacing every subtree independent of a Parameter
// named paramName with its evaluated Constant. The expression tree itself
// is never mutated; Eval builds and returns a new tree.
func (self *Evaluator) Eval(root expr.Node, paramName string) (expr.Node, error) {
	return self.eval(root, paramName)
}

func (self *Evaluator) eval(node expr.Node, paramName string) (expr.Node, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil

	case *expr.Constant:
		return n, nil

	case *expr.Parameter:
		return n, nil

	case *expr.Member:
		if expr.ReferencesParameter(n, paramName) {
			target, err := self.eval(n.Target, paramName)

			if err != nil {
				return nil, err
			}

			return &expr.Member{
				Target:     target,
				Name:       n.Name,
				StaticType: n.StaticType,
				Declaring:  n.Declaring,
				Invoker:    n.Invoker,
			}, nil
		}

		value, err := self.invoke(n, n.Invoker)

		if err != nil {
			return nil, err
		}

		return &expr.Constant{Value: value, StaticType: n.StaticType}, nil

	case *expr.MethodCall:
		if expr.ReferencesParameter(n, paramName) {
			recv, err := self.eval(n.Receiver, paramName)

			if err != nil {
				return nil, err
			}

			args := make([]expr.Node, len(n.Args))

			for i, a := range n.Args {
				ea, err := self.eval(a, paramName)

				if err != nil {
					return nil, err
				}

				args[i] = ea
			}

			return &expr.MethodCall{
				Receiver:  recv,
				Identity:  n.Identity,
				Args:      args,
				Declaring: n.Declaring,
				Returns:   n.Returns,
				Invoker:   n.Invoker,
			}, nil
		}

		value, err := self.invoke(n, n.Invoker)

		if err != nil {
			return nil, err
		}

		return &expr.Constant{Value: value, StaticType: n.Returns}, nil

	case *expr.Binary:
		left, err := self.eval(n.Left, paramName)

		if err != nil {
			return nil, err
		}

		right, err := self.eval(n.Right, paramName)

		if err != nil {
			return nil, err
		}

		if lc, ok := left.(*expr.Constant); ok {
			if rc, ok := right.(*expr.Constant); ok {
				if folded, ok := foldBinary(n.Op, lc, rc); ok {
					return folded, nil
				}
			}
		}

		return &expr.Binary{Op: n.Op, Left: left, Right: right}, nil

	case *expr.Unary:
		operand, err := self.eval(n.Operand, paramName)

		if err != nil {
			return nil, err
		}

		if oc, ok := operand.(*expr.Constant); ok {
			if folded, ok := foldUnary(n.Op, n.Type, oc); ok {
				return folded, nil
			}
		}

		return &expr.Unary{Op: n.Op, Operand: operand, Type: n.Type}, nil

	case *expr.Lambda:
		body, err := self.eval(n.Body, paramName)

		if err != nil {
			return nil, err
		}

		return &expr.Lambda{Param: n.Param, Body: body}, nil

	default:
		return nil, errs.New(errs.Unsupported, fmt.Sprintf("cannot partially evaluate node of type %T", node), node)
	}
}
