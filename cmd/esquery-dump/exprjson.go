package main

import (
	"encoding/json"
	"fmt"

	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/expr"
)

// exprNode is the on-disk shape of one AST node in a sample expression
// tree file: a discriminated union keyed by "node", decoded recursively
// into the real expr.Node variants. This lives in the CLI, not the expr
// package itself — it is a convenience for feeding this demo tool a
// tree from a file, not part of the core AST contract.
type exprNode struct {
	Node     string          `json:"node"`
	Name     string          `json:"name,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
	Kind     string          `json:"kind,omitempty"`
	Nullable bool            `json:"nullable,omitempty"`
	Target   *exprNode       `json:"target,omitempty"`
	Left     *exprNode       `json:"left,omitempty"`
	Right    *exprNode       `json:"right,omitempty"`
	Operand  *exprNode       `json:"operand,omitempty"`
	Op       string          `json:"op,omitempty"`
	Receiver *exprNode       `json:"receiver,omitempty"`
	Method   string          `json:"method,omitempty"`
	Declaring string         `json:"declaring,omitempty"`
	Args     []*exprNode     `json:"args,omitempty"`
}

func kindOf(name string) dal.Kind {
	switch name {
	case `int`:
		return dal.KindInt
	case `float`:
		return dal.KindFloat
	case `decimal`:
		return dal.KindDecimal
	case `bool`:
		return dal.KindBool
	case `time`:
		return dal.KindTime
	case `array`:
		return dal.KindSequence
	case `object`:
		return dal.KindObject
	default:
		return dal.KindString
	}
}

func (n *exprNode) typeOf() dal.Type {
	return dal.Type{Kind: kindOf(n.Kind), Nullable: n.Nullable}
}

var binaryOps = map[string]expr.BinaryOp{
	`==`: expr.Equal,
	`!=`: expr.NotEqual,
	`<`:  expr.LessThan,
	`<=`: expr.LessEq,
	`>`:  expr.GreaterThan,
	`>=`: expr.GreaterEq,
	`&&`: expr.AndAlso,
	`||`: expr.OrElse,
	`+`:  expr.Add,
}

// toExprNode recursively builds the real AST from its decoded JSON shape,
// rooted at param for a bare top-level Parameter reference.
func toExprNode(n *exprNode, param *expr.Parameter) (expr.Node, error) {
	if n == nil {
		return nil, fmt.Errorf("nil expression node")
	}

	switch n.Node {
	case `param`:
		return param, nil

	case `constant`:
		var value interface{}

		if len(n.Value) > 0 {
			if err := json.Unmarshal(n.Value, &value); err != nil {
				return nil, err
			}
		}

		return &expr.Constant{Value: value, StaticType: n.typeOf()}, nil

	case `member`:
		var target expr.Node = param
		var err error

		if n.Target != nil {
			target, err = toExprNode(n.Target, param)

			if err != nil {
				return nil, err
			}
		}

		declaring := param.StaticType

		if n.Declaring != `` {
			declaring = dal.Type{Kind: dal.KindObject, EnumName: n.Declaring}
		}

		return &expr.Member{
			Target:     target,
			Name:       n.Name,
			StaticType: n.typeOf(),
			Declaring:  declaring,
		}, nil

	case `binary`:
		op, ok := binaryOps[n.Op]

		if !ok {
			return nil, fmt.Errorf("unrecognized binary operator %q", n.Op)
		}

		left, err := toExprNode(n.Left, param)

		if err != nil {
			return nil, err
		}

		right, err := toExprNode(n.Right, param)

		if err != nil {
			return nil, err
		}

		return &expr.Binary{Op: op, Left: left, Right: right}, nil

	case `not`:
		operand, err := toExprNode(n.Operand, param)

		if err != nil {
			return nil, err
		}

		return &expr.Unary{Op: expr.Not, Operand: operand}, nil

	case `convert`:
		operand, err := toExprNode(n.Operand, param)

		if err != nil {
			return nil, err
		}

		return &expr.Unary{Op: expr.Convert, Operand: operand, Type: n.typeOf()}, nil

	case `call`:
		var receiver expr.Node
		var err error

		if n.Receiver != nil {
			receiver, err = toExprNode(n.Receiver, param)

			if err != nil {
				return nil, err
			}
		}

		args := make([]expr.Node, len(n.Args))

		for i, a := range n.Args {
			args[i], err = toExprNode(a, param)

			if err != nil {
				return nil, err
			}
		}

		return &expr.MethodCall{
			Receiver: receiver,
			Identity: expr.MethodIdentity{Declaring: n.Declaring, Name: n.Method, Arity: len(args)},
			Args:     args,
			Returns:  n.typeOf(),
		}, nil

	default:
		return nil, fmt.Errorf("unrecognized node kind %q", n.Node)
	}
}

// decodeLambda parses a sample expression tree file into a *expr.Lambda
// bound to a parameter of the given name and declaring type.
func decodeLambda(data []byte, paramName, declaringType string) (*expr.Lambda, error) {
	var body exprNode

	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}

	param := &expr.Parameter{
		Name:       paramName,
		StaticType: dal.Type{Kind: dal.KindObject, EnumName: declaringType},
	}

	node, err := toExprNode(&body, param)

	if err != nil {
		return nil, err
	}

	return &expr.Lambda{Param: *param, Body: node}, nil
}
