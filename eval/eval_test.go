package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/expr"
)

func TestEvalFoldsClosedOverMember(t *testing.T) {
	assert := require.New(t)

	invoked := 0
	member := &expr.Member{
		Name:       `Threshold`,
		StaticType: dal.Int,
		Invoker: expr.InvokerFunc(func() (interface{}, error) {
			invoked++
			return 42, nil
		}),
	}

	ev := NewDefault()
	result, err := ev.Eval(member, `r`)
	assert.NoError(err)

	c, ok := result.(*expr.Constant)
	assert.True(ok)
	assert.Equal(42, c.Value)
	assert.Equal(1, invoked)
}

func TestEvalLeavesParameterDependentMemberAlone(t *testing.T) {
	assert := require.New(t)

	param := &expr.Parameter{Name: `r`, StaticType: dal.Object}
	member := &expr.Member{Target: param, Name: `Age`, StaticType: dal.Int}

	ev := NewDefault()
	result, err := ev.Eval(member, `r`)
	assert.NoError(err)

	m, ok := result.(*expr.Member)
	assert.True(ok)
	assert.Equal(`Age`, m.Name)
}

func TestEvalFoldsConstantBinary(t *testing.T) {
	assert := require.New(t)

	left := &expr.Constant{Value: 3, StaticType: dal.Int}
	right := &expr.Constant{Value: 4, StaticType: dal.Int}
	add := &expr.Binary{Op: expr.Add, Left: left, Right: right}

	ev := NewDefault()
	result, err := ev.Eval(add, `r`)
	assert.NoError(err)

	c, ok := result.(*expr.Constant)
	assert.True(ok)
	assert.Equal(float64(7), c.Value)
}

func TestEvalFoldsConstantEquality(t *testing.T) {
	assert := require.New(t)

	left := &expr.Constant{Value: `a`, StaticType: dal.String}
	right := &expr.Constant{Value: `a`, StaticType: dal.String}
	eq := &expr.Binary{Op: expr.Equal, Left: left, Right: right}

	ev := NewDefault()
	result, err := ev.Eval(eq, `r`)
	assert.NoError(err)

	c, ok := result.(*expr.Constant)
	assert.True(ok)
	assert.Equal(true, c.Value)
}

func TestEvalCachesRepeatedInvokerCalls(t *testing.T) {
	assert := require.New(t)

	invoked := 0
	mem := &expr.Member{
		Name:       `Now`,
		StaticType: dal.Time,
		Invoker: expr.InvokerFunc(func() (interface{}, error) {
			invoked++
			return `2026-07-31`, nil
		}),
	}

	ev := NewDefault()

	_, err := ev.Eval(mem, `r`)
	assert.NoError(err)

	_, err = ev.Eval(mem, `r`)
	assert.NoError(err)

	assert.Equal(1, invoked)
}

func TestEvalErrorsWithoutInvoker(t *testing.T) {
	assert := require.New(t)

	mem := &expr.Member{Name: `Orphan`, StaticType: dal.Int}

	ev := NewDefault()
	_, err := ev.Eval(mem, `r`)
	assert.Error(err)
}
