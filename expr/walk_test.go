package expr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghetzel/esquery/dal"
)

func TestReferencesParameterFindsDescendant(t *testing.T) {
	assert := require.New(t)

	p := &Parameter{Name: `r`, StaticType: dal.Object}
	mem := &Member{Target: p, Name: `Age`, StaticType: dal.Int}

	assert.True(ReferencesParameter(mem, `r`))
	assert.False(ReferencesParameter(mem, `other`))
}

func TestReferencesParameterIgnoresClosedOverConstant(t *testing.T) {
	assert := require.New(t)

	c := &Constant{Value: 5, StaticType: dal.Int}
	bin := &Binary{Op: Add, Left: c, Right: &Constant{Value: 6, StaticType: dal.Int}}

	assert.False(ReferencesParameter(bin, `r`))
}

func TestReferencesParameterWalksMethodCallReceiverAndArgs(t *testing.T) {
	assert := require.New(t)

	p := &Parameter{Name: `r`, StaticType: dal.Object}
	mem := &Member{Target: p, Name: `Tags`, StaticType: dal.SequenceOf(dal.String)}

	call := &MethodCall{
		Receiver: mem,
		Identity: MethodIdentity{Declaring: `Collection`, Name: `Contains`, Arity: 1},
		Args:     []Node{&Constant{Value: `x`, StaticType: dal.String}},
	}

	assert.True(ReferencesParameter(call, `r`))

	call2 := &MethodCall{
		Identity: MethodIdentity{Declaring: `ElasticMethods`, Name: `ContainsAny`, Arity: 2},
		Args:     []Node{mem, &Constant{Value: `x`, StaticType: dal.String}},
	}

	assert.True(ReferencesParameter(call2, `r`))
}

func TestStripConvertPeelsConvertAndQuote(t *testing.T) {
	assert := require.New(t)

	inner := &Constant{Value: 1, StaticType: dal.Int}
	converted := &Unary{Op: Convert, Operand: inner, Type: dal.Float}
	quoted := &Unary{Op: Quote, Operand: converted}

	assert.Equal(inner, StripConvert(quoted))
}

func TestStripConvertLeavesOtherUnaryAlone(t *testing.T) {
	assert := require.New(t)

	inner := &Constant{Value: true, StaticType: dal.Bool}
	not := &Unary{Op: Not, Operand: inner}

	assert.Equal(not, StripConvert(not))
}

func TestMemberChainWalksToParameterRoot(t *testing.T) {
	assert := require.New(t)

	p := &Parameter{Name: `r`, StaticType: dal.Object}
	addr := &Member{Target: p, Name: `Address`, StaticType: dal.Object}
	city := &Member{Target: addr, Name: `City`, StaticType: dal.String}

	names, root, ok := MemberChain(city)
	assert.True(ok)
	assert.Equal([]string{`Address`, `City`}, names)
	assert.Equal(p, root)
}

func TestMemberChainFailsWhenRootIsNotParameter(t *testing.T) {
	assert := require.New(t)

	mem := &Member{Target: &Constant{Value: `x`}, Name: `Length`}

	_, _, ok := MemberChain(mem)
	assert.False(ok)
}
