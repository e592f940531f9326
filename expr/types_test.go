package expr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghetzel/esquery/dal"
)

func TestStaticTypeOfVariants(t *testing.T) {
	assert := require.New(t)

	assert.Equal(dal.Int, StaticTypeOf(&Constant{Value: 1, StaticType: dal.Int}))

	p := &Parameter{Name: `r`, StaticType: dal.Object}
	assert.Equal(dal.Object, StaticTypeOf(p))

	mem := &Member{Target: p, Name: `Age`, StaticType: dal.Int}
	assert.Equal(dal.Int, StaticTypeOf(mem))

	call := &MethodCall{Returns: dal.Bool}
	assert.Equal(dal.Bool, StaticTypeOf(call))

	convert := &Unary{Op: Convert, Operand: mem, Type: dal.Float}
	assert.Equal(dal.Float, StaticTypeOf(convert))

	not := &Unary{Op: Not, Operand: &Constant{Value: true, StaticType: dal.Bool}}
	assert.Equal(dal.Bool, StaticTypeOf(not))

	add := &Binary{Op: Add, Left: &Constant{Value: 1, StaticType: dal.Int}, Right: &Constant{Value: 2, StaticType: dal.Int}}
	assert.Equal(dal.Int, StaticTypeOf(add))

	eq := &Binary{Op: Equal, Left: &Constant{Value: 1, StaticType: dal.Int}, Right: &Constant{Value: 1, StaticType: dal.Int}}
	assert.Equal(dal.Bool, StaticTypeOf(eq))
}

func TestStripValueUnwrapsNullableValueAccess(t *testing.T) {
	assert := require.New(t)

	p := &Parameter{Name: `r`, StaticType: dal.Object}
	age := &Member{Target: p, Name: `Age`, StaticType: dal.Int.AsNullable()}
	value := &Member{Target: age, Name: `Value`, StaticType: dal.Int}

	assert.Equal(age, StripValue(value))
}

func TestStripValueLeavesNonValueMemberAlone(t *testing.T) {
	assert := require.New(t)

	p := &Parameter{Name: `r`, StaticType: dal.Object}
	name := &Member{Target: p, Name: `Name`, StaticType: dal.String}

	assert.Equal(name, StripValue(name))
}
