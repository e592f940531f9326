package translate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/expr"
	"github.com/ghetzel/esquery/mapping"
)

var recordType = dal.Type{Kind: dal.KindObject, EnumName: `Record`}

func param() *expr.Parameter {
	return &expr.Parameter{Name: `r`, StaticType: recordType}
}

func member(p *expr.Parameter, name string, t dal.Type) *expr.Member {
	return &expr.Member{Target: p, Name: name, StaticType: t, Declaring: recordType}
}

func lambda(p *expr.Parameter, body expr.Node) *expr.Lambda {
	return &expr.Lambda{Param: *p, Body: body}
}

func newTranslator() *Translator {
	return New(mapping.NewDefaultMapping())
}

func TestTranslateEqualityProducesTerm(t *testing.T) {
	assert := require.New(t)

	p := param()
	body := &expr.Binary{
		Op:   expr.Equal,
		Left: member(p, `Name`, dal.String),
		Right: &expr.Constant{Value: `Alice`, StaticType: dal.String},
	}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	term, ok := result.(*criteria.Term)
	assert.True(ok)
	assert.Equal(`Name`, term.Field)
	assert.Equal(`alice`, term.Value)
}

func TestTranslateNotEqualNegatesTerm(t *testing.T) {
	assert := require.New(t)

	p := param()
	body := &expr.Binary{
		Op:    expr.NotEqual,
		Left:  member(p, `Name`, dal.String),
		Right: &expr.Constant{Value: `Alice`, StaticType: dal.String},
	}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	not, ok := result.(*criteria.Not)
	assert.True(ok)

	term, ok := not.Inner.(*criteria.Term)
	assert.True(ok)
	assert.Equal(`Name`, term.Field)
}

func TestTranslateEqualityNullProducesMissing(t *testing.T) {
	assert := require.New(t)

	p := param()
	body := &expr.Binary{
		Op:    expr.Equal,
		Left:  member(p, `Name`, dal.String.AsNullable()),
		Right: &expr.Constant{Value: nil, StaticType: dal.String.AsNullable()},
	}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	_, ok := result.(*criteria.Missing)
	assert.True(ok)
}

func TestTranslateBoolEqualityShortcut(t *testing.T) {
	assert := require.New(t)

	p := param()
	flag := member(p, `Active`, dal.Bool)
	body := &expr.Binary{
		Op:    expr.Equal,
		Left:  flag,
		Right: &expr.Constant{Value: false, StaticType: dal.Bool},
	}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	not, ok := result.(*criteria.Not)
	assert.True(ok)

	term, ok := not.Inner.(*criteria.Term)
	assert.True(ok)
	assert.Equal(`Active`, term.Field)
	assert.Equal(true, term.Value)
}

func TestTranslateBoolEqualityShortcutAppliesToCompoundExpression(t *testing.T) {
	assert := require.New(t)

	p := param()
	inner := &expr.Binary{
		Op:    expr.Equal,
		Left:  member(p, `Name`, dal.String),
		Right: &expr.Constant{Value: `x`, StaticType: dal.String},
	}
	body := &expr.Binary{
		Op:    expr.Equal,
		Left:  inner,
		Right: &expr.Constant{Value: true, StaticType: dal.Bool},
	}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	term, ok := result.(*criteria.Term)
	assert.True(ok)
	assert.Equal(`Name`, term.Field)
	assert.Equal(`x`, term.Value)
}

func TestTranslateRangeComparison(t *testing.T) {
	assert := require.New(t)

	p := param()
	body := &expr.Binary{
		Op:    expr.GreaterEq,
		Left:  member(p, `Age`, dal.Int),
		Right: &expr.Constant{Value: 18, StaticType: dal.Int},
	}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	r, ok := result.(*criteria.Range)
	assert.True(ok)
	assert.Equal(`Age`, r.Field)
	assert.Equal(18, r.Specs[criteria.GE])
}

func TestTranslateRangeInvertsOperandOrder(t *testing.T) {
	assert := require.New(t)

	p := param()
	body := &expr.Binary{
		Op:    expr.LessThan,
		Left:  &expr.Constant{Value: 18, StaticType: dal.Int},
		Right: member(p, `Age`, dal.Int),
	}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	r, ok := result.(*criteria.Range)
	assert.True(ok)
	assert.Equal(18, r.Specs[criteria.GT])
}

func TestTranslateAndAlsoCombines(t *testing.T) {
	assert := require.New(t)

	p := param()
	left := &expr.Binary{Op: expr.Equal, Left: member(p, `Name`, dal.String), Right: &expr.Constant{Value: `a`, StaticType: dal.String}}
	right := &expr.Binary{Op: expr.GreaterEq, Left: member(p, `Age`, dal.Int), Right: &expr.Constant{Value: 18, StaticType: dal.Int}}
	body := &expr.Binary{Op: expr.AndAlso, Left: left, Right: right}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	and, ok := result.(*criteria.And)
	assert.True(ok)
	assert.Len(and.Children, 2)
}

func TestTranslateOrElseCombines(t *testing.T) {
	assert := require.New(t)

	p := param()
	left := &expr.Binary{Op: expr.Equal, Left: member(p, `Status`, dal.String), Right: &expr.Constant{Value: `a`, StaticType: dal.String}}
	right := &expr.Binary{Op: expr.Equal, Left: member(p, `Status`, dal.String), Right: &expr.Constant{Value: `b`, StaticType: dal.String}}
	body := &expr.Binary{Op: expr.OrElse, Left: left, Right: right}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	or, ok := result.(*criteria.Or)
	assert.True(ok)
	assert.Len(or.Children, 2)
}

func TestTranslateNotNegates(t *testing.T) {
	assert := require.New(t)

	p := param()
	eq := &expr.Binary{Op: expr.Equal, Left: member(p, `Name`, dal.String), Right: &expr.Constant{Value: `a`, StaticType: dal.String}}
	body := &expr.Unary{Op: expr.Not, Operand: eq}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	_, ok := result.(*criteria.Not)
	assert.True(ok)
}

func TestTranslateHasValueProducesExists(t *testing.T) {
	assert := require.New(t)

	p := param()
	nullable := member(p, `Age`, dal.Int.AsNullable())
	body := &expr.Member{Target: nullable, Name: `HasValue`, StaticType: dal.Bool, Declaring: recordType}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	_, ok := result.(*criteria.Exists)
	assert.True(ok)
}

func TestTranslateConstantBodyIsRuleK(t *testing.T) {
	assert := require.New(t)

	p := param()
	trueBody := &expr.Constant{Value: true, StaticType: dal.Bool}

	result, err := newTranslator().Translate(lambda(p, trueBody))
	assert.NoError(err)
	assert.True(criteria.IsTrue(result))

	falseBody := &expr.Constant{Value: false, StaticType: dal.Bool}
	result, err = newTranslator().Translate(lambda(p, falseBody))
	assert.NoError(err)
	assert.True(criteria.IsFalse(result))
}

func TestTranslateWideningConvertIsElided(t *testing.T) {
	assert := require.New(t)

	p := param()
	converted := &expr.Unary{Op: expr.Convert, Operand: member(p, `Age`, dal.Int), Type: dal.Float}
	body := &expr.Binary{Op: expr.Equal, Left: converted, Right: &expr.Constant{Value: 18, StaticType: dal.Float}}

	result, err := newTranslator().Translate(lambda(p, body))
	assert.NoError(err)

	term, ok := result.(*criteria.Term)
	assert.True(ok)
	assert.Equal(`Age`, term.Field)
}

func TestTranslateNarrowingConvertIsRejected(t *testing.T) {
	assert := require.New(t)

	p := param()
	converted := &expr.Unary{Op: expr.Convert, Operand: member(p, `Age`, dal.Decimal), Type: dal.Int}
	body := &expr.Binary{Op: expr.Equal, Left: converted, Right: &expr.Constant{Value: 18, StaticType: dal.Int}}

	_, err := newTranslator().Translate(lambda(p, body))
	assert.Error(err)
	assert.True(IsUnsupported(err))
}

func TestTranslateContainsProducesTerm(t *testing.T) {
	assert := require.New(t)

	p := param()
	tags := member(p, `Tags`, dal.SequenceOf(dal.String))

	call := &expr.MethodCall{
		Receiver: tags,
		Identity: expr.MethodIdentity{Declaring: `Collection`, Name: `Contains`, Arity: 1},
		Args:     []expr.Node{&expr.Constant{Value: `urgent`, StaticType: dal.String}},
		Returns:  dal.Bool,
	}

	result, err := newTranslator().Translate(lambda(p, call))
	assert.NoError(err)

	term, ok := result.(*criteria.Term)
	assert.True(ok)
	assert.Equal(`Tags`, term.Field)
	assert.Equal(`urgent`, term.Value)
}

func TestTranslateContainsWithConstantSequenceAndNullProducesOrMissing(t *testing.T) {
	assert := require.New(t)

	p := param()
	name := member(p, `Name`, dal.String)

	seq := &expr.Constant{
		Value:      []interface{}{`Robbie`, nil, `IG-88`},
		StaticType: dal.SequenceOf(dal.String.AsNullable()),
	}

	call := &expr.MethodCall{
		Identity: expr.MethodIdentity{Declaring: `Enumerable`, Name: `Contains`, Arity: 2},
		Args:     []expr.Node{seq, name},
		Returns:  dal.Bool,
	}

	result, err := newTranslator().Translate(lambda(p, call))
	assert.NoError(err)

	or, ok := result.(*criteria.Or)
	assert.True(ok)
	assert.Len(or.Children, 2)

	var sawTerms, sawMissing bool

	for _, child := range or.Children {
		switch c := child.(type) {
		case *criteria.Terms:
			sawTerms = true
			assert.Equal(`Name`, c.Field)
			assert.Equal(2, c.Values.Cardinality())
		case *criteria.Missing:
			sawMissing = true
			assert.Equal(`Name`, c.Field)
		}
	}

	assert.True(sawTerms)
	assert.True(sawMissing)
}

func TestTranslateContainsAnyBuildsOrTerms(t *testing.T) {
	assert := require.New(t)

	p := param()
	status := member(p, `Status`, dal.String)

	seq := &expr.Constant{Value: []interface{}{`open`, `pending`}, StaticType: dal.SequenceOf(dal.String)}

	call := &expr.MethodCall{
		Identity: expr.MethodIdentity{Declaring: `ElasticMethods`, Name: `ContainsAny`, Arity: 2},
		Args:     []expr.Node{status, seq},
		Returns:  dal.Bool,
	}

	result, err := newTranslator().Translate(lambda(p, call))
	assert.NoError(err)

	terms, ok := result.(*criteria.Terms)
	assert.True(ok)
	assert.Equal(criteria.ExecOr, terms.ExecutionMode)
	assert.Equal(2, terms.Values.Cardinality())
}

func TestTranslateRegexpAndPrefix(t *testing.T) {
	assert := require.New(t)

	p := param()
	name := member(p, `Name`, dal.String)

	regexCall := &expr.MethodCall{
		Identity: expr.MethodIdentity{Declaring: `ElasticMethods`, Name: `Regexp`, Arity: 2},
		Args:     []expr.Node{name, &expr.Constant{Value: `^a.*`, StaticType: dal.String}},
		Returns:  dal.Bool,
	}

	result, err := newTranslator().Translate(lambda(p, regexCall))
	assert.NoError(err)

	re, ok := result.(*criteria.Regexp)
	assert.True(ok)
	assert.Equal(`^a.*`, re.Pattern)

	prefixCall := &expr.MethodCall{
		Identity: expr.MethodIdentity{Declaring: `ElasticMethods`, Name: `Prefix`, Arity: 2},
		Args:     []expr.Node{name, &expr.Constant{Value: `al`, StaticType: dal.String}},
		Returns:  dal.Bool,
	}

	result, err = newTranslator().Translate(lambda(p, prefixCall))
	assert.NoError(err)

	prefix, ok := result.(*criteria.Prefix)
	assert.True(ok)
	assert.Equal(`al`, prefix.Prefix)
}

func TestTranslateRejectsStringContains(t *testing.T) {
	assert := require.New(t)

	p := param()
	name := member(p, `Name`, dal.String)

	call := &expr.MethodCall{
		Receiver: name,
		Identity: expr.MethodIdentity{Declaring: `String`, Name: `Contains`, Arity: 1},
		Args:     []expr.Node{&expr.Constant{Value: `li`, StaticType: dal.String}},
		Returns:  dal.Bool,
	}

	_, err := newTranslator().Translate(lambda(p, call))
	assert.Error(err)
	assert.True(IsUnsupported(err))
}

func TestTranslateEqualityOnEnumRaisesDomainRange(t *testing.T) {
	assert := require.New(t)

	m := mapping.NewDefaultMapping()
	m.EnumsAsStrings = true

	p := param()
	statusType := dal.Enum(`Status`, `Open`, `Closed`)
	body := &expr.Binary{
		Op:    expr.Equal,
		Left:  member(p, `Status`, statusType),
		Right: &expr.Constant{Value: `Bogus`, StaticType: statusType},
	}

	_, err := New(m).Translate(lambda(p, body))
	assert.Error(err)
	assert.True(IsDomainRange(err))
}

func TestTranslateMaxDepthGuard(t *testing.T) {
	assert := require.New(t)

	p := param()
	tr := newTranslator()
	tr.MaxDepth = 2

	flag := member(p, `Active`, dal.Bool)
	body := &expr.Unary{Op: expr.Not, Operand: &expr.Unary{Op: expr.Not, Operand: &expr.Unary{Op: expr.Not, Operand: flag}}}

	_, err := tr.Translate(lambda(p, body))
	assert.Error(err)
	assert.True(IsArgument(err))
}
