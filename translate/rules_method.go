package translate

import (
	"fmt"

	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/errs"
	"github.com/ghetzel/esquery/expr"
)

// methodHandler translates one recognized method call shape into a
// criterion. Rule M dispatches through methodHandlers, a table keyed by
// MethodIdentity rather than through inheritance-based double dispatch
// (§9's explicit preference).
type methodHandler func(self *Translator, call *expr.MethodCall, depth int) (criteria.Criterion, error)

var methodHandlers map[expr.MethodIdentity]methodHandler

func init() {
	methodHandlers = make(map[expr.MethodIdentity]methodHandler)

	// Object.Equals(x, y) — static two-argument form.
	methodHandlers[expr.MethodIdentity{Declaring: `Object`, Name: `Equals`, Arity: 2}] = handleStaticEquals

	// Instance Equals(other) overloads on the scalar value types (§4.E).
	for _, declaring := range []string{`String`, `Decimal`, `Double`, `Int32`, `DateTime`, `Nullable`} {
		methodHandlers[expr.MethodIdentity{Declaring: declaring, Name: `Equals`, Arity: 1}] = handleInstanceEquals
	}

	// Collection.Contains(item) / Enumerable.Contains(collection, item).
	methodHandlers[expr.MethodIdentity{Declaring: `Collection`, Name: `Contains`, Arity: 1}] = handleContains
	methodHandlers[expr.MethodIdentity{Declaring: `Enumerable`, Name: `Contains`, Arity: 2}] = handleContains

	methodHandlers[expr.MethodIdentity{Declaring: `ElasticMethods`, Name: `ContainsAny`, Arity: 2}] = handleContainsAny
	methodHandlers[expr.MethodIdentity{Declaring: `ElasticMethods`, Name: `ContainsAll`, Arity: 2}] = handleContainsAll
	methodHandlers[expr.MethodIdentity{Declaring: `ElasticMethods`, Name: `Regexp`, Arity: 2}] = handleRegexp
	methodHandlers[expr.MethodIdentity{Declaring: `ElasticMethods`, Name: `Prefix`, Arity: 2}] = handlePrefix

	// String.Contains/StartsWith/EndsWith are explicitly rejected (§4.E,
	// §8 scenario 6): free-text substring matching has no criterion in
	// this algebra — a caller wanting prefix/regexp behavior must say so
	// through ElasticMethods.Prefix/Regexp instead.
	for _, name := range []string{`Contains`, `StartsWith`, `EndsWith`} {
		methodHandlers[expr.MethodIdentity{Declaring: `String`, Name: name, Arity: 1}] = handleRejectedStringMethod
	}
}

func (self *Translator) translateMethodCall(call *expr.MethodCall, depth int) (criteria.Criterion, error) {
	handler, ok := methodHandlers[call.Identity]

	if !ok {
		return nil, errs.New(errs.Unsupported, fmt.Sprintf("unrecognized method %s", call.Identity), call)
	}

	return handler(self, call, depth)
}

func handleRejectedStringMethod(self *Translator, call *expr.MethodCall, depth int) (criteria.Criterion, error) {
	return nil, errs.New(
		errs.Unsupported,
		fmt.Sprintf("%s has no criterion; use ElasticMethods.Prefix or ElasticMethods.Regexp", call.Identity),
		call,
	)
}

// handleStaticEquals implements Object.Equals(x, y): exactly one operand
// must be a member chain and the other a constant.
func handleStaticEquals(self *Translator, call *expr.MethodCall, depth int) (criteria.Criterion, error) {
	if len(call.Args) != 2 {
		return nil, errs.New(errs.Argument, "Object.Equals requires two arguments", call)
	}

	return self.equalsOperands(call.Args[0], call.Args[1], depth)
}

// handleInstanceEquals implements the instance-form `member.Equals(other)`
// overloads: the receiver is one operand, the sole argument the other.
func handleInstanceEquals(self *Translator, call *expr.MethodCall, depth int) (criteria.Criterion, error) {
	if call.Receiver == nil || len(call.Args) != 1 {
		return nil, errs.New(errs.Argument, "instance Equals requires a receiver and one argument", call)
	}

	return self.equalsOperands(call.Receiver, call.Args[0], depth)
}

func (self *Translator) equalsOperands(a, b expr.Node, depth int) (criteria.Criterion, error) {
	left, err := self.unwrap(a)

	if err != nil {
		return nil, err
	}

	right, err := self.unwrap(b)

	if err != nil {
		return nil, err
	}

	if isMemberChain(left) && !isMemberChain(right) {
		return self.translateEqualityPair(left.(*expr.Member), right, false, depth)
	}

	if isMemberChain(right) && !isMemberChain(left) {
		return self.translateEqualityPair(right.(*expr.Member), left, false, depth)
	}

	return nil, errs.New(errs.Unsupported, "Equals must compare a field to a constant", a)
}

// handleContains implements both Collection.Contains(item) (instance
// form, receiver is the collection) and Enumerable.Contains(collection,
// item) (static form) — unified since both reduce to the same criterion
// once the collection member and item constant are identified.
func handleContains(self *Translator, call *expr.MethodCall, depth int) (criteria.Criterion, error) {
	var collection, item expr.Node

	if call.Receiver != nil {
		if len(call.Args) != 1 {
			return nil, errs.New(errs.Argument, "Contains requires one argument", call)
		}

		collection, item = call.Receiver, call.Args[0]
	} else {
		if len(call.Args) != 2 {
			return nil, errs.New(errs.Argument, "Enumerable.Contains requires two arguments", call)
		}

		collection, item = call.Args[0], call.Args[1]
	}

	collection, err := self.unwrap(collection)

	if err != nil {
		return nil, err
	}

	item, err = self.unwrap(item)

	if err != nil {
		return nil, err
	}

	if mem, ok := collection.(*expr.Member); ok && isMemberChain(mem) {
		field, leaf, err := self.fieldOf(mem)

		if err != nil {
			return nil, err
		}

		value, err := self.formatConstant(leaf, item)

		if err != nil {
			return nil, err
		}

		return &criteria.Term{Field: field, Value: value}, nil
	}

	// The other shape (§4.E, §8 scenario 3): the item is the member chain
	// and the collection is a constant sequence, e.g.
	// new[]{"Robbie", null, "IG-88"}.Contains(r.Name). A null element
	// contributes a Missing alongside the non-null Terms.
	if mem, ok := item.(*expr.Member); ok && isMemberChain(mem) {
		values, ok := asConstantSequence(collection)

		if !ok {
			return nil, errs.New(errs.Unsupported, "Contains requires a field member chain", call)
		}

		field, leaf, err := self.fieldOf(mem)

		if err != nil {
			return nil, err
		}

		hasNull := false
		formatted := make([]interface{}, 0, len(values))

		for _, v := range values {
			if v == nil {
				hasNull = true
				continue
			}

			fv, err := self.Mapping.FormatValue(leaf, v)

			if err != nil {
				return nil, wrapFormatErr(call, err)
			}

			formatted = append(formatted, fv)
		}

		terms := criteria.BuildTerms(field, criteria.ExecPlain, formatted...)

		if hasNull {
			return criteria.CombineOr(terms, &criteria.Missing{Field: field}), nil
		}

		return terms, nil
	}

	return nil, errs.New(errs.Unsupported, "Contains requires a field member chain", call)
}

func handleContainsAny(self *Translator, call *expr.MethodCall, depth int) (criteria.Criterion, error) {
	return handleContainsMulti(self, call, criteria.ExecOr)
}

func handleContainsAll(self *Translator, call *expr.MethodCall, depth int) (criteria.Criterion, error) {
	return handleContainsMulti(self, call, criteria.ExecAnd)
}

func handleContainsMulti(self *Translator, call *expr.MethodCall, mode criteria.ExecutionMode) (criteria.Criterion, error) {
	if len(call.Args) != 2 {
		return nil, errs.New(errs.Argument, fmt.Sprintf("%s requires two arguments", call.Identity), call)
	}

	member, err := self.unwrap(call.Args[0])

	if err != nil {
		return nil, err
	}

	mem, ok := member.(*expr.Member)

	if !ok || !isMemberChain(mem) {
		return nil, errs.New(errs.Unsupported, fmt.Sprintf("%s requires a field member chain", call.Identity), call)
	}

	values, ok := asConstantSequence(call.Args[1])

	if !ok {
		return nil, errs.New(errs.Argument, fmt.Sprintf("%s requires a constant sequence of values", call.Identity), call)
	}

	field, leaf, err := self.fieldOf(mem)

	if err != nil {
		return nil, err
	}

	formatted := make([]interface{}, 0, len(values))

	for _, v := range values {
		fv, err := self.Mapping.FormatValue(leaf, v)

		if err != nil {
			return nil, wrapFormatErr(call, err)
		}

		formatted = append(formatted, fv)
	}

	return criteria.BuildTerms(field, mode, formatted...), nil
}

func handleRegexp(self *Translator, call *expr.MethodCall, depth int) (criteria.Criterion, error) {
	field, pattern, err := self.stringArgCriterionOperands(call)

	if err != nil {
		return nil, err
	}

	return &criteria.Regexp{Field: field, Pattern: pattern}, nil
}

func handlePrefix(self *Translator, call *expr.MethodCall, depth int) (criteria.Criterion, error) {
	field, prefix, err := self.stringArgCriterionOperands(call)

	if err != nil {
		return nil, err
	}

	return &criteria.Prefix{Field: field, Prefix: prefix}, nil
}

// stringArgCriterionOperands handles the shared shape of
// ElasticMethods.Regexp(member, pattern) and
// ElasticMethods.Prefix(member, prefix): a field member chain and a
// constant string argument.
func (self *Translator) stringArgCriterionOperands(call *expr.MethodCall) (string, string, error) {
	if len(call.Args) != 2 {
		return ``, ``, errs.New(errs.Argument, fmt.Sprintf("%s requires two arguments", call.Identity), call)
	}

	member, err := self.unwrap(call.Args[0])

	if err != nil {
		return ``, ``, err
	}

	mem, ok := member.(*expr.Member)

	if !ok || !isMemberChain(mem) {
		return ``, ``, errs.New(errs.Unsupported, fmt.Sprintf("%s requires a field member chain", call.Identity), call)
	}

	arg, err := self.unwrap(call.Args[1])

	if err != nil {
		return ``, ``, err
	}

	c, ok := arg.(*expr.Constant)

	if !ok {
		return ``, ``, errs.New(errs.Argument, fmt.Sprintf("%s requires a constant string argument", call.Identity), call)
	}

	pattern, ok := c.Value.(string)

	if !ok {
		return ``, ``, errs.New(errs.Argument, fmt.Sprintf("%s requires a string argument", call.Identity), call)
	}

	field, _, err := self.fieldOf(mem)

	if err != nil {
		return ``, ``, err
	}

	return field, pattern, nil
}
