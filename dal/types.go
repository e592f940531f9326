// Package dal models the static type information that flows through the
// expression AST and the mapping interface: the type of a member access,
// the type a lambda's parameter is bound to, and the document type a
// record's static type resolves to.
package dal

import (
	"fmt"
)

// Kind is the scalar tag of a Type, the same string-constant-block idiom
// pivot's own dal.Type used for storage types, narrowed and extended here
// for expression-tree member types.
type Kind string

const (
	KindString   Kind = `str`
	KindBool     Kind = `bool`
	KindInt      Kind = `int`
	KindFloat    Kind = `float`
	KindDecimal  Kind = `decimal`
	KindTime     Kind = `time`
	KindEnum     Kind = `enum`
	KindObject   Kind = `object`
	KindSequence Kind = `array`
)

func (self Kind) String() string {
	return string(self)
}

// Type describes the static type of an expression node: its scalar Kind,
// whether it is the nullable/optional variant of that kind, the element
// type when Kind is KindSequence, and the symbolic type name when Kind is
// KindEnum.
type Type struct {
	Kind     Kind
	Nullable bool
	Elem     *Type
	EnumName string
	// Members lists the defined symbolic names of a KindEnum type, in
	// ordinal order (Members[n] is the name formatted for underlying
	// value n). Empty for non-enum types or an enum with no declared
	// member list.
	Members []string
}

func (self Type) String() string {
	s := string(self.Kind)

	switch self.Kind {
	case KindSequence:
		if self.Elem != nil {
			s = fmt.Sprintf("%s<%s>", s, self.Elem.String())
		}
	case KindEnum:
		if self.EnumName != `` {
			s = self.EnumName
		}
	}

	if self.Nullable {
		s += `?`
	}

	return s
}

// IsNumeric reports whether values of this type participate in numeric
// comparison (Range criteria, widening Convert nodes).
func (self Type) IsNumeric() bool {
	switch self.Kind {
	case KindInt, KindFloat, KindDecimal:
		return true
	default:
		return false
	}
}

// IsSequence reports whether this type is iterable (used by Collection.Contains
// / Enumerable.Contains disambiguation in Rule M).
func (self Type) IsSequence() bool {
	return self.Kind == KindSequence
}

// AsNullable returns the nullable variant of self.
func (self Type) AsNullable() Type {
	self.Nullable = true
	return self
}

// AsNonNullable returns the non-nullable variant of self.
func (self Type) AsNonNullable() Type {
	self.Nullable = false
	return self
}

// SequenceOf builds the "sequence of elem" type used for member chains
// that resolve to an array/list/set-valued field.
func SequenceOf(elem Type) Type {
	return Type{
		Kind: KindSequence,
		Elem: &elem,
	}
}

// Enum builds a named enum type with the given ordinal member names.
func Enum(name string, members ...string) Type {
	return Type{
		Kind:     KindEnum,
		EnumName: name,
		Members:  members,
	}
}

// MemberIndex returns the ordinal position of name within the enum's
// declared Members, or -1 if name is not one of them.
func (self Type) MemberIndex(name string) int {
	for i, m := range self.Members {
		if m == name {
			return i
		}
	}

	return -1
}

// MemberName returns the symbolic name at ordinal index, or "" with ok
// false if index is out of range.
func (self Type) MemberName(index int) (string, bool) {
	if index < 0 || index >= len(self.Members) {
		return ``, false
	}

	return self.Members[index], true
}

var (
	String  = Type{Kind: KindString}
	Bool    = Type{Kind: KindBool}
	Int     = Type{Kind: KindInt}
	Float   = Type{Kind: KindFloat}
	Decimal = Type{Kind: KindDecimal}
	Time    = Type{Kind: KindTime}
	Object  = Type{Kind: KindObject}
)

// DocumentMetadata is the sentinel declaring type used for virtual members
// (_id, _score, _type) that a mapping.MetadataDecorator intercepts before
// delegating to the inner Mapping.
var DocumentMetadata = Type{
	Kind:     KindObject,
	EnumName: `DocumentMetadata`,
}
