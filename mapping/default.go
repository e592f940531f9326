package mapping

import (
	"fmt"
	"strings"

	"github.com/ghetzel/go-stockutil/stringutil"

	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/errs"
	"github.com/ghetzel/esquery/expr"
)

// NotAnalyzed marks a member as exempt from the analyzed-string
// lower-casing policy (§4.B: "if the member is not marked 'not-analyzed'
// and yields a string, the string is lower-cased").
type NotAnalyzed map[string]bool

// DefaultMapping is this module's one concrete, demo-oriented Mapping
// implementation (§4.B/SPEC_FULL.md §3.C): it Camelizes each path
// segment the way dal/formatters.go's ChangeCase("camelize") case does,
// lower-cases analyzed string values, and formats enums either
// symbolically or as their underlying integer depending on
// EnumsAsStrings. It is not part of the core contract — the translator
// never assumes a Mapping looks like this one.
type DefaultMapping struct {
	Prefixes        map[string]string
	NotAnalyzed     NotAnalyzed
	EnumsAsStrings  bool
	TypeSelector    string // field name used for type-selection, "" = none
	DocumentTypeFor map[string]string
}

// NewDefaultMapping builds a DefaultMapping with empty overrides.
func NewDefaultMapping() *DefaultMapping {
	return &DefaultMapping{
		Prefixes:        make(map[string]string),
		NotAnalyzed:     make(NotAnalyzed),
		DocumentTypeFor: make(map[string]string),
	}
}

func (self *DefaultMapping) camelize(name string) string {
	return stringutil.Camelize(name)
}

func (self *DefaultMapping) FieldName(chain *expr.Member) (string, error) {
	names, _, ok := expr.MemberChain(chain)

	if !ok {
		return ``, dal.FieldNotFound
	}

	segs := make([]string, len(names))

	for i, n := range names {
		segs[i] = self.camelize(n)
	}

	path := strings.Join(segs, `.`)

	if prefix := self.DocumentMappingPrefix(chain.Declaring); prefix != `` {
		path = prefix + `.` + path
	}

	return path, nil
}

func (self *DefaultMapping) FieldNameOf(name string, declaring dal.Type) (string, error) {
	return self.camelize(name), nil
}

func (self *DefaultMapping) DocumentType(t dal.Type) string {
	if name, ok := self.DocumentTypeFor[t.String()]; ok {
		return name
	}

	return strings.ToLower(t.EnumName) + `s`
}

func (self *DefaultMapping) DocumentMappingPrefix(declaring dal.Type) string {
	return self.Prefixes[declaring.String()]
}

func (self *DefaultMapping) FormatValue(member *expr.Member, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}

	if member != nil && member.StaticType.Kind == dal.KindEnum {
		return self.formatEnumValue(member, value)
	}

	if s, ok := value.(string); ok {
		analyzed := true

		if member != nil {
			if na, ok := self.NotAnalyzed[member.Name]; ok && na {
				analyzed = false
			}
		}

		if analyzed {
			return strings.ToLower(s), nil
		}

		return s, nil
	}

	return value, nil
}

// formatEnumValue implements §4.B's enum formatting contract: symbolic
// name when EnumsAsStrings, underlying ordinal integer otherwise. Either
// direction validates the value against the type's declared Members,
// raising errs.DomainRange when the value isn't one of them (§7) rather
// than silently passing through an out-of-range ordinal or an unknown
// name.
func (self *DefaultMapping) formatEnumValue(member *expr.Member, value interface{}) (interface{}, error) {
	enumType := member.StaticType

	if self.EnumsAsStrings {
		switch v := value.(type) {
		case string:
			if len(enumType.Members) > 0 && enumType.MemberIndex(v) < 0 {
				return nil, errs.New(errs.DomainRange, fmt.Sprintf("%q is not a defined member of enum %s", v, enumType.EnumName), nil)
			}

			return v, nil
		case int:
			name, ok := enumType.MemberName(v)

			if !ok {
				return nil, errs.New(errs.DomainRange, fmt.Sprintf("ordinal %d is not a defined member of enum %s", v, enumType.EnumName), nil)
			}

			return name, nil
		default:
			return value, nil
		}
	}

	switch v := value.(type) {
	case int:
		if len(enumType.Members) > 0 {
			if _, ok := enumType.MemberName(v); !ok {
				return nil, errs.New(errs.DomainRange, fmt.Sprintf("ordinal %d is not a defined member of enum %s", v, enumType.EnumName), nil)
			}
		}

		return v, nil
	case string:
		index := enumType.MemberIndex(v)

		if index < 0 {
			return nil, errs.New(errs.DomainRange, fmt.Sprintf("%q is not a defined member of enum %s", v, enumType.EnumName), nil)
		}

		return index, nil
	default:
		return value, nil
	}
}

func (self *DefaultMapping) TypeSelectionCriteria(docType string) criteria.Criterion {
	if self.TypeSelector == `` {
		return nil
	}

	return &criteria.Term{Field: self.TypeSelector, Value: docType}
}
