package mapping

import (
	"github.com/fatih/structs"

	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/expr"
)

// StructTagName is the struct tag StructMapping reads per-field override
// names from (the "attribute-supplied literal name wins" rule of §4.B),
// mirroring pivot's own util.RecordStructTag convention.
var StructTagName = `pivot`

// StructMapping builds a Mapping by reflecting over a zero-value instance
// of the document's Go struct, reading `pivot:"name"` tags for per-field
// overrides and otherwise falling back to a wrapped Mapping (typically a
// DefaultMapping) for naming conventions. This is the host-side,
// attribute-driven convention helper that §1/§9 place outside the core
// contract; it is supplied here only as an optional demo-layer
// convenience built on the same library pivot's filter.ApplyOptions uses
// for struct/tag introspection.
type StructMapping struct {
	Sample    interface{}
	Fallback  Mapping
	overrides map[string]string
}

// NewStructMapping reflects sample (a pointer to, or value of, the
// document's Go struct type) and wraps fallback for any member with no
// explicit tag override.
func NewStructMapping(sample interface{}, fallback Mapping) *StructMapping {
	sm := &StructMapping{
		Sample:    sample,
		Fallback:  fallback,
		overrides: make(map[string]string),
	}

	s := structs.New(sample)

	for _, f := range s.Fields() {
		if tag := f.Tag(StructTagName); tag != `` && tag != `-` {
			sm.overrides[f.Name()] = tag
		}
	}

	return sm
}

func (self *StructMapping) FieldName(chain *expr.Member) (string, error) {
	if override, ok := self.overrides[chain.Name]; ok {
		return override, nil
	}

	return self.Fallback.FieldName(chain)
}

func (self *StructMapping) FieldNameOf(name string, declaring dal.Type) (string, error) {
	if override, ok := self.overrides[name]; ok {
		return override, nil
	}

	return self.Fallback.FieldNameOf(name, declaring)
}

func (self *StructMapping) DocumentType(t dal.Type) string {
	return self.Fallback.DocumentType(t)
}

func (self *StructMapping) DocumentMappingPrefix(declaring dal.Type) string {
	return self.Fallback.DocumentMappingPrefix(declaring)
}

func (self *StructMapping) FormatValue(member *expr.Member, value interface{}) (interface{}, error) {
	return self.Fallback.FormatValue(member, value)
}

func (self *StructMapping) TypeSelectionCriteria(docType string) criteria.Criterion {
	return self.Fallback.TypeSelectionCriteria(docType)
}
