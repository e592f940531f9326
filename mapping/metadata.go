package mapping

import (
	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/expr"
)

// VirtualFields is the default Id/Score/Type → _id/_score/_type table a
// MetadataDecorator intercepts. Callers may construct their own
// decorator with a different table via NewMetadataDecorator.
var VirtualFields = map[string]string{
	`Id`:    `_id`,
	`Score`: `_score`,
	`Type`:  `_type`,
}

// MetadataDecorator intercepts member accesses on the sentinel
// dal.DocumentMetadata type, short-circuiting field-name resolution to a
// fixed virtual field name before delegating everything else to Inner
// (§4.B: "A decorator layer may intercept specific 'virtual' members...
// and short-circuit field-name resolution before delegating to the
// inner mapping").
type MetadataDecorator struct {
	Inner  Mapping
	Fields map[string]string
}

// NewMetadataDecorator wraps inner with the default virtual-field table.
func NewMetadataDecorator(inner Mapping) *MetadataDecorator {
	return &MetadataDecorator{Inner: inner, Fields: VirtualFields}
}

func (self *MetadataDecorator) isVirtual(declaring dal.Type, name string) (string, bool) {
	if declaring.Kind != dal.KindObject || declaring.EnumName != dal.DocumentMetadata.EnumName {
		return ``, false
	}

	field, ok := self.Fields[name]
	return field, ok
}

func (self *MetadataDecorator) FieldName(chain *expr.Member) (string, error) {
	if field, ok := self.isVirtual(chain.Declaring, chain.Name); ok {
		return field, nil
	}

	return self.Inner.FieldName(chain)
}

func (self *MetadataDecorator) FieldNameOf(name string, declaring dal.Type) (string, error) {
	if field, ok := self.isVirtual(declaring, name); ok {
		return field, nil
	}

	return self.Inner.FieldNameOf(name, declaring)
}

func (self *MetadataDecorator) DocumentType(t dal.Type) string {
	return self.Inner.DocumentType(t)
}

func (self *MetadataDecorator) DocumentMappingPrefix(declaring dal.Type) string {
	return self.Inner.DocumentMappingPrefix(declaring)
}

func (self *MetadataDecorator) FormatValue(member *expr.Member, value interface{}) (interface{}, error) {
	return self.Inner.FormatValue(member, value)
}

func (self *MetadataDecorator) TypeSelectionCriteria(docType string) criteria.Criterion {
	return self.Inner.TypeSelectionCriteria(docType)
}
