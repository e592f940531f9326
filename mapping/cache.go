package mapping

import (
	cmap "github.com/orcaman/concurrent-map"

	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/expr"
)

// FieldNameCache wraps a Mapping with a concurrent-safe memoization layer
// in front of FieldName/FieldNameOf, the two calls most likely to be
// backed by a slow or reflective implementation. Grounded on
// backends/bleve-indexer.go's use of orcaman/concurrent-map for
// concurrently-accessed index bookkeeping, repurposed here because §5
// requires a Mapping be safe for concurrent reads.
type FieldNameCache struct {
	Inner Mapping
	chain cmap.ConcurrentMap
	leaf  cmap.ConcurrentMap
}

// NewFieldNameCache wraps inner with a fresh, empty cache.
func NewFieldNameCache(inner Mapping) *FieldNameCache {
	return &FieldNameCache{
		Inner: inner,
		chain: cmap.New(),
		leaf:  cmap.New(),
	}
}

func (self *FieldNameCache) FieldName(chain *expr.Member) (string, error) {
	key := chain.String() + `@` + chain.Declaring.String()

	if v, ok := self.chain.Get(key); ok {
		return v.(string), nil
	}

	name, err := self.Inner.FieldName(chain)

	if err != nil {
		return ``, err
	}

	self.chain.Set(key, name)
	return name, nil
}

func (self *FieldNameCache) FieldNameOf(name string, declaring dal.Type) (string, error) {
	key := name + `@` + declaring.String()

	if v, ok := self.leaf.Get(key); ok {
		return v.(string), nil
	}

	resolved, err := self.Inner.FieldNameOf(name, declaring)

	if err != nil {
		return ``, err
	}

	self.leaf.Set(key, resolved)
	return resolved, nil
}

func (self *FieldNameCache) DocumentType(t dal.Type) string {
	return self.Inner.DocumentType(t)
}

func (self *FieldNameCache) DocumentMappingPrefix(declaring dal.Type) string {
	return self.Inner.DocumentMappingPrefix(declaring)
}

func (self *FieldNameCache) FormatValue(member *expr.Member, value interface{}) (interface{}, error) {
	return self.Inner.FormatValue(member, value)
}

func (self *FieldNameCache) TypeSelectionCriteria(docType string) criteria.Criterion {
	return self.Inner.TypeSelectionCriteria(docType)
}
