// Package esquery assembles a translated criteria tree into the
// Elasticsearch search-request document (§4.G): the outermost layer that
// glues the partial evaluator, predicate translator, and a document's
// type-selection criterion together into one request payload.
//
// Everything downstream of the request document — issuing it over HTTP,
// deserializing a response, projection, sorting, pagination, and
// connection/retry policy — is out of scope here; a caller owns the
// transport.
package esquery

import (
	"encoding/json"

	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/expr"
	"github.com/ghetzel/esquery/mapping"
	"github.com/ghetzel/esquery/translate"
)

// SearchRequest is the assembled request document (§4.G): a document
// type plus the combined filter criterion (the caller's predicate
// ANDed with the mapping's type-selection restriction, when it
// contributes one).
type SearchRequest struct {
	DocType string             `json:"doc_type"`
	Filter  criteria.Criterion `json:"filter,omitempty"`
}

// MarshalJSON renders the envelope described by §6: doc_type alongside
// the filter's own `{"<name>": <payload>}` shape.
func (self *SearchRequest) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		`doc_type`: self.DocType,
	}

	if self.Filter != nil && !criteria.IsTrue(self.Filter) {
		out[`filter`] = self.Filter
	}

	return json.Marshal(out)
}

// Assemble builds a SearchRequest from an already-translated filter
// criterion, ANDing in the mapping's TypeSelectionCriteria for docType
// when it contributes one (§4.G).
func Assemble(filter criteria.Criterion, docType string, m mapping.Mapping) *SearchRequest {
	if filter == nil {
		filter = criteria.True
	}

	if sel := m.TypeSelectionCriteria(docType); sel != nil {
		filter = criteria.CombineAnd(filter, sel)
	}

	return &SearchRequest{
		DocType: docType,
		Filter:  filter,
	}
}

// Translate runs the full D -> E -> G pipeline: partially evaluate and
// translate the predicate lambda (via a fresh translate.Translator bound
// to m), then assemble the result into a SearchRequest for docType.
func Translate(l *expr.Lambda, docType string, m mapping.Mapping) (*SearchRequest, error) {
	t := translate.New(m)

	filter, err := t.Translate(l)

	if err != nil {
		return nil, err
	}

	return Assemble(filter, docType, m), nil
}
