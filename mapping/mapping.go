// Package mapping defines the pluggable capability set the translator
// consumes to resolve member chains to field paths, derive document
// types, format values, and contribute a type-selection criterion
// (§4.B).
package mapping

import (
	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/dal"
	"github.com/ghetzel/esquery/expr"
)

// Mapping is the contract the translator programs against. Implementations
// must be stateless or safe for concurrent reads (§5): translator calls
// may be arbitrarily interleaved across concurrent translations.
type Mapping interface {
	// FieldName resolves a full member-access chain to its dotted field
	// path (e.g. "a.b.c"), prefixed per DocumentMappingPrefix when the
	// chain's declaring type asks for one.
	FieldName(chain *expr.Member) (string, error)

	// FieldNameOf resolves a single path segment at a chain leaf,
	// without walking a full Member spine.
	FieldNameOf(name string, declaring dal.Type) (string, error)

	// DocumentType derives the Elasticsearch document type name for a
	// record's static type.
	DocumentType(t dal.Type) string

	// DocumentMappingPrefix returns the prefix inserted before a member
	// chain when the root record lives nested inside a wrapper
	// document, or "" for none.
	DocumentMappingPrefix(declaring dal.Type) string

	// FormatValue converts a runtime value to its canonical JSON shape
	// for the given member (enum symbolic-vs-integer policy, analyzed
	// string lower-casing policy).
	FormatValue(member *expr.Member, value interface{}) (interface{}, error)

	// TypeSelectionCriteria returns the criterion, if any, that
	// restricts results to documents of docType. Returns nil when no
	// such restriction is needed.
	TypeSelectionCriteria(docType string) criteria.Criterion
}
