package esquery

import (
	"io/ioutil"

	"github.com/ghodss/yaml"

	"github.com/ghetzel/esquery/mapping"
)

// Config describes a DefaultMapping's naming policy, loaded from a YAML
// file the same way the teacher's own config.go loads a backend
// connection string (plain struct, ghodss/yaml tags, a LoadConfig
// free function).
type Config struct {
	// Prefixes maps a declaring type's String() to the path prefix
	// inserted before its member chains (§4.B's DocumentMappingPrefix).
	Prefixes map[string]string `json:"prefixes,omitempty"`

	// NotAnalyzed lists member names exempt from the analyzed-string
	// lower-casing policy.
	NotAnalyzed []string `json:"not_analyzed,omitempty"`

	// EnumsAsStrings selects symbolic (true) or underlying-integer
	// (false) enum formatting.
	EnumsAsStrings bool `json:"enums_as_strings,omitempty"`

	// TypeSelector, when non-empty, is the field name DefaultMapping
	// uses to restrict a search request to one document type.
	TypeSelector string `json:"type_selector,omitempty"`

	// DocumentTypeFor maps a declaring type's String() to its document
	// type name, overriding the pluralized-EnumName default.
	DocumentTypeFor map[string]string `json:"document_type_for,omitempty"`
}

// Mapping builds a DefaultMapping from this configuration.
func (self *Config) Mapping() *mapping.DefaultMapping {
	m := mapping.NewDefaultMapping()
	m.Prefixes = self.Prefixes
	m.EnumsAsStrings = self.EnumsAsStrings
	m.TypeSelector = self.TypeSelector
	m.DocumentTypeFor = self.DocumentTypeFor

	for _, name := range self.NotAnalyzed {
		m.NotAnalyzed[name] = true
	}

	return m
}

// LoadConfig reads and parses a Config from a YAML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)

	if err != nil {
		return nil, err
	}

	var config Config

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
