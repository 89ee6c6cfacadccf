// Package mapping provides a pluggable registry of field mappings: the table
// a format converter uses to translate legacy metadata field names into Media
// Ontology properties. Mappings are declared in YAML files so a converter's
// field table can be adjusted without recompiling.
package mapping

import (
	"fmt"
	"strings"

	"github.com/coolbeans/mediaont/pkg/ontology"
)

// ValueKind identifies which node factory a field's values go through.
type ValueKind string

const (
	// KindString produces a language-tagged plain literal.
	KindString ValueKind = "string"

	// KindDecimal produces an xsd:decimal literal.
	KindDecimal ValueKind = "decimal"

	// KindDate produces an xsd:date literal (or skips short placeholders).
	KindDate ValueKind = "date"

	// KindLanguage produces a string literal, plus a lexvo URI in extended
	// mode.
	KindLanguage ValueKind = "language"

	// KindPerson produces a ma:Person node whose name uses rdfs:label, or
	// foaf:name in extended mode.
	KindPerson ValueKind = "person"
)

// ParseValueKind validates a value kind from a mapping file.
func ParseValueKind(name string) (ValueKind, error) {
	switch ValueKind(name) {
	case KindString, KindDecimal, KindDate, KindLanguage, KindPerson:
		return ValueKind(name), nil
	}
	return "", fmt.Errorf("unknown value kind %q", name)
}

// FieldMapping maps one legacy field to a Media Ontology property.
type FieldMapping struct {
	// Field is the legacy field name as it appears in the source format.
	Field string `yaml:"field" json:"field"`

	// Property is the local name of the closest ma: property.
	Property string `yaml:"property" json:"property"`

	// Match is the correspondence strength: exact or related.
	Match ontology.Match `yaml:"match" json:"match"`

	// Kind selects the node factory for the field's values.
	Kind ValueKind `yaml:"kind" json:"kind"`

	// Related optionally names the dedicated sub-property used for this
	// field under the default/original profiles. Defaults to Property.
	Related string `yaml:"related,omitempty" json:"related,omitempty"`
}

// Validate checks a field mapping for completeness.
func (m FieldMapping) Validate() error {
	if m.Field == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	if m.Property == "" {
		return fmt.Errorf("field %q: property cannot be empty", m.Field)
	}
	if _, err := ontology.ParseMatch(string(m.Match)); err != nil {
		return fmt.Errorf("field %q: %w", m.Field, err)
	}
	if _, err := ParseValueKind(string(m.Kind)); err != nil {
		return fmt.Errorf("field %q: %w", m.Field, err)
	}
	return nil
}

// FormatMapping is the full field table for one legacy format.
type FormatMapping struct {
	// FormatID uniquely identifies the legacy format (e.g. "kvmeta").
	FormatID string `yaml:"format_id" json:"format_id"`

	// Version distinguishes revisions of the same mapping.
	Version string `yaml:"version" json:"version"`

	// Description is free documentation text.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Namespace is the dedicated namespace for the format's sub-properties,
	// used by the default and original profiles.
	Namespace string `yaml:"namespace" json:"namespace"`

	// Fields lists the field mappings.
	Fields []FieldMapping `yaml:"fields" json:"fields"`
}

// Validate checks the mapping for completeness and duplicate fields.
func (m *FormatMapping) Validate() error {
	if m.FormatID == "" {
		return fmt.Errorf("format_id cannot be empty")
	}
	if m.Namespace == "" {
		return fmt.Errorf("mapping %q: namespace cannot be empty", m.FormatID)
	}
	if !strings.HasSuffix(m.Namespace, "#") && !strings.HasSuffix(m.Namespace, "/") {
		return fmt.Errorf("mapping %q: namespace must end with # or /", m.FormatID)
	}
	if len(m.Fields) == 0 {
		return fmt.Errorf("mapping %q: no fields", m.FormatID)
	}

	seen := make(map[string]bool, len(m.Fields))
	for _, field := range m.Fields {
		if err := field.Validate(); err != nil {
			return fmt.Errorf("mapping %q: %w", m.FormatID, err)
		}
		if seen[field.Field] {
			return fmt.Errorf("mapping %q: duplicate field %q", m.FormatID, field.Field)
		}
		seen[field.Field] = true
	}
	return nil
}

// Lookup returns the mapping for a legacy field name.
func (m *FormatMapping) Lookup(field string) (FieldMapping, bool) {
	for _, candidate := range m.Fields {
		if candidate.Field == field {
			return candidate, true
		}
	}
	return FieldMapping{}, false
}
