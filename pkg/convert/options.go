// Package convert is the common driver for converting legacy media metadata
// into RDF using the Media Ontology for Media Resources.
//
// RDF can be generated according to the following profiles:
//   - "default" generates ma: properties for exact matches, and properties in
//     a dedicated namespace with subProperty axioms for related matches.
//   - "ma-only" generates only ma: properties.
//   - "original" always generates dedicated properties (even for exact
//     matches) with subProperty axioms to the corresponding ma: property.
//
// Furthermore, extended metadata (not specified by the ontology) can be
// generated:
//   - a URI identifying the language (if any)
//   - foaf:name instead of rdfs:label for instances of ma:Person
//
// See http://www.w3.org/TR/mediaont-10/.
package convert

import (
	"fmt"

	"github.com/coolbeans/mediaont/pkg/graph"
	"github.com/coolbeans/mediaont/pkg/ontology"
)

// Options is the resolved configuration for one conversion run. It is
// immutable once resolved; the node factories read it, never write it.
type Options struct {
	// Profile controls how legacy fields map onto ma: properties.
	Profile ontology.Profile

	// Extended enables metadata beyond the ontology's specification.
	Extended bool

	// Language is the language tag applied to string literals. Empty means
	// untagged literals.
	Language string

	// OWLImport asserts an owl:imports statement for the Media Ontology.
	OWLImport bool

	// Format is the output serialization.
	Format graph.Format
}

// DefaultOptions returns the documented defaults: profile "default", no
// extended metadata, no language tag, no owl:imports, Turtle output.
func DefaultOptions() Options {
	return Options{
		Profile: ontology.ProfileDefault,
		Format:  graph.FormatTurtle,
	}
}

// ResolveOptions validates raw flag values into an Options record. It fails
// before any graph work begins when the profile or format is out of range.
func ResolveOptions(profile string, extended bool, language string, owlImport bool, format string) (Options, error) {
	resolvedProfile, err := ontology.ParseProfile(profile)
	if err != nil {
		return Options{}, err
	}

	resolvedFormat, err := graph.ParseFormat(format)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Profile:   resolvedProfile,
		Extended:  extended,
		Language:  language,
		OWLImport: owlImport,
		Format:    resolvedFormat,
	}, nil
}

// NumericParseError reports that a candidate value for a decimal literal
// could not be interpreted as a number. It propagates to the extraction
// callback, which decides whether to abort the conversion or skip the field.
type NumericParseError struct {
	Value string
	Err   error
}

// Error implements the error interface.
func (e *NumericParseError) Error() string {
	return fmt.Sprintf("value %q is not numeric", e.Value)
}

// Unwrap returns the underlying parse error.
func (e *NumericParseError) Unwrap() error {
	return e.Err
}
