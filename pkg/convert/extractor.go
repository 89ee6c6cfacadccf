package convert

import (
	"fmt"

	"github.com/coolbeans/mediaont/pkg/graph"
	"github.com/coolbeans/mediaont/pkg/ontology"
)

// Extractor is the contract a format-specific converter implements. FillGraph
// extracts metadata from the named input file and asserts it into the graph.
// The driver calls it once per input file, in command-line order; returning
// an error aborts the whole conversion.
type Extractor interface {
	FillGraph(g *graph.Graph, filename string, profile ontology.Profile, extended bool) error
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(g *graph.Graph, filename string, profile ontology.Profile, extended bool) error

// FillGraph calls the wrapped function.
func (fn ExtractorFunc) FillGraph(g *graph.Graph, filename string, profile ontology.Profile, extended bool) error {
	return fn(g, filename, profile, extended)
}

// Unimplemented is a placeholder Extractor for converters still under
// construction. FillGraph always fails.
type Unimplemented struct{}

// FillGraph returns a "not implemented" error.
func (Unimplemented) FillGraph(_ *graph.Graph, filename string, _ ontology.Profile, _ bool) error {
	return fmt.Errorf("metadata extraction not implemented (file %s)", filename)
}
