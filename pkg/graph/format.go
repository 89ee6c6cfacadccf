package graph

import (
	"fmt"
	"io"
	"strings"
)

// Format identifies a supported output serialization.
type Format string

const (
	// FormatTurtle is W3C Turtle, the default output format.
	FormatTurtle Format = "turtle"

	// FormatNTriples is flat N-Triples.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD is compact JSON-LD.
	FormatJSONLD Format = "jsonld"
)

// ParseFormat normalizes a format name from the command line. It accepts the
// usual aliases (ttl, nt, n-triples, json-ld).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, nil
	case "jsonld", "json-ld":
		return FormatJSONLD, nil
	}
	return "", fmt.Errorf("unknown output format %q (must be one of turtle, ntriples, jsonld)", name)
}

// Serialize renders the graph in the given format and writes it to w.
func Serialize(w io.Writer, g *Graph, format Format) error {
	var (
		rendered string
		err      error
	)

	switch format {
	case FormatTurtle:
		rendered, err = NewTurtleSerializer().Serialize(g)
	case FormatNTriples:
		rendered, err = NewNTriplesSerializer().Serialize(g)
	case FormatJSONLD:
		rendered, err = NewJSONLDSerializer().Serialize(g)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, rendered); err != nil {
		return fmt.Errorf("writing %s output: %w", format, err)
	}
	return nil
}
