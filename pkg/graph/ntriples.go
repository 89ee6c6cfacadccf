package graph

import "strings"

// NTriplesSerializer converts a Graph into N-Triples format. N-Triples has no
// prefix mechanism, so bindings are ignored and every URI is written in full.
type NTriplesSerializer struct{}

// NewNTriplesSerializer creates an NTriplesSerializer.
func NewNTriplesSerializer() *NTriplesSerializer {
	return &NTriplesSerializer{}
}

// Serialize converts all triples in the graph to N-Triples, one statement per
// line in insertion order.
func (serializer *NTriplesSerializer) Serialize(g *Graph) (string, error) {
	var builder strings.Builder

	for _, triple := range g.All() {
		builder.WriteString(formatNTriplesTerm(triple.Subject))
		builder.WriteString(" ")
		builder.WriteString(formatNTriplesTerm(triple.Predicate))
		builder.WriteString(" ")
		builder.WriteString(formatNTriplesTerm(triple.Object))
		builder.WriteString(" .\n")
	}

	return builder.String(), nil
}

func formatNTriplesTerm(term Term) string {
	switch term.Kind {
	case KindBlank:
		return "_:" + term.Value
	case KindLiteral:
		quoted := `"` + escapeLiteralString(term.Value) + `"`
		if term.Lang != "" {
			return quoted + "@" + term.Lang
		}
		if term.Datatype != "" {
			return quoted + "^^<" + escapeIRI(term.Datatype) + ">"
		}
		return quoted
	default:
		return "<" + escapeIRI(term.Value) + ">"
	}
}
