package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// TermKind distinguishes the three kinds of RDF node.
type TermKind int

const (
	// KindIRI is a URI reference.
	KindIRI TermKind = iota

	// KindBlank is a blank node.
	KindBlank

	// KindLiteral is a literal with an optional language tag or datatype.
	KindLiteral
)

// Term is an RDF node: a URI reference, a blank node, or a literal.
// The zero value is an empty IRI, which acts as a wildcard in patterns.
type Term struct {
	Kind TermKind

	// Value is the URI for KindIRI, the identifier (without the "_:" sigil)
	// for KindBlank, and the lexical form for KindLiteral.
	Value string

	// Lang is the language tag of a plain literal, if any.
	Lang string

	// Datatype is the datatype URI of a typed literal, if any. A literal
	// carries a language tag or a datatype, never both.
	Datatype string
}

// NewIRI creates a URI reference term.
func NewIRI(uri string) Term {
	return Term{Kind: KindIRI, Value: uri}
}

// NewBlankNode creates a blank node with a fresh unique identifier.
func NewBlankNode() Term {
	return Term{Kind: KindBlank, Value: "b" + uuid.NewString()}
}

// NewLiteral creates a plain literal without language tag or datatype.
func NewLiteral(lexical string) Term {
	return Term{Kind: KindLiteral, Value: lexical}
}

// NewLangLiteral creates a plain literal. An empty tag produces an untagged
// literal.
func NewLangLiteral(lexical, lang string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Lang: lang}
}

// NewTypedLiteral creates a literal with an explicit datatype URI.
func NewTypedLiteral(lexical, datatype string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Datatype: datatype}
}

// IsZero reports whether the term is the zero value (used as a wildcard).
func (t Term) IsZero() bool {
	return t == Term{}
}

// Equals checks structural equality of two terms.
func (t Term) Equals(other Term) bool {
	return t == other
}

// String returns a debug-readable rendering of the term: <uri> for URI
// references, _:id for blank nodes, and a quoted form for literals.
func (t Term) String() string {
	switch t.Kind {
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		if t.Lang != "" {
			return fmt.Sprintf("%q@%s", t.Value, t.Lang)
		}
		if t.Datatype != "" {
			return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
		}
		return fmt.Sprintf("%q", t.Value)
	default:
		return "<" + t.Value + ">"
	}
}

// key returns a canonical map key for indexing. The kind discriminant keeps
// a literal "x" distinct from an IRI "x".
func (t Term) key() string {
	return fmt.Sprintf("%d\x00%s\x00%s\x00%s", t.Kind, t.Value, t.Lang, t.Datatype)
}
