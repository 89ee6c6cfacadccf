package graph

import "fmt"

// Triple represents an RDF Subject-Predicate-Object statement.
// In the media metadata domain:
//   - Subject: typically the file URI of a media resource
//   - Predicate: a Media Ontology property (e.g. ma:title)
//   - Object: another URI, a blank node, or a literal value
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple creates a new triple with the given components.
func NewTriple(subject, predicate, object Term) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// Equals checks if two triples have identical components.
func (t Triple) Equals(other Triple) bool {
	return t.Subject.Equals(other.Subject) &&
		t.Predicate.Equals(other.Predicate) &&
		t.Object.Equals(other.Object)
}

// String returns a human-readable representation of the triple, used by the
// diagnostic dump when serialization fails.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s", t.Subject, t.Predicate, t.Object)
}

// NTriples returns the triple as an N-Triples statement.
func (t Triple) NTriples() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// IsValid reports whether the triple is well formed: no empty components,
// a URI or blank node subject, and a URI predicate.
func (t Triple) IsValid() bool {
	if t.Subject.Value == "" || t.Predicate.Value == "" {
		return false
	}
	if t.Subject.Kind == KindLiteral || t.Predicate.Kind != KindIRI {
		return false
	}
	return t.Object.Kind == KindLiteral || t.Object.Value != ""
}

// Pattern represents a pattern for matching triples. Zero-value terms act as
// wildcards that match any value.
type Pattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Matches checks if a triple matches this pattern.
func (p Pattern) Matches(t Triple) bool {
	if !p.Subject.IsZero() && !p.Subject.Equals(t.Subject) {
		return false
	}
	if !p.Predicate.IsZero() && !p.Predicate.Equals(t.Predicate) {
		return false
	}
	if !p.Object.IsZero() && !p.Object.Equals(t.Object) {
		return false
	}
	return true
}
