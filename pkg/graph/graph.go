// Package graph provides the in-memory RDF graph that conversion callbacks
// fill with triples, plus its Turtle, N-Triples, and JSON-LD serializers.
package graph

import (
	"fmt"
	"sync"
)

// PrefixMapping associates a short prefix label with its full namespace URI.
// The empty prefix denotes the base namespace.
type PrefixMapping struct {
	Prefix    string
	Namespace string
}

// Graph is an in-memory collection of RDF triples together with the prefix
// bindings emitted in serialized output. Insertion order is preserved; Add is
// idempotent.
type Graph struct {
	mu sync.RWMutex

	triples []Triple
	index   map[string]bool // subject\x00predicate\x00object key -> exists

	prefixes []PrefixMapping
	bound    map[string]int // prefix -> position in prefixes
}

// New creates an empty graph with no prefix bindings.
func New() *Graph {
	return &Graph{
		index: make(map[string]bool),
		bound: make(map[string]int),
	}
}

// Bind associates a prefix with a namespace URI. Rebinding an existing prefix
// replaces its namespace. Bound prefixes are declared in serialized output
// whether or not any triple uses them.
func (g *Graph) Bind(prefix, namespace string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if at, ok := g.bound[prefix]; ok {
		g.prefixes[at].Namespace = namespace
		return
	}
	g.bound[prefix] = len(g.prefixes)
	g.prefixes = append(g.prefixes, PrefixMapping{Prefix: prefix, Namespace: namespace})
}

// Prefixes returns the prefix bindings in binding order.
func (g *Graph) Prefixes() []PrefixMapping {
	g.mu.RLock()
	defer g.mu.RUnlock()

	mappings := make([]PrefixMapping, len(g.prefixes))
	copy(mappings, g.prefixes)
	return mappings
}

// Add inserts a triple into the graph. Returns an error for malformed
// triples; adding an existing triple is a no-op.
func (g *Graph) Add(subject, predicate, object Term) error {
	return g.AddTriple(Triple{Subject: subject, Predicate: predicate, Object: object})
}

// AddTriple inserts a Triple into the graph.
func (g *Graph) AddTriple(triple Triple) error {
	if !triple.IsValid() {
		return fmt.Errorf("malformed triple %s", triple)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := tripleKey(triple)
	if g.index[key] {
		return nil // already present, idempotent
	}
	g.index[key] = true
	g.triples = append(g.triples, triple)
	return nil
}

// Contains reports whether the exact triple is present.
func (g *Graph) Contains(triple Triple) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.index[tripleKey(triple)]
}

// Find returns all triples matching the pattern, in insertion order.
// Zero-value terms act as wildcards.
func (g *Graph) Find(pattern Pattern) []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var matched []Triple
	for _, triple := range g.triples {
		if pattern.Matches(triple) {
			matched = append(matched, triple)
		}
	}
	return matched
}

// All returns every triple in insertion order.
func (g *Graph) All() []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()

	triples := make([]Triple, len(g.triples))
	copy(triples, g.triples)
	return triples
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.triples)
}

func tripleKey(t Triple) string {
	return t.Subject.key() + "\x01" + t.Predicate.key() + "\x01" + t.Object.key()
}
