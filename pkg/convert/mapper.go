package convert

import (
	"github.com/coolbeans/mediaont/pkg/graph"
	"github.com/coolbeans/mediaont/pkg/ontology"
)

// PropertyMapper resolves which predicate a converter should use for a legacy
// field, per the active profile:
//
//	match    | ma-only | default          | original
//	---------+---------+------------------+-----------------
//	exact    | ma:prop | ma:prop          | dedicated + axiom
//	related  | ma:prop | dedicated + axiom| dedicated + axiom
//
// "dedicated + axiom" means a property in the converter's own namespace with
// one rdfs:subPropertyOf axiom to the corresponding ma: property, asserted
// into the graph the first time the property is used.
type PropertyMapper struct {
	g         *graph.Graph
	profile   ontology.Profile
	namespace string
}

// NewPropertyMapper creates a mapper for one conversion run. namespace is the
// converter's dedicated namespace for sub-properties.
func NewPropertyMapper(g *graph.Graph, profile ontology.Profile, namespace string) *PropertyMapper {
	return &PropertyMapper{
		g:         g,
		profile:   profile,
		namespace: namespace,
	}
}

// Predicate returns the predicate to use for a field whose closest Media
// Ontology property is maLocal. dedicatedLocal names the sub-property in the
// converter's namespace; when empty, maLocal is reused as the local name.
// When the profile calls for a dedicated property, the subPropertyOf axiom is
// asserted as a side effect.
func (m *PropertyMapper) Predicate(match ontology.Match, maLocal, dedicatedLocal string) graph.Term {
	maProperty := graph.NewIRI(ontology.MA(maLocal))

	if !m.dedicated(match) {
		return maProperty
	}

	if dedicatedLocal == "" {
		dedicatedLocal = maLocal
	}
	dedicated := graph.NewIRI(m.namespace + dedicatedLocal)

	// Add is idempotent, so the axiom lands once per property.
	m.g.AddTriple(graph.Triple{
		Subject:   dedicated,
		Predicate: graph.NewIRI(ontology.RDFSSubPropertyOf),
		Object:    maProperty,
	})

	return dedicated
}

// dedicated reports whether the profile calls for a dedicated sub-property
// for the given match strength.
func (m *PropertyMapper) dedicated(match ontology.Match) bool {
	switch m.profile {
	case ontology.ProfileMAOnly:
		return false
	case ontology.ProfileOriginal:
		return true
	default:
		return match == ontology.MatchRelated
	}
}
