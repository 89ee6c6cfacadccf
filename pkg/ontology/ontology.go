// Package ontology defines the namespaces, classes, and properties of the
// W3C Media Ontology for Media Resources (http://www.w3.org/TR/mediaont-10/),
// together with the conversion profiles that control how legacy metadata is
// mapped onto it.
package ontology

import "fmt"

// OntologyURI is the canonical URI of the Media Ontology, used by the
// optional owl:imports statement.
const OntologyURI = "http://www.w3.org/ns/ma-ont"

// Namespace URIs bound in generated output.
const (
	// NamespaceMA is the Media Ontology namespace.
	NamespaceMA = "http://www.w3.org/ns/ma-ont#"

	// NamespaceRDF is the standard RDF namespace.
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NamespaceRDFS is the RDF Schema namespace.
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NamespaceOWL is the Web Ontology Language namespace.
	NamespaceOWL = "http://www.w3.org/2002/07/owl#"

	// NamespaceSKOS is the Simple Knowledge Organization System namespace.
	NamespaceSKOS = "http://www.w3.org/2004/02/skos/core#"

	// NamespaceXSD is the XML Schema namespace for datatypes.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"

	// NamespaceFOAF is the Friend of a Friend namespace, used in extended mode.
	NamespaceFOAF = "http://xmlns.com/foaf/0.1/"

	// NamespaceLexvo is the lexvo.org namespace of ISO 639-3 language URIs,
	// used in extended mode.
	NamespaceLexvo = "http://lexvo.org/id/iso639-3/"
)

// Frequently asserted term URIs.
const (
	RDFType            = NamespaceRDF + "type"
	RDFSLabel          = NamespaceRDFS + "label"
	RDFSSubPropertyOf  = NamespaceRDFS + "subPropertyOf"
	OWLOntology        = NamespaceOWL + "Ontology"
	OWLImports         = NamespaceOWL + "imports"
	XSDDecimal         = NamespaceXSD + "decimal"
	XSDDate            = NamespaceXSD + "date"
	XSDDateTime        = NamespaceXSD + "dateTime"
	FOAFName           = NamespaceFOAF + "name"
	MAMediaResource    = NamespaceMA + "MediaResource"
	MAPerson           = NamespaceMA + "Person"
	MAHasLanguage      = NamespaceMA + "hasLanguage"
)

// MA returns the full URI of a Media Ontology term.
func MA(local string) string {
	return NamespaceMA + local
}

// Profile selects how generated RDF relates legacy fields to the Media
// Ontology vocabulary.
type Profile string

const (
	// ProfileDefault generates ma: properties for exact matches and dedicated
	// sub-properties for related matches.
	ProfileDefault Profile = "default"

	// ProfileMAOnly generates only ma: properties, approximating related
	// matches with the nearest ma: property.
	ProfileMAOnly Profile = "ma-only"

	// ProfileOriginal always generates dedicated properties, with
	// rdfs:subPropertyOf axioms to the corresponding ma: property.
	ProfileOriginal Profile = "original"
)

// Profiles lists the accepted profile names in declaration order.
var Profiles = []Profile{ProfileMAOnly, ProfileDefault, ProfileOriginal}

// ParseProfile validates a profile name from the command line.
func ParseProfile(name string) (Profile, error) {
	switch Profile(name) {
	case ProfileMAOnly, ProfileDefault, ProfileOriginal:
		return Profile(name), nil
	}
	return "", fmt.Errorf("unknown profile %q (must be one of ma-only, default, original)", name)
}

// Match describes how closely a legacy field corresponds to a Media Ontology
// property.
type Match string

const (
	// MatchExact means the legacy field carries exactly the semantics of the
	// ma: property.
	MatchExact Match = "exact"

	// MatchRelated means the legacy field only approximates the ma: property.
	MatchRelated Match = "related"
)

// ParseMatch validates a match strength from a mapping file.
func ParseMatch(name string) (Match, error) {
	switch Match(name) {
	case MatchExact, MatchRelated:
		return Match(name), nil
	}
	return "", fmt.Errorf("unknown match strength %q (must be exact or related)", name)
}
