package convert

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/coolbeans/mediaont/pkg/graph"
	"github.com/coolbeans/mediaont/pkg/ontology"
)

// Run drives one conversion: it builds an empty graph, binds the namespace
// prefixes, optionally asserts the ontology import, invokes the extractor for
// each input file strictly in the order given, and serializes the result to
// stdout in the configured format.
//
// On serialization failure the full triple set is dumped in debug-readable
// form to stderr before the error is returned unchanged.
func Run(opts Options, files []string, extractor Extractor, stdout, stderr io.Writer) error {
	g := graph.New()

	base, err := workingDirectoryURI()
	if err != nil {
		return err
	}
	g.Bind("", base)
	g.Bind("ma", ontology.NamespaceMA)
	g.Bind("owl", ontology.NamespaceOWL)
	g.Bind("xsd", ontology.NamespaceXSD)

	if opts.Extended {
		g.Bind("foaf", ontology.NamespaceFOAF)
		g.Bind("lexvo", ontology.NamespaceLexvo)
	}

	if opts.OWLImport {
		ontologyNode := graph.NewBlankNode()
		g.Add(ontologyNode, graph.NewIRI(ontology.RDFType), graph.NewIRI(ontology.OWLOntology))
		g.Add(ontologyNode, graph.NewIRI(ontology.OWLImports), graph.NewIRI(ontology.OntologyURI))
	}

	for _, filename := range files {
		if err := extractor.FillGraph(g, filename, opts.Profile, opts.Extended); err != nil {
			return fmt.Errorf("extracting metadata from %s: %w", filename, err)
		}
	}

	if err := graph.Serialize(stdout, g, opts.Format); err != nil {
		dumpTriples(stderr, g)
		return err
	}
	return nil
}

// FileURI converts a filename into a file URI usable as a triple subject.
// Relative names are resolved against the current working directory.
func FileURI(filename string) (string, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", filename, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// workingDirectoryURI derives the base namespace bound to the empty prefix:
// the file URI of the current working directory, with a trailing slash.
func workingDirectoryURI() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	uri := (&url.URL{Scheme: "file", Path: filepath.ToSlash(wd)}).String()
	return uri + "/", nil
}

// dumpTriples writes every triple in debug-readable form, one per line.
// Diagnostics only; the serialization error itself still propagates.
func dumpTriples(w io.Writer, g *graph.Graph) {
	fmt.Fprintf(w, "serialization failed; dumping %d triples:\n", g.Len())
	for _, triple := range g.All() {
		fmt.Fprintf(w, "  %s\n", triple)
	}
}
