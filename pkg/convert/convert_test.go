package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/coolbeans/mediaont/pkg/graph"
	"github.com/coolbeans/mediaont/pkg/ontology"
)

// oneTripleExtractor asserts one known triple per input file.
func oneTripleExtractor(g *graph.Graph, filename string, _ ontology.Profile, _ bool) error {
	return g.Add(
		graph.NewIRI("http://example.org/"+filename),
		graph.NewIRI(ontology.MA("title")),
		graph.NewLiteral(filename),
	)
}

func TestRunTwoFiles(t *testing.T) {
	opts := DefaultOptions()
	opts.Profile = ontology.ProfileMAOnly

	var stdout, stderr strings.Builder
	err := Run(opts, []string{"first.meta", "second.meta"}, ExtractorFunc(oneTripleExtractor), &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := stdout.String()
	if got := strings.Count(output, "ma:title"); got != 2 {
		t.Errorf("output has %d ma:title statements, want 2:\n%s", got, output)
	}
	if strings.Contains(output, "owl:imports") || strings.Contains(output, ontology.OntologyURI+">") {
		t.Errorf("owl import asserted without the flag:\n%s", output)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr output: %s", stderr.String())
	}
}

func TestRunPrologueBindings(t *testing.T) {
	var stdout, stderr strings.Builder
	err := Run(DefaultOptions(), nil, ExtractorFunc(oneTripleExtractor), &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := stdout.String()
	for _, declaration := range []string{
		"@prefix : <file://",
		"@prefix ma: <" + ontology.NamespaceMA + "> .",
		"@prefix owl: <" + ontology.NamespaceOWL + "> .",
		"@prefix xsd: <" + ontology.NamespaceXSD + "> .",
	} {
		if !strings.Contains(output, declaration) {
			t.Errorf("output missing %q:\n%s", declaration, output)
		}
	}
	if strings.Contains(output, "@prefix foaf:") || strings.Contains(output, "@prefix lexvo:") {
		t.Errorf("extended prefixes bound without the flag:\n%s", output)
	}
}

func TestRunExtendedBindsPrefixes(t *testing.T) {
	opts := DefaultOptions()
	opts.Extended = true

	var stdout, stderr strings.Builder
	// No triples use foaf or lexvo; the prefixes must still be declared.
	err := Run(opts, nil, ExtractorFunc(oneTripleExtractor), &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "@prefix foaf: <"+ontology.NamespaceFOAF+"> .") {
		t.Errorf("output missing foaf binding:\n%s", output)
	}
	if !strings.Contains(output, "@prefix lexvo: <"+ontology.NamespaceLexvo+"> .") {
		t.Errorf("output missing lexvo binding:\n%s", output)
	}
}

func TestRunOWLImport(t *testing.T) {
	opts := DefaultOptions()
	opts.OWLImport = true
	opts.Format = graph.FormatNTriples

	var stdout, stderr strings.Builder
	err := Run(opts, nil, ExtractorFunc(oneTripleExtractor), &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := stdout.String()
	typeStatement := "<" + ontology.RDFType + "> <" + ontology.OWLOntology + "> ."
	importStatement := "<" + ontology.OWLImports + "> <" + ontology.OntologyURI + "> ."

	var blankSubject string
	for _, line := range strings.Split(output, "\n") {
		if strings.HasSuffix(line, typeStatement) && strings.HasPrefix(line, "_:") {
			blankSubject = strings.Fields(line)[0]
		}
	}
	if blankSubject == "" {
		t.Fatalf("no blank node typed owl:Ontology in output:\n%s", output)
	}
	if !strings.Contains(output, blankSubject+" "+importStatement) {
		t.Errorf("blank node %s has no owl:imports of the ontology URI:\n%s", blankSubject, output)
	}
}

func TestRunExtractorErrorAborts(t *testing.T) {
	failing := ExtractorFunc(func(_ *graph.Graph, filename string, _ ontology.Profile, _ bool) error {
		return &NumericParseError{Value: "oops"}
	})

	var stdout, stderr strings.Builder
	err := Run(DefaultOptions(), []string{"bad.meta"}, failing, &stdout, &stderr)
	if err == nil {
		t.Fatal("Run() should propagate extractor errors")
	}
	if !strings.Contains(err.Error(), "bad.meta") {
		t.Errorf("error %q should name the offending file", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("no output expected on abort, got:\n%s", stdout.String())
	}
}

func TestRunUnimplemented(t *testing.T) {
	var stdout, stderr strings.Builder
	err := Run(DefaultOptions(), []string{"x.meta"}, Unimplemented{}, &stdout, &stderr)
	if err == nil {
		t.Fatal("Run() with Unimplemented extractor should fail")
	}
	if !strings.Contains(err.Error(), "not implemented") {
		t.Errorf("error = %q, want a not-implemented message", err)
	}
}

func TestFileURI(t *testing.T) {
	uri, err := FileURI("movie.meta")
	if err != nil {
		t.Fatalf("FileURI() error = %v", err)
	}
	if !strings.HasPrefix(uri, "file:///") {
		t.Errorf("FileURI() = %q, want a file URI", uri)
	}
	if !strings.HasSuffix(uri, "/movie.meta") {
		t.Errorf("FileURI() = %q, want the filename preserved", uri)
	}
}

// brokenWriter fails every write with a fixed error.
type brokenWriter struct{ err error }

func (w brokenWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestRunSerializationFailureDumpsTriples(t *testing.T) {
	writeErr := errors.New("stdout closed")

	var stderr strings.Builder
	err := Run(DefaultOptions(), []string{"movie.meta"}, ExtractorFunc(oneTripleExtractor), brokenWriter{err: writeErr}, &stderr)
	if err == nil {
		t.Fatal("Run() should fail when output cannot be written")
	}
	if !errors.Is(err, writeErr) {
		t.Errorf("error = %v, want the writer's error preserved", err)
	}

	dump := stderr.String()
	if !strings.Contains(dump, "serialization failed; dumping 1 triples") {
		t.Errorf("stderr missing dump header:\n%s", dump)
	}
	if !strings.Contains(dump, `"movie.meta"`) {
		t.Errorf("stderr dump missing the triple:\n%s", dump)
	}
}

func TestDumpTriples(t *testing.T) {
	g := graph.New()
	g.Add(graph.NewIRI("http://example.org/a"), graph.NewIRI(ontology.MA("title")), graph.NewLangLiteral("Movie", "en"))

	var out strings.Builder
	dumpTriples(&out, g)

	if !strings.Contains(out.String(), "dumping 1 triples") {
		t.Errorf("dump missing count header:\n%s", out.String())
	}
	if !strings.Contains(out.String(), `"Movie"@en`) {
		t.Errorf("dump missing triple rendering:\n%s", out.String())
	}
}
