// Package kvmeta is the reference format converter shipped with the driver:
// it extracts metadata from sidecar "field: value" text files, one field per
// line, with # comments and blank lines ignored. It exists so the mediaont
// binary works end-to-end and doubles as the worked example for writing
// converters against the convert package.
package kvmeta

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/coolbeans/mediaont/pkg/convert"
	"github.com/coolbeans/mediaont/pkg/graph"
	"github.com/coolbeans/mediaont/pkg/mapping"
	"github.com/coolbeans/mediaont/pkg/ontology"
)

// Namespace is the dedicated namespace for kvmeta sub-properties, used by the
// default and original profiles.
const Namespace = "https://mediaont.dev/kvmeta#"

// FormatID identifies this converter's mapping in a registry.
const FormatID = "kvmeta"

// DefaultMapping returns the built-in field table. A mapping file with
// format_id "kvmeta" loaded into a registry overrides it.
func DefaultMapping() *mapping.FormatMapping {
	return &mapping.FormatMapping{
		FormatID:    FormatID,
		Version:     "1",
		Description: "sidecar key/value media metadata",
		Namespace:   Namespace,
		Fields: []mapping.FieldMapping{
			{Field: "title", Property: "title", Match: ontology.MatchExact, Kind: mapping.KindString},
			{Field: "description", Property: "description", Match: ontology.MatchExact, Kind: mapping.KindString},
			{Field: "comment", Property: "description", Match: ontology.MatchRelated, Kind: mapping.KindString, Related: "comment"},
			{Field: "genre", Property: "hasGenre", Match: ontology.MatchRelated, Kind: mapping.KindString, Related: "genre"},
			{Field: "date", Property: "date", Match: ontology.MatchExact, Kind: mapping.KindDate},
			{Field: "duration", Property: "duration", Match: ontology.MatchExact, Kind: mapping.KindDecimal},
			{Field: "rating", Property: "averageRating", Match: ontology.MatchRelated, Kind: mapping.KindDecimal, Related: "rating"},
			{Field: "language", Property: "hasLanguage", Match: ontology.MatchExact, Kind: mapping.KindLanguage},
			{Field: "creator", Property: "hasCreator", Match: ontology.MatchExact, Kind: mapping.KindPerson},
		},
	}
}

// Extractor converts kvmeta sidecar files. It is bound to the resolved
// options of one conversion run.
type Extractor struct {
	factory *convert.Factory
	mapping *mapping.FormatMapping
}

// NewExtractor creates an Extractor using the built-in field table.
func NewExtractor(opts convert.Options) *Extractor {
	return NewExtractorWithMapping(opts, DefaultMapping())
}

// NewExtractorWithMapping creates an Extractor with an explicit field table,
// typically one loaded from a mapping registry.
func NewExtractorWithMapping(opts convert.Options, table *mapping.FormatMapping) *Extractor {
	return &Extractor{
		factory: convert.NewFactory(opts),
		mapping: table,
	}
}

// FillGraph implements convert.Extractor. Unknown fields are ignored; a
// non-numeric decimal field aborts the conversion (this converter's policy
// for the factory's propagated parse error); short date placeholders are
// skipped without a triple.
func (e *Extractor) FillGraph(g *graph.Graph, filename string, profile ontology.Profile, extended bool) error {
	fields, err := parseFile(filename)
	if err != nil {
		return err
	}

	subjectURI, err := convert.FileURI(filename)
	if err != nil {
		return err
	}
	subject := graph.NewIRI(subjectURI)
	mapper := convert.NewPropertyMapper(g, profile, e.mapping.Namespace)

	if err := g.Add(subject, graph.NewIRI(ontology.RDFType), graph.NewIRI(ontology.MAMediaResource)); err != nil {
		return err
	}

	for _, field := range fields {
		entry, known := e.mapping.Lookup(field.name)
		if !known {
			continue
		}

		predicate := mapper.Predicate(entry.Match, entry.Property, entry.Related)

		switch entry.Kind {
		case mapping.KindString:
			if err := g.Add(subject, predicate, e.factory.StringLiteral(field.value)); err != nil {
				return err
			}

		case mapping.KindDecimal:
			literal, err := e.factory.DecimalLiteral(field.value)
			if err != nil {
				return fmt.Errorf("field %q: %w", field.name, err)
			}
			if err := g.Add(subject, predicate, literal); err != nil {
				return err
			}

		case mapping.KindDate:
			literal, ok := e.factory.DateLiteral(field.value)
			if !ok {
				continue // no usable date present
			}
			if err := g.Add(subject, predicate, literal); err != nil {
				return err
			}

		case mapping.KindLanguage:
			if err := g.Add(subject, predicate, e.factory.StringLiteral(field.value)); err != nil {
				return err
			}
			if extended {
				if err := g.Add(subject, graph.NewIRI(ontology.MAHasLanguage), e.factory.LanguageIRI(languageCode(field.value))); err != nil {
					return err
				}
			}

		case mapping.KindPerson:
			person := graph.NewBlankNode()
			if err := g.Add(subject, predicate, person); err != nil {
				return err
			}
			if err := g.Add(person, graph.NewIRI(ontology.RDFType), graph.NewIRI(ontology.MAPerson)); err != nil {
				return err
			}

			nameProperty := ontology.RDFSLabel
			if extended {
				nameProperty = ontology.FOAFName
			}
			if err := g.Add(person, graph.NewIRI(nameProperty), e.factory.StringLiteral(field.value)); err != nil {
				return err
			}
		}
	}

	return nil
}

// languageCode normalizes a legacy language value to ISO 639-3 where
// possible, falling back to the raw value (the lexvo mapping itself never
// fails).
func languageCode(value string) string {
	if iso3, err := convert.ISO3(value); err == nil {
		return iso3
	}
	return value
}

// field is one parsed "name: value" line.
type field struct {
	name  string
	value string
}

// parseFile reads a sidecar file into its fields, preserving line order.
// Field names are case-insensitive.
func parseFile(filename string) ([]field, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer file.Close()

	var fields []field
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("%s:%d: not a \"field: value\" line", filename, lineNumber)
		}

		fields = append(fields, field{
			name:  strings.ToLower(strings.TrimSpace(name)),
			value: strings.TrimSpace(value),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	return fields, nil
}
