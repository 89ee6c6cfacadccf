package convert

import (
	"fmt"
	"strconv"
	"time"

	"github.com/coolbeans/mediaont/pkg/graph"
	"github.com/coolbeans/mediaont/pkg/ontology"
)

// dateLexicalLength is the length of an ISO 8601 date-only form, YYYY-MM-DD.
// Shorter textual candidates carry no usable date; longer timestamps are
// truncated to date-only precision.
const dateLexicalLength = 10

// Factory builds RDF nodes from raw legacy metadata values. Its methods are
// pure apart from reading the run-scoped Options it was constructed with.
type Factory struct {
	language string
}

// NewFactory binds a node factory to the resolved options.
func NewFactory(opts Options) *Factory {
	return &Factory{language: opts.Language}
}

// StringLiteral wraps any string as a plain literal tagged with the
// configured language (untagged when no language was configured). Never
// fails.
func (f *Factory) StringLiteral(text string) graph.Term {
	return graph.NewLangLiteral(text, f.language)
}

// DecimalLiteral parses the value as a floating-point number and wraps it as
// an xsd:decimal literal. A non-numeric value yields a *NumericParseError,
// propagated to the caller rather than skipped.
func (f *Factory) DecimalLiteral(value string) (graph.Term, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return graph.Term{}, &NumericParseError{Value: value, Err: err}
	}
	return graph.NewTypedLiteral(formatDecimal(parsed), ontology.XSDDecimal), nil
}

// DateLiteral converts a date-like value to a literal.
//
// A time.Time is wrapped directly as a full-precision xsd:dateTime literal.
// Any other value is converted to its textual form: shorter than 10
// characters means no usable date is present and ok is false (the caller
// must omit the triple); otherwise the text is truncated to its first 10
// characters and wrapped as an xsd:date literal. Legacy sources often encode
// partial or absent dates as short placeholder strings, and truncation
// normalizes any longer timestamp to a date-only value.
func (f *Factory) DateLiteral(value any) (term graph.Term, ok bool) {
	if instant, isTime := value.(time.Time); isTime {
		return graph.NewTypedLiteral(instant.Format(time.RFC3339Nano), ontology.XSDDateTime), true
	}

	text := fmt.Sprint(value)
	if len(text) < dateLexicalLength {
		return graph.Term{}, false
	}
	return graph.NewTypedLiteral(text[:dateLexicalLength], ontology.XSDDate), true
}

// LanguageIRI converts an ISO 639-2/3 language code into a lexvo URI by
// concatenation. The code is not validated; the mapping is purely
// structural and never fails.
func (f *Factory) LanguageIRI(code string) graph.Term {
	return graph.NewIRI(ontology.NamespaceLexvo + code)
}

// formatDecimal renders a float the way strconv does for %v, keeping the
// shortest representation that round-trips.
func formatDecimal(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
