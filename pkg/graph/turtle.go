package graph

import (
	"fmt"
	"sort"
	"strings"
)

// TurtleSerializer converts a Graph into W3C-compliant Turtle (TTL) format.
// Prefix declarations come from the graph's bindings; every bound prefix is
// declared whether or not any triple uses it.
type TurtleSerializer struct{}

// NewTurtleSerializer creates a TurtleSerializer.
func NewTurtleSerializer() *TurtleSerializer {
	return &TurtleSerializer{}
}

// Serialize converts all triples in the graph to Turtle format.
func (serializer *TurtleSerializer) Serialize(g *Graph) (string, error) {
	var builder strings.Builder

	namespaceIndex := serializer.writePrefixDeclarations(&builder, g.Prefixes())

	subjectGroups, subjectOrder := groupTriplesBySubject(g)

	for subjectIndex, subject := range subjectOrder {
		if subjectIndex > 0 {
			builder.WriteString("\n")
		}
		serializer.writeSubjectGroup(&builder, subject, subjectGroups[subject.key()], namespaceIndex)
	}

	return builder.String(), nil
}

// writePrefixDeclarations emits @prefix lines sorted by prefix and returns
// the namespace -> prefix index used for URI compaction. The empty prefix is
// declared as the base namespace.
func (serializer *TurtleSerializer) writePrefixDeclarations(builder *strings.Builder, mappings []PrefixMapping) map[string]string {
	sorted := make([]PrefixMapping, len(mappings))
	copy(sorted, mappings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Prefix < sorted[j].Prefix
	})

	namespaceIndex := make(map[string]string, len(sorted))
	for _, mapping := range sorted {
		fmt.Fprintf(builder, "@prefix %s: <%s> .\n", mapping.Prefix, mapping.Namespace)
		if _, taken := namespaceIndex[mapping.Namespace]; !taken {
			namespaceIndex[mapping.Namespace] = mapping.Prefix
		}
	}

	if len(sorted) > 0 {
		builder.WriteString("\n")
	}

	return namespaceIndex
}

// subjectGroup holds the predicate -> objects map for one subject.
type subjectGroup struct {
	predicates map[string]Term   // predicate key -> predicate term
	objects    map[string][]Term // predicate key -> objects
}

// groupTriplesBySubject organizes triples into subject -> predicate ->
// []object, keeping first-seen subject order.
func groupTriplesBySubject(g *Graph) (map[string]*subjectGroup, []Term) {
	groups := make(map[string]*subjectGroup)
	var order []Term

	for _, triple := range g.All() {
		key := triple.Subject.key()
		group, exists := groups[key]
		if !exists {
			group = &subjectGroup{
				predicates: make(map[string]Term),
				objects:    make(map[string][]Term),
			}
			groups[key] = group
			order = append(order, triple.Subject)
		}
		predicateKey := triple.Predicate.key()
		group.predicates[predicateKey] = triple.Predicate
		group.objects[predicateKey] = append(group.objects[predicateKey], triple.Object)
	}

	return groups, order
}

func (serializer *TurtleSerializer) writeSubjectGroup(
	builder *strings.Builder,
	subject Term,
	group *subjectGroup,
	namespaceIndex map[string]string,
) {
	builder.WriteString(formatResource(subject, namespaceIndex))

	sortedPredicates := sortPredicatesTypeFirst(group)

	for predicateIndex, predicateKey := range sortedPredicates {
		predicate := group.predicates[predicateKey]
		objects := group.objects[predicateKey]

		if predicateIndex == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(" ;\n    ")
		}

		builder.WriteString(formatPredicate(predicate, namespaceIndex))

		for objectIndex, object := range objects {
			if objectIndex > 0 {
				builder.WriteString(" ,\n        ")
			} else {
				builder.WriteString(" ")
			}
			builder.WriteString(formatObject(object, namespaceIndex))
		}
	}

	builder.WriteString(" .\n")
}

// formatResource formats a subject or predicate (a URI or blank node).
func formatResource(term Term, namespaceIndex map[string]string) string {
	if term.Kind == KindBlank {
		return "_:" + term.Value
	}
	if compacted, ok := compactURI(term.Value, namespaceIndex); ok {
		return compacted
	}
	return "<" + escapeIRI(term.Value) + ">"
}

// formatPredicate formats a predicate, using "a" shorthand for rdf:type.
func formatPredicate(predicate Term, namespaceIndex map[string]string) string {
	if predicate.Value == rdfType {
		return "a"
	}
	return formatResource(predicate, namespaceIndex)
}

// formatObject formats an object which may be a URI, blank node, or literal.
func formatObject(object Term, namespaceIndex map[string]string) string {
	if object.Kind != KindLiteral {
		return formatResource(object, namespaceIndex)
	}

	quoted := formatLiteral(object.Value)
	if object.Lang != "" {
		return quoted + "@" + object.Lang
	}
	if object.Datatype != "" {
		if compacted, ok := compactURI(object.Datatype, namespaceIndex); ok {
			return quoted + "^^" + compacted
		}
		return quoted + "^^<" + escapeIRI(object.Datatype) + ">"
	}
	return quoted
}

const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// compactURI replaces a full namespace URI with its prefix form. The empty
// (base) prefix only compacts when the remainder is a valid local name.
func compactURI(fullURI string, namespaceIndex map[string]string) (string, bool) {
	// Try longest namespace match first for correctness
	bestPrefix := ""
	bestNamespace := ""
	found := false
	for namespace, prefix := range namespaceIndex {
		if strings.HasPrefix(fullURI, namespace) && len(namespace) > len(bestNamespace) {
			localName := fullURI[len(namespace):]
			if isValidLocalName(localName) {
				bestPrefix = prefix
				bestNamespace = namespace
				found = true
			}
		}
	}

	if found {
		return bestPrefix + ":" + fullURI[len(bestNamespace):], true
	}
	return "", false
}

// sortPredicatesTypeFirst sorts predicate keys with rdf:type first, then
// alphabetically by predicate URI.
func sortPredicatesTypeFirst(group *subjectGroup) []string {
	keys := make([]string, 0, len(group.predicates))
	typeKey := ""

	for key, predicate := range group.predicates {
		if predicate.Value == rdfType {
			typeKey = key
			continue
		}
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return group.predicates[keys[i]].Value < group.predicates[keys[j]].Value
	})

	if typeKey != "" {
		keys = append([]string{typeKey}, keys...)
	}

	return keys
}

// isValidLocalName checks if a string is a valid Turtle local name.
func isValidLocalName(localName string) bool {
	if localName == "" {
		return false
	}
	return !strings.ContainsAny(localName, " \t\n\r<>\"{}|^`\\/#")
}

// formatLiteral wraps a lexical form in Turtle-compliant double quotes.
func formatLiteral(value string) string {
	escaped := escapeLiteralString(value)

	if strings.Contains(value, "\n") {
		return `"""` + escaped + `"""`
	}

	return `"` + escaped + `"`
}

// escapeLiteralString escapes special characters per W3C Turtle spec.
func escapeLiteralString(value string) string {
	var builder strings.Builder
	builder.Grow(len(value) + len(value)/8)

	for _, char := range value {
		switch char {
		case '\\':
			builder.WriteString(`\\`)
		case '"':
			builder.WriteString(`\"`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// escapeIRI escapes characters not allowed in IRIs within angle brackets.
func escapeIRI(iri string) string {
	var builder strings.Builder
	builder.Grow(len(iri))

	for _, char := range iri {
		switch char {
		case '<':
			builder.WriteString(`\u003C`)
		case '>':
			builder.WriteString(`\u003E`)
		case '"':
			builder.WriteString(`\u0022`)
		case ' ':
			builder.WriteString(`\u0020`)
		case '{':
			builder.WriteString(`\u007B`)
		case '}':
			builder.WriteString(`\u007D`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}
