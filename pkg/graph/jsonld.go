package graph

import (
	"encoding/json"
)

// JSONLDContext represents a JSON-LD @context document.
type JSONLDContext map[string]interface{}

// JSONLDSerializer converts a Graph into compact JSON-LD. The @context is
// built from the graph's prefix bindings; subjects become @graph nodes with
// their properties compacted to prefixed names where possible.
type JSONLDSerializer struct{}

// NewJSONLDSerializer creates a JSONLDSerializer.
func NewJSONLDSerializer() *JSONLDSerializer {
	return &JSONLDSerializer{}
}

// BuildContext creates the JSON-LD @context document from the graph's prefix
// bindings. The empty (base) prefix becomes @base.
func (serializer *JSONLDSerializer) BuildContext(g *Graph) JSONLDContext {
	context := make(JSONLDContext)

	for _, mapping := range g.Prefixes() {
		if mapping.Prefix == "" {
			context["@base"] = mapping.Namespace
			continue
		}
		context[mapping.Prefix] = mapping.Namespace
	}

	return context
}

// Serialize converts the graph to an indented compact JSON-LD document.
func (serializer *JSONLDSerializer) Serialize(g *Graph) (string, error) {
	namespaceIndex := make(map[string]string)
	for _, mapping := range g.Prefixes() {
		if mapping.Prefix == "" {
			continue
		}
		if _, taken := namespaceIndex[mapping.Namespace]; !taken {
			namespaceIndex[mapping.Namespace] = mapping.Prefix
		}
	}

	groups, order := groupTriplesBySubject(g)

	nodes := make([]map[string]interface{}, 0, len(order))
	for _, subject := range order {
		group := groups[subject.key()]
		node := map[string]interface{}{
			"@id": jsonldID(subject),
		}

		for _, predicateKey := range sortPredicatesTypeFirst(group) {
			predicate := group.predicates[predicateKey]
			objects := group.objects[predicateKey]

			if predicate.Value == rdfType {
				types := make([]string, 0, len(objects))
				for _, object := range objects {
					types = append(types, compactOrFull(object.Value, namespaceIndex))
				}
				node["@type"] = flattenSingle(types)
				continue
			}

			values := make([]interface{}, 0, len(objects))
			for _, object := range objects {
				values = append(values, jsonldObject(object, namespaceIndex))
			}
			key := compactOrFull(predicate.Value, namespaceIndex)
			if len(values) == 1 {
				node[key] = values[0]
			} else {
				node[key] = values
			}
		}

		nodes = append(nodes, node)
	}

	document := map[string]interface{}{
		"@context": serializer.BuildContext(g),
		"@graph":   nodes,
	}

	rendered, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return "", err
	}
	return string(rendered) + "\n", nil
}

func jsonldID(term Term) string {
	if term.Kind == KindBlank {
		return "_:" + term.Value
	}
	return term.Value
}

func jsonldObject(object Term, namespaceIndex map[string]string) interface{} {
	if object.Kind != KindLiteral {
		return map[string]interface{}{"@id": jsonldID(object)}
	}
	if object.Lang != "" {
		return map[string]interface{}{
			"@value":    object.Value,
			"@language": object.Lang,
		}
	}
	if object.Datatype != "" {
		return map[string]interface{}{
			"@value": object.Value,
			"@type":  compactOrFull(object.Datatype, namespaceIndex),
		}
	}
	return object.Value
}

func compactOrFull(uri string, namespaceIndex map[string]string) string {
	if compacted, ok := compactURI(uri, namespaceIndex); ok {
		return compacted
	}
	return uri
}

func flattenSingle(values []string) interface{} {
	if len(values) == 1 {
		return values[0]
	}
	return values
}
