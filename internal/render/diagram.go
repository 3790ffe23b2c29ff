// Package render turns model-produced step descriptions into Mermaid
// diagrams, returned base64-encoded as opaque diagram references.
package render

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// StepEdge is a directed "from depends before to" relationship between
// two next steps.
type StepEdge struct {
	From string
	To   string
}

// ParseEdges extracts "A -> B" relationships from completion text, one
// per line. Lines without an arrow are skipped; so are edges with an
// empty endpoint.
func ParseEdges(text string) []StepEdge {
	var edges []StepEdge
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "->") {
			continue
		}
		parts := strings.SplitN(line, "->", 2)
		from := strings.TrimSpace(parts[0])
		to := strings.TrimSpace(parts[1])
		if from == "" || to == "" {
			continue
		}
		edges = append(edges, StepEdge{From: from, To: to})
	}
	return edges
}

// Mermaid builds a Mermaid graph TD document from step edges. Node IDs
// are assigned in first-appearance order so output is deterministic.
func Mermaid(edges []StepEdge) string {
	nodeIDs := make(map[string]string)
	var order []string
	getID := func(label string) string {
		if id, ok := nodeIDs[label]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", len(nodeIDs))
		nodeIDs[label] = id
		order = append(order, label)
		return id
	}

	// Assign IDs before emitting so declarations precede arrows.
	for _, e := range edges {
		getID(e.From)
		getID(e.To)
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for _, label := range order {
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", nodeIDs[label], escapeLabel(label)))
	}
	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("  %s --> %s\n", nodeIDs[e.From], nodeIDs[e.To]))
	}
	return sb.String()
}

// StepsDiagram parses completion text and returns the base64-encoded
// Mermaid document, or "" when no edges could be extracted.
func StepsDiagram(text string) string {
	edges := ParseEdges(text)
	if len(edges) == 0 {
		return ""
	}
	doc := Mermaid(edges)
	return base64.StdEncoding.EncodeToString([]byte(doc))
}

// DecodeDiagram reverses StepsDiagram: it decodes a base64 Mermaid
// document back into step edges. Malformed documents yield an error;
// unknown node references are skipped.
func DecodeDiagram(encoded string) ([]StepEdge, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("render: decode diagram: %w", err)
	}

	labels := make(map[string]string)
	var edges []StepEdge
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "-->"):
			parts := strings.SplitN(line, "-->", 2)
			from, okFrom := labels[strings.TrimSpace(parts[0])]
			to, okTo := labels[strings.TrimSpace(parts[1])]
			if okFrom && okTo {
				edges = append(edges, StepEdge{From: from, To: to})
			}
		case strings.Contains(line, "[\""):
			id, rest, found := strings.Cut(line, "[\"")
			if !found {
				continue
			}
			label, _, found := strings.Cut(rest, "\"]")
			if !found {
				continue
			}
			labels[strings.TrimSpace(id)] = label
		}
	}
	return edges, nil
}

// escapeLabel strips characters that break Mermaid node labels.
func escapeLabel(label string) string {
	replacer := strings.NewReplacer("\"", "'", "[", "(", "]", ")")
	return replacer.Replace(label)
}
