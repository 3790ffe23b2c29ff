package render

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEdges(t *testing.T) {
	text := "Here is the plan:\n" +
		"Research market -> Build prototype\n" +
		"this line has no arrow\n" +
		"Build prototype -> Launch beta\n" +
		" -> dangling target\n" +
		"dangling source -> \n"

	edges := ParseEdges(text)
	require.Len(t, edges, 2)
	assert.Equal(t, StepEdge{From: "Research market", To: "Build prototype"}, edges[0])
	assert.Equal(t, StepEdge{From: "Build prototype", To: "Launch beta"}, edges[1])
}

func TestParseEdgesEmpty(t *testing.T) {
	assert.Empty(t, ParseEdges("no arrows here\njust prose"))
	assert.Empty(t, ParseEdges(""))
}

func TestMermaidDeterministicOrder(t *testing.T) {
	edges := []StepEdge{
		{From: "A", To: "B"},
		{From: "B", To: "C"},
		{From: "A", To: "C"},
	}

	doc := Mermaid(edges)
	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	require.Equal(t, "graph TD", lines[0])
	assert.Equal(t, `  N0["A"]`, lines[1])
	assert.Equal(t, `  N1["B"]`, lines[2])
	assert.Equal(t, `  N2["C"]`, lines[3])
	assert.Equal(t, "  N0 --> N1", lines[4])
	assert.Equal(t, "  N1 --> N2", lines[5])
	assert.Equal(t, "  N0 --> N2", lines[6])
}

func TestMermaidEscapesLabels(t *testing.T) {
	doc := Mermaid([]StepEdge{{From: `Say "hi" [fast]`, To: "done"}})
	assert.Contains(t, doc, `N0["Say 'hi' (fast)"]`)
}

func TestStepsDiagram(t *testing.T) {
	encoded := StepsDiagram("design -> build\nbuild -> test")
	require.NotEmpty(t, encoded)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(decoded), "graph TD\n"))
	assert.Contains(t, string(decoded), "N0 --> N1")
}

func TestStepsDiagramNoEdges(t *testing.T) {
	assert.Empty(t, StepsDiagram("nothing structured"))
}

func TestDecodeDiagramRoundTrip(t *testing.T) {
	original := []StepEdge{
		{From: "design schema", To: "build API"},
		{From: "build API", To: "write docs"},
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(Mermaid(original)))

	decoded, err := DecodeDiagram(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeDiagramInvalidBase64(t *testing.T) {
	_, err := DecodeDiagram("not base64!!")
	assert.Error(t, err)
}
