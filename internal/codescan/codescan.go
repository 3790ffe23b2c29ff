// Package codescan extracts declared identifiers from fenced code blocks
// embedded in a concept. The code-domain agent uses them as extra
// keywords so its prompts reference the names the author actually wrote.
package codescan

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// langSpec pairs a grammar with the node kinds whose "name" field names
// a declaration.
type langSpec struct {
	language  *tree_sitter.Language
	declKinds map[string]bool
}

// Scanner parses fenced code blocks with tree-sitter grammars.
// A new tree-sitter parser is created per block, so Scan calls are safe
// for sequential use.
type Scanner struct {
	specs map[string]langSpec
}

// NewScanner creates a Scanner with Go, Python, Rust, and TypeScript
// grammars registered under their common fence tags.
func NewScanner() *Scanner {
	goSpec := langSpec{
		language: tree_sitter.NewLanguage(tree_sitter_go.Language()),
		declKinds: map[string]bool{
			"function_declaration": true,
			"method_declaration":   true,
			"type_spec":            true,
		},
	}
	pySpec := langSpec{
		language: tree_sitter.NewLanguage(tree_sitter_python.Language()),
		declKinds: map[string]bool{
			"function_definition": true,
			"class_definition":    true,
		},
	}
	rsSpec := langSpec{
		language: tree_sitter.NewLanguage(tree_sitter_rust.Language()),
		declKinds: map[string]bool{
			"function_item": true,
			"struct_item":   true,
			"enum_item":     true,
			"trait_item":    true,
		},
	}
	tsSpec := langSpec{
		language: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		declKinds: map[string]bool{
			"function_declaration":  true,
			"class_declaration":     true,
			"interface_declaration": true,
		},
	}

	return &Scanner{
		specs: map[string]langSpec{
			"go":         goSpec,
			"golang":     goSpec,
			"python":     pySpec,
			"py":         pySpec,
			"rust":       rsSpec,
			"rs":         rsSpec,
			"typescript": tsSpec,
			"ts":         tsSpec,
			"tsx":        tsSpec,
		},
	}
}

// Scan returns the declared identifiers found in the concept's fenced
// code blocks, deduplicated in first-appearance order. Blocks in
// unknown languages and unparseable blocks are skipped.
func (s *Scanner) Scan(concept string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, block := range fencedBlocks(concept) {
		spec, ok := s.specs[block.lang]
		if !ok {
			continue
		}
		for _, name := range s.declarations(spec, []byte(block.source)) {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func (s *Scanner) declarations(spec langSpec, source []byte) []string {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(spec.language); err != nil {
		return nil
	}
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var names []string
	cursor := tree.RootNode().Walk()
	defer cursor.Close()
	collect(cursor, source, spec.declKinds, &names)
	return names
}

// collect walks the tree depth-first, appending the name of every
// declaration node it visits.
func collect(cursor *tree_sitter.TreeCursor, source []byte, declKinds map[string]bool, names *[]string) {
	node := cursor.Node()
	if declKinds[node.Kind()] {
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			if name := nameNode.Utf8Text(source); name != "" {
				*names = append(*names, name)
			}
		}
	}

	if cursor.GotoFirstChild() {
		collect(cursor, source, declKinds, names)
		for cursor.GotoNextSibling() {
			collect(cursor, source, declKinds, names)
		}
		cursor.GotoParent()
	}
}

type codeBlock struct {
	lang   string
	source string
}

// fencedBlocks splits text on ``` fences and returns tagged blocks.
func fencedBlocks(text string) []codeBlock {
	var blocks []codeBlock
	parts := strings.Split(text, "```")

	// Odd-indexed parts are inside fences; the first fence line is the tag.
	for i := 1; i < len(parts); i += 2 {
		body := parts[i]
		newline := strings.IndexByte(body, '\n')
		if newline < 0 {
			continue
		}
		lang := strings.ToLower(strings.TrimSpace(body[:newline]))
		source := body[newline+1:]
		if lang == "" || source == "" {
			continue
		}
		blocks = append(blocks, codeBlock{lang: lang, source: source})
	}
	return blocks
}
