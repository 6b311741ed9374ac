package scan

import (
	"bytes"
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// ExtractImports returns the module specifiers of all import statements in
// source, in order of appearance, duplicates included. Both
// `import x from "m"` and side-effect imports (`import "m"`) count;
// require calls and re-exports do not.
//
// The TSX grammar is used for every file: it is a superset that also parses
// plain JavaScript and TypeScript. Sources that do not contain the word
// "import" are not parsed at all.
func ExtractImports(ctx context.Context, source []byte) ([]string, error) {
	if !bytes.Contains(source, []byte("import")) {
		return nil, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsx.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, nil
	}

	var specs []string
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() != "import_statement" {
			continue
		}
		if spec, ok := importSource(child, source); ok {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

// importSource returns the string fragment of an import statement's source.
// Empty specifiers have no fragment and are skipped.
func importSource(stmt *sitter.Node, source []byte) (string, bool) {
	for i := 0; i < int(stmt.ChildCount()); i++ {
		child := stmt.Child(i)
		if child.Type() != "string" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			frag := child.Child(j)
			if frag.Type() == "string_fragment" {
				return frag.Content(source), true
			}
		}
	}
	return "", false
}
