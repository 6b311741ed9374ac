package graph

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/modgraph/pkg/errors"
)

const sampleDoc = `{
  "title": "web",
  "nodes": [
    {"id": "a", "node_type": "INTERNAL", "label": "App.tsx", "path_absolute": "/repo/src/App.tsx", "path_relative": "src/App.tsx"},
    {"id": "r", "node_type": "EXTERNAL", "label": "react", "path_absolute": "", "path_relative": ""}
  ],
  "edges": [
    {"id": "e1", "source_id": "a", "target_id": "r"}
  ]
}`

func TestReadGraph(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	if g.Title != "web" {
		t.Errorf("Title = %q, want web", g.Title)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges, want 2, 1", len(g.Nodes), len(g.Edges))
	}

	app := g.Nodes[0]
	if !app.IsInternal() || app.PathRelative != "src/App.tsx" || app.PathAbsolute != "/repo/src/App.tsx" {
		t.Errorf("unexpected internal node: %+v", app)
	}
	if !g.Nodes[1].IsExternal() {
		t.Errorf("Nodes[1].Kind = %q, want EXTERNAL", g.Nodes[1].Kind)
	}

	e := g.Edges[0]
	if e.ID != "e1" || e.SourceID != "a" || e.TargetID != "r" {
		t.Errorf("unexpected edge: %+v", e)
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"nodes": [`},
		{"unknown kind", `{"nodes": [{"id": "a", "node_type": "BUILTIN"}]}`},
		{"kind not a string", `{"nodes": [{"id": "a", "node_type": 3}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestKindCaseInsensitive(t *testing.T) {
	var n Node
	if err := json.Unmarshal([]byte(`{"id": "x", "node_type": "external"}`), &n); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if n.Kind != KindExternal {
		t.Errorf("Kind = %q, want EXTERNAL", n.Kind)
	}
}

func TestWriteReadFile(t *testing.T) {
	g := Graph{
		Title: "roundtrip",
		Nodes: []Node{{ID: "a", Kind: KindInternal, Label: "a.ts", PathRelative: "a.ts"}},
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Nil edges are written as an empty array so browser consumers can iterate.
	if !bytes.Contains(data, []byte(`"edges": []`)) {
		t.Errorf("expected empty edges array, got:\n%s", data)
	}

	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if got.Title != g.Title || len(got.Nodes) != 1 || got.Nodes[0] != g.Nodes[0] {
		t.Errorf("ReadGraphFile = %+v, want %+v", got, g)
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	_, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestNodeHelpers(t *testing.T) {
	internal := Node{ID: "1", Kind: KindInternal, Label: "index.ts", PathRelative: "src/index.ts"}
	external := Node{ID: "2", Kind: KindExternal, Label: "lodash"}
	unlabeled := Node{ID: "3"}

	if internal.SearchText() != "src/index.ts" {
		t.Errorf("internal SearchText = %q", internal.SearchText())
	}
	if external.SearchText() != "lodash" {
		t.Errorf("external SearchText = %q", external.SearchText())
	}
	if unlabeled.DisplayLabel() != "3" {
		t.Errorf("DisplayLabel fallback = %q, want 3", unlabeled.DisplayLabel())
	}
}

func TestEdgeHelpers(t *testing.T) {
	e := Edge{ID: "e", SourceID: "a", TargetID: "b"}
	if !e.Touches("a") || !e.Touches("b") || e.Touches("c") {
		t.Error("Touches mismatch")
	}
	if e.Other("a") != "b" || e.Other("b") != "a" {
		t.Error("Other mismatch")
	}
	loop := Edge{ID: "l", SourceID: "a", TargetID: "a"}
	if loop.Other("a") != "a" {
		t.Error("self-loop Other should return the node itself")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		g        Graph
		wantErr  bool
		contains string
	}{
		{
			name: "valid",
			g: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{ID: "e", SourceID: "a", TargetID: "b"}},
			},
		},
		{
			name:    "empty graph",
			g:       Graph{},
			wantErr: false,
		},
		{
			name:     "dangling target",
			g:        Graph{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{ID: "e", SourceID: "a", TargetID: "zz"}}},
			wantErr:  true,
			contains: `unknown target "zz"`,
		},
		{
			name:     "duplicate node",
			g:        Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}},
			wantErr:  true,
			contains: `duplicate node id "a"`,
		},
		{
			name: "duplicate edge",
			g: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{ID: "e", SourceID: "a", TargetID: "b"}, {ID: "e", SourceID: "b", TargetID: "a"}},
			},
			wantErr:  true,
			contains: `duplicate edge id "e"`,
		},
		{
			name:     "empty node id",
			g:        Graph{Nodes: []Node{{ID: ""}}},
			wantErr:  true,
			contains: "empty id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.g)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.contains)
			}
		})
	}
}
