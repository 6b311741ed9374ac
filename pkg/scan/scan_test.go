package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/modgraph/pkg/cache"
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/graph"
)

// writeTree creates files below dir from a path -> content map.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/App.tsx": `import React from "react";
import { Button } from "~/components/Button";
import { useThing } from "./hooks";
import { useThing as again } from "./hooks";
`,
		"src/hooks/index.ts":          `import { useState } from "react";` + "\n",
		"app/components/Button.tsx":   `import "./button.css";` + "\n",
		"src/util.js":                 "export const x = 1;\n",
		"node_modules/react/index.js": `import "scheduler";` + "\n",
		"dist/bundle.js":              `import "./chunk";` + "\n",
		"README.md":                   "import nothing",
	})
	return dir
}

func config(dir string) Config {
	return Config{
		Title:            "demo",
		Path:             dir,
		ModuleResolution: []ModuleResolution{{Pattern: "~/", Replacement: "app/"}},
	}
}

func byRel(g graph.Graph) map[string]graph.Node {
	out := make(map[string]graph.Node)
	for _, n := range g.Nodes {
		if n.IsInternal() {
			out[n.PathRelative] = n
		} else {
			out["ext:"+n.Label] = n
		}
	}
	return out
}

func hasEdge(g graph.Graph, src, dst string) bool {
	for _, e := range g.Edges {
		if e.SourceID == src && e.TargetID == dst {
			return true
		}
	}
	return false
}

func TestScan(t *testing.T) {
	dir := project(t)
	s := NewScanner(nil, nil)

	g, stats, err := s.ScanWithStats(context.Background(), config(dir))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if err := graph.Validate(g); err != nil {
		t.Fatalf("generated graph invalid: %v", err)
	}
	if g.Title != "demo" {
		t.Errorf("Title = %q", g.Title)
	}

	nodes := byRel(g)
	for _, rel := range []string{"src/App.tsx", "src/hooks/index.ts", "app/components/Button.tsx", "src/util.js"} {
		if _, ok := nodes[rel]; !ok {
			t.Errorf("missing internal node %s", rel)
		}
	}
	for _, rel := range []string{"node_modules/react/index.js", "dist/bundle.js", "README.md"} {
		if _, ok := nodes[rel]; ok {
			t.Errorf("excluded file %s was scanned", rel)
		}
	}
	if got := nodes["src/hooks/index.ts"].Label; got != "hooks/index.ts" {
		t.Errorf("index label = %q", got)
	}

	app := nodes["src/App.tsx"].ID
	if !hasEdge(g, app, nodes["ext:react"].ID) {
		t.Error("missing edge App -> react")
	}
	if !hasEdge(g, app, nodes["app/components/Button.tsx"].ID) {
		t.Error("missing aliased edge App -> Button")
	}
	if !hasEdge(g, app, nodes["src/hooks/index.ts"].ID) {
		t.Error("missing edge App -> hooks/index.ts")
	}
	if !hasEdge(g, nodes["src/hooks/index.ts"].ID, nodes["ext:react"].ID) {
		t.Error("missing edge hooks -> react")
	}
	// Unresolved relative import becomes an external node named after it.
	if _, ok := nodes["ext:./button.css"]; !ok {
		t.Error("missing external node for ./button.css")
	}

	if stats.Files != 4 || stats.Internal != 4 || stats.External != 2 {
		t.Errorf("stats = %+v", stats)
	}
	// App imports ./hooks twice; the duplicate collapses.
	if stats.Edges != 5 || len(g.Edges) != 5 {
		t.Errorf("edges = %d (stats %d), want 5", len(g.Edges), stats.Edges)
	}
}

func TestScanStableIDs(t *testing.T) {
	dir := project(t)
	s := NewScanner(nil, nil)

	g1, err := s.Scan(context.Background(), config(dir))
	if err != nil {
		t.Fatal(err)
	}
	g2, err := s.Scan(context.Background(), config(dir))
	if err != nil {
		t.Fatal(err)
	}

	if len(g1.Nodes) != len(g2.Nodes) || len(g1.Edges) != len(g2.Edges) {
		t.Fatal("scans differ in size")
	}
	for i := range g1.Nodes {
		if g1.Nodes[i] != g2.Nodes[i] {
			t.Errorf("node %d differs: %+v vs %+v", i, g1.Nodes[i], g2.Nodes[i])
		}
	}
	for i := range g1.Edges {
		if g1.Edges[i] != g2.Edges[i] {
			t.Errorf("edge %d differs", i)
		}
	}
}

func TestScanUsesCache(t *testing.T) {
	dir := project(t)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := NewScanner(c, nil)
	s.Workers = 2

	_, first, err := s.ScanWithStats(context.Background(), config(dir))
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached != 0 {
		t.Errorf("first scan cached = %d, want 0", first.Cached)
	}

	_, second, err := s.ScanWithStats(context.Background(), config(dir))
	if err != nil {
		t.Fatal(err)
	}
	if second.Cached != second.Files {
		t.Errorf("second scan cached = %d of %d files", second.Cached, second.Files)
	}
}

func TestScanInvalidPath(t *testing.T) {
	s := NewScanner(nil, nil)

	_, err := s.Scan(context.Background(), Config{Path: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Scan() error = %v, want INVALID_PATH", err)
	}

	_, err = s.Scan(context.Background(), Config{})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Scan() error = %v, want INVALID_CONFIG", err)
	}
}

func TestScanEmptyTree(t *testing.T) {
	g, err := NewScanner(nil, nil).Scan(context.Background(), Config{Title: "empty", Path: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("empty tree produced %+v", g)
	}
}
