package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/viewer"
)

func state() viewer.State {
	return viewer.State{
		Title: "demo",
		Nodes: []viewer.VisibleNode{
			{ID: "a", Kind: graph.KindInternal, Label: "a.ts", Position: viewer.Position{X: 72, Y: 144}},
			{ID: "react", Kind: graph.KindExternal, Label: "react", Position: viewer.Position{X: 0, Y: 0}},
		},
		Edges: []viewer.VisibleEdge{{ID: "e1", SourceID: "a", TargetID: "react"}},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(state(), Options{})

	for _, want := range []string{
		"digraph G",
		`label="demo"`,
		`"a" [label="a.ts"`,
		`"a" -> "react"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOT_PinnedPositions(t *testing.T) {
	dot := ToDOT(state(), Options{})

	if !strings.Contains(dot, `pos="1.000,-2.000!"`) {
		t.Errorf("node a not pinned at (1in, -2in):\n%s", dot)
	}
	if !strings.Contains(dot, `pos="0.000,0.000!"`) {
		t.Errorf("node react not pinned at origin:\n%s", dot)
	}
}

func TestToDOT_External(t *testing.T) {
	dot := ToDOT(state(), Options{})

	var line string
	for _, l := range strings.Split(dot, "\n") {
		if strings.Contains(l, `"react" [`) {
			line = l
		}
	}
	if !strings.Contains(line, "dashed") {
		t.Errorf("external node not dashed: %s", line)
	}
}

func TestToDOT_Selected(t *testing.T) {
	s := state()
	if strings.Contains(ToDOT(s, Options{}), "penwidth") {
		t.Error("no node selected but output highlights one")
	}

	s.SelectedNodeID = "a"
	if !strings.Contains(ToDOT(s, Options{}), "penwidth=3") {
		t.Error("selected node not highlighted")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(state(), Options{Detailed: true})
	if !strings.Contains(dot, `a.ts\ninternal\na`) {
		t.Errorf("detailed label missing kind and id:\n%s", dot)
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(viewer.State{}, Options{})
	if strings.Contains(dot, "->") || strings.Contains(dot, "pos=") {
		t.Errorf("empty state produced elements:\n%s", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT output not closed")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg><g/></svg>")); string(got) != "<svg><g/></svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
