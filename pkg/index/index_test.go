package index

import (
	"slices"
	"testing"

	"github.com/matzehuels/modgraph/pkg/graph"
)

func diamond() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Edges: []graph.Edge{
			{ID: "ab", SourceID: "a", TargetID: "b"},
			{ID: "ac", SourceID: "a", TargetID: "c"},
			{ID: "bd", SourceID: "b", TargetID: "d"},
			{ID: "cd", SourceID: "c", TargetID: "d"},
			{ID: "dd", SourceID: "d", TargetID: "d"},
		},
	}
}

func TestBuild(t *testing.T) {
	ix := Build(diamond())

	if ix.NodeCount() != 4 || ix.EdgeCount() != 5 {
		t.Fatalf("counts = %d/%d, want 4/5", ix.NodeCount(), ix.EdgeCount())
	}

	n, ok := ix.Node("c")
	if !ok || n.ID != "c" {
		t.Errorf("Node(c) = %+v, %v", n, ok)
	}
	if _, ok := ix.Node("missing"); ok {
		t.Error("Node(missing) should not be found")
	}
	if e, ok := ix.Edge("bd"); !ok || e.SourceID != "b" || e.TargetID != "d" {
		t.Errorf("Edge(bd) = %+v, %v", e, ok)
	}
	if ix.HasEdge("zz") || !ix.HasNode("a") {
		t.Error("HasEdge/HasNode mismatch")
	}
}

func TestAdjacency(t *testing.T) {
	ix := Build(diamond())

	tests := []struct {
		name string
		got  []int
		want []int
	}{
		{"incoming d", ix.Incoming("d"), []int{2, 3, 4}},
		{"outgoing a", ix.Outgoing("a"), []int{0, 1}},
		{"incoming a", ix.Incoming("a"), nil},
		{"incident d", ix.Incident("d"), []int{2, 3, 4}},
		{"incident b c", ix.Incident("b", "c"), []int{0, 1, 2, 3}},
		{"incident unknown", ix.Incident("zz"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestDuplicateIDsFirstWins(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a", Label: "first"}, {ID: "a", Label: "second"}},
		Edges: []graph.Edge{
			{ID: "e", SourceID: "a", TargetID: "a"},
			{ID: "e", SourceID: "a", TargetID: "a"},
		},
	}
	ix := Build(g)

	if n, _ := ix.Node("a"); n.Label != "first" {
		t.Errorf("Node(a).Label = %q, want first", n.Label)
	}
	if got := ix.Incident("a"); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("Incident(a) = %v, want [0 1]", got)
	}
}

func TestSet(t *testing.T) {
	s := NewSet("a")
	if !s.Add("b") {
		t.Error("Add(b) should report insertion")
	}
	if s.Add("a") {
		t.Error("Add(a) should report existing id")
	}
	c := s.Clone()
	s.Delete("a")
	if s.Has("a") || !c.Has("a") {
		t.Error("Clone should be independent of the original")
	}
	if s.Len() != 1 || c.Len() != 2 {
		t.Errorf("Len = %d/%d, want 1/2", s.Len(), c.Len())
	}
}
