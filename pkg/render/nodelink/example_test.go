package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/render/nodelink"
	"github.com/matzehuels/modgraph/pkg/viewer"
)

func ExampleToDOT() {
	e := viewer.New(viewer.WithDefaultPosition(viewer.Position{X: 0, Y: 0}))
	e.Load(graph.Graph{
		Nodes: []graph.Node{
			{ID: "app", Kind: graph.KindInternal, Label: "app.ts"},
			{ID: "lib", Kind: graph.KindInternal, Label: "lib.ts"},
		},
		Edges: []graph.Edge{{ID: "e", SourceID: "app", TargetID: "lib"}},
	})
	_ = e.RevealNode("lib")
	_ = e.ExpandUpstream("lib")

	fmt.Print(nodelink.ToDOT(e.Snapshot(), nodelink.Options{}))
	// Output:
	// digraph G {
	//   bgcolor="transparent";
	//   splines=true;
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
	//   edge [arrowhead=normal];
	//
	//   "lib" [label="lib.ts", pos="0.000,0.000!"];
	//   "app" [label="app.ts", pos="-4.167,0.000!"];
	//
	//   "app" -> "lib";
	// }
}
