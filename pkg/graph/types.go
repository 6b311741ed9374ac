package graph

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Node Kinds
// =============================================================================

// Kind distinguishes modules of the scanned project from imported packages.
type Kind string

// Node kinds as they appear on the wire.
const (
	KindInternal Kind = "INTERNAL"
	KindExternal Kind = "EXTERNAL"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindInternal || k == KindExternal
}

// UnmarshalJSON accepts the wire values case-insensitively and rejects
// anything else, so a typo in a document surfaces at load time.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "INTERNAL", "internal", "Internal":
		*k = KindInternal
	case "EXTERNAL", "external", "External":
		*k = KindExternal
	default:
		return fmt.Errorf("unknown node_type %q", s)
	}
	return nil
}

// =============================================================================
// Graph - Complete Dependency Graph
// =============================================================================

// Graph is the complete dependency graph as delivered by a loader.
// Node and edge order is preserved: the viewer uses it as a deterministic
// tie-break when it adds edges.
type Graph struct {
	Title string `json:"title"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// =============================================================================
// Node - Module Record
// =============================================================================

// Node is a module (a source file of the project) or an external dependency.
// External nodes carry empty paths.
type Node struct {
	ID           string `json:"id"`
	Kind         Kind   `json:"node_type"`
	Label        string `json:"label"`
	PathAbsolute string `json:"path_absolute"`
	PathRelative string `json:"path_relative"`
}

// IsInternal returns true for modules of the scanned project.
func (n Node) IsInternal() bool { return n.Kind == KindInternal }

// IsExternal returns true for imported packages.
func (n Node) IsExternal() bool { return n.Kind == KindExternal }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// SearchText returns the text a free-text search matches against:
// the relative path for internal modules and the label for external ones.
func (n Node) SearchText() string {
	if n.IsExternal() {
		return n.Label
	}
	return n.PathRelative
}

// =============================================================================
// Edge - Directed Dependency
// =============================================================================

// Edge is a directed dependency: SourceID imports TargetID.
type Edge struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id string) bool {
	return e.SourceID == id || e.TargetID == id
}

// Other returns the endpoint opposite to id. For self-loops it returns id.
func (e Edge) Other(id string) string {
	if e.SourceID == id {
		return e.TargetID
	}
	return e.SourceID
}
