package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modgraph/pkg/cache"
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/graph"
)

func demoGraph() graph.Graph {
	return graph.Graph{
		Title: "demo",
		Nodes: []graph.Node{
			{ID: "a", Kind: graph.KindInternal, Label: "a.ts", PathRelative: "src/a.ts"},
			{ID: "b", Kind: graph.KindInternal, Label: "b.ts", PathRelative: "src/b.ts"},
			{ID: "c", Kind: graph.KindInternal, Label: "c.ts", PathRelative: "src/c.ts"},
			{ID: "react", Kind: graph.KindExternal, Label: "react"},
		},
		Edges: []graph.Edge{
			{ID: "b-a", SourceID: "b", TargetID: "a"},
			{ID: "c-a", SourceID: "c", TargetID: "a"},
			{ID: "a-react", SourceID: "a", TargetID: "react"},
		},
	}
}

// writeDoc writes g to a temporary graph.json and returns its path.
func writeDoc(t *testing.T, g graph.Graph) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteGraphFile(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCLI(buf *bytes.Buffer) *CLI {
	return New(buf, log.DebugLevel)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := testCLI(&bytes.Buffer{}).RootCommand()

	want := []string{"generate", "search", "view", "render", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("redis-addr") == nil {
		t.Error("missing --redis-addr flag")
	}
}

func TestResolveNode(t *testing.T) {
	c := testCLI(&bytes.Buffer{})
	e, err := c.loadEngine(writeDoc(t, demoGraph()))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"a", "a"},
		{"src/b.ts", "b"},
		{"react", "react"},
	}
	for _, tt := range tests {
		got, err := resolveNode(e, tt.ref)
		if err != nil || got != tt.want {
			t.Errorf("resolveNode(%q) = %q, %v; want %q", tt.ref, got, err, tt.want)
		}
	}

	if _, err := resolveNode(e, "src/missing.ts"); !errors.IsNotFound(err) {
		t.Errorf("resolveNode(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestReadGraphWarnsOnProblems(t *testing.T) {
	g := demoGraph()
	g.Edges = append(g.Edges, graph.Edge{ID: "dangling", SourceID: "a", TargetID: "ghost"})

	var buf bytes.Buffer
	c := testCLI(&buf)
	got, err := c.readGraph(writeDoc(t, g))
	if err != nil {
		t.Fatalf("readGraph() error = %v", err)
	}
	if len(got.Edges) != 4 {
		t.Errorf("edges = %d, want 4", len(got.Edges))
	}
	if !strings.Contains(buf.String(), "graph document has problems") {
		t.Errorf("expected a warning, log was %q", buf.String())
	}
}

func TestReadGraphMissingFile(t *testing.T) {
	c := testCLI(&bytes.Buffer{})
	_, err := c.readGraph(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRedisAddr, "")
	c := testCLI(&bytes.Buffer{})
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		ch, err := c.newCache(ctx, true)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := ch.(*cache.NullCache); !ok {
			t.Errorf("newCache(noCache) = %T, want *cache.NullCache", ch)
		}
	})

	t.Run("file", func(t *testing.T) {
		ch, err := c.newCache(ctx, false)
		if err != nil {
			t.Fatal(err)
		}
		defer ch.Close()
		if _, ok := ch.(*cache.ScopedCache); !ok {
			t.Errorf("newCache() = %T, want *cache.ScopedCache", ch)
		}
		if err := ch.Set(ctx, "k", []byte("v"), 0); err != nil {
			t.Fatal(err)
		}
		data, ok, err := ch.Get(ctx, "k")
		if err != nil || !ok || string(data) != "v" {
			t.Errorf("Get() = %q, %v, %v", data, ok, err)
		}
	})
}

func TestRedisAddressPrecedence(t *testing.T) {
	t.Setenv(envRedisAddr, "env:6379")
	c := testCLI(&bytes.Buffer{})

	if got := c.redisAddress(); got != "env:6379" {
		t.Errorf("redisAddress() = %q, want env value", got)
	}
	c.redisAddr = "flag:6379"
	if got := c.redisAddress(); got != "flag:6379" {
		t.Errorf("redisAddress() = %q, want flag value", got)
	}
}
