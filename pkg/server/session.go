package server

import (
	"sync"

	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/present"
	"github.com/matzehuels/modgraph/pkg/viewer"
)

// Message is what the hub sends to WebSocket clients.
// Seq increases with every state change; clients drop messages with a Seq
// lower than one they already applied.
type Message struct {
	Type  string        `json:"type"`
	Seq   uint64        `json:"seq"`
	Scene present.Scene `json:"scene"`
}

// MessageTypeScene tags full scene messages.
const MessageTypeScene = "scene"

// Session serializes access to a viewer engine and publishes its changes.
type Session struct {
	mu     sync.Mutex
	engine *viewer.Engine
	seq    uint64
	hub    *Hub
}

// NewSession wraps engine. The session subscribes to the engine; callers
// must not mutate the engine directly afterwards. hub may be nil.
func NewSession(engine *viewer.Engine, hub *Hub) *Session {
	s := &Session{engine: engine, hub: hub}
	engine.Subscribe(s.publish)
	return s
}

// publish runs inside the engine call, under s.mu.
func (s *Session) publish(state viewer.State) {
	s.seq++
	if s.hub != nil {
		s.hub.Broadcast(Message{Type: MessageTypeScene, Seq: s.seq, Scene: present.FromState(state)})
	}
}

// Do runs fn with exclusive access to the engine.
func (s *Session) Do(fn func(e *viewer.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

// Apply runs fn like Do and returns the scene right after it, before any
// other caller can change state.
func (s *Session) Apply(fn func(e *viewer.Engine) error) (present.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.engine); err != nil {
		return present.Scene{}, err
	}
	return present.FromState(s.engine.Snapshot()), nil
}

// Load replaces the complete graph.
func (s *Session) Load(g graph.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Load(g)
}

// Reload reads the graph document at path and loads it. On error the
// current graph stays loaded.
func (s *Session) Reload(path string) error {
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return err
	}
	s.Load(g)
	return nil
}

// Message returns the current scene with its sequence number.
func (s *Session) Message() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Message{Type: MessageTypeScene, Seq: s.seq, Scene: present.FromState(s.engine.Snapshot())}
}

// Scene returns the current scene.
func (s *Session) Scene() present.Scene {
	return s.Message().Scene
}

// ToggleSelection selects id, or clears the selection when id is already
// selected. It returns the resulting scene.
func (s *Session) ToggleSelection(id string) present.Scene {
	scene, _ := s.Apply(func(e *viewer.Engine) error {
		if e.SelectedNodeID() == id {
			id = ""
		}
		e.SetSelectedNode(id)
		return nil
	})
	return scene
}
