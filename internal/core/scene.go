package core

import "sort"

// EntityID identifies one attached visual.
type EntityID uint32

// VisualKind tells a renderer how to draw an attached visual.
type VisualKind uint8

const (
	VisualBar    VisualKind = iota // Obstacle body segment
	VisualCap                      // Obstacle cap, collides like a bar
	VisualGround                   // Ground tile
)

// String returns a human-readable name for the kind.
func (k VisualKind) String() string {
	switch k {
	case VisualBar:
		return "bar"
	case VisualCap:
		return "cap"
	case VisualGround:
		return "ground"
	default:
		return "unknown"
	}
}

// Visual is the geometry a simulation entity registers with a host surface.
type Visual struct {
	Kind VisualKind
	Box  Box
}

// SceneEntry is one attached visual together with its ID.
type SceneEntry struct {
	ID EntityID
	Visual
}

// Scene is an in-memory visual surface. Hosts read it back when drawing.
// The zero value is not usable; call NewScene.
type Scene struct {
	visuals map[EntityID]Visual
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{visuals: make(map[EntityID]Visual)}
}

// Attach registers a visual. Attaching an existing ID replaces it.
func (s *Scene) Attach(id EntityID, v Visual) {
	s.visuals[id] = v
}

// Place moves an attached visual. Unknown IDs are ignored.
func (s *Scene) Place(id EntityID, b Box) {
	v, ok := s.visuals[id]
	if !ok {
		return
	}
	v.Box = b
	s.visuals[id] = v
}

// Detach removes a visual. Unknown IDs are ignored.
func (s *Scene) Detach(id EntityID) {
	delete(s.visuals, id)
}

// Has reports whether id is attached.
func (s *Scene) Has(id EntityID) bool {
	_, ok := s.visuals[id]
	return ok
}

// Get returns the visual attached under id.
func (s *Scene) Get(id EntityID) (Visual, bool) {
	v, ok := s.visuals[id]
	return v, ok
}

// Len returns the number of attached visuals.
func (s *Scene) Len() int {
	return len(s.visuals)
}

// Entries returns every attached visual ordered by kind, then ID,
// so ground tiles draw after obstacle bodies and caps draw over bars.
func (s *Scene) Entries() []SceneEntry {
	out := make([]SceneEntry, 0, len(s.visuals))
	for id, v := range s.visuals {
		out = append(out, SceneEntry{ID: id, Visual: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}
