package core

import "testing"

func TestSceneAttachPlaceDetach(t *testing.T) {
	s := NewScene()

	s.Attach(7, Visual{Kind: VisualBar, Box: NewBox(0, 0, 10, 10)})
	if !s.Has(7) || s.Len() != 1 {
		t.Fatalf("Attach should register the visual, Len=%d", s.Len())
	}

	s.Place(7, NewBox(-5, 0, 10, 10))
	v, _ := s.Get(7)
	if v.Box.X != -5 || v.Kind != VisualBar {
		t.Errorf("Place should move the box and keep the kind, got %+v", v)
	}

	// Placing an unknown ID must not create it
	s.Place(99, NewBox(1, 1, 1, 1))
	if s.Has(99) {
		t.Error("Place should ignore unknown IDs")
	}

	s.Detach(7)
	s.Detach(7)
	if s.Len() != 0 {
		t.Errorf("Detach should remove the visual, Len=%d", s.Len())
	}
}

func TestSceneEntriesOrder(t *testing.T) {
	s := NewScene()
	s.Attach(3, Visual{Kind: VisualGround})
	s.Attach(2, Visual{Kind: VisualCap})
	s.Attach(9, Visual{Kind: VisualBar})
	s.Attach(1, Visual{Kind: VisualBar})

	entries := s.Entries()
	want := []EntityID{1, 9, 2, 3}
	if len(entries) != len(want) {
		t.Fatalf("Entries() returned %d entries, expected %d", len(entries), len(want))
	}
	for i, id := range want {
		if entries[i].ID != id {
			t.Errorf("entry %d = %d, expected %d", i, entries[i].ID, id)
		}
	}
}
