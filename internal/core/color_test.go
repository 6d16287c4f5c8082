package core

import "testing"

func TestVisualColor(t *testing.T) {
	tests := []struct {
		kind VisualKind
		id   EntityID
		want Color
	}{
		{VisualBar, 1000, ColorBar},
		{VisualCap, 1002, ColorCap},
		{VisualGround, 1, ColorGround},
		{VisualGround, 2, ColorGroundAlt},
		{VisualKind(99), 1, ColorDefault},
	}
	for _, tc := range tests {
		if got := VisualColor(tc.kind, tc.id); got != tc.want {
			t.Errorf("VisualColor(%s, %d) = %d, expected %d", tc.kind, tc.id, got, tc.want)
		}
	}
}

func TestColorOutOfRange(t *testing.T) {
	c := Color(200)
	if c.ANSI() != "" {
		t.Errorf("ANSI() = %q, expected default", c.ANSI())
	}
	if c.RGBA() != ColorDefault.RGBA() {
		t.Error("unknown colors should fall back to the default")
	}
}
