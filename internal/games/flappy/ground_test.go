package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestGroundTiles(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	scene := core.NewScene()
	g := NewGround(NewField(cfg.Field), 128, 128, scene)

	tiles := g.Tiles()
	if len(tiles) != 5 {
		t.Fatalf("tiles = %d, expected ceil(480/128)+1 = 5", len(tiles))
	}
	if scene.Len() != 5 {
		t.Errorf("scene holds %d visuals, expected 5", scene.Len())
	}
	for i, b := range tiles {
		if b.X != float64(i)*128 || b.Y != 472 {
			t.Errorf("tile %d at (%g, %g)", i, b.X, b.Y)
		}
	}

	g.Detach()
	if scene.Len() != 0 {
		t.Errorf("scene holds %d visuals after detach", scene.Len())
	}
}

func TestGroundPeriodicity(t *testing.T) {
	field := Field{GroundPosition: 472, MoveSpeed: 8, Width: 480}
	scene := core.NewScene()
	g := NewGround(field, 128, 128, scene)
	start := g.Tiles()

	// 128 / 8 = 16 ticks per period
	for i := 1; i <= 16; i++ {
		g.Update()
		if i < 16 && g.Offset() == 0 {
			t.Fatalf("offset returned to 0 early at tick %d", i)
		}
	}

	if g.Offset() != 0 {
		t.Fatalf("offset after one period = %g, expected 0", g.Offset())
	}
	for i, b := range g.Tiles() {
		if b != start[i] {
			t.Errorf("tile %d = %+v after one period, expected %+v", i, b, start[i])
		}
	}
}

func TestGroundOffsetRange(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	scene := core.NewScene()
	g := NewGround(NewField(cfg.Field), 128, 128, scene)

	for i := 0; i < 1000; i++ {
		g.Update()
		if off := g.Offset(); off > 0 || off <= -128 {
			t.Fatalf("tick %d: offset %g outside (-128, 0]", i, off)
		}
	}

	// The scene follows the ground
	v, ok := scene.Get(groundIDBase)
	if !ok {
		t.Fatal("first tile missing from scene")
	}
	if v.Box.X != g.Offset() {
		t.Errorf("scene tile at %g, ground offset %g", v.Box.X, g.Offset())
	}

	g.Reset()
	if g.Offset() != 0 {
		t.Errorf("offset after reset = %g", g.Offset())
	}
}
