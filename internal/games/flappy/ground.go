package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Ground is the horizontally tiled strip under the field.
// Its tiles are attached once and only repositioned afterwards.
type Ground struct {
	field   Field
	tileW   float64
	tileH   float64
	offset  float64
	tiles   []core.EntityID
	surface Surface
}

// NewGround creates enough tiles to cover the field width plus one and
// attaches them to the surface.
func NewGround(field Field, tileW, tileH float64, surface Surface) *Ground {
	n := int(math.Ceil(field.Width/tileW)) + 1
	g := &Ground{
		field:   field,
		tileW:   tileW,
		tileH:   tileH,
		tiles:   make([]core.EntityID, n),
		surface: surface,
	}
	for i := range g.tiles {
		g.tiles[i] = groundIDBase + core.EntityID(i)
		surface.Attach(g.tiles[i], core.Visual{Kind: core.VisualGround, Box: g.tileBox(i)})
	}
	return g
}

func (g *Ground) tileBox(i int) core.Box {
	return core.NewBox(g.offset+float64(i)*g.tileW, g.field.GroundPosition, g.tileW, g.tileH)
}

// Update scrolls the ground by one tick. The offset stays in (-tileW, 0].
func (g *Ground) Update() {
	g.offset = math.Mod(g.offset-g.field.MoveSpeed, g.tileW)
	g.place()
}

// Reset returns the tiles to their start position.
func (g *Ground) Reset() {
	g.offset = 0
	g.place()
}

func (g *Ground) place() {
	for i, id := range g.tiles {
		g.surface.Place(id, g.tileBox(i))
	}
}

// Detach removes every tile from the surface.
func (g *Ground) Detach() {
	for _, id := range g.tiles {
		g.surface.Detach(id)
	}
}

// Offset returns the current scroll offset.
func (g *Ground) Offset() float64 { return g.offset }

// Tiles returns the current tile boxes, left to right.
func (g *Ground) Tiles() []core.Box {
	out := make([]core.Box, len(g.tiles))
	for i := range g.tiles {
		out[i] = g.tileBox(i)
	}
	return out
}
