package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// segment is one visual part of an obstacle, positioned relative to its X.
type segment struct {
	id   core.EntityID
	kind core.VisualKind
	dx   float64 // Horizontal offset from the obstacle's X
	box  core.Box
}

// Obstacle is a pair of bars with a gap between them, optionally capped.
// Obstacles are constructed once by the pool and reinitialized by Attach.
type Obstacle struct {
	field  Field
	style  config.ObstacleStyle
	width  float64
	gapLo  int // Gap start range [gapLo, gapHi)
	gapHi  int
	extent float64

	x           float64
	gapStart    float64
	scoreEarned bool
	outOfBounds bool

	segments [maxSegments]segment
	n        int
	surface  Surface
}

// obstacleShape is the per-session geometry shared by every pooled obstacle.
type obstacleShape struct {
	field Field
	style config.ObstacleStyle
	width float64
	gapLo int
	gapHi int
}

func newObstacleShape(cfg config.FlappyConfig, style config.ObstacleStyle) obstacleShape {
	lo, hi := cfg.GapRange()
	return obstacleShape{
		field: NewField(cfg.Field),
		style: style,
		width: cfg.Obstacles.Width,
		gapLo: lo,
		gapHi: hi,
	}
}

// init sets the fixed parts of an obstacle. base is the first entity ID of
// its segment block.
func (o *Obstacle) init(shape obstacleShape, base core.EntityID) {
	o.field = shape.field
	o.style = shape.style
	o.width = shape.width
	o.gapLo = shape.gapLo
	o.gapHi = shape.gapHi
	o.extent = shape.style.Extent(shape.width)

	o.n = shape.style.Segments()
	o.segments[0] = segment{id: base, kind: core.VisualBar}
	o.segments[1] = segment{id: base + 1, kind: core.VisualBar}
	if shape.style.Caps {
		o.segments[2] = segment{id: base + 2, kind: core.VisualCap, dx: -shape.style.CapOverhang}
		o.segments[3] = segment{id: base + 3, kind: core.VisualCap, dx: -shape.style.CapOverhang}
	}
}

// Attach places a fresh obstacle at the right edge of the field with a
// random gap and registers its segments with the surface.
func (o *Obstacle) Attach(surface Surface, rng *rand.Rand) {
	o.scoreEarned = false
	o.outOfBounds = false
	o.surface = surface
	o.x = o.field.Width
	o.gapStart = float64(o.gapLo + rng.Intn(o.gapHi-o.gapLo))

	gap := o.style.GapSize
	ground := o.field.GroundPosition
	bottomY := o.gapStart + gap

	o.segments[0].box = core.NewBox(o.x, 0, o.width, o.gapStart)
	o.segments[1].box = core.NewBox(o.x, bottomY, o.width, ground-gap-o.gapStart)
	if o.style.Caps {
		capW := o.width + 2*o.style.CapOverhang
		capX := o.x - o.style.CapOverhang
		o.segments[2].box = core.NewBox(capX, o.gapStart-o.style.CapHeight, capW, o.style.CapHeight)
		o.segments[3].box = core.NewBox(capX, bottomY, capW, o.style.CapHeight)
	}

	for _, s := range o.segments[:o.n] {
		surface.Attach(s.id, core.Visual{Kind: s.kind, Box: s.box})
	}
}

// Update scrolls the obstacle left by one tick.
func (o *Obstacle) Update() {
	o.x -= o.field.MoveSpeed
	for i := range o.segments[:o.n] {
		s := &o.segments[i]
		s.box.X = o.x + s.dx
		if o.surface != nil {
			o.surface.Place(s.id, s.box)
		}
	}
	if o.x+o.extent < 0 {
		o.outOfBounds = true
	}
}

// HitTest checks the player's box against the obstacle.
// Scoring is reported at most once per attachment, when the player's right
// edge has passed the obstacle's right edge.
func (o *Obstacle) HitTest(target core.Box) HitResult {
	var res HitResult
	if !o.scoreEarned && target.Right() > o.x+o.width {
		o.scoreEarned = true
		res.Scored = true
	}

	hitbox := target.ShrinkY(o.style.HitPadding)
	for _, s := range o.segments[:o.n] {
		if hitbox.Overlaps(s.box) {
			res.Collided = true
			break
		}
	}
	return res
}

// Detach unregisters the obstacle's segments from its surface.
func (o *Obstacle) Detach() {
	if o.surface == nil {
		return
	}
	for _, s := range o.segments[:o.n] {
		o.surface.Detach(s.id)
	}
	o.surface = nil
}

// X returns the obstacle's left edge.
func (o *Obstacle) X() float64 { return o.x }

// GapStart returns the Y where the gap begins.
func (o *Obstacle) GapStart() float64 { return o.gapStart }

// OutOfBounds reports whether the obstacle has fully left the field.
func (o *Obstacle) OutOfBounds() bool { return o.outOfBounds }

// Segments returns the current segment boxes.
func (o *Obstacle) Segments() []core.Box {
	out := make([]core.Box, o.n)
	for i, s := range o.segments[:o.n] {
		out[i] = s.box
	}
	return out
}

// ObstacleView is a read-only copy of one active obstacle for hosts.
type ObstacleView struct {
	X           float64
	GapStart    float64
	GapSize     float64
	Scored      bool
	OutOfBounds bool
	Segments    []core.Box
}

func (o *Obstacle) view() ObstacleView {
	return ObstacleView{
		X:           o.x,
		GapStart:    o.gapStart,
		GapSize:     o.style.GapSize,
		Scored:      o.scoreEarned,
		OutOfBounds: o.outOfBounds,
		Segments:    o.Segments(),
	}
}
