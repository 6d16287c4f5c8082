package flappy

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestObstacle(t *testing.T, styleName string) (*Obstacle, *core.Scene) {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	style, ok := cfg.Style(styleName)
	if !ok {
		t.Fatalf("style %q missing", styleName)
	}

	o := &Obstacle{}
	o.init(newObstacleShape(cfg, style), obstacleIDBase)
	scene := core.NewScene()
	o.Attach(scene, rand.New(rand.NewSource(7)))
	return o, scene
}

func TestObstacleAttachGeometry(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		cfg := config.DefaultFlappyConfig()
		o := &Obstacle{}
		o.init(newObstacleShape(cfg, cfg.Styles[config.StyleClassic]), obstacleIDBase)
		o.Attach(core.NewScene(), rand.New(rand.NewSource(seed)))

		gap := o.GapStart()
		if gap < 100 || gap >= 272 {
			t.Fatalf("seed %d: gap start %g outside [100, 272)", seed, gap)
		}

		segs := o.Segments()
		top, bottom := segs[0], segs[1]
		if top.Y != 0 || top.H != gap {
			t.Errorf("seed %d: top bar %+v", seed, top)
		}
		if bottom.Y != gap+200 || bottom.Bottom() != 472 {
			t.Errorf("seed %d: bottom bar %+v", seed, bottom)
		}
		if top.X != 480 || bottom.X != 480 {
			t.Errorf("seed %d: obstacle should enter at the field width", seed)
		}
	}
}

func TestObstacleSegmentsPerStyle(t *testing.T) {
	tests := []struct {
		style    string
		segments int
	}{
		{config.StyleClassic, 2},
		{config.StyleCapped, 4},
	}

	for _, tc := range tests {
		t.Run(tc.style, func(t *testing.T) {
			o, scene := newTestObstacle(t, tc.style)
			if got := len(o.Segments()); got != tc.segments {
				t.Errorf("segments = %d, expected %d", got, tc.segments)
			}
			if scene.Len() != tc.segments {
				t.Errorf("scene holds %d visuals, expected %d", scene.Len(), tc.segments)
			}

			o.Detach()
			if scene.Len() != 0 {
				t.Errorf("scene holds %d visuals after detach", scene.Len())
			}
		})
	}
}

func TestObstacleCapsOverhang(t *testing.T) {
	o, scene := newTestObstacle(t, config.StyleCapped)
	segs := o.Segments()
	topCap, bottomCap := segs[2], segs[3]

	if topCap.X != 475 || topCap.W != 85 {
		t.Errorf("top cap %+v, expected x=475 w=85", topCap)
	}
	if topCap.Bottom() != o.GapStart() {
		t.Errorf("top cap should end at the gap start")
	}
	if bottomCap.Y != o.GapStart()+150 {
		t.Errorf("bottom cap should start at the gap end")
	}

	o.Update()
	v, _ := scene.Get(obstacleIDBase + 2)
	if v.Box.X != 475-10.5 {
		t.Errorf("cap on scene at %g after update, expected %g", v.Box.X, 475-10.5)
	}
}

func TestObstacleScoresOnce(t *testing.T) {
	o, _ := newTestObstacle(t, config.StyleClassic)
	// Entirely to the right of the obstacle, clear of every bar
	passed := core.NewBox(600, 0, 60, 60)

	if res := o.HitTest(passed); !res.Scored {
		t.Fatal("first hit test past the obstacle should score")
	}
	for i := 0; i < 10; i++ {
		if res := o.HitTest(passed); res.Scored {
			t.Fatalf("hit test %d scored again", i+2)
		}
		o.Update()
	}

	// A fresh attachment scores again
	o.Attach(core.NewScene(), rand.New(rand.NewSource(1)))
	if res := o.HitTest(passed); !res.Scored {
		t.Error("reattached obstacle should score again")
	}
}

func TestObstacleNoScoreBeforePassing(t *testing.T) {
	o, _ := newTestObstacle(t, config.StyleClassic)
	// Right edge exactly on the obstacle's right edge does not count
	box := core.NewBox(555-60, 0, 60, 60)
	if res := o.HitTest(box); res.Scored {
		t.Error("player level with the obstacle's right edge should not score")
	}
}

func TestObstacleCollision(t *testing.T) {
	o, _ := newTestObstacle(t, config.StyleClassic)
	gap := o.GapStart()

	tests := []struct {
		name     string
		box      core.Box
		collided bool
	}{
		{"inside top bar", core.NewBox(490, 10, 60, 60), true},
		{"inside bottom bar", core.NewBox(490, 412, 60, 60), true},
		{"inside gap", core.NewBox(490, gap+10, 60, 60), false},
		{"touching left edge", core.NewBox(420, 0, 60, 60), true},
		{"left of obstacle", core.NewBox(400, 0, 60, 60), false},
		{"touching bottom bar", core.NewBox(490, gap+140, 60, 60), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if res := o.HitTest(tc.box); res.Collided != tc.collided {
				t.Errorf("collided = %v, expected %v", res.Collided, tc.collided)
			}
		})
	}
}

func TestObstacleHitPadding(t *testing.T) {
	o, _ := newTestObstacle(t, config.StyleCapped)
	// Bottom edge exactly on the bottom bar, top edge well inside the gap
	box := core.NewBox(490, o.GapStart()+90, 60, 60)

	if res := o.HitTest(box); res.Collided {
		t.Error("padded hitbox should clear a touching bar")
	}

	o.style.HitPadding = 0
	if res := o.HitTest(box); !res.Collided {
		t.Error("unpadded hitbox touching a bar should collide")
	}
}

func TestObstacleOutOfBounds(t *testing.T) {
	o, _ := newTestObstacle(t, config.StyleClassic)

	// x after n updates is 480 - 10.5n; fully gone once x < -75
	for i := 1; i <= 52; i++ {
		o.Update()
		if o.OutOfBounds() {
			t.Fatalf("out of bounds too early after %d updates (x=%g)", i, o.X())
		}
	}
	o.Update()
	if !o.OutOfBounds() {
		t.Errorf("should be out of bounds after 53 updates (x=%g)", o.X())
	}
}
