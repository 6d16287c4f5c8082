package flappy

// Autopilot reports whether a scripted player should flap now: it flaps when
// it is falling and its center is below the middle of the next gap.
// simulate and the tests use it to keep runs alive long enough to score.
func Autopilot(s *Session) bool {
	cfg := s.Config()
	p := s.Player()

	target := cfg.Field.GroundPosition / 2
	for _, o := range s.Obstacles() {
		if o.X+cfg.Obstacles.Width >= p.Box.X {
			target = o.GapStart + o.GapSize/2
			break
		}
	}
	return p.Box.Y+p.Box.H/2 > target && p.Velocity < 0
}
