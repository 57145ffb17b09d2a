package runner

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Blocked records which sides of a body touched solid tiles this tick.
type Blocked struct {
	Up, Down, Left, Right bool
}

// Body is the player's physics body. Velocities are in px/s.
type Body struct {
	X, Y       float64
	W, H       float64
	VelX, VelY float64
	Blocked    Blocked
}

// Box returns the body's bounding box.
func (b *Body) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// Grounded reports whether the body rests on a solid tile.
func (b *Body) Grounded() bool {
	return b.Blocked.Down
}

// Physics integrates a body under gravity and separates it from solids.
type Physics struct {
	cfg     config.PhysicsConfig
	scratch []core.Box
}

// NewPhysics creates a physics stepper.
func NewPhysics(cfg config.PhysicsConfig) *Physics {
	return &Physics{cfg: cfg}
}

// Step advances the body by elapsed milliseconds and resolves collisions
// against the solid tiles in space. Each axis is checked and resolved
// separately, X first, so a body resting on the ground can still be stopped
// by a wall.
func (p *Physics) Step(b *Body, elapsed float64, space *TileSpace) {
	dt := elapsed / 1000
	b.Blocked = Blocked{}

	b.VelY += p.cfg.Gravity * dt
	if p.cfg.MaxFallSpeed > 0 && b.VelY > p.cfg.MaxFallSpeed {
		b.VelY = p.cfg.MaxFallSpeed
	}

	prev := b.Box()
	dx := b.VelX * dt
	p.scratch = space.Check(prev, dx, 0, p.scratch[:0])
	b.X += dx
	p.resolveX(b, prev, p.scratch)

	dy := b.VelY * dt
	p.scratch = space.Check(b.Box(), 0, dy, p.scratch[:0])
	b.Y += dy
	p.resolveY(b, p.scratch)
}

// resolveX only stops the body at tiles it moved into this step. Tiles it
// already overlapped before moving came from a vertically animated segment
// and are left to resolveY.
func (p *Physics) resolveX(b *Body, prev core.Box, hits []core.Box) {
	if b.VelX == 0 {
		return
	}
	for _, tile := range hits {
		if !b.Box().Intersects(tile) || prev.Intersects(tile) {
			continue
		}
		if b.VelX > 0 {
			b.X = tile.X - b.W
			b.Blocked.Right = true
		} else {
			b.X = tile.Right()
			b.Blocked.Left = true
		}
	}
	if b.Blocked.Left || b.Blocked.Right {
		b.VelX = 0
	}
}

func (p *Physics) resolveY(b *Body, hits []core.Box) {
	for _, tile := range hits {
		if !b.Box().Intersects(tile) {
			continue
		}
		if b.VelY < 0 {
			b.Y = tile.Bottom()
			b.Blocked.Up = true
		} else {
			// Falling, resting, or a segment sliding down onto the body.
			b.Y = tile.Y - b.H
			b.Blocked.Down = true
		}
	}
	if b.Blocked.Up || b.Blocked.Down {
		b.VelY = 0
	}
}

// snapX rounds the body's x up to a whole pixel.
func snapX(b *Body) {
	b.X = math.Ceil(b.X)
}
