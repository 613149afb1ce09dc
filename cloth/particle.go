package cloth

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Particle is a single point mass in the cloth grid. Motion state is
// position-based: Velocity is derived from the position history every
// integration step, it is never advanced by its own equation.
type Particle struct {
	Position     mgl64.Vec3
	PrevPosition mgl64.Vec3
	Velocity     mgl64.Vec3
	Force        mgl64.Vec3
	Mass         float64
	Pinned       bool
}

// NewParticle creates an unpinned particle at rest at pos.
func NewParticle(pos mgl64.Vec3, mass float64) (Particle, error) {
	if mass <= 0 {
		return Particle{}, fmt.Errorf("cloth: particle mass must be positive, got %v", mass)
	}
	return Particle{
		Position:     pos,
		PrevPosition: pos,
		Mass:         mass,
	}, nil
}

// ApplyForce accumulates f into the particle's force for the current tick.
// Pinned particles silently ignore all forces.
func (p *Particle) ApplyForce(f mgl64.Vec3) {
	if p.Pinned {
		return
	}
	p.Force = p.Force.Add(f)
}

// Integrate advances the particle by dt using Stormer-Verlet integration
// and clears the accumulated force. Velocity comes out as a byproduct of
// the position change. dt must be non-zero; that is the caller's contract.
func (p *Particle) Integrate(dt float64) {
	if p.Pinned {
		return
	}

	accel := p.Force.Mul(1 / p.Mass)
	newPos := p.Position.Mul(2).Sub(p.PrevPosition).Add(accel.Mul(dt * dt))

	p.Velocity = newPos.Sub(p.Position).Mul(1 / dt)
	p.PrevPosition = p.Position
	p.Position = newPos
	p.Force = mgl64.Vec3{}
}

// ApplyDamping scales the stored velocity. It only affects the next
// collision response, not the trajectory itself.
func (p *Particle) ApplyDamping(factor float64) {
	if p.Pinned {
		return
	}
	p.Velocity = p.Velocity.Mul(factor)
}
