// Package cloth implements a mass-spring cloth simulation: a rectangular
// grid of point masses under Verlet integration, held together by iterative
// distance-constraint relaxation, colliding rigidly with a sphere.
package cloth

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ArSoham/Cloth-Simulator/common"
)

const (
	// Per-particle mass is a fixed small constant regardless of grid
	// resolution, so finer cloths are heavier in total, not per point.
	particleMass = 0.1

	structuralStiffness = 50.0
	shearStiffness      = 50.0
	bendStiffness       = 30.0

	// collisionMargin keeps particles a hair off the sphere surface so the
	// rendered cloth never z-fights or tunnels through it.
	collisionMargin = 0.02
	// centerEpsilon bounds the degenerate zone around the sphere center
	// where the contact normal is undefined.
	centerEpsilon = 0.001

	bounceFactor      = 1.5
	contactFriction   = 0.5
	degenerateDamping = 0.1
)

// Defaults for the tunables a driver usually leaves alone.
const (
	DefaultDamping = 0.99
)

// DefaultGravity is standard gravity pointing down the Y axis.
var DefaultGravity = mgl64.Vec3{0, -9.8, 0}

// RandomDirection supplies unit vectors for the degenerate collision
// recovery path. It is injectable so that path stays deterministic in tests.
type RandomDirection func() mgl64.Vec3

func defaultRandomDirection() mgl64.Vec3 {
	for {
		v := mgl64.Vec3{
			rand.NormFloat64(),
			rand.NormFloat64(),
			rand.NormFloat64(),
		}
		if l := v.Len(); l > 0 {
			return v.Mul(1 / l)
		}
	}
}

// Mesh owns the particle grid and the spring set and runs one physics tick
// at a time: force application, Verlet integration, constraint relaxation,
// then (driven by the stepper) sphere collision resolution.
type Mesh struct {
	Width  float64
	Height float64
	Rows   int
	Cols   int
	Start  mgl64.Vec3

	// Particles is the row-major grid store; Springs index into it.
	Particles []Particle
	Springs   []Spring

	Gravity mgl64.Vec3
	Damping float64
	RandDir RandomDirection

	wind mgl64.Vec3
}

// NewMesh builds a fully connected cloth grid of rows x cols particles
// spanning width x height world units centered on start. The grid and the
// spring set are immutable for the mesh's lifetime; resolution changes mean
// a new mesh.
func NewMesh(width, height float64, rows, cols int, start mgl64.Vec3) (*Mesh, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("cloth: grid resolution must be at least 2x2, got %dx%d", rows, cols)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("cloth: cloth dimensions must be positive, got %vx%v", width, height)
	}

	m := &Mesh{
		Width:   width,
		Height:  height,
		Rows:    rows,
		Cols:    cols,
		Start:   start,
		Gravity: DefaultGravity,
		Damping: DefaultDamping,
		RandDir: defaultRandomDirection,
	}
	m.buildGrid()
	m.buildSprings()
	return m, nil
}

func (m *Mesh) buildGrid() {
	m.Particles = make([]Particle, 0, m.Rows*m.Cols)

	left := m.Start.X() - m.Width/2
	right := m.Start.X() + m.Width/2
	near := m.Start.Z() - m.Height/2
	far := m.Start.Z() + m.Height/2

	for i := 0; i < m.Rows; i++ {
		tz := float64(i) / float64(m.Rows-1)
		for j := 0; j < m.Cols; j++ {
			tx := float64(j) / float64(m.Cols-1)
			pos := mgl64.Vec3{
				common.Lerp(left, right, tx),
				m.Start.Y(),
				common.Lerp(near, far, tz),
			}
			p, _ := NewParticle(pos, particleMass)
			m.Particles = append(m.Particles, p)
		}
	}
}

// buildSprings wires the four constraint families. The overlap between them
// is what makes the cloth hold its shape: structural springs alone shear and
// fold freely.
func (m *Mesh) buildSprings() {
	m.Springs = m.Springs[:0]

	add := func(a, b int, stiffness float64) {
		m.Springs = append(m.Springs, newSpring(m.Particles, a, b, stiffness))
	}

	// Structural: grid-adjacent neighbors.
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			if j < m.Cols-1 {
				add(m.Index(i, j), m.Index(i, j+1), structuralStiffness)
			}
			if i < m.Rows-1 {
				add(m.Index(i, j), m.Index(i+1, j), structuralStiffness)
			}
		}
	}

	// Shear: both diagonals of every cell.
	for i := 0; i < m.Rows-1; i++ {
		for j := 0; j < m.Cols-1; j++ {
			add(m.Index(i, j), m.Index(i+1, j+1), shearStiffness)
			add(m.Index(i, j+1), m.Index(i+1, j), shearStiffness)
		}
	}

	// Bend: skip-one neighbors, softer, resist local folding.
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			if j < m.Cols-2 {
				add(m.Index(i, j), m.Index(i, j+2), bendStiffness)
			}
			if i < m.Rows-2 {
				add(m.Index(i, j), m.Index(i+2, j), bendStiffness)
			}
		}
	}
}

// Index maps a (row, col) grid coordinate to the flat particle slice.
func (m *Mesh) Index(row, col int) int {
	return row*m.Cols + col
}

// At returns the particle at a grid coordinate.
func (m *Mesh) At(row, col int) *Particle {
	return &m.Particles[m.Index(row, col)]
}

// Pin anchors the particle at a grid coordinate. Pinned particles ignore
// forces, integration, damping and collisions for the rest of the mesh's
// lifetime.
func (m *Mesh) Pin(row, col int) {
	m.At(row, col).Pinned = true
}

// ParticleCount reports the number of particles in the grid.
func (m *Mesh) ParticleCount() int {
	return len(m.Particles)
}

// SpringCount reports the number of distance constraints.
func (m *Mesh) SpringCount() int {
	return len(m.Springs)
}

// SetWind replaces the uniform external force applied to every particle
// each tick. Unlike gravity it is independent of particle mass. A zero
// vector clears it.
func (m *Mesh) SetWind(f mgl64.Vec3) {
	m.wind = f
}

// Wind returns the current uniform external force.
func (m *Mesh) Wind() mgl64.Vec3 {
	return m.wind
}

// Positions returns a row-major snapshot of particle positions for
// rendering. The returned slices are copies; mutating them does not touch
// the simulation.
func (m *Mesh) Positions() [][]mgl64.Vec3 {
	grid := make([][]mgl64.Vec3, m.Rows)
	for i := 0; i < m.Rows; i++ {
		row := make([]mgl64.Vec3, m.Cols)
		for j := 0; j < m.Cols; j++ {
			row[j] = m.At(i, j).Position
		}
		grid[i] = row
	}
	return grid
}

// Update runs one physics tick: gravity and wind accumulation, Verlet
// integration with damping, then constraintIterations relaxation passes
// over every spring. Collision resolution is a separate call so the driver
// can order it after relaxation within each sub-step.
func (m *Mesh) Update(dt float64, constraintIterations int) {
	windActive := m.wind != (mgl64.Vec3{})
	for i := range m.Particles {
		p := &m.Particles[i]
		p.ApplyForce(m.Gravity.Mul(p.Mass))
		if windActive {
			p.ApplyForce(m.wind)
		}
	}

	for i := range m.Particles {
		p := &m.Particles[i]
		p.Integrate(dt)
		p.ApplyDamping(m.Damping)
	}

	for it := 0; it < constraintIterations; it++ {
		for i := range m.Springs {
			m.Springs[i].SatisfyConstraint(m.Particles)
		}
	}
}

// ResolveSphereCollision projects every unpinned particle that penetrates
// the sphere back onto its surface and kills the inward velocity component
// with a small rebound. A particle sitting at the sphere center has no
// contact normal; it is pushed out along a random direction instead.
func (m *Mesh) ResolveSphereCollision(s Sphere) {
	shell := s.Radius + collisionMargin

	for i := range m.Particles {
		p := &m.Particles[i]
		if p.Pinned {
			continue
		}

		delta := p.Position.Sub(s.Center)
		dist := delta.Len()
		if dist >= shell {
			continue
		}

		if dist > centerEpsilon {
			normal := delta.Mul(1 / dist)
			p.Position = s.Center.Add(normal.Mul(shell))

			vn := p.Velocity.Dot(normal)
			if vn < 0 {
				p.Velocity = p.Velocity.Sub(normal.Mul(vn * bounceFactor))
			}
			p.Velocity = p.Velocity.Mul(contactFriction)
		} else {
			dir := m.RandDir()
			p.Position = s.Center.Add(dir.Mul(shell))
			p.Velocity = p.Velocity.Mul(degenerateDamping)
		}
	}
}
