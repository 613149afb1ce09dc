package cloth

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestStepPausedIsNoOp(t *testing.T) {
	m := mustMesh(t, 4, 4, 4, 4, mgl64.Vec3{0, 8, 0})
	s := NewStepper(m, Sphere{Center: mgl64.Vec3{}, Radius: 1.2})

	s.SetPaused(true)
	before := m.Positions()
	for i := 0; i < 10; i++ {
		s.Step(1.0 / 60.0)
	}
	after := m.Positions()

	for i := range before {
		for j := range before[i] {
			if before[i][j] != after[i][j] {
				t.Fatalf("particle (%d,%d) moved while paused", i, j)
			}
		}
	}

	if s.TogglePause() {
		t.Fatal("TogglePause should resume a paused stepper")
	}
	s.Step(1.0 / 60.0)
	if m.At(0, 0).Position == before[0][0] {
		t.Fatal("stepper did not advance after resume")
	}
}

func TestStepIgnoresNonPositiveDelta(t *testing.T) {
	m := mustMesh(t, 4, 4, 3, 3, mgl64.Vec3{0, 8, 0})
	s := NewStepper(m, Sphere{Center: mgl64.Vec3{}, Radius: 1.2})

	before := m.At(1, 1).Position
	s.Step(0)
	s.Step(-0.016)
	if m.At(1, 1).Position != before {
		t.Fatal("non-positive delta advanced the simulation")
	}
}

func TestPinnedInvarianceAcrossSteps(t *testing.T) {
	m := mustMesh(t, 4, 4, 4, 4, mgl64.Vec3{0, 2, 0})
	m.Pin(0, 0)
	m.SetWind(mgl64.Vec3{0.5, 0, 0})

	pinnedPos := m.At(0, 0).Position
	s := NewStepper(m, Sphere{Center: mgl64.Vec3{}, Radius: 1.2})
	for i := 0; i < 100; i++ {
		s.Step(1.0 / 60.0)
	}

	if m.At(0, 0).Position != pinnedPos {
		t.Fatalf("pinned particle moved: %v -> %v", pinnedPos, m.At(0, 0).Position)
	}
	if m.At(0, 0).Velocity != (mgl64.Vec3{}) {
		t.Fatalf("pinned particle gained velocity: %v", m.At(0, 0).Velocity)
	}
}

func TestStepDeterminism(t *testing.T) {
	run := func() *Mesh {
		m := mustMesh(t, 4, 4, 8, 8, mgl64.Vec3{0, 8, 0})
		s := NewStepper(m, Sphere{Center: mgl64.Vec3{}, Radius: 1.2})
		for i := 0; i < 100; i++ {
			s.Step(1.0 / 60.0)
		}
		return m
	}

	a := run()
	b := run()

	for i := range a.Particles {
		if a.Particles[i].Position != b.Particles[i].Position {
			t.Fatalf("particle %d diverged between identical runs: %v vs %v",
				i, a.Particles[i].Position, b.Particles[i].Position)
		}
	}
}

func TestNoPenetrationAfterStep(t *testing.T) {
	m := mustMesh(t, 4, 4, 12, 12, mgl64.Vec3{0, 3, 0})
	sphere := Sphere{Center: mgl64.Vec3{}, Radius: 1.2}
	s := NewStepper(m, sphere)

	for tick := 0; tick < 300; tick++ {
		s.Step(1.0 / 60.0)
		for i := range m.Particles {
			d := m.Particles[i].Position.Sub(sphere.Center).Len()
			if d < sphere.Radius {
				t.Fatalf("tick %d: particle %d inside sphere, |p-c| = %v < %v",
					tick, i, d, sphere.Radius)
			}
		}
	}
}

// A small cloth dropped symmetrically over the ball must land on the upper
// cap and settle there with its constraints nearly at rest length.
func TestClothDrapesAndRestsOnSphere(t *testing.T) {
	m := mustMesh(t, 1, 1, 2, 2, mgl64.Vec3{0, 2, 0})
	sphere := Sphere{Center: mgl64.Vec3{}, Radius: 1.2}
	s := NewStepper(m, sphere)

	for tick := 0; tick < 200; tick++ {
		s.Step(1.0 / 60.0)
	}

	for i := range m.Particles {
		p := m.Particles[i].Position
		if p.Y() < 0.5 {
			t.Fatalf("particle %d sank to height %v, want >= 0.5", i, p.Y())
		}
		if d := p.Sub(sphere.Center).Len(); d < sphere.Radius {
			t.Fatalf("particle %d penetrates sphere: |p-c| = %v", i, d)
		}
	}

	for i, sp := range m.Springs {
		length := m.Particles[sp.B].Position.Sub(m.Particles[sp.A].Position).Len()
		if math.Abs(length-sp.RestLength) > 0.05*sp.RestLength {
			t.Fatalf("spring %d stretched beyond 5%%: length %v, rest %v",
				i, length, sp.RestLength)
		}
	}
}

func TestSetMeshReplacesStateAtomically(t *testing.T) {
	m1 := mustMesh(t, 4, 4, 4, 4, mgl64.Vec3{0, 8, 0})
	s := NewStepper(m1, Sphere{Center: mgl64.Vec3{}, Radius: 1.2})
	for i := 0; i < 30; i++ {
		s.Step(1.0 / 60.0)
	}

	m2 := mustMesh(t, 4, 4, 8, 8, mgl64.Vec3{0, 8, 0})
	s.SetMesh(m2)

	if s.Mesh() != m2 {
		t.Fatal("stepper still drives the old mesh")
	}
	// A rebuilt mesh starts from the drop position with no carried-over motion.
	for i := range m2.Particles {
		if m2.Particles[i].Position != m2.Particles[i].PrevPosition {
			t.Fatalf("rebuilt particle %d carries prior motion", i)
		}
	}
	if got, want := m2.ParticleCount(), 64; got != want {
		t.Fatalf("rebuilt particle count = %d, want %d", got, want)
	}
}

func TestSetColliderReplacesObstacle(t *testing.T) {
	m := mustMesh(t, 1, 1, 2, 2, mgl64.Vec3{0, 2, 0})
	s := NewStepper(m, Sphere{Center: mgl64.Vec3{}, Radius: 0.1})

	bigger, err := NewSphere(mgl64.Vec3{0, 0, 0}, 1.2)
	if err != nil {
		t.Fatal(err)
	}
	s.SetCollider(bigger)
	if s.Collider().Radius != 1.2 {
		t.Fatalf("collider radius = %v, want 1.2", s.Collider().Radius)
	}

	for tick := 0; tick < 200; tick++ {
		s.Step(1.0 / 60.0)
	}
	for i := range m.Particles {
		if d := m.Particles[i].Position.Sub(bigger.Center).Len(); d < bigger.Radius {
			t.Fatalf("particle %d ignores replaced collider, |p-c| = %v", i, d)
		}
	}
}
