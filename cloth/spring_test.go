package cloth

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func mustParticle(t *testing.T, pos mgl64.Vec3) Particle {
	t.Helper()
	p, err := NewParticle(pos, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSatisfyConstraintSinglePass(t *testing.T) {
	cases := []struct {
		name       string
		posA, posB mgl64.Vec3
		rest       float64
		pinA, pinB bool
		wantA      mgl64.Vec3
		wantB      mgl64.Vec3
	}{
		{
			// Stretched to twice the rest length: each free endpoint moves
			// (len-rest)*0.8 = 0.8 toward the other, overshooting past rest.
			name: "stretched_both_free",
			posA: mgl64.Vec3{0, 0, 0}, posB: mgl64.Vec3{2, 0, 0}, rest: 1,
			wantA: mgl64.Vec3{0.8, 0, 0}, wantB: mgl64.Vec3{1.2, 0, 0},
		},
		{
			// Compressed to half the rest length: endpoints pushed apart by
			// the same rule, (len-rest)*0.8 = -0.4 each.
			name: "compressed_both_free",
			posA: mgl64.Vec3{0, 0, 0}, posB: mgl64.Vec3{0.5, 0, 0}, rest: 1,
			wantA: mgl64.Vec3{-0.4, 0, 0}, wantB: mgl64.Vec3{0.9, 0, 0},
		},
		{
			// A pinned endpoint absorbs nothing; the correction is not
			// redistributed, so the free end moves the usual 0.8.
			name: "stretched_one_pinned",
			posA: mgl64.Vec3{0, 0, 0}, posB: mgl64.Vec3{2, 0, 0}, rest: 1,
			pinA:  true,
			wantA: mgl64.Vec3{0, 0, 0}, wantB: mgl64.Vec3{1.2, 0, 0},
		},
		{
			// Coincident endpoints have no correction direction; skip.
			name: "degenerate_zero_length",
			posA: mgl64.Vec3{1, 1, 1}, posB: mgl64.Vec3{1, 1, 1}, rest: 1,
			wantA: mgl64.Vec3{1, 1, 1}, wantB: mgl64.Vec3{1, 1, 1},
		},
		{
			name: "at_rest_no_op",
			posA: mgl64.Vec3{0, 0, 0}, posB: mgl64.Vec3{1, 0, 0}, rest: 1,
			wantA: mgl64.Vec3{0, 0, 0}, wantB: mgl64.Vec3{1, 0, 0},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			particles := []Particle{mustParticle(t, c.posA), mustParticle(t, c.posB)}
			particles[0].Pinned = c.pinA
			particles[1].Pinned = c.pinB

			s := Spring{A: 0, B: 1, RestLength: c.rest, Stiffness: structuralStiffness}
			s.SatisfyConstraint(particles)

			vecApprox(t, particles[0].Position, c.wantA, 1e-12, "particle A")
			vecApprox(t, particles[1].Position, c.wantB, 1e-12, "particle B")
		})
	}
}

func TestConstraintRelaxationConverges(t *testing.T) {
	cases := []struct {
		name string
		posB mgl64.Vec3
	}{
		{"stretched", mgl64.Vec3{2, 0, 0}},
		{"compressed", mgl64.Vec3{0.5, 0, 0}},
		{"diagonal", mgl64.Vec3{1.2, 1.2, 1.2}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			particles := []Particle{
				mustParticle(t, mgl64.Vec3{0, 0, 0}),
				mustParticle(t, c.posB),
			}
			s := Spring{A: 0, B: 1, RestLength: 1, Stiffness: structuralStiffness}

			// Two-sided correction contracts the length error by 0.6 per
			// pass, alternating sign; 20 passes is far past 1e-3.
			for i := 0; i < 20; i++ {
				s.SatisfyConstraint(particles)
			}

			dist := particles[1].Position.Sub(particles[0].Position).Len()
			if math.Abs(dist-1) > 1e-3 {
				t.Fatalf("distance %v did not converge to rest length 1", dist)
			}
		})
	}
}

func TestRestLengthFixedAtCreation(t *testing.T) {
	particles := []Particle{
		mustParticle(t, mgl64.Vec3{0, 0, 0}),
		mustParticle(t, mgl64.Vec3{0, 0, 1.5}),
	}
	s := newSpring(particles, 0, 1, bendStiffness)
	if math.Abs(s.RestLength-1.5) > 1e-15 {
		t.Fatalf("rest length = %v, want 1.5", s.RestLength)
	}

	particles[1].Position = mgl64.Vec3{0, 0, 3}
	s.SatisfyConstraint(particles)
	if math.Abs(s.RestLength-1.5) > 1e-15 {
		t.Fatalf("rest length mutated to %v", s.RestLength)
	}
}
