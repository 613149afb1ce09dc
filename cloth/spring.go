package cloth

// rigidity is the per-pass positional correction factor. Higher than the
// critically-damped 0.5 so each relaxation pass over-corrects, which
// approximates an inextensible cloth over repeated iterations.
const rigidity = 0.8

// Spring is a distance constraint between two particles in a mesh. It holds
// indices into the mesh's particle store rather than pointers, so a mesh
// rebuild can never leave a spring pointing at stale memory.
type Spring struct {
	A, B       int
	RestLength float64
	// Stiffness is carried for force-based blending but the rigid
	// positional correction below does not read it.
	Stiffness float64
}

func newSpring(particles []Particle, a, b int, stiffness float64) Spring {
	return Spring{
		A:          a,
		B:          b,
		RestLength: particles[b].Position.Sub(particles[a].Position).Len(),
		Stiffness:  stiffness,
	}
}

// SatisfyConstraint nudges both endpoints toward the rest length with a
// single Gauss-Seidel style positional correction. A zero-length delta has
// no defined direction and is skipped. Pinned endpoints do not move; the
// correction is not redistributed to the free endpoint.
func (s *Spring) SatisfyConstraint(particles []Particle) {
	p1 := &particles[s.A]
	p2 := &particles[s.B]

	delta := p2.Position.Sub(p1.Position)
	length := delta.Len()
	if length == 0 {
		return
	}

	scale := (length - s.RestLength) / length
	correction := delta.Mul(scale * rigidity)

	if !p1.Pinned {
		p1.Position = p1.Position.Add(correction)
	}
	if !p2.Pinned {
		p2.Position = p2.Position.Sub(correction)
	}
}
