package cloth

// Sub-stepping keeps the near-rigid constraints and the hard collision snap
// stable at interactive frame deltas.
const (
	DefaultSubsteps             = 5
	DefaultConstraintIterations = 4
)

// Stepper advances a mesh by wall-clock deltas using fixed sub-stepping.
// Within every sub-step the collision pass runs after constraint
// relaxation; the other order would let springs pull particles back through
// the sphere surface.
type Stepper struct {
	Substeps             int
	ConstraintIterations int

	mesh   *Mesh
	sphere Sphere
	paused bool
}

// NewStepper creates a stepper driving mesh against the given sphere
// collider with default sub-step and iteration counts.
func NewStepper(mesh *Mesh, sphere Sphere) *Stepper {
	return &Stepper{
		Substeps:             DefaultSubsteps,
		ConstraintIterations: DefaultConstraintIterations,
		mesh:                 mesh,
		sphere:               sphere,
	}
}

// Mesh returns the mesh currently being driven.
func (s *Stepper) Mesh() *Mesh {
	return s.mesh
}

// SetMesh atomically replaces the driven mesh. All prior particle and
// spring state is discarded; there is no interpolation between topologies.
// Only valid between completed Step calls.
func (s *Stepper) SetMesh(mesh *Mesh) {
	s.mesh = mesh
}

// Collider returns the current sphere obstacle.
func (s *Stepper) Collider() Sphere {
	return s.sphere
}

// SetCollider replaces the sphere obstacle used by collision resolution.
func (s *Stepper) SetCollider(sphere Sphere) {
	s.sphere = sphere
}

// Paused reports whether stepping is currently suspended.
func (s *Stepper) Paused() bool {
	return s.paused
}

// SetPaused toggles the pause state. While paused, Step is a no-op.
func (s *Stepper) SetPaused(paused bool) {
	s.paused = paused
}

// TogglePause flips the pause state and returns the new value.
func (s *Stepper) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Step advances the simulation by dt, split into Substeps equal sub-steps.
// Each sub-step updates the mesh and then resolves sphere collisions.
// Non-positive deltas and the paused state make this a no-op.
func (s *Stepper) Step(dt float64) {
	if s.paused || dt <= 0 || s.mesh == nil {
		return
	}

	subDt := dt / float64(s.Substeps)
	for i := 0; i < s.Substeps; i++ {
		s.mesh.Update(subDt, s.ConstraintIterations)
		s.mesh.ResolveSphereCollision(s.sphere)
	}
}
