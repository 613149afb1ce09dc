package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/ArSoham/Cloth-Simulator/cloth"
)

//go:embed scenario.yaml
var defaultsFS embed.FS

// ClothSpec describes the mesh to build on startup and on reset.
type ClothSpec struct {
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Resolution int        `yaml:"resolution"`
	Start      [3]float64 `yaml:"start"`
}

// SphereSpec describes the static ball obstacle.
type SphereSpec struct {
	Center [3]float64 `yaml:"center"`
	Radius float64    `yaml:"radius"`
}

// PhysicsSpec holds the simulation tunables. These can be live-reloaded
// between ticks without rebuilding the mesh. Gravity is a pointer so an
// explicit zero vector in a scenario file is distinguishable from an
// omitted one; Load guarantees it is non-nil afterwards.
type PhysicsSpec struct {
	Gravity              *[3]float64 `yaml:"gravity"`
	Damping              float64     `yaml:"damping"`
	ConstraintIterations int         `yaml:"constraint_iterations"`
	Substeps             int         `yaml:"substeps"`
}

// GravityVec returns the configured gravity as a vector.
func (p *PhysicsSpec) GravityVec() mgl64.Vec3 {
	if p.Gravity == nil {
		return cloth.DefaultGravity
	}
	return vec3(*p.Gravity)
}

// WindSpec selects either a static uniform force or a tengo script that
// computes one from elapsed simulation time.
type WindSpec struct {
	Force  [3]float64 `yaml:"force"`
	Script string     `yaml:"script"`
}

// ScenarioSpec is the full configuration for one simulation run.
type ScenarioSpec struct {
	Cloth   ClothSpec   `yaml:"cloth"`
	Sphere  SphereSpec  `yaml:"sphere"`
	Physics PhysicsSpec `yaml:"physics"`
	Wind    WindSpec    `yaml:"wind"`
}

// Load reads a scenario from disk, falling back to the embedded default
// when path is empty or missing. Defaults are filled in for omitted
// tunables before validation.
func Load(path string) (ScenarioSpec, error) {
	data, err := read(path)
	if err != nil {
		return ScenarioSpec{}, err
	}

	var spec ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return ScenarioSpec{}, fmt.Errorf("config: unmarshal %s: %w", displayName(path), err)
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return ScenarioSpec{}, err
	}
	return spec, nil
}

// Default returns the embedded scenario.
func Default() ScenarioSpec {
	spec, err := Load("")
	if err != nil {
		// The embedded scenario is part of the build; failing to parse it
		// is a programming error, not a runtime condition.
		panic(err)
	}
	return spec
}

func read(path string) ([]byte, error) {
	if path == "" {
		return defaultsFS.ReadFile("scenario.yaml")
	}
	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return data, nil
}

func displayName(path string) string {
	if path == "" {
		return "embedded scenario.yaml"
	}
	return path
}

func (s *ScenarioSpec) applyDefaults() {
	if s.Physics.Gravity == nil {
		s.Physics.Gravity = &[3]float64{
			cloth.DefaultGravity.X(),
			cloth.DefaultGravity.Y(),
			cloth.DefaultGravity.Z(),
		}
	}
	if s.Physics.Damping == 0 {
		s.Physics.Damping = cloth.DefaultDamping
	}
	if s.Physics.ConstraintIterations == 0 {
		s.Physics.ConstraintIterations = cloth.DefaultConstraintIterations
	}
	if s.Physics.Substeps == 0 {
		s.Physics.Substeps = cloth.DefaultSubsteps
	}
}

// Validate rejects parameters the simulation core would refuse.
func (s *ScenarioSpec) Validate() error {
	if s.Cloth.Resolution < 2 {
		return fmt.Errorf("config: cloth resolution must be at least 2, got %d", s.Cloth.Resolution)
	}
	if s.Cloth.Width <= 0 || s.Cloth.Height <= 0 {
		return fmt.Errorf("config: cloth dimensions must be positive, got %vx%v", s.Cloth.Width, s.Cloth.Height)
	}
	if s.Sphere.Radius <= 0 {
		return fmt.Errorf("config: sphere radius must be positive, got %v", s.Sphere.Radius)
	}
	if s.Physics.Substeps < 1 {
		return fmt.Errorf("config: substeps must be at least 1, got %d", s.Physics.Substeps)
	}
	if s.Physics.ConstraintIterations < 1 {
		return fmt.Errorf("config: constraint iterations must be at least 1, got %d", s.Physics.ConstraintIterations)
	}
	if s.Physics.Damping <= 0 || s.Physics.Damping > 1 {
		return fmt.Errorf("config: damping must be in (0, 1], got %v", s.Physics.Damping)
	}
	return nil
}

// BuildMesh constructs a cloth mesh from the spec at the given resolution,
// applying the spec's tunables. A resolution of 0 uses the spec's own.
func (s *ScenarioSpec) BuildMesh(resolution int) (*cloth.Mesh, error) {
	if resolution == 0 {
		resolution = s.Cloth.Resolution
	}
	m, err := cloth.NewMesh(s.Cloth.Width, s.Cloth.Height, resolution, resolution, vec3(s.Cloth.Start))
	if err != nil {
		return nil, err
	}
	m.Gravity = s.Physics.GravityVec()
	m.Damping = s.Physics.Damping
	m.SetWind(vec3(s.Wind.Force))
	return m, nil
}

// BuildSphere constructs the collider from the spec.
func (s *ScenarioSpec) BuildSphere() (cloth.Sphere, error) {
	return cloth.NewSphere(vec3(s.Sphere.Center), s.Sphere.Radius)
}

func vec3(v [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}
