package cloth

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is the static rigid obstacle the cloth collides with. It does not
// move during a run; replacing it wholesale is the only mutation.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// NewSphere validates and returns a sphere collider.
func NewSphere(center mgl64.Vec3, radius float64) (Sphere, error) {
	if radius <= 0 {
		return Sphere{}, fmt.Errorf("cloth: sphere radius must be positive, got %v", radius)
	}
	return Sphere{Center: center, Radius: radius}, nil
}
