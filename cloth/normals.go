package cloth

import "github.com/go-gl/mathgl/mgl64"

// Normals computes per-particle surface normals by accumulating the two
// triangle normals of each grid cell into its corners, then normalizing.
// The result is indexed like Particles (row-major). This is render support
// only; the physics never reads normals.
func (m *Mesh) Normals() []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(m.Particles))

	for i := 0; i < m.Rows-1; i++ {
		for j := 0; j < m.Cols-1; j++ {
			i1 := m.Index(i, j)
			i2 := m.Index(i, j+1)
			i3 := m.Index(i+1, j)
			i4 := m.Index(i+1, j+1)

			p1 := m.Particles[i1].Position
			p2 := m.Particles[i2].Position
			p3 := m.Particles[i3].Position
			p4 := m.Particles[i4].Position

			// Both triangles wind the same way so their normals agree in
			// orientation; otherwise a flat cell's contributions cancel.
			n1 := unitCross(p2.Sub(p1), p3.Sub(p1))
			n2 := unitCross(p4.Sub(p2), p3.Sub(p2))

			normals[i1] = normals[i1].Add(n1)
			normals[i2] = normals[i2].Add(n1).Add(n2)
			normals[i3] = normals[i3].Add(n1).Add(n2)
			normals[i4] = normals[i4].Add(n2)
		}
	}

	for i := range normals {
		if l := normals[i].Len(); l > 0 {
			normals[i] = normals[i].Mul(1 / l)
		}
	}
	return normals
}

func unitCross(a, b mgl64.Vec3) mgl64.Vec3 {
	n := a.Cross(b)
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return n
}
