package main

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	backgroundColor = color.RGBA{0x14, 0x16, 0x20, 0xff}
	ballColor       = color.RGBA{0xff, 0x4d, 0x4d, 0xff}
	gridLineColor   = color.RGBA{0x00, 0x00, 0x00, 0xff}
	wireColor       = color.RGBA{0xe8, 0xe8, 0xe8, 0xff}
)

// lightDir matches the original fixed light placement, normalized once.
var lightDir = mgl64.Vec3{5, 10, 5}.Normalize()

var whiteSubImage *ebiten.Image

func init() {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

func drawScene(screen *ebiten.Image, g *Game) {
	screen.Fill(backgroundColor)

	drawBall(screen, g)

	if g.wireframe {
		drawClothWireframe(screen, g)
	} else {
		drawClothShaded(screen, g)
		drawClothGridLines(screen, g)
	}
}

func drawBall(screen *ebiten.Image, g *Game) {
	sphere := g.stepper.Collider()

	cx, cy, ok := g.cam.Project(sphere.Center, baseWidth, baseHeight)
	if !ok {
		return
	}
	r, ok := g.cam.ProjectRadius(sphere.Center, sphere.Radius, baseHeight)
	if !ok || r <= 0 {
		return
	}

	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), ballColor, true)
}

// drawClothWireframe strokes every spring of the mesh as a line.
func drawClothWireframe(screen *ebiten.Image, g *Game) {
	mesh := g.stepper.Mesh()

	type point struct {
		x, y float64
		ok   bool
	}
	projected := make([]point, mesh.ParticleCount())
	for i := range mesh.Particles {
		x, y, ok := g.cam.Project(mesh.Particles[i].Position, baseWidth, baseHeight)
		projected[i] = point{x, y, ok}
	}

	for _, s := range mesh.Springs {
		a, b := projected[s.A], projected[s.B]
		if !a.ok || !b.ok {
			continue
		}
		vector.StrokeLine(screen, float32(a.x), float32(a.y), float32(b.x), float32(b.y), 1, wireColor, true)
	}
}

// drawClothGridLines overlays the structural grid on the shaded cloth, the
// black-on-white look of the original.
func drawClothGridLines(screen *ebiten.Image, g *Game) {
	mesh := g.stepper.Mesh()

	stroke := func(a, b mgl64.Vec3) {
		x0, y0, ok0 := g.cam.Project(a, baseWidth, baseHeight)
		x1, y1, ok1 := g.cam.Project(b, baseWidth, baseHeight)
		if !ok0 || !ok1 {
			return
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, gridLineColor, true)
	}

	for i := 0; i < mesh.Rows; i++ {
		for j := 0; j < mesh.Cols; j++ {
			if j < mesh.Cols-1 {
				stroke(mesh.At(i, j).Position, mesh.At(i, j+1).Position)
			}
			if i < mesh.Rows-1 {
				stroke(mesh.At(i, j).Position, mesh.At(i+1, j).Position)
			}
		}
	}
}

// drawClothShaded renders the cloth as Lambert-lit triangles, two per grid
// cell, sorted back to front.
func drawClothShaded(screen *ebiten.Image, g *Game) {
	mesh := g.stepper.Mesh()
	normals := mesh.Normals()

	vertices := make([]ebiten.Vertex, mesh.ParticleCount())
	visible := make([]bool, mesh.ParticleCount())
	depth := make([]float64, mesh.ParticleCount())

	for i := range mesh.Particles {
		p := mesh.Particles[i].Position
		x, y, ok := g.cam.Project(p, baseWidth, baseHeight)
		visible[i] = ok
		depth[i] = g.cam.View(p).Z()

		// Two-sided Lambert lighting on white cloth.
		shade := 0.3 + 0.7*absDot(normals[i], lightDir)
		vertices[i] = ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(shade),
			ColorG: float32(shade),
			ColorB: float32(shade),
			ColorA: 1,
		}
	}

	type tri struct {
		a, b, c uint16
		depth   float64
	}
	tris := make([]tri, 0, 2*(mesh.Rows-1)*(mesh.Cols-1))
	addTri := func(a, b, c int) {
		if !visible[a] || !visible[b] || !visible[c] {
			return
		}
		tris = append(tris, tri{
			a: uint16(a), b: uint16(b), c: uint16(c),
			depth: (depth[a] + depth[b] + depth[c]) / 3,
		})
	}

	for i := 0; i < mesh.Rows-1; i++ {
		for j := 0; j < mesh.Cols-1; j++ {
			p1 := mesh.Index(i, j)
			p2 := mesh.Index(i, j+1)
			p3 := mesh.Index(i+1, j)
			p4 := mesh.Index(i+1, j+1)
			addTri(p1, p2, p3)
			addTri(p2, p4, p3)
		}
	}

	// Painter's order: most distant (most negative view Z) first.
	sort.Slice(tris, func(a, b int) bool { return tris[a].depth < tris[b].depth })

	indices := make([]uint16, 0, 3*len(tris))
	for _, t := range tris {
		indices = append(indices, t.a, t.b, t.c)
	}

	screen.DrawTriangles(vertices, indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func absDot(a, b mgl64.Vec3) float64 {
	d := a.Dot(b)
	if d < 0 {
		return -d
	}
	return d
}
