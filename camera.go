package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ArSoham/Cloth-Simulator/common"
	"github.com/go-gl/mathgl/mgl64"
)

const cameraFOV = 45.0 // degrees, vertical

// Camera is an orbit camera around the scene origin: drag to rotate, wheel
// to zoom. It owns the world-to-screen projection used by the renderer.
type Camera struct {
	Pitch float64 // degrees
	Yaw   float64 // degrees
	Zoom  float64 // view-space Z offset, always negative

	dragging     bool
	lastX, lastY int
}

func NewCamera() *Camera {
	return &Camera{Pitch: 20, Yaw: 30, Zoom: -12}
}

// Update consumes mouse input for orbiting and zooming. overUI suppresses
// drag starts so button clicks don't spin the camera.
func (c *Camera) Update(overUI bool) {
	x, y := ebiten.CursorPosition()

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !c.dragging && !overUI {
			c.dragging = true
			c.lastX, c.lastY = x, y
		}
		if c.dragging {
			c.Yaw += float64(x-c.lastX) * 0.5
			c.Pitch += float64(y-c.lastY) * 0.5
			c.lastX, c.lastY = x, y
		}
	} else {
		c.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		c.Zoom = common.Clamp(c.Zoom+wy*0.5, -30, -5)
	}
}

// View transforms a world-space point into view space: yaw then pitch
// rotation, then the fixed scene offset.
func (c *Camera) View(p mgl64.Vec3) mgl64.Vec3 {
	rx := mgl64.Rotate3DX(mgl64.DegToRad(c.Pitch))
	ry := mgl64.Rotate3DY(mgl64.DegToRad(c.Yaw))
	v := rx.Mul3x1(ry.Mul3x1(p))
	return v.Add(mgl64.Vec3{0, -1, c.Zoom})
}

// Project maps a world-space point to screen coordinates with a simple
// perspective divide. ok is false for points behind the near plane.
func (c *Camera) Project(p mgl64.Vec3, screenW, screenH float64) (x, y float64, ok bool) {
	v := c.View(p)
	if v.Z() > -0.1 {
		return 0, 0, false
	}

	f := (screenH / 2) / math.Tan(mgl64.DegToRad(cameraFOV/2))
	x = screenW/2 + f*v.X()/-v.Z()
	y = screenH/2 - f*v.Y()/-v.Z()
	return x, y, true
}

// ProjectRadius converts a world-space radius at a point to screen pixels.
func (c *Camera) ProjectRadius(p mgl64.Vec3, r, screenH float64) (float64, bool) {
	v := c.View(p)
	if v.Z() > -0.1 {
		return 0, false
	}
	f := (screenH / 2) / math.Tan(mgl64.DegToRad(cameraFOV/2))
	return f * r / -v.Z(), true
}
