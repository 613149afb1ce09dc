package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/ArSoham/Cloth-Simulator/cloth"
	"github.com/ArSoham/Cloth-Simulator/config"
	"github.com/ArSoham/Cloth-Simulator/wind"
)

const (
	baseWidth  = 1200
	baseHeight = 800

	// Frame deltas are clamped so a stalled frame can't explode the
	// constraint solver.
	maxFrameDelta = 0.02
)

// resolutionChoices mirrors the on-screen buttons and the 1-8 keys.
var resolutionChoices = []int{4, 6, 8, 10, 12, 14, 16, 32}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

type Game struct {
	frames int

	scenarioPath string
	spec         config.ScenarioSpec

	stepper    *cloth.Stepper
	cam        *Camera
	ui         *ebitenui.UI
	windScript *wind.Script
	watcher    *config.Watcher

	simTime     float64
	resolution  int
	wireframe   bool
	debug       bool
	clipboardOK bool
}

func NewGame(scenarioPath string, watch, debug bool) (*Game, error) {
	spec, err := config.Load(scenarioPath)
	if err != nil {
		return nil, err
	}

	mesh, err := spec.BuildMesh(0)
	if err != nil {
		return nil, err
	}
	sphere, err := spec.BuildSphere()
	if err != nil {
		return nil, err
	}

	g := &Game{
		scenarioPath: scenarioPath,
		spec:         spec,
		stepper:      cloth.NewStepper(mesh, sphere),
		cam:          NewCamera(),
		resolution:   spec.Cloth.Resolution,
		debug:        debug,
	}
	g.stepper.Substeps = spec.Physics.Substeps
	g.stepper.ConstraintIterations = spec.Physics.ConstraintIterations
	g.ui = buildUI(g)

	if spec.Wind.Script != "" {
		g.windScript, err = wind.LoadFile(spec.Wind.Script)
		if err != nil {
			return nil, err
		}
	}

	if watch && scenarioPath != "" {
		g.watcher, err = config.Watch(scenarioPath)
		if err != nil {
			log.Printf("game: scenario watch disabled: %v", err)
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.drainWatcher()
	if err := g.handleKeys(); err != nil {
		return err
	}

	g.cam.Update(cursorOverPanel())
	g.ui.Update()

	dt := min(1.0/float64(ebiten.TPS()), maxFrameDelta)
	if !g.stepper.Paused() {
		g.simTime += dt
		g.applyWind()
	}
	g.stepper.Step(dt)

	return nil
}

func (g *Game) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.stepper.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.resetCloth()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.wireframe = !g.wireframe
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyDiagnostics()
	}

	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.setResolution(resolutionChoices[i])
		}
	}
	return nil
}

func (g *Game) applyWind() {
	if g.windScript == nil {
		return
	}
	force, err := g.windScript.Force(g.simTime)
	if err != nil {
		log.Printf("game: wind script: %v", err)
		g.windScript = nil
		return
	}
	g.stepper.Mesh().SetWind(force)
}

// setResolution rebuilds the cloth at a new grid resolution. All prior
// particle and spring state is discarded.
func (g *Game) setResolution(res int) {
	mesh, err := g.spec.BuildMesh(res)
	if err != nil {
		log.Printf("game: resolution change to %d: %v", res, err)
		return
	}
	g.resolution = res
	g.simTime = 0
	g.stepper.SetMesh(mesh)
	g.ui = buildUI(g)
	log.Printf("game: rebuilt cloth at %dx%d (%d particles, %d springs)",
		res, res, mesh.ParticleCount(), mesh.SpringCount())
}

// resetCloth drops the cloth again at the current resolution.
func (g *Game) resetCloth() {
	g.setResolution(g.resolution)
}

// drainWatcher applies scenario file edits between ticks. Tunables take
// effect immediately; grid geometry applies on the next reset.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			changed = true
		case err := <-g.watcher.Errors:
			log.Printf("game: scenario watch: %v", err)
		default:
			if changed {
				g.reloadScenario()
			}
			return
		}
	}
}

func (g *Game) reloadScenario() {
	spec, err := config.Load(g.scenarioPath)
	if err != nil {
		log.Printf("game: scenario reload rejected: %v", err)
		return
	}

	g.spec = spec
	g.stepper.Substeps = spec.Physics.Substeps
	g.stepper.ConstraintIterations = spec.Physics.ConstraintIterations

	mesh := g.stepper.Mesh()
	mesh.Gravity = spec.Physics.GravityVec()
	mesh.Damping = spec.Physics.Damping

	if sphere, err := spec.BuildSphere(); err == nil {
		g.stepper.SetCollider(sphere)
	}

	if spec.Wind.Script != "" {
		script, err := wind.LoadFile(spec.Wind.Script)
		if err != nil {
			log.Printf("game: wind script reload: %v", err)
		} else {
			g.windScript = script
		}
	} else {
		g.windScript = nil
		mesh.SetWind(vec3(spec.Wind.Force))
	}

	log.Printf("game: scenario reloaded from %s", g.scenarioPath)
}

func vec3(v [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func (g *Game) diagnostics() string {
	mesh := g.stepper.Mesh()
	state := "running"
	if g.stepper.Paused() {
		state = "paused"
	}
	return fmt.Sprintf("resolution: %dx%d\nparticles: %d\nsprings: %d\nstate: %s\nFPS: %.1f",
		g.resolution, g.resolution, mesh.ParticleCount(), mesh.SpringCount(),
		state, ebiten.ActualFPS())
}

func (g *Game) copyDiagnostics() {
	if !g.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.diagnostics()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScene(screen, g)
	g.ui.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, g.diagnostics(), 10, baseHeight-90)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
