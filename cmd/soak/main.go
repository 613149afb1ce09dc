// Command soak runs the cloth simulation headless and reports stability
// metrics: penetration violations, maximum spring stretch, and whether two
// identical runs stay bit-identical. Useful for checking parameter changes
// without the viewer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ArSoham/Cloth-Simulator/cloth"
	"github.com/ArSoham/Cloth-Simulator/config"
)

func main() {
	scenario := flag.String("scenario", "", "scenario yaml path (embedded default when empty)")
	ticks := flag.Int("ticks", 600, "ticks to simulate per resolution")
	dt := flag.Float64("dt", 1.0/60.0, "frame delta per tick")
	resList := flag.String("resolutions", "4,8,12,16", "comma-separated grid resolutions")
	flag.Parse()

	spec, err := config.Load(*scenario)
	if err != nil {
		log.Fatal(err)
	}
	resolutions, err := parseResolutions(*resList)
	if err != nil {
		log.Fatal(err)
	}

	failed := false
	for _, res := range resolutions {
		report, err := soak(spec, res, *ticks, *dt)
		if err != nil {
			log.Fatalf("soak: resolution %d: %v", res, err)
		}
		fmt.Println(report)
		if report.penetrations > 0 || !report.deterministic {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

type report struct {
	resolution    int
	ticks         int
	particles     int
	springs       int
	penetrations  int
	maxStretch    float64
	minHeight     float64
	deterministic bool
}

func (r report) String() string {
	return fmt.Sprintf(
		"res=%dx%d particles=%d springs=%d ticks=%d penetrations=%d maxStretch=%.4f minHeight=%.3f deterministic=%v",
		r.resolution, r.resolution, r.particles, r.springs, r.ticks,
		r.penetrations, r.maxStretch, r.minHeight, r.deterministic)
}

func soak(spec config.ScenarioSpec, resolution, ticks int, dt float64) (report, error) {
	first, err := run(spec, resolution, ticks, dt)
	if err != nil {
		return report{}, err
	}
	second, err := run(spec, resolution, ticks, dt)
	if err != nil {
		return report{}, err
	}

	sphere, err := spec.BuildSphere()
	if err != nil {
		return report{}, err
	}

	r := report{
		resolution:    resolution,
		ticks:         ticks,
		particles:     first.ParticleCount(),
		springs:       first.SpringCount(),
		minHeight:     first.Particles[0].Position.Y(),
		deterministic: true,
	}

	for i := range first.Particles {
		p := first.Particles[i].Position
		if p.Sub(sphere.Center).Len() < sphere.Radius {
			r.penetrations++
		}
		if p.Y() < r.minHeight {
			r.minHeight = p.Y()
		}
		if p != second.Particles[i].Position {
			r.deterministic = false
		}
	}

	for _, s := range first.Springs {
		length := first.Particles[s.B].Position.Sub(first.Particles[s.A].Position).Len()
		if s.RestLength > 0 {
			if stretch := length/s.RestLength - 1; stretch > r.maxStretch {
				r.maxStretch = stretch
			}
		}
	}

	return r, nil
}

func run(spec config.ScenarioSpec, resolution, ticks int, dt float64) (*cloth.Mesh, error) {
	mesh, err := spec.BuildMesh(resolution)
	if err != nil {
		return nil, err
	}
	sphere, err := spec.BuildSphere()
	if err != nil {
		return nil, err
	}

	stepper := cloth.NewStepper(mesh, sphere)
	stepper.Substeps = spec.Physics.Substeps
	stepper.ConstraintIterations = spec.Physics.ConstraintIterations

	for i := 0; i < ticks; i++ {
		stepper.Step(dt)
	}
	return mesh, nil
}

func parseResolutions(list string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("soak: bad resolution %q: %w", part, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("soak: no resolutions given")
	}
	return out, nil
}
