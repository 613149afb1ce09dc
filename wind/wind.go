// Package wind evaluates user-supplied tengo scripts into uniform wind
// forces for the cloth simulation. A script defines a wind function taking
// elapsed simulation time and returning a force map:
//
//	wind := func(t) {
//	    return {x: 2 * math.sin(t), y: 0, z: 0.5}
//	}
package wind

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

const dispatchScript = `
__out := wind(__t)
`

// Script is a compiled wind function, evaluated once per tick.
type Script struct {
	compiled *tengo.Compiled
}

// Compile builds a wind script from source. The source must define a
// callable named wind.
func Compile(src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte(dispatchScript)...))
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	if err := script.Add("__t", 0.0); err != nil {
		return nil, fmt.Errorf("wind: add time variable: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("wind: compile script: %w", err)
	}
	return &Script{compiled: compiled}, nil
}

// LoadFile compiles a wind script from disk.
func LoadFile(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wind: read %s: %w", path, err)
	}
	return Compile(src)
}

// Force evaluates the script at simulation time t and returns the uniform
// wind force to apply this tick.
func (s *Script) Force(t float64) (mgl64.Vec3, error) {
	if err := s.compiled.Set("__t", t); err != nil {
		return mgl64.Vec3{}, fmt.Errorf("wind: set time: %w", err)
	}
	if err := s.compiled.Run(); err != nil {
		return mgl64.Vec3{}, fmt.Errorf("wind: evaluate: %w", err)
	}

	out := s.compiled.Get("__out")
	var entries map[string]tengo.Object
	switch m := out.Object().(type) {
	case *tengo.Map:
		entries = m.Value
	case *tengo.ImmutableMap:
		entries = m.Value
	default:
		return mgl64.Vec3{}, fmt.Errorf("wind: script returned %s, want a map with x, y, z", out.ValueType())
	}

	var force mgl64.Vec3
	for i, key := range []string{"x", "y", "z"} {
		obj, ok := entries[key]
		if !ok {
			// Omitted components default to zero.
			continue
		}
		f, ok := tengo.ToFloat64(obj)
		if !ok {
			return mgl64.Vec3{}, fmt.Errorf("wind: component %s is not a number: %s", key, obj.TypeName())
		}
		force[i] = f
	}
	return force, nil
}
