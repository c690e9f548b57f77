// Package transform provides the fixed registry of per-pixel color transforms.
//
// A transform reads the source planes of a pixel.Image and writes its
// target planes. Transforms are pure: they never touch the source planes
// and keep no state between frames.
package transform

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/loupe/internal/pixel"
)

// Names of the registered transforms.
const (
	Original = "original"
	Invert   = "invert"
)

// ErrUnknown is returned when a transform name is not registered.
var ErrUnknown = errors.New("unknown transform")

// Func writes the target planes of img from its source planes.
type Func func(img *pixel.Image)

// Transform is a named registry entry.
type Transform struct {
	Name        string
	Description string
	Apply       Func
}

// Registry is an immutable set of named transforms.
type Registry struct {
	entries map[string]Transform
}

// Default returns the registry {original, invert}.
func Default() *Registry {
	return &Registry{entries: map[string]Transform{
		Original: {Name: Original, Description: "Leave image intact", Apply: identity},
		Invert:   {Name: Invert, Description: "Invert the image colors (1.0-source)", Apply: invert},
	}}
}

// Lookup resolves a transform by name.
func (r *Registry) Lookup(name string) (Transform, error) {
	t, ok := r.entries[name]
	if !ok {
		return Transform{}, fmt.Errorf("%w %q (available: %v)", ErrUnknown, name, r.Names())
	}
	return t, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// identity copies every source plane to its target plane.
func identity(img *pixel.Image) {
	for c := 0; c < pixel.Channels; c++ {
		copy(img.Target(c), img.Source(c))
	}
}

// invert writes 1.0 - source. No clamping is needed for inputs in [0, 1].
func invert(img *pixel.Image) {
	for c := 0; c < pixel.Channels; c++ {
		src, dst := img.Source(c), img.Target(c)
		for i, v := range src {
			dst[i] = 1.0 - v
		}
	}
}
