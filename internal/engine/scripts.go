package engine

import (
	"errors"
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrUnknownScript is returned by CreateScript for names nobody registered.
var ErrUnknownScript = errors.New("engine: unknown script")

// Props carries a script's configuration as decoded from a level file.
type Props map[string]any

// ScriptFactory creates a Component from level-file props.
type ScriptFactory func(props Props) (Component, error)

var scriptRegistry = map[string]ScriptFactory{}

// RegisterScript registers a named script factory. Level files attach scripts to
// planets and galaxies by this name.
func RegisterScript(name string, factory ScriptFactory) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = factory
}

// CreateScript looks up a registered script by name and creates it with the given props.
func CreateScript(name string, props Props) (Component, error) {
	factory, ok := scriptRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScript, name)
	}
	c, err := factory(props)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", name, err)
	}
	return c, nil
}

// GetRegisteredScripts returns a sorted list of all registered script names.
func GetRegisteredScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Float returns a numeric prop. YAML decodes whole numbers as int, so both are accepted.
func (p Props) Float(key string, fallback float32) float32 {
	if f, ok := toFloat(p[key]); ok {
		return f
	}
	return fallback
}

func (p Props) Int(key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

func (p Props) Bool(key string, fallback bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return fallback
}

func (p Props) String(key string, fallback string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return fallback
}

// Strings returns a list-of-strings prop.
func (p Props) Strings(key string) []string {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Vector3 reads a three element numeric list.
func (p Props) Vector3(key string, fallback rl.Vector3) rl.Vector3 {
	if v, ok := toVector3(p[key]); ok {
		return v
	}
	return fallback
}

// Vector3List reads a list of three element numeric lists.
func (p Props) Vector3List(key string) ([]rl.Vector3, error) {
	raw, ok := p[key].([]any)
	if !ok {
		return nil, nil
	}
	out := make([]rl.Vector3, 0, len(raw))
	for i, item := range raw {
		v, ok := toVector3(item)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected [x, y, z]", key, i)
		}
		out = append(out, v)
	}
	return out, nil
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	}
	return 0, false
}

func toVector3(v any) (rl.Vector3, bool) {
	raw, ok := v.([]any)
	if !ok || len(raw) != 3 {
		return rl.Vector3{}, false
	}
	var xyz [3]float32
	for i, item := range raw {
		f, ok := toFloat(item)
		if !ok {
			return rl.Vector3{}, false
		}
		xyz[i] = f
	}
	return rl.Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, true
}
