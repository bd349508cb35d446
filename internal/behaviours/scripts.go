package behaviours

import (
	"cubeplanets/internal/components"
	"cubeplanets/internal/engine"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterScript("PathTravel", pathTravelFactory)
	engine.RegisterScript("ThemeChange", themeChangeFactory)
	engine.RegisterScript("ColorTheme", colorThemeFactory)
}

func pathTravelFactory(props engine.Props) (engine.Component, error) {
	path, err := props.Vector3List("path")
	if err != nil {
		return nil, err
	}
	p := NewPathTravel()
	p.Path = path
	p.Kind = props.String("path_type", p.Kind)
	p.Local = props.Bool("local", p.Local)
	p.LookAlongPath = props.Bool("look_along_path", p.LookAlongPath)
	p.Speed = props.Float("speed", p.Speed)
	p.StartRotation = props.Vector3("start_rotation", p.StartRotation)
	p.FinishRotation = props.Vector3("finish_rotation", p.FinishRotation)
	p.InterpolateRotation = props.Bool("interpolate_rotation", p.InterpolateRotation)
	p.BeginFacingFinalRotationAfter = props.Float("begin_facing_final_rotation_after", p.BeginFacingFinalRotationAfter)
	if p.BeginFacingFinalRotationAfter < 0 || p.BeginFacingFinalRotationAfter > 1 {
		return nil, fmt.Errorf("begin_facing_final_rotation_after must be within [0, 1], got %v", p.BeginFacingFinalRotationAfter)
	}
	if _, err := newPath(p.Kind, p.Path); err != nil {
		return nil, err
	}
	if p.Speed <= 0 {
		return nil, fmt.Errorf("speed must be positive, got %v", p.Speed)
	}
	return p, nil
}

func themeChangeFactory(props engine.Props) (engine.Component, error) {
	return &ThemeChange{}, nil
}

// colorThemeFactory reads "colors" as [r, g, b] triples in 0-255, one per theme.
func colorThemeFactory(props engine.Props) (engine.Component, error) {
	rgb, err := props.Vector3List("colors")
	if err != nil {
		return nil, err
	}
	palette := make([]rl.Color, len(rgb))
	for i, c := range rgb {
		palette[i] = rl.NewColor(uint8(c.X), uint8(c.Y), uint8(c.Z), 255)
	}
	t := NewColorTheme(palette)
	t.FadeRate = props.Float("fade_rate", t.FadeRate)
	if name := props.String("theme", ""); name != "" {
		theme, err := components.ParseTheme(name)
		if err != nil {
			return nil, err
		}
		t.Current = theme
	}
	return t, nil
}
