package behaviours

import (
	"cubeplanets/internal/components"
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ThemeChanger is implemented by components that can show a theme.
type ThemeChanger interface {
	ChangeThemeInstant(theme components.Theme)
	// ChangeTheme returns the task that fades to theme, or nil when there is
	// nothing to do. force restarts the fade even when theme is already current.
	ChangeTheme(theme components.Theme, force bool) engine.Task
}

// ThemeChange repaints its object and every descendant with the hitting player's
// theme.
type ThemeChange struct {
	engine.BaseComponent
	changers []ThemeChanger
}

func (c *ThemeChange) Start() {
	c.changers = engine.GetComponentsInChildren[ThemeChanger](c.GetGameObject())
	if len(c.changers) == 0 {
		logger.L().Warn("theme change has nothing to repaint", "object", c.GetGameObject().Name)
	}
}

func (c *ThemeChange) OnHit(user *components.PlayerStats, planet *components.Planet, point, normal rl.Vector3) {
	if user == nil {
		return
	}
	if user.Theme < 0 || user.Theme >= components.ThemeCount {
		logger.L().Error("invalid player theme", "object", c.GetGameObject().Name, "theme", user.Theme)
		return
	}
	scheduler := c.GetGameObject().Scene.Scheduler
	for _, changer := range c.changers {
		scheduler.Start(changer.ChangeTheme(user.Theme, false))
	}
}

// ColorTheme fades a display color between one palette entry per theme.
type ColorTheme struct {
	engine.BaseComponent
	Current  components.Theme
	Palette  []rl.Color // one entry per theme
	FadeRate float32    // blend per second

	color rl.Vector4 // normalized rgba
	ready bool
}

func NewColorTheme(palette []rl.Color) *ColorTheme {
	return &ColorTheme{
		Current:  components.ThemeNone,
		Palette:  palette,
		FadeRate: 0.5,
	}
}

func (c *ColorTheme) Start() {
	if len(c.Palette) != int(components.ThemeCount) {
		logger.L().Error("color theme needs one color per theme, theme changes disabled",
			"object", c.GetGameObject().Name, "colors", len(c.Palette), "themes", int(components.ThemeCount))
		return
	}
	if c.FadeRate <= 0 {
		logger.L().Error("color theme fade rate must be positive, theme changes disabled",
			"object", c.GetGameObject().Name, "fade_rate", c.FadeRate)
		return
	}
	c.ready = true
	c.ChangeThemeInstant(c.Current)
}

// Color returns the color currently shown.
func (c *ColorTheme) Color() rl.Color {
	return rl.ColorFromNormalized(c.color)
}

func (c *ColorTheme) ChangeThemeInstant(theme components.Theme) {
	if !c.valid(theme) {
		return
	}
	c.Current = theme
	c.color = rl.ColorNormalize(c.Palette[theme])
}

func (c *ColorTheme) ChangeTheme(theme components.Theme, force bool) engine.Task {
	if !c.valid(theme) || (!force && c.Current == theme) {
		return nil
	}
	c.Current = theme
	return &colorFade{
		theme:  c,
		target: theme,
		timer:  1 / c.FadeRate,
	}
}

func (c *ColorTheme) valid(theme components.Theme) bool {
	if !c.ready {
		return false
	}
	if theme < 0 || int(theme) >= len(c.Palette) {
		logger.L().Error("theme outside the palette", "object", c.GetGameObject().Name, "theme", theme)
		return false
	}
	return true
}

// colorFade blends toward the target color until the blend completes, the timer
// runs out, or a newer change replaces the target.
type colorFade struct {
	theme  *ColorTheme
	target components.Theme
	timer  float32
	blend  float32
}

func (f *colorFade) Step(deltaTime float32) bool {
	c := f.theme
	if c.Current != f.target || f.timer <= 0 || f.blend >= 1 {
		return true
	}
	f.timer -= deltaTime
	f.blend = min(f.blend+c.FadeRate*deltaTime, 1)
	c.color = lerp4(c.color, rl.ColorNormalize(c.Palette[f.target]), f.blend)
	return f.timer <= 0 || f.blend >= 1
}

func lerp4(a, b rl.Vector4, t float32) rl.Vector4 {
	return rl.Vector4{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: a.W + (b.W-a.W)*t,
	}
}
