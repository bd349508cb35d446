package components

import (
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
	"fmt"
	"strings"
)

// Theme is an art theme. Each player or team has a unique one.
type Theme int

const (
	ThemeCowboy Theme = iota
	ThemeJapanese
	ThemeNone
	ThemeCount
)

var themeNames = [...]string{"cowboy", "japanese", "none"}

func (t Theme) String() string {
	if t >= 0 && int(t) < len(themeNames) {
		return themeNames[t]
	}
	return fmt.Sprintf("Theme(%d)", int(t))
}

// ParseTheme maps a level-file theme name to a Theme.
func ParseTheme(name string) (Theme, error) {
	for i, n := range themeNames {
		if strings.EqualFold(n, name) {
			return Theme(i), nil
		}
	}
	return ThemeNone, fmt.Errorf("unknown theme %q", name)
}

// PlayerStats identifies a player and the theme its hits paint.
type PlayerStats struct {
	engine.BaseComponent
	Theme Theme
}

func (p *PlayerStats) Start() {
	if !p.ValidTheme() {
		logger.L().Error("invalid player theme", "player", p.GetGameObject().Name, "theme", p.Theme)
	}
}

// ValidTheme reports whether the player carries a real theme.
func (p *PlayerStats) ValidTheme() bool {
	return p.Theme >= 0 && p.Theme < ThemeNone
}
