package render

// Theme holds the emoji glyphs used to draw one scene's terrain. Emoji carry
// their own colors, so scenes differ by glyph rather than by terminal tint.
type Theme struct {
	Wall  string
	Floor string
	Sand  string
	Grass string
	Water string
}

// DefaultTheme is used for scenes without an entry in Themes.
var DefaultTheme = Theme{
	Wall:  "🧱",
	Floor: "🟫",
	Sand:  "🟨",
	Grass: "🟩",
	Water: "🟦",
}

// Themes maps scene IDs to their tile set.
var Themes = map[string]Theme{
	// Beach: driftwood and surf.
	"beach": {
		Wall:  "🪨",
		Floor: "🟨",
		Sand:  "🟨",
		Grass: "🌴",
		Water: "🌊",
	},
	"town": {
		Wall:  "🏠",
		Floor: "🟫",
		Sand:  "🟨",
		Grass: "🌳",
		Water: "⛲",
	},
	// Workshop: brick walls, plank floor.
	"workshop": {
		Wall:  "🧱",
		Floor: "🟫",
		Sand:  "🟫",
		Grass: "🪴",
		Water: "🪣",
	},
}

// ThemeFor returns the tile set for sceneID.
func ThemeFor(sceneID string) Theme {
	if t, ok := Themes[sceneID]; ok {
		return t
	}
	return DefaultTheme
}
