package mazewalk

// Palette is the set of colors a render loop paints with. The theme only
// selects a palette; it never affects game logic.
type Palette struct {
	Background Color
	Dot        Color
	Wall       Color
	Trail      Color // alpha is the peak, scaled by fade
	Player     Color
	PlayerGlow Color // alpha is the glow center, fading to 0 at the rim
	Flash      Color
	Hint       Color
}

// LightPalette is used when the host theme is light.
var LightPalette = Palette{
	Background: rgb255(250, 249, 252, 1),
	Dot:        rgb255(180, 170, 200, 0.3),
	Wall:       rgb255(160, 150, 180, 0.4),
	Trail:      rgb255(110, 100, 150, 0.2),
	Player:     rgb255(80, 70, 120, 1),
	PlayerGlow: rgb255(80, 70, 120, 0.25),
	Flash:      rgb255(255, 255, 255, 1),
	Hint:       rgb255(120, 115, 135, 0.5),
}

// DarkPalette is used when the host theme is dark.
var DarkPalette = Palette{
	Background: rgb255(18, 17, 24, 1),
	Dot:        rgb255(60, 55, 80, 0.3),
	Wall:       rgb255(70, 65, 90, 0.45),
	Trail:      rgb255(140, 130, 180, 0.2),
	Player:     rgb255(200, 190, 230, 1),
	PlayerGlow: rgb255(200, 190, 230, 0.25),
	Flash:      rgb255(229, 229, 229, 1),
	Hint:       rgb255(150, 145, 170, 0.5),
}

// PaletteFor returns DarkPalette when dark is true, LightPalette otherwise.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}

// HintText is shown until the player's first move.
const HintText = "use arrow keys to navigate the maze"
