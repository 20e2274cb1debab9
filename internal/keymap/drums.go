package keymap

// Heartopia's 8-key conga/cajon kit: a fixed chromatic sub-range mapped
// 1:1 onto YUIO/HJKL. Drums never transpose.
var drumKeys = map[int]string{
	60: "y", // C4 - Low Conga (open)
	61: "u", // C#4 - Low Conga (muted)
	62: "i", // D4 - Conga (open)
	63: "o", // D#4 - Conga (muted/slap)
	64: "h", // E4 - High Conga (open)
	65: "j", // F4 - High Timbale
	66: "k", // F#4 - Low Timbale
	67: "l", // G4 - High Agogo
}

// resolveDrums maps a pitch on the drum layout.
func resolveDrums(pitch int) (string, bool) {
	key, ok := drumKeys[pitch]
	return key, ok
}
