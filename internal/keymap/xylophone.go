package keymap

// Heartopia's 8-key xylophone: one diatonic octave (C major) on A-K.
// Sharps are unplayable and the instrument never transposes.
var xylophoneKeys = map[int]string{
	60: "a", // C4 - DO
	62: "s", // D4 - RE
	64: "d", // E4 - MI
	65: "f", // F4 - FA
	67: "g", // G4 - SOL
	69: "h", // A4 - LA
	71: "j", // B4 - SI
	72: "k", // C5 - DO
}

// resolveXylophone maps a pitch on the xylophone layout.
func resolveXylophone(pitch int) (string, bool) {
	key, ok := xylophoneKeys[pitch]
	return key, ok
}
