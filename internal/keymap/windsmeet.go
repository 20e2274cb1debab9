package keymap

import "github.com/leandrodaf/maestro/sdk/contracts"

// Where Winds Meet's 3-octave piano uses numbered notation (1-7 =
// Do..Si); the game has no independent sharp keys, so sharps are the
// natural key plus Shift.
//
//	Low octave:  C3-B3 (MIDI 48-59) -> Z, X, C, V, B, N, M
//	Mid octave:  C4-B4 (MIDI 60-71) -> A, S, D, F, G, H, J
//	High octave: C5-B5 (MIDI 72-83) -> Q, W, E, R, T, Y, U

var wwmHigh = map[int]string{
	0:  "q", // C (Do)
	2:  "w", // D (Re)
	4:  "e", // E (Mi)
	5:  "r", // F (Fa)
	7:  "t", // G (Sol)
	9:  "y", // A (La)
	11: "u", // B (Si)
}

var wwmMid = map[int]string{
	0:  "a", // C (Do)
	2:  "s", // D (Re)
	4:  "d", // E (Mi)
	5:  "f", // F (Fa)
	7:  "g", // G (Sol)
	9:  "h", // A (La)
	11: "j", // B (Si)
}

var wwmLow = map[int]string{
	0:  "z", // C (Do)
	2:  "x", // D (Re)
	4:  "c", // E (Mi)
	5:  "v", // F (Fa)
	7:  "b", // G (Sol)
	9:  "n", // A (La)
	11: "m", // B (Si)
}

const (
	wwmLowStart  = 48 // C3
	wwmMidStart  = 60 // C4, middle C
	wwmHighStart = 72 // C5
	wwmHighEnd   = 83 // B5
)

// resolveWindsMeet maps a pitch on the WWM piano. Sharps resolve to the
// natural key below with a Shift modifier.
func resolveWindsMeet(pitch int, transpose bool) (contracts.Keystroke, bool) {
	if pitch < wwmLowStart || pitch > wwmHighEnd {
		if !transpose {
			return contracts.Keystroke{}, false
		}
		pitch = transposeInto(pitch, wwmLowStart, wwmHighEnd)
	}

	offset := pitch % 12
	mod := contracts.ModNone
	if natural, ok := sharpToNatural[offset]; ok {
		offset = natural
		mod = contracts.ModShift
	}

	var key string
	switch {
	case pitch >= wwmHighStart:
		key = wwmHigh[offset]
	case pitch >= wwmMidStart:
		key = wwmMid[offset]
	default:
		key = wwmLow[offset]
	}
	return contracts.Keystroke{Key: key, Mod: mod}, true
}
