package keymap

import "github.com/leandrodaf/maestro/sdk/contracts"

// Heartopia's 15-key triple-row piano: three rows of five keys, naturals
// only, flowing continuously across rows over MIDI 60-84.
//
//	Row 1: Y, U, I, O, P  (C4-G4)
//	Row 2: H, J, K, L, ;  (A4-E5)
//	Row 3: N, M, ,, ., /  (F5-C6)

var keys15Triple = map[int]string{
	60: "y", // C4 (Row 1)
	62: "u", // D4 (Row 1)
	64: "i", // E4 (Row 1)
	65: "o", // F4 (Row 1)
	67: "p", // G4 (Row 1)
	69: "h", // A4 (Row 2)
	71: "j", // B4 (Row 2)
	72: "k", // C5 (Row 2)
	74: "l", // D5 (Row 2)
	76: ";", // E5 (Row 2)
	77: "n", // F5 (Row 3)
	79: "m", // G5 (Row 3)
	81: ",", // A5 (Row 3)
	83: ".", // B5 (Row 3)
	84: "/", // C6 (Row 3)
}

const (
	keys15TripleLow  = 60 // C4
	keys15TripleHigh = 84 // C6
)

// resolveKeys15Triple maps a pitch on the triple-row layout. The table is
// keyed by absolute pitch since notes run across rows rather than octaves.
func resolveKeys15Triple(pitch int, transpose bool, sharp contracts.SharpPolicy) (string, bool) {
	if pitch < keys15TripleLow || pitch > keys15TripleHigh {
		if !transpose {
			return "", false
		}
		pitch = transposeInto(pitch, keys15TripleLow, keys15TripleHigh)
	}

	offset := pitch % 12
	if isSharp(offset) {
		if sharp != contracts.SharpSnap {
			return "", false
		}
		pitch = pitch - offset + sharpToNatural[offset]
	}

	key, ok := keys15Triple[pitch]
	return key, ok
}
