package keymap

import "github.com/leandrodaf/maestro/sdk/contracts"

// Heartopia's 15-key double-row piano: two rows of naturals plus one
// extended note, no sharp keys.
//
//	Mid row:       A to J (C4-B4, MIDI 60-71)
//	High row:      Q to U (C5-B5, MIDI 72-83)
//	Extended high: I (C6, MIDI 84)

var keys15DoubleHigh = map[int]string{
	0:  "q", // C (Do)
	2:  "w", // D (Re)
	4:  "e", // E (Mi)
	5:  "r", // F (Fa)
	7:  "t", // G (Sol)
	9:  "y", // A (La)
	11: "u", // B (Si)
}

var keys15DoubleMid = map[int]string{
	0:  "a", // C (Do)
	2:  "s", // D (Re)
	4:  "d", // E (Mi)
	5:  "f", // F (Fa)
	7:  "g", // G (Sol)
	9:  "h", // A (La)
	11: "j", // B (Si)
}

const (
	keys15DoubleExtendedHighKey = "i" // C6

	keys15DoubleLow          = 60 // C4, middle C
	keys15DoubleHighStart    = 72 // C5
	keys15DoubleExtendedHigh = 84 // C6, highest playable note
)

// resolveKeys15Double maps a pitch on the double-row layout. Sharps are
// resolved by the policy: skip drops the note, snap lands on the natural
// one semitone below.
func resolveKeys15Double(pitch int, transpose bool, sharp contracts.SharpPolicy) (string, bool) {
	if pitch < keys15DoubleLow || pitch > keys15DoubleExtendedHigh {
		if !transpose {
			return "", false
		}
		pitch = transposeInto(pitch, keys15DoubleLow, keys15DoubleExtendedHigh)
	}

	if pitch == keys15DoubleExtendedHigh {
		return keys15DoubleExtendedHighKey, true
	}

	offset := pitch % 12
	if isSharp(offset) {
		if sharp != contracts.SharpSnap {
			return "", false
		}
		offset = sharpToNatural[offset]
	}

	if pitch >= keys15DoubleHighStart {
		return keys15DoubleHigh[offset], true
	}
	return keys15DoubleMid[offset], true
}
