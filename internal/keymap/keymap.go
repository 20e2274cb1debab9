// Package keymap resolves MIDI pitches to concrete keystrokes for the
// supported game profiles and instrument layouts. All resolvers are pure
// lookups over static tables.
package keymap

import (
	"github.com/leandrodaf/maestro/sdk/contracts"
)

// Note offsets within an octave (0-11):
// 0=C, 1=C#, 2=D, 3=D#, 4=E, 5=F, 6=F#, 7=G, 8=G#, 9=A, 10=A#, 11=B.

// sharpToNatural maps a sharp offset to the natural offset one semitone
// below: C#->C, D#->D, F#->F, G#->G, A#->A.
var sharpToNatural = map[int]int{
	1:  0,
	3:  2,
	6:  5,
	8:  7,
	10: 9,
}

// isSharp reports whether the pitch class is a black key.
func isSharp(offset int) bool {
	_, ok := sharpToNatural[offset]
	return ok
}

// transposeInto shifts the pitch by octaves until it lands in [low, high].
func transposeInto(pitch, low, high int) int {
	for pitch < low {
		pitch += 12
	}
	for pitch > high {
		pitch -= 12
	}
	return pitch
}

// Resolve maps a MIDI pitch to a keystroke under the given profile and
// layout, or reports false when the note cannot be played. It is
// deterministic and has no side effects.
func Resolve(pitch int, profile contracts.GameProfile, layout contracts.KeyLayout, transpose bool, sharp contracts.SharpPolicy) (contracts.Keystroke, bool) {
	if profile == contracts.WhereWindsMeet {
		// WWM has a single instrument; the layout setting does not apply.
		return resolveWindsMeet(pitch, transpose)
	}

	var key string
	var ok bool
	switch layout {
	case contracts.Keys15Double:
		key, ok = resolveKeys15Double(pitch, transpose, sharp)
	case contracts.Keys15Triple:
		key, ok = resolveKeys15Triple(pitch, transpose, sharp)
	case contracts.Drums:
		key, ok = resolveDrums(pitch)
	case contracts.Xylophone:
		key, ok = resolveXylophone(pitch)
	default:
		key, ok = resolveKeys22(pitch, transpose)
	}
	if !ok {
		return contracts.Keystroke{}, false
	}
	return contracts.Keystroke{Key: key, Mod: contracts.ModNone}, true
}
