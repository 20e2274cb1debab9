package keymap

// Heartopia's full 22-key piano: three chromatic octaves plus two extended
// notes. MIDI 60 = middle C = mid octave DO.
//
//	Lowest:      , (C2, MIDI 36)
//	Low octave:  L to ] (C3-B3, MIDI 48-59)
//	Mid octave:  Z to M (C4-B4, MIDI 60-71)
//	High octave: Q to U (C5-B5, MIDI 72-83)
//	Highest:     I (C6, MIDI 84)

var keys22High = map[int]string{
	0:  "q", // DO (C)
	1:  "2", // DO# (C#)
	2:  "w", // RE (D)
	3:  "3", // RE# (D#)
	4:  "e", // MI (E)
	5:  "r", // FA (F)
	6:  "5", // FA# (F#)
	7:  "t", // SOL (G)
	8:  "6", // SOL# (G#)
	9:  "y", // LA (A)
	10: "7", // LA# (A#)
	11: "u", // SI (B)
}

var keys22Mid = map[int]string{
	0:  "z", // DO (C)
	1:  "s", // DO# (C#)
	2:  "x", // RE (D)
	3:  "d", // RE# (D#)
	4:  "c", // MI (E)
	5:  "v", // FA (F)
	6:  "g", // FA# (F#)
	7:  "b", // SOL (G)
	8:  "h", // SOL# (G#)
	9:  "n", // LA (A)
	10: "j", // LA# (A#)
	11: "m", // SI (B)
}

var keys22Low = map[int]string{
	0:  "l", // DO (C)
	1:  ".", // DO# (C#)
	2:  ";", // RE (D)
	3:  "'", // RE# (D#)
	4:  "/", // MI (E)
	5:  "o", // FA (F)
	6:  "0", // FA# (F#)
	7:  "p", // SOL (G)
	8:  "-", // SOL# (G#)
	9:  "[", // LA (A)
	10: "=", // LA# (A#)
	11: "]", // SI (B)
}

const (
	keys22ExtendedLowKey  = "," // C2 with the bottom dot
	keys22ExtendedHighKey = "i" // C6 with two dots

	keys22ExtendedLow  = 36 // C2, lowest playable note
	keys22MidStart     = 60 // C4, middle C
	keys22HighStart    = 72 // C5
	keys22ExtendedHigh = 84 // C6, highest playable note
)

// resolveKeys22 maps a pitch on the full chromatic layout. Every semitone
// in 36-84 has a dedicated key, so no modifier is ever needed.
func resolveKeys22(pitch int, transpose bool) (string, bool) {
	if pitch < keys22ExtendedLow || pitch > keys22ExtendedHigh {
		if !transpose {
			return "", false
		}
		pitch = transposeInto(pitch, keys22ExtendedLow, keys22ExtendedHigh)
	}

	switch pitch {
	case keys22ExtendedLow:
		return keys22ExtendedLowKey, true
	case keys22ExtendedHigh:
		return keys22ExtendedHighKey, true
	}

	offset := pitch % 12
	switch {
	case pitch >= keys22HighStart:
		return keys22High[offset], true
	case pitch >= keys22MidStart:
		return keys22Mid[offset], true
	default:
		return keys22Low[offset], true
	}
}
