package contracts

// GameProfile selects the target game, and with it the key table and the
// input-simulation backend used to drive it.
type GameProfile int

const (
	// Heartopia is the default profile. Instruments are selected via KeyLayout.
	Heartopia GameProfile = iota
	// WhereWindsMeet uses its own 3-octave table (Shift for sharps) and a
	// scan-code input backend, since the game ignores virtual-key injection.
	WhereWindsMeet
)

// String returns the profile name.
func (g GameProfile) String() string {
	switch g {
	case WhereWindsMeet:
		return "Where Winds Meet"
	default:
		return "Heartopia"
	}
}

// WindowTitle returns the lowercase fragment expected in the game window
// title, used by the focus probe to detect whether the game is foreground.
func (g GameProfile) WindowTitle() string {
	switch g {
	case WhereWindsMeet:
		return "where winds meet"
	default:
		return "heartopia"
	}
}

// KeyLayout selects the in-game instrument arrangement for the Heartopia
// profile. WhereWindsMeet ignores the layout entirely.
type KeyLayout int

const (
	// Keys22 is the full 22-key chromatic piano (3 octaves plus the two
	// extended Cs).
	Keys22 KeyLayout = iota
	// Keys15Double is the 15-key double-row piano, naturals only.
	Keys15Double
	// Keys15Triple is the 15-key triple-row piano, naturals only.
	Keys15Triple
	// Drums is the 8-key conga/cajon kit, chromatic 60-67.
	Drums
	// Xylophone is the 8-key diatonic xylophone, C4-C5 naturals.
	Xylophone
)

// String returns the layout name as shown to users.
func (l KeyLayout) String() string {
	switch l {
	case Keys15Double:
		return "15-key (Double Row)"
	case Keys15Triple:
		return "15-key (Triple Row)"
	case Drums:
		return "Conga/Cajon (8-key)"
	case Xylophone:
		return "Xylophone (8-key)"
	default:
		return "22-key (Full)"
	}
}

// SharpPolicy decides what happens to sharp pitches on layouts without
// dedicated sharp keys.
type SharpPolicy int

const (
	// SharpSkip drops the note.
	SharpSkip SharpPolicy = iota
	// SharpSnap substitutes the natural pitch one semitone below.
	SharpSnap
)

// String returns the policy name.
func (s SharpPolicy) String() string {
	if s == SharpSnap {
		return "snap"
	}
	return "skip"
}

// PlaybackState is the observable player state. Focus-loss pauses are an
// internal scheduler detail and are never surfaced here.
type PlaybackState int

const (
	// Stopped means no worker is running and position reads zero.
	Stopped PlaybackState = iota
	// Playing means the real-time worker is driving key events.
	Playing
)

// String returns the state name.
func (s PlaybackState) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}
