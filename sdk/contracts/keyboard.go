package contracts

// Modifier is an optional modifier held together with a key.
type Modifier int

const (
	// ModNone means the key is pressed bare.
	ModNone Modifier = iota
	// ModShift means the key is pressed with Shift held.
	ModShift
)

// Keystroke is a concrete key to simulate, resolved from a MIDI pitch.
type Keystroke struct {
	Key string   // Key symbol, e.g. "z", ";" or "shift".
	Mod Modifier // Modifier required while the key is down.
}

// Keyboard simulates key presses against the host. Implementations are
// selected per game profile, since some games reject the default
// injection method.
type Keyboard interface {
	Press(key string) error   // Press and hold the key.
	Release(key string) error // Release a previously pressed key.
}

// FocusChecker reports whether the target game window currently holds
// input focus. Platforms without window introspection always report true.
type FocusChecker interface {
	GameActive(titleFragment string) bool
}
