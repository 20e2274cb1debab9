package contracts

// PlayerOptions defines the configuration values the player consumes from
// its GUI/config collaborator.
type PlayerOptions struct {
	Logger      Logger       // Logger for events and errors.
	LogLevel    LogLevel     // Level of logging to use.
	Profile     GameProfile  // Target game.
	Layout      KeyLayout    // Instrument layout (Heartopia only).
	Transpose   bool         // Octave-shift out-of-range pitches into range.
	SharpPolicy SharpPolicy  // Handling of sharps on layouts without sharp keys.
	Speed       float64      // Playback speed multiplier.
	Lookahead   float64      // Preview window for upcoming notes, in seconds.
	Keyboard    Keyboard     // Input backend override; defaults per profile.
	Focus       FocusChecker // Focus probe override; defaults per platform.
}

// Option is a function that modifies PlayerOptions.
type Option func(*PlayerOptions)

// WithLogger sets the logger for the player.
func WithLogger(l Logger) Option {
	return func(opts *PlayerOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the player.
func WithLogLevel(level LogLevel) Option {
	return func(opts *PlayerOptions) {
		opts.LogLevel = level
	}
}

// WithGameProfile sets the target game profile.
func WithGameProfile(profile GameProfile) Option {
	return func(opts *PlayerOptions) {
		opts.Profile = profile
	}
}

// WithKeyLayout sets the instrument layout for the Heartopia profile.
func WithKeyLayout(layout KeyLayout) Option {
	return func(opts *PlayerOptions) {
		opts.Layout = layout
	}
}

// WithTranspose enables octave transposition of out-of-range pitches.
func WithTranspose(enabled bool) Option {
	return func(opts *PlayerOptions) {
		opts.Transpose = enabled
	}
}

// WithSharpPolicy sets the sharp-handling policy for 15-key layouts.
func WithSharpPolicy(policy SharpPolicy) Option {
	return func(opts *PlayerOptions) {
		opts.SharpPolicy = policy
	}
}

// WithSpeed sets the playback speed multiplier.
func WithSpeed(speed float64) Option {
	return func(opts *PlayerOptions) {
		opts.Speed = speed
	}
}

// WithLookahead sets the upcoming-notes preview window in seconds.
func WithLookahead(seconds float64) Option {
	return func(opts *PlayerOptions) {
		opts.Lookahead = seconds
	}
}

// WithKeyboard overrides the input-simulation backend. Intended for tests
// and for hosts that need a custom injection method.
func WithKeyboard(kb Keyboard) Option {
	return func(opts *PlayerOptions) {
		opts.Keyboard = kb
	}
}

// WithFocusChecker overrides the game-window focus probe.
func WithFocusChecker(fc FocusChecker) Option {
	return func(opts *PlayerOptions) {
		opts.Focus = fc
	}
}
