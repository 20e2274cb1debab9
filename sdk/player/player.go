// Package player is the playback scheduler: it turns extracted notes into
// ordered key transitions and drives them against the wall clock with
// speed scaling, focus-loss pausing, and guaranteed key release.
package player

import (
	"strings"
	"sync"
	"time"

	"github.com/leandrodaf/maestro/internal/keymap"
	"github.com/leandrodaf/maestro/internal/midifile"
	"github.com/leandrodaf/maestro/sdk/contracts"
)

const (
	// minSpeed and maxSpeed bound the playback speed multiplier.
	minSpeed = 0.25
	maxSpeed = 1.5

	// focusPollInterval is how often the worker re-checks window focus
	// while the game is in the background.
	focusPollInterval = 100 * time.Millisecond
	// eventTickInterval is the due-wait granularity; short enough that
	// stop requests and speed changes apply with bounded latency.
	eventTickInterval = 5 * time.Millisecond
	// modifierSettle gives the game time to register Shift before the key.
	modifierSettle = 10 * time.Millisecond
	// stopJoinTimeout bounds how long Stop waits for the worker to exit.
	stopJoinTimeout = time.Second
)

// heldKey identifies one key the scheduler believes is physically down.
type heldKey struct {
	key string
	mod contracts.Modifier
}

// Player owns playback state and the real-time worker. All exported
// methods are safe for concurrent use.
type Player struct {
	mu sync.Mutex

	logger   contracts.Logger
	keyboard contracts.Keyboard
	focus    contracts.FocusChecker
	// customKeyboard marks an injected backend that profile changes must
	// not replace.
	customKeyboard bool

	profile     contracts.GameProfile
	layout      contracts.KeyLayout
	transpose   bool
	sharpPolicy contracts.SharpPolicy
	speed       float64
	lookahead   float64

	state     contracts.PlaybackState
	song      *midifile.Song
	songPath  string
	anchor    time.Time
	lastKey   string
	lastError string
	held      map[heldKey]struct{}

	cachedEvents []KeyEvent
	cachedKey    string

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a player with the specified options and registers it with
// the process-exit cleanup hook.
func New(opts ...contracts.Option) (*Player, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	kb := options.Keyboard
	custom := kb != nil
	if kb == nil {
		kb, err = newKeyboard(options.Profile, options.Logger)
		if err != nil {
			return nil, err
		}
	}

	p := &Player{
		logger:         options.Logger,
		keyboard:       kb,
		focus:          options.Focus,
		customKeyboard: custom,
		profile:        options.Profile,
		layout:         options.Layout,
		transpose:      options.Transpose,
		sharpPolicy:    options.SharpPolicy,
		speed:          clampSpeed(options.Speed),
		lookahead:      options.Lookahead,
		held:           make(map[heldKey]struct{}),
	}
	registerCleanup(p)
	return p, nil
}

// Close stops playback, releases all keys, and unregisters the player
// from the exit hook.
func (p *Player) Close() error {
	p.Stop()
	unregisterCleanup(p)
	return nil
}

// Load extracts a MIDI file and replaces the held note sequence. The event
// cache survives only when the same song is reloaded. Extraction failures
// are returned unchanged for the caller to report.
func (p *Player) Load(path string) error {
	song, err := midifile.ExtractFile(path)
	if err != nil {
		p.logger.Error("Failed to load MIDI file",
			p.logger.Field().String("path", path),
			p.logger.Field().Error("error", err))
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.songPath != path {
		p.invalidateCacheLocked()
	}
	p.song = song
	p.songPath = path
	p.logger.Info("Song loaded",
		p.logger.Field().String("path", path),
		p.logger.Field().Float64("duration", song.Duration()),
		p.logger.Field().Int("bpm", song.BPM()),
		p.logger.Field().Int("notes", song.NoteCount()))
	return nil
}

// Song returns the currently loaded song, or nil.
func (p *Player) Song() *midifile.Song {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.song
}

// Play starts playback. It is a no-op while already playing or with no
// loaded song.
func (p *Player) Play() {
	p.mu.Lock()
	if p.state == contracts.Playing || p.song == nil || p.song.NoteCount() == 0 {
		p.mu.Unlock()
		return
	}

	events := p.buildEventsLocked()
	for id := range p.held {
		delete(p.held, id)
	}
	p.anchor = time.Now()
	p.state = contracts.Playing
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	stopCh, doneCh := p.stopCh, p.doneCh
	title := p.profile.WindowTitle()
	p.mu.Unlock()

	go p.run(events, stopCh, doneCh, title)
}

// Stop signals the worker to exit, releases every held key regardless of
// loop state, resets position, and joins the worker with a bounded
// timeout. Safe to call when already stopped.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.stopCh != nil {
		close(p.stopCh)
		p.stopCh = nil
	}
	done := p.doneCh
	p.doneCh = nil
	p.releaseAllLocked()
	p.state = contracts.Stopped
	p.anchor = time.Time{}
	p.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-time.After(stopJoinTimeout):
			p.logger.Warn("Playback worker did not exit within the join timeout")
		}
	}
}

// State returns the observable playback state.
func (p *Player) State() contracts.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Position returns the current song position in seconds, scaled by speed.
// It reads 0 while stopped.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() float64 {
	if p.state != contracts.Playing || p.anchor.IsZero() {
		return 0
	}
	return time.Since(p.anchor).Seconds() * p.speed
}

// Duration returns the total duration of the loaded song in seconds.
func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.song == nil {
		return 0
	}
	return p.song.Duration()
}

// UpcomingNotes returns the notes starting within lookahead seconds of
// the current position, for preview rendering. A non-positive lookahead
// uses the configured default. Empty while stopped.
func (p *Player) UpcomingNotes(lookahead float64) []midifile.Note {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != contracts.Playing || p.song == nil {
		return nil
	}
	if lookahead <= 0 {
		lookahead = p.lookahead
	}

	pos := p.positionLocked()
	end := pos + lookahead
	var upcoming []midifile.Note
	for _, note := range p.song.Notes {
		if note.Start > end {
			break
		}
		if note.Start >= pos {
			upcoming = append(upcoming, note)
		}
	}
	return upcoming
}

// LastKey returns the most recently simulated key, formatted for visual
// feedback (e.g. "Z" or "Shift+A").
func (p *Player) LastKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastKey
}

// LastError returns the most recent non-fatal simulation error, or "".
func (p *Player) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastError
}

// Speed returns the playback speed multiplier.
func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// SetSpeed sets the playback speed multiplier, clamped to 0.25-1.5. It
// does not invalidate the event cache and applies on the next loop tick.
func (p *Player) SetSpeed(speed float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = clampSpeed(speed)
}

// Lookahead returns the configured preview window in seconds.
func (p *Player) Lookahead() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookahead
}

// SetLookahead sets the preview window in seconds.
func (p *Player) SetLookahead(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seconds > 0 {
		p.lookahead = seconds
	}
}

// GameProfile returns the active game profile.
func (p *Player) GameProfile() contracts.GameProfile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

// SetGameProfile switches the target game, invalidating the event cache
// and swapping the input backend unless one was injected.
func (p *Player) SetGameProfile(profile contracts.GameProfile) error {
	p.mu.Lock()
	if p.profile != profile {
		p.invalidateCacheLocked()
	}
	p.profile = profile
	custom := p.customKeyboard
	log := p.logger
	p.mu.Unlock()

	if custom {
		return nil
	}
	kb, err := newKeyboard(profile, log)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.keyboard = kb
	p.mu.Unlock()
	return nil
}

// KeyLayout returns the active instrument layout.
func (p *Player) KeyLayout() contracts.KeyLayout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.layout
}

// SetKeyLayout selects the instrument layout for the Heartopia profile.
func (p *Player) SetKeyLayout(layout contracts.KeyLayout) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.layout != layout {
		p.invalidateCacheLocked()
	}
	p.layout = layout
}

// Transpose reports whether out-of-range pitches are octave-shifted.
func (p *Player) Transpose() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transpose
}

// SetTranspose enables or disables octave transposition.
func (p *Player) SetTranspose(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.transpose != enabled {
		p.invalidateCacheLocked()
	}
	p.transpose = enabled
}

// SharpPolicy returns the sharp-handling policy.
func (p *Player) SharpPolicy() contracts.SharpPolicy {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sharpPolicy
}

// SetSharpPolicy sets the sharp-handling policy for 15-key layouts.
func (p *Player) SetSharpPolicy(policy contracts.SharpPolicy) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sharpPolicy != policy {
		p.invalidateCacheLocked()
	}
	p.sharpPolicy = policy
}

// PressPitch resolves a pitch under the current settings and holds its
// key, used by the live passthrough mode. Unplayable pitches are ignored.
func (p *Player) PressPitch(pitch int) {
	if stroke, ok := p.resolveCurrent(pitch); ok {
		p.keyDown(stroke)
	}
}

// ReleasePitch releases the key a pitch resolves to under the current
// settings.
func (p *Player) ReleasePitch(pitch int) {
	if stroke, ok := p.resolveCurrent(pitch); ok {
		p.keyUp(stroke)
	}
}

func (p *Player) resolveCurrent(pitch int) (contracts.Keystroke, bool) {
	p.mu.Lock()
	profile, layout, transpose, sharp := p.profile, p.layout, p.transpose, p.sharpPolicy
	p.mu.Unlock()
	return keymap.Resolve(pitch, profile, layout, transpose, sharp)
}

// run is the real-time worker. It fires events in order against the wall
// clock, pausing while the game window is out of focus and batching
// same-instant events. It always releases held keys on exit.
func (p *Player) run(events []KeyEvent, stopCh <-chan struct{}, doneCh chan<- struct{}, title string) {
	defer close(doneCh)
	defer p.releaseAll()

	for i := 0; i < len(events); {
		if stopRequested(stopCh) {
			return
		}

		// Freeze the song position while the game window is out of focus
		// by shifting the anchor forward by the outage duration.
		if !p.focus.GameActive(title) {
			pauseStart := time.Now()
			for !p.focus.GameActive(title) {
				if stopRequested(stopCh) {
					return
				}
				time.Sleep(focusPollInterval)
			}
			p.shiftAnchor(time.Since(pauseStart))
		}

		event := events[i]

		// Sleep in short increments until the event is due, recomputing
		// the position each tick so live speed changes apply immediately.
		for {
			if stopRequested(stopCh) {
				return
			}
			pos := p.Position()
			if event.Time <= pos {
				break
			}
			remaining := time.Duration((event.Time - pos) / p.Speed() * float64(time.Second))
			if remaining > eventTickInterval || remaining <= 0 {
				remaining = eventTickInterval
			}
			time.Sleep(remaining)
		}

		// Fire this event and everything within the chord epsilon of it.
		batchTime := event.Time
		for i < len(events) && events[i].Time <= batchTime+chordEpsilon {
			e := events[i]
			if e.Transition == KeyDown {
				p.keyDown(e.Stroke)
			} else {
				p.keyUp(e.Stroke)
			}
			i++
		}
	}

	// All events fired; transition to stopped unless a stop already did.
	if !stopRequested(stopCh) {
		p.mu.Lock()
		p.state = contracts.Stopped
		p.anchor = time.Time{}
		p.mu.Unlock()
	}
}

// keyDown presses and tracks a key. Pressing a key that is already held
// is a no-op. Simulation failures are recorded and never abort the loop.
func (p *Player) keyDown(stroke contracts.Keystroke) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := heldKey{key: stroke.Key, mod: stroke.Mod}
	if _, ok := p.held[id]; ok {
		return
	}

	p.lastKey = formatKeystroke(stroke)

	if stroke.Mod == contracts.ModShift {
		if err := p.keyboard.Press("shift"); err != nil {
			p.recordErrorLocked("shift", err)
			return
		}
		// Give the game time to register Shift before the key. The lock
		// is dropped for the settle so Stop and the state queries are
		// not stalled behind every shifted press.
		p.mu.Unlock()
		time.Sleep(modifierSettle)
		p.mu.Lock()
	}
	if err := p.keyboard.Press(stroke.Key); err != nil {
		p.recordErrorLocked(stroke.Key, err)
		if stroke.Mod == contracts.ModShift && !p.shiftNeededLocked() {
			_ = p.keyboard.Release("shift")
		}
		return
	}
	p.held[id] = struct{}{}
}

// keyUp releases a tracked key. Releasing a key that is not held is a
// no-op. The Shift modifier is only released once no other held key still
// requires it.
func (p *Player) keyUp(stroke contracts.Keystroke) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := heldKey{key: stroke.Key, mod: stroke.Mod}
	if _, ok := p.held[id]; !ok {
		return
	}

	if err := p.keyboard.Release(stroke.Key); err != nil {
		// Keep the entry so the stop-path cleanup retries the release.
		p.recordErrorLocked(stroke.Key, err)
		return
	}
	delete(p.held, id)

	if stroke.Mod != contracts.ModNone && !p.shiftNeededLocked() {
		if err := p.keyboard.Release("shift"); err != nil {
			p.recordErrorLocked("shift", err)
		}
	}
}

// shiftNeededLocked reports whether any held key still requires the Shift
// modifier. Callers must hold p.mu.
func (p *Player) shiftNeededLocked() bool {
	for id := range p.held {
		if id.mod != contracts.ModNone {
			return true
		}
	}
	return false
}

// releaseAll force-releases every held key. Errors are ignored; this is
// the safety path and must never raise.
func (p *Player) releaseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseAllLocked()
}

func (p *Player) releaseAllLocked() {
	shiftHeld := false
	for id := range p.held {
		if err := p.keyboard.Release(id.key); err != nil {
			p.logger.Debug("Release failed during cleanup",
				p.logger.Field().String("key", id.key),
				p.logger.Field().Error("error", err))
		}
		if id.mod == contracts.ModShift {
			shiftHeld = true
		}
		delete(p.held, id)
	}
	if shiftHeld {
		_ = p.keyboard.Release("shift")
	}
}

// recordErrorLocked logs a simulation failure and surfaces it as the
// non-fatal last-error state. Callers must hold p.mu.
func (p *Player) recordErrorLocked(key string, err error) {
	p.logger.Error("Key simulation failed",
		p.logger.Field().String("key", key),
		p.logger.Field().Error("error", err))
	p.lastError = "Key simulation failed: " + err.Error()
}

// shiftAnchor moves the wall-clock anchor forward after a focus outage so
// the song position does not skip ahead.
func (p *Player) shiftAnchor(pause time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.anchor = p.anchor.Add(pause)
}

// stopRequested is a non-blocking check of the worker stop signal.
func stopRequested(stopCh <-chan struct{}) bool {
	select {
	case <-stopCh:
		return true
	default:
		return false
	}
}

// clampSpeed bounds the speed multiplier to the supported range.
func clampSpeed(speed float64) float64 {
	if speed < minSpeed {
		return minSpeed
	}
	if speed > maxSpeed {
		return maxSpeed
	}
	return speed
}

// formatKeystroke renders a keystroke for visual feedback.
func formatKeystroke(stroke contracts.Keystroke) string {
	if stroke.Mod == contracts.ModShift {
		return "Shift+" + strings.ToUpper(stroke.Key)
	}
	return strings.ToUpper(stroke.Key)
}
