package player

import (
	"fmt"
	"sort"

	"github.com/leandrodaf/maestro/internal/keymap"
	"github.com/leandrodaf/maestro/internal/midifile"
	"github.com/leandrodaf/maestro/sdk/contracts"
)

// KeyTransition is the direction of a scheduled key event.
type KeyTransition int

const (
	// KeyUp releases the key. It sorts before KeyDown at equal times so a
	// repeated note can be re-pressed at a chord boundary.
	KeyUp KeyTransition = iota
	// KeyDown presses the key.
	KeyDown
)

// KeyEvent is one scheduled key transition derived from a note.
type KeyEvent struct {
	Time       float64             // Seconds from the start of the song.
	Transition KeyTransition       // Press or release.
	Stroke     contracts.Keystroke // Key and optional modifier.
}

// chordEpsilon groups events within one millisecond into a single firing
// batch (chord members and same-instant up/down pairs).
const chordEpsilon = 0.001

// buildKeyEvents converts notes into a flat, time-ordered transition list.
// Unplayable notes are dropped. Each playable note yields exactly one
// down at its start and one up at start+duration.
func buildKeyEvents(notes []midifile.Note, profile contracts.GameProfile, layout contracts.KeyLayout, transpose bool, sharp contracts.SharpPolicy) []KeyEvent {
	events := make([]KeyEvent, 0, 2*len(notes))
	for _, note := range notes {
		stroke, ok := keymap.Resolve(int(note.Pitch), profile, layout, transpose, sharp)
		if !ok {
			continue
		}
		events = append(events,
			KeyEvent{Time: note.Start, Transition: KeyDown, Stroke: stroke},
			KeyEvent{Time: note.Start + note.Duration, Transition: KeyUp, Stroke: stroke},
		)
	}

	// Sort by time; at equal times all ups precede all downs. The stable
	// sort keeps extraction order for simultaneous events of the same kind.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return events[i].Transition < events[j].Transition
	})
	return events
}

// cacheKeyLocked identifies the current song + settings combination.
// Speed is deliberately absent: it changes when events fire, not which
// events exist. Callers must hold p.mu.
func (p *Player) cacheKeyLocked() string {
	songID := p.songPath
	if songID == "" {
		songID = "none"
	}
	return fmt.Sprintf("%s|%s|%s|%t|%s", songID, p.profile, p.layout, p.transpose, p.sharpPolicy)
}

// buildEventsLocked returns the KeyEvent list for the current song and
// settings, reusing the cached list when nothing relevant changed.
// Callers must hold p.mu.
func (p *Player) buildEventsLocked() []KeyEvent {
	if p.song == nil {
		return nil
	}
	key := p.cacheKeyLocked()
	if p.cachedEvents != nil && p.cachedKey == key {
		return p.cachedEvents
	}

	events := buildKeyEvents(p.song.Notes, p.profile, p.layout, p.transpose, p.sharpPolicy)
	p.cachedEvents = events
	p.cachedKey = key
	return events
}

// invalidateCacheLocked drops the cached event list as one atomic replace.
// Callers must hold p.mu.
func (p *Player) invalidateCacheLocked() {
	p.cachedEvents = nil
	p.cachedKey = ""
}
