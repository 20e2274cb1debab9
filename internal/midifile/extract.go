// Package midifile extracts timed note sequences from Standard MIDI Files.
package midifile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Error definitions for extraction failures.
var (
	// ErrBadFormat is returned when the byte stream is not a well-formed
	// MIDI container.
	ErrBadFormat = errors.New("invalid MIDI file")
	// ErrNotFound is returned when the source file does not exist.
	ErrNotFound = errors.New("MIDI file not found")
	// ErrTooLarge is returned when the source exceeds MaxFileSize.
	ErrTooLarge = errors.New("MIDI file too large")
)

// MaxFileSize bounds the accepted input size, guarding against
// pathological files causing unbounded memory or time use.
const MaxFileSize = 10 * 1024 * 1024

// defaultTempo is the SMF default of 500000 microseconds per beat (120 BPM).
const defaultTempo = 500000.0

// Note is a single extracted note with absolute timing in seconds.
type Note struct {
	Pitch    uint8   // MIDI note number (0-127).
	Start    float64 // Seconds from the start of the song.
	Duration float64 // Seconds the note is held; 0 if never closed.
}

// Song is the extraction result: notes ordered by start time plus the
// derived queries callers would otherwise re-compute from the sequence.
type Song struct {
	Notes []Note

	firstBPM float64 // Tempo of the first tempo event, 0 if none.
}

// Duration returns the end time of the last note, or 0 for an empty song.
func (s *Song) Duration() float64 {
	if len(s.Notes) == 0 {
		return 0
	}
	last := s.Notes[len(s.Notes)-1]
	return last.Start + last.Duration
}

// BPM returns the tempo at the start of the song rounded to the nearest
// integer, defaulting to 120 when the file carries no tempo event.
func (s *Song) BPM() int {
	if s.firstBPM <= 0 {
		return 120
	}
	return int(math.Round(s.firstBPM))
}

// NoteCount returns the number of extracted notes.
func (s *Song) NoteCount() int {
	return len(s.Notes)
}

// ExtractFile reads and extracts a MIDI file from disk. It fails with
// ErrNotFound for missing files and ErrTooLarge for files over MaxFileSize.
func ExtractFile(path string) (*Song, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(data)
}

// Extract parses a MIDI byte stream into a Song. It fails with ErrBadFormat
// if the stream is not a well-formed MIDI container.
func Extract(data []byte) (song *Song, err error) {
	// The smf parser panics on some malformed inputs.
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			song = nil
			err = fmt.Errorf("%w: %v", ErrBadFormat, r)
		}
	}()

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return extractSong(s)
}

// trackedEvent is one message placed on the merged absolute-tick timeline.
type trackedEvent struct {
	tick uint64
	msg  smf.Message
}

// extractSong walks all tracks merged into one chronological stream,
// converting delta ticks to seconds under the running tempo.
func extractSong(s *smf.SMF) (*Song, error) {
	metric, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported time format %v", ErrBadFormat, s.TimeFormat)
	}
	ticksPerBeat := float64(uint16(metric))
	if ticksPerBeat == 0 {
		return nil, fmt.Errorf("%w: zero ticks per beat", ErrBadFormat)
	}

	// Merge tracks by absolute tick; the stable sort keeps track order as
	// the tie-break so simultaneous events preserve file order.
	var merged []trackedEvent
	for _, track := range s.Tracks {
		var absTicks uint64
		for _, ev := range track {
			absTicks += uint64(ev.Delta)
			merged = append(merged, trackedEvent{tick: absTicks, msg: ev.Message})
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].tick < merged[j].tick
	})

	song := &Song{}
	tempo := defaultTempo // microseconds per beat
	currentTime := 0.0
	var lastTick uint64

	// Open note instances per pitch, most recent last.
	open := make(map[uint8][]int)

	for _, ev := range merged {
		// Advance the clock under the tempo in effect before this message;
		// a tempo change carried by the message applies only to later ones.
		currentTime += float64(ev.tick-lastTick) * tempo / 1e6 / ticksPerBeat
		lastTick = ev.tick

		var channel, key, velocity uint8
		var bpm float64
		switch {
		case ev.msg.GetMetaTempo(&bpm):
			if bpm > 0 {
				tempo = 60e6 / bpm
				if song.firstBPM == 0 {
					song.firstBPM = bpm
				}
			}
		case ev.msg.GetNoteStart(&channel, &key, &velocity):
			open[key] = append(open[key], len(song.Notes))
			song.Notes = append(song.Notes, Note{Pitch: key, Start: currentTime})
		case ev.msg.GetNoteEnd(&channel, &key):
			stack := open[key]
			if len(stack) == 0 {
				continue // note-off without a matching start
			}
			idx := stack[len(stack)-1]
			open[key] = stack[:len(stack)-1]
			song.Notes[idx].Duration = currentTime - song.Notes[idx].Start
		}
	}

	// Unclosed notes at end-of-stream keep duration 0.
	sort.SliceStable(song.Notes, func(i, j int) bool {
		return song.Notes[i].Start < song.Notes[j].Start
	})
	return song, nil
}
