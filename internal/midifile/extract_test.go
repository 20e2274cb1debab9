package midifile

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const timingTolerance = 1e-9

func makeSMF(ticksPerBeat uint16, tracks ...smf.Track) *smf.SMF {
	var s smf.SMF
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)
	s.Tracks = append(s.Tracks, tracks...)
	return &s
}

func noteOn(delta uint32, pitch, velocity uint8) smf.Event {
	return smf.Event{Delta: delta, Message: smf.Message(midi.NoteOn(0, pitch, velocity))}
}

func noteOff(delta uint32, pitch uint8) smf.Event {
	return smf.Event{Delta: delta, Message: smf.Message(midi.NoteOff(0, pitch))}
}

func tempo(delta uint32, bpm float64) smf.Event {
	return smf.Event{Delta: delta, Message: smf.MetaTempo(bpm)}
}

func endOfTrack() smf.Event {
	return smf.Event{Delta: 0, Message: smf.EOT}
}

func TestExtractSingleNoteDuration(t *testing.T) {
	// 480 ticks at the default 500000 us/beat with 480 ticks per beat is
	// exactly one beat = 0.5 s.
	s := makeSMF(480, smf.Track{
		noteOn(0, 60, 100),
		noteOff(480, 60),
		endOfTrack(),
	})

	song, err := extractSong(s)
	if err != nil {
		t.Fatalf("extractSong: %v", err)
	}
	if song.NoteCount() != 1 {
		t.Fatalf("got %d notes, want 1", song.NoteCount())
	}
	note := song.Notes[0]
	if note.Pitch != 60 {
		t.Errorf("pitch = %d, want 60", note.Pitch)
	}
	if note.Start != 0 {
		t.Errorf("start = %v, want 0", note.Start)
	}
	if math.Abs(note.Duration-0.5) > timingTolerance {
		t.Errorf("duration = %v, want 0.5", note.Duration)
	}
	if math.Abs(song.Duration()-0.5) > timingTolerance {
		t.Errorf("song duration = %v, want 0.5", song.Duration())
	}
}

func TestExtractTempoChangeIsNotRetroactive(t *testing.T) {
	// First note plays entirely under the default tempo; the 240 BPM
	// change between the notes must only shift the second note's timing.
	s := makeSMF(480, smf.Track{
		noteOn(0, 60, 100),
		noteOff(480, 60), // 0.5 s under 120 BPM
		tempo(0, 240),
		noteOn(0, 62, 100),
		noteOff(480, 62), // 0.25 s under 240 BPM
		endOfTrack(),
	})

	song, err := extractSong(s)
	if err != nil {
		t.Fatalf("extractSong: %v", err)
	}
	if song.NoteCount() != 2 {
		t.Fatalf("got %d notes, want 2", song.NoteCount())
	}
	first, second := song.Notes[0], song.Notes[1]
	if math.Abs(first.Duration-0.5) > timingTolerance {
		t.Errorf("first duration = %v, want 0.5 (tempo change must not be retroactive)", first.Duration)
	}
	if math.Abs(second.Start-0.5) > timingTolerance {
		t.Errorf("second start = %v, want 0.5", second.Start)
	}
	if math.Abs(second.Duration-0.25) > timingTolerance {
		t.Errorf("second duration = %v, want 0.25", second.Duration)
	}
}

func TestExtractTempoOnSameTickAppliesToLaterMessages(t *testing.T) {
	// The tempo event shares a tick with the note start; the delta leading
	// up to that tick is still converted under the previous tempo, while
	// the note's own duration runs under the new one.
	s := makeSMF(480, smf.Track{
		tempo(480, 60), // fires at 0.5 s, then 1 beat = 1 s
		noteOn(0, 60, 100),
		noteOff(480, 60),
		endOfTrack(),
	})

	song, err := extractSong(s)
	if err != nil {
		t.Fatalf("extractSong: %v", err)
	}
	note := song.Notes[0]
	if math.Abs(note.Start-0.5) > timingTolerance {
		t.Errorf("start = %v, want 0.5", note.Start)
	}
	if math.Abs(note.Duration-1.0) > timingTolerance {
		t.Errorf("duration = %v, want 1.0", note.Duration)
	}
}

func TestExtractMergesTracksChronologically(t *testing.T) {
	s := makeSMF(480,
		smf.Track{
			noteOn(480, 64, 100),
			noteOff(480, 64),
			endOfTrack(),
		},
		smf.Track{
			noteOn(0, 60, 100),
			noteOff(240, 60),
			endOfTrack(),
		},
	)

	song, err := extractSong(s)
	if err != nil {
		t.Fatalf("extractSong: %v", err)
	}
	if song.NoteCount() != 2 {
		t.Fatalf("got %d notes, want 2", song.NoteCount())
	}
	if song.Notes[0].Pitch != 60 || song.Notes[1].Pitch != 64 {
		t.Errorf("notes not sorted by start: got pitches %d, %d", song.Notes[0].Pitch, song.Notes[1].Pitch)
	}
	for i := 1; i < len(song.Notes); i++ {
		if song.Notes[i].Start < song.Notes[i-1].Start {
			t.Errorf("notes out of order at %d", i)
		}
	}
}

func TestExtractZeroVelocityNoteOnEndsNote(t *testing.T) {
	s := makeSMF(480, smf.Track{
		noteOn(0, 60, 100),
		noteOn(480, 60, 0),
		endOfTrack(),
	})

	song, err := extractSong(s)
	if err != nil {
		t.Fatalf("extractSong: %v", err)
	}
	if song.NoteCount() != 1 {
		t.Fatalf("got %d notes, want 1", song.NoteCount())
	}
	if math.Abs(song.Notes[0].Duration-0.5) > timingTolerance {
		t.Errorf("duration = %v, want 0.5", song.Notes[0].Duration)
	}
}

func TestExtractClosesMostRecentInstanceOfPitch(t *testing.T) {
	// Two overlapping instances of the same pitch: the note-off closes the
	// most recently opened one.
	s := makeSMF(480, smf.Track{
		noteOn(0, 60, 100),
		noteOn(480, 60, 100),
		noteOff(480, 60),
		endOfTrack(),
	})

	song, err := extractSong(s)
	if err != nil {
		t.Fatalf("extractSong: %v", err)
	}
	if song.NoteCount() != 2 {
		t.Fatalf("got %d notes, want 2", song.NoteCount())
	}
	if math.Abs(song.Notes[1].Duration-0.5) > timingTolerance {
		t.Errorf("second instance duration = %v, want 0.5", song.Notes[1].Duration)
	}
	// The first instance was never closed and keeps duration 0.
	if song.Notes[0].Duration != 0 {
		t.Errorf("first instance duration = %v, want 0", song.Notes[0].Duration)
	}
}

func TestExtractUnmatchedNoteOffIsIgnored(t *testing.T) {
	s := makeSMF(480, smf.Track{
		noteOff(0, 60),
		noteOn(480, 60, 100),
		noteOff(480, 60),
		endOfTrack(),
	})

	song, err := extractSong(s)
	if err != nil {
		t.Fatalf("extractSong: %v", err)
	}
	if song.NoteCount() != 1 {
		t.Fatalf("got %d notes, want 1", song.NoteCount())
	}
}

func TestExtractEmptySong(t *testing.T) {
	s := makeSMF(480, smf.Track{endOfTrack()})

	song, err := extractSong(s)
	if err != nil {
		t.Fatalf("extractSong: %v", err)
	}
	if song.NoteCount() != 0 {
		t.Errorf("note count = %d, want 0", song.NoteCount())
	}
	if song.Duration() != 0 {
		t.Errorf("duration = %v, want 0", song.Duration())
	}
	if song.BPM() != 120 {
		t.Errorf("bpm = %d, want default 120", song.BPM())
	}
}

func TestSongBPM(t *testing.T) {
	s := makeSMF(480, smf.Track{
		tempo(0, 150.4),
		noteOn(0, 60, 100),
		noteOff(480, 60),
		endOfTrack(),
	})

	song, err := extractSong(s)
	if err != nil {
		t.Fatalf("extractSong: %v", err)
	}
	if song.BPM() != 150 {
		t.Errorf("bpm = %d, want 150", song.BPM())
	}
}

func TestExtractRoundTripThroughBytes(t *testing.T) {
	s := makeSMF(480, smf.Track{
		noteOn(0, 60, 100),
		noteOff(480, 60),
		endOfTrack(),
	})
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	song, err := Extract(buf.Bytes())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if song.NoteCount() != 1 {
		t.Fatalf("got %d notes, want 1", song.NoteCount())
	}
	if math.Abs(song.Notes[0].Duration-0.5) > timingTolerance {
		t.Errorf("duration = %v, want 0.5", song.Notes[0].Duration)
	}
}

func TestExtractRejectsGarbage(t *testing.T) {
	_, err := Extract([]byte("this is not a midi file"))
	if !errors.Is(err, ErrBadFormat) {
		t.Errorf("err = %v, want ErrBadFormat", err)
	}
}

func TestExtractFileNotFound(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.mid"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExtractFileTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.mid")
	if err := os.WriteFile(path, make([]byte, MaxFileSize+1), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := ExtractFile(path)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}
