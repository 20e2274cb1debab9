package keymap

import (
	"testing"

	"github.com/leandrodaf/maestro/sdk/contracts"
)

func TestResolveKeys22(t *testing.T) {
	tests := []struct {
		name      string
		pitch     int
		transpose bool
		want      string
		wantOK    bool
	}{
		{"extended low C2", 36, false, ",", true},
		{"low octave C3", 48, false, "l", true},
		{"low octave B3", 59, false, "]", true},
		{"middle C", 60, false, "z", true},
		{"mid sharp C#4", 61, false, "s", true},
		{"mid octave B4", 71, false, "m", true},
		{"high octave C5", 72, false, "q", true},
		{"high sharp C#5", 73, false, "2", true},
		{"high octave B5", 83, false, "u", true},
		{"extended high C6", 84, false, "i", true},
		{"below range dropped", 35, false, "", false},
		{"above range dropped", 85, false, "", false},
		{"below range transposed up", 24, true, ",", true},
		{"just below range transposed", 35, true, "]", true},
		{"above range transposed down", 96, true, "i", true},
		{"just above range transposed", 85, true, "2", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.pitch, contracts.Heartopia, contracts.Keys22, tt.transpose, contracts.SharpSkip)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.Key != tt.want {
				t.Errorf("key = %q, want %q", got.Key, tt.want)
			}
			if ok && got.Mod != contracts.ModNone {
				t.Errorf("mod = %v, want ModNone", got.Mod)
			}
		})
	}
}

func TestResolveKeys15Double(t *testing.T) {
	tests := []struct {
		name   string
		pitch  int
		sharp  contracts.SharpPolicy
		want   string
		wantOK bool
	}{
		{"middle C", 60, contracts.SharpSkip, "a", true},
		{"mid B4", 71, contracts.SharpSkip, "j", true},
		{"high C5", 72, contracts.SharpSkip, "q", true},
		{"high B5", 83, contracts.SharpSkip, "u", true},
		{"extended high C6", 84, contracts.SharpSkip, "i", true},
		{"sharp skipped", 61, contracts.SharpSkip, "", false},
		{"sharp snapped to natural", 61, contracts.SharpSnap, "a", true},
		{"high sharp snapped", 78, contracts.SharpSnap, "r", true},
		{"below range dropped", 59, contracts.SharpSkip, "", false},
		{"above range dropped", 85, contracts.SharpSkip, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.pitch, contracts.Heartopia, contracts.Keys15Double, false, tt.sharp)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.Key != tt.want {
				t.Errorf("key = %q, want %q", got.Key, tt.want)
			}
		})
	}
}

func TestResolveKeys15Triple(t *testing.T) {
	tests := []struct {
		name   string
		pitch  int
		sharp  contracts.SharpPolicy
		want   string
		wantOK bool
	}{
		{"row one start", 60, contracts.SharpSkip, "y", true},
		{"row two start", 69, contracts.SharpSkip, "h", true},
		{"row two end", 76, contracts.SharpSkip, ";", true},
		{"row three start", 77, contracts.SharpSkip, "n", true},
		{"row three end", 84, contracts.SharpSkip, "/", true},
		{"sharp skipped", 66, contracts.SharpSkip, "", false},
		{"sharp snapped", 66, contracts.SharpSnap, "o", true},
		{"high sharp snapped", 78, contracts.SharpSnap, "n", true},
		{"below range dropped", 59, contracts.SharpSkip, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.pitch, contracts.Heartopia, contracts.Keys15Triple, false, tt.sharp)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.Key != tt.want {
				t.Errorf("key = %q, want %q", got.Key, tt.want)
			}
		})
	}
}

func TestResolveDrums(t *testing.T) {
	wantKeys := map[int]string{
		60: "y", 61: "u", 62: "i", 63: "o",
		64: "h", 65: "j", 66: "k", 67: "l",
	}
	for pitch, want := range wantKeys {
		got, ok := Resolve(pitch, contracts.Heartopia, contracts.Drums, false, contracts.SharpSkip)
		if !ok || got.Key != want {
			t.Errorf("pitch %d: got (%q, %v), want (%q, true)", pitch, got.Key, ok, want)
		}
	}

	// Drums never transpose; out-of-range pitches are dropped regardless.
	for _, pitch := range []int{59, 68, 72} {
		if _, ok := Resolve(pitch, contracts.Heartopia, contracts.Drums, true, contracts.SharpSkip); ok {
			t.Errorf("pitch %d resolved, want dropped", pitch)
		}
	}
}

func TestResolveXylophone(t *testing.T) {
	wantKeys := map[int]string{
		60: "a", 62: "s", 64: "d", 65: "f",
		67: "g", 69: "h", 71: "j", 72: "k",
	}
	for pitch, want := range wantKeys {
		got, ok := Resolve(pitch, contracts.Heartopia, contracts.Xylophone, false, contracts.SharpSkip)
		if !ok || got.Key != want {
			t.Errorf("pitch %d: got (%q, %v), want (%q, true)", pitch, got.Key, ok, want)
		}
	}

	// The xylophone is diatonic: sharps stay unplayable even under snap,
	// and out-of-range pitches never transpose.
	for _, pitch := range []int{61, 63, 66, 59, 73} {
		if _, ok := Resolve(pitch, contracts.Heartopia, contracts.Xylophone, true, contracts.SharpSnap); ok {
			t.Errorf("pitch %d resolved, want dropped", pitch)
		}
	}
}

func TestResolveWindsMeet(t *testing.T) {
	tests := []struct {
		name      string
		pitch     int
		transpose bool
		want      contracts.Keystroke
		wantOK    bool
	}{
		{"low C3", 48, false, contracts.Keystroke{Key: "z", Mod: contracts.ModNone}, true},
		{"low sharp C#3", 49, false, contracts.Keystroke{Key: "z", Mod: contracts.ModShift}, true},
		{"middle C", 60, false, contracts.Keystroke{Key: "a", Mod: contracts.ModNone}, true},
		{"mid sharp F#4", 66, false, contracts.Keystroke{Key: "f", Mod: contracts.ModShift}, true},
		{"high C5", 72, false, contracts.Keystroke{Key: "q", Mod: contracts.ModNone}, true},
		{"high B5", 83, false, contracts.Keystroke{Key: "u", Mod: contracts.ModNone}, true},
		{"below range dropped", 47, false, contracts.Keystroke{}, false},
		{"above range dropped", 84, false, contracts.Keystroke{}, false},
		{"above range transposed down", 84, true, contracts.Keystroke{Key: "q", Mod: contracts.ModNone}, true},
		{"below range transposed up", 47, true, contracts.Keystroke{Key: "m", Mod: contracts.ModNone}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.pitch, contracts.WhereWindsMeet, contracts.Keys22, tt.transpose, contracts.SharpSkip)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWindsMeetIgnoresLayout(t *testing.T) {
	// WWM has a single instrument; every layout setting resolves the same.
	layouts := []contracts.KeyLayout{
		contracts.Keys22, contracts.Keys15Double, contracts.Keys15Triple,
		contracts.Drums, contracts.Xylophone,
	}
	want, ok := Resolve(60, contracts.WhereWindsMeet, contracts.Keys22, false, contracts.SharpSkip)
	if !ok {
		t.Fatal("pitch 60 did not resolve")
	}
	for _, layout := range layouts {
		got, ok := Resolve(60, contracts.WhereWindsMeet, layout, false, contracts.SharpSkip)
		if !ok || got != want {
			t.Errorf("layout %v: got (%+v, %v), want (%+v, true)", layout, got, ok, want)
		}
	}
}
