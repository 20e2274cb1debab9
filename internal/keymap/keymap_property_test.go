package keymap

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/leandrodaf/maestro/sdk/contracts"
)

// TestKeys22TotalityProperty checks that every semitone in the declared
// 22-key range resolves to a non-empty key without a modifier.
func TestKeys22TotalityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("every pitch in 36-84 resolves on the 22-key layout", prop.ForAll(
		func(pitch int) bool {
			stroke, ok := Resolve(pitch, contracts.Heartopia, contracts.Keys22, false, contracts.SharpSkip)
			return ok && stroke.Key != "" && stroke.Mod == contracts.ModNone
		},
		gen.IntRange(36, 84),
	))

	properties.TestingRun(t)
}

// TestTransposeProperty checks that enabling transpose makes the 22-key
// layout total over the full MIDI pitch space, and that the transposed
// pitch resolves to the same key as its in-range octave equivalent.
func TestTransposeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("any MIDI pitch resolves with transpose enabled", prop.ForAll(
		func(pitch int) bool {
			_, ok := Resolve(pitch, contracts.Heartopia, contracts.Keys22, true, contracts.SharpSkip)
			return ok
		},
		gen.IntRange(0, 127),
	))

	properties.Property("out-of-range pitches never resolve without transpose", prop.ForAll(
		func(pitch int) bool {
			if pitch >= 36 && pitch <= 84 {
				return true
			}
			_, ok := Resolve(pitch, contracts.Heartopia, contracts.Keys22, false, contracts.SharpSkip)
			return !ok
		},
		gen.IntRange(0, 127),
	))

	properties.Property("transposed pitch matches its in-range octave equivalent", prop.ForAll(
		func(pitch int) bool {
			shifted := pitch
			for shifted < 36 {
				shifted += 12
			}
			for shifted > 84 {
				shifted -= 12
			}
			got, ok1 := Resolve(pitch, contracts.Heartopia, contracts.Keys22, true, contracts.SharpSkip)
			want, ok2 := Resolve(shifted, contracts.Heartopia, contracts.Keys22, false, contracts.SharpSkip)
			return ok1 && ok2 && got == want
		},
		gen.IntRange(0, 127),
	))

	properties.TestingRun(t)
}

// TestSharpPolicyProperty checks the sharp laws on the 15-key layouts:
// skip always drops a sharp, snap always lands on the natural one
// semitone below.
func TestSharpPolicyProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	sharpOnly := gen.IntRange(60, 83).SuchThat(func(v interface{}) bool {
		return isSharp(v.(int) % 12)
	})

	properties.Property("skip drops every sharp on the double-row layout", prop.ForAll(
		func(pitch int) bool {
			_, ok := Resolve(pitch, contracts.Heartopia, contracts.Keys15Double, false, contracts.SharpSkip)
			return !ok
		},
		sharpOnly,
	))

	properties.Property("snap lands on the natural below on the double-row layout", prop.ForAll(
		func(pitch int) bool {
			got, ok1 := Resolve(pitch, contracts.Heartopia, contracts.Keys15Double, false, contracts.SharpSnap)
			want, ok2 := Resolve(pitch-1, contracts.Heartopia, contracts.Keys15Double, false, contracts.SharpSkip)
			return ok1 && ok2 && got == want
		},
		sharpOnly,
	))

	properties.Property("snap lands on the natural below on the triple-row layout", prop.ForAll(
		func(pitch int) bool {
			got, ok1 := Resolve(pitch, contracts.Heartopia, contracts.Keys15Triple, false, contracts.SharpSnap)
			want, ok2 := Resolve(pitch-1, contracts.Heartopia, contracts.Keys15Triple, false, contracts.SharpSkip)
			return ok1 && ok2 && got == want
		},
		sharpOnly,
	))

	properties.TestingRun(t)
}

// TestWindsMeetSharpProperty checks that a sharp resolves to the natural
// below's key with a Shift modifier over the whole WWM range.
func TestWindsMeetSharpProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	sharpOnly := gen.IntRange(48, 83).SuchThat(func(v interface{}) bool {
		return isSharp(v.(int) % 12)
	})

	properties.Property("sharp is the natural key plus Shift", prop.ForAll(
		func(pitch int) bool {
			sharp, ok1 := Resolve(pitch, contracts.WhereWindsMeet, contracts.Keys22, false, contracts.SharpSkip)
			natural, ok2 := Resolve(pitch-1, contracts.WhereWindsMeet, contracts.Keys22, false, contracts.SharpSkip)
			return ok1 && ok2 &&
				sharp.Mod == contracts.ModShift &&
				natural.Mod == contracts.ModNone &&
				sharp.Key == natural.Key
		},
		sharpOnly,
	))

	properties.Property("every pitch in 48-83 resolves", prop.ForAll(
		func(pitch int) bool {
			stroke, ok := Resolve(pitch, contracts.WhereWindsMeet, contracts.Keys22, false, contracts.SharpSkip)
			return ok && stroke.Key != ""
		},
		gen.IntRange(48, 83),
	))

	properties.TestingRun(t)
}
