package sequencer

import (
	"math"
)

// Lane slots of the default eight-sound kit
const (
	SoundKick = iota
	SoundSnare1
	SoundSnare2
	SoundClap
	SoundSnap
	SoundClosedHat
	SoundHiHat
	SoundWater

	NumSounds
)

// DefaultSteps is the pattern length of the stock grid
const DefaultSteps = 16

// DefaultSampleRate matches the output clock the kit was recorded for
const DefaultSampleRate = 16384

// KitNames are the two-letter lane labels, indexed by sound
var KitNames = [NumSounds]string{
	"Kc", // kick
	"S1", // snare 1
	"S2", // snare 2
	"Cl", // clap
	"Sn", // snap
	"CH", // closed hat
	"HH", // hi-hat table
	"Wt", // water
}

type voiceFunc func(t float64, noise func() float64) float64

// DefaultKit renders the built-in eight-lane kit as signed 8-bit PCM.
// Output is deterministic for a given sample rate.
func DefaultKit(sampleRate int) []SampleAsset {
	seed := uint64(0x5eed)
	noise := func() float64 { return lcg(&seed) }

	voices := [NumSounds]struct {
		dur float64
		fn  voiceFunc
	}{
		SoundKick: {0.22, func(t float64, _ func() float64) float64 {
			// pitch falls from 150Hz to 45Hz; phase is the integral of that sweep
			phase := 2 * math.Pi * (45*t + 105*(1-math.Exp(-t*30))/30)
			return math.Sin(phase) * math.Exp(-t*14)
		}},
		SoundSnare1: {0.18, func(t float64, n func() float64) float64 {
			return (0.7*n() + 0.3*math.Sin(2*math.Pi*180*t)) * math.Exp(-t*25)
		}},
		SoundSnare2: {0.24, func(t float64, n func() float64) float64 {
			return (0.8*n() + 0.2*math.Sin(2*math.Pi*220*t)) * math.Exp(-t*16)
		}},
		SoundClap: {0.2, func(t float64, n func() float64) float64 {
			// three short bursts, then a diffuse tail
			env := 0.0
			for _, at := range []float64{0, 0.011, 0.022} {
				if t >= at && t < at+0.008 {
					env = math.Max(env, 1-(t-at)/0.008)
				}
			}
			if t >= 0.03 {
				env = math.Max(env, 0.7*math.Exp(-(t-0.03)*20))
			}
			return n() * env
		}},
		SoundSnap: {0.06, func(t float64, n func() float64) float64 {
			return (0.6*n() + 0.4*math.Sin(2*math.Pi*1800*t)) * math.Exp(-t*80)
		}},
		SoundClosedHat: {0.05, func(t float64, n func() float64) float64 {
			return n() * math.Exp(-t*90)
		}},
		SoundHiHat: {0.3, func(t float64, n func() float64) float64 {
			return n() * 0.8 * math.Exp(-t*12)
		}},
		SoundWater: {0.35, func(t float64, _ func() float64) float64 {
			// three rising droplets
			drop := math.Mod(t, 0.11)
			freq := 400 + 1200*drop/0.11
			return math.Sin(2*math.Pi*freq*drop) * math.Exp(-drop*30) * 0.9
		}},
	}

	kit := make([]SampleAsset, 0, NumSounds)
	for sound, v := range voices {
		fn := v.fn
		if sound == SoundClosedHat || sound == SoundHiHat {
			fn = highPass(fn)
		}
		kit = append(kit, SampleAsset{
			Sound: sound,
			Name:  KitNames[sound],
			PCM:   render8(sampleRate, v.dur, fn, noise),
		})
	}
	return kit
}

// DefaultLibrary is the built-in kit registered as a Library
func DefaultLibrary(sampleRate int) *Library {
	lib, err := NewLibrary(DefaultKit(sampleRate)...)
	if err != nil {
		panic(err) // built-in table is static
	}
	return lib
}

func render8(sampleRate int, dur float64, fn voiceFunc, noise func() float64) []int8 {
	n := int(float64(sampleRate) * dur)
	if n < 1 {
		n = 1
	}
	pcm := make([]int8, n)
	for i := range pcm {
		t := float64(i) / float64(sampleRate)
		pcm[i] = toInt8(fn(t, noise))
	}
	return pcm
}

// highPass wraps a voice with a one-pole difference filter for metallic hats
func highPass(fn voiceFunc) voiceFunc {
	prev := 0.0
	return func(t float64, n func() float64) float64 {
		x := fn(t, n)
		y := x - prev
		prev = x
		return y * 0.6
	}
}

func toInt8(v float64) int8 {
	s := math.Round(v * 127)
	if s > 127 {
		s = 127
	} else if s < -128 {
		s = -128
	}
	return int8(s)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1]
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}
