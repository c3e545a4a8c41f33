package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// Tone shape of every beep: an A5 sine that fades from StartGain to EndGain.
const (
	Frequency    = 880.0
	StartGain    = 0.1
	EndGain      = 0.001
	ToneDuration = 500 * time.Millisecond
	ToneSpacing  = 600 * time.Millisecond
)

// DefaultSampleRate is used when the player is not given one.
const DefaultSampleRate = beep.SampleRate(44100)

// Tone returns a single finite beep sampled at rate.
func Tone(rate beep.SampleRate) beep.Streamer {
	total := rate.N(ToneDuration)
	decay := math.Log(EndGain/StartGain) / ToneDuration.Seconds()
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(rate)
			v := StartGain * math.Exp(decay*t) * math.Sin(2*math.Pi*Frequency*t)
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}

// Sequence returns count beeps whose onsets are ToneSpacing apart.
func Sequence(rate beep.SampleRate, count int) beep.Streamer {
	if count <= 0 {
		return beep.Silence(0)
	}
	gap := rate.N(ToneSpacing - ToneDuration)
	parts := make([]beep.Streamer, 0, 2*count-1)
	for i := 0; i < count; i++ {
		if i > 0 {
			parts = append(parts, beep.Silence(gap))
		}
		parts = append(parts, Tone(rate))
	}
	return beep.Seq(parts...)
}
