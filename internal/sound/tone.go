package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// Tone is one synthesized note.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Volume   float64 // 0..1
}

// Feedback tones.
var (
	TonePlay        = Tone{Freq: 660, Duration: 60 * time.Millisecond, Wave: WaveSine, Volume: 0.3}
	ToneNote        = Tone{Freq: 990, Duration: 30 * time.Millisecond, Wave: WaveSine, Volume: 0.2}
	ToneRemove      = Tone{Freq: 440, Duration: 50 * time.Millisecond, Wave: WaveTriangle, Volume: 0.3}
	ToneModeSwitch  = Tone{Freq: 520, Duration: 40 * time.Millisecond, Wave: WaveTriangle, Volume: 0.2}
	TonePause       = Tone{Freq: 330, Duration: 90 * time.Millisecond, Wave: WaveSine, Volume: 0.3}
	ToneResume      = Tone{Freq: 550, Duration: 90 * time.Millisecond, Wave: WaveSine, Volume: 0.3}
	ToneMistake     = Tone{Freq: 120, Duration: 150 * time.Millisecond, Wave: WaveSquare, Volume: 0.25}
	ToneWin         = Tone{Freq: 880, Duration: 400 * time.Millisecond, Wave: WaveSine, Volume: 0.35}
	ToneLose        = Tone{Freq: 90, Duration: 500 * time.Millisecond, Wave: WaveSquare, Volume: 0.3}
)

// oscillator streams a fixed number of samples of one tone, with a
// short linear fade at both ends.
type oscillator struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64
	position int
	length   int
	fade     int
}

// NewStreamer returns a finite streamer for the tone.
func NewStreamer(t Tone, rate beep.SampleRate) beep.Streamer {
	length := rate.N(t.Duration)
	fade := rate.N(5 * time.Millisecond)
	if fade*2 > length {
		fade = length / 2
	}
	return &oscillator{tone: t, rate: rate, length: length, fade: fade}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		val := o.sample() * o.envelope() * o.tone.Volume
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.tone.Freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func (o *oscillator) sample() float64 {
	switch o.tone.Wave {
	case WaveSquare:
		if o.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(o.phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * o.phase)
	}
}

func (o *oscillator) envelope() float64 {
	if o.fade == 0 {
		return 1
	}
	if o.position < o.fade {
		return float64(o.position) / float64(o.fade)
	}
	if tail := o.length - o.position; tail < o.fade {
		return float64(tail) / float64(o.fade)
	}
	return 1
}
