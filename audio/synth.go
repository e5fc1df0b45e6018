package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
)

// SynthNames labels the built-in voices by slot
var SynthNames = []string{"kick", "snare", "hat", "clap"}

// Synth renders the built-in voice for slot, or nil if there is none
func Synth(slot int, format beep.Format) *beep.Buffer {
	noise := rand.New(rand.NewSource(int64(slot) + 1))
	white := func() float64 { return noise.Float64()*2 - 1 }

	switch slot {
	case 0:
		// decaying sine with a downward pitch bend
		const dur = 0.25
		phase := 0.0
		sr := float64(format.SampleRate)
		return render(format, dur*float64(time.Second), func(t float64) float64 {
			x := t / dur
			phase += 2 * math.Pi * (150 - 100*x) / sr
			return math.Sin(phase) * math.Exp(-5*x)
		})
	case 1:
		return render(format, 0.18*float64(time.Second), func(t float64) float64 {
			body := math.Sin(2*math.Pi*180*t) * math.Exp(-t*30) * 0.4
			return white()*math.Exp(-t*25)*0.6 + body
		})
	case 2:
		prev := 0.0
		return render(format, 0.06*float64(time.Second), func(t float64) float64 {
			n := white()
			hp := n - prev // crude high-pass
			prev = n
			return hp * 0.4 * math.Exp(-t*60)
		})
	case 3:
		return render(format, 0.2*float64(time.Second), func(t float64) float64 {
			// three quick bursts then a tail
			env := math.Exp(-math.Mod(t, 0.012)*300)
			if t > 0.036 {
				env = math.Exp(-(t - 0.036) * 20)
			}
			return white() * env * 0.5
		})
	}
	return nil
}

// render samples f(t) (t in seconds) over d into a mono-in-stereo buffer
func render(format beep.Format, d float64, f func(t float64) float64) *beep.Buffer {
	n := format.SampleRate.N(time.Duration(d))
	sr := float64(format.SampleRate)
	i := 0

	gen := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= n {
			return 0, false
		}
		k := 0
		for ; k < len(samples) && i < n; k++ {
			v := f(float64(i) / sr)
			samples[k][0], samples[k][1] = v, v
			i++
		}
		return k, true
	})

	buf := beep.NewBuffer(format)
	buf.Append(gen)
	return buf
}
