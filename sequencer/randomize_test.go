package sequencer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptRand replays fixed draws, then falls back to zeros
type scriptRand struct {
	ints   []int
	floats []float64
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestRandomizeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pads := []*Pad{NewPad(0), NewPad(1), NewPad(2), NewPad(3)}

	seenLen := map[int]bool{}
	for i := 0; i < 500; i++ {
		Randomize(pads, rng)
		for _, p := range pads {
			require.GreaterOrEqual(t, len(p.Sequence), 1)
			require.LessOrEqual(t, len(p.Sequence), MaxSequenceLen)
			seenLen[len(p.Sequence)] = true
			for _, s := range p.Sequence {
				require.GreaterOrEqual(t, s, 0)
				require.Less(t, s, NumSamples)
			}
		}
	}
	assert.Len(t, seenLen, MaxSequenceLen, "every length 1-8 should come up")
}

func TestRandomSequenceDraws(t *testing.T) {
	rng := &scriptRand{ints: []int{2, 7, 0, 5}}
	assert.Equal(t, []int{7, 0, 5}, RandomSequence(rng))
}

func TestRandomizeKeepsPlayState(t *testing.T) {
	p := NewPad(0)
	p.Start(t0, 120)
	p.SetSync(true)
	Randomize([]*Pad{p}, rand.New(rand.NewSource(1)))
	assert.True(t, p.Playing)
	assert.True(t, p.Synced)
	assert.Less(t, p.Cursor, len(p.Sequence))
}
