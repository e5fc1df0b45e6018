package sequencer

// Rand is the random source used by the randomizer and the director.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// RandomSequence draws a length in [1,MaxSequenceLen] and entries in [0,NumSamples)
func RandomSequence(rng Rand) []int {
	seq := make([]int, 1+rng.Intn(MaxSequenceLen))
	for i := range seq {
		seq[i] = rng.Intn(NumSamples)
	}
	return seq
}

// Randomize gives every pad a fresh sequence. Play state and sync are untouched.
func Randomize(pads []*Pad, rng Rand) {
	for _, p := range pads {
		// never empty, so SetSequence can't fail
		_ = p.SetSequence(RandomSequence(rng))
	}
}
