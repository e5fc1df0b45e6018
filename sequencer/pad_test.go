package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms float64) time.Time {
	return t0.Add(time.Duration(ms * float64(time.Millisecond)))
}

func TestStepInterval(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, StepInterval(120, true))
	assert.Equal(t, 250*time.Millisecond, StepInterval(120, false))
	assert.Equal(t, time.Second, StepInterval(60, true))
	assert.Equal(t, 100*time.Millisecond, StepInterval(300, false))
	assert.InDelta(t, float64(666666666), float64(StepInterval(90, true)), 1)
	// out-of-range tempo is clamped before dividing
	assert.Equal(t, StepInterval(MinTempo, true), StepInterval(0, true))
}

func TestNewPad(t *testing.T) {
	p := NewPad(2)
	assert.Equal(t, 2, p.Sound)
	assert.Equal(t, []int{2}, p.Sequence)
	assert.False(t, p.Playing)
	assert.False(t, p.Synced)
	assert.Zero(t, p.Cursor)
	assert.True(t, p.NextDue().IsZero())
}

func TestStartPlaysImmediately(t *testing.T) {
	p := NewPad(0)
	require.NoError(t, p.SetSequence([]int{3, 5}))

	sample, started := p.Start(t0, 120)
	require.True(t, started)
	assert.Equal(t, 3, sample)
	assert.True(t, p.Playing)
	assert.Equal(t, 1, p.Cursor)
	assert.Equal(t, at(250), p.NextDue())

	_, again := p.Start(t0, 120)
	assert.False(t, again, "starting a playing pad must not retrigger")
	assert.Equal(t, 1, p.Cursor)
}

func TestCursorWrapsCyclically(t *testing.T) {
	p := NewPad(0)
	require.NoError(t, p.SetSequence([]int{1, 2, 3}))
	p.Start(t0, 120)

	var got []int
	now := t0
	for i := 0; i < 7; i++ {
		now = p.NextDue()
		got = append(got, p.Step(now, 120))
		assert.Less(t, p.Cursor, len(p.Sequence))
	}
	assert.Equal(t, []int{2, 3, 1, 2, 3, 1, 2}, got)
}

func TestStopCancelsExactly(t *testing.T) {
	p := NewPad(0)
	p.Start(t0, 120)
	p.Stop()
	assert.False(t, p.Playing)
	assert.False(t, p.Due(at(10000)))
	assert.True(t, p.NextDue().IsZero())

	// restart before the old due time: only the fresh schedule exists
	sample, started := p.Start(at(100), 120)
	require.True(t, started)
	assert.Equal(t, 0, sample)
	assert.False(t, p.Due(at(250)))
	assert.True(t, p.Due(at(350)))
}

func TestTempoChangeAffectsNextInterval(t *testing.T) {
	p := NewPad(0)
	require.NoError(t, p.SetSequence([]int{0, 1}))
	p.Start(t0, 120) // next due at 250ms, already scheduled

	// tempo drops to 60 before the pending step fires
	assert.Equal(t, at(250), p.NextDue())
	p.Step(at(250), 60)
	assert.Equal(t, at(750), p.NextDue(), "interval after the pending step uses the new tempo")
}

func TestSyncTakesEffectAtNextBoundary(t *testing.T) {
	p := NewPad(0)
	p.Start(t0, 120)
	p.SetSync(true)
	assert.Equal(t, at(250), p.NextDue())
	p.Step(at(250), 120)
	assert.Equal(t, at(750), p.NextDue())
}

func TestStepDoesNotBurstWhenLate(t *testing.T) {
	p := NewPad(0)
	p.Start(t0, 120)
	p.Step(at(2000), 120)
	assert.Equal(t, at(2250), p.NextDue())
}

func TestToggle(t *testing.T) {
	p := NewPad(1)
	sample, played := p.Toggle(t0, 120)
	assert.True(t, played)
	assert.Equal(t, 1, sample)
	_, played = p.Toggle(t0, 120)
	assert.False(t, played)
	assert.False(t, p.Playing)
}

func TestSetSequence(t *testing.T) {
	p := NewPad(0)
	assert.ErrorIs(t, p.SetSequence(nil), ErrEmptySequence)
	assert.Equal(t, []int{0}, p.Sequence)

	require.NoError(t, p.SetSequence([]int{9, -1, 4}))
	assert.Equal(t, []int{1, 7, 4}, p.Sequence)

	p.Cursor = 2
	require.NoError(t, p.SetSequence([]int{6, 6}))
	assert.Equal(t, 0, p.Cursor)

	require.NoError(t, p.SetSequence([]int{0, 1, 2, 3, 4, 5, 6, 7, 0, 1}))
	assert.Len(t, p.Sequence, MaxSequenceLen)
}
