package domain

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_CompletionTracksExpectedCount(t *testing.T) {
	p := NewProgress()
	p.Expect(2)

	p.Report("A", 1)
	assert.False(t, p.IsComplete(), "one of two phases reported")

	p.Report("B", 1)
	assert.True(t, p.IsComplete())

	p.Report("A", 0.5)
	assert.False(t, p.IsComplete(), "a phase fell back below 1")
}

func TestProgress_EmptyIsComplete(t *testing.T) {
	p := NewProgress()
	assert.True(t, p.IsComplete())
	assert.Equal(t, 1.0, p.Snapshot().Overall())
}

func TestProgress_ReportClamps(t *testing.T) {
	p := NewProgress()

	p.Report("over", 1.5)
	p.Report("under", -2)
	p.Report("nan", math.NaN())

	snapshot := p.Snapshot()
	require.Len(t, snapshot.Phases, 3)
	assert.Equal(t, 1.0, snapshot.Phases[0].Fraction)
	assert.Equal(t, 0.0, snapshot.Phases[1].Fraction)
	assert.Equal(t, 0.0, snapshot.Phases[2].Fraction)
}

func TestProgress_SnapshotKeepsRegistrationOrder(t *testing.T) {
	p := NewProgress()
	p.Expect(3)

	p.Phase("b")
	p.Phase("a")
	p.Report("c", 0.5)
	p.Report("b", 1)

	snapshot := p.Snapshot()
	require.Len(t, snapshot.Phases, 3)
	assert.Equal(t, "b", snapshot.Phases[0].Name)
	assert.Equal(t, "a", snapshot.Phases[1].Name)
	assert.Equal(t, "c", snapshot.Phases[2].Name)
	assert.Equal(t, 3, snapshot.Expected)
	assert.False(t, snapshot.Complete)
	assert.InDelta(t, 0.5, snapshot.Overall(), 1e-9)
}

func TestPhaseReporter_IsMonotone(t *testing.T) {
	p := NewProgress()
	p.Expect(1)

	phase := p.Phase("Loading")
	phase.Report(0.6)
	phase.Report(0.2)

	assert.Equal(t, 0.6, p.Snapshot().Phases[0].Fraction)

	phase.Report(3)
	assert.Equal(t, 1.0, p.Snapshot().Phases[0].Fraction)
	assert.True(t, p.IsComplete())
}

func TestPhaseReporter_DuplicateNamesAreTrackedSeparately(t *testing.T) {
	p := NewProgress()
	p.Expect(2)

	first := p.Phase("Loading Levels")
	second := p.Phase("Loading Levels")

	assert.Equal(t, "Loading Levels", first.Name())
	assert.Equal(t, "Loading Levels (2)", second.Name())

	first.Complete()
	assert.False(t, p.IsComplete())

	second.Complete()
	assert.True(t, p.IsComplete())
}

func TestPhaseReporter_NilIsSafe(t *testing.T) {
	var phase *PhaseReporter

	assert.NotPanics(t, func() {
		phase.Report(0.5)
		phase.Complete()
	})
	assert.Empty(t, phase.Name())
}

func TestProgress_RetireReleasesCompletion(t *testing.T) {
	p := NewProgress()
	p.Expect(3)

	done := p.Phase("done")
	failedA := p.Phase("failed A")
	failedB := p.Phase("failed B")

	done.Complete()
	failedA.Report(0.4)
	assert.False(t, p.IsComplete())

	p.Retire(failedA.Name(), failedB.Name())
	assert.True(t, p.IsComplete())
	assert.Equal(t, 1, p.Snapshot().Expected)

	failedA.Report(1)
	assert.Len(t, p.Snapshot().Phases, 1, "retired phases stay retired")
}

func TestProgress_ConcurrentReporters(t *testing.T) {
	p := NewProgress()
	p.Expect(8)

	var wg sync.WaitGroup

	for i := range 8 {
		phase := p.Phase("phase")

		wg.Add(1)

		go func() {
			defer wg.Done()

			for step := 1; step <= 100; step++ {
				phase.Report(float64(step+i) / 100)
			}
		}()
	}

	wg.Wait()
	assert.True(t, p.IsComplete())
}

func TestProgress_SubscribeDeliversLatestSnapshot(t *testing.T) {
	p := NewProgress()
	p.Expect(1)

	updates := p.Subscribe()

	initial := <-updates
	assert.Equal(t, 1, initial.Expected)
	assert.Empty(t, initial.Phases)

	p.Report("a", 0.3)
	p.Report("a", 0.7)

	latest := <-updates
	require.Len(t, latest.Phases, 1)
	assert.Equal(t, 0.7, latest.Phases[0].Fraction)

	p.Close()

	_, ok := <-updates
	assert.False(t, ok)

	late := p.Subscribe()
	_, ok = <-late
	assert.False(t, ok, "subscriptions after Close are closed")
}

func TestScaledReporter(t *testing.T) {
	p := NewProgress()
	p.Expect(1)

	phase := p.Phase("scaled")

	scaledReporter{target: phase, from: 0, to: 0.5}.Report(1)
	assert.InDelta(t, 0.5, p.Snapshot().Phases[0].Fraction, 1e-9)

	scaledReporter{target: phase, from: 0.5, to: 1}.Report(0.5)
	assert.InDelta(t, 0.75, p.Snapshot().Phases[0].Fraction, 1e-9)
}
