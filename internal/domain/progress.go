package domain

import (
	"fmt"
	"sync"

	m "modepack.dev/pkg/modepack/internal/model"
)

// Progress aggregates named loading phases into one completion signal.
//
// The expected phase count is raised by each Source before it starts loading,
// so IsComplete cannot read true while later phases are still to arrive.
// Subscribers receive snapshots on buffered channels; a slow reader only ever
// misses intermediate snapshots, never the latest one.
type Progress struct {
	mu       sync.Mutex
	order    []string
	phases   map[string]float64
	expected int
	subs     []chan m.ProgressSnapshot
	closed   bool
}

// NewProgress creates an empty aggregator.
func NewProgress() *Progress {
	return &Progress{phases: make(map[string]float64)}
}

// Expect raises the number of phases that must report before completion.
func (p *Progress) Expect(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.expected += n
	p.publishLocked()
}

// Report upserts a phase, clamping fraction to [0,1].
func (p *Progress) Report(name string, fraction float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.setLocked(name, clamp01(fraction))
	p.publishLocked()
}

// Phase registers a new phase at 0 and returns its reporter. A name already in
// use gets a numeric suffix so every registration is tracked on its own.
func (p *Progress) Phase(name string) *PhaseReporter {
	p.mu.Lock()
	defer p.mu.Unlock()

	unique := name
	for i := 2; ; i++ {
		if _, taken := p.phases[unique]; !taken {
			break
		}

		unique = fmt.Sprintf("%s (%d)", name, i)
	}

	p.setLocked(unique, 0)
	p.publishLocked()

	return &PhaseReporter{progress: p, name: unique}
}

// Retire drops the given phases and lowers the expected count by the number
// of names, releasing the completion predicate from a Source that failed
// after registering its phases.
func (p *Progress) Retire(names ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, name := range names {
		if _, ok := p.phases[name]; !ok {
			continue
		}

		delete(p.phases, name)

		for i, existing := range p.order {
			if existing == name {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
	}

	p.expected -= len(names)
	if p.expected < 0 {
		p.expected = 0
	}

	p.publishLocked()
}

// IsComplete reports whether every tracked phase is done and every expected
// phase is tracked.
func (p *Progress) IsComplete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.completeLocked()
}

// Snapshot returns a copy of the current state in registration order.
func (p *Progress) Snapshot() m.ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshotLocked()
}

// Subscribe returns a channel carrying a snapshot after every change. The
// channel is closed by Close.
func (p *Progress) Subscribe() <-chan m.ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan m.ProgressSnapshot, 1)
	if p.closed {
		close(ch)
		return ch
	}

	ch <- p.snapshotLocked()
	p.subs = append(p.subs, ch)

	return ch
}

// Close ends every subscription. Reports after Close still update the state.
func (p *Progress) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.closed = true

	for _, ch := range p.subs {
		close(ch)
	}

	p.subs = nil
}

// advance raises an existing phase. Retired phases are not brought back.
func (p *Progress) advance(name string, fraction float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, ok := p.phases[name]
	if !ok || fraction <= current {
		return
	}

	p.phases[name] = fraction
	p.publishLocked()
}

func (p *Progress) setLocked(name string, fraction float64) {
	if _, ok := p.phases[name]; !ok {
		p.order = append(p.order, name)
	}

	p.phases[name] = fraction
}

func (p *Progress) completeLocked() bool {
	if len(p.phases) != p.expected {
		return false
	}

	for _, fraction := range p.phases {
		if fraction < 1 {
			return false
		}
	}

	return true
}

func (p *Progress) snapshotLocked() m.ProgressSnapshot {
	phases := make([]m.PhaseState, 0, len(p.order))
	for _, name := range p.order {
		phases = append(phases, m.PhaseState{Name: name, Fraction: p.phases[name]})
	}

	return m.ProgressSnapshot{
		Phases:   phases,
		Expected: p.expected,
		Complete: p.completeLocked(),
	}
}

func (p *Progress) publishLocked() {
	if len(p.subs) == 0 {
		return
	}

	snapshot := p.snapshotLocked()

	for _, ch := range p.subs {
		select {
		case ch <- snapshot:
		default:
			// Replace the stale snapshot the reader has not picked up yet.
			select {
			case <-ch:
			default:
			}

			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// PhaseReporter feeds one phase. Its fraction never goes backwards and it may
// be called from any goroutine. A nil reporter discards reports.
type PhaseReporter struct {
	progress *Progress
	name     string
}

// Name returns the phase name as tracked by the aggregator.
func (r *PhaseReporter) Name() string {
	if r == nil {
		return ""
	}

	return r.name
}

// Report raises the phase to fraction, clamped to [0,1].
func (r *PhaseReporter) Report(fraction float64) {
	if r == nil {
		return
	}

	r.progress.advance(r.name, clamp01(fraction))
}

// Complete marks the phase done.
func (r *PhaseReporter) Complete() {
	r.Report(1)
}

// scaledReporter maps a sub-task's 0..1 onto the [from, to] slice of a phase.
type scaledReporter struct {
	target interface{ Report(float64) }
	from   float64
	to     float64
}

func (s scaledReporter) Report(fraction float64) {
	s.target.Report(s.from + clamp01(fraction)*(s.to-s.from))
}

func clamp01(fraction float64) float64 {
	switch {
	case fraction != fraction: // NaN
		return 0
	case fraction < 0:
		return 0
	case fraction > 1:
		return 1
	}

	return fraction
}
