// Package progress keeps aggregated counters of engine activity: tasks
// created, approved, rejected and rolled back. It is safe for concurrent use.
package progress

import (
	"sync"
	"time"
)

// Delta is an incremental counter change emitted by the engine.
type Delta struct {
	Created    int
	Approved   int
	Rejected   int
	RolledBack int
}

// Progress holds the counters.
type Progress struct {
	mu       sync.Mutex
	counters Counters
	onChange func(Counters)
}

// Counters is a read-only copy of the tracker state.
type Counters struct {
	StartedAt       time.Time
	CreatedTasks    int
	ApprovedTasks   int
	RejectedTasks   int
	RolledBackTasks int
}

// New creates a tracker started at startedAt.
func New(startedAt time.Time) *Progress {
	return &Progress{counters: Counters{StartedAt: startedAt}}
}

// Update applies d. The onChange callback, if any, runs outside the lock
// with a copy taken while the lock was held.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.counters.CreatedTasks += d.Created
	p.counters.ApprovedTasks += d.Approved
	p.counters.RejectedTasks += d.Rejected
	p.counters.RolledBackTasks += d.RolledBack
	snapshot := p.counters
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counters
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.onChange = cb
	p.mu.Unlock()
}
