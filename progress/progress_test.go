package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := New(started)

	var seen []Counters
	p.OnChange(func(c Counters) { seen = append(seen, c) })

	p.Update(Delta{Created: 2})
	p.Update(Delta{Approved: 1})
	p.Update(Delta{Rejected: 1, RolledBack: 1})

	expected := Counters{StartedAt: started, CreatedTasks: 2, ApprovedTasks: 1, RejectedTasks: 1, RolledBackTasks: 1}
	assert.Equal(t, expected, p.Snapshot())
	assert.Len(t, seen, 3)
	assert.Equal(t, 2, seen[0].CreatedTasks)

	p.OnChange(nil)
	p.Update(Delta{Created: 1})
	assert.Len(t, seen, 3)
}

func TestProgress_Concurrent(t *testing.T) {
	p := New(time.Now())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Update(Delta{Created: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, p.Snapshot().CreatedTasks)
}

func TestProgress_Nil(t *testing.T) {
	var p *Progress
	p.Update(Delta{Created: 1})
	p.OnChange(func(Counters) {})
	assert.Equal(t, Counters{}, p.Snapshot())
}
