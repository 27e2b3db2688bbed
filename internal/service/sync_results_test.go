package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncResultsTracker_Record(t *testing.T) {
	tr := newSyncResultsTracker()
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, tr.record(1, false, t1))
	assert.Equal(t, 2, tr.record(1, false, t1.Add(time.Minute)))
	assert.Equal(t, 0, tr.record(2, true, t1))

	snap := tr.snapshot()
	assert.Equal(t, 2, snap[1].ConsecutiveFailures)
	assert.Equal(t, t1.Add(time.Minute), snap[1].LastFailure)
	assert.True(t, snap[1].LastSuccess.IsZero())

	// успех сбрасывает счётчик, но помнит последнюю неудачу
	assert.Equal(t, 0, tr.record(1, true, t1.Add(2*time.Minute)))
	snap = tr.snapshot()
	assert.Zero(t, snap[1].ConsecutiveFailures)
	assert.Equal(t, t1.Add(time.Minute), snap[1].LastFailure)
	assert.Equal(t, t1.Add(2*time.Minute), snap[1].LastSuccess)
}

func TestSyncResultsTracker_SnapshotIsACopy(t *testing.T) {
	tr := newSyncResultsTracker()
	tr.record(1, true, time.Now())

	snap := tr.snapshot()
	delete(snap, 1)

	assert.Len(t, tr.snapshot(), 1)
}

func TestCountingKeepAlive(t *testing.T) {
	k := &CountingKeepAlive{}

	r1 := k.Acquire()
	r2 := k.Acquire()
	assert.Equal(t, int64(2), k.Held())

	r1()
	r1()
	assert.Equal(t, int64(1), k.Held())

	r2()
	assert.Zero(t, k.Held())

	assert.NotPanics(t, func() { NopKeepAlive{}.Acquire()() })
}
