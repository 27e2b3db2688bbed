package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
)

const defaultSchedulerInterval = time.Minute

type syncJob struct {
	runner   SessionRunner
	store    store.SyncStore
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running map[int64]bool
	lastRun map[int64]time.Time
}

// NewSyncJob creates a job that checks every interval which providers are
// due and runs their sessions. If interval is zero or negative it defaults
// to one minute. The job is idle until Start is called.
func NewSyncJob(runner SessionRunner, db store.SyncStore, interval time.Duration, logger *logger.Logger) SyncJob {
	if interval <= 0 {
		interval = defaultSchedulerInterval
	}
	return &syncJob{
		runner:   runner,
		store:    db,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		running:  make(map[int64]bool),
		lastRun:  make(map[int64]time.Time),
	}
}

// Start implements SyncJob. It stops any previously running scheduler.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runDue(jobCtx)
			}
		}
	}()
}

// Stop implements SyncJob. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// SyncNow implements SyncJob.
func (j *syncJob) SyncNow(ctx context.Context, providerID int64) (*models.SyncLogRecord, error) {
	if !j.tryLock(providerID) {
		return nil, ErrSyncInProgress
	}
	defer j.unlock(providerID)

	return j.runner.RunSession(ctx, providerID, true)
}

// runDue starts a session for every provider whose frequency has elapsed
// since its last session.
func (j *syncJob) runDue(ctx context.Context) {
	var providers []models.Provider
	err := j.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		var err error
		providers, err = q.ListProviders(ctx)
		return err
	})
	if err != nil {
		j.logger.Err(err).Str("func", "syncJob.runDue").Msg("failed to list providers")
		return
	}

	now := j.now()
	for _, p := range providers {
		if !j.isDue(p, now) || !j.tryLock(p.ID) {
			continue
		}

		j.mu.Lock()
		j.lastRun[p.ID] = now
		j.wg.Add(1)
		j.mu.Unlock()

		go func(id int64) {
			defer j.wg.Done()
			defer j.unlock(id)

			if _, err := j.runner.RunSession(ctx, id, false); err != nil {
				j.logger.Err(err).Str("func", "syncJob.runDue").Int64("provider_id", id).Msg("scheduled sync session failed to start")
			}
		}(p.ID)
	}
}

func (j *syncJob) isDue(p models.Provider, now time.Time) bool {
	if p.SyncFreq <= 0 {
		return false
	}

	j.mu.Lock()
	last, ok := j.lastRun[p.ID]
	j.mu.Unlock()

	if !ok {
		last = lastSessionTime(p)
	}
	return now.Sub(last) >= p.SyncFreq
}

// lastSessionTime is the most recent recorded outcome of p, zero if none.
func lastSessionTime(p models.Provider) time.Time {
	var last time.Time
	if p.LastSuccess != nil && p.LastSuccess.After(last) {
		last = *p.LastSuccess
	}
	if p.LastFailure != nil && p.LastFailure.After(last) {
		last = *p.LastFailure
	}
	return last
}

func (j *syncJob) tryLock(providerID int64) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running[providerID] {
		return false
	}
	j.running[providerID] = true
	return true
}

func (j *syncJob) unlock(providerID int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.running, providerID)
}
