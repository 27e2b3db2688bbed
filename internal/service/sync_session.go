package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
)

// SessionState is the phase a provider's session is in.
type SessionState int

const (
	StateIdle SessionState = iota
	StateConnecting
	StateSyncing
	StateFinishing
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateSyncing:
		return "syncing"
	case StateFinishing:
		return "finishing"
	default:
		return "unknown"
	}
}

// defaultStopGrace bounds the wait for a cancelled worker.
const defaultStopGrace = 5 * time.Second

// ProgressObserver is an optional extension of SessionObserver notified
// before each operation of a session.
type ProgressObserver interface {
	OnProgress(providerID int64, done, total int, description string)
}

// SessionOrchestrator runs sync sessions. Each session runs in its own
// goroutine bounded by the configured timeout while the caller waits.
// ProviderClient implementations are expected to honour ctx; a worker that
// does not return within a short grace period after cancellation is
// abandoned.
// Sessions of different providers may run at the same time; callers must
// not run two sessions of the same provider concurrently (SyncJob takes care
// of that).
type SessionOrchestrator struct {
	store     store.SyncStore
	clients   ClientFactory
	engine    *syncEngine
	results   *syncResultsTracker
	keepAlive KeepAlive
	ids       *utils.UUIDGenerator
	cfg       config.Sync
	now       func() time.Time
	stopGrace time.Duration

	logger *logger.Logger

	mu        sync.Mutex
	states    map[int64]SessionState
	observers []SessionObserver
}

// SessionOption customises a SessionOrchestrator.
type SessionOption func(*SessionOrchestrator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(o *SessionOrchestrator) { o.now = now }
}

// WithKeepAlive sets the hold taken for each session.
func WithKeepAlive(k KeepAlive) SessionOption {
	return func(o *SessionOrchestrator) { o.keepAlive = k }
}

// WithObserver registers an observer.
func WithObserver(obs SessionObserver) SessionOption {
	return func(o *SessionOrchestrator) { o.observers = append(o.observers, obs) }
}

func NewSessionOrchestrator(db store.SyncStore, files store.LocalFileStorage, clients ClientFactory, cfg config.Sync, log *logger.Logger, opts ...SessionOption) *SessionOrchestrator {
	o := &SessionOrchestrator{
		store:     db,
		clients:   clients,
		results:   newSyncResultsTracker(),
		keepAlive: NopKeepAlive{},
		ids:       utils.NewUUIDGenerator(),
		cfg:       cfg,
		now:       time.Now,
		stopGrace: defaultStopGrace,
		logger:    log,
		states:    make(map[int64]SessionState),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.engine = newSyncEngine(files, o.now)
	return o
}

// AddObserver registers an observer for sessions started afterwards.
func (o *SessionOrchestrator) AddObserver(obs SessionObserver) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, obs)
}

// State returns the phase of the provider's running session.
func (o *SessionOrchestrator) State(providerID int64) SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.states[providerID]
}

// Results returns a snapshot of the outcomes recorded so far.
func (o *SessionOrchestrator) Results() models.SyncResults {
	return o.results.snapshot()
}

// RunSession implements SessionRunner.
func (o *SessionOrchestrator) RunSession(ctx context.Context, providerID int64, manual bool) (*models.SyncLogRecord, error) {
	var provider models.Provider
	err := o.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		var err error
		provider, err = q.GetProvider(ctx, providerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log := o.logger.WithSession(providerID, o.ids.Generate())
	ctx = log.WithContext(ctx)

	rec := models.NewSyncLogRecord(provider, manual, o.now())
	log.Info().Str("account", provider.Account).Str("type", string(provider.Type)).Bool("manual", manual).Msg("sync session started")

	sessCtx, cancel := context.WithTimeout(ctx, o.cfg.SessionTimeout)
	defer cancel()

	// the keep-alive follows the worker, which may outlive RunSession
	release := o.keepAlive.Acquire()
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer release()
		o.runWorker(sessCtx, provider, rec)
	}()

	select {
	case <-done:
	case <-sessCtx.Done():
		cancel()
		select {
		case <-done:
		case <-time.After(o.stopGrace):
			// the worker still owns rec; report on a fresh record and
			// leave it behind. Its later transactions fail on sessCtx.
			log.Error().Dur("grace", o.stopGrace).Msg("sync worker did not stop after cancellation")
			rec = models.NewSyncLogRecord(provider, manual, rec.StartTime)
			rec.AddFailure(ErrWorkerNotStopped)
		}
	}

	if errors.Is(sessCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		rec.AddFailure(fmt.Errorf("%w after %s", ErrSessionTimeout, o.cfg.SessionTimeout))
	}

	o.finish(context.WithoutCancel(ctx), provider, rec)
	return rec, nil
}

// runWorker connects to the provider, reconciles and runs the operations.
// Every problem ends up in rec.
func (o *SessionOrchestrator) runWorker(ctx context.Context, provider models.Provider, rec *models.SyncLogRecord) {
	log := logger.FromContext(ctx)

	o.setState(provider.ID, StateConnecting)
	client, err := o.clients.NewClient(ctx, provider)
	if err != nil {
		log.Err(err).Str("func", "SessionOrchestrator.runWorker").Msg("failed to create provider client")
		rec.SetNotConnected()
		rec.AddFailure(err)
		return
	}

	conn, err := client.CheckConnectivity(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("provider not connected")
		rec.SetNotConnected()
		if !errors.Is(err, adapter.ErrNotConnected) {
			rec.AddFailure(err)
		}
		return
	}
	if err = checkInterrupted(ctx); err != nil {
		rec.AddFailure(err)
		return
	}

	o.setState(provider.ID, StateSyncing)
	db := newDBSession(o.store, provider.ID)

	opers, err := o.engine.Sync(ctx, db, client, provider, conn, rec)
	if err != nil {
		rec.AddFailure(err)
		return
	}

	observers := o.getObservers()
	for i, op := range opers {
		if err = checkInterrupted(ctx); err != nil {
			rec.AddFailure(err)
			return
		}

		for _, obs := range observers {
			if p, ok := obs.(ProgressObserver); ok {
				p.OnProgress(provider.ID, i, len(opers), op.Description())
			}
		}
		o.runOper(ctx, db, client, op, rec)
	}
}

// runOper runs one operation end to end. A failure is recorded and leaves
// the file's change state as it was.
func (o *SessionOrchestrator) runOper(ctx context.Context, db *dbSession, client adapter.ProviderClient, op SyncOper, rec *models.SyncLogRecord) {
	log := logger.FromContext(ctx)

	committed := false
	defer func() {
		op.Finish(committed)
	}()

	rec.AddEntry("%s", op.Description())

	err := op.Do(ctx, client)
	if err == nil {
		err = db.useDB(ctx, false, op.Commit)
		committed = err == nil
	}
	if err != nil {
		f := op.File()
		log.Err(err).Str("func", "SessionOrchestrator.runOper").Int64("file_id", f.ID).Str("remote_id", f.RemoteID).Msg("sync operation failed")
		rec.AddFailure(fmt.Errorf("%s: %w", f.Title(), err))
	}
}

// finish persists the log, prunes old logs, records the outcome and tells
// the observers.
func (o *SessionOrchestrator) finish(ctx context.Context, provider models.Provider, rec *models.SyncLogRecord) {
	log := logger.FromContext(ctx)
	o.setState(provider.ID, StateFinishing)
	defer o.setState(provider.ID, StateIdle)

	rec.EndTime = o.now()
	success := rec.Succeeded()
	// an offline session without failures says nothing about the provider
	recordResult := !rec.IsNotConnected() || len(rec.Failures) > 0

	err := o.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		pruned, err := q.DeleteSyncLogsBefore(ctx, rec.EndTime.Add(-o.cfg.LogRetention))
		if err != nil {
			return err
		}
		if pruned > 0 {
			log.Debug().Int64("pruned", pruned).Msg("old sync logs deleted")
		}

		if rec.ID, err = q.AddSyncLog(ctx, *rec); err != nil {
			return err
		}

		if recordResult {
			return q.UpdateProviderSyncResult(ctx, provider.ID, success, rec.EndTime)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "SessionOrchestrator.finish").Msg("failed to save sync log")
	}

	failures := 0
	if recordResult {
		failures = o.results.record(provider.ID, success, rec.EndTime)
	}
	results := o.results.snapshot()

	for _, obs := range o.getObservers() {
		obs.OnSessionFinished(rec, results)
		if failures >= o.cfg.FailureNotifyThreshold && failures > 0 {
			obs.OnRepeatedFailures(provider, failures)
		}
	}

	log.Info().
		Bool("success", success).
		Bool("connected", !rec.IsNotConnected()).
		Int("entries", len(rec.Entries)).
		Int("conflicts", len(rec.Conflicts)).
		Int("failures", len(rec.Failures)).
		Dur("duration", rec.Duration()).
		Msg("sync session finished")
}

func (o *SessionOrchestrator) setState(providerID int64, state SessionState) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if state == StateIdle {
		delete(o.states, providerID)
		return
	}
	o.states[providerID] = state
}

func (o *SessionOrchestrator) getObservers() []SessionObserver {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]SessionObserver(nil), o.observers...)
}
