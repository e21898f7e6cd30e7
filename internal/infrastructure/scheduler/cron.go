package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"medreminder/internal/pkg/logger"
)

// Cron wraps a seconds-precision cron runner. Overlapping runs of the same job
// are skipped and panics are recovered and logged.
type Cron struct {
	cron    *cron.Cron
	log     logger.Logger
	mu      sync.Mutex
	running bool
}

// NewCron creates a stopped cron runner reading the wall clock in loc.
func NewCron(loc *time.Location, log logger.Logger) *Cron {
	if loc == nil {
		loc = time.Local
	}
	cl := cronLogger{sugar: log.Zap().Sugar()}
	// Recover must sit inside the skip guard so a panicking run still releases it.
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
	)
	return &Cron{cron: c, log: log}
}

// AddJob registers cmd under spec (e.g. "*/20 * * * * *").
func (s *Cron) AddJob(spec string, cmd func()) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		s.log.Error("Failed to add cron job", err, zap.String("spec", spec))
		return 0, fmt.Errorf("failed to add cron job: %w", err)
	}
	s.log.Info(fmt.Sprintf("Added cron job with ID %d, spec: %s", id, spec))
	return id, nil
}

// Start begins firing jobs. Calling it twice is a no-op.
func (s *Cron) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.log.Info("Cron scheduler started.")
}

// Stop halts scheduling and waits for running jobs, bounded by ctx.
func (s *Cron) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Cron scheduler stopped.")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for running jobs: %w", ctx.Err())
	}
}

// Remove unregisters the job with the given id.
func (s *Cron) Remove(id cron.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Remove(id)
}

// Entries returns the scheduled entries.
func (s *Cron) Entries() []cron.Entry {
	return s.cron.Entries()
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
