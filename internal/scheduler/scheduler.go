// Package scheduler runs the periodic background jobs: re-importing the
// dataset on a cron schedule and dropping idle explorer sessions.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

// PurgeSchedule is how often idle sessions are swept.
const PurgeSchedule = "@every 1m"

// DatasetRefresher re-imports the dataset from a file.
type DatasetRefresher interface {
	ImportFile(ctx context.Context, path string) (model.DatasetImport, error)
}

// SessionPurger drops sessions idle for longer than a TTL.
type SessionPurger interface {
	PurgeIdle(ttl time.Duration) int
}

// Options configures a Scheduler.
type Options struct {
	CSVPath         string
	RefreshSchedule string // cron spec, empty disables the refresh job
	IdleTTL         time.Duration
}

// Scheduler owns the cron runner and its jobs.
type Scheduler struct {
	cron      *cron.Cron
	refresher DatasetRefresher
	purger    SessionPurger
	opts      Options
	logger    *zap.Logger
}

// New creates a Scheduler and registers its jobs. Jobs do not run until
// Start is called.
func New(refresher DatasetRefresher, purger SessionPurger, opts Options, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger.Sugar()}),
			cron.SkipIfStillRunning(cronLogger{logger.Sugar()}),
		)),
		refresher: refresher,
		purger:    purger,
		opts:      opts,
		logger:    logger,
	}

	if opts.RefreshSchedule != "" {
		if _, err := s.cron.AddFunc(opts.RefreshSchedule, s.refresh); err != nil {
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", opts.RefreshSchedule, err)
		}
	}

	if opts.IdleTTL > 0 {
		if _, err := s.cron.AddFunc(PurgeSchedule, s.purge); err != nil {
			return nil, fmt.Errorf("failed to schedule session purge: %w", err)
		}
	}

	return s, nil
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start runs the jobs until ctx is cancelled. Cancellation waits for running
// jobs to finish.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", s.Jobs()))

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		s.logger.Info("scheduler stopped")
	}()
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	imp, err := s.refresher.ImportFile(ctx, s.opts.CSVPath)
	if err != nil {
		s.logger.Error("scheduled dataset refresh failed", zap.String("path", s.opts.CSVPath), zap.Error(err))
		return
	}

	s.logger.Info("scheduled dataset refresh complete",
		zap.String("import", imp.ID),
		zap.Int("candidates", imp.CandidateCount),
		zap.Int("reports", imp.ReportCount),
	)
}

func (s *Scheduler) purge() {
	if n := s.purger.PurgeIdle(s.opts.IdleTTL); n > 0 {
		s.logger.Info("idle sessions purged", zap.Int("count", n))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	*zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.Errorw(msg, append(keysAndValues, "error", err)...)
}
