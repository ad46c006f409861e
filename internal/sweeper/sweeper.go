// Package sweeper expires active jobs whose publication period has ended.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Expirer is satisfied by admin.ModerationService.
type Expirer interface {
	ExpireDue(ctx context.Context, now time.Time) (int, error)
}

type Sweeper struct {
	expirer Expirer
	cron    *cron.Cron
	timeout time.Duration
	log     *slog.Logger
	now     func() time.Time

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New schedules a sweep on the standard cron expression (e.g. "@every 1h",
// "0 * * * *"). Each sweep is bounded by timeout. A sweep that is still
// running when the next one is due makes the next one skip.
func New(expirer Expirer, schedule string, timeout time.Duration, log *slog.Logger) (*Sweeper, error) {
	ctx, cancel := context.WithCancel(context.Background())
	log = log.With(slog.String("component", "sweeper"))

	s := &Sweeper{
		expirer: expirer,
		timeout: timeout,
		log:     log,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
	}

	cl := cronLogger{log: log}
	s.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid sweeper schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Sweeper) Start() {
	s.log.Info("sweeper started", slog.Int("entries", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop cancels a sweep in progress and waits for it to return.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.log.Info("sweeper stopped")
}

// RunOnce performs a single sweep immediately.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := s.now()
	n, err := s.expirer.ExpireDue(ctx, start)
	if err != nil {
		s.log.Error("sweep failed", slog.Int("expired", n), slog.Any("error", err))
		return n, err
	}

	s.log.Info("sweep finished", slog.Int("expired", n), slog.Duration("took", time.Since(start)))
	return n, nil
}

func (s *Sweeper) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	_, _ = s.RunOnce(ctx)
}

// cronLogger routes cron's own messages into slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
