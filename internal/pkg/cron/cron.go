// Package cron drives the portfolio's periodic maintenance sweeps (orphan
// upload cleanup, session purge) and exposes their state to the admin API.
package cron

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status of a sweep's most recent run.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
)

// Job is one periodic maintenance sweep.
type Job struct {
	Name        string
	Description string
	Every       time.Duration
	Run         func(ctx context.Context) error
}

type entry struct {
	job Job

	mu        sync.Mutex
	status    Status
	message   string
	lastRunAt *time.Time
	lastTook  time.Duration
	nextRunAt time.Time
}

// Summary is one row of the admin sweep listing.
type Summary struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	NextRunAt   time.Time  `json:"nextRunAt"`
	LastRunAt   *time.Time `json:"lastRunAt,omitempty"`
	LastTookMS  int64      `json:"lastTookMs,omitempty"`
}

// Outcome reports how a sweep's most recent run ended. Message carries the
// error text after a failed run.
type Outcome struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Scheduler owns the registered sweeps. Jobs are registered once at startup
// and driven by Start; the admin API can also trigger them by hand.
type Scheduler struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	entries map[string]*entry
}

func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Register adds a sweep. Call before Start.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[job.Name] = &entry{
		job:       job,
		status:    StatusIdle,
		nextRunAt: time.Now().Add(job.Every),
	}
}

// Start drives every registered sweep until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		go s.loop(ctx, e)
	}
}

func (s *Scheduler) loop(ctx context.Context, e *entry) {
	for {
		e.mu.Lock()
		wait := time.Until(e.nextRunAt)
		e.mu.Unlock()
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			s.run(ctx, e)
			e.mu.Lock()
			e.nextRunAt = time.Now().Add(e.job.Every)
			e.mu.Unlock()
		}
	}
}

func (s *Scheduler) run(ctx context.Context, e *entry) {
	e.mu.Lock()
	if e.status == StatusRunning {
		e.mu.Unlock()
		return
	}
	e.status = StatusRunning
	e.mu.Unlock()

	started := time.Now()
	err := e.job.Run(ctx)
	took := time.Since(started)

	e.mu.Lock()
	e.lastRunAt = &started
	e.lastTook = took
	if err != nil {
		e.status = StatusFailed
		e.message = err.Error()
	} else {
		e.status = StatusOK
		e.message = ""
	}
	e.mu.Unlock()

	if err != nil {
		s.logger.Warn("sweep failed",
			zap.String("job", e.job.Name), zap.Duration("took", took), zap.Error(err))
	} else {
		s.logger.Info("sweep finished",
			zap.String("job", e.job.Name), zap.Duration("took", took))
	}
}

// Trigger starts a sweep by name without waiting for its interval. The run
// happens in the background; poll Outcome for the result.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	go s.run(ctx, e)
	return nil
}

// Outcome returns the result of a sweep's most recent run.
func (s *Scheduler) Outcome(name string) (*Outcome, error) {
	e, err := s.entry(name)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return &Outcome{Status: e.status, Message: e.message}, nil
}

func (s *Scheduler) entry(name string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[name]
	if !ok {
		return nil, fmt.Errorf("job %q not registered", name)
	}
	return e, nil
}

// List summarises all sweeps, sorted by name so the admin listing is stable.
func (s *Scheduler) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Summary, 0, len(s.entries))
	for _, e := range s.entries {
		e.mu.Lock()
		items = append(items, Summary{
			Name:        e.job.Name,
			Description: e.job.Description,
			Status:      e.status,
			NextRunAt:   e.nextRunAt,
			LastRunAt:   e.lastRunAt,
			LastTookMS:  e.lastTook.Milliseconds(),
		})
		e.mu.Unlock()
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
