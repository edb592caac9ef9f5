package scheduler

import (
	"fmt"
	"sync"
	"time"

	"farm-advisor/internal/services"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically drops expired page sessions.
type Sweeper struct {
	sessions *services.SessionStore
	logger   *zap.Logger
	spec     string
	cron     *cron.Cron

	mu         sync.Mutex
	running    bool
	lastRun    time.Time
	lastSwept  int
	totalSwept int
	entryID    cron.EntryID
}

func NewSweeper(sessions *services.SessionStore, spec string, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		logger:   logger,
		spec:     spec,
		cron:     cron.New(),
	}
}

func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.spec, s.runSweep)
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.spec, err)
	}
	s.entryID = entryID
	s.cron.Start()
	s.running = true

	s.logger.Info("Session sweeper started",
		zap.String("schedule", s.spec),
		zap.Time("next_run", s.cron.Entry(entryID).Next))

	return nil
}

func (s *Sweeper) runSweep() {
	startTime := time.Now()
	swept := s.sessions.Sweep()

	s.mu.Lock()
	s.lastRun = startTime
	s.lastSwept = swept
	s.totalSwept += swept
	s.mu.Unlock()

	s.logger.Info("Session sweep completed",
		zap.Int("swept", swept),
		zap.Int("remaining", s.sessions.Len()),
		zap.Duration("duration", time.Since(startTime)))
}

// Stop halts the schedule and waits for a sweep in progress to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	s.logger.Info("Stopping session sweeper")
	<-s.cron.Stop().Done()
}

func (s *Sweeper) ForceRun() {
	s.logger.Info("Manually triggering session sweep")
	s.runSweep()
}

func (s *Sweeper) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":     s.running,
		"schedule":    s.spec,
		"last_run":    s.lastRun,
		"last_swept":  s.lastSwept,
		"total_swept": s.totalSwept,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	return status
}
