package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/soundsystems/shirtcalc/internal/config"
	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

const pruneSchedule = "@every 30m"

// DigestBuilder produces the daily quote digest.
type DigestBuilder interface {
	DailyDigest(ctx context.Context, day time.Time) (string, error)
}

// Notifier delivers the digest to the shop owner.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// SessionPruner drops idle form sessions.
type SessionPruner interface {
	Prune(maxIdle time.Duration) int
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	digest    DigestBuilder
	notifier  Notifier
	sessions  SessionPruner
	recipient string
	maxIdle   time.Duration
	location  *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduler creates a new scheduler instance. digest and notifier may be nil
// when no quote archive or messaging is configured.
func NewScheduler(cfg config.Config, digest DigestBuilder, notifier Notifier, sessions SessionPruner, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := cfg.Reporting.Location()

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		digest:    digest,
		notifier:  notifier,
		sessions:  sessions,
		recipient: cfg.Reporting.Recipient,
		maxIdle:   cfg.Server.SessionMaxIdle,
		location:  loc,
		logger:    logger,
		now:       time.Now,
	}
}

// Register adds the jobs to the cron table without starting it.
func (s *Scheduler) Register(digestSchedule string) error {
	if s.sessions != nil {
		if _, err := s.cron.AddFunc(pruneSchedule, s.pruneSessions); err != nil {
			return fmt.Errorf("schedule session prune: %w", err)
		}
	}

	if s.digest != nil {
		if _, err := s.cron.AddFunc(digestSchedule, s.sendDailyDigest); err != nil {
			return fmt.Errorf("schedule daily digest %q: %w", digestSchedule, err)
		}
	}

	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) pruneSessions() {
	if removed := s.sessions.Prune(s.maxIdle); removed > 0 {
		s.logger.Info("pruned idle form sessions", zap.Int("removed", removed))
	}
}

func (s *Scheduler) sendDailyDigest() {
	s.logger.Info("generating daily digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.digest.DailyDigest(ctx, s.now().In(s.location))
	if err != nil {
		s.logger.Error("failed to generate daily digest", zap.Error(err))
		return
	}

	if s.notifier == nil || s.recipient == "" {
		s.logger.Info("daily digest", zap.String("digest", report))
		return
	}

	req := models.OutboundMessageRequest{
		To:      s.recipient,
		Message: report,
	}

	if err := s.notifier.SendOutbound(ctx, req); err != nil {
		s.logger.Error("failed to send daily digest", zap.Error(err))
	} else {
		s.logger.Info("daily digest sent successfully")
	}
}
