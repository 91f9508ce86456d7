package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/travel-weather/internal/account"
	"github.com/i474232898/travel-weather/internal/weather"
)

// UserLister lists the accounts whose locations are checked.
type UserLister interface {
	Users(ctx context.Context) ([]account.User, error)
}

// AlertChecker evaluates alert preferences against forecasts.
type AlertChecker interface {
	CheckAlerts(ctx context.Context, targets []weather.AlertTarget, prefs weather.AlertPreferences) ([]weather.AlertEvent, error)
}

// Scheduler periodically checks weather alerts for every user's favorites
// and trip cities.
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     UserLister
	alerts    AlertChecker
	cronExpr  string
	timeout   time.Duration
}

// New creates a new Scheduler running on the given cron expression.
func New(cronExpr string, users UserLister, alerts AlertChecker) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		users:     users,
		alerts:    alerts,
		cronExpr:  cronExpr,
		timeout:   2 * time.Minute,
	}
}

// Start schedules the alert job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.cronExpr == "" {
		log.Info("scheduler: alert checks disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Cron(s.cronExpr).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		log.Info("scheduler: running weather alert check")
		n := s.RunOnce(ctx)
		log.WithField("alerts", n).Info("scheduler: completed weather alert check")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce checks every user once and returns how many alerts were raised.
// Failures for one user are logged and do not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	users, err := s.users.Users(ctx)
	if err != nil {
		log.WithField("error", err).Error("scheduler: listing users failed")
		return 0
	}

	total := 0
	for _, u := range users {
		targets := u.AlertTargets()
		if len(targets) == 0 {
			continue
		}

		events, err := s.alerts.CheckAlerts(ctx, targets, u.AlertPreferences)
		if err != nil {
			log.WithFields(log.Fields{"user": u.ID, "error": err}).Warn("scheduler: alert check failed")
			continue
		}
		for _, e := range events {
			log.WithFields(log.Fields{
				"user":     u.ID,
				"location": e.Location,
				"type":     e.Type,
				"severity": e.Severity,
				"day":      e.Day,
			}).Info(e.Message)
		}
		total += len(events)
	}
	return total
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
