package scheduler

import (
	"context"
	"time"

	"fithub_backoffice/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// scanTimeout caps a whole scan run so a wedged transport cannot hold the
// daily slot forever.
const scanTimeout = 10 * time.Minute

// ReminderScheduler runs the daily reminder scan on a cron spec.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	scan       *app.ScanService
	logger     *logrus.Logger
	cronSpec   string
}

func NewReminderScheduler(scan *app.ScanService, logger *logrus.Logger, cronSpec string) *ReminderScheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &ReminderScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local),
			cron.WithChain(cron.Recover(cronLogger)),
		),
		scan:     scan,
		logger:   logger,
		cronSpec: cronSpec,
	}
}

func (s *ReminderScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, s.runScan)
	if err != nil {
		return err
	}
	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Reminder scheduler started")
	return nil
}

func (s *ReminderScheduler) runScan() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	today := time.Now()
	report, err := s.scan.Run(ctx, today)
	if err != nil {
		s.logger.WithError(err).Error("Reminder scan failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"sent":   report.Sent,
		"failed": report.Failed,
	}).Info("Reminder scan completed")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *ReminderScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Reminder scheduler stopped")
}
