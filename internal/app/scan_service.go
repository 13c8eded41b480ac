package app

import (
	"context"
	"time"

	"fithub_backoffice/internal/domain/member"
	"fithub_backoffice/internal/domain/payment"
	"fithub_backoffice/internal/domain/reminder"

	"github.com/sirupsen/logrus"
)

// MembershipSource lists members whose expiry is inside the scan horizon.
type MembershipSource interface {
	ListExpiringBetween(ctx context.Context, start, end time.Time) ([]*member.Member, error)
}

// PaymentSource lists pending payments due inside the scan horizon.
type PaymentSource interface {
	ListPendingDueBetween(ctx context.Context, start, end time.Time) ([]*payment.Payment, error)
}

// ReminderDispatcher is the dispatch boundary the scan feeds obligations to.
type ReminderDispatcher interface {
	Send(ctx context.Context, subj reminder.Subject, channel reminder.Channel, daysRemaining int) reminder.Outcome
}

// ScanReport aggregates one scan run.
type ScanReport struct {
	Sent   int
	Failed int
}

// ScanService is the daily reminder pass: load candidate subjects, evaluate
// the policy for each, dispatch whatever is due. One bad address never stops
// the rest of the batch; failures are counted and logged, not retried.
type ScanService struct {
	members    MembershipSource
	payments   PaymentSource
	dispatcher ReminderDispatcher
	log        reminder.Log
	catchUp    bool
	logger     *logrus.Logger
}

func NewScanService(
	members MembershipSource,
	payments PaymentSource,
	dispatcher ReminderDispatcher,
	log reminder.Log,
	catchUp bool,
	logger *logrus.Logger,
) *ScanService {
	return &ScanService{
		members:    members,
		payments:   payments,
		dispatcher: dispatcher,
		log:        log,
		catchUp:    catchUp,
		logger:     logger,
	}
}

// Run executes one scan as of today and returns the aggregate counts. The
// returned error covers load failures only; individual dispatch failures are
// reflected in the report.
func (s *ScanService) Run(ctx context.Context, today time.Time) (ScanReport, error) {
	var report ScanReport

	// The expiry and due-date columns are calendar dates. A clock-time lower
	// bound (the scheduler fires mid-morning) would sit above today's value
	// and silently drop every subject due today.
	today = reminder.DateOf(today)

	memberHorizon := today.AddDate(0, 0, reminder.HorizonDays(reminder.KindMembership))
	expiring, err := s.members.ListExpiringBetween(ctx, today, memberHorizon)
	if err != nil {
		return report, err
	}
	for _, m := range expiring {
		s.process(ctx, membershipSubject(m), today, &report)
	}

	paymentHorizon := today.AddDate(0, 0, reminder.HorizonDays(reminder.KindPayment))
	due, err := s.payments.ListPendingDueBetween(ctx, today, paymentHorizon)
	if err != nil {
		return report, err
	}
	for _, p := range due {
		s.process(ctx, paymentSubject(p), today, &report)
	}

	s.logger.WithFields(logrus.Fields{
		"date":        today.Format("2006-01-02"),
		"memberships": len(expiring),
		"payments":    len(due),
		"sent":        report.Sent,
		"failed":      report.Failed,
	}).Info("Reminder scan finished")
	return report, nil
}

func (s *ScanService) process(ctx context.Context, subj reminder.Subject, today time.Time, report *ScanReport) {
	var obligations []reminder.Obligation
	if s.catchUp {
		obligations = reminder.EvaluateCatchUp(subj.Kind, today, subj.TargetDate)
	} else {
		obligations = reminder.Evaluate(subj.Kind, today, subj.TargetDate)
	}
	if len(obligations) == 0 {
		return
	}

	daysRemaining := reminder.DaysUntil(today, subj.TargetDate)
	for _, ob := range obligations {
		if s.catchUp {
			sent, err := s.log.Exists(ctx, subj.Kind, subj.ID, ob.Channel, ob.OffsetDays)
			if err != nil {
				s.logger.WithError(err).WithField("subject", subj.ID).Error("Delivery log lookup failed")
				report.Failed++
				continue
			}
			if sent {
				continue
			}
		}

		outcome := s.dispatcher.Send(ctx, subj, ob.Channel, daysRemaining)
		if !outcome.Delivered() {
			report.Failed++
			continue
		}
		report.Sent++
		s.record(ctx, subj, ob, today)
	}
}

func (s *ScanService) record(ctx context.Context, subj reminder.Subject, ob reminder.Obligation, today time.Time) {
	if s.log == nil {
		return
	}
	rec := &reminder.DeliveryRecord{
		Kind:       subj.Kind,
		SubjectID:  subj.ID,
		Channel:    ob.Channel,
		OffsetDays: ob.OffsetDays,
		SentOn:     today,
	}
	if err := s.log.Record(ctx, rec); err != nil {
		// The reminder went out; a failed log write only risks a duplicate
		// if catch-up later re-sees the same trigger.
		s.logger.WithError(err).WithField("subject", subj.ID).Warn("Could not record delivery")
	}
}

func membershipSubject(m *member.Member) reminder.Subject {
	return reminder.Subject{
		Kind:           reminder.KindMembership,
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		TargetDate:     m.MembershipExpiry,
		MembershipType: string(m.MembershipType),
	}
}

func paymentSubject(p *payment.Payment) reminder.Subject {
	return reminder.Subject{
		Kind:        reminder.KindPayment,
		ID:          p.ID,
		Name:        p.MemberName,
		Email:       p.MemberEmail,
		Phone:       p.MemberPhone,
		TargetDate:  p.DueDate,
		Amount:      p.Amount,
		Description: p.Description,
	}
}
