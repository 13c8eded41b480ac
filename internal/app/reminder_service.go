package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fithub_backoffice/internal/domain/member"
	"fithub_backoffice/internal/domain/payment"
	"fithub_backoffice/internal/domain/reminder"
	"fithub_backoffice/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// MemberGetter loads a single member by id.
type MemberGetter interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}

// PaymentGetter loads a single payment by id.
type PaymentGetter interface {
	GetByID(ctx context.Context, id int64) (*payment.Payment, error)
}

// ReminderService is the operator-facing manual trigger. Unlike the scan it
// applies no offset gate: whatever the day count is, the reminder goes out.
type ReminderService struct {
	members    MemberGetter
	payments   PaymentGetter
	dispatcher ReminderDispatcher
	logger     *logrus.Logger
	now        func() time.Time
}

func NewReminderService(members MemberGetter, payments PaymentGetter, dispatcher ReminderDispatcher, logger *logrus.Logger) *ReminderService {
	return &ReminderService{
		members:    members,
		payments:   payments,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Trigger loads the subject and dispatches one reminder on the given channel.
// A missing record surfaces as reminder.ErrSubjectNotFound; a failed send
// comes back inside the outcome with a nil error, since the dispatch itself
// completed.
func (s *ReminderService) Trigger(ctx context.Context, kind reminder.Kind, id int64, channel reminder.Channel) (reminder.Outcome, error) {
	subj, err := s.loadSubject(ctx, kind, id)
	if err != nil {
		return reminder.Outcome{}, err
	}

	daysRemaining := reminder.DaysUntil(s.now(), subj.TargetDate)
	outcome := s.dispatcher.Send(ctx, subj, channel, daysRemaining)

	s.logger.WithFields(logrus.Fields{
		"kind":      kind,
		"subject":   id,
		"channel":   channel,
		"days":      daysRemaining,
		"delivered": outcome.Delivered(),
	}).Info("Manual reminder processed")
	return outcome, nil
}

func (s *ReminderService) loadSubject(ctx context.Context, kind reminder.Kind, id int64) (reminder.Subject, error) {
	switch kind {
	case reminder.KindMembership:
		m, err := s.members.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, database.ErrMemberNotFound) {
				return reminder.Subject{}, reminder.ErrSubjectNotFound
			}
			return reminder.Subject{}, fmt.Errorf("load member %d: %w", id, err)
		}
		return membershipSubject(m), nil
	case reminder.KindPayment:
		p, err := s.payments.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, database.ErrPaymentNotFound) {
				return reminder.Subject{}, reminder.ErrSubjectNotFound
			}
			return reminder.Subject{}, fmt.Errorf("load payment %d: %w", id, err)
		}
		return paymentSubject(p), nil
	default:
		return reminder.Subject{}, fmt.Errorf("%w: unknown kind %q", reminder.ErrSubjectNotFound, kind)
	}
}
