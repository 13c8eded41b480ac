package app

import (
	"context"
	"testing"
	"time"

	"fithub_backoffice/internal/domain/member"
	"fithub_backoffice/internal/domain/payment"
	"fithub_backoffice/internal/domain/reminder"
	"fithub_backoffice/internal/infra/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberGetterStub struct {
	m   *member.Member
	err error
}

func (s *memberGetterStub) GetByID(ctx context.Context, id int64) (*member.Member, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.m, nil
}

type paymentGetterStub struct {
	p   *payment.Payment
	err error
}

func (s *paymentGetterStub) GetByID(ctx context.Context, id int64) (*payment.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.p, nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTriggerSendsRegardlessOfOffset(t *testing.T) {
	// 14 days out matches no policy trigger; the manual path ignores that.
	m := expiringMember(1, date(2024, time.June, 15))
	dispatcher := &dispatcherStub{}
	svc := NewReminderService(&memberGetterStub{m: m}, &paymentGetterStub{}, dispatcher, testLogger())
	svc.now = fixedNow(date(2024, time.June, 1))

	outcome, err := svc.Trigger(context.Background(), reminder.KindMembership, 1, reminder.ChannelWhatsApp)

	require.NoError(t, err)
	assert.True(t, outcome.Delivered())
	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, sentCall{1, reminder.ChannelWhatsApp, 14}, dispatcher.calls[0])
}

func TestTriggerPaymentSubject(t *testing.T) {
	p := pendingPayment(10, date(2024, time.June, 4))
	dispatcher := &dispatcherStub{}
	svc := NewReminderService(&memberGetterStub{}, &paymentGetterStub{p: p}, dispatcher, testLogger())
	svc.now = fixedNow(date(2024, time.June, 1))

	outcome, err := svc.Trigger(context.Background(), reminder.KindPayment, 10, reminder.ChannelEmail)

	require.NoError(t, err)
	assert.True(t, outcome.Delivered())
	assert.Equal(t, sentCall{10, reminder.ChannelEmail, 3}, dispatcher.calls[0])
}

func TestTriggerSubjectNotFound(t *testing.T) {
	svc := NewReminderService(
		&memberGetterStub{err: database.ErrMemberNotFound},
		&paymentGetterStub{err: database.ErrPaymentNotFound},
		&dispatcherStub{},
		testLogger(),
	)

	_, err := svc.Trigger(context.Background(), reminder.KindMembership, 99, reminder.ChannelEmail)
	assert.ErrorIs(t, err, reminder.ErrSubjectNotFound)

	_, err = svc.Trigger(context.Background(), reminder.KindPayment, 99, reminder.ChannelEmail)
	assert.ErrorIs(t, err, reminder.ErrSubjectNotFound)
}

func TestTriggerUnknownKind(t *testing.T) {
	svc := NewReminderService(&memberGetterStub{}, &paymentGetterStub{}, &dispatcherStub{}, testLogger())

	_, err := svc.Trigger(context.Background(), reminder.Kind("staff"), 1, reminder.ChannelEmail)
	assert.ErrorIs(t, err, reminder.ErrSubjectNotFound)
}

func TestTriggerReportsFailedSendInOutcome(t *testing.T) {
	m := expiringMember(2, date(2024, time.June, 15))
	dispatcher := &dispatcherStub{failFor: map[int64]bool{2: true}}
	svc := NewReminderService(&memberGetterStub{m: m}, &paymentGetterStub{}, dispatcher, testLogger())
	svc.now = fixedNow(date(2024, time.June, 1))

	outcome, err := svc.Trigger(context.Background(), reminder.KindMembership, 2, reminder.ChannelEmail)

	require.NoError(t, err, "a failed send is an outcome, not a service error")
	assert.False(t, outcome.Delivered())
}
