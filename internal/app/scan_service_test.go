package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fithub_backoffice/internal/domain/member"
	"fithub_backoffice/internal/domain/payment"
	"fithub_backoffice/internal/domain/reminder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type memberSourceStub struct {
	members    []*member.Member
	err        error
	start, end time.Time
}

func (s *memberSourceStub) ListExpiringBetween(ctx context.Context, start, end time.Time) ([]*member.Member, error) {
	s.start, s.end = start, end
	return s.members, s.err
}

type paymentSourceStub struct {
	payments   []*payment.Payment
	err        error
	start, end time.Time
}

func (s *paymentSourceStub) ListPendingDueBetween(ctx context.Context, start, end time.Time) ([]*payment.Payment, error) {
	s.start, s.end = start, end
	return s.payments, s.err
}

type sentCall struct {
	subjectID int64
	channel   reminder.Channel
	days      int
}

type dispatcherStub struct {
	calls   []sentCall
	failFor map[int64]bool // subject IDs whose sends fail
}

func (s *dispatcherStub) Send(ctx context.Context, subj reminder.Subject, channel reminder.Channel, daysRemaining int) reminder.Outcome {
	s.calls = append(s.calls, sentCall{subj.ID, channel, daysRemaining})
	outcome := reminder.Outcome{Channel: channel, OffsetDays: daysRemaining}
	if s.failFor[subj.ID] {
		outcome.Err = &reminder.TransportError{Channel: channel, Err: errors.New("boom")}
	}
	return outcome
}

type logStub struct {
	recorded []*reminder.DeliveryRecord
	existing map[string]bool
	err      error
}

func logKey(kind reminder.Kind, id int64, ch reminder.Channel, offset int) string {
	return fmt.Sprintf("%s/%d/%s/%d", kind, id, ch, offset)
}

func (s *logStub) Record(ctx context.Context, rec *reminder.DeliveryRecord) error {
	s.recorded = append(s.recorded, rec)
	return nil
}

func (s *logStub) Exists(ctx context.Context, kind reminder.Kind, subjectID int64, channel reminder.Channel, offsetDays int) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.existing[logKey(kind, subjectID, channel, offsetDays)], nil
}

func expiringMember(id int64, expiry time.Time) *member.Member {
	return &member.Member{
		ID:               id,
		Name:             "Member",
		Email:            "member@example.com",
		Phone:            "+15550000000",
		MembershipType:   member.TypeBasic,
		Status:           member.StatusActive,
		MembershipExpiry: expiry,
	}
}

func pendingPayment(id int64, due time.Time) *payment.Payment {
	return &payment.Payment{
		ID:          id,
		MemberID:    1,
		Amount:      decimal.NewFromInt(50),
		DueDate:     due,
		Status:      payment.StatusPending,
		Description: "fee",
		MemberName:  "Member",
		MemberEmail: "member@example.com",
		MemberPhone: "+15550000000",
	}
}

func TestScanDispatchesDueObligations(t *testing.T) {
	today := date(2024, time.June, 1)
	members := &memberSourceStub{members: []*member.Member{
		expiringMember(1, date(2024, time.July, 1)), // 30 days: email only
		expiringMember(2, date(2024, time.June, 8)), // 7 days: email + whatsapp
		expiringMember(3, date(2024, time.June, 15)), // 14 days: nothing
	}}
	payments := &paymentSourceStub{payments: []*payment.Payment{
		pendingPayment(10, date(2024, time.June, 4)), // 3 days: email only
		pendingPayment(11, date(2024, time.June, 1)), // today: email + whatsapp
	}}
	dispatcher := &dispatcherStub{}

	scan := NewScanService(members, payments, dispatcher, &logStub{}, false, testLogger())
	report, err := scan.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 6, report.Sent)
	assert.Zero(t, report.Failed)
	assert.Equal(t, []sentCall{
		{1, reminder.ChannelEmail, 30},
		{2, reminder.ChannelEmail, 7},
		{2, reminder.ChannelWhatsApp, 7},
		{10, reminder.ChannelEmail, 3},
		{11, reminder.ChannelEmail, 0},
		{11, reminder.ChannelWhatsApp, 0},
	}, dispatcher.calls)
}

func TestScanPartialFailureIsolation(t *testing.T) {
	today := date(2024, time.June, 1)
	members := &memberSourceStub{members: []*member.Member{
		expiringMember(1, date(2024, time.June, 8)),
		expiringMember(2, date(2024, time.June, 8)), // this member's sends fail
		expiringMember(3, date(2024, time.June, 8)),
	}}
	dispatcher := &dispatcherStub{failFor: map[int64]bool{2: true}}

	scan := NewScanService(members, &paymentSourceStub{}, dispatcher, &logStub{}, false, testLogger())
	report, err := scan.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 4, report.Sent, "the two healthy members still get both channels")
	assert.Equal(t, 2, report.Failed)
	assert.Len(t, dispatcher.calls, 6, "a failing subject must not stop the batch")
}

func TestScanRecordsDeliveries(t *testing.T) {
	today := date(2024, time.June, 1)
	members := &memberSourceStub{members: []*member.Member{
		expiringMember(1, date(2024, time.July, 1)),
	}}
	log := &logStub{}

	scan := NewScanService(members, &paymentSourceStub{}, &dispatcherStub{}, log, false, testLogger())
	_, err := scan.Run(context.Background(), today)

	require.NoError(t, err)
	require.Len(t, log.recorded, 1)
	rec := log.recorded[0]
	assert.Equal(t, reminder.KindMembership, rec.Kind)
	assert.Equal(t, int64(1), rec.SubjectID)
	assert.Equal(t, reminder.ChannelEmail, rec.Channel)
	assert.Equal(t, 30, rec.OffsetDays)
}

func TestScanCatchUpSkipsAlreadySent(t *testing.T) {
	today := date(2024, time.June, 1)
	// 5 days out: catch-up owes the 30-day email and both 7-day sends, but
	// the 30-day email is already in the log.
	members := &memberSourceStub{members: []*member.Member{
		expiringMember(1, date(2024, time.June, 6)),
	}}
	log := &logStub{existing: map[string]bool{
		logKey(reminder.KindMembership, 1, reminder.ChannelEmail, 30): true,
	}}
	dispatcher := &dispatcherStub{}

	scan := NewScanService(members, &paymentSourceStub{}, dispatcher, log, true, testLogger())
	report, err := scan.Run(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, []sentCall{
		{1, reminder.ChannelEmail, 5},
		{1, reminder.ChannelWhatsApp, 5},
	}, dispatcher.calls)
}

func TestScanCatchUpSecondRunSendsNothing(t *testing.T) {
	today := date(2024, time.June, 1)
	members := &memberSourceStub{members: []*member.Member{
		expiringMember(1, date(2024, time.June, 6)),
	}}
	log := &logStub{existing: map[string]bool{}}
	dispatcher := &dispatcherStub{}

	scan := NewScanService(members, &paymentSourceStub{}, dispatcher, log, true, testLogger())
	report, err := scan.Run(context.Background(), today)
	require.NoError(t, err)
	require.Equal(t, 3, report.Sent)

	// Feed the first run's records back as existing state.
	for _, rec := range log.recorded {
		log.existing[logKey(rec.Kind, rec.SubjectID, rec.Channel, rec.OffsetDays)] = true
	}
	dispatcher.calls = nil

	report, err = scan.Run(context.Background(), today)
	require.NoError(t, err)
	assert.Zero(t, report.Sent)
	assert.Empty(t, dispatcher.calls)
}

func TestScanNormalizesClockTimeToCalendarDay(t *testing.T) {
	// The scheduler fires mid-morning; the store compares against DATE
	// columns, so a clock-time lower bound would exclude subjects due today.
	scanTime := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	members := &memberSourceStub{members: []*member.Member{
		expiringMember(1, date(2024, time.June, 1)), // expires today
	}}
	payments := &paymentSourceStub{payments: []*payment.Payment{
		pendingPayment(10, date(2024, time.June, 1)), // due today
	}}
	dispatcher := &dispatcherStub{}

	scan := NewScanService(members, payments, dispatcher, &logStub{}, false, testLogger())
	report, err := scan.Run(context.Background(), scanTime)

	require.NoError(t, err)
	assert.Equal(t, date(2024, time.June, 1), members.start, "member window starts at today's midnight")
	assert.Equal(t, date(2024, time.July, 1), members.end)
	assert.Equal(t, date(2024, time.June, 1), payments.start, "payment window starts at today's midnight")
	assert.Equal(t, date(2024, time.June, 4), payments.end)
	assert.Equal(t, 4, report.Sent)
	assert.Equal(t, []sentCall{
		{1, reminder.ChannelEmail, 0},
		{1, reminder.ChannelWhatsApp, 0},
		{10, reminder.ChannelEmail, 0},
		{10, reminder.ChannelWhatsApp, 0},
	}, dispatcher.calls)
}

func TestScanPropagatesLoadErrors(t *testing.T) {
	loadErr := errors.New("db down")
	scan := NewScanService(&memberSourceStub{err: loadErr}, &paymentSourceStub{}, &dispatcherStub{}, &logStub{}, false, testLogger())

	_, err := scan.Run(context.Background(), date(2024, time.June, 1))
	assert.ErrorIs(t, err, loadErr)
}
