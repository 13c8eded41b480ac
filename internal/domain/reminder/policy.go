package reminder

import "time"

// Channel is a delivery channel for reminders.
type Channel string

const (
	ChannelEmail    Channel = "EMAIL"
	ChannelWhatsApp Channel = "WHATSAPP"
)

// Kind identifies what a reminder subject is about.
type Kind string

const (
	KindMembership Kind = "membership"
	KindPayment    Kind = "payment"
)

// Obligation is a decided reminder: the subject must receive a message on the
// given channel because it is OffsetDays away from its target date. Obligations
// are computed fresh on every scan and never persisted.
type Obligation struct {
	Channel    Channel
	OffsetDays int
}

type trigger struct {
	offsetDays int
	channels   []Channel
}

// Trigger tables. A membership gets an email a month out, then email plus
// WhatsApp as the expiry closes in. Payments are only chased inside a
// three-day window.
var (
	membershipTriggers = []trigger{
		{30, []Channel{ChannelEmail}},
		{7, []Channel{ChannelEmail, ChannelWhatsApp}},
		{3, []Channel{ChannelEmail, ChannelWhatsApp}},
		{0, []Channel{ChannelEmail, ChannelWhatsApp}},
	}
	paymentTriggers = []trigger{
		{3, []Channel{ChannelEmail}},
		{0, []Channel{ChannelEmail, ChannelWhatsApp}},
	}
)

// HorizonDays returns how far ahead the scan looks for subjects of the given
// kind. It equals the largest trigger offset.
func HorizonDays(kind Kind) int {
	switch kind {
	case KindMembership:
		return 30
	case KindPayment:
		return 3
	default:
		return 0
	}
}

func triggersFor(kind Kind) []trigger {
	switch kind {
	case KindMembership:
		return membershipTriggers
	case KindPayment:
		return paymentTriggers
	default:
		return nil
	}
}

// DateOf strips the time-of-day component, returning the calendar day at UTC
// midnight. Scan windows over DATE columns must use this form on both ends,
// or a subject whose target date is today falls below the lower bound.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole calendar days from today until target, ignoring
// the time-of-day component of both values.
func DaysUntil(today, target time.Time) int {
	return int(DateOf(target).Sub(DateOf(today)).Hours() / 24)
}

// Evaluate returns the reminder obligations for a subject of the given kind
// whose target date is targetDate, as seen on today. It fires on exact day
// matches only: a subject 14 days from expiry yields nothing, and a subject
// whose trigger day fell on a skipped run loses that reminder. Known
// limitation; EvaluateCatchUp covers deployments that cannot accept it.
func Evaluate(kind Kind, today, targetDate time.Time) []Obligation {
	offset := DaysUntil(today, targetDate)
	for _, tr := range triggersFor(kind) {
		if tr.offsetDays == offset {
			obligations := make([]Obligation, 0, len(tr.channels))
			for _, ch := range tr.channels {
				obligations = append(obligations, Obligation{Channel: ch, OffsetDays: tr.offsetDays})
			}
			return obligations
		}
	}
	return nil
}

// EvaluateCatchUp returns every trigger the subject has already reached or
// passed while still ahead of its target date. A subject first seen 5 days
// out therefore owes the 30-day and 7-day reminders too; the caller is
// expected to consult the delivery log so each trigger fires at most once.
func EvaluateCatchUp(kind Kind, today, targetDate time.Time) []Obligation {
	offset := DaysUntil(today, targetDate)
	if offset < 0 {
		return nil
	}
	var obligations []Obligation
	for _, tr := range triggersFor(kind) {
		if tr.offsetDays < offset {
			continue
		}
		for _, ch := range tr.channels {
			obligations = append(obligations, Obligation{Channel: ch, OffsetDays: tr.offsetDays})
		}
	}
	return obligations
}
