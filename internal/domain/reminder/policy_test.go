package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func channels(obligations []Obligation) []Channel {
	out := make([]Channel, 0, len(obligations))
	for _, ob := range obligations {
		out = append(out, ob.Channel)
	}
	return out
}

func TestEvaluateMembershipTriggers(t *testing.T) {
	today := date(2024, time.June, 1)

	tests := []struct {
		name         string
		target       time.Time
		wantChannels []Channel
		wantOffset   int
	}{
		{"30 days out fires email only", date(2024, time.July, 1), []Channel{ChannelEmail}, 30},
		{"7 days out fires both channels", date(2024, time.June, 8), []Channel{ChannelEmail, ChannelWhatsApp}, 7},
		{"3 days out fires both channels", date(2024, time.June, 4), []Channel{ChannelEmail, ChannelWhatsApp}, 3},
		{"expiry day fires both channels", date(2024, time.June, 1), []Channel{ChannelEmail, ChannelWhatsApp}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(KindMembership, today, tt.target)
			assert.Equal(t, tt.wantChannels, channels(got))
			for _, ob := range got {
				assert.Equal(t, tt.wantOffset, ob.OffsetDays)
			}
		})
	}
}

func TestEvaluatePaymentTriggers(t *testing.T) {
	today := date(2024, time.June, 1)

	got := Evaluate(KindPayment, today, date(2024, time.June, 4))
	assert.Equal(t, []Channel{ChannelEmail}, channels(got))

	got = Evaluate(KindPayment, today, date(2024, time.June, 1))
	assert.Equal(t, []Channel{ChannelEmail, ChannelWhatsApp}, channels(got))
}

func TestEvaluateExactMatchOnly(t *testing.T) {
	today := date(2024, time.June, 1)

	// 14 days out matches no membership trigger.
	assert.Empty(t, Evaluate(KindMembership, today, date(2024, time.June, 15)))
	// 2 days out matches no payment trigger.
	assert.Empty(t, Evaluate(KindPayment, today, date(2024, time.June, 3)))
	// Past-due subjects never fire.
	assert.Empty(t, Evaluate(KindMembership, today, date(2024, time.May, 25)))
	assert.Empty(t, Evaluate(KindPayment, today, date(2024, time.May, 31)))
	// Payment-only offsets do not leak into memberships and vice versa.
	assert.Empty(t, Evaluate(KindPayment, today, date(2024, time.July, 1)))
}

func TestEvaluateUnknownKind(t *testing.T) {
	assert.Empty(t, Evaluate(Kind("staff"), date(2024, time.June, 1), date(2024, time.July, 1)))
}

func TestEvaluateIsDeterministic(t *testing.T) {
	today := date(2024, time.June, 1)
	target := date(2024, time.June, 8)

	first := Evaluate(KindMembership, today, target)
	second := Evaluate(KindMembership, today, target)
	assert.Equal(t, first, second)
}

func TestEvaluateIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)
	target := time.Date(2024, time.July, 1, 0, 1, 0, 0, time.UTC)

	got := Evaluate(KindMembership, today, target)
	require.Len(t, got, 1)
	assert.Equal(t, 30, got[0].OffsetDays)
}

func TestDateOf(t *testing.T) {
	assert.Equal(t, date(2024, time.June, 1), DateOf(time.Date(2024, time.June, 1, 9, 30, 15, 0, time.UTC)))
	assert.Equal(t, date(2024, time.June, 1), DateOf(date(2024, time.June, 1)))
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 30, DaysUntil(date(2024, time.June, 1), date(2024, time.July, 1)))
	assert.Equal(t, 0, DaysUntil(date(2024, time.June, 1), date(2024, time.June, 1)))
	assert.Equal(t, -3, DaysUntil(date(2024, time.June, 4), date(2024, time.June, 1)))
}

func TestEvaluateCatchUpCollectsMissedTriggers(t *testing.T) {
	today := date(2024, time.June, 1)

	// 5 days out: the 30-day and 7-day triggers have passed, 3 and 0 have not.
	got := EvaluateCatchUp(KindMembership, today, date(2024, time.June, 6))
	want := []Obligation{
		{ChannelEmail, 30},
		{ChannelEmail, 7},
		{ChannelWhatsApp, 7},
	}
	assert.Equal(t, want, got)
}

func TestEvaluateCatchUpOnTriggerDay(t *testing.T) {
	today := date(2024, time.June, 1)

	got := EvaluateCatchUp(KindPayment, today, date(2024, time.June, 1))
	want := []Obligation{
		{ChannelEmail, 3},
		{ChannelEmail, 0},
		{ChannelWhatsApp, 0},
	}
	assert.Equal(t, want, got)
}

func TestEvaluateCatchUpSkipsPastDue(t *testing.T) {
	today := date(2024, time.June, 10)
	assert.Empty(t, EvaluateCatchUp(KindMembership, today, date(2024, time.June, 1)))
}

func TestHorizonDays(t *testing.T) {
	assert.Equal(t, 30, HorizonDays(KindMembership))
	assert.Equal(t, 3, HorizonDays(KindPayment))
	assert.Equal(t, 0, HorizonDays(Kind("staff")))
}
