package app

import (
	"context"
	"time"

	"fithub_backoffice/internal/domain/reminder"
	"fithub_backoffice/internal/domain/transport"

	"github.com/sirupsen/logrus"
)

// gymLogoURL is the fixed branding asset attached to WhatsApp reminders.
const gymLogoURL = "https://images.unsplash.com/photo-1534438327276-14e5300c3a48?w=300"

// Dispatcher renders channel-specific reminder content and hands it to the
// external transports. All failures, render or transport, are converted into
// a failed Outcome at this boundary; a dispatch never panics the caller.
type Dispatcher struct {
	email       transport.EmailSender
	whatsapp    transport.WhatsAppSender
	sendTimeout time.Duration
	logger      *logrus.Logger
}

func NewDispatcher(email transport.EmailSender, whatsapp transport.WhatsAppSender, sendTimeout time.Duration, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		email:       email,
		whatsapp:    whatsapp,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// Send dispatches one reminder for subj on the given channel. daysRemaining
// drives the "in N days"/"today" phrase and may be any value; the manual
// trigger deliberately passes offsets outside the policy's trigger set.
func (d *Dispatcher) Send(ctx context.Context, subj reminder.Subject, channel reminder.Channel, daysRemaining int) reminder.Outcome {
	outcome := reminder.Outcome{Channel: channel, OffsetDays: daysRemaining}

	ctx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	switch channel {
	case reminder.ChannelEmail:
		outcome.Err = d.sendEmail(ctx, subj, daysRemaining)
	case reminder.ChannelWhatsApp:
		outcome.Err = d.sendWhatsApp(ctx, subj, daysRemaining)
	default:
		outcome.Err = &reminder.TransportError{Channel: channel, Err: errUnknownChannel}
	}

	entry := d.logger.WithFields(logrus.Fields{
		"kind":    subj.Kind,
		"subject": subj.ID,
		"channel": channel,
		"days":    daysRemaining,
	})
	if outcome.Err != nil {
		entry.WithError(outcome.Err).Error("Reminder dispatch failed")
	} else {
		entry.Info("Reminder dispatched")
	}
	return outcome
}

func (d *Dispatcher) sendEmail(ctx context.Context, subj reminder.Subject, daysRemaining int) error {
	subject, body, err := renderEmail(subj, daysRemaining)
	if err != nil {
		return &reminder.TransportError{Channel: reminder.ChannelEmail, Err: err}
	}
	if err := d.email.SendEmail(ctx, subj.Email, subject, body); err != nil {
		return &reminder.TransportError{Channel: reminder.ChannelEmail, Err: err}
	}
	return nil
}

func (d *Dispatcher) sendWhatsApp(ctx context.Context, subj reminder.Subject, daysRemaining int) error {
	body, err := renderWhatsApp(subj, daysRemaining)
	if err != nil {
		return &reminder.TransportError{Channel: reminder.ChannelWhatsApp, Err: err}
	}
	if err := d.whatsapp.SendWhatsApp(ctx, subj.Phone, body, gymLogoURL); err != nil {
		return &reminder.TransportError{Channel: reminder.ChannelWhatsApp, Err: err}
	}
	return nil
}
