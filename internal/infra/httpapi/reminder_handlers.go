package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fithub_backoffice/internal/domain/reminder"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// ReminderTrigger is the manual, single-reminder entry point the handler
// exposes to operators.
type ReminderTrigger interface {
	Trigger(ctx context.Context, kind reminder.Kind, id int64, channel reminder.Channel) (reminder.Outcome, error)
}

type ReminderHandler struct {
	service ReminderTrigger
	logger  *logrus.Logger
}

func NewReminderHandler(service ReminderTrigger, logger *logrus.Logger) *ReminderHandler {
	return &ReminderHandler{service: service, logger: logger}
}

type reminderResponse struct {
	Delivered bool   `json:"delivered"`
	Channel   string `json:"channel"`
	Days      int    `json:"daysRemaining"`
	Error     string `json:"error,omitempty"`
}

// Trigger handles POST /api/reminders/{kind}/{id}/{channel}. The send result
// is reported to the operator either way; only a missing subject or bad input
// maps to an error status.
func (h *ReminderHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "kind must be membership or payment")
		return
	}
	id, okID := pathID(w, r, "id")
	if !okID {
		return
	}
	channel, ok := parseChannel(chi.URLParam(r, "channel"))
	if !ok {
		writeError(w, http.StatusBadRequest, "channel must be EMAIL or WHATSAPP")
		return
	}

	outcome, err := h.service.Trigger(r.Context(), kind, id, channel)
	if err != nil {
		if errors.Is(err, reminder.ErrSubjectNotFound) {
			writeError(w, http.StatusNotFound, "subject not found")
			return
		}
		h.logger.WithError(err).Error("Manual reminder failed")
		writeError(w, http.StatusInternalServerError, "could not send reminder")
		return
	}

	resp := reminderResponse{
		Delivered: outcome.Delivered(),
		Channel:   string(outcome.Channel),
		Days:      outcome.OffsetDays,
	}
	status := http.StatusOK
	if !outcome.Delivered() {
		resp.Error = outcome.Err.Error()
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

func parseKind(s string) (reminder.Kind, bool) {
	switch strings.ToLower(s) {
	case "membership":
		return reminder.KindMembership, true
	case "payment":
		return reminder.KindPayment, true
	default:
		return "", false
	}
}

func parseChannel(s string) (reminder.Channel, bool) {
	switch strings.ToUpper(s) {
	case "EMAIL":
		return reminder.ChannelEmail, true
	case "WHATSAPP":
		return reminder.ChannelWhatsApp, true
	default:
		return "", false
	}
}
