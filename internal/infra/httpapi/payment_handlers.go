package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"fithub_backoffice/internal/app"
	"fithub_backoffice/internal/domain/payment"
	"fithub_backoffice/internal/infra/database"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PaymentHandler struct {
	service *app.PaymentService
	logger  *logrus.Logger
}

func NewPaymentHandler(service *app.PaymentService, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, logger: logger}
}

type paymentPayload struct {
	MemberID    int64           `json:"memberId"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     Date            `json:"dueDate"`
	PaymentDate Date            `json:"paymentDate"`
	Status      string          `json:"status"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
}

type paymentResponse struct {
	ID          int64           `json:"id"`
	MemberID    int64           `json:"memberId"`
	MemberName  string          `json:"memberName"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     Date            `json:"dueDate"`
	PaymentDate Date            `json:"paymentDate"`
	Status      string          `json:"status"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
}

func toPaymentResponse(p *payment.Payment) paymentResponse {
	resp := paymentResponse{
		ID:          p.ID,
		MemberID:    p.MemberID,
		MemberName:  p.MemberName,
		Amount:      p.Amount,
		DueDate:     Date{p.DueDate},
		Status:      string(p.Status),
		Type:        string(p.Type),
		Description: p.Description,
	}
	if p.PaymentDate.Valid {
		resp.PaymentDate = Date{p.PaymentDate.Time}
	}
	return resp
}

func (p paymentPayload) toModel() *payment.Payment {
	m := &payment.Payment{
		MemberID:    p.MemberID,
		Amount:      p.Amount,
		DueDate:     p.DueDate.Time,
		Status:      payment.Status(p.Status),
		Type:        payment.Type(p.Type),
		Description: p.Description,
	}
	if !p.PaymentDate.IsZero() {
		m.PaymentDate = sql.NullTime{Time: p.PaymentDate.Time, Valid: true}
	}
	return m
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	params := payment.ListParams{
		Page:   queryInt(r, "page", 1),
		Size:   queryInt(r, "size", 20),
		Search: r.URL.Query().Get("search"),
	}

	payments, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.WithError(err).Error("Listing payments failed")
		writeError(w, http.StatusInternalServerError, "could not list payments")
		return
	}
	h.writePage(w, payments, total, params)
}

func (h *PaymentHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "memberId")
	if !ok {
		return
	}
	params := payment.ListParams{
		Page: queryInt(r, "page", 1),
		Size: queryInt(r, "size", 20),
	}

	payments, total, err := h.service.ListByMember(r.Context(), memberID, params)
	if err != nil {
		h.logger.WithError(err).Error("Listing member payments failed")
		writeError(w, http.StatusInternalServerError, "could not list payments")
		return
	}
	h.writePage(w, payments, total, params)
}

func (h *PaymentHandler) writePage(w http.ResponseWriter, payments []*payment.Payment, total int, params payment.ListParams) {
	items := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, toPaymentResponse(p))
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: items, Total: total, Page: params.Page, Size: params.Size})
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "payment not found")
			return
		}
		h.logger.WithError(err).Error("Getting payment failed")
		writeError(w, http.StatusInternalServerError, "could not load payment")
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload paymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.service.Create(r.Context(), payload.toModel())
	if err != nil {
		if errors.Is(err, database.ErrMemberNotFound) {
			writeError(w, http.StatusBadRequest, "payment member does not exist")
			return
		}
		h.logger.WithError(err).Error("Creating payment failed")
		writeError(w, http.StatusInternalServerError, "could not create payment")
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var payload paymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.service.Update(r.Context(), id, payload.toModel())
	if err != nil {
		if errors.Is(err, database.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "payment not found")
			return
		}
		h.logger.WithError(err).Error("Updating payment failed")
		writeError(w, http.StatusInternalServerError, "could not update payment")
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "payment not found")
			return
		}
		h.logger.WithError(err).Error("Deleting payment failed")
		writeError(w, http.StatusInternalServerError, "could not delete payment")
		return
	}
	w.WriteHeader(http.StatusOK)
}
