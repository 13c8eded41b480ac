package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fithub_backoffice/internal/app"
	"fithub_backoffice/internal/domain/member"
	"fithub_backoffice/internal/infra/database"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type MemberHandler struct {
	service *app.MemberService
	logger  *logrus.Logger
}

func NewMemberHandler(service *app.MemberService, logger *logrus.Logger) *MemberHandler {
	return &MemberHandler{service: service, logger: logger}
}

type memberPayload struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	MembershipType   string `json:"membershipType"`
	Status           string `json:"status"`
	JoinDate         Date   `json:"joinDate"`
	MembershipExpiry Date   `json:"membershipExpiry"`
	Photo            string `json:"photo"`
}

type memberResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	MembershipType   string `json:"membershipType"`
	Status           string `json:"status"`
	JoinDate         Date   `json:"joinDate"`
	MembershipExpiry Date   `json:"membershipExpiry"`
	Photo            string `json:"photo,omitempty"`
}

func toMemberResponse(m *member.Member) memberResponse {
	return memberResponse{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Phone:            m.Phone,
		MembershipType:   string(m.MembershipType),
		Status:           string(m.Status),
		JoinDate:         Date{m.JoinDate},
		MembershipExpiry: Date{m.MembershipExpiry},
		Photo:            m.Photo.String,
	}
}

func (p memberPayload) toModel() *member.Member {
	m := &member.Member{
		Name:             p.Name,
		Email:            p.Email,
		Phone:            p.Phone,
		MembershipType:   member.MembershipType(p.MembershipType),
		Status:           member.Status(p.Status),
		JoinDate:         p.JoinDate.Time,
		MembershipExpiry: p.MembershipExpiry.Time,
	}
	if p.Photo != "" {
		m.Photo = sql.NullString{String: p.Photo, Valid: true}
	}
	return m
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	params := member.ListParams{
		Page:   queryInt(r, "page", 1),
		Size:   queryInt(r, "size", 20),
		Search: r.URL.Query().Get("search"),
	}

	members, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.WithError(err).Error("Listing members failed")
		writeError(w, http.StatusInternalServerError, "could not list members")
		return
	}

	items := make([]memberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: items, Total: total, Page: params.Page, Size: params.Size})
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		h.logger.WithError(err).Error("Getting member failed")
		writeError(w, http.StatusInternalServerError, "could not load member")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload memberPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m := payload.toModel()
	if err := h.service.Create(r.Context(), m); err != nil {
		h.logger.WithError(err).Error("Creating member failed")
		writeError(w, http.StatusInternalServerError, "could not create member")
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(m))
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var payload memberPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.service.Update(r.Context(), id, payload.toModel())
	if err != nil {
		if errors.Is(err, database.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		h.logger.WithError(err).Error("Updating member failed")
		writeError(w, http.StatusInternalServerError, "could not update member")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		h.logger.WithError(err).Error("Deleting member failed")
		writeError(w, http.StatusInternalServerError, "could not delete member")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
