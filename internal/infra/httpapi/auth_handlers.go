package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"fithub_backoffice/internal/app"
	"fithub_backoffice/internal/domain/user"
	"fithub_backoffice/internal/infra/auth"

	"github.com/sirupsen/logrus"
)

// AuthenticationService is the slice of app.AuthService the handler needs.
type AuthenticationService interface {
	Register(ctx context.Context, name, email, password string) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
}

type AuthHandler struct {
	service AuthenticationService
	tokens  *auth.TokenManager
	logger  *logrus.Logger
}

func NewAuthHandler(service AuthenticationService, tokens *auth.TokenManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		h.logger.WithError(err).Error("Registration failed")
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.issueSession(w, u.Email)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.WithError(err).Error("Login failed")
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.issueSession(w, u.Email)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, email string) {
	token, err := h.tokens.Generate(email)
	if err != nil {
		h.logger.WithError(err).Error("Token generation failed")
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	h.tokens.SetCookie(w, token)
	writeJSON(w, http.StatusOK, authResponse{Token: token})
}
