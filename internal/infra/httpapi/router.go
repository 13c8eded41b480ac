package httpapi

import (
	"net/http"

	"fithub_backoffice/internal/infra/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every API route. Auth endpoints are open; the rest of /api
// sits behind the session cookie.
func NewRouter(
	authHandler *AuthHandler,
	memberHandler *MemberHandler,
	paymentHandler *PaymentHandler,
	reminderHandler *ReminderHandler,
	tokens *auth.TokenManager,
	logger *logrus.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(tokens))

			r.Route("/members", func(r chi.Router) {
				r.Get("/", memberHandler.List)
				r.Post("/", memberHandler.Create)
				r.Get("/{id}", memberHandler.Get)
				r.Put("/{id}", memberHandler.Update)
				r.Delete("/{id}", memberHandler.Delete)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", paymentHandler.List)
				r.Post("/", paymentHandler.Create)
				r.Get("/member/{memberId}", paymentHandler.ListByMember)
				r.Get("/{id}", paymentHandler.Get)
				r.Put("/{id}", paymentHandler.Update)
				r.Delete("/{id}", paymentHandler.Delete)
			})

			r.Post("/reminders/{kind}/{id}/{channel}", reminderHandler.Trigger)
		})
	})

	return r
}
