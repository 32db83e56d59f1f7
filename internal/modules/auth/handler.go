package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Onkar-Kul/simple-inventory-management/internal/apierr"
)

// Handler exposes the login, refresh, and logout HTTP endpoints.
type Handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/accounts/login/", h.login)
	router.Post("/accounts/token/refresh/", h.refresh)
	router.Post("/accounts/logout/", h.logout)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"token": pair,
		"msg":   "Login Success",
	})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond(w, http.StatusOK, pair)
}

// logout acknowledges the request. Tokens are stateless, so the client
// discards its pair; nothing is revoked server-side.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"msg": "Logout Successful"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if e, ok := apierr.As(err); ok {
		switch e.Kind {
		case apierr.KindBadCredentials:
			// Legacy behavior: bad login is reported as 404 with a
			// non-field error to resist account enumeration.
			respond(w, e.Status(), map[string]interface{}{
				"errors": map[string][]string{apierr.NonFieldKey: {e.Message}},
			})
		case apierr.KindValidation:
			respond(w, e.Status(), e.Fields)
		default:
			respond(w, e.Status(), map[string]string{"detail": e.Message})
		}
		return
	}
	h.logger.Errorw("auth request failed", "err", err)
	respond(w, http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
