package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Onkar-Kul/simple-inventory-management/internal/apierr"
)

// Handler exposes the registration HTTP endpoint.
type Handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/accounts/registration/", h.register)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	if _, err := h.service.Register(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"msg": "Registration Successful"})
}

// writeError renders field-scoped validation errors the way the accounts API
// reports them: a map of field name to messages.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if e, ok := apierr.As(err); ok {
		if len(e.Fields) > 0 {
			respond(w, e.Status(), e.Fields)
			return
		}
		respond(w, e.Status(), map[string]string{"detail": e.Message})
		return
	}
	h.logger.Errorw("registration failed", "err", err)
	respond(w, http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
