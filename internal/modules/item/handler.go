package item

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Onkar-Kul/simple-inventory-management/internal/apierr"
	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/auth"
)

// Handler exposes the item HTTP endpoints. All routes sit behind the auth
// middleware; the per-operation capability checks live in the service.
type Handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router *chi.Mux, requireAuth func(http.Handler) http.Handler) {
	router.Route("/items", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}/", h.retrieve)
		r.Put("/{id}/", h.update)
		r.Patch("/{id}/", h.partialUpdate)
		r.Delete("/{id}/", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, fromCache, err := h.service.List(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	message := "Items retrieved successfully"
	if fromCache {
		message = "Items retrieved from cache."
	}
	respond(w, http.StatusOK, message, items)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondRaw(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	it, err := h.service.Create(r.Context(), req, auth.UserFromContext(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond(w, http.StatusCreated, "Item created successfully", it)
}

func (h *Handler) retrieve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	it, fromCache, err := h.service.Retrieve(r.Context(), id, auth.UserFromContext(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	message := "Item retrieved successfully"
	if fromCache {
		message = "Item retrieved successfully from Cache"
	}
	respond(w, http.StatusOK, message, it)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	h.applyUpdate(w, r, false)
}

func (h *Handler) partialUpdate(w http.ResponseWriter, r *http.Request) {
	h.applyUpdate(w, r, true)
}

func (h *Handler) applyUpdate(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondRaw(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	it, err := h.service.Update(r.Context(), id, req, partial, auth.UserFromContext(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond(w, http.StatusOK, "Item updated successfully", it)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, auth.UserFromContext(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondRaw(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if e, ok := apierr.As(err); ok {
		switch e.Kind {
		case apierr.KindConflict:
			respondRaw(w, e.Status(), map[string]string{"error": e.Message})
		case apierr.KindValidation:
			respondRaw(w, e.Status(), e.Fields)
		default:
			respondRaw(w, e.Status(), map[string]string{"detail": e.Message})
		}
		return
	}
	h.logger.Errorw("item request failed", "err", err)
	respondRaw(w, http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
}

// respond writes the {message, data} envelope shared by all item responses.
func respond(w http.ResponseWriter, status int, message string, data interface{}) {
	respondRaw(w, status, map[string]interface{}{
		"message": message,
		"data":    data,
	})
}

func respondRaw(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
