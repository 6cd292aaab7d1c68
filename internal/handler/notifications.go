package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EuclidesAnchundia/Tutorias/common_library/ctxdata"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
	"github.com/EuclidesAnchundia/Tutorias/internal/notifications"
)

type NotificationHandler struct {
	src notifications.Source
}

func NewNotificationHandler(src notifications.Source) *NotificationHandler {
	return &NotificationHandler{src: src}
}

func (h *NotificationHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Route("/notifications", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/unread-count", h.UnreadCount)
		r.Post("/read-all", h.MarkAllRead)
		r.Post("/{id}/read", h.MarkRead)
	})
}

// reader scopes a Reader to the authenticated user.
func (h *NotificationHandler) reader(ctx context.Context) *notifications.Reader {
	email, _ := ctxdata.GetUserEmail(ctx)
	return notifications.NewReader(h.src, notifications.Fixed(email))
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.reader(r.Context()).List(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if list == nil {
		list = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.reader(r.Context()).UnreadCount(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if err := h.reader(r.Context()).MarkRead(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	changed, err := h.reader(r.Context()).MarkAllRead(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": changed})
}
