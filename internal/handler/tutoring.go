package handler

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/EuclidesAnchundia/Tutorias/internal/ingest"
	"github.com/EuclidesAnchundia/Tutorias/internal/middleware"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
	"github.com/EuclidesAnchundia/Tutorias/internal/report"
	"github.com/EuclidesAnchundia/Tutorias/internal/service"
)

// multipartMemory is how much of an upload is kept in memory before
// spilling to a temp file.
const multipartMemory = 1 << 20

type TutoringHandler struct {
	svc     *service.TutoringService
	reports report.Source
}

func NewTutoringHandler(svc *service.TutoringService, reports report.Source) *TutoringHandler {
	return &TutoringHandler{svc: svc, reports: reports}
}

func (h *TutoringHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Group(func(r chi.Router) {
		r.Get("/users", h.ListUsers)
		r.Patch("/users/{email}", h.UpdateUser)
		r.Delete("/users/{email}", h.DeleteUser)

		r.Get("/assignments", h.ListAssignments)
		r.Post("/assignments", h.AssignTutor)
		r.Delete("/assignments/{id}", h.Unassign)

		r.Get("/sessions", h.ListSessions)
		r.Post("/sessions", h.RequestSession)
		r.Post("/sessions/{id}/accept", h.AcceptSession)
		r.Post("/sessions/{id}/reject", h.RejectSession)
		r.Post("/sessions/{id}/complete", h.CompleteSession)

		r.Get("/topics", h.ListTopics)
		r.Put("/topics", h.SubmitTopic)
		r.Post("/topics/{id}/review", h.ReviewTopic)

		r.Get("/files", h.ListFiles)
		r.Post("/files", h.UploadFile)
		r.Get("/files/{id}", h.DownloadFile)
		r.Put("/files/{id}", h.ReplaceFile)
		r.Delete("/files/{id}", h.DeleteFile)

		r.Get("/tutor", h.MyTutor)
		r.Get("/students", h.MyStudents)
		r.Post("/messages", h.SendMessage)

		r.Route("/admin", func(r chi.Router) {
			r.With(middleware.RequireRole(model.RoleAdministrator, model.RoleCoordinator)).Get("/stats", h.Stats)
			r.With(middleware.RequireRole(model.RoleAdministrator)).Post("/reset", h.Reset)
			r.With(middleware.RequireRole(model.RoleAdministrator)).Post("/seed", h.Seed)
		})
		r.With(middleware.RequireRole(model.RoleCoordinator, model.RoleAdministrator)).
			Get("/reports/coordinator.xlsx", h.CoordinatorReport)
	})
}

// ── Users ──

func (h *TutoringHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.UserFilter{Faculty: q.Get("faculty"), Role: model.Role(q.Get("role"))}
	if filter.Role != "" && !filter.Role.IsValid() {
		writeErr(w, r, fmt.Errorf("%w: unknown role %q", ErrBadRequest, filter.Role))
		return
	}
	users, err := h.svc.ListUsers(r.Context(), filter)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

func (h *TutoringHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	email, err := parsePathParam(r, "email")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var in updateUserRequest
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	u, err := h.svc.UpdateUser(r.Context(), email, in.input())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *TutoringHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	email, err := parsePathParam(r, "email")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if err := h.svc.DeleteUser(r.Context(), email); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TutoringHandler) MyTutor(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.MyTutor(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *TutoringHandler) MyStudents(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.MyStudents(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// ── Assignments ──

func (h *TutoringHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Assignments(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *TutoringHandler) AssignTutor(w http.ResponseWriter, r *http.Request) {
	var in model.AssignTutorInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	a, err := h.svc.AssignTutor(r.Context(), &in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *TutoringHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if err := h.svc.Unassign(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Sessions ──

func (h *TutoringHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Sessions(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *TutoringHandler) RequestSession(w http.ResponseWriter, r *http.Request) {
	var in model.RequestSessionInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	ts, err := h.svc.RequestSession(r.Context(), &in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ts)
}

func (h *TutoringHandler) AcceptSession(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	ts, err := h.svc.AcceptSession(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *TutoringHandler) RejectSession(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var in rejectRequest
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	ts, err := h.svc.RejectSession(r.Context(), id, in.Reason)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *TutoringHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var in model.CompleteSessionInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	ts, err := h.svc.CompleteSession(r.Context(), id, &in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

// ── Topics ──

func (h *TutoringHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Topics(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *TutoringHandler) SubmitTopic(w http.ResponseWriter, r *http.Request) {
	var in model.SubmitTopicInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	t, err := h.svc.SubmitTopic(r.Context(), &in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TutoringHandler) ReviewTopic(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var in model.ReviewTopicInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	t, err := h.svc.ReviewTopic(r.Context(), id, &in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ── Files ──

func (h *TutoringHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Files(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFileResponses(list))
}

func (h *TutoringHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	defer file.Close()

	f, err := h.svc.UploadFile(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFileResponse(f))
}

func (h *TutoringHandler) ReplaceFile(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	file, header, err := formFile(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	defer file.Close()

	f, err := h.svc.ReplaceFile(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFileResponse(f))
}

func (h *TutoringHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	f, err := h.svc.File(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	mimeType, data, err := ingest.DecodeDataURI(f.Content)
	if err != nil {
		writeErr(w, r, fmt.Errorf("file %s has unreadable content: %v", id, err))
		return
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (h *TutoringHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if err := h.svc.DeleteFile(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: expected multipart form: %v", ErrBadRequest, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: missing form field \"file\"", ErrBadRequest)
	}
	return file, header, nil
}

// ── Messages ──

func (h *TutoringHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var in model.SendMessageInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, r, err)
		return
	}
	n, err := h.svc.SendMessage(r.Context(), &in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// ── Administration ──

func (h *TutoringHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *TutoringHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TutoringHandler) Seed(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	seeded, err := h.svc.Seed(r.Context(), force)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"seeded": seeded})
}

func (h *TutoringHandler) CoordinatorReport(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Stats(r.Context()); err != nil {
		writeErr(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteCoordinator(&buf, h.reports); err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="coordinator.xlsx"`)
	w.Write(buf.Bytes())
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
