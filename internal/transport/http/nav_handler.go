package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"learnpath-service/internal/app"
	"learnpath-service/internal/domain"
	"learnpath-service/internal/graph"
)

// NavHandler serves course navigation targets as JSON. It returns structured
// identifiers only; clients assemble their own route strings from them.
type NavHandler struct {
	service *app.CourseService
}

func NewNavHandler(service *app.CourseService) *NavHandler {
	return &NavHandler{service: service}
}

// Register mounts the navigation endpoints on a mux.
func (h *NavHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/nav/next", h.next)
	mux.HandleFunc("/nav/prev", h.prev)
	mux.HandleFunc("/nav/resume", h.resume)
	mux.HandleFunc("/articles/view", h.articleView)
}

func (h *NavHandler) next(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.service.NextActivity, h.service.NextLesson)
}

func (h *NavHandler) prev(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.service.PrevActivity, h.service.PrevLesson)
}

type resolveFunc func(ctx context.Context, courseID, id string) (graph.Target, error)

// step dispatches on which id the caller supplied: activityId for
// activity-level navigation, lessonId for the lesson sidebar.
func (h *NavHandler) step(w http.ResponseWriter, r *http.Request, byActivity, byLesson resolveFunc) {
	courseID := r.URL.Query().Get("courseId")
	if courseID == "" {
		http.Error(w, "missing courseId", http.StatusBadRequest)
		return
	}

	var target graph.Target
	var err error
	switch {
	case r.URL.Query().Get("activityId") != "":
		target, err = byActivity(r.Context(), courseID, r.URL.Query().Get("activityId"))
	case r.URL.Query().Get("lessonId") != "":
		target, err = byLesson(r.Context(), courseID, r.URL.Query().Get("lessonId"))
	default:
		http.Error(w, "missing activityId or lessonId", http.StatusBadRequest)
		return
	}
	h.respond(w, target, err)
}

func (h *NavHandler) resume(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("courseId")
	if courseID == "" {
		http.Error(w, "missing courseId", http.StatusBadRequest)
		return
	}
	target, err := h.service.Resume(r.Context(), courseID, r.URL.Query().Get("userId"))
	h.respond(w, target, err)
}

// articleView records a scoreless completion for an article. POST only; the
// quiz path records through the attempt state machine instead.
func (h *NavHandler) articleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	courseID := r.URL.Query().Get("courseId")
	activityID := r.URL.Query().Get("activityId")
	userID := r.URL.Query().Get("userId")
	if courseID == "" || activityID == "" {
		http.Error(w, "missing courseId or activityId", http.StatusBadRequest)
		return
	}

	completion, err := h.service.RecordArticleView(r.Context(), courseID, activityID, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completion)
}

func (h *NavHandler) respond(w http.ResponseWriter, target graph.Target, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, target)
}

func (h *NavHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrModuleNotFound),
		errors.Is(err, domain.ErrLessonNotFound),
		errors.Is(err, domain.ErrActivityNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotArticle), errors.Is(err, domain.ErrNotQuiz):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorPayload{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
