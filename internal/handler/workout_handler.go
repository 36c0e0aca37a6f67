package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
	"github.com/yusufkecer/body-composition-backend/internal/middleware"
)

type WorkoutStore interface {
	Create(ctx context.Context, w *domain.WorkoutSession) (int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]domain.WorkoutSession, error)
}

type WorkoutHandler struct {
	repo WorkoutStore
	now  func() time.Time
}

func NewWorkoutHandler(repo WorkoutStore) *WorkoutHandler {
	return &WorkoutHandler{repo: repo, now: time.Now}
}

func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}

	var session domain.WorkoutSession
	if err := decodeJSON(r, &session); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session.ID = 0
	session.UserID = userID
	if session.Date == "" {
		session.Date = h.now().Format(domain.DateLayout)
	}
	if err := session.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	id, err := h.repo.Create(r.Context(), &session)
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to create workout session")
		writeError(w, http.StatusInternalServerError, "failed to create workout session")
		return
	}

	session.ID = id
	session.CreatedAt = h.now().UTC()
	writeJSON(w, http.StatusCreated, session)
}

func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}

	sessions, err := h.repo.ListByUserID(r.Context(), userID)
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to list workout sessions")
		writeError(w, http.StatusInternalServerError, "failed to list workout sessions")
		return
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}

	writeJSON(w, http.StatusOK, sessions)
}
