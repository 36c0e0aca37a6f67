package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
	"github.com/yusufkecer/body-composition-backend/internal/domain"
	"github.com/yusufkecer/body-composition-backend/internal/middleware"
	"github.com/yusufkecer/body-composition-backend/internal/service"
)

type BodyCompositionComputer interface {
	ForUser(ctx context.Context, userID int64, o service.Overrides) (bodycomp.DerivedMetrics, error)
}

type BodyCompositionHandler struct {
	service BodyCompositionComputer
}

func NewBodyCompositionHandler(s BodyCompositionComputer) *BodyCompositionHandler {
	return &BodyCompositionHandler{service: s}
}

// Get serves the derived metrics. The optional activity and experience
// query parameters preview other levels without saving them.
func (h *BodyCompositionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}

	var overrides service.Overrides
	q := r.URL.Query()
	if v := q.Get("activity"); v != "" {
		level, err := domain.ParseActivityLevel(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		overrides.Activity = &level
	}
	if v := q.Get("experience"); v != "" {
		level, err := domain.ParseExperienceLevel(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		overrides.Experience = &level
	}

	m, err := h.service.ForUser(r.Context(), userID, overrides)
	if errors.Is(err, service.ErrProfileNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to compute body composition")
		writeError(w, http.StatusInternalServerError, "failed to compute body composition")
		return
	}

	writeJSON(w, http.StatusOK, m)
}
