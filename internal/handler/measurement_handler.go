package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
	"github.com/yusufkecer/body-composition-backend/internal/domain"
	"github.com/yusufkecer/body-composition-backend/internal/middleware"
)

type MeasurementStore interface {
	Create(ctx context.Context, m *domain.BodyMeasurementEntry) (int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]domain.BodyMeasurementEntry, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type ProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

type MeasurementHandler struct {
	repo     MeasurementStore
	profiles ProfileReader
	now      func() time.Time
}

func NewMeasurementHandler(repo MeasurementStore, profiles ProfileReader) *MeasurementHandler {
	return &MeasurementHandler{repo: repo, profiles: profiles, now: time.Now}
}

type measurementRequest struct {
	Date   string   `json:"date"`
	Chest  *float64 `json:"chest"`
	Waist  *float64 `json:"waist"`
	Hips   *float64 `json:"hips"`
	Arms   *float64 `json:"arms"`
	Thighs *float64 `json:"thighs"`
	Neck   *float64 `json:"neck"`
	Note   *string  `json:"note"`
	Units  *string  `json:"units"`
}

func (h *MeasurementHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}

	var req measurementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	units, err := inputUnits(r.Context(), h.profiles, userID, req.Units)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry := domain.BodyMeasurementEntry{
		UserID: userID,
		Date:   req.Date,
		Chest:  req.Chest,
		Waist:  req.Waist,
		Hips:   req.Hips,
		Arms:   req.Arms,
		Thighs: req.Thighs,
		Neck:   req.Neck,
		Note:   req.Note,
	}
	if entry.Date == "" {
		entry.Date = h.now().Format(domain.DateLayout)
	}
	if err := bodycomp.NormalizeMeasurement(&entry, units); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := entry.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	id, err := h.repo.Create(r.Context(), &entry)
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to create measurement")
		writeError(w, http.StatusInternalServerError, "failed to create measurement")
		return
	}

	entry.ID = id
	entry.CreatedAt = h.now().UTC()
	writeJSON(w, http.StatusCreated, entry)
}

func (h *MeasurementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}

	entries, err := h.repo.ListByUserID(r.Context(), userID)
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to list measurements")
		writeError(w, http.StatusInternalServerError, "failed to list measurements")
		return
	}
	if entries == nil {
		entries = []domain.BodyMeasurementEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *MeasurementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid measurement id")
		return
	}

	deleted, err := h.repo.Delete(r.Context(), userID, id)
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to delete measurement")
		writeError(w, http.StatusInternalServerError, "failed to delete measurement")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "measurement not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// inputUnits resolves the unit system a request body is written in: the
// explicit value when given, else the user's preference, else imperial.
func inputUnits(ctx context.Context, profiles ProfileReader, userID int64, explicit *string) (domain.UnitSystem, error) {
	if explicit != nil {
		return domain.ParseUnitSystem(*explicit)
	}
	if profiles == nil {
		return domain.UnitsImperial, nil
	}
	p, err := profiles.GetByUserID(ctx, userID)
	if err != nil {
		middleware.Logger(ctx).WithError(err).Warn("profile lookup failed, assuming imperial input")
		return domain.UnitsImperial, nil
	}
	if p == nil || p.Units == "" {
		return domain.UnitsImperial, nil
	}
	return p.Units, nil
}
