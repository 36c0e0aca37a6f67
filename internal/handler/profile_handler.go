package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
	"github.com/yusufkecer/body-composition-backend/internal/domain"
	"github.com/yusufkecer/body-composition-backend/internal/middleware"
)

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
	Update(ctx context.Context, userID int64, fields map[string]any) error
}

type ProfileHandler struct {
	repo ProfileStore
	now  func() time.Time
}

func NewProfileHandler(repo ProfileStore) *ProfileHandler {
	return &ProfileHandler{repo: repo, now: time.Now}
}

// profilePatch carries the fields a client may change. Weight and height
// are in Units when given, otherwise in the profile's unit system.
type profilePatch struct {
	Name          *string  `json:"name"`
	Gender        *string  `json:"gender"`
	BirthOfDate   *string  `json:"birthOfDate"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	GoalWeight    *float64 `json:"goal_weight"`
	ActivityLevel *string  `json:"activity_level"`
	Experience    *string  `json:"experience"`
	Units         *string  `json:"units"`
}

type profileDisplay struct {
	Units      domain.UnitSystem `json:"units"`
	Weight     *float64          `json:"weight"`
	Height     *float64          `json:"height"`
	GoalWeight *float64          `json:"goal_weight"`
}

type profileResponse struct {
	domain.Profile
	Display profileDisplay `json:"display"`
}

func newProfileResponse(p domain.Profile) profileResponse {
	display := profileDisplay{Units: p.Units}
	convert := func(v *float64, f func(float64, domain.UnitSystem) float64) *float64 {
		if v == nil {
			return nil
		}
		out := f(*v, p.Units)
		return &out
	}
	display.Weight = convert(p.WeightLbs, bodycomp.FromImperialWeight)
	display.Height = convert(p.HeightIn, bodycomp.FromImperialLength)
	display.GoalWeight = convert(p.GoalWeightLbs, bodycomp.FromImperialWeight)
	return profileResponse{Profile: p, Display: display}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}

	p, err := h.repo.GetByUserID(r.Context(), userID)
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to get profile")
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	p.PopulateAge(h.now())
	writeJSON(w, http.StatusOK, newProfileResponse(*p))
}

// Patch creates the profile on first use and otherwise updates only the
// fields present in the body.
func (h *ProfileHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, ok := accountID(w, r)
	if !ok {
		return
	}

	var patch profilePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	current, err := h.repo.GetByUserID(r.Context(), userID)
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to get profile")
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	create := current == nil
	if create {
		current = &domain.Profile{UserID: userID, Units: domain.UnitsImperial}
	}

	updated, fields, err := applyPatch(*current, patch)
	if err == nil {
		err = updated.Validate(h.now())
	}
	if err != nil {
		writeValidationError(w, err)
		return
	}

	if create {
		err = h.repo.Upsert(r.Context(), &updated)
	} else {
		err = h.repo.Update(r.Context(), userID, fields)
	}
	if err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("failed to save profile")
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	updated.PopulateAge(h.now())
	status := http.StatusOK
	if create {
		status = http.StatusCreated
	}
	writeJSON(w, status, newProfileResponse(updated))
}

// applyPatch returns p with the patch applied, in canonical units, and the
// changed columns.
func applyPatch(p domain.Profile, patch profilePatch) (domain.Profile, map[string]any, error) {
	fields := map[string]any{}
	var errs error

	if patch.Units != nil {
		units, err := domain.ParseUnitSystem(*patch.Units)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else {
			p.Units = units
			fields["units"] = units
		}
	}
	inputUnits := p.Units

	if patch.Name != nil {
		p.Name = patch.Name
		fields["name"] = *patch.Name
	}
	if patch.Gender != nil {
		if g, err := domain.ParseGender(*patch.Gender); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			p.Gender = g
			fields["gender"] = g
		}
	}
	if patch.BirthOfDate != nil {
		p.BirthOfDate = patch.BirthOfDate
		fields["birth_of_date"] = *patch.BirthOfDate
	}

	for _, m := range []struct {
		in        *float64
		out       **float64
		column    string
		normalize func(*float64, domain.UnitSystem) error
	}{
		{patch.Weight, &p.WeightLbs, "weight_lbs", bodycomp.NormalizeWeight},
		{patch.Height, &p.HeightIn, "height_in", bodycomp.NormalizeLength},
		{patch.GoalWeight, &p.GoalWeightLbs, "goal_weight_lbs", bodycomp.NormalizeWeight},
	} {
		if m.in == nil {
			continue
		}
		v := *m.in
		if err := m.normalize(&v, inputUnits); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		*m.out = &v
		fields[m.column] = v
	}

	if patch.ActivityLevel != nil {
		if level, err := domain.ParseActivityLevel(*patch.ActivityLevel); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			p.ActivityLevel = &level
			fields["activity_level"] = level
		}
	}
	if patch.Experience != nil {
		if level, err := domain.ParseExperienceLevel(*patch.Experience); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			p.Experience = &level
			fields["experience"] = level
		}
	}

	return p, fields, errs
}
