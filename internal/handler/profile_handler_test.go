package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
	"github.com/yusufkecer/body-composition-backend/internal/domain"
	"github.com/yusufkecer/body-composition-backend/internal/mocks"
)

func newTestProfileHandler() (*ProfileHandler, *mocks.MockProfileRepository) {
	repo := &mocks.MockProfileRepository{}
	h := NewProfileHandler(repo)
	h.now = fixedNow
	return h, repo
}

func storedProfile() *domain.Profile {
	weight, height := 176.0, 70.0
	birth := "1990-11-02"
	return &domain.Profile{
		UserID:      3,
		Gender:      domain.GenderFemale,
		BirthOfDate: &birth,
		WeightLbs:   &weight,
		HeightIn:    &height,
		Units:       domain.UnitsMetric,
	}
}

func TestProfileHandler_Get(t *testing.T) {
	h, repo := newTestProfileHandler()
	repo.On("GetByUserID", mock.Anything, int64(3)).Return(storedProfile(), nil)

	rr := httptest.NewRecorder()
	h.Get(rr, authedRequest(t, http.MethodGet, "/api/v1/profile", nil, 3))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResponse[profileResponse](t, rr)
	require.NotNil(t, resp.Age)
	assert.Equal(t, 35, *resp.Age)
	assert.Equal(t, 176.0, *resp.WeightLbs)
	assert.Equal(t, domain.UnitsMetric, resp.Display.Units)
	assert.InDelta(t, 79.83, *resp.Display.Weight, 0.01)
	assert.InDelta(t, 177.8, *resp.Display.Height, 1e-9)
	assert.Nil(t, resp.Display.GoalWeight)
}

func TestProfileHandler_GetNotFound(t *testing.T) {
	h, repo := newTestProfileHandler()
	repo.On("GetByUserID", mock.Anything, int64(3)).Return(nil, nil)

	rr := httptest.NewRecorder()
	h.Get(rr, authedRequest(t, http.MethodGet, "/api/v1/profile", nil, 3))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProfileHandler_PatchCreates(t *testing.T) {
	h, repo := newTestProfileHandler()
	repo.On("GetByUserID", mock.Anything, int64(3)).Return(nil, nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == 3 &&
			p.Units == domain.UnitsMetric &&
			p.Gender == domain.GenderMale &&
			*p.WeightLbs == bodycomp.KgToLbs(80) &&
			*p.HeightIn == bodycomp.CmToInches(180) &&
			*p.ActivityLevel == domain.ActivityExtreme
	})).Return(nil)

	body := `{"units":"metric","gender":"m","weight":80,"height":180,"activity_level":"very_active","birthOfDate":"1996-05-01"}`
	rr := httptest.NewRecorder()
	h.Patch(rr, authedRequest(t, http.MethodPatch, "/api/v1/profile", body, 3))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	resp := decodeResponse[profileResponse](t, rr)
	assert.Equal(t, 30, *resp.Age)
	assert.InDelta(t, 80, *resp.Display.Weight, 1e-9)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileHandler_PatchUpdatesChangedColumns(t *testing.T) {
	h, repo := newTestProfileHandler()
	repo.On("GetByUserID", mock.Anything, int64(3)).Return(storedProfile(), nil)
	repo.On("Update", mock.Anything, int64(3), map[string]any{
		"weight_lbs":     bodycomp.KgToLbs(78),
		"activity_level": domain.ActivityActive,
	}).Return(nil)

	rr := httptest.NewRecorder()
	h.Patch(rr, authedRequest(t, http.MethodPatch, "/api/v1/profile", `{"weight":78,"activity_level":"active"}`, 3))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeResponse[profileResponse](t, rr)
	assert.Equal(t, domain.ActivityActive, *resp.ActivityLevel)
	assert.Equal(t, 70.0, *resp.HeightIn)
	repo.AssertExpectations(t)
}

func TestProfileHandler_PatchValidation(t *testing.T) {
	h, repo := newTestProfileHandler()
	repo.On("GetByUserID", mock.Anything, int64(3)).Return(storedProfile(), nil)

	rr := httptest.NewRecorder()
	body := `{"units":"imperial","weight":-5,"height":300,"gender":"robot","birthOfDate":"2030-01-01"}`
	h.Patch(rr, authedRequest(t, http.MethodPatch, "/api/v1/profile", body, 3))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeResponse[struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}](t, rr)
	assert.Len(t, resp.Details, 1, "parse errors are reported before range checks")
	assert.Contains(t, resp.Error, "gender")

	rr = httptest.NewRecorder()
	body = `{"weight":-5,"height":400,"birthOfDate":"2030-01-01"}`
	h.Patch(rr, authedRequest(t, http.MethodPatch, "/api/v1/profile", body, 3))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	resp = decodeResponse[struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}](t, rr)
	assert.Len(t, resp.Details, 3)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestProfileHandler_PatchStoreError(t *testing.T) {
	h, repo := newTestProfileHandler()
	repo.On("GetByUserID", mock.Anything, int64(3)).Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	h.Patch(rr, authedRequest(t, http.MethodPatch, "/api/v1/profile", `{"weight":150}`, 3))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "db down")
}

func TestProfileHandler_Unauthenticated(t *testing.T) {
	h, _ := newTestProfileHandler()
	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestApplyPatch_InputUnitsFollowPatchedUnits(t *testing.T) {
	p := *storedProfile()
	units := "imperial"
	weight := 150.0
	out, fields, err := applyPatch(p, profilePatch{Units: &units, Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, 150.0, *out.WeightLbs)
	assert.Equal(t, domain.UnitsImperial, fields["units"])
	assert.Equal(t, 176.0, *p.WeightLbs, "the input profile is not modified")
}

func TestApplyPatch_ConvertsMetricInput(t *testing.T) {
	p := *storedProfile()
	units := "metric"
	weight, height, goal := 80.0, 177.8, 75.0
	out, fields, err := applyPatch(p, profilePatch{Units: &units, Weight: &weight, Height: &height, GoalWeight: &goal})
	require.NoError(t, err)

	assert.InDelta(t, 176.3696, *out.WeightLbs, 1e-4)
	assert.InDelta(t, 70, *out.HeightIn, 1e-9)
	assert.InDelta(t, 165.3465, *out.GoalWeightLbs, 1e-4)
	assert.InDelta(t, 70, fields["height_in"].(float64), 1e-9)
	assert.Equal(t, 80.0, weight, "the request value is not modified")
}
