package bodycomp

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

func fullProfile() domain.Profile {
	weight, height, age := 180.0, 70.0, 30
	activity := domain.ActivityModerate
	return domain.Profile{
		UserID:        7,
		Gender:        domain.GenderMale,
		Age:           &age,
		WeightLbs:     &weight,
		HeightIn:      &height,
		ActivityLevel: &activity,
		Units:         domain.UnitsImperial,
	}
}

func latestEntry() *domain.BodyMeasurementEntry {
	waist, neck := 34.0, 15.0
	return &domain.BodyMeasurementEntry{Date: "2026-10-01", Waist: &waist, Neck: &neck}
}

func TestCompute_Complete(t *testing.T) {
	m := Compute(fullProfile(), latestEntry())

	assert.True(t, m.Complete(), "missing: %v", m.Missing)
	assert.Empty(t, m.Missing)

	require.NotNil(t, m.BMI)
	assert.Equal(t, 25.8, *m.BMI)
	assert.Equal(t, BMIOverweight, *m.BMICategory)

	require.NotNil(t, m.BodyFatPercent)
	assert.Equal(t, 17.5, *m.BodyFatPercent)
	assert.Equal(t, BodyFatFitness, *m.BodyFatCategory)
	assert.False(t, m.BodyFatUnavailable)
	assert.Equal(t, 148.5, *m.LeanMass)
	assert.Equal(t, 31.5, *m.FatMass)
	assert.Equal(t, 108.4, *m.WaterWeight)

	assert.Equal(t, 1783.0, *m.BMR)
	assert.Equal(t, 2763.0, *m.TDEE)
	assert.Equal(t, domain.ActivityModerate, *m.ActivityLevel)
	assert.Equal(t, map[domain.ActivityLevel]float64{
		domain.ActivitySedentary: 2139,
		domain.ActivityLight:     2451,
		domain.ActivityModerate:  2763,
		domain.ActivityActive:    3075,
		domain.ActivityExtreme:   3387,
	}, m.TDEEByActivity)

	assert.Equal(t, &WeightRange{Min: 128.9, Max: 173.6}, m.IdealWeight)
	assert.Equal(t, domain.ExperienceBeginner, m.Experience)
	require.Len(t, m.MuscleGain, 3)
	assert.True(t, m.MuscleGain[0].Current)
	assert.Equal(t, 156.2, *m.LifetimeLeanMassPotential)
	assert.Equal(t, 7.7, *m.RemainingLeanMassPotential)
}

func TestCompute_GoalWeightDrivesPotential(t *testing.T) {
	p := fullProfile()
	goal := 190.0
	experience := domain.ExperienceAdvanced
	p.GoalWeightLbs = &goal
	p.Experience = &experience

	m := Compute(p, latestEntry())
	assert.Equal(t, 171.0, *m.LifetimeLeanMassPotential)
	assert.Equal(t, 22.5, *m.RemainingLeanMassPotential)
	assert.Equal(t, domain.ExperienceAdvanced, m.Experience)
	assert.True(t, m.MuscleGain[2].Current)
}

func TestCompute_NoMeasurements(t *testing.T) {
	m := Compute(fullProfile(), nil)

	assert.True(t, m.BodyFatUnavailable)
	assert.Nil(t, m.BodyFatPercent)
	assert.Nil(t, m.BodyFatCategory)
	assert.Nil(t, m.LeanMass)
	assert.Nil(t, m.FatMass)
	assert.Nil(t, m.RemainingLeanMassPotential)
	assert.Equal(t, []string{"waist", "neck"}, m.Missing)

	require.NotNil(t, m.WaterWeight)
	assert.Equal(t, 108.0, *m.WaterWeight)
	assert.NotNil(t, m.BMI)
	assert.NotNil(t, m.TDEE)
}

func TestCompute_FemaleNeedsHips(t *testing.T) {
	p := fullProfile()
	p.Gender = domain.GenderFemale

	m := Compute(p, latestEntry())
	assert.True(t, m.BodyFatUnavailable)
	assert.Equal(t, []string{"hips"}, m.Missing)

	hips := 38.0
	entry := latestEntry()
	entry.Hips = &hips
	m = Compute(p, entry)
	assert.False(t, m.BodyFatUnavailable)
	assert.NotNil(t, m.BodyFatPercent)
}

func TestCompute_ImplausibleCircumferences(t *testing.T) {
	waist, neck, hips := 14.0, 15.0, 4.0

	m := Compute(fullProfile(), &domain.BodyMeasurementEntry{Date: "2026-10-01", Waist: &waist, Neck: &neck})
	assert.True(t, m.BodyFatUnavailable)
	assert.Nil(t, m.BodyFatPercent)
	assert.Equal(t, []string{MissingBodyFatInputs}, m.Missing)
	assert.False(t, m.Complete())

	female := fullProfile()
	female.Gender = domain.GenderFemale
	waist = 10
	m = Compute(female, &domain.BodyMeasurementEntry{Date: "2026-10-01", Waist: &waist, Neck: &neck, Hips: &hips})
	assert.True(t, m.BodyFatUnavailable)
	assert.Equal(t, []string{MissingBodyFatInputs}, m.Missing)
	assert.False(t, m.Complete())
}

func TestCompute_EnergyNotComputable(t *testing.T) {
	p := fullProfile()
	weight, height, age := 1.0, 20.0, 100
	p.WeightLbs, p.HeightIn, p.Age = &weight, &height, &age

	m := Compute(p, latestEntry())
	assert.Nil(t, m.BMR)
	assert.Nil(t, m.TDEE)
	assert.Empty(t, m.TDEEByActivity)
	assert.Contains(t, m.Missing, MissingEnergyInputs)
	assert.False(t, m.Complete())

	for _, bad := range []int{0, -3, domain.MaxAge + 1} {
		p := fullProfile()
		p.Age = &bad
		m := Compute(p, latestEntry())
		assert.Nil(t, m.BMR)
		assert.Equal(t, []string{"age"}, m.Missing, "age %d", bad)
	}
}

func TestCompute_NotComputable(t *testing.T) {
	zero := 0.0
	testCases := []struct {
		name    string
		mutate  func(p *domain.Profile)
		missing []string
	}{
		{
			name:    "no height",
			mutate:  func(p *domain.Profile) { p.HeightIn = nil },
			missing: []string{"height"},
		},
		{
			name:    "zero height",
			mutate:  func(p *domain.Profile) { p.HeightIn = &zero },
			missing: []string{"height"},
		},
		{
			name:    "no weight",
			mutate:  func(p *domain.Profile) { p.WeightLbs = nil },
			missing: []string{"weight"},
		},
		{
			name:    "no age",
			mutate:  func(p *domain.Profile) { p.Age = nil },
			missing: []string{"age"},
		},
		{
			name:    "no activity",
			mutate:  func(p *domain.Profile) { p.ActivityLevel = nil },
			missing: []string{"activity_level"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := fullProfile()
			tc.mutate(&p)
			m := Compute(p, latestEntry())

			for _, name := range tc.missing {
				assert.Contains(t, m.Missing, name)
			}
			assert.False(t, m.Complete())

			// Every numeric field must be absent or finite.
			raw, err := json.Marshal(m)
			require.NoError(t, err, "NaN or Inf would fail to marshal")
			assert.NotContains(t, string(raw), "NaN")
		})
	}
}

func TestCompute_EmptyProfile(t *testing.T) {
	m := Compute(domain.Profile{}, nil)

	assert.Nil(t, m.BMI)
	assert.Nil(t, m.BMR)
	assert.Nil(t, m.TDEE)
	assert.Nil(t, m.IdealWeight)
	assert.Nil(t, m.WaterWeight)
	assert.Nil(t, m.LifetimeLeanMassPotential)
	assert.True(t, m.BodyFatUnavailable)
	assert.ElementsMatch(t, []string{"weight", "height", "gender", "waist", "neck", "age", "activity_level"}, m.Missing)
	assert.Len(t, m.MuscleGain, 3)
}

func TestCompute_Pure(t *testing.T) {
	p := fullProfile()
	entry := latestEntry()
	first := Compute(p, entry)
	second := Compute(p, entry)
	assert.Equal(t, first, second)
	assert.Equal(t, 180.0, *p.WeightLbs)
	assert.Equal(t, 34.0, *entry.Waist)
}

func TestDerivedMetrics_Localized(t *testing.T) {
	m := Compute(fullProfile(), latestEntry())
	metric := m.Localized(domain.UnitsMetric)

	assert.Equal(t, domain.UnitsMetric, metric.Units)
	assert.Equal(t, 67.4, *metric.LeanMass)
	assert.Equal(t, &WeightRange{Min: 58.5, Max: 78.7}, metric.IdealWeight)
	assert.Equal(t, WeightRange{Min: 0.5, Max: 0.7}, metric.MuscleGain[0].Monthly)
	assert.Equal(t, *m.BMI, *metric.BMI)
	assert.Equal(t, *m.TDEE, *metric.TDEE)

	// the source stays in pounds
	assert.Equal(t, domain.UnitsImperial, m.Units)
	assert.Equal(t, 148.5, *m.LeanMass)
	assert.Equal(t, WeightRange{Min: 1, Max: 1.5}, m.MuscleGain[0].Monthly)

	assert.Equal(t, m, m.Localized(domain.UnitsImperial))
	assert.False(t, math.IsNaN(*metric.WaterWeight))
}
