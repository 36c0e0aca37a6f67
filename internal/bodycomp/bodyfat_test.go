package bodycomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

func TestBodyFatPercent_Male(t *testing.T) {
	calc := NewCalculator(DefaultConstants())

	pct, err := calc.BodyFatPercent(NavyInput{
		Gender:   domain.GenderMale,
		HeightIn: 70,
		WaistIn:  34,
		NeckIn:   15,
	})
	require.NoError(t, err)
	assert.Equal(t, 17.5, pct)
}

func TestBodyFatPercent_Female(t *testing.T) {
	calc := NewCalculator(DefaultConstants())

	pct, err := calc.BodyFatPercent(NavyInput{
		Gender:   domain.GenderFemale,
		HeightIn: 65,
		WaistIn:  30,
		NeckIn:   13,
		HipIn:    38,
	})
	require.NoError(t, err)
	assert.Equal(t, 28.6, pct)
}

func TestBodyFatPercent_GenderChangesResult(t *testing.T) {
	calc := NewCalculator(DefaultConstants())
	in := NavyInput{HeightIn: 70, WaistIn: 34, NeckIn: 15, HipIn: 38}

	in.Gender = domain.GenderMale
	male, err := calc.BodyFatPercent(in)
	require.NoError(t, err)

	in.Gender = domain.GenderFemale
	female, err := calc.BodyFatPercent(in)
	require.NoError(t, err)

	assert.NotEqual(t, male, female)
}

func TestBodyFatPercent_MaleMonotonic(t *testing.T) {
	calc := NewCalculator(DefaultConstants())

	prev := 0.0
	for waist := 30.0; waist <= 44; waist += 0.5 {
		pct, err := calc.BodyFatPercent(NavyInput{Gender: domain.GenderMale, HeightIn: 70, WaistIn: waist, NeckIn: 15})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pct, prev, "waist %v", waist)
		prev = pct
	}

	prev = 100
	for neck := 13.0; neck <= 19; neck += 0.5 {
		pct, err := calc.BodyFatPercent(NavyInput{Gender: domain.GenderMale, HeightIn: 70, WaistIn: 36, NeckIn: neck})
		require.NoError(t, err)
		assert.LessOrEqual(t, pct, prev, "neck %v", neck)
		prev = pct
	}
}

func TestBodyFatPercent_Clamped(t *testing.T) {
	calc := NewCalculator(DefaultConstants())

	low, err := calc.BodyFatPercent(NavyInput{Gender: domain.GenderMale, HeightIn: 70, WaistIn: 28, NeckIn: 17})
	require.NoError(t, err)
	assert.Equal(t, 2.0, low)

	high, err := calc.BodyFatPercent(NavyInput{Gender: domain.GenderMale, HeightIn: 50, WaistIn: 70, NeckIn: 12})
	require.NoError(t, err)
	assert.Equal(t, 60.0, high)
}

func TestBodyFatPercent_Unavailable(t *testing.T) {
	calc := NewCalculator(DefaultConstants())

	testCases := []struct {
		name        string
		in          NavyInput
		wantMissing []string
	}{
		{
			name:        "no gender",
			in:          NavyInput{HeightIn: 70, WaistIn: 34, NeckIn: 15},
			wantMissing: []string{"gender"},
		},
		{
			name:        "male without neck",
			in:          NavyInput{Gender: domain.GenderMale, HeightIn: 70, WaistIn: 34},
			wantMissing: []string{"neck"},
		},
		{
			name:        "female without hips",
			in:          NavyInput{Gender: domain.GenderFemale, HeightIn: 65, WaistIn: 30, NeckIn: 13},
			wantMissing: []string{"hips"},
		},
		{
			name:        "no height",
			in:          NavyInput{Gender: domain.GenderMale, WaistIn: 34, NeckIn: 15},
			wantMissing: []string{"height"},
		},
		{
			name: "neck wider than waist",
			in:   NavyInput{Gender: domain.GenderMale, HeightIn: 70, WaistIn: 15, NeckIn: 16},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pct, err := calc.BodyFatPercent(tc.in)
			require.ErrorIs(t, err, ErrBodyFatUnavailable)
			assert.Zero(t, pct)
			assert.Equal(t, tc.wantMissing, tc.in.Missing())
		})
	}
}

func TestClassifyBodyFat(t *testing.T) {
	testCases := []struct {
		gender domain.Gender
		pct    float64
		want   BodyFatCategory
	}{
		{domain.GenderMale, 4, BodyFatEssential},
		{domain.GenderMale, 6, BodyFatAthletic},
		{domain.GenderMale, 17.5, BodyFatFitness},
		{domain.GenderMale, 20, BodyFatAverage},
		{domain.GenderMale, 25, BodyFatObese},
		{domain.GenderFemale, 12, BodyFatEssential},
		{domain.GenderFemale, 17.5, BodyFatAthletic},
		{domain.GenderFemale, 21, BodyFatFitness},
		{domain.GenderFemale, 28.6, BodyFatAverage},
		{domain.GenderFemale, 40, BodyFatObese},
	}

	for _, tc := range testCases {
		got, err := ClassifyBodyFat(tc.gender, tc.pct)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %v", tc.gender, tc.pct)
	}

	_, err := ClassifyBodyFat(domain.GenderUnspecified, 20)
	assert.ErrorIs(t, err, ErrBodyFatUnavailable)
}

func TestComposition(t *testing.T) {
	lean, fat, err := Composition(180, 17.5)
	require.NoError(t, err)
	assert.InDelta(t, 148.5, lean, 1e-9)
	assert.InDelta(t, 31.5, fat, 1e-9)
	assert.InDelta(t, 180, lean+fat, 1e-9)

	_, _, err = Composition(0, 17.5)
	assert.ErrorIs(t, err, ErrNotComputable)
	_, _, err = Composition(180, 100)
	assert.ErrorIs(t, err, ErrNotComputable)
}

func TestWaterWeight(t *testing.T) {
	calc := NewCalculator(DefaultConstants())

	lean := 148.5
	water, err := calc.WaterWeight(domain.GenderMale, 180, &lean)
	require.NoError(t, err)
	assert.InDelta(t, 108.405, water, 1e-9)

	water, err = calc.WaterWeight(domain.GenderFemale, 140, nil)
	require.NoError(t, err)
	assert.InDelta(t, 77, water, 1e-9)

	water, err = calc.WaterWeight(domain.GenderUnspecified, 200, nil)
	require.NoError(t, err)
	assert.InDelta(t, 115, water, 1e-9)

	_, err = calc.WaterWeight(domain.GenderMale, 0, nil)
	assert.ErrorIs(t, err, ErrNotComputable)
}
