package bodycomp

import (
	"fmt"
	"math"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

type BodyFatCategory string

const (
	BodyFatEssential BodyFatCategory = "Essential"
	BodyFatAthletic  BodyFatCategory = "Athletic"
	BodyFatFitness   BodyFatCategory = "Fitness"
	BodyFatAverage   BodyFatCategory = "Average"
	BodyFatObese     BodyFatCategory = "Obese"
)

var bodyFatCategories = []BodyFatCategory{
	BodyFatEssential,
	BodyFatAthletic,
	BodyFatFitness,
	BodyFatAverage,
	BodyFatObese,
}

// Lower bounds of Athletic, Fitness, Average and Obese. Essential starts at 0.
var bodyFatBounds = map[domain.Gender][4]float64{
	domain.GenderMale:   {6, 14, 18, 25},
	domain.GenderFemale: {14, 21, 25, 32},
}

// NavyInput carries the US Navy method inputs in inches. A zero circumference
// means the measurement was not taken. HipIn is only read for women.
type NavyInput struct {
	Gender   domain.Gender
	HeightIn float64
	WaistIn  float64
	NeckIn   float64
	HipIn    float64
}

// Missing names the inputs the estimator needs for in.Gender that are absent.
func (in NavyInput) Missing() []string {
	var missing []string
	if in.Gender == domain.GenderUnspecified {
		missing = append(missing, "gender")
	}
	if !positive(in.HeightIn) {
		missing = append(missing, "height")
	}
	if !positive(in.WaistIn) {
		missing = append(missing, "waist")
	}
	if !positive(in.NeckIn) {
		missing = append(missing, "neck")
	}
	if in.Gender == domain.GenderFemale && !positive(in.HipIn) {
		missing = append(missing, "hips")
	}
	return missing
}

// BodyFatPercent estimates body fat with the US Navy circumference method,
// clamped to the configured plausible range and rounded to one decimal.
func (c *Calculator) BodyFatPercent(in NavyInput) (float64, error) {
	if missing := in.Missing(); len(missing) > 0 {
		return 0, fmt.Errorf("%w: missing %v", ErrBodyFatUnavailable, missing)
	}

	var pct float64
	switch in.Gender {
	case domain.GenderMale:
		d := in.WaistIn - in.NeckIn
		if d <= 0 {
			return 0, fmt.Errorf("%w: waist must exceed neck", ErrBodyFatUnavailable)
		}
		pct = 86.010*math.Log10(d) - 70.041*math.Log10(in.HeightIn) + 36.76
	case domain.GenderFemale:
		d := in.WaistIn + in.HipIn - in.NeckIn
		if d <= 0 {
			return 0, fmt.Errorf("%w: waist plus hips must exceed neck", ErrBodyFatUnavailable)
		}
		pct = 163.205*math.Log10(d) - 97.684*math.Log10(in.HeightIn) - 78.387
	default:
		return 0, fmt.Errorf("%w: unknown gender %q", ErrBodyFatUnavailable, in.Gender)
	}
	if !finite(pct) {
		return 0, fmt.Errorf("%w: estimate out of range", ErrBodyFatUnavailable)
	}

	pct = math.Max(c.constants.BodyFat.MinPercent, math.Min(c.constants.BodyFat.MaxPercent, pct))
	return round1(pct), nil
}

// ClassifyBodyFat maps a body-fat percentage onto the gender's category scale.
func ClassifyBodyFat(g domain.Gender, pct float64) (BodyFatCategory, error) {
	bounds, ok := bodyFatBounds[g]
	if !ok {
		return "", fmt.Errorf("%w: categories need a gender", ErrBodyFatUnavailable)
	}
	category := bodyFatCategories[0]
	for i, lower := range bounds {
		if pct >= lower {
			category = bodyFatCategories[i+1]
		}
	}
	return category, nil
}

// Composition splits weight into lean and fat mass.
func Composition(weightLbs, pct float64) (lean, fat float64, err error) {
	if !positive(weightLbs) {
		return 0, 0, fmt.Errorf("%w: weight must be positive", ErrNotComputable)
	}
	if !finite(pct) || pct < 0 || pct >= 100 {
		return 0, 0, fmt.Errorf("%w: body fat must be in [0, 100)", ErrNotComputable)
	}
	lean = weightLbs * (1 - pct/100)
	return lean, weightLbs - lean, nil
}

// WaterWeight estimates total body water in pounds. With a known lean mass it
// uses the lean-mass hydration fraction, otherwise a gender-keyed share of
// total weight.
func (c *Calculator) WaterWeight(g domain.Gender, weightLbs float64, leanLbs *float64) (float64, error) {
	if leanLbs != nil && positive(*leanLbs) {
		return *leanLbs * c.constants.Water.LeanMassFraction, nil
	}
	if !positive(weightLbs) {
		return 0, fmt.Errorf("%w: weight must be positive", ErrNotComputable)
	}
	fraction := c.constants.Water.UnspecifiedFraction
	switch g {
	case domain.GenderMale:
		fraction = c.constants.Water.MaleFraction
	case domain.GenderFemale:
		fraction = c.constants.Water.FemaleFraction
	}
	return weightLbs * fraction, nil
}
