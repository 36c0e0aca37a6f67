package bodycomp

import (
	"fmt"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

// activityMultipliers scales BMR into TDEE per activity level.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary: 1.2,
	domain.ActivityLight:     1.375,
	domain.ActivityModerate:  1.55,
	domain.ActivityActive:    1.725,
	domain.ActivityExtreme:   1.9,
}

// Mifflin-St Jeor gender offsets. Unspecified uses their average.
var bmrOffsets = map[domain.Gender]float64{
	domain.GenderMale:        5,
	domain.GenderFemale:      -161,
	domain.GenderUnspecified: -78,
}

func ActivityMultiplier(level domain.ActivityLevel) (float64, bool) {
	m, ok := activityMultipliers[level]
	return m, ok
}

// BMR computes basal metabolic rate in kcal/day with the Mifflin-St Jeor
// equation, converting the imperial inputs to kilograms and centimetres.
func BMR(g domain.Gender, weightLbs, heightIn float64, age int) (float64, error) {
	if !positive(weightLbs) {
		return 0, fmt.Errorf("%w: weight must be positive", ErrNotComputable)
	}
	if !positive(heightIn) {
		return 0, fmt.Errorf("%w: height must be positive", ErrNotComputable)
	}
	if age <= 0 || age > domain.MaxAge {
		return 0, fmt.Errorf("%w: age must be between 1 and %d", ErrNotComputable, domain.MaxAge)
	}
	offset, ok := bmrOffsets[g]
	if !ok {
		offset = bmrOffsets[domain.GenderUnspecified]
	}
	bmr := 10*LbsToKg(weightLbs) + 6.25*InchesToCm(heightIn) - 5*float64(age) + offset
	if !positive(bmr) {
		return 0, fmt.Errorf("%w: bmr out of range", ErrNotComputable)
	}
	return bmr, nil
}

// TDEE scales bmr by the multiplier of level.
func TDEE(bmr float64, level domain.ActivityLevel) (float64, error) {
	if !positive(bmr) {
		return 0, fmt.Errorf("%w: bmr must be positive", ErrNotComputable)
	}
	m, ok := activityMultipliers[level]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownActivityLevel, level)
	}
	return bmr * m, nil
}
