package bodycomp

import "fmt"

type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObeseI      BMICategory = "Obese I"
	BMIObeseII     BMICategory = "Obese II+"
)

// bmiBands partitions [0, inf) by lower bound, ascending.
var bmiBands = []struct {
	lower    float64
	category BMICategory
}{
	{0, BMIUnderweight},
	{18.5, BMINormal},
	{25, BMIOverweight},
	{30, BMIObeseI},
	{35, BMIObeseII},
}

// BMI returns 703 * weight / height^2 rounded to one decimal.
func BMI(weightLbs, heightIn float64) (float64, error) {
	if !positive(weightLbs) {
		return 0, fmt.Errorf("%w: weight must be positive", ErrNotComputable)
	}
	if !positive(heightIn) {
		return 0, fmt.Errorf("%w: height must be positive", ErrNotComputable)
	}
	bmi := 703 * weightLbs / (heightIn * heightIn)
	if !finite(bmi) {
		return 0, fmt.Errorf("%w: bmi out of range", ErrNotComputable)
	}
	return round1(bmi), nil
}

// ClassifyBMI picks the band with the largest lower bound not above bmi.
func ClassifyBMI(bmi float64) BMICategory {
	for i := len(bmiBands) - 1; i >= 0; i-- {
		if bmi >= bmiBands[i].lower {
			return bmiBands[i].category
		}
	}
	return BMIUnderweight
}
