package bodycomp

import "fmt"

// WeightRange is an inclusive weight band.
type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// weightForBMI solves the BMI formula for weight at a fixed height.
func weightForBMI(bmi, heightIn float64) float64 {
	return bmi * heightIn * heightIn / 703
}

// IdealWeightRange returns the pound range that keeps BMI inside the
// configured healthy bounds at heightIn.
func (c *Calculator) IdealWeightRange(heightIn float64) (WeightRange, error) {
	if !positive(heightIn) {
		return WeightRange{}, fmt.Errorf("%w: height must be positive", ErrNotComputable)
	}
	return WeightRange{
		Min: round1(weightForBMI(c.constants.IdealWeight.BMILow, heightIn)),
		Max: round1(weightForBMI(c.constants.IdealWeight.BMIHigh, heightIn)),
	}, nil
}
