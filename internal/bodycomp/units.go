package bodycomp

import (
	"fmt"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

const (
	lbsPerKg = 2.20462
	cmPerIn  = 2.54
)

func LbsToKg(lbs float64) float64 { return lbs / lbsPerKg }

func KgToLbs(kg float64) float64 { return kg * lbsPerKg }

func InchesToCm(in float64) float64 { return in * cmPerIn }

func CmToInches(cm float64) float64 { return cm / cmPerIn }

// ToImperialWeight converts a weight given in units to pounds.
func ToImperialWeight(v float64, units domain.UnitSystem) (float64, error) {
	switch units {
	case domain.UnitsImperial, "":
		return v, nil
	case domain.UnitsMetric:
		return KgToLbs(v), nil
	}
	return 0, fmt.Errorf("unknown unit system %q", units)
}

// ToImperialLength converts a length given in units to inches.
func ToImperialLength(v float64, units domain.UnitSystem) (float64, error) {
	switch units {
	case domain.UnitsImperial, "":
		return v, nil
	case domain.UnitsMetric:
		return CmToInches(v), nil
	}
	return 0, fmt.Errorf("unknown unit system %q", units)
}

// FromImperialWeight converts pounds to the display unit.
func FromImperialWeight(lbs float64, units domain.UnitSystem) float64 {
	if units == domain.UnitsMetric {
		return LbsToKg(lbs)
	}
	return lbs
}

// FromImperialLength converts inches to the display unit.
func FromImperialLength(in float64, units domain.UnitSystem) float64 {
	if units == domain.UnitsMetric {
		return InchesToCm(in)
	}
	return in
}

// NormalizeWeight rewrites *v in place from units to pounds. A nil v is left alone.
func NormalizeWeight(v *float64, units domain.UnitSystem) error {
	if v == nil {
		return nil
	}
	n, err := ToImperialWeight(*v, units)
	if err != nil {
		return err
	}
	*v = n
	return nil
}

// NormalizeLength rewrites *v in place from units to inches. A nil v is left alone.
func NormalizeLength(v *float64, units domain.UnitSystem) error {
	if v == nil {
		return nil
	}
	n, err := ToImperialLength(*v, units)
	if err != nil {
		return err
	}
	*v = n
	return nil
}

// NormalizeMeasurement converts every circumference of m from units to inches.
func NormalizeMeasurement(m *domain.BodyMeasurementEntry, units domain.UnitSystem) error {
	for _, v := range []*float64{m.Chest, m.Waist, m.Hips, m.Arms, m.Thighs, m.Neck} {
		if err := NormalizeLength(v, units); err != nil {
			return err
		}
	}
	return nil
}
