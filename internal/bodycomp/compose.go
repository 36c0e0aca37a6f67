package bodycomp

import (
	"math"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

// Calculator derives body composition metrics from a profile and its latest
// measurements. It holds no state besides its constant tables and is safe for
// concurrent use.
type Calculator struct {
	constants Constants
}

func NewCalculator(c Constants) *Calculator {
	return &Calculator{constants: c}
}

func (c *Calculator) Constants() Constants {
	return c.constants
}

var defaultCalculator = NewCalculator(DefaultConstants())

// Compute derives metrics with the default constants.
func Compute(p domain.Profile, latest *domain.BodyMeasurementEntry) DerivedMetrics {
	return defaultCalculator.Compute(p, latest)
}

// Missing entries for inputs that are all present but cannot be combined,
// such as a waist measured smaller than the neck. The client should ask for
// the measurements again.
const (
	MissingBodyFatInputs = "body_fat_inputs"
	MissingEnergyInputs  = "energy_inputs"
)

// DerivedMetrics is recomputed on every read and never stored. A nil field
// means the value could not be computed from the inputs; Missing names the
// inputs to add. Mass values are in pounds unless Units is metric.
type DerivedMetrics struct {
	Units domain.UnitSystem `json:"units"`

	BMI         *float64     `json:"bmi"`
	BMICategory *BMICategory `json:"bmi_category"`

	BodyFatPercent     *float64         `json:"body_fat_percent"`
	BodyFatCategory    *BodyFatCategory `json:"body_fat_category"`
	BodyFatUnavailable bool             `json:"body_fat_unavailable"`
	LeanMass           *float64         `json:"lean_mass"`
	FatMass            *float64         `json:"fat_mass"`
	WaterWeight        *float64         `json:"water_weight"`

	BMR            *float64                         `json:"bmr"`
	ActivityLevel  *domain.ActivityLevel            `json:"activity_level"`
	TDEE           *float64                         `json:"tdee"`
	TDEEByActivity map[domain.ActivityLevel]float64 `json:"tdee_by_activity,omitempty"`

	IdealWeight                *WeightRange           `json:"ideal_weight"`
	Experience                 domain.ExperienceLevel `json:"experience"`
	MuscleGain                 []MuscleGainTier       `json:"muscle_gain"`
	LifetimeLeanMassPotential  *float64               `json:"lifetime_lean_mass_potential"`
	RemainingLeanMassPotential *float64               `json:"remaining_lean_mass_potential"`

	Missing []string `json:"missing"`
}

// Complete reports whether every metric could be derived.
func (m DerivedMetrics) Complete() bool {
	return len(m.Missing) == 0
}

func (c *Calculator) Compute(p domain.Profile, latest *domain.BodyMeasurementEntry) DerivedMetrics {
	m := DerivedMetrics{
		Units:      domain.UnitsImperial,
		Experience: domain.ExperienceBeginner,
		Missing:    []string{},
	}
	missing := func(names ...string) {
		for _, name := range names {
			seen := false
			for _, have := range m.Missing {
				if have == name {
					seen = true
					break
				}
			}
			if !seen {
				m.Missing = append(m.Missing, name)
			}
		}
	}

	weight := deref(p.WeightLbs)
	height := deref(p.HeightIn)
	if !positive(weight) {
		missing("weight")
	}
	if !positive(height) {
		missing("height")
	}

	if bmi, err := BMI(weight, height); err == nil {
		m.BMI = &bmi
		m.BMICategory = ptr(ClassifyBMI(bmi))
	}

	navy := NavyInput{Gender: p.Gender, HeightIn: height}
	if latest != nil {
		navy.WaistIn = deref(latest.Waist)
		navy.NeckIn = deref(latest.Neck)
		navy.HipIn = deref(latest.Hips)
	}
	if pct, err := c.BodyFatPercent(navy); err == nil {
		m.BodyFatPercent = &pct
		if cat, err := ClassifyBodyFat(p.Gender, pct); err == nil {
			m.BodyFatCategory = &cat
		}
		if lean, fat, err := Composition(weight, pct); err == nil {
			m.LeanMass = ptr(round1(lean))
			m.FatMass = ptr(round1(fat))
		}
	} else {
		m.BodyFatUnavailable = true
		if names := navy.Missing(); len(names) > 0 {
			missing(names...)
		} else {
			missing(MissingBodyFatInputs)
		}
	}

	if water, err := c.WaterWeight(p.Gender, weight, m.LeanMass); err == nil {
		m.WaterWeight = ptr(round1(water))
	}

	if p.Age == nil || *p.Age <= 0 || *p.Age > domain.MaxAge {
		missing("age")
	} else if bmr, err := BMR(p.Gender, weight, height, *p.Age); err != nil {
		if positive(weight) && positive(height) {
			missing(MissingEnergyInputs)
		}
	} else {
		m.BMR = ptr(math.Round(bmr))
		m.TDEEByActivity = make(map[domain.ActivityLevel]float64, len(domain.ActivityLevels))
		for _, level := range domain.ActivityLevels {
			if tdee, err := TDEE(bmr, level); err == nil {
				m.TDEEByActivity[level] = math.Round(tdee)
			}
		}
		if p.ActivityLevel != nil {
			if tdee, err := TDEE(bmr, *p.ActivityLevel); err == nil {
				m.ActivityLevel = ptr(*p.ActivityLevel)
				m.TDEE = ptr(math.Round(tdee))
			}
		}
	}
	if p.ActivityLevel == nil {
		missing("activity_level")
	} else if _, ok := ActivityMultiplier(*p.ActivityLevel); !ok {
		missing("activity_level")
	}

	var idealMax float64
	if r, err := c.IdealWeightRange(height); err == nil {
		m.IdealWeight = &r
		idealMax = r.Max
	}

	if p.Experience != nil {
		if _, err := domain.ParseExperienceLevel(string(*p.Experience)); err == nil {
			m.Experience = *p.Experience
		}
	}
	m.MuscleGain = c.MuscleGainTiers(m.Experience)

	reference := deref(p.GoalWeightLbs)
	if !positive(reference) {
		reference = idealMax
	}
	if potential, err := c.LifetimeLeanMassPotential(p.Gender, reference); err == nil {
		m.LifetimeLeanMassPotential = ptr(round1(potential))
		if m.LeanMass != nil {
			m.RemainingLeanMassPotential = ptr(round1(math.Max(0, potential-*m.LeanMass)))
		}
	}

	return m
}

// Localized returns a copy of m with mass values converted to units.
func (m DerivedMetrics) Localized(units domain.UnitSystem) DerivedMetrics {
	if units != domain.UnitsMetric || m.Units == domain.UnitsMetric {
		return m
	}
	out := m
	out.Units = domain.UnitsMetric
	toKg := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return ptr(round1(LbsToKg(*v)))
	}
	rangeToKg := func(r WeightRange) WeightRange {
		return WeightRange{Min: round1(LbsToKg(r.Min)), Max: round1(LbsToKg(r.Max))}
	}

	out.LeanMass = toKg(m.LeanMass)
	out.FatMass = toKg(m.FatMass)
	out.WaterWeight = toKg(m.WaterWeight)
	out.LifetimeLeanMassPotential = toKg(m.LifetimeLeanMassPotential)
	out.RemainingLeanMassPotential = toKg(m.RemainingLeanMassPotential)
	if m.IdealWeight != nil {
		out.IdealWeight = ptr(rangeToKg(*m.IdealWeight))
	}
	out.MuscleGain = make([]MuscleGainTier, len(m.MuscleGain))
	for i, t := range m.MuscleGain {
		t.Monthly = rangeToKg(t.Monthly)
		t.Yearly = rangeToKg(t.Yearly)
		out.MuscleGain[i] = t
	}
	return out
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
