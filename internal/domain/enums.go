package domain

import (
	"fmt"
	"strings"
)

const DateLayout = "2006-01-02"

type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
)

func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified", "other":
		return GenderUnspecified, nil
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	}
	return GenderUnspecified, fmt.Errorf("unknown gender %q", s)
}

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
	ActivityExtreme   ActivityLevel = "extreme"
)

// ActivityLevels lists every level in ascending order of energy expenditure.
var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityExtreme,
}

// ParseActivityLevel also accepts "very_active", the name older clients send for extreme.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "very_active" {
		return ActivityExtreme, nil
	}
	for _, l := range ActivityLevels {
		if string(l) == v {
			return l, nil
		}
	}
	return "", fmt.Errorf("activity level must be one of: sedentary, light, moderate, active, extreme")
}

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

var ExperienceLevels = []ExperienceLevel{
	ExperienceBeginner,
	ExperienceIntermediate,
	ExperienceAdvanced,
}

func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	v := ExperienceLevel(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range ExperienceLevels {
		if l == v {
			return l, nil
		}
	}
	return "", fmt.Errorf("experience must be one of: beginner, intermediate, advanced")
}

type UnitSystem string

const (
	UnitsImperial UnitSystem = "imperial"
	UnitsMetric   UnitSystem = "metric"
)

// ParseUnitSystem defaults to imperial, the unit system values are stored in.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "imperial":
		return UnitsImperial, nil
	case "metric":
		return UnitsMetric, nil
	}
	return "", fmt.Errorf("units must be one of: imperial, metric")
}
