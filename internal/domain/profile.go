package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/multierr"
)

// Profile holds the body stats a user maintains. Weight is in pounds and
// height in inches regardless of the unit system the user prefers.
type Profile struct {
	UserID        int64            `json:"user_id"`
	Name          *string          `json:"name"`
	Gender        Gender           `json:"gender"`
	BirthOfDate   *string          `json:"birthOfDate"`
	Age           *int             `json:"age,omitempty"`
	WeightLbs     *float64         `json:"weight_lbs"`
	HeightIn      *float64         `json:"height_in"`
	GoalWeightLbs *float64         `json:"goal_weight_lbs"`
	ActivityLevel *ActivityLevel   `json:"activity_level"`
	Experience    *ExperienceLevel `json:"experience"`
	Units         UnitSystem       `json:"units"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

const (
	MaxWeightLbs = 1500.0
	MaxHeightIn  = 120.0
	MaxAge       = 130
)

// AgeOn returns the number of whole years between birth and now.
func AgeOn(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Before(birth.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

// PopulateAge derives Age from BirthOfDate. Age stays nil when the birth date
// is missing, malformed or yields an implausible age.
func (p *Profile) PopulateAge(now time.Time) {
	p.Age = nil
	if p.BirthOfDate == nil {
		return
	}
	birth, err := time.Parse(DateLayout, *p.BirthOfDate)
	if err != nil {
		return
	}
	age := AgeOn(birth, now)
	if age <= 0 || age > MaxAge {
		return
	}
	p.Age = &age
}

func (p *Profile) Validate(now time.Time) error {
	var err error
	err = multierr.Append(err, checkRange("weight_lbs", p.WeightLbs, MaxWeightLbs))
	err = multierr.Append(err, checkRange("height_in", p.HeightIn, MaxHeightIn))
	err = multierr.Append(err, checkRange("goal_weight_lbs", p.GoalWeightLbs, MaxWeightLbs))
	if p.BirthOfDate != nil {
		birth, perr := time.Parse(DateLayout, *p.BirthOfDate)
		switch {
		case perr != nil:
			err = multierr.Append(err, errors.New("birthOfDate must be YYYY-MM-DD"))
		case birth.After(now):
			err = multierr.Append(err, errors.New("birthOfDate must not be in the future"))
		case AgeOn(birth, now) > MaxAge:
			err = multierr.Append(err, fmt.Errorf("age must not exceed %d", MaxAge))
		}
	}
	if _, gerr := ParseGender(string(p.Gender)); gerr != nil {
		err = multierr.Append(err, gerr)
	}
	if p.ActivityLevel != nil {
		if _, aerr := ParseActivityLevel(string(*p.ActivityLevel)); aerr != nil {
			err = multierr.Append(err, aerr)
		}
	}
	if p.Experience != nil {
		if _, xerr := ParseExperienceLevel(string(*p.Experience)); xerr != nil {
			err = multierr.Append(err, xerr)
		}
	}
	if _, uerr := ParseUnitSystem(string(p.Units)); uerr != nil {
		err = multierr.Append(err, uerr)
	}
	return err
}

func checkRange(field string, v *float64, max float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || *v <= 0 || *v > max {
		return fmt.Errorf("%s must be between 0 and %g", field, max)
	}
	return nil
}
