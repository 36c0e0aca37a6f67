package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

type computeFlags struct {
	weight, height, goal float64
	waist, neck, hip     float64
	age                  int
	birth                string
	gender               string
	activity             string
	experience           string
	units                string
}

func newComputeCmd(loadCalculator func() (*bodycomp.Calculator, error)) *cobra.Command {
	var f computeFlags

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Derive metrics from a profile given as flags",
		Example: `  bodycalc compute --weight 180 --height 70 --gender male --age 30 --activity moderate --waist 34 --neck 15
  bodycalc compute --units metric --weight 82 --height 178 --gender female --birth 1994-02-11 --waist 80 --neck 33 --hip 98`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := loadCalculator()
			if err != nil {
				return err
			}
			p, entry, err := f.inputs(cmd, time.Now())
			if err != nil {
				return err
			}

			m := calc.Compute(p, entry).Localized(p.Units)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&f.weight, "weight", 0, "body weight (lb, or kg with --units metric)")
	flags.Float64Var(&f.height, "height", 0, "height (in, or cm with --units metric)")
	flags.Float64Var(&f.goal, "goal", 0, "goal weight")
	flags.Float64Var(&f.waist, "waist", 0, "waist circumference at the navel")
	flags.Float64Var(&f.neck, "neck", 0, "neck circumference")
	flags.Float64Var(&f.hip, "hip", 0, "hip circumference at the widest point")
	flags.IntVar(&f.age, "age", 0, "age in years")
	flags.StringVar(&f.birth, "birth", "", "birth date YYYY-MM-DD, used when --age is not given")
	flags.StringVar(&f.gender, "gender", "", "male, female or unspecified")
	flags.StringVar(&f.activity, "activity", "", "sedentary, light, moderate, active or extreme")
	flags.StringVar(&f.experience, "experience", "", "beginner, intermediate or advanced")
	flags.StringVar(&f.units, "units", string(domain.UnitsImperial), "imperial or metric")
	cmd.MarkFlagsMutuallyExclusive("age", "birth")

	return cmd
}

// inputs turns the flags into a profile and measurement entry in canonical
// units. Flags that were not set stay absent rather than zero.
func (f computeFlags) inputs(cmd *cobra.Command, now time.Time) (domain.Profile, *domain.BodyMeasurementEntry, error) {
	set := cmd.Flags().Changed

	units, err := domain.ParseUnitSystem(f.units)
	if err != nil {
		return domain.Profile{}, nil, err
	}
	gender, err := domain.ParseGender(f.gender)
	if err != nil {
		return domain.Profile{}, nil, err
	}
	p := domain.Profile{Gender: gender, Units: units}

	weight := func(name string, v float64) (*float64, error) {
		if !set(name) {
			return nil, nil
		}
		lbs, err := bodycomp.ToImperialWeight(v, units)
		return &lbs, err
	}
	length := func(name string, v float64) (*float64, error) {
		if !set(name) {
			return nil, nil
		}
		in, err := bodycomp.ToImperialLength(v, units)
		return &in, err
	}

	if p.WeightLbs, err = weight("weight", f.weight); err != nil {
		return domain.Profile{}, nil, err
	}
	if p.GoalWeightLbs, err = weight("goal", f.goal); err != nil {
		return domain.Profile{}, nil, err
	}
	if p.HeightIn, err = length("height", f.height); err != nil {
		return domain.Profile{}, nil, err
	}

	switch {
	case set("age"):
		age := f.age
		p.Age = &age
	case set("birth"):
		p.BirthOfDate = &f.birth
		p.PopulateAge(now)
		if p.Age == nil {
			return domain.Profile{}, nil, fmt.Errorf("invalid --birth %q", f.birth)
		}
	}

	if set("activity") {
		level, err := domain.ParseActivityLevel(f.activity)
		if err != nil {
			return domain.Profile{}, nil, err
		}
		p.ActivityLevel = &level
	}
	if set("experience") {
		level, err := domain.ParseExperienceLevel(f.experience)
		if err != nil {
			return domain.Profile{}, nil, err
		}
		p.Experience = &level
	}

	var entry *domain.BodyMeasurementEntry
	if set("waist") || set("neck") || set("hip") {
		entry = &domain.BodyMeasurementEntry{Date: now.Format(domain.DateLayout)}
		for _, m := range []struct {
			name string
			v    float64
			out  **float64
		}{
			{"waist", f.waist, &entry.Waist},
			{"neck", f.neck, &entry.Neck},
			{"hip", f.hip, &entry.Hips},
		} {
			if *m.out, err = length(m.name, m.v); err != nil {
				return domain.Profile{}, nil, err
			}
		}
	}

	return p, entry, nil
}
