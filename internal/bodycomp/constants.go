package bodycomp

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

// Constants holds the heuristic tables behind the ideal-weight, muscle-gain,
// body-fat clamp and water estimates. The BMI bands and activity multipliers
// are fixed and not part of it.
type Constants struct {
	IdealWeight IdealWeightConstants `toml:"ideal_weight"`
	BodyFat     BodyFatConstants     `toml:"body_fat"`
	Water       WaterConstants       `toml:"water"`
	MuscleGain  map[string]GainRange `toml:"muscle_gain"`
	Frame       FrameConstants       `toml:"frame"`
}

type IdealWeightConstants struct {
	BMILow  float64 `toml:"bmi_low"`
	BMIHigh float64 `toml:"bmi_high"`
}

type BodyFatConstants struct {
	MinPercent float64 `toml:"min_percent"`
	MaxPercent float64 `toml:"max_percent"`
}

type WaterConstants struct {
	LeanMassFraction    float64 `toml:"lean_mass_fraction"`
	MaleFraction        float64 `toml:"male_fraction"`
	FemaleFraction      float64 `toml:"female_fraction"`
	UnspecifiedFraction float64 `toml:"unspecified_fraction"`
}

// GainRange is a monthly lean-mass gain range in pounds.
type GainRange struct {
	MonthlyMinLbs float64 `toml:"monthly_min_lbs"`
	MonthlyMaxLbs float64 `toml:"monthly_max_lbs"`
}

// FrameConstants scale a reference weight into lifetime lean-mass potential.
type FrameConstants struct {
	Male        float64 `toml:"male"`
	Female      float64 `toml:"female"`
	Unspecified float64 `toml:"unspecified"`
}

func DefaultConstants() Constants {
	return Constants{
		IdealWeight: IdealWeightConstants{BMILow: 18.5, BMIHigh: 24.9},
		BodyFat:     BodyFatConstants{MinPercent: 2, MaxPercent: 60},
		Water: WaterConstants{
			LeanMassFraction:    0.73,
			MaleFraction:        0.60,
			FemaleFraction:      0.55,
			UnspecifiedFraction: 0.575,
		},
		MuscleGain: map[string]GainRange{
			string(domain.ExperienceBeginner):     {MonthlyMinLbs: 1.0, MonthlyMaxLbs: 1.5},
			string(domain.ExperienceIntermediate): {MonthlyMinLbs: 0.5, MonthlyMaxLbs: 1.0},
			string(domain.ExperienceAdvanced):     {MonthlyMinLbs: 0.25, MonthlyMaxLbs: 0.5},
		},
		Frame: FrameConstants{Male: 0.90, Female: 0.80, Unspecified: 0.85},
	}
}

// LoadConstants reads overrides from a TOML file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadConstants(path string) (Constants, error) {
	c := DefaultConstants()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Constants{}, fmt.Errorf("failed to decode constants %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Constants{}, err
	}
	if err := c.Validate(); err != nil {
		return Constants{}, fmt.Errorf("invalid constants %s: %w", path, err)
	}
	return c, nil
}

// DecodeConstants is LoadConstants for an in-memory TOML document.
func DecodeConstants(data string) (Constants, error) {
	c := DefaultConstants()
	md, err := toml.Decode(data, &c)
	if err != nil {
		return Constants{}, fmt.Errorf("failed to decode constants: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Constants{}, err
	}
	if err := c.Validate(); err != nil {
		return Constants{}, fmt.Errorf("invalid constants: %w", err)
	}
	return c, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown constants keys: %s", strings.Join(names, ", "))
}

// WriteTOML encodes c so it can be reviewed or used as an override file.
func (c Constants) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func (c Constants) Validate() error {
	var err error
	if c.IdealWeight.BMILow <= 0 || c.IdealWeight.BMIHigh <= c.IdealWeight.BMILow {
		err = multierr.Append(err, errors.New("ideal_weight: need 0 < bmi_low < bmi_high"))
	}
	if c.BodyFat.MinPercent <= 0 || c.BodyFat.MaxPercent <= c.BodyFat.MinPercent || c.BodyFat.MaxPercent >= 100 {
		err = multierr.Append(err, errors.New("body_fat: need 0 < min_percent < max_percent < 100"))
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"water.lean_mass_fraction", c.Water.LeanMassFraction},
		{"water.male_fraction", c.Water.MaleFraction},
		{"water.female_fraction", c.Water.FemaleFraction},
		{"water.unspecified_fraction", c.Water.UnspecifiedFraction},
		{"frame.male", c.Frame.Male},
		{"frame.female", c.Frame.Female},
		{"frame.unspecified", c.Frame.Unspecified},
	} {
		if f.value <= 0 || f.value > 1 {
			err = multierr.Append(err, fmt.Errorf("%s must be in (0, 1]", f.name))
		}
	}
	for _, level := range domain.ExperienceLevels {
		r, ok := c.MuscleGain[string(level)]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("muscle_gain.%s is missing", level))
			continue
		}
		if r.MonthlyMinLbs <= 0 || r.MonthlyMaxLbs < r.MonthlyMinLbs {
			err = multierr.Append(err, fmt.Errorf("muscle_gain.%s: need 0 < monthly_min_lbs <= monthly_max_lbs", level))
		}
	}
	names := make([]string, 0, len(c.MuscleGain))
	for name := range c.MuscleGain {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, perr := domain.ParseExperienceLevel(name); perr != nil {
			err = multierr.Append(err, fmt.Errorf("muscle_gain.%s is not an experience level", name))
		}
	}
	return err
}
