package bodycomp

import (
	"fmt"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

type MuscleGainTier struct {
	Experience domain.ExperienceLevel `json:"experience"`
	Monthly    WeightRange            `json:"monthly"`
	Yearly     WeightRange            `json:"yearly"`
	Current    bool                   `json:"current"`
}

// MuscleGainTiers returns the lean-mass gain table for every experience
// level, flagging current.
func (c *Calculator) MuscleGainTiers(current domain.ExperienceLevel) []MuscleGainTier {
	tiers := make([]MuscleGainTier, 0, len(domain.ExperienceLevels))
	for _, level := range domain.ExperienceLevels {
		r := c.constants.MuscleGain[string(level)]
		tiers = append(tiers, MuscleGainTier{
			Experience: level,
			Monthly:    WeightRange{Min: r.MonthlyMinLbs, Max: r.MonthlyMaxLbs},
			Yearly:     WeightRange{Min: round1(r.MonthlyMinLbs * 12), Max: round1(r.MonthlyMaxLbs * 12)},
			Current:    level == current,
		})
	}
	return tiers
}

// LifetimeLeanMassPotential estimates the maximum lean mass reachable at a
// reference body weight, using the gender's body-frame constant.
func (c *Calculator) LifetimeLeanMassPotential(g domain.Gender, referenceLbs float64) (float64, error) {
	if !positive(referenceLbs) {
		return 0, fmt.Errorf("%w: reference weight must be positive", ErrNotComputable)
	}
	frame := c.constants.Frame.Unspecified
	switch g {
	case domain.GenderMale:
		frame = c.constants.Frame.Male
	case domain.GenderFemale:
		frame = c.constants.Frame.Female
	}
	return referenceLbs * frame, nil
}
