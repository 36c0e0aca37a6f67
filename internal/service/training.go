package service

import (
	"context"
	"time"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

// TrainingHistory reports when a user started logging workouts.
type TrainingHistory interface {
	TrainingSince(ctx context.Context, userID int64) (time.Time, bool, error)
}

// NoTrainingHistory is wired in when workout tracking is disabled.
type NoTrainingHistory struct{}

func (NoTrainingHistory) TrainingSince(context.Context, int64) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

const (
	intermediateAfterMonths = 12
	advancedAfterMonths     = 36
)

// ExperienceFromHistory maps time spent training to an experience level.
func ExperienceFromHistory(since, now time.Time) domain.ExperienceLevel {
	months := monthsBetween(since, now)
	switch {
	case months >= advancedAfterMonths:
		return domain.ExperienceAdvanced
	case months >= intermediateAfterMonths:
		return domain.ExperienceIntermediate
	default:
		return domain.ExperienceBeginner
	}
}

func monthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}
