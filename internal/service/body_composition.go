package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
	"github.com/yusufkecer/body-composition-backend/internal/domain"
	"github.com/yusufkecer/body-composition-backend/internal/metrics"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

type MeasurementStore interface {
	Latest(ctx context.Context, userID int64) (*domain.BodyMeasurementEntry, error)
}

// Overrides replace profile values for a single computation without
// persisting them.
type Overrides struct {
	Activity   *domain.ActivityLevel
	Experience *domain.ExperienceLevel
}

type BodyCompositionService struct {
	profiles     ProfileStore
	measurements MeasurementStore
	history      TrainingHistory
	calculator   *bodycomp.Calculator
	metrics      *metrics.Manager
	now          func() time.Time
}

func NewBodyCompositionService(
	profiles ProfileStore,
	measurements MeasurementStore,
	history TrainingHistory,
	calculator *bodycomp.Calculator,
	metricsManager *metrics.Manager,
) *BodyCompositionService {
	if history == nil {
		history = NoTrainingHistory{}
	}
	if calculator == nil {
		calculator = bodycomp.NewCalculator(bodycomp.DefaultConstants())
	}
	return &BodyCompositionService{
		profiles:     profiles,
		measurements: measurements,
		history:      history,
		calculator:   calculator,
		metrics:      metricsManager,
		now:          time.Now,
	}
}

// ForUser derives the user's metrics from their profile and latest
// measurement entry, in the user's preferred units.
func (s *BodyCompositionService) ForUser(ctx context.Context, userID int64, o Overrides) (bodycomp.DerivedMetrics, error) {
	var (
		profile *domain.Profile
		latest  *domain.BodyMeasurementEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.profiles.GetByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.measurements.Latest(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return bodycomp.DerivedMetrics{}, fmt.Errorf("failed to load inputs: %w", err)
	}
	if profile == nil {
		return bodycomp.DerivedMetrics{}, ErrProfileNotFound
	}

	p := *profile
	now := s.now()
	p.PopulateAge(now)
	if o.Activity != nil {
		p.ActivityLevel = o.Activity
	}
	experience := s.resolveExperience(ctx, p, o, now)
	p.Experience = &experience

	m := s.calculator.Compute(p, latest)
	s.metrics.ObserveComputation(m.Complete())
	if !m.Complete() {
		log.WithFields(log.Fields{"user_id": userID, "missing": m.Missing}).Debug("partial body composition")
	}
	return m.Localized(p.Units), nil
}

// resolveExperience prefers an explicit override, then the profile, then the
// workout history, then beginner.
func (s *BodyCompositionService) resolveExperience(ctx context.Context, p domain.Profile, o Overrides, now time.Time) domain.ExperienceLevel {
	for _, candidate := range []*domain.ExperienceLevel{o.Experience, p.Experience} {
		if candidate == nil {
			continue
		}
		if level, err := domain.ParseExperienceLevel(string(*candidate)); err == nil {
			return level
		}
	}

	since, ok, err := s.history.TrainingSince(ctx, p.UserID)
	if err != nil {
		log.WithError(err).WithField("user_id", p.UserID).Warn("training history unavailable")
		return domain.ExperienceBeginner
	}
	if !ok {
		return domain.ExperienceBeginner
	}
	return ExperienceFromHistory(since, now)
}
