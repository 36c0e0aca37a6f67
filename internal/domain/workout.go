package domain

import (
	"errors"
	"time"

	"go.uber.org/multierr"
)

type WorkoutSession struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Date            string    `json:"date"`
	DurationMinutes *int      `json:"duration_minutes"`
	Note            *string   `json:"note"`
	CreatedAt       time.Time `json:"created_at"`
}

func (w *WorkoutSession) Validate() error {
	var err error
	if _, perr := time.Parse(DateLayout, w.Date); perr != nil {
		err = multierr.Append(err, errors.New("date must be YYYY-MM-DD"))
	}
	if w.DurationMinutes != nil && (*w.DurationMinutes <= 0 || *w.DurationMinutes > 24*60) {
		err = multierr.Append(err, errors.New("duration_minutes must be between 1 and 1440"))
	}
	return err
}
