package domain

import (
	"errors"
	"time"

	"go.uber.org/multierr"
)

// MaxCircumferenceIn bounds every circumference measurement.
const MaxCircumferenceIn = 100.0

// BodyMeasurementEntry is a dated snapshot of circumference measurements in
// inches. Entries are append-only: they are created and deleted, never edited.
type BodyMeasurementEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      string    `json:"date"`
	Chest     *float64  `json:"chest"`
	Waist     *float64  `json:"waist"`
	Hips      *float64  `json:"hips"`
	Arms      *float64  `json:"arms"`
	Thighs    *float64  `json:"thighs"`
	Neck      *float64  `json:"neck"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type circumference struct {
	name  string
	value *float64
}

func (m *BodyMeasurementEntry) circumferences() []circumference {
	return []circumference{
		{"chest", m.Chest},
		{"waist", m.Waist},
		{"hips", m.Hips},
		{"arms", m.Arms},
		{"thighs", m.Thighs},
		{"neck", m.Neck},
	}
}

func (m *BodyMeasurementEntry) Validate() error {
	var err error
	if _, perr := time.Parse(DateLayout, m.Date); perr != nil {
		err = multierr.Append(err, errors.New("date must be YYYY-MM-DD"))
	}
	present := 0
	for _, c := range m.circumferences() {
		if c.value == nil {
			continue
		}
		present++
		err = multierr.Append(err, checkRange(c.name, c.value, MaxCircumferenceIn))
	}
	if present == 0 {
		err = multierr.Append(err, errors.New("at least one measurement is required"))
	}
	return err
}
