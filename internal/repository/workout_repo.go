package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

type WorkoutRepository struct {
	db *sql.DB
}

func NewWorkoutRepository(db *sql.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, w *domain.WorkoutSession) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO workout_sessions (user_id, date, duration_minutes, note) VALUES (?, ?, ?, ?)`,
		w.UserID, w.Date, w.DurationMinutes, w.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create workout session: %w", err)
	}
	return result.LastInsertId()
}

func (r *WorkoutRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.WorkoutSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, duration_minutes, note, created_at
		 FROM workout_sessions
		 WHERE user_id = ?
		 ORDER BY date DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.WorkoutSession
	for rows.Next() {
		var w domain.WorkoutSession
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.DurationMinutes, &w.Note, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workout session: %w", err)
		}
		sessions = append(sessions, w)
	}
	return sessions, rows.Err()
}

// FirstSessionDate returns the date of the earliest logged session, or
// false when the user has none.
func (r *WorkoutRepository) FirstSessionDate(ctx context.Context, userID int64) (time.Time, bool, error) {
	var first sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT MIN(date) FROM workout_sessions WHERE user_id = ?`, userID,
	).Scan(&first)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get first workout session: %w", err)
	}
	if !first.Valid {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(domain.DateLayout, first.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse workout date %q: %w", first.String, err)
	}
	return t, true, nil
}

// TrainingSince lets the repository serve as the service's training history.
func (r *WorkoutRepository) TrainingSince(ctx context.Context, userID int64) (time.Time, bool, error) {
	return r.FirstSessionDate(ctx, userID)
}
