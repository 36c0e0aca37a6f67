package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

var profileColumns = map[string]bool{
	"name":            true,
	"gender":          true,
	"birth_of_date":   true,
	"weight_lbs":      true,
	"height_in":       true,
	"goal_weight_lbs": true,
	"activity_level":  true,
	"experience":      true,
	"units":           true,
}

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, name, gender, birth_of_date, weight_lbs, height_in, goal_weight_lbs,
		        activity_level, experience, units, created_at, updated_at
		 FROM profiles WHERE user_id = ?`, userID,
	).Scan(
		&p.UserID, &p.Name, &p.Gender, &p.BirthOfDate, &p.WeightLbs, &p.HeightIn, &p.GoalWeightLbs,
		&p.ActivityLevel, &p.Experience, &p.Units, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// Upsert writes every stored column of p, creating the row if needed.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, name, gender, birth_of_date, weight_lbs, height_in,
		                       goal_weight_lbs, activity_level, experience, units)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   name = VALUES(name), gender = VALUES(gender), birth_of_date = VALUES(birth_of_date),
		   weight_lbs = VALUES(weight_lbs), height_in = VALUES(height_in),
		   goal_weight_lbs = VALUES(goal_weight_lbs), activity_level = VALUES(activity_level),
		   experience = VALUES(experience), units = VALUES(units)`,
		p.UserID, p.Name, p.Gender, p.BirthOfDate, p.WeightLbs, p.HeightIn,
		p.GoalWeightLbs, p.ActivityLevel, p.Experience, p.Units,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// Update sets the given columns only. Unknown columns are rejected before
// anything is written.
func (r *ProfileRepository) Update(ctx context.Context, userID int64, fields map[string]any) error {
	query, args, err := buildUpdate("profiles", "user_id", userID, profileColumns, fields)
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
