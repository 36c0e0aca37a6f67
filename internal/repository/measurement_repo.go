package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

const measurementColumns = `id, user_id, date, chest, waist, hips, arms, thighs, neck, note, created_at`

type MeasurementRepository struct {
	db *sql.DB
}

func NewMeasurementRepository(db *sql.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

func (r *MeasurementRepository) Create(ctx context.Context, m *domain.BodyMeasurementEntry) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO body_measurements (user_id, date, chest, waist, hips, arms, thighs, neck, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Date, m.Chest, m.Waist, m.Hips, m.Arms, m.Thighs, m.Neck, m.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create measurement: %w", err)
	}
	return result.LastInsertId()
}

// ListByUserID returns entries newest first.
func (r *MeasurementRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.BodyMeasurementEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+measurementColumns+`
		 FROM body_measurements
		 WHERE user_id = ?
		 ORDER BY date DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	defer rows.Close()

	var entries []domain.BodyMeasurementEntry
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *m)
	}
	return entries, rows.Err()
}

func (r *MeasurementRepository) Latest(ctx context.Context, userID int64) (*domain.BodyMeasurementEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+measurementColumns+`
		 FROM body_measurements
		 WHERE user_id = ?
		 ORDER BY date DESC, id DESC
		 LIMIT 1`, userID,
	)
	m, err := scanMeasurement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the entry only if it belongs to userID. It reports whether
// a row was removed.
func (r *MeasurementRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM body_measurements WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete measurement: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete measurement: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMeasurement(s scanner) (*domain.BodyMeasurementEntry, error) {
	var m domain.BodyMeasurementEntry
	err := s.Scan(&m.ID, &m.UserID, &m.Date, &m.Chest, &m.Waist, &m.Hips, &m.Arms, &m.Thighs, &m.Neck, &m.Note, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan measurement: %w", err)
	}
	return &m, nil
}
