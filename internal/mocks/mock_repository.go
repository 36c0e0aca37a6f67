package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, userID int64, fields map[string]any) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

type MockMeasurementRepository struct {
	mock.Mock
}

func (m *MockMeasurementRepository) Create(ctx context.Context, entry *domain.BodyMeasurementEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMeasurementRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.BodyMeasurementEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BodyMeasurementEntry), args.Error(1)
}

func (m *MockMeasurementRepository) Latest(ctx context.Context, userID int64) (*domain.BodyMeasurementEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BodyMeasurementEntry), args.Error(1)
}

func (m *MockMeasurementRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

type MockWorkoutRepository struct {
	mock.Mock
}

func (m *MockWorkoutRepository) Create(ctx context.Context, w *domain.WorkoutSession) (int64, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkoutRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.WorkoutSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutSession), args.Error(1)
}

func (m *MockWorkoutRepository) TrainingSince(ctx context.Context, userID int64) (time.Time, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}
