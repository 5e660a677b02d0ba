package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/surroundings-microservice/internal/domain"
)

type mockFeatureRepository struct {
	mock.Mock
}

func (m *mockFeatureRepository) Search(ctx context.Context, origin domain.Point, radiusM float64, filters []domain.TagFilter) ([]domain.RawFeature, error) {
	args := m.Called(ctx, origin, radiusM, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawFeature), args.Error(1)
}

type mockRoutingRepository struct {
	mock.Mock
}

func (m *mockRoutingRepository) Table(ctx context.Context, origin domain.Point, destinations []domain.Point) (*domain.RouteMatrix, error) {
	args := m.Called(ctx, origin, destinations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteMatrix), args.Error(1)
}

type mockNoiseMapRepository struct {
	mock.Mock
}

func (m *mockNoiseMapRepository) GetNoiseLevel(ctx context.Context, p domain.Point, layer string) (*domain.NoiseReading, error) {
	args := m.Called(ctx, p, layer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NoiseReading), args.Error(1)
}

type mockLandslideRegistryRepository struct {
	mock.Mock
}

func (m *mockLandslideRegistryRepository) GetByPoint(ctx context.Context, p domain.Point) (*domain.LandslideRecord, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandslideRecord), args.Error(1)
}
