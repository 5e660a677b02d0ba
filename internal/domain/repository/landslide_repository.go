package repository

import (
	"context"

	"github.com/surroundings-microservice/internal/domain"
)

// LandslideRegistryRepository looks up the official landslide registry by
// point. A nil record with a nil error means the point is outside all mapped
// landslide areas.
type LandslideRegistryRepository interface {
	GetByPoint(ctx context.Context, p domain.Point) (*domain.LandslideRecord, error)
}
