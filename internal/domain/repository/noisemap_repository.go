package repository

import (
	"context"

	"github.com/surroundings-microservice/internal/domain"
)

// NoiseMapRepository samples an official strategic noise map at a point.
// A nil reading with a nil error means the layer holds no data there
// (no-evidence, distinct from failure).
type NoiseMapRepository interface {
	GetNoiseLevel(ctx context.Context, p domain.Point, layer string) (*domain.NoiseReading, error)
}
