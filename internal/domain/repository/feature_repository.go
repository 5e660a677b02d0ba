package repository

import (
	"context"

	"github.com/surroundings-microservice/internal/domain"
)

// FeatureRepository is a bounded-radius map-feature search. Implementations:
// the Overpass API client and the optional PostGIS planet_osm backend.
//
// An empty slice with a nil error is a valid "nothing found" outcome, not a
// failure.
type FeatureRepository interface {
	Search(ctx context.Context, origin domain.Point, radiusM float64, filters []domain.TagFilter) ([]domain.RawFeature, error)
}
