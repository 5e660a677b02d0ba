package repository

import (
	"context"

	"github.com/surroundings-microservice/internal/domain"
)

// RoutingRepository computes road-network durations and distances from one
// origin to many destinations in a single batched call.
type RoutingRepository interface {
	Table(ctx context.Context, origin domain.Point, destinations []domain.Point) (*domain.RouteMatrix, error)
}
