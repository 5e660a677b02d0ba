package usecase

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/domain"
	"github.com/surroundings-microservice/internal/domain/repository"
)

// Assumed travel speeds in m/s: 5 km/h walking, 15 km/h cycling, 40 km/h
// driving (straight-line fallback only; the road path takes the router's
// own duration).
const (
	walkSpeedMS        = 1.389
	bikeSpeedMS        = 4.167
	carFallbackSpeedMS = 11.111
)

// TravelTimeEstimator annotates places with walk, bike and car minutes
// from an origin. It asks the router for the whole batch in one table
// call and degrades to straight-line estimates when routing is down, so
// it never fails the search that called it.
type TravelTimeEstimator struct {
	routingRepo repository.RoutingRepository
	logger      *zap.Logger
}

func NewTravelTimeEstimator(routingRepo repository.RoutingRepository, logger *zap.Logger) *TravelTimeEstimator {
	return &TravelTimeEstimator{
		routingRepo: routingRepo,
		logger:      logger,
	}
}

// Estimate fills travel-time fields on places in place. Distances already
// set on the places (straight-line) are used for the degraded path.
func (e *TravelTimeEstimator) Estimate(ctx context.Context, origin domain.Point, places []domain.Place) {
	if len(places) == 0 {
		return
	}

	destinations := make([]domain.Point, len(places))
	for i, p := range places {
		destinations[i] = domain.Point{Lat: p.Lat, Lon: p.Lon}
	}

	matrix, err := e.routingRepo.Table(ctx, origin, destinations)
	if err != nil {
		e.logger.Warn("Routing unavailable, falling back to straight-line estimates",
			zap.Int("destinations", len(destinations)),
			zap.Error(err))
		for i := range places {
			e.estimateStraightLine(&places[i])
		}
		return
	}

	for i := range places {
		roadDistM := matrix.Distances[i]
		// The router reports unreachable destinations as null, which
		// decodes to 0. Those places get the straight-line estimate
		// instead of zero minutes.
		if roadDistM <= 0 {
			e.estimateStraightLine(&places[i])
			continue
		}
		places[i].WalkMin = minutesAtSpeed(roadDistM, walkSpeedMS)
		places[i].BikeMin = minutesAtSpeed(roadDistM, bikeSpeedMS)
		places[i].CarMin = int(math.Round(matrix.Durations[i] / 60))
	}
}

// estimateStraightLine derives all three modes from the straight-line
// distance already computed by the normalizer.
func (e *TravelTimeEstimator) estimateStraightLine(p *domain.Place) {
	p.WalkMin = minutesAtSpeed(p.DistanceM, walkSpeedMS)
	p.BikeMin = minutesAtSpeed(p.DistanceM, bikeSpeedMS)
	p.CarMin = minutesAtSpeed(p.DistanceM, carFallbackSpeedMS)
}

func minutesAtSpeed(distanceM, speedMS float64) int {
	return int(math.Round(distanceM / speedMS / 60))
}
