package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/domain"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
)

func TestTravelTimeEstimator_Estimate(t *testing.T) {
	origin := domain.Point{Lat: 52.2297, Lon: 21.0122}

	t.Run("road-based estimates from routing table", func(t *testing.T) {
		routingRepo := new(mockRoutingRepository)
		routingRepo.On("Table", mock.Anything, origin, mock.Anything).Return(&domain.RouteMatrix{
			Durations: []float64{240.5, 421.0},
			Distances: []float64{1800.2, 3193.4},
		}, nil)

		places := []domain.Place{
			{Kind: "school", Lat: 52.24, Lon: 21.02, DistanceM: 850},
			{Kind: "school", Lat: 52.25, Lon: 21.03, DistanceM: 3193},
		}

		e := NewTravelTimeEstimator(routingRepo, zap.NewNop())
		e.Estimate(context.Background(), origin, places)

		// 1800.2 m at 1.389 m/s -> 21.6 min, 4.167 m/s -> 7.2 min
		assert.Equal(t, 22, places[0].WalkMin)
		assert.Equal(t, 7, places[0].BikeMin)
		assert.Equal(t, 4, places[0].CarMin) // 240.5 s

		assert.Equal(t, 38, places[1].WalkMin)
		assert.Equal(t, 13, places[1].BikeMin)
		assert.Equal(t, 7, places[1].CarMin) // 421.0 s

		routingRepo.AssertExpectations(t)
	})

	t.Run("unreachable destination gets a straight-line estimate", func(t *testing.T) {
		routingRepo := new(mockRoutingRepository)
		// second destination unreachable: null durations/distances decode to 0
		routingRepo.On("Table", mock.Anything, origin, mock.Anything).Return(&domain.RouteMatrix{
			Durations: []float64{240.5, 0},
			Distances: []float64{1800.2, 0},
		}, nil)

		places := []domain.Place{
			{Kind: "school", Lat: 52.24, Lon: 21.02, DistanceM: 850},
			{Kind: "school", Lat: 52.25, Lon: 21.03, DistanceM: 3193},
		}

		e := NewTravelTimeEstimator(routingRepo, zap.NewNop())
		e.Estimate(context.Background(), origin, places)

		assert.Equal(t, 22, places[0].WalkMin)
		assert.Equal(t, 4, places[0].CarMin)

		// not 0 minutes: falls back to the 3193 m straight line
		assert.Equal(t, 38, places[1].WalkMin)
		assert.Equal(t, 13, places[1].BikeMin)
		assert.Equal(t, 5, places[1].CarMin)
	})

	t.Run("routing outage degrades to straight-line, never fails", func(t *testing.T) {
		routingRepo := new(mockRoutingRepository)
		routingRepo.On("Table", mock.Anything, origin, mock.Anything).
			Return(nil, pkgerrors.ErrProviderTimeout)

		places := []domain.Place{
			{Kind: "school", Lat: 52.24, Lon: 21.02, DistanceM: 850},
			{Kind: "school", Lat: 52.25, Lon: 21.03, DistanceM: 3193},
		}

		e := NewTravelTimeEstimator(routingRepo, zap.NewNop())
		e.Estimate(context.Background(), origin, places)

		// 850 m at 1.389 m/s -> 10.2 min
		assert.Equal(t, 10, places[0].WalkMin)
		assert.Equal(t, 3, places[0].BikeMin)
		assert.Equal(t, 1, places[0].CarMin) // 11.111 m/s fallback

		assert.Equal(t, 38, places[1].WalkMin)
		assert.Equal(t, 13, places[1].BikeMin)
		assert.Equal(t, 5, places[1].CarMin)
	})

	t.Run("no destinations, no routing call", func(t *testing.T) {
		routingRepo := new(mockRoutingRepository)

		e := NewTravelTimeEstimator(routingRepo, zap.NewNop())
		e.Estimate(context.Background(), origin, nil)

		routingRepo.AssertNotCalled(t, "Table")
	})
}
