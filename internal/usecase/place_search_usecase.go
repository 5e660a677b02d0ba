package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/domain"
	"github.com/surroundings-microservice/internal/domain/repository"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
	"github.com/surroundings-microservice/internal/pkg/utils"
	"github.com/surroundings-microservice/internal/usecase/dto"
)

// PlaceSearchUsecase answers "what is around this point" per category.
type PlaceSearchUsecase struct {
	featureRepo    repository.FeatureRepository
	estimator      *TravelTimeEstimator
	defaultRadiusM float64
	logger         *zap.Logger
}

func NewPlaceSearchUsecase(
	featureRepo repository.FeatureRepository,
	estimator *TravelTimeEstimator,
	defaultRadiusM float64,
	logger *zap.Logger,
) *PlaceSearchUsecase {
	return &PlaceSearchUsecase{
		featureRepo:    featureRepo,
		estimator:      estimator,
		defaultRadiusM: defaultRadiusM,
		logger:         logger,
	}
}

// SearchCategory runs a single category search around origin. An empty
// result maps to NOTHING_FOUND; provider errors propagate unchanged.
func (u *PlaceSearchUsecase) SearchCategory(ctx context.Context, origin domain.Point, radiusM float64, category string) (*dto.PlacesResponse, error) {
	if !domain.IsValidCategory(category) {
		return nil, pkgerrors.ErrInvalidCategory.WithMessage("unknown category: " + category)
	}
	if !utils.ValidateCoordinates(origin.Lat, origin.Lon) {
		return nil, pkgerrors.ErrInvalidCoordinates
	}
	if radiusM == 0 {
		radiusM = u.defaultRadiusM
	}
	if !utils.ValidateRadius(radiusM) {
		return nil, pkgerrors.ErrInvalidRadius
	}

	filters := domain.CategoryFilters[category]

	features, err := u.featureRepo.Search(ctx, origin, radiusM, filters)
	if err != nil {
		return nil, err
	}

	places := normalizeFeatures(origin, radiusM, filters, features)
	if len(places) == 0 {
		return nil, pkgerrors.ErrNothingFound.WithMessage("no " + category + " places found within radius")
	}

	u.estimator.Estimate(ctx, origin, places)

	u.logger.Debug("Category search completed",
		zap.String("category", category),
		zap.Float64("radius_m", radiusM),
		zap.Int("found", len(places)))

	return &dto.PlacesResponse{
		Category: category,
		Places:   places,
		Total:    len(places),
	}, nil
}

// Named category operations for programmatic callers; the HTTP surface
// routes through SearchCategory directly.

func (u *PlaceSearchUsecase) Education(ctx context.Context, origin domain.Point, radiusM float64) (*dto.PlacesResponse, error) {
	return u.SearchCategory(ctx, origin, radiusM, domain.CategoryEducation)
}

func (u *PlaceSearchUsecase) Finance(ctx context.Context, origin domain.Point, radiusM float64) (*dto.PlacesResponse, error) {
	return u.SearchCategory(ctx, origin, radiusM, domain.CategoryFinance)
}

func (u *PlaceSearchUsecase) Transport(ctx context.Context, origin domain.Point, radiusM float64) (*dto.PlacesResponse, error) {
	return u.SearchCategory(ctx, origin, radiusM, domain.CategoryTransport)
}

func (u *PlaceSearchUsecase) Infrastructure(ctx context.Context, origin domain.Point, radiusM float64) (*dto.PlacesResponse, error) {
	return u.SearchCategory(ctx, origin, radiusM, domain.CategoryInfrastructure)
}

func (u *PlaceSearchUsecase) GreenAreas(ctx context.Context, origin domain.Point, radiusM float64) (*dto.PlacesResponse, error) {
	return u.SearchCategory(ctx, origin, radiusM, domain.CategoryGreenAreas)
}

func (u *PlaceSearchUsecase) Water(ctx context.Context, origin domain.Point, radiusM float64) (*dto.PlacesResponse, error) {
	return u.SearchCategory(ctx, origin, radiusM, domain.CategoryWater)
}

func (u *PlaceSearchUsecase) Nuisances(ctx context.Context, origin domain.Point, radiusM float64) (*dto.PlacesResponse, error) {
	return u.SearchCategory(ctx, origin, radiusM, domain.CategoryNuisances)
}

// Surroundings runs every category concurrently and assembles a combined
// report. A category that finds nothing is reported with Found=false
// instead of failing the whole report; provider errors still propagate.
func (u *PlaceSearchUsecase) Surroundings(ctx context.Context, origin domain.Point, radiusM float64) (*dto.SurroundingsResponse, error) {
	if !utils.ValidateCoordinates(origin.Lat, origin.Lon) {
		return nil, pkgerrors.ErrInvalidCoordinates
	}
	if radiusM == 0 {
		radiusM = u.defaultRadiusM
	}
	if !utils.ValidateRadius(radiusM) {
		return nil, pkgerrors.ErrInvalidRadius
	}

	categories := domain.ValidCategories()
	results := make(map[string]dto.CategoryResult, len(categories))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, category := range categories {
		wg.Add(1)
		go func(category string) {
			defer wg.Done()

			resp, err := u.SearchCategory(ctx, origin, radiusM, category)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				results[category] = dto.CategoryResult{Places: resp.Places, Found: true}
			case errors.Is(err, pkgerrors.ErrNothingFound):
				results[category] = dto.CategoryResult{Places: []domain.Place{}, Found: false}
			default:
				if firstErr == nil {
					firstErr = err
				}
			}
		}(category)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return &dto.SurroundingsResponse{
		Origin:     origin,
		RadiusM:    radiusM,
		Categories: results,
	}, nil
}

// normalizeFeatures turns raw provider features into deduplicated,
// kind-labeled, distance-sorted places within the radius. Predicate order
// in filters decides the kind when a feature matches several.
func normalizeFeatures(origin domain.Point, radiusM float64, filters []domain.TagFilter, features []domain.RawFeature) []domain.Place {
	type featureKey struct {
		Type string
		ID   int64
	}

	seen := make(map[featureKey]bool, len(features))
	places := make([]domain.Place, 0, len(features))

	for i := range features {
		f := &features[i]

		key := featureKey{Type: f.Type, ID: f.ID}
		if seen[key] {
			continue
		}
		seen[key] = true

		kind, ok := kindFor(f.Tags, filters)
		if !ok {
			continue
		}

		point, ok := f.RepresentativePoint()
		if !ok {
			continue
		}

		dist := utils.HaversineDistance(origin.Lat, origin.Lon, point.Lat, point.Lon)
		if dist > radiusM {
			continue
		}

		var name *string
		if n := f.Tags["name"]; n != "" {
			name = &n
		}

		places = append(places, domain.Place{
			Name:      name,
			Kind:      kind,
			Lat:       point.Lat,
			Lon:       point.Lon,
			DistanceM: dist,
		})
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].DistanceM < places[j].DistanceM
	})

	return places
}

// kindFor resolves a feature's kind by the first matching predicate.
func kindFor(tags map[string]string, filters []domain.TagFilter) (string, bool) {
	for _, f := range filters {
		if tags[f.Key] == f.Value {
			return f.Value, true
		}
	}
	return "", false
}
