package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/domain"
	"github.com/surroundings-microservice/internal/domain/repository"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
	"github.com/surroundings-microservice/internal/pkg/utils"
)

// Emitter heuristic parameters. Base levels are dB at the reference
// distance; attenuation follows 20*log10(d/ref) beyond it.
const (
	noiseSearchRadiusM  = 2000
	noiseRefDistanceM   = 100
	backgroundNoiseDB   = 40
	maxReportedEmitters = 10
)

// Base emission levels per emitter kind, dB at the reference distance.
var emitterBaseDB = map[string]float64{
	"motorway":   78,
	"trunk":      75,
	"primary":    72,
	"rail":       70,
	"aerodrome":  88,
	"industrial": 65,
}

// NoiseUsecase evaluates noise exposure at a point. Official strategic
// noise maps are preferred; an emitter heuristic over map features is the
// last resort. The risk aggregator reuses the same evaluation.
type NoiseUsecase struct {
	noiseMapRepo repository.NoiseMapRepository
	featureRepo  repository.FeatureRepository
	voivodeship  string
	logger       *zap.Logger
}

func NewNoiseUsecase(
	noiseMapRepo repository.NoiseMapRepository,
	featureRepo repository.FeatureRepository,
	voivodeship string,
	logger *zap.Logger,
) *NoiseUsecase {
	return &NoiseUsecase{
		noiseMapRepo: noiseMapRepo,
		featureRepo:  featureRepo,
		voivodeship:  voivodeship,
		logger:       logger,
	}
}

// Evaluate resolves the noise level at origin, trying the configured
// voivodeship layer, then other voivodeship layers, then the emitter
// heuristic. It fails only when every source fails.
func (u *NoiseUsecase) Evaluate(ctx context.Context, origin domain.Point) (*domain.Noise, error) {
	if !utils.ValidateCoordinates(origin.Lat, origin.Lon) {
		return nil, pkgerrors.ErrInvalidCoordinates
	}

	if reading := u.readOfficialMaps(ctx, origin); reading != nil {
		return noiseFromReading(reading), nil
	}

	noise, err := u.emitterHeuristic(ctx, origin)
	if err != nil {
		u.logger.Warn("All noise sources failed", zap.Error(err))
		return nil, pkgerrors.ErrProviderFailure.WithMessage("noise level could not be determined from any source")
	}
	return noise, nil
}

// readOfficialMaps probes strategic noise map layers in preference order.
// Layer failures and empty layers both move on to the next layer.
func (u *NoiseUsecase) readOfficialMaps(ctx context.Context, origin domain.Point) *domain.NoiseReading {
	layers := make([]string, 0, len(fallbackNoiseVoivodeships)+1)
	if u.voivodeship != "" {
		layers = append(layers, noiseLayerFor(u.voivodeship))
	}
	for _, v := range fallbackNoiseVoivodeships {
		layer := noiseLayerFor(v)
		if u.voivodeship != "" && layer == noiseLayerFor(u.voivodeship) {
			continue
		}
		layers = append(layers, layer)
	}

	for _, layer := range layers {
		reading, err := u.noiseMapRepo.GetNoiseLevel(ctx, origin, layer)
		if err != nil {
			u.logger.Debug("Noise layer failed, trying next",
				zap.String("layer", layer),
				zap.Error(err))
			continue
		}
		if reading != nil {
			return reading
		}
	}
	return nil
}

// emitterHeuristic estimates the level from nearby noise emitters when no
// official map covers the point.
func (u *NoiseUsecase) emitterHeuristic(ctx context.Context, origin domain.Point) (*domain.Noise, error) {
	features, err := u.featureRepo.Search(ctx, origin, noiseSearchRadiusM, domain.NoiseEmitterFilters)
	if err != nil {
		return nil, err
	}

	emitters := normalizeFeatures(origin, noiseSearchRadiusM, domain.NoiseEmitterFilters, features)
	if len(emitters) == 0 {
		noise := noiseFromLevel(backgroundNoiseDB, "osm_heuristic")
		noise.Description = "No significant noise emitters nearby; background level assumed"
		return noise, nil
	}

	sources := make([]domain.NoiseSource, 0, len(emitters))
	for _, e := range emitters {
		base, ok := emitterBaseDB[e.Kind]
		if !ok {
			continue
		}
		name := e.Kind
		if e.Name != nil {
			name = *e.Name
		}
		sources = append(sources, domain.NoiseSource{
			Type:       e.Kind,
			Name:       name,
			DistanceKm: e.DistanceM / 1000,
			ImpactDB:   attenuate(base, e.DistanceM),
			Lat:        e.Lat,
			Lon:        e.Lon,
		})
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].ImpactDB > sources[j].ImpactDB
	})
	if len(sources) > maxReportedEmitters {
		sources = sources[:maxReportedEmitters]
	}

	noise := noiseFromLevel(energeticSum(sources), "osm_heuristic")
	noise.Sources = sources
	return noise, nil
}

// attenuate applies distance decay to a base emission level.
func attenuate(baseDB, distanceM float64) float64 {
	if distanceM <= noiseRefDistanceM {
		return baseDB
	}
	return baseDB - 20*math.Log10(distanceM/noiseRefDistanceM)
}

// energeticSum combines source levels on the energy scale, which is how
// decibel contributions add up.
func energeticSum(sources []domain.NoiseSource) float64 {
	var sum float64
	for _, s := range sources {
		sum += math.Pow(10, s.ImpactDB/10)
	}
	if sum == 0 {
		return backgroundNoiseDB
	}
	return 10 * math.Log10(sum)
}

func noiseFromReading(r *domain.NoiseReading) *domain.Noise {
	return noiseFromLevel(r.LevelDB, r.Source)
}

func noiseFromLevel(db float64, dataSource string) *domain.Noise {
	quality, level, description, color := gradeNoise(db)
	return &domain.Noise{
		NoiseLevelDB: db,
		Quality:      quality,
		Level:        level,
		Description:  description,
		Color:        color,
		DataSource:   dataSource,
	}
}

// gradeNoise maps a dB value to its exposure band. Band edges belong to
// the upper band: exactly 45 dB is already "low", exactly 75 dB is
// already "very_high".
func gradeNoise(db float64) (quality, level, description, color string) {
	switch {
	case db < 45:
		return "excellent", "very_low", fmt.Sprintf("Very quiet surroundings (%.1f dB)", db), "green"
	case db < 55:
		return "good", "low", fmt.Sprintf("Quiet surroundings (%.1f dB)", db), "lightgreen"
	case db < 65:
		return "acceptable", "moderate", fmt.Sprintf("Moderate noise exposure (%.1f dB)", db), "yellow"
	case db < 75:
		return "poor", "high", fmt.Sprintf("High noise exposure (%.1f dB)", db), "orange"
	default:
		return "bad", "very_high", fmt.Sprintf("Very high noise exposure (%.1f dB)", db), "red"
	}
}
