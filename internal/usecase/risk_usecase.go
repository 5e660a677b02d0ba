package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/domain"
	"github.com/surroundings-microservice/internal/domain/repository"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
	"github.com/surroundings-microservice/internal/pkg/utils"
	"github.com/surroundings-microservice/internal/usecase/dto"
)

// RiskUsecase evaluates environmental hazards around a point. Each check
// is a chain of sources tried in order; a source failure degrades to the
// next source or, when none is left, to an "unknown" outcome. Checks never
// fail the whole evaluation.
type RiskUsecase struct {
	featureRepo   repository.FeatureRepository
	landslideRepo repository.LandslideRegistryRepository
	noiseUC       *NoiseUsecase
	logger        *zap.Logger
}

func NewRiskUsecase(
	featureRepo repository.FeatureRepository,
	landslideRepo repository.LandslideRegistryRepository,
	noiseUC *NoiseUsecase,
	logger *zap.Logger,
) *RiskUsecase {
	return &RiskUsecase{
		featureRepo:   featureRepo,
		landslideRepo: landslideRepo,
		noiseUC:       noiseUC,
		logger:        logger,
	}
}

// Risks runs all six hazard checks concurrently and collects the entries
// flagged at-risk into a report.
func (u *RiskUsecase) Risks(ctx context.Context, origin domain.Point) (*dto.RiskReportResponse, error) {
	if !utils.ValidateCoordinates(origin.Lat, origin.Lon) {
		return nil, pkgerrors.ErrInvalidCoordinates
	}

	checks := []func(context.Context, domain.Point) domain.RiskInfo{
		u.checkFlood,
		u.checkSeismic,
		u.checkSoil,
		u.checkLandslide,
		u.checkNoise,
		u.checkMining,
	}

	results := make([]domain.RiskInfo, len(checks))

	var wg sync.WaitGroup
	for i, check := range checks {
		wg.Add(1)
		go func(i int, check func(context.Context, domain.Point) domain.RiskInfo) {
			defer wg.Done()
			results[i] = check(ctx, origin)
		}(i, check)
	}
	wg.Wait()

	atRisk := make([]domain.RiskInfo, 0, len(results))
	for _, r := range results {
		if r.IsAtRisk {
			atRisk = append(atRisk, r)
		}
	}

	u.logger.Debug("Risk evaluation completed",
		zap.Float64("lat", origin.Lat),
		zap.Float64("lon", origin.Lon),
		zap.Int("at_risk", len(atRisk)))

	return &dto.RiskReportResponse{
		Origin: origin,
		Risks:  atRisk,
		Total:  len(atRisk),
	}, nil
}

func (u *RiskUsecase) checkFlood(ctx context.Context, origin domain.Point) domain.RiskInfo {
	return u.distanceBandCheck(ctx, origin, bandCheck{
		riskType: domain.RiskFlood,
		name:     "Flood risk",
		filters:  domain.FloodFilters,
		innerM:   floodInnerM,
		outerM:   floodOuterM,
		subject:  "water body",
	})
}

func (u *RiskUsecase) checkSoil(ctx context.Context, origin domain.Point) domain.RiskInfo {
	return u.distanceBandCheck(ctx, origin, bandCheck{
		riskType: domain.RiskSoil,
		name:     "Soil contamination risk",
		filters:  domain.SoilFilters,
		innerM:   soilInnerM,
		outerM:   soilOuterM,
		subject:  "potential contamination source",
	})
}

func (u *RiskUsecase) checkMining(ctx context.Context, origin domain.Point) domain.RiskInfo {
	return u.distanceBandCheck(ctx, origin, bandCheck{
		riskType: domain.RiskMining,
		name:     "Mining damage risk",
		filters:  domain.MiningFilters,
		innerM:   miningInnerM,
		outerM:   miningOuterM,
		subject:  "mining-related site",
	})
}

type bandCheck struct {
	riskType string
	name     string
	filters  []domain.TagFilter
	innerM   float64
	outerM   float64
	subject  string
}

// distanceBandCheck classifies a proximity hazard by the distance to the
// nearest matching feature: inside the inner band high, inside the outer
// band medium, nothing within the outer band low.
func (u *RiskUsecase) distanceBandCheck(ctx context.Context, origin domain.Point, c bandCheck) domain.RiskInfo {
	features, err := u.featureRepo.Search(ctx, origin, c.outerM, c.filters)
	if err != nil {
		u.logger.Warn("Hazard feature search failed",
			zap.String("risk_type", c.riskType),
			zap.Error(err))
		return unknownRisk(c.riskType, c.name)
	}

	nearby := normalizeFeatures(origin, c.outerM, c.filters, features)
	if len(nearby) == 0 {
		return domain.RiskInfo{
			RiskType:    c.riskType,
			Name:        c.name,
			Level:       domain.RiskLevelLow,
			IsAtRisk:    false,
			Description: fmt.Sprintf("No %s within %.0f m", c.subject, c.outerM),
			Color:       riskColor(domain.RiskLevelLow),
		}
	}

	nearest := nearby[0]
	level := domain.RiskLevelMedium
	if nearest.DistanceM <= c.innerM {
		level = domain.RiskLevelHigh
	}

	label := nearest.Kind
	if nearest.Name != nil {
		label = *nearest.Name
	}

	return domain.RiskInfo{
		RiskType:    c.riskType,
		Name:        c.name,
		Level:       level,
		IsAtRisk:    true,
		Description: fmt.Sprintf("Nearest %s (%s) is %.0f m away", c.subject, label, nearest.DistanceM),
		Color:       riskColor(level),
	}
}

// checkSeismic is a static lookup over known elevated-activity regions. It
// has no remote source and therefore never degrades to unknown.
func (u *RiskUsecase) checkSeismic(_ context.Context, origin domain.Point) domain.RiskInfo {
	for _, region := range seismicRegions {
		if region.Box.Contains(origin) {
			return domain.RiskInfo{
				RiskType:    domain.RiskSeismic,
				Name:        "Seismic activity risk",
				Level:       region.Level,
				IsAtRisk:    true,
				Description: fmt.Sprintf("Within known elevated-activity region: %s", region.Name),
				Color:       riskColor(region.Level),
			}
		}
	}
	return domain.RiskInfo{
		RiskType:    domain.RiskSeismic,
		Name:        "Seismic activity risk",
		Level:       domain.RiskLevelLow,
		IsAtRisk:    false,
		Description: "Outside all known elevated seismic activity regions",
		Color:       riskColor(domain.RiskLevelLow),
	}
}

func (u *RiskUsecase) checkLandslide(ctx context.Context, origin domain.Point) domain.RiskInfo {
	record, err := u.landslideRepo.GetByPoint(ctx, origin)
	if err != nil {
		u.logger.Warn("Landslide registry unavailable, using prone-region fallback", zap.Error(err))
	}

	if err == nil && record != nil {
		level := landslideSeverityLevel(record.Severity)
		description := fmt.Sprintf("Within registered landslide area %s", record.ID)
		if record.Severity != "" {
			description += fmt.Sprintf(" (activity: %s)", record.Severity)
		}

		return domain.RiskInfo{
			RiskType:    domain.RiskLandslide,
			Name:        "Landslide risk",
			Level:       level,
			IsAtRisk:    true,
			Description: description,
			Color:       riskColor(level),
		}
	}

	// The registry gave no evidence (or failed); the static prone-region
	// lookup is the next source in the chain.
	if landslideProneRegion.Contains(origin) {
		return domain.RiskInfo{
			RiskType:    domain.RiskLandslide,
			Name:        "Landslide risk",
			Level:       domain.RiskLevelMedium,
			IsAtRisk:    true,
			Description: "No registry record; point lies within a landslide-prone region",
			Color:       riskColor(domain.RiskLevelMedium),
		}
	}

	return domain.RiskInfo{
		RiskType:    domain.RiskLandslide,
		Name:        "Landslide risk",
		Level:       domain.RiskLevelLow,
		IsAtRisk:    false,
		Description: "Outside registered landslide areas and prone regions",
		Color:       riskColor(domain.RiskLevelLow),
	}
}

func (u *RiskUsecase) checkNoise(ctx context.Context, origin domain.Point) domain.RiskInfo {
	noise, err := u.noiseUC.Evaluate(ctx, origin)
	if err != nil {
		u.logger.Warn("Noise evaluation failed", zap.Error(err))
		return unknownRisk(domain.RiskNoise, "Noise exposure risk")
	}

	level := clampNoiseLevel(noise.Level)
	return domain.RiskInfo{
		RiskType:    domain.RiskNoise,
		Name:        "Noise exposure risk",
		Level:       level,
		IsAtRisk:    noise.NoiseLevelDB >= 65,
		Description: fmt.Sprintf("%s (source: %s)", noise.Description, noise.DataSource),
		Color:       riskColor(level),
	}
}

// landslideSeverityLevel maps registry activity grades to risk levels.
// Unrecognized grades are treated as medium rather than dropped.
func landslideSeverityLevel(severity string) string {
	switch strings.ToLower(severity) {
	case "aktywne":
		return domain.RiskLevelHigh
	case "okresowo aktywne":
		return domain.RiskLevelMedium
	case "nieaktywne":
		return domain.RiskLevelLow
	default:
		return domain.RiskLevelMedium
	}
}

// clampNoiseLevel folds the five noise bands into the three risk levels.
func clampNoiseLevel(noiseLevel string) string {
	switch noiseLevel {
	case "very_low", "low":
		return domain.RiskLevelLow
	case "moderate":
		return domain.RiskLevelMedium
	case "high", "very_high":
		return domain.RiskLevelHigh
	default:
		return domain.RiskLevelUnknown
	}
}

func unknownRisk(riskType, name string) domain.RiskInfo {
	return domain.RiskInfo{
		RiskType:    riskType,
		Name:        name,
		Level:       domain.RiskLevelUnknown,
		IsAtRisk:    false,
		Description: "Could not be determined: all data sources failed",
		Color:       riskColor(domain.RiskLevelUnknown),
	}
}

func riskColor(level string) string {
	switch level {
	case domain.RiskLevelLow:
		return "green"
	case domain.RiskLevelMedium:
		return "orange"
	case domain.RiskLevelHigh:
		return "red"
	default:
		return "gray"
	}
}
