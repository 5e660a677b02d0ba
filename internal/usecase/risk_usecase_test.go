package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/domain"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
)

func newRiskUsecase(featureRepo *mockFeatureRepository, landslideRepo *mockLandslideRegistryRepository, noiseMapRepo *mockNoiseMapRepository) *RiskUsecase {
	noiseUC := NewNoiseUsecase(noiseMapRepo, featureRepo, "mazowieckie", zap.NewNop())
	return NewRiskUsecase(featureRepo, landslideRepo, noiseUC, zap.NewNop())
}

func TestRiskUsecase_CheckFlood(t *testing.T) {
	origin := domain.Point{Lat: 52.2297, Lon: 21.0122}

	t.Run("river inside inner band is high risk", func(t *testing.T) {
		featureRepo := new(mockFeatureRepository)
		featureRepo.On("Search", mock.Anything, origin, 500.0, domain.FloodFilters).
			Return([]domain.RawFeature{
				// ~111 m north
				{ID: 1, Type: "way", Center: &domain.Point{Lat: 52.2307, Lon: 21.0122},
					Tags: map[string]string{"waterway": "river", "name": "Wisla"}},
			}, nil)

		u := newRiskUsecase(featureRepo, new(mockLandslideRegistryRepository), new(mockNoiseMapRepository))

		risk := u.checkFlood(context.Background(), origin)
		assert.Equal(t, domain.RiskFlood, risk.RiskType)
		assert.Equal(t, domain.RiskLevelHigh, risk.Level)
		assert.True(t, risk.IsAtRisk)
		assert.Contains(t, risk.Description, "Wisla")
	})

	t.Run("water in outer band only is medium risk", func(t *testing.T) {
		featureRepo := new(mockFeatureRepository)
		featureRepo.On("Search", mock.Anything, origin, 500.0, domain.FloodFilters).
			Return([]domain.RawFeature{
				// ~445 m north
				{ID: 2, Type: "way", Center: &domain.Point{Lat: 52.2337, Lon: 21.0122},
					Tags: map[string]string{"natural": "water"}},
			}, nil)

		u := newRiskUsecase(featureRepo, new(mockLandslideRegistryRepository), new(mockNoiseMapRepository))

		risk := u.checkFlood(context.Background(), origin)
		assert.Equal(t, domain.RiskLevelMedium, risk.Level)
		assert.True(t, risk.IsAtRisk)
	})

	t.Run("no water nearby is low and not at risk", func(t *testing.T) {
		featureRepo := new(mockFeatureRepository)
		featureRepo.On("Search", mock.Anything, origin, 500.0, domain.FloodFilters).
			Return([]domain.RawFeature{}, nil)

		u := newRiskUsecase(featureRepo, new(mockLandslideRegistryRepository), new(mockNoiseMapRepository))

		risk := u.checkFlood(context.Background(), origin)
		assert.Equal(t, domain.RiskLevelLow, risk.Level)
		assert.False(t, risk.IsAtRisk)
	})

	t.Run("provider failure degrades to unknown, not an error", func(t *testing.T) {
		featureRepo := new(mockFeatureRepository)
		featureRepo.On("Search", mock.Anything, origin, 500.0, domain.FloodFilters).
			Return(nil, pkgerrors.ErrProviderTimeout)

		u := newRiskUsecase(featureRepo, new(mockLandslideRegistryRepository), new(mockNoiseMapRepository))

		risk := u.checkFlood(context.Background(), origin)
		assert.Equal(t, domain.RiskLevelUnknown, risk.Level)
		assert.False(t, risk.IsAtRisk)
	})
}

func TestRiskUsecase_CheckSeismic(t *testing.T) {
	u := newRiskUsecase(new(mockFeatureRepository), new(mockLandslideRegistryRepository), new(mockNoiseMapRepository))

	t.Run("inside an elevated-activity region", func(t *testing.T) {
		risk := u.checkSeismic(context.Background(), domain.Point{Lat: 49.3, Lon: 20.0}) // Podhale
		assert.Equal(t, domain.RiskLevelMedium, risk.Level)
		assert.True(t, risk.IsAtRisk)
		assert.Contains(t, risk.Description, "Podhale")
	})

	t.Run("outside all regions is conclusively low", func(t *testing.T) {
		risk := u.checkSeismic(context.Background(), domain.Point{Lat: 52.2297, Lon: 21.0122}) // Warszawa
		assert.Equal(t, domain.RiskLevelLow, risk.Level)
		assert.False(t, risk.IsAtRisk)
	})
}

func TestRiskUsecase_CheckLandslide(t *testing.T) {
	origin := domain.Point{Lat: 49.62, Lon: 20.70}

	t.Run("active landslide area is high risk", func(t *testing.T) {
		landslideRepo := new(mockLandslideRegistryRepository)
		landslideRepo.On("GetByPoint", mock.Anything, origin).
			Return(&domain.LandslideRecord{ID: "12-34-567", Severity: "aktywne"}, nil)

		u := newRiskUsecase(new(mockFeatureRepository), landslideRepo, new(mockNoiseMapRepository))

		risk := u.checkLandslide(context.Background(), origin)
		assert.Equal(t, domain.RiskLevelHigh, risk.Level)
		assert.True(t, risk.IsAtRisk)
		assert.Contains(t, risk.Description, "12-34-567")
	})

	t.Run("periodically active maps to medium", func(t *testing.T) {
		landslideRepo := new(mockLandslideRegistryRepository)
		landslideRepo.On("GetByPoint", mock.Anything, origin).
			Return(&domain.LandslideRecord{ID: "12-34-568", Severity: "okresowo aktywne"}, nil)

		u := newRiskUsecase(new(mockFeatureRepository), landslideRepo, new(mockNoiseMapRepository))

		risk := u.checkLandslide(context.Background(), origin)
		assert.Equal(t, domain.RiskLevelMedium, risk.Level)
		assert.True(t, risk.IsAtRisk)
	})

	t.Run("no registry record inside a prone region still flags medium", func(t *testing.T) {
		landslideRepo := new(mockLandslideRegistryRepository)
		landslideRepo.On("GetByPoint", mock.Anything, origin).Return(nil, nil)

		u := newRiskUsecase(new(mockFeatureRepository), landslideRepo, new(mockNoiseMapRepository))

		// (49.62, 20.70) is inside the Carpathian belt, so an empty registry
		// answer advances to the prone-region source instead of concluding.
		risk := u.checkLandslide(context.Background(), origin)
		assert.Equal(t, domain.RiskLevelMedium, risk.Level)
		assert.True(t, risk.IsAtRisk)
	})

	t.Run("no registry record outside prone regions is low", func(t *testing.T) {
		outside := domain.Point{Lat: 52.2297, Lon: 21.0122}

		landslideRepo := new(mockLandslideRegistryRepository)
		landslideRepo.On("GetByPoint", mock.Anything, outside).Return(nil, nil)

		u := newRiskUsecase(new(mockFeatureRepository), landslideRepo, new(mockNoiseMapRepository))

		risk := u.checkLandslide(context.Background(), outside)
		assert.Equal(t, domain.RiskLevelLow, risk.Level)
		assert.False(t, risk.IsAtRisk)
	})

	t.Run("registry outage falls back to prone-region lookup", func(t *testing.T) {
		landslideRepo := new(mockLandslideRegistryRepository)
		landslideRepo.On("GetByPoint", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.ErrProviderFailure)

		u := newRiskUsecase(new(mockFeatureRepository), landslideRepo, new(mockNoiseMapRepository))

		// inside the Carpathian belt
		risk := u.checkLandslide(context.Background(), domain.Point{Lat: 49.62, Lon: 20.70})
		assert.Equal(t, domain.RiskLevelMedium, risk.Level)
		assert.True(t, risk.IsAtRisk)

		// far outside it
		risk = u.checkLandslide(context.Background(), domain.Point{Lat: 54.35, Lon: 18.65})
		assert.Equal(t, domain.RiskLevelLow, risk.Level)
		assert.False(t, risk.IsAtRisk)
	})
}

func TestRiskUsecase_CheckNoise(t *testing.T) {
	origin := domain.Point{Lat: 52.2297, Lon: 21.0122}

	t.Run("official reading at 70 dB is an at-risk high", func(t *testing.T) {
		noiseMapRepo := new(mockNoiseMapRepository)
		noiseMapRepo.On("GetNoiseLevel", mock.Anything, origin, "halas_mazowieckie").
			Return(&domain.NoiseReading{LevelDB: 70.0, Source: "geoportal:halas_mazowieckie"}, nil)

		u := newRiskUsecase(new(mockFeatureRepository), new(mockLandslideRegistryRepository), noiseMapRepo)

		risk := u.checkNoise(context.Background(), origin)
		assert.Equal(t, domain.RiskLevelHigh, risk.Level)
		assert.True(t, risk.IsAtRisk)
		assert.Contains(t, risk.Description, "geoportal:halas_mazowieckie")
	})

	t.Run("quiet reading is low and not at risk", func(t *testing.T) {
		noiseMapRepo := new(mockNoiseMapRepository)
		noiseMapRepo.On("GetNoiseLevel", mock.Anything, origin, "halas_mazowieckie").
			Return(&domain.NoiseReading{LevelDB: 42.0, Source: "geoportal:halas_mazowieckie"}, nil)

		u := newRiskUsecase(new(mockFeatureRepository), new(mockLandslideRegistryRepository), noiseMapRepo)

		risk := u.checkNoise(context.Background(), origin)
		assert.Equal(t, domain.RiskLevelLow, risk.Level)
		assert.False(t, risk.IsAtRisk)
	})
}

func TestRiskUsecase_Risks(t *testing.T) {
	origin := domain.Point{Lat: 52.2297, Lon: 21.0122}

	t.Run("report contains only at-risk entries", func(t *testing.T) {
		featureRepo := new(mockFeatureRepository)
		// flood: river ~111 m away
		featureRepo.On("Search", mock.Anything, origin, 500.0, domain.FloodFilters).
			Return([]domain.RawFeature{
				{ID: 1, Type: "way", Center: &domain.Point{Lat: 52.2307, Lon: 21.0122},
					Tags: map[string]string{"waterway": "river"}},
			}, nil)
		// soil and mining: nothing
		featureRepo.On("Search", mock.Anything, origin, 800.0, domain.SoilFilters).
			Return([]domain.RawFeature{}, nil)
		featureRepo.On("Search", mock.Anything, origin, 1000.0, domain.MiningFilters).
			Return([]domain.RawFeature{}, nil)

		landslideRepo := new(mockLandslideRegistryRepository)
		landslideRepo.On("GetByPoint", mock.Anything, origin).Return(nil, nil)

		noiseMapRepo := new(mockNoiseMapRepository)
		noiseMapRepo.On("GetNoiseLevel", mock.Anything, origin, "halas_mazowieckie").
			Return(&domain.NoiseReading{LevelDB: 50.0, Source: "geoportal:halas_mazowieckie"}, nil)

		u := newRiskUsecase(featureRepo, landslideRepo, noiseMapRepo)

		report, err := u.Risks(context.Background(), origin)
		require.NoError(t, err)

		require.Equal(t, 1, report.Total)
		assert.Equal(t, domain.RiskFlood, report.Risks[0].RiskType)
	})

	t.Run("invalid coordinates rejected", func(t *testing.T) {
		u := newRiskUsecase(new(mockFeatureRepository), new(mockLandslideRegistryRepository), new(mockNoiseMapRepository))

		_, err := u.Risks(context.Background(), domain.Point{Lat: 0, Lon: 181})
		assert.Error(t, err)
	})
}
