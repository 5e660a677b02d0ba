package usecase

import "github.com/surroundings-microservice/internal/domain"

// Distance bands (meters) for proximity-derived hazards. Inside the inner
// band the hazard is high, inside the outer band medium, beyond it low.
const (
	floodInnerM = 150
	floodOuterM = 500

	soilInnerM = 250
	soilOuterM = 800

	miningInnerM = 300
	miningOuterM = 1000
)

// seismicRegion is a statically known zone of elevated seismic or
// paraseismic (mining-induced) activity. Poland has no strong natural
// seismicity, so the catalog is short and conservative.
type seismicRegion struct {
	Name  string
	Level string
	Box   domain.BoundingBox
}

var seismicRegions = []seismicRegion{
	{
		Name:  "Podhale / Tatra region",
		Level: domain.RiskLevelMedium,
		Box:   domain.BoundingBox{MinLat: 49.0, MaxLat: 49.5, MinLon: 19.5, MaxLon: 20.5},
	},
	{
		Name:  "Upper Silesian Coal Basin",
		Level: domain.RiskLevelMedium,
		Box:   domain.BoundingBox{MinLat: 50.0, MaxLat: 50.5, MinLon: 18.5, MaxLon: 19.5},
	},
	{
		Name:  "Legnica-Glogow Copper Belt",
		Level: domain.RiskLevelMedium,
		Box:   domain.BoundingBox{MinLat: 51.3, MaxLat: 51.7, MinLon: 15.9, MaxLon: 16.6},
	},
}

// landslideProneRegion approximates the Carpathian flysch belt, where the
// bulk of registered landslides occur. Used only when the official registry
// is unreachable.
var landslideProneRegion = domain.BoundingBox{
	MinLat: 49.0, MaxLat: 50.0, MinLon: 18.5, MaxLon: 23.0,
}

// noiseLayerFor maps a voivodeship to its strategic-noise-map WMS layer.
func noiseLayerFor(voivodeship string) string {
	return "halas_" + voivodeship
}

// fallbackNoiseVoivodeships are probed in order when no voivodeship hint is
// available or the configured layer holds no data at the point.
var fallbackNoiseVoivodeships = []string{
	"mazowieckie",
	"slaskie",
	"malopolskie",
	"dolnoslaskie",
	"wielkopolskie",
	"pomorskie",
}
