package domain

// Place category constants
const (
	CategoryEducation      = "education"
	CategoryFinance        = "finance"
	CategoryTransport      = "transport"
	CategoryInfrastructure = "infrastructure"
	CategoryGreenAreas     = "green_areas"
	CategoryWater          = "water"
	CategoryNuisances      = "nuisances"
)

// TagFilter is a single OSM tag predicate. A feature matches when its tag
// map contains Key=Value.
type TagFilter struct {
	Key   string
	Value string
}

// CategoryFilters maps each category to its ordered tag predicates. The
// catalog is pure data: adding a kind here is the only way a new place type
// surfaces, and predicate order decides which kind wins when a feature
// matches more than one.
var CategoryFilters = map[string][]TagFilter{
	CategoryEducation: {
		{Key: "amenity", Value: "school"},
		{Key: "amenity", Value: "kindergarten"},
		{Key: "amenity", Value: "university"},
		{Key: "amenity", Value: "college"},
	},
	CategoryFinance: {
		{Key: "amenity", Value: "atm"},
		{Key: "amenity", Value: "bank"},
	},
	CategoryTransport: {
		{Key: "highway", Value: "bus_stop"},
		{Key: "amenity", Value: "bus_station"},
		{Key: "railway", Value: "tram_stop"},
		{Key: "railway", Value: "station"},
		{Key: "railway", Value: "halt"},
		{Key: "amenity", Value: "ferry_terminal"},
		{Key: "aeroway", Value: "aerodrome"},
	},
	CategoryInfrastructure: {
		{Key: "shop", Value: "supermarket"},
		{Key: "shop", Value: "convenience"},
		{Key: "shop", Value: "mall"},
		{Key: "amenity", Value: "pharmacy"},
		{Key: "amenity", Value: "hospital"},
		{Key: "amenity", Value: "clinic"},
		{Key: "amenity", Value: "doctors"},
		{Key: "amenity", Value: "dentist"},
		{Key: "amenity", Value: "post_office"},
		{Key: "amenity", Value: "fuel"},
		{Key: "amenity", Value: "police"},
		{Key: "amenity", Value: "fire_station"},
		{Key: "amenity", Value: "place_of_worship"},
		{Key: "amenity", Value: "restaurant"},
		{Key: "amenity", Value: "cafe"},
	},
	CategoryGreenAreas: {
		{Key: "leisure", Value: "park"},
		{Key: "leisure", Value: "garden"},
		{Key: "leisure", Value: "nature_reserve"},
		{Key: "leisure", Value: "playground"},
		{Key: "landuse", Value: "forest"},
		{Key: "natural", Value: "wood"},
	},
	CategoryWater: {
		{Key: "natural", Value: "water"},
		{Key: "water", Value: "river"},
		{Key: "water", Value: "lake"},
		{Key: "water", Value: "pond"},
		{Key: "water", Value: "reservoir"},
		{Key: "waterway", Value: "river"},
		{Key: "waterway", Value: "stream"},
		{Key: "waterway", Value: "canal"},
	},
	CategoryNuisances: {
		{Key: "power", Value: "line"},
		{Key: "power", Value: "transformer"},
		{Key: "landuse", Value: "industrial"},
		{Key: "man_made", Value: "works"},
	},
}

// Hazard-only predicate sets used by the risk chains. They reuse the same
// feature-search primitive as the categories but never surface as a public
// category.
var (
	FloodFilters = []TagFilter{
		{Key: "waterway", Value: "river"},
		{Key: "waterway", Value: "stream"},
		{Key: "waterway", Value: "canal"},
		{Key: "natural", Value: "water"},
		{Key: "water", Value: "river"},
		{Key: "water", Value: "lake"},
		{Key: "water", Value: "reservoir"},
	}

	SoilFilters = []TagFilter{
		{Key: "landuse", Value: "landfill"},
		{Key: "landuse", Value: "brownfield"},
		{Key: "landuse", Value: "industrial"},
		{Key: "man_made", Value: "works"},
	}

	MiningFilters = []TagFilter{
		{Key: "landuse", Value: "quarry"},
		{Key: "man_made", Value: "mineshaft"},
		{Key: "man_made", Value: "adit"},
		{Key: "historic", Value: "mine"},
	}

	NoiseEmitterFilters = []TagFilter{
		{Key: "highway", Value: "motorway"},
		{Key: "highway", Value: "trunk"},
		{Key: "highway", Value: "primary"},
		{Key: "railway", Value: "rail"},
		{Key: "aeroway", Value: "aerodrome"},
		{Key: "landuse", Value: "industrial"},
	}
)

// ValidCategories returns the list of public place categories.
func ValidCategories() []string {
	return []string{
		CategoryEducation,
		CategoryFinance,
		CategoryTransport,
		CategoryInfrastructure,
		CategoryGreenAreas,
		CategoryWater,
		CategoryNuisances,
	}
}

// IsValidCategory checks if category is valid
func IsValidCategory(category string) bool {
	_, ok := CategoryFilters[category]
	return ok
}
