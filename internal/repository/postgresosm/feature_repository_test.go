package postgresosm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surroundings-microservice/internal/domain"
)

func TestTagConditions(t *testing.T) {
	t.Run("single predicate", func(t *testing.T) {
		conds, args := tagConditions([]domain.TagFilter{
			{Key: "amenity", Value: "school"},
		}, 4)

		assert.Equal(t, "tags @> hstore($4, $5)", conds)
		assert.Equal(t, []interface{}{"amenity", "school"}, args)
	})

	t.Run("multiple predicates joined with OR", func(t *testing.T) {
		conds, args := tagConditions([]domain.TagFilter{
			{Key: "amenity", Value: "atm"},
			{Key: "amenity", Value: "bank"},
		}, 4)

		assert.Equal(t, "tags @> hstore($4, $5) OR tags @> hstore($6, $7)", conds)
		require.Len(t, args, 4)
		assert.Equal(t, "bank", args[3])
	})
}

func TestRowToFeature(t *testing.T) {
	t.Run("parses tags json", func(t *testing.T) {
		f := rowToFeature(featureRow{
			OSMID:    123456,
			Type:     "node",
			Lat:      52.2297,
			Lon:      21.0122,
			TagsJSON: `{"amenity": "school", "name": "SP 42"}`,
		})

		assert.Equal(t, int64(123456), f.ID)
		assert.Equal(t, "node", f.Type)
		assert.Equal(t, "school", f.Tags["amenity"])
		assert.Equal(t, "SP 42", f.Tags["name"])

		p, ok := f.RepresentativePoint()
		require.True(t, ok)
		assert.Equal(t, 52.2297, p.Lat)
	})

	t.Run("malformed tags json yields empty tag map", func(t *testing.T) {
		f := rowToFeature(featureRow{
			OSMID:    1,
			Type:     "way",
			Lat:      50.0,
			Lon:      20.0,
			TagsJSON: `not-json`,
		})

		assert.NotNil(t, f.Tags)
		assert.Empty(t, f.Tags)
	})
}
