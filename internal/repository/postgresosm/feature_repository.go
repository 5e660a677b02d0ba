package postgresosm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/domain"
	"github.com/surroundings-microservice/internal/domain/repository"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
)

type featureRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFeatureRepository builds a feature source over a local planet_osm
// import. It is interchangeable with the Overpass client and selected
// via ANALYZER_FEATURE_BACKEND=postgres.
func NewFeatureRepository(db *DB, logger *zap.Logger) repository.FeatureRepository {
	return &featureRepository{
		db:     db,
		logger: logger,
	}
}

type featureRow struct {
	OSMID    int64   `db:"osm_id"`
	Type     string  `db:"feature_type"`
	Lat      float64 `db:"lat"`
	Lon      float64 `db:"lon"`
	TagsJSON string  `db:"tags_json"`
}

// Search finds features within radiusM of origin matching any of the tag
// predicates. Points come from planet_osm_point, areas from
// planet_osm_polygon reduced to their centroid.
func (r *featureRepository) Search(ctx context.Context, origin domain.Point, radiusM float64, filters []domain.TagFilter) ([]domain.RawFeature, error) {
	if len(filters) == 0 {
		return nil, pkgerrors.ErrInternalServer.WithMessage("feature search requires at least one tag filter")
	}

	conds, args := tagConditions(filters, 4)

	query := fmt.Sprintf(`
		SELECT osm_id,
		       'node' AS feature_type,
		       ST_Y(ST_Transform(way, 4326)) AS lat,
		       ST_X(ST_Transform(way, 4326)) AS lon,
		       COALESCE(hstore_to_json(tags)::text, '{}') AS tags_json
		FROM planet_osm_point
		WHERE ST_DWithin(
			ST_Transform(way, 4326)::geography,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		) AND (%s)

		UNION ALL

		SELECT osm_id,
		       'way' AS feature_type,
		       ST_Y(ST_Transform(ST_Centroid(way), 4326)) AS lat,
		       ST_X(ST_Transform(ST_Centroid(way), 4326)) AS lon,
		       COALESCE(hstore_to_json(tags)::text, '{}') AS tags_json
		FROM planet_osm_polygon
		WHERE ST_DWithin(
			ST_Transform(way, 4326)::geography,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		) AND (%s)`, conds, conds)

	queryArgs := append([]interface{}{origin.Lon, origin.Lat, radiusM}, args...)

	var rows []featureRow
	if err := r.db.SelectContext(ctx, &rows, query, queryArgs...); err != nil {
		r.logger.Error("OSM feature query failed",
			zap.Float64("lat", origin.Lat),
			zap.Float64("lon", origin.Lon),
			zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError.WithMessage(fmt.Sprintf("osm feature query failed: %v", err))
	}

	features := make([]domain.RawFeature, 0, len(rows))
	for _, row := range rows {
		features = append(features, rowToFeature(row))
	}

	return features, nil
}

// tagConditions renders an OR chain of hstore containment predicates
// starting at placeholder index firstArg. Keys and values travel as
// bound arguments, never interpolated.
func tagConditions(filters []domain.TagFilter, firstArg int) (string, []interface{}) {
	conds := make([]string, 0, len(filters))
	args := make([]interface{}, 0, len(filters)*2)

	for i, f := range filters {
		conds = append(conds, fmt.Sprintf("tags @> hstore($%d, $%d)", firstArg+i*2, firstArg+i*2+1))
		args = append(args, f.Key, f.Value)
	}

	return strings.Join(conds, " OR "), args
}

func rowToFeature(row featureRow) domain.RawFeature {
	tags := map[string]string{}
	if err := json.Unmarshal([]byte(row.TagsJSON), &tags); err != nil {
		tags = map[string]string{}
	}

	return domain.RawFeature{
		ID:   row.OSMID,
		Type: row.Type,
		Lat:  row.Lat,
		Lon:  row.Lon,
		Tags: tags,
	}
}
