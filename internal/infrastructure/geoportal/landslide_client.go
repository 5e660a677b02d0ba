package geoportal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/config"
	"github.com/surroundings-microservice/internal/domain"
	"github.com/surroundings-microservice/internal/domain/repository"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
)

type landslideClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewLandslideClient creates a client for the official landslide registry
// (SOPO) point-intersect lookup.
func NewLandslideClient(cfg *config.GeoportalConfig, logger *zap.Logger) repository.LandslideRegistryRepository {
	return &landslideClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.LandslideURL,
		logger:  logger,
	}
}

type registryResponse struct {
	Features []struct {
		Attributes map[string]interface{} `json:"attributes"`
	} `json:"features"`
}

// GetByPoint queries the registry for landslide areas containing the point.
// A nil record means the point is outside all mapped areas.
func (c *landslideClient) GetByPoint(ctx context.Context, p domain.Point) (*domain.LandslideRecord, error) {
	params := url.Values{
		"geometry":       {fmt.Sprintf("%f,%f", p.Lon, p.Lat)},
		"geometryType":   {"esriGeometryPoint"},
		"inSR":           {"4326"},
		"spatialRel":     {"esriSpatialRelIntersects"},
		"outFields":      {"*"},
		"returnGeometry": {"false"},
		"f":              {"json"},
	}

	c.logger.Debug("Calling landslide registry",
		zap.Float64("lat", p.Lat),
		zap.Float64("lon", p.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("landslide registry: failed to create request: %v", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, pkgerrors.ErrProviderTimeout.WithMessage("landslide registry: request timed out")
		}
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("landslide registry: request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Landslide registry returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("landslide registry: status %d", resp.StatusCode))
	}

	var decoded registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, pkgerrors.ErrProviderFailure.WithMessage("landslide registry: malformed response")
	}

	if len(decoded.Features) == 0 {
		return nil, nil
	}

	attrs := decoded.Features[0].Attributes
	record := &domain.LandslideRecord{
		ID:       attrString(attrs, "id_osuwiska", "objectid", "id"),
		Name:     attrString(attrs, "nazwa", "name"),
		Severity: attrString(attrs, "stopien_aktywnosci", "aktywnosc", "severity"),
	}

	return record, nil
}

// attrString finds the first present attribute among candidate keys,
// matching case-insensitively (registry layers are inconsistent about
// attribute casing).
func attrString(attrs map[string]interface{}, keys ...string) string {
	lowered := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		lowered[strings.ToLower(k)] = v
	}
	for _, key := range keys {
		if v, ok := lowered[key]; ok {
			switch value := v.(type) {
			case string:
				return value
			case float64:
				return fmt.Sprintf("%.0f", value)
			}
		}
	}
	return ""
}
