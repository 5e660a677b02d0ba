package geoportal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/config"
	"github.com/surroundings-microservice/internal/domain"
	"github.com/surroundings-microservice/internal/domain/repository"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
)

// Half-size of the GetFeatureInfo query window in degrees (~55 m).
const bboxHalfSizeDeg = 0.0005

type noiseClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewNoiseClient creates a strategic-noise-map client over WMS
// GetFeatureInfo. Layers are voivodeship-specific road-noise layers.
func NewNoiseClient(cfg *config.GeoportalConfig, logger *zap.Logger) repository.NoiseMapRepository {
	return &noiseClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.NoiseWMSURL,
		logger:  logger,
	}
}

type featureInfoResponse struct {
	Features []struct {
		Properties map[string]interface{} `json:"properties"`
	} `json:"features"`
}

// GetNoiseLevel samples the given noise layer at a point. A nil reading
// means the layer holds no data there.
func (c *noiseClient) GetNoiseLevel(ctx context.Context, p domain.Point, layer string) (*domain.NoiseReading, error) {
	params := url.Values{
		"SERVICE":      {"WMS"},
		"VERSION":      {"1.3.0"},
		"REQUEST":      {"GetFeatureInfo"},
		"LAYERS":       {layer},
		"QUERY_LAYERS": {layer},
		"CRS":          {"EPSG:4326"},
		"BBOX": {fmt.Sprintf("%f,%f,%f,%f",
			p.Lat-bboxHalfSizeDeg, p.Lon-bboxHalfSizeDeg,
			p.Lat+bboxHalfSizeDeg, p.Lon+bboxHalfSizeDeg)},
		"WIDTH":       {"101"},
		"HEIGHT":      {"101"},
		"I":           {"50"},
		"J":           {"50"},
		"INFO_FORMAT": {"application/json"},
	}

	c.logger.Debug("Calling noise map GetFeatureInfo", zap.String("layer", layer))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("noise map: failed to create request: %v", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, pkgerrors.ErrProviderTimeout.WithMessage("noise map: request timed out")
		}
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("noise map: request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Noise map returned error",
			zap.String("layer", layer),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("noise map: status %d", resp.StatusCode))
	}

	var decoded featureInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, pkgerrors.ErrProviderFailure.WithMessage("noise map: malformed response")
	}

	if len(decoded.Features) == 0 {
		return nil, nil
	}

	db, ok := extractDecibels(decoded.Features[0].Properties)
	if !ok {
		// A feature without a dB attribute is treated as no data, not as a
		// provider failure.
		c.logger.Debug("Noise map feature without dB attribute", zap.String("layer", layer))
		return nil, nil
	}

	return &domain.NoiseReading{
		LevelDB: db,
		Source:  "geoportal:" + layer,
	}, nil
}

// extractDecibels finds the noise level attribute in a GetFeatureInfo
// property map. Voivodeship layers are not uniform about the attribute
// name, so any key mentioning dB or "poziom" qualifies.
func extractDecibels(props map[string]interface{}) (float64, bool) {
	for key, value := range props {
		lower := strings.ToLower(key)
		if !strings.Contains(lower, "db") && !strings.Contains(lower, "poziom") {
			continue
		}
		switch v := value.(type) {
		case float64:
			return v, true
		case string:
			var parsed float64
			if _, err := fmt.Sscanf(strings.ReplaceAll(v, ",", "."), "%f", &parsed); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
