package overpass

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

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a feature-search client backed by the Overpass API.
func NewClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.FeatureRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type"`
	Lat    float64 `json:"lat,omitempty"`
	Lon    float64 `json:"lon,omitempty"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

// Search runs a bounded-radius query for the given tag predicates and
// returns raw candidate features. An empty result is a valid outcome.
func (c *client) Search(ctx context.Context, origin domain.Point, radiusM float64, filters []domain.TagFilter) ([]domain.RawFeature, error) {
	if len(filters) == 0 {
		return nil, fmt.Errorf("tag filters cannot be empty")
	}

	query := buildQuery(origin, radiusM, filters)

	c.logger.Debug("Calling Overpass API",
		zap.Float64("lat", origin.Lat),
		zap.Float64("lon", origin.Lon),
		zap.Float64("radius_m", radiusM),
		zap.Int("filters", len(filters)))

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("overpass: failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("Overpass request timed out", zap.Error(err))
			return nil, pkgerrors.ErrProviderTimeout.WithMessage("overpass: request timed out")
		}
		c.logger.Error("Overpass request failed", zap.Error(err))
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("overpass: request failed: %v", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn("Overpass rate limit exceeded")
		return nil, pkgerrors.ErrProviderRateLimited.WithMessage("overpass: rate limit exceeded (429)")
	case resp.StatusCode == http.StatusGatewayTimeout:
		c.logger.Warn("Overpass server timeout")
		return nil, pkgerrors.ErrProviderTimeout.WithMessage("overpass: server timeout (504)")
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Overpass API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("overpass: status %d", resp.StatusCode))
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Error("Failed to decode Overpass response", zap.Error(err))
		return nil, pkgerrors.ErrProviderFailure.WithMessage("overpass: malformed response")
	}

	features := make([]domain.RawFeature, 0, len(decoded.Elements))
	for _, el := range decoded.Elements {
		f := domain.RawFeature{
			ID:   el.ID,
			Type: el.Type,
			Lat:  el.Lat,
			Lon:  el.Lon,
			Tags: el.Tags,
		}
		if el.Center != nil {
			f.Center = &domain.Point{Lat: el.Center.Lat, Lon: el.Center.Lon}
		}
		features = append(features, f)
	}

	c.logger.Debug("Overpass API call successful", zap.Int("elements", len(features)))

	return features, nil
}

// buildQuery assembles an Overpass QL union of nwr clauses, one per tag
// predicate, with "out center" so ways and relations carry a representative
// point.
func buildQuery(origin domain.Point, radiusM float64, filters []domain.TagFilter) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, f := range filters {
		fmt.Fprintf(&b, "  nwr[%q=%q](around:%.0f,%.6f,%.6f);\n",
			f.Key, f.Value, radiusM, origin.Lat, origin.Lon)
	}
	b.WriteString(");\nout center;")
	return b.String()
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
