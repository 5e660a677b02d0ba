package osrm

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
	profile    string
	logger     *zap.Logger
}

// NewClient creates a batch routing client backed by the OSRM table service.
func NewClient(cfg *config.OSRMConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		profile: cfg.Profile,
		logger:  logger,
	}
}

type tableResponse struct {
	Code      string      `json:"code"`
	Message   string      `json:"message,omitempty"`
	Durations [][]float64 `json:"durations"`
	Distances [][]float64 `json:"distances"`
}

// Table requests road durations and distances from the origin to every
// destination in one call.
func (c *client) Table(ctx context.Context, origin domain.Point, destinations []domain.Point) (*domain.RouteMatrix, error) {
	if len(destinations) == 0 {
		return nil, fmt.Errorf("destinations cannot be empty")
	}

	// Coordinate list: origin first, then destinations. OSRM wants lon,lat.
	coordinates := make([]string, 0, len(destinations)+1)
	coordinates = append(coordinates, fmt.Sprintf("%f,%f", origin.Lon, origin.Lat))
	for _, d := range destinations {
		coordinates = append(coordinates, fmt.Sprintf("%f,%f", d.Lon, d.Lat))
	}

	destIndices := make([]string, len(destinations))
	for i := range destinations {
		destIndices[i] = fmt.Sprintf("%d", i+1)
	}

	// Semicolons in query values must be percent-encoded; unescaped ";" is
	// dropped by query parsers since Go 1.17.
	reqURL := fmt.Sprintf("%s/table/v1/%s/%s?sources=0&destinations=%s&annotations=duration,distance",
		c.baseURL,
		c.profile,
		strings.Join(coordinates, ";"),
		url.QueryEscape(strings.Join(destIndices, ";")),
	)

	c.logger.Debug("Calling OSRM table API",
		zap.Int("destinations_count", len(destinations)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("osrm: failed to create request: %v", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("OSRM request timed out", zap.Error(err))
			return nil, pkgerrors.ErrProviderTimeout.WithMessage("osrm: request timed out")
		}
		c.logger.Error("OSRM request failed", zap.Error(err))
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("osrm: request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OSRM API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("osrm: status %d", resp.StatusCode))
	}

	var decoded tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Error("Failed to decode OSRM response", zap.Error(err))
		return nil, pkgerrors.ErrProviderFailure.WithMessage("osrm: malformed response")
	}

	if decoded.Code != "Ok" {
		c.logger.Error("OSRM returned non-Ok code",
			zap.String("code", decoded.Code),
			zap.String("message", decoded.Message))
		return nil, pkgerrors.ErrProviderFailure.WithMessage(fmt.Sprintf("osrm: code %s", decoded.Code))
	}

	if len(decoded.Durations) == 0 || len(decoded.Distances) == 0 ||
		len(decoded.Durations[0]) != len(destinations) ||
		len(decoded.Distances[0]) != len(destinations) {
		return nil, pkgerrors.ErrProviderFailure.WithMessage("osrm: matrix size mismatch")
	}

	matrix := &domain.RouteMatrix{
		Durations: decoded.Durations[0],
		Distances: decoded.Distances[0],
	}

	c.logger.Debug("OSRM table API call successful",
		zap.Int("results", len(matrix.Durations)))

	return matrix, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
