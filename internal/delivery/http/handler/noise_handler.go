package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/surroundings-microservice/internal/domain"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
	"github.com/surroundings-microservice/internal/pkg/utils"
	"github.com/surroundings-microservice/internal/pkg/validator"
	"github.com/surroundings-microservice/internal/usecase"
	"github.com/surroundings-microservice/internal/usecase/dto"
)

// NoiseHandler serves the standalone noise exposure endpoint.
type NoiseHandler struct {
	noiseUC *usecase.NoiseUsecase
	logger  *zap.Logger
}

func NewNoiseHandler(noiseUC *usecase.NoiseUsecase, logger *zap.Logger) *NoiseHandler {
	return &NoiseHandler{
		noiseUC: noiseUC,
		logger:  logger,
	}
}

// Noise godoc
// @Summary Noise exposure at a point
// @Description Resolves the noise level from official strategic noise maps, falling back to an emitter-based estimate when no map covers the point. The data_source field labels which source produced the value.
// @Tags Noise
// @Produce json
// @Param lat query number true "Latitude (WGS84)"
// @Param lon query number true "Longitude (WGS84)"
// @Success 200 {object} utils.SuccessResponse{data=dto.NoiseResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/noise [get]
func (h *NoiseHandler) Noise(c *fiber.Ctx) error {
	var req dto.PointQuery
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage("invalid query parameters"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	origin := domain.Point{Lat: req.Lat, Lon: req.Lon}

	noise, err := h.noiseUC.Evaluate(c.Context(), origin)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, &dto.NoiseResponse{
		Origin: origin,
		Noise:  noise,
	}, nil)
}
