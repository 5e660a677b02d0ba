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

// RiskHandler serves the environmental hazard endpoints.
type RiskHandler struct {
	riskUC *usecase.RiskUsecase
	logger *zap.Logger
}

func NewRiskHandler(riskUC *usecase.RiskUsecase, logger *zap.Logger) *RiskHandler {
	return &RiskHandler{
		riskUC: riskUC,
		logger: logger,
	}
}

// Risks godoc
// @Summary Environmental hazard report for a point
// @Description Evaluates flood, seismic, soil, landslide, noise and mining hazards around the point. The report lists only hazards flagged at-risk; a check whose data sources all failed is reported as unknown and excluded.
// @Tags Risks
// @Produce json
// @Param lat query number true "Latitude (WGS84)"
// @Param lon query number true "Longitude (WGS84)"
// @Success 200 {object} utils.SuccessResponse{data=dto.RiskReportResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/risks [get]
func (h *RiskHandler) Risks(c *fiber.Ctx) error {
	var req dto.PointQuery
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage("invalid query parameters"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	origin := domain.Point{Lat: req.Lat, Lon: req.Lon}

	result, err := h.riskUC.Risks(c.Context(), origin)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// ParcelRisks godoc
// @Summary Environmental hazard report for a parcel
// @Description Resolves the parcel centroid and evaluates all hazards from there.
// @Tags Risks
// @Accept json
// @Produce json
// @Param request body dto.ParcelRequest true "Parcel outline"
// @Success 200 {object} utils.SuccessResponse{data=dto.RiskReportResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/parcel/risks [post]
func (h *RiskHandler) ParcelRisks(c *fiber.Ctx) error {
	var req dto.ParcelRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage("invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	origin, err := resolveParcelOrigin(&req)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.riskUC.Risks(c.Context(), origin)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
