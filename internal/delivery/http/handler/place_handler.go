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

// PlaceHandler serves the surroundings search endpoints.
type PlaceHandler struct {
	placeUC *usecase.PlaceSearchUsecase
	logger  *zap.Logger
}

func NewPlaceHandler(placeUC *usecase.PlaceSearchUsecase, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		placeUC: placeUC,
		logger:  logger,
	}
}

// SearchCategory godoc
// @Summary Search places of one category around a point
// @Description Finds nearby places of the given category (education, finance, transport, infrastructure, green_areas, water, nuisances), sorted by distance, with walk/bike/car travel-time estimates.
// @Tags Surroundings
// @Produce json
// @Param category path string true "Place category"
// @Param lat query number true "Latitude (WGS84)"
// @Param lon query number true "Longitude (WGS84)"
// @Param radius_m query number false "Search radius in meters (50-50000)" default(1000)
// @Success 200 {object} utils.SuccessResponse{data=dto.PlacesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/surroundings/{category} [get]
func (h *PlaceHandler) SearchCategory(c *fiber.Ctx) error {
	var req dto.PointQuery
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage("invalid query parameters"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	category := c.Params("category")
	origin := domain.Point{Lat: req.Lat, Lon: req.Lon}

	result, err := h.placeUC.SearchCategory(c.Context(), origin, req.RadiusM, category)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.Total,
		RadiusM: req.RadiusM,
	})
}

// Surroundings godoc
// @Summary Combined surroundings report around a point
// @Description Runs every place category around the point and returns a per-category breakdown. Categories with no results are marked found=false.
// @Tags Surroundings
// @Produce json
// @Param lat query number true "Latitude (WGS84)"
// @Param lon query number true "Longitude (WGS84)"
// @Param radius_m query number false "Search radius in meters (50-50000)" default(1000)
// @Success 200 {object} utils.SuccessResponse{data=dto.SurroundingsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/surroundings [get]
func (h *PlaceHandler) Surroundings(c *fiber.Ctx) error {
	var req dto.PointQuery
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage("invalid query parameters"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, pkgerrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	origin := domain.Point{Lat: req.Lat, Lon: req.Lon}

	result, err := h.placeUC.Surroundings(c.Context(), origin, req.RadiusM)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		RadiusM: result.RadiusM,
	})
}

// ParcelSurroundings godoc
// @Summary Combined surroundings report for a parcel
// @Description Accepts a cadastral parcel outline (WGS84 or EPSG:2180), resolves its centroid and runs the combined surroundings report from there.
// @Tags Surroundings
// @Accept json
// @Produce json
// @Param request body dto.ParcelRequest true "Parcel outline"
// @Success 200 {object} utils.SuccessResponse{data=dto.SurroundingsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/parcel/surroundings [post]
func (h *PlaceHandler) ParcelSurroundings(c *fiber.Ctx) error {
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

	result, err := h.placeUC.Surroundings(c.Context(), origin, req.RadiusM)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		RadiusM: result.RadiusM,
	})
}
