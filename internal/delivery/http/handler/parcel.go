package handler

import (
	"github.com/surroundings-microservice/internal/domain"
	pkgerrors "github.com/surroundings-microservice/internal/pkg/errors"
	"github.com/surroundings-microservice/internal/usecase/dto"
)

// resolveParcelOrigin turns a parcel request into the WGS84 centroid all
// searches run from.
func resolveParcelOrigin(req *dto.ParcelRequest) (domain.Point, error) {
	srid := req.SRID
	if srid == 0 {
		srid = domain.SRIDWGS84
	}

	parcel, err := domain.NewParcelFromRing(req.ID, srid, req.Ring)
	if err != nil {
		return domain.Point{}, pkgerrors.ErrParcelGeometry.WithMessage("parcel outline could not be parsed")
	}
	parcel.Voivodeship = req.Voivodeship

	origin, err := parcel.Centroid()
	if err != nil {
		return domain.Point{}, pkgerrors.ErrParcelGeometry.WithMessage("parcel centroid could not be computed")
	}

	return origin, nil
}
