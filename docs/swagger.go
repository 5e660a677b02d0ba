// Package docs Surroundings Microservice API.
//
// Analyzes the surroundings of a location or cadastral parcel: nearby
// places by category with travel-time estimates, environmental hazard
// evaluation (flood, seismic, soil, landslide, noise, mining) and noise
// exposure from official strategic noise maps.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
