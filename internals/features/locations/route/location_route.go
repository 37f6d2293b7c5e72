package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	locController "rambuku_backend/internals/features/locations/controller"
)

// LocationPublicRoutes: seluruh endpoint wilayah bersifat read-only dan
// dipakai peta publik, jadi tidak di belakang auth.
func LocationPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := locController.NewLocationController(db)

	loc := api.Group("/locations")
	loc.Get("/provinces", ctrl.GetProvinces)
	loc.Get("/cities", ctrl.GetCities)
	loc.Get("/districts", ctrl.GetDistricts)
	loc.Get("/subdistricts", ctrl.GetSubdistricts)
	loc.Get("/province-geojson", ctrl.GetProvinceGeoJSON)

	api.Get("/province-geom/:provId", ctrl.GetProvinceGeomRemote)
}
