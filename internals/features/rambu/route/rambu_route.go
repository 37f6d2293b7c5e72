package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rambuController "rambuku_backend/internals/features/rambu/controller"
	service "rambuku_backend/internals/features/rambu/service"
)

// RambuPublicRoutes: endpoint tanpa auth (peta publik + foto per rambu).
func RambuPublicRoutes(api fiber.Router, db *gorm.DB, photos *service.PhotoService) {
	rambuCtrl := rambuController.NewRambuController(db, photos)
	photoCtrl := rambuController.NewPhotoController(db, photos)

	api.Get("/rambu", rambuCtrl.GetPublic)
	api.Get("/photo/by-rambu/:rambuId", photoCtrl.GetByRambu)
}

// RambuPrivateRoutes: CRUD + import, di belakang auth middleware.
func RambuPrivateRoutes(api fiber.Router, db *gorm.DB, photos *service.PhotoService) {
	rambuCtrl := rambuController.NewRambuController(db, photos)
	photoCtrl := rambuController.NewPhotoController(db, photos)
	importCtrl := rambuController.NewImportController(db, service.NewImportService(db, photos))

	api.Get("/rambu-crud", rambuCtrl.GetCrudList)
	api.Post("/rambu", rambuCtrl.Create)
	api.Put("/rambu/:id", rambuCtrl.Update)
	api.Delete("/rambu/:id", rambuCtrl.Delete)

	api.Post("/photo/:rambuId", photoCtrl.Upload)
	api.Delete("/photo/:id", photoCtrl.Delete)

	api.Post("/import/rambu-excel", importCtrl.ImportExcel)
}
