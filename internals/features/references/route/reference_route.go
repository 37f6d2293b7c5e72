package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rambuku_backend/internals/constants"
	refController "rambuku_backend/internals/features/references/controller"
	"rambuku_backend/internals/middlewares/auth"
)

// ReferencePublicRoutes: listing kategori & jenis bencana dibuka tanpa
// auth karena dipakai peta publik.
func ReferencePublicRoutes(api fiber.Router, db *gorm.DB) {
	catCtrl := refController.NewCategoryController(db)
	dtCtrl := refController.NewDisasterTypeController(db)

	ref := api.Group("/ref")
	ref.Get("/categories", catCtrl.GetAll)
	ref.Get("/categories/:id", catCtrl.GetByID)
	ref.Get("/disaster-types", dtCtrl.GetAll)
	ref.Get("/disaster-types/:id", dtCtrl.GetByID)
}

// ReferencePrivateRoutes: mutasi referensi, minimal role admin.
func ReferencePrivateRoutes(api fiber.Router, db *gorm.DB) {
	catCtrl := refController.NewCategoryController(db)
	dtCtrl := refController.NewDisasterTypeController(db)

	adminRoles := auth.RequireRoles(constants.RoleSuperadmin, constants.RoleAdmin)

	ref := api.Group("/ref")
	ref.Post("/categories", adminRoles, catCtrl.Create)
	ref.Put("/categories/:id", adminRoles, catCtrl.Update)
	ref.Delete("/categories/:id", adminRoles, catCtrl.Delete)

	ref.Post("/disaster-types", adminRoles, dtCtrl.Create)
	ref.Put("/disaster-types/:id", adminRoles, dtCtrl.Update)
	ref.Delete("/disaster-types/:id", adminRoles, dtCtrl.Delete)
}
