package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rambuku_backend/internals/constants"
	userController "rambuku_backend/internals/features/users/controller"
	"rambuku_backend/internals/middlewares"
	"rambuku_backend/internals/middlewares/auth"
)

// UserPublicRoutes: hanya login (dibatasi rate limiter khusus).
func UserPublicRoutes(api fiber.Router, db *gorm.DB) {
	authCtrl := userController.NewAuthController(db)

	api.Post("/login", middlewares.LoginRateLimiter(), authCtrl.Login)
}

// UserPrivateRoutes: logout + manajemen user. Listing boleh diakses
// superadmin & manager, mutasi hanya superadmin.
func UserPrivateRoutes(api fiber.Router, db *gorm.DB) {
	authCtrl := userController.NewAuthController(db)
	userCtrl := userController.NewUserController(db)

	api.Post("/users/logout", authCtrl.Logout)

	readRoles := auth.RequireRoles(constants.RoleSuperadmin, constants.RoleManager)
	writeRoles := auth.RequireRoles(constants.RoleSuperadmin)

	api.Get("/users", readRoles, userCtrl.GetAll)
	api.Get("/users-crud", readRoles, userCtrl.GetCrudList)
	api.Get("/users/:id", readRoles, userCtrl.GetByID)
	api.Post("/users", writeRoles, userCtrl.Create)
	api.Put("/users/:id", writeRoles, userCtrl.Update)
	api.Delete("/users/:id", writeRoles, userCtrl.Delete)
}
