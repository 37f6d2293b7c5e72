package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rambuku_backend/internals/configs"
	locationRoute "rambuku_backend/internals/features/locations/route"
	rambuRoute "rambuku_backend/internals/features/rambu/route"
	rambuService "rambuku_backend/internals/features/rambu/service"
	referenceRoute "rambuku_backend/internals/features/references/route"
	reportRoute "rambuku_backend/internals/features/reports/route"
	userRoute "rambuku_backend/internals/features/users/route"
	"rambuku_backend/internals/helpers/storage"
	"rambuku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	blob, err := storage.NewFromEnv(configs.UploadDir)
	if err != nil {
		log.Fatalf("❌ Gagal menyiapkan storage: %v", err)
	}
	photos := rambuService.NewPhotoService(db, blob)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Mounting public routes...")
	public := app.Group("/api")
	userRoute.UserPublicRoutes(public, db)
	rambuRoute.RambuPublicRoutes(public, db, photos)
	referenceRoute.ReferencePublicRoutes(public, db)
	locationRoute.LocationPublicRoutes(public, db)

	// ===================== PRIVATE =====================
	log.Println("[INFO] Mounting private routes...")
	private := app.Group("/api", auth.AuthMiddleware(db))
	userRoute.UserPrivateRoutes(private, db)
	rambuRoute.RambuPrivateRoutes(private, db, photos)
	referenceRoute.ReferencePrivateRoutes(private, db)
	reportRoute.ReportPrivateRoutes(private, db)
}
