package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "rambuku_backend/internals/features/reports/controller"
)

// ReportPrivateRoutes: semua laporan dashboard butuh login.
func ReportPrivateRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)

	api.Get("/dashboard-stats", ctrl.DashboardStats)
	api.Get("/report-perprovince", ctrl.ReportPerProvince)
	api.Get("/report-peruser", ctrl.ReportPerUser)
}
