package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rambuku_backend/internals/constants"
	helper "rambuku_backend/internals/helpers"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// ChartItem: satu batang/juring pada chart dashboard.
type ChartItem struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// DashboardStats menghitung jumlah rambu per status + total. Rambu
// berstatus trash ikut total, mengikuti perilaku dashboard lama.
func (ctrl *ReportController) DashboardStats(c *fiber.Ctx) error {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	if err := ctrl.DB.WithContext(c.UserContext()).
		Table("rambu").
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		log.Println("[ERROR] dashboard stats:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}

	summary := fiber.Map{
		constants.RambuStatusDraft:     int64(0),
		constants.RambuStatusPublished: int64(0),
		constants.RambuStatusRusak:     int64(0),
		constants.RambuStatusHilang:    int64(0),
	}
	var total int64
	for _, r := range rows {
		total += r.Count
		if _, ok := summary[r.Status]; ok {
			summary[r.Status] = r.Count
		}
	}
	summary["total"] = total

	return c.JSON(fiber.Map{"summary": summary})
}

// ReportPerProvince: jumlah rambu per provinsi (hanya provinsi yang
// punya data), urut menurun untuk chart.
func (ctrl *ReportController) ReportPerProvince(c *fiber.Ctx) error {
	var data []ChartItem
	err := ctrl.DB.WithContext(c.UserContext()).
		Table("rambu").
		Select("COALESCE(provinces.prov_name, 'Unknown') AS label, COUNT(*) AS value").
		Joins("LEFT JOIN provinces ON provinces.prov_id = rambu.prov_id").
		Group("provinces.prov_name").
		Order("value DESC").
		Scan(&data).Error
	if err != nil {
		log.Println("[ERROR] report per province:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil laporan")
	}
	if data == nil {
		data = []ChartItem{}
	}
	return c.JSON(fiber.Map{"data": data})
}

// ReportPerUser: jumlah rambu per user penginput; baris tanpa input_by
// dikelompokkan ke "Tidak Diketahui".
func (ctrl *ReportController) ReportPerUser(c *fiber.Ctx) error {
	var data []ChartItem
	err := ctrl.DB.WithContext(c.UserContext()).
		Table("rambu").
		Select("COALESCE(users.name, 'Tidak Diketahui') AS label, COUNT(*) AS value").
		Joins("LEFT JOIN users ON users.id = rambu.input_by").
		Group("users.name").
		Order("value DESC").
		Scan(&data).Error
	if err != nil {
		log.Println("[ERROR] report per user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil laporan")
	}
	if data == nil {
		data = []ChartItem{}
	}
	return c.JSON(fiber.Map{"data": data})
}
