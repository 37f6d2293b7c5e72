package controller

import (
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "rambuku_backend/internals/features/locations/model"
	helper "rambuku_backend/internals/helpers"
)

type LocationController struct {
	DB     *gorm.DB
	Client *http.Client
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{
		DB:     db,
		Client: &http.Client{Timeout: 20 * time.Second},
	}
}

// GetProvinces: daftar provinsi (?q cari nama, ?limit batasi hasil).
// Kolom geom sengaja tidak ikut supaya payload kecil.
func (ctrl *LocationController) GetProvinces(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.Province{}).
		Select("prov_id", "prov_name").
		Order("prov_name ASC")
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("prov_name ILIKE ?", "%"+search+"%")
	}
	if limit := helper.QueryInt(c, "limit"); limit > 0 {
		q = q.Limit(limit)
	}

	var rows []model.Province
	if err := q.Find(&rows).Error; err != nil {
		log.Println("[ERROR] list provinces:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil provinsi")
	}
	return c.JSON(rows)
}

func (ctrl *LocationController) GetCities(c *fiber.Ctx) error {
	provID := helper.QueryInt(c, "prov_id")
	if provID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "prov_id wajib diisi")
	}
	var rows []model.City
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("prov_id = ?", provID).
		Order("city_name ASC").
		Find(&rows).Error; err != nil {
		log.Println("[ERROR] list cities:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kota/kabupaten")
	}
	return c.JSON(rows)
}

func (ctrl *LocationController) GetDistricts(c *fiber.Ctx) error {
	cityID := helper.QueryInt(c, "city_id")
	if cityID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "city_id wajib diisi")
	}
	var rows []model.District
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("city_id = ?", cityID).
		Order("dis_name ASC").
		Find(&rows).Error; err != nil {
		log.Println("[ERROR] list districts:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kecamatan")
	}
	return c.JSON(rows)
}

func (ctrl *LocationController) GetSubdistricts(c *fiber.Ctx) error {
	disID := helper.QueryInt(c, "district_id")
	if disID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "district_id wajib diisi")
	}
	var rows []model.Subdistrict
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("dis_id = ?", disID).
		Order("subdis_name ASC").
		Find(&rows).Error; err != nil {
		log.Println("[ERROR] list subdistricts:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelurahan/desa")
	}
	return c.JSON(rows)
}

// GetProvinceGeoJSON membungkus kolom geom menjadi Feature GeoJSON.
func (ctrl *LocationController) GetProvinceGeoJSON(c *fiber.Ctx) error {
	provID := helper.QueryInt(c, "prov_id")
	if provID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "prov_id wajib diisi")
	}
	var row model.Province
	if err := ctrl.DB.WithContext(c.UserContext()).First(&row, "prov_id = ?", provID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Provinsi tidak ditemukan")
	}
	if len(row.Geom) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Geometri provinsi belum tersedia")
	}
	return c.JSON(fiber.Map{
		"type": "Feature",
		"properties": fiber.Map{
			"prov_id":   row.ProvID,
			"prov_name": row.ProvName,
		},
		"geometry": row.Geom,
	})
}

// GetProvinceGeomRemote memproksi GeoJSON provinsi dari dataset publik
// indonesia-district di GitHub, dipetakan lewat provinceGeomSlug.
func (ctrl *LocationController) GetProvinceGeomRemote(c *fiber.Ctx) error {
	provID, err := c.ParamsInt("provId")
	if err != nil || provID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "provId tidak valid")
	}
	slug, ok := provinceGeomSlug[provID]
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Provinsi tidak ditemukan")
	}

	url := "https://raw.githubusercontent.com/JfrAziz/indonesia-district/master/provincia/" + slug + ".geojson"
	req, err := http.NewRequestWithContext(c.UserContext(), http.MethodGet, url, nil)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil GeoJSON")
	}
	resp, err := ctrl.Client.Do(req)
	if err != nil {
		log.Println("[ERROR] fetch province geojson:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil GeoJSON")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return helper.JsonError(c, fiber.StatusNotFound, "GeoJSON tidak ditemukan di GitHub")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Println("[ERROR] read province geojson:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil GeoJSON")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
