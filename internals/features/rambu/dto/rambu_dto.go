package dto

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Request create/update dikirim sebagai multipart form (field + file foto),
// jadi semua nilai datang sebagai string dan dikoersi di sini.

type RambuCreateRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    *string `json:"description"`
	Lat            float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng            float64 `json:"lng" validate:"gte=-180,lte=180"`
	CategoryID     int     `json:"categoryId" validate:"required,gt=0"`
	DisasterTypeID int     `json:"disasterTypeId" validate:"required,gt=0"`
	ProvID         *int    `json:"prov_id"`
	CityID         *int    `json:"city_id"`
	DistrictID     *int    `json:"district_id"`
	SubdistrictID  *int    `json:"subdistrict_id"`
	JmlUnit        *int    `json:"jmlUnit"`
	Status         string  `json:"status"`
}

// formNumber menerima desimal titik maupun koma (kebiasaan input lama).
func formNumber(c *fiber.Ctx, key string) (float64, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(c.FormValue(key)), ",", ".")
	if raw == "" {
		return 0, errors.New(key + " wajib diisi")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(key + " bukan angka valid")
	}
	return f, nil
}

func formInt(c *fiber.Ctx, key string) *int {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func (r *RambuCreateRequest) FromForm(c *fiber.Ctx) error {
	r.Name = strings.TrimSpace(c.FormValue("name"))
	if d := strings.TrimSpace(c.FormValue("description")); d != "" {
		r.Description = &d
	}

	var err error
	if r.Lat, err = formNumber(c, "lat"); err != nil {
		return err
	}
	if r.Lng, err = formNumber(c, "lng"); err != nil {
		return err
	}
	if r.Lat == 0 || r.Lng == 0 {
		return errors.New("Latitude/Longitude tidak valid")
	}

	if v := formInt(c, "categoryId"); v != nil {
		r.CategoryID = *v
	}
	if v := formInt(c, "disasterTypeId"); v != nil {
		r.DisasterTypeID = *v
	}
	r.ProvID = formInt(c, "prov_id")
	r.CityID = formInt(c, "city_id")
	r.DistrictID = formInt(c, "district_id")
	r.SubdistrictID = formInt(c, "subdistrict_id")
	r.JmlUnit = formInt(c, "jmlUnit")
	r.Status = strings.TrimSpace(c.FormValue("status"))
	return nil
}

// RambuUpdateRequest: semua field opsional; hanya yang dikirim yang diubah.
type RambuUpdateRequest struct {
	updates map[string]any
}

// FromForm mengumpulkan field yang hadir di form menjadi map update GORM.
func (r *RambuUpdateRequest) FromForm(c *fiber.Ctx) error {
	r.updates = map[string]any{}

	if v := strings.TrimSpace(c.FormValue("name")); v != "" {
		r.updates["name"] = v
	}
	if v := strings.TrimSpace(c.FormValue("description")); v != "" {
		r.updates["description"] = v
	}
	if v := strings.TrimSpace(c.FormValue("status")); v != "" {
		r.updates["status"] = v
	}
	if strings.TrimSpace(c.FormValue("lat")) != "" {
		lat, err := formNumber(c, "lat")
		if err != nil || lat == 0 || lat < -90 || lat > 90 {
			return errors.New("Latitude/Longitude tidak valid")
		}
		r.updates["lat"] = lat
	}
	if strings.TrimSpace(c.FormValue("lng")) != "" {
		lng, err := formNumber(c, "lng")
		if err != nil || lng == 0 || lng < -180 || lng > 180 {
			return errors.New("Latitude/Longitude tidak valid")
		}
		r.updates["lng"] = lng
	}
	for form, col := range map[string]string{
		"categoryId":     "category_id",
		"disasterTypeId": "disaster_type_id",
		"prov_id":        "prov_id",
		"city_id":        "city_id",
		"district_id":    "district_id",
		"subdistrict_id": "subdistrict_id",
		"jmlUnit":        "jml_unit",
	} {
		if v := formInt(c, form); v != nil {
			r.updates[col] = *v
		}
	}
	return nil
}

func (r *RambuUpdateRequest) Updates() map[string]any { return r.updates }

// RambuListItem baris listing admin: referensi di-flatten jadi nama.
type RambuListItem struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	Status          string  `json:"status"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	JmlUnit         *int    `json:"jmlUnit"`
	CategoryName    *string `json:"categoryName"`
	DisasterName    *string `json:"disasterTypeName"`
	ProvinceName    *string `json:"provinceName"`
	CityName        *string `json:"cityName"`
	DistrictName    *string `json:"districtName"`
	SubdistrictName *string `json:"subdistrictName"`
	InputBy         *int    `json:"input_by"`
	CreatedAt       string  `json:"createdAt"`
}
