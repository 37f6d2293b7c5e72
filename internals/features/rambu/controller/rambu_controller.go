package controller

import (
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rambuku_backend/internals/constants"
	dto "rambuku_backend/internals/features/rambu/dto"
	model "rambuku_backend/internals/features/rambu/model"
	service "rambuku_backend/internals/features/rambu/service"
	userModel "rambuku_backend/internals/features/users/model"
	helper "rambuku_backend/internals/helpers"
)

// Field multipart per slot foto: upload file langsung atau share-link Drive.
var photoFormFields = []struct {
	FileField string
	URLField  string
	Type      int
}{
	{"photo_gps", "photo_gps_url", model.PhotoTypeGPS},
	{"photo_0", "photo_0_url", model.PhotoTypeP0},
	{"photo_50", "photo_50_url", model.PhotoTypeP50},
	{"photo_100", "photo_100_url", model.PhotoTypeP100},
}

type RambuController struct {
	DB     *gorm.DB
	Photos *service.PhotoService
}

func NewRambuController(db *gorm.DB, photos *service.PhotoService) *RambuController {
	return &RambuController{DB: db, Photos: photos}
}

// GetPublic melayani peta publik: tanpa auth, tanpa paginasi, foto ikut.
func (ctrl *RambuController) GetPublic(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Rambu{}).Preload("Photos")

	for param, col := range map[string]string{
		"categoryId":     "category_id",
		"disasterTypeId": "disaster_type_id",
		"prov_id":        "prov_id",
		"city_id":        "city_id",
		"district_id":    "district_id",
		"subdistrict_id": "subdistrict_id",
	} {
		if v := helper.QueryInt(c, param); v > 0 {
			q = q.Where(col+" = ?", v)
		}
	}

	var rows []model.Rambu
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Println("[ERROR] list rambu:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data rambu")
	}
	return c.JSON(rows)
}

// GetCrudList listing admin berpaginasi dengan pencarian, filter status
// multi-nilai, dan row-level scope: selain superadmin hanya melihat rambu
// yang diinput user dari satuan kerja yang sama.
func (ctrl *RambuController) GetCrudList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	db := ctrl.DB.WithContext(c.UserContext())

	q := db.Table("rambu").
		Select(`rambu.id, rambu.name, rambu.description, rambu.status, rambu.lat, rambu.lng,
			rambu.jml_unit, rambu.input_by, rambu.created_at,
			categories.name AS category_name, disaster_types.name AS disaster_name,
			provinces.prov_name AS province_name, cities.city_name AS city_name,
			districts.dis_name AS district_name, subdistricts.subdis_name AS subdistrict_name`).
		Joins("LEFT JOIN categories ON categories.id = rambu.category_id").
		Joins("LEFT JOIN disaster_types ON disaster_types.id = rambu.disaster_type_id").
		Joins("LEFT JOIN provinces ON provinces.prov_id = rambu.prov_id").
		Joins("LEFT JOIN cities ON cities.city_id = rambu.city_id").
		Joins("LEFT JOIN districts ON districts.dis_id = rambu.district_id").
		Joins("LEFT JOIN subdistricts ON subdistricts.subdis_id = rambu.subdistrict_id")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("rambu.name ILIKE ? OR rambu.description ILIKE ?", like, like)
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		statuses := []string{}
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
		if len(statuses) > 0 {
			q = q.Where("rambu.status IN ?", statuses)
		}
	} else {
		// default: sampah tidak ikut
		q = q.Where("rambu.status <> ?", constants.RambuStatusTrash)
	}

	for param, col := range map[string]string{
		"categoryId":     "rambu.category_id",
		"disasterTypeId": "rambu.disaster_type_id",
		"prov_id":        "rambu.prov_id",
		"city_id":        "rambu.city_id",
		"district_id":    "rambu.district_id",
		"subdistrict_id": "rambu.subdistrict_id",
	} {
		if v := helper.QueryInt(c, param); v > 0 {
			q = q.Where(col+" = ?", v)
		}
	}

	// Row-level scope per satuan kerja.
	role, _ := c.Locals("role").(int)
	if role != constants.RoleSuperadmin {
		if satkerID, ok := c.Locals("satker_id").(int); ok && satkerID > 0 {
			sub := ctrl.DB.Model(&userModel.User{}).Select("id").Where("satker_id = ?", satkerID)
			q = q.Where("rambu.input_by IN (?)", sub)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] count rambu-crud:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data rambu")
	}

	type flatRow struct {
		ID              int
		Name            string
		Description     *string
		Status          string
		Lat             float64
		Lng             float64
		JmlUnit         *int
		InputBy         *int
		CreatedAt       time.Time
		CategoryName    *string
		DisasterName    *string
		ProvinceName    *string
		CityName        *string
		DistrictName    *string
		SubdistrictName *string
	}
	var raw []flatRow
	if err := q.Order("rambu.created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&raw).Error; err != nil {
		log.Println("[ERROR] list rambu-crud:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data rambu")
	}

	data := make([]dto.RambuListItem, 0, len(raw))
	for _, r := range raw {
		data = append(data, dto.RambuListItem{
			ID:              r.ID,
			Name:            r.Name,
			Description:     r.Description,
			Status:          r.Status,
			Lat:             r.Lat,
			Lng:             r.Lng,
			JmlUnit:         r.JmlUnit,
			InputBy:         r.InputBy,
			CreatedAt:       r.CreatedAt.Format(time.RFC3339),
			CategoryName:    r.CategoryName,
			DisasterName:    r.DisasterName,
			ProvinceName:    r.ProvinceName,
			CityName:        r.CityName,
			DistrictName:    r.DistrictName,
			SubdistrictName: r.SubdistrictName,
		})
	}

	return helper.JsonList(c, "ok", data, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// Create membuat rambu baru dari multipart form + foto per slot
// (file langsung atau URL Drive). Kegagalan satu foto tidak membatalkan
// record yang sudah tersimpan.
func (ctrl *RambuController) Create(c *fiber.Ctx) error {
	var req dto.RambuCreateRequest
	if err := req.FromForm(c); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	status := req.Status
	if status == "" {
		status = constants.RambuStatusDraft
	}
	rambu := model.Rambu{
		Name:           req.Name,
		Description:    req.Description,
		Status:         status,
		Lat:            req.Lat,
		Lng:            req.Lng,
		CategoryID:     req.CategoryID,
		DisasterTypeID: req.DisasterTypeID,
		ProvID:         req.ProvID,
		CityID:         req.CityID,
		DistrictID:     req.DistrictID,
		SubdistrictID:  req.SubdistrictID,
		JmlUnit:        req.JmlUnit,
	}
	if userID, ok := c.Locals("user_id").(int); ok && userID > 0 {
		rambu.InputBy = &userID
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&rambu).Error; err != nil {
		log.Println("[ERROR] create rambu:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan rambu")
	}

	ctrl.processFormPhotos(c, rambu.ID, false)

	var full model.Rambu
	if err := ctrl.DB.WithContext(c.UserContext()).Preload("Photos").
		First(&full, rambu.ID).Error; err != nil {
		return helper.JsonCreated(c, "Rambu berhasil dibuat", rambu)
	}
	return helper.JsonCreated(c, "Rambu berhasil dibuat", full)
}

// Update mengubah field yang dikirim dan MENGGANTI foto per slot yang
// disertakan (slot lama dihapus dulu supaya tiap slot maksimal satu foto).
func (ctrl *RambuController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var existing model.Rambu
	if err := ctrl.DB.WithContext(c.UserContext()).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Rambu tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil rambu")
	}

	var req dto.RambuUpdateRequest
	if err := req.FromForm(c); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if updates := req.Updates(); len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.Rambu{}).
			Where("id = ?", id).Updates(updates).Error; err != nil {
			log.Println("[ERROR] update rambu:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui rambu")
		}
	}

	ctrl.processFormPhotos(c, id, true)

	var full model.Rambu
	if err := ctrl.DB.WithContext(c.UserContext()).Preload("Photos").
		First(&full, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil rambu")
	}
	return helper.JsonUpdated(c, "Rambu berhasil diperbarui", full)
}

// Delete soft-delete: status → trash (jalur import tidak pernah hard delete).
func (ctrl *RambuController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Model(&model.Rambu{}).
		Where("id = ?", id).Update("status", constants.RambuStatusTrash)
	if res.Error != nil {
		log.Println("[ERROR] delete rambu:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus rambu")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Rambu tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Rambu dipindahkan ke trash", fiber.Map{"id": id})
}

// processFormPhotos memproses semua slot foto dari form. Error tiap slot
// hanya dicatat: lampiran foto tidak pernah menggagalkan request.
func (ctrl *RambuController) processFormPhotos(c *fiber.Ctx, rambuID int, replace bool) {
	ctx := c.UserContext()
	for _, pf := range photoFormFields {
		if fh, err := c.FormFile(pf.FileField); err == nil && fh != nil && fh.Size > 0 {
			f, err := fh.Open()
			if err != nil {
				log.Printf("[WARN] buka %s: %v", pf.FileField, err)
				continue
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				log.Printf("[WARN] baca %s: %v", pf.FileField, err)
				continue
			}
			var attachErr error
			if replace {
				_, attachErr = ctrl.Photos.Replace(ctx, rambuID, pf.Type, fh.Filename, data)
			} else {
				_, attachErr = ctrl.Photos.Attach(ctx, rambuID, pf.Type, fh.Filename, data)
			}
			if attachErr != nil {
				log.Printf("[WARN] foto %s (rambu %d) gagal: %v", pf.FileField, rambuID, attachErr)
			}
		}

		if url := strings.TrimSpace(c.FormValue(pf.URLField)); url != "" {
			if _, err := ctrl.Photos.AttachFromURL(ctx, rambuID, pf.Type, url, replace); err != nil {
				log.Printf("[WARN] foto %s dari URL (rambu %d) gagal: %v", pf.URLField, rambuID, err)
			}
		}
	}
}
