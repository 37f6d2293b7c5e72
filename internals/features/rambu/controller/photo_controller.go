package controller

import (
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "rambuku_backend/internals/features/rambu/model"
	service "rambuku_backend/internals/features/rambu/service"
	helper "rambuku_backend/internals/helpers"
)

type PhotoController struct {
	DB     *gorm.DB
	Photos *service.PhotoService
}

func NewPhotoController(db *gorm.DB, photos *service.PhotoService) *PhotoController {
	return &PhotoController{DB: db, Photos: photos}
}

func (ctrl *PhotoController) GetByRambu(c *fiber.Ctx) error {
	rambuID, err := strconv.Atoi(c.Params("rambuId"))
	if err != nil || rambuID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID rambu tidak valid")
	}

	var photos []model.Photo
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("rambu_id = ?", rambuID).
		Order("type ASC, created_at DESC").
		Find(&photos).Error; err != nil {
		log.Println("[ERROR] list photo:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil foto")
	}
	return helper.JsonOK(c, "ok", photos)
}

// Upload menambah foto ad-hoc (atau slot tertentu via field type) ke rambu.
func (ctrl *PhotoController) Upload(c *fiber.Ctx) error {
	rambuID, err := strconv.Atoi(c.Params("rambuId"))
	if err != nil || rambuID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID rambu tidak valid")
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}

	photoType := model.PhotoTypeAdhoc
	if v := c.FormValue("type"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= model.PhotoTypeAdhoc && n <= model.PhotoTypeP100 {
			photoType = n
		}
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}

	photo, err := ctrl.Photos.Attach(c.UserContext(), rambuID, photoType, fh.Filename, data)
	if err != nil {
		log.Println("[ERROR] upload photo:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan foto")
	}
	return helper.JsonCreated(c, "Foto berhasil diunggah", photo)
}

func (ctrl *PhotoController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var photo model.Photo
	if err := ctrl.DB.WithContext(c.UserContext()).First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Foto tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil foto")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&photo).Error; err != nil {
		log.Println("[ERROR] delete photo:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus foto")
	}
	// objek storage ikut dibersihkan; kegagalan tidak menggagalkan response
	if err := ctrl.Photos.Storage.Delete(c.UserContext(), photo.URL); err != nil {
		log.Printf("[WARN] hapus objek %s: %v", photo.URL, err)
	}
	return helper.JsonDeleted(c, "Foto berhasil dihapus", fiber.Map{"id": id})
}
