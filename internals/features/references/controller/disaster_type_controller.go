package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "rambuku_backend/internals/features/references/dto"
	model "rambuku_backend/internals/features/references/model"
	helper "rambuku_backend/internals/helpers"
)

type DisasterTypeController struct {
	DB *gorm.DB
}

func NewDisasterTypeController(db *gorm.DB) *DisasterTypeController {
	return &DisasterTypeController{DB: db}
}

func (ctrl *DisasterTypeController) GetAll(c *fiber.Ctx) error {
	var rows []model.DisasterType
	q := ctrl.DB.WithContext(c.UserContext()).Order("name ASC")
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := q.Find(&rows).Error; err != nil {
		log.Println("[ERROR] list disaster types:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jenis bencana")
	}
	return c.JSON(rows)
}

func (ctrl *DisasterTypeController) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var row model.DisasterType
	if err := ctrl.DB.WithContext(c.UserContext()).First(&row, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis bencana tidak ditemukan")
	}
	return c.JSON(row)
}

func (ctrl *DisasterTypeController) Create(c *fiber.Ctx) error {
	var req dto.ReferenceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	row := model.DisasterType{Code: strings.TrimSpace(req.Code), Name: strings.TrimSpace(req.Name)}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "DisasterType_UNIQUE", "Nama jenis bencana sudah ada")
		}
		log.Println("[ERROR] create disaster type:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat jenis bencana")
	}
	return helper.JsonCreated(c, "Jenis bencana berhasil dibuat", row)
}

func (ctrl *DisasterTypeController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var row model.DisasterType
	if err := ctrl.DB.WithContext(c.UserContext()).First(&row, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis bencana tidak ditemukan")
	}

	var req dto.ReferenceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	updates := map[string]interface{}{}
	if req.Code != nil && strings.TrimSpace(*req.Code) != "" {
		updates["code"] = strings.TrimSpace(*req.Code)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada kolom yang diubah")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Model(&row).Updates(updates).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "DisasterType_UNIQUE", "Nama jenis bencana sudah ada")
		}
		log.Println("[ERROR] update disaster type:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah jenis bencana")
	}
	return helper.JsonUpdated(c, "Jenis bencana berhasil diubah", row)
}

func (ctrl *DisasterTypeController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.DisasterType{}, id)
	if res.Error != nil {
		log.Println("[ERROR] delete disaster type:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus jenis bencana")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis bencana tidak ditemukan")
	}
	return helper.JsonDeleted(c, "DISASTERTYPE_DELETED", fiber.Map{"id": id})
}
