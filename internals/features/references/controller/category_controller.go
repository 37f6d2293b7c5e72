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

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetAll: seluruh kategori, urut nama (dipakai dropdown form & import).
func (ctrl *CategoryController) GetAll(c *fiber.Ctx) error {
	var rows []model.Category
	q := ctrl.DB.WithContext(c.UserContext()).Order("name ASC")
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := q.Find(&rows).Error; err != nil {
		log.Println("[ERROR] list categories:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}
	return c.JSON(rows)
}

func (ctrl *CategoryController) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var row model.Category
	if err := ctrl.DB.WithContext(c.UserContext()).First(&row, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
	}
	return c.JSON(row)
}

func (ctrl *CategoryController) Create(c *fiber.Ctx) error {
	var req dto.ReferenceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	row := model.Category{Code: strings.TrimSpace(req.Code), Name: strings.TrimSpace(req.Name)}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "Category_UNIQUE", "Nama kategori sudah ada")
		}
		log.Println("[ERROR] create category:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kategori")
	}
	return helper.JsonCreated(c, "Kategori berhasil dibuat", row)
}

func (ctrl *CategoryController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var row model.Category
	if err := ctrl.DB.WithContext(c.UserContext()).First(&row, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
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
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "Category_UNIQUE", "Nama kategori sudah ada")
		}
		log.Println("[ERROR] update category:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah kategori")
	}
	return helper.JsonUpdated(c, "Kategori berhasil diubah", row)
}

func (ctrl *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.Category{}, id)
	if res.Error != nil {
		log.Println("[ERROR] delete category:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kategori")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
	}
	return helper.JsonDeleted(c, "CATEGORY_DELETED", fiber.Map{"id": id})
}
