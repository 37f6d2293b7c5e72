package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rambuku_backend/internals/constants"
	dto "rambuku_backend/internals/features/users/dto"
	model "rambuku_backend/internals/features/users/model"
	helper "rambuku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func toUserItem(u model.User) dto.UserItem {
	item := dto.UserItem{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
		Status:   u.Status,
		SatkerID: u.SatkerID,
	}
	if u.SatuanKerja != nil {
		item.SatkerName = &u.SatuanKerja.Name
	}
	return item
}

// GetAll: seluruh user (superadmin & manager).
func (ctrl *UserController) GetAll(c *fiber.Ctx) error {
	var users []model.User
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("SatuanKerja").
		Order("id ASC").
		Find(&users).Error; err != nil {
		log.Println("[ERROR] list users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	items := make([]dto.UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, toUserItem(u))
	}
	return c.JSON(items)
}

// GetCrudList: listing terpaginasi untuk halaman admin, lengkap dengan
// pencarian & filter role/satker/status.
func (ctrl *UserController) GetCrudList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.User{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("username ILIKE ? OR name ILIKE ?", like, like)
	}
	if role := helper.QueryInt(c, "role"); role > 0 {
		q = q.Where("role = ?", role)
	}
	if satker := helper.QueryInt(c, "satker_id"); satker > 0 {
		q = q.Where("satker_id = ?", satker)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", helper.QueryInt(c, "status"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] count users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	var users []model.User
	if err := q.Preload("SatuanKerja").
		Order("id ASC").
		Limit(paging.PerPage).
		Offset(paging.Offset).
		Find(&users).Error; err != nil {
		log.Println("[ERROR] list users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	items := make([]dto.UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, toUserItem(u))
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GetByID: detail satu user.
func (ctrl *UserController) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var user model.User
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("SatuanKerja").
		First(&user, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return c.JSON(toUserItem(user))
}

// Create menambah user baru (superadmin). Password selalu di-hash bcrypt.
func (ctrl *UserController) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] hash password:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}

	user := model.User{
		Username: req.Username,
		Password: string(hash),
		Name:     req.Name,
		Role:     constants.RoleAdmin,
		Status:   constants.UserActive,
		SatkerID: req.SatkerID,
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "User_UNIQUE", "Username sudah dipakai")
		}
		log.Println("[ERROR] create user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}
	return helper.JsonCreated(c, "User berhasil dibuat", toUserItem(user))
}

// Update mengubah sebagian kolom user (superadmin). Password baru
// di-hash ulang sebelum disimpan.
func (ctrl *UserController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var user model.User
	if err := ctrl.DB.WithContext(c.UserContext()).First(&user, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	updates := map[string]interface{}{}
	if req.Username != nil && strings.TrimSpace(*req.Username) != "" {
		updates["username"] = strings.TrimSpace(*req.Username)
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Password minimal 6 karakter")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[ERROR] hash password:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah user")
		}
		updates["password"] = string(hash)
	}
	if req.Name != nil {
		updates["name"] = req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.SatkerID != nil {
		updates["satker_id"] = req.SatkerID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada kolom yang diubah")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Model(&user).Updates(updates).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "User_UNIQUE", "Username sudah dipakai")
		}
		log.Println("[ERROR] update user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah user")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("SatuanKerja").
		First(&user, id).Error; err != nil {
		log.Println("[ERROR] reload user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	return helper.JsonUpdated(c, "User berhasil diubah", toUserItem(user))
}

// Delete menghapus user secara permanen (superadmin).
func (ctrl *UserController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.User{}, id)
	if res.Error != nil {
		log.Println("[ERROR] delete user:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"id": id})
}
