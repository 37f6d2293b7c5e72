package controller

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rambuku_backend/internals/configs"
	"rambuku_backend/internals/constants"
	dto "rambuku_backend/internals/features/users/dto"
	model "rambuku_backend/internals/features/users/model"
	helper "rambuku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func signToken(userID, role int, satkerID *int) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT secret belum diset")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(configs.TokenTTL).Unix(),
	}
	if satkerID != nil {
		claims["satker_id"] = *satkerID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

func isMD5Hex(s string) bool {
	if len(s) != 32 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// verifyPassword: hash bcrypt dicocokkan dengan bcrypt.Compare; hash MD5
// lama (32 hex) dicocokkan md5 — pemanggil bertanggung jawab migrasi.
func verifyPassword(input, stored string) (ok bool, legacyMD5 bool) {
	if stored == "" {
		return false, false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)) == nil, false
	}
	if isMD5Hex(stored) {
		sum := md5.Sum([]byte(input))
		return hex.EncodeToString(sum[:]) == strings.ToLower(stored), true
	}
	return false, false
}

// Login memverifikasi kredensial, menerbitkan JWT 24 jam, dan menyimpan
// token di DB supaya bisa dicabut saat logout. Hash MD5 lama yang cocok
// otomatis dimigrasi ke bcrypt.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "username & password required")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "username & password required")
	}

	var user model.User
	err := ctrl.DB.WithContext(c.UserContext()).
		Preload("SatuanKerja").
		Where("username = ?", req.Username).
		First(&user).Error
	if err != nil || user.Status != constants.UserActive {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau Password Salah")
	}

	ok, legacy := verifyPassword(req.Password, user.Password)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau Password Salah")
	}
	if legacy {
		if newHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost); err == nil {
			if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.User{}).
				Where("id = ?", user.ID).
				Update("password", string(newHash)).Error; err != nil {
				log.Println("[WARN] migrasi password ke bcrypt gagal (login tetap lanjut):", err)
			}
		}
	}

	token, err := signToken(user.ID, user.Role, user.SatkerID)
	if err != nil {
		log.Println("[ERROR] sign token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("token", token).Error; err != nil {
		log.Println("[ERROR] simpan token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan sesi")
	}

	resp := dto.LoginResponse{
		Message:   "Login success",
		Token:     token,
		ExpiresIn: int(configs.TokenTTL.Seconds()),
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Role:      user.Role,
		SatkerID:  user.SatkerID,
	}
	if user.SatuanKerja != nil {
		resp.SatkerName = &user.SatuanKerja.Name
	}
	return c.JSON(resp)
}

// Logout mencabut sesi: kolom token dikosongkan sehingga token lama
// tertolak di middleware.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(int)
	if !ok || userID <= 0 {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.User{}).
		Where("id = ?", userID).
		Update("token", nil).Error; err != nil {
		log.Println("[ERROR] logout:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}
	return helper.JsonOK(c, "Logout berhasil", fiber.Map{"ok": true})
}
