// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"rambuku_backend/internals/configs"
	userModel "rambuku_backend/internals/features/users/model"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("Missing/invalid Authorization header")
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		return "", errors.New("Missing/invalid Authorization header")
	}
	return token, nil
}

func claimInt(claims jwt.MapClaims, key string) (int, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// AuthMiddleware memverifikasi JWT lalu mencocokkan token dengan kolom
// users.token: token yang sudah di-logout otomatis tertolak (revocation).
// user_id, role, dan satker_id disimpan di Locals untuk handler hilir.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid/expired token")
		}

		userID, ok := claimInt(claims, "id")
		if !ok || userID <= 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		var user userModel.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] DB error saat cek user:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if user.Status != 1 || user.Token == nil || *user.Token != tokenString {
			return fiber.NewError(fiber.StatusUnauthorized, "Token invalid or revoked")
		}

		c.Locals("user_id", user.ID)
		c.Locals("role", user.Role)
		if user.SatkerID != nil {
			c.Locals("satker_id", *user.SatkerID)
		}

		return c.Next()
	}
}

// RequireRoles membatasi handler untuk role tertentu; dipasang SETELAH
// AuthMiddleware.
func RequireRoles(roles ...int) fiber.Handler {
	allowed := make(map[int]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(int)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden")
		}
		return c.Next()
	}
}
