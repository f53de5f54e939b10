package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/pkg/jwt"
)

// Locals keys con la identidad del usuario autenticado.
const (
	LocalUserID     = "user_id"
	LocalRole       = "role"
	LocalOfficeID   = "office_id"
	LocalSuperAdmin = "super_admin"
)

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
// La identidad del token alcanza para las reglas de autorización: rol, oficina
// y el flag de superadmin viajan en los claims.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalRole, id.Role)
		if id.OfficeID != nil {
			c.Locals(LocalOfficeID, *id.OfficeID)
		}
		c.Locals(LocalSuperAdmin, id.SuperAdmin)
		return c.Next()
	}
}

// GetIdentity arma el usuario actor desde los locals (después del middleware).
// Devuelve nil si no hay identidad (ruta sin middleware).
func GetIdentity(c *fiber.Ctx) *entity.User {
	userID, _ := c.Locals(LocalUserID).(string)
	if userID == "" {
		return nil
	}
	role, _ := c.Locals(LocalRole).(string)
	superAdmin, _ := c.Locals(LocalSuperAdmin).(bool)
	u := &entity.User{
		ID:           userID,
		Role:         role,
		IsSuperAdmin: superAdmin,
	}
	if office, ok := c.Locals(LocalOfficeID).(string); ok && office != "" {
		u.OfficeID = &office
	}
	return u
}
