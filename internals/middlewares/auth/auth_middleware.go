// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	authService "attendance_backend/internals/features/users/auth/service"
	userModel "attendance_backend/internals/features/users/user/model"
	helper "attendance_backend/internals/helpers"
)

// Authenticator resolves a raw bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*userModel.UserModel, error)
}

func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := helper.ExtractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, helper.ErrNoToken.Error())
		}

		// 2) Verifikasi token, blacklist, dan user
		user, err := authn.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, authService.ErrInvalidToken) {
				return helper.JsonError(c, fiber.StatusUnauthorized, authService.ErrInvalidToken.Error())
			}
			log.Printf("[ERROR] AuthMiddleware %s %s: %v", c.Method(), c.Path(), err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Authentication failed")
		}

		// 3) Simpan info user ke context
		c.Locals(helper.LocUserID, user.ID)
		c.Locals(helper.LocUserRole, user.Role)
		c.Locals(helper.LocUser, user)
		helper.SetRawAccessToken(c, tokenString)

		return c.Next()
	}
}
