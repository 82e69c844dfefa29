package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/features/users/auth/dto"
	"attendance_backend/internals/features/users/auth/service"
	userDto "attendance_backend/internals/features/users/user/dto"
	userModel "attendance_backend/internals/features/users/user/model"
	userRepo "attendance_backend/internals/features/users/user/repository"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/metrics"
)

const accessTokenCookie = "access_token"

type AuthController struct {
	Auth         *service.AuthService
	Validate     *validator.Validate
	Metrics      *metrics.Metrics
	SecureCookie bool
}

func NewAuthController(auth *service.AuthService, m *metrics.Metrics, secureCookie bool) *AuthController {
	return &AuthController{
		Auth:         auth,
		Validate:     helper.NewValidator(),
		Metrics:      m,
		SecureCookie: secureCookie,
	}
}

// POST /auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FormatValidationError(err))
	}

	user, token, err := ac.Auth.Register(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) || errors.Is(err, userRepo.ErrDuplicateEmployeeID) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.JsonInternalError(c, "Failed to register user", err)
	}

	ac.setTokenCookie(c, token)
	return helper.JsonCreated(c, dto.AuthResponse{
		Message: "User registered successfully",
		User:    userDto.FromModel(user),
		Token:   token,
	})
}

// POST /auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FormatValidationError(err))
	}

	user, token, err := ac.Auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ac.Metrics.ObserveLogin("invalid")
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		ac.Metrics.ObserveLogin("error")
		return helper.JsonInternalError(c, "Failed to login", err)
	}
	ac.Metrics.ObserveLogin("success")

	ac.setTokenCookie(c, token)
	return helper.JsonOK(c, dto.AuthResponse{
		Message: "Login successful",
		User:    userDto.FromModel(user),
		Token:   token,
	})
}

// GET /auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user, ok := c.Locals(helper.LocUser).(*userModel.UserModel)
	if !ok || user == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, helper.ErrNoToken.Error())
	}
	return helper.JsonOK(c, dto.MeResponse{User: userDto.FromModel(user)})
}

// POST /auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, helper.ErrNoToken.Error())
	}

	if err := ac.Auth.Logout(c.UserContext(), raw); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		return helper.JsonInternalError(c, "Failed to logout", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   ac.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return helper.JsonOK(c, dto.MessageResponse{Message: "Logged out successfully"})
}

func (ac *AuthController) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ac.Auth.TokenTTL()),
		HTTPOnly: true,
		Secure:   ac.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
