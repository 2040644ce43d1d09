package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/media-vault/internal/middleware"
	"github.com/fathima-sithara/media-vault/internal/services"
)

type AuthHandler struct {
	svc    *services.AuthService
	logger *zap.SugaredLogger
}

func NewAuthHandler(svc *services.AuthService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "error", "Invalid request body", nil)
	}
	user, err := h.svc.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "ok", "Registration successful", fiber.Map{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "error", "Invalid request body", nil)
	}
	res, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "success", "Login successful", fiber.Map{
		"data": fiber.Map{"user": res.Account(), "token": res.Token},
	})
}

// Logout is stateless: the client discards the token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if middleware.BearerToken(c) == "" {
		return respond(c, fiber.StatusUnauthorized, "error", "No token provided, authorization denied", nil)
	}
	return respond(c, fiber.StatusOK, "success", "Successfully logged out", nil)
}

func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	userID, err := h.svc.VerifyToken(middleware.BearerToken(c))
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "success", "Token is valid", fiber.Map{"userId": userID})
}

type resetPasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "error", "Invalid request body", nil)
	}
	if err := h.svc.ResetPassword(c.UserContext(), middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "success", "Password reset successfully", nil)
}
