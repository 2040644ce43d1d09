package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/media-vault/internal/middleware"
	"github.com/fathima-sithara/media-vault/internal/services"
)

type ProfileHandler struct {
	svc    *services.ProfileService
	logger *zap.SugaredLogger
}

func NewProfileHandler(svc *services.ProfileService, logger *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{svc: svc, logger: logger}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	user, err := h.svc.Get(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "success", "Profile retrieved", fiber.Map{"profile": user})
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var file *services.ProfileFile
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return respond(c, fiber.StatusInternalServerError, "error", "Cannot open uploaded file", nil)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return respond(c, fiber.StatusInternalServerError, "error", "Cannot read uploaded file", nil)
		}
		file = &services.ProfileFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	user, err := h.svc.Update(c.UserContext(), middleware.UserID(c), c.FormValue("username"), c.FormValue("email"), file)
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "success", "Profile updated successfully", fiber.Map{"profile": user})
}

func (h *ProfileHandler) Notifications(c *fiber.Ctx) error {
	notifications, err := h.svc.Notifications(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "success", "Notifications retrieved", fiber.Map{"notifications": notifications})
}

func (h *ProfileHandler) MarkNotificationsRead(c *fiber.Ctx) error {
	if err := h.svc.MarkAllNotificationsRead(c.UserContext(), middleware.UserID(c)); err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "success", "Notifications marked as read", nil)
}
