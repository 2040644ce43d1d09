package handlers

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/media-vault/internal/models"
	"github.com/fathima-sithara/media-vault/internal/repository"
	"github.com/fathima-sithara/media-vault/internal/services"
)

type MediaHandler struct {
	svc    *services.MediaService
	logger *zap.SugaredLogger
}

func NewMediaHandler(svc *services.MediaService, logger *zap.SugaredLogger) *MediaHandler {
	return &MediaHandler{svc: svc, logger: logger}
}

func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	in := services.UploadInput{
		FileType:    c.FormValue("fileType"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Genre:       c.FormValue("genre"),
		Category:    c.FormValue("category"),
	}

	var (
		filename    string
		contentType string
		data        []byte
	)
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return respond(c, fiber.StatusInternalServerError, "error", "Cannot open uploaded file", nil)
		}
		defer f.Close()
		data, err = io.ReadAll(f)
		if err != nil {
			return respond(c, fiber.StatusInternalServerError, "error", "Cannot read uploaded file", nil)
		}
		filename = fh.Filename
		contentType = fh.Header.Get("Content-Type")
	}

	media, err := h.svc.Upload(c.UserContext(), in, filename, contentType, data)
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "ok", "File uploaded successfully.", fiber.Map{"media": media})
}

type deleteRequest struct {
	FileID string `json:"fileId"`
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "error", "Invalid request body", nil)
	}
	media, err := h.svc.Delete(c.UserContext(), req.FileID)
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "ok", "File deleted successfully", fiber.Map{"media": media})
}

type editRequest struct {
	FileID      string `json:"fileId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
}

func (h *MediaHandler) Edit(c *fiber.Ctx) error {
	var req editRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "error", "Invalid request body", nil)
	}
	media, err := h.svc.Edit(c.UserContext(), req.FileID, req.Title, req.Description, req.Genre)
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "ok", "File details updated successfully", fiber.Map{"media": media})
}

func (h *MediaHandler) ListVideos(c *fiber.Ctx) error {
	return h.list(c, models.FileTypeVideo, "videos")
}

func (h *MediaHandler) ListAudios(c *fiber.Ctx) error {
	return h.list(c, models.FileTypeAudio, "audios")
}

func (h *MediaHandler) list(c *fiber.Ctx, fileType, payloadKey string) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "error", "page must be a number", nil)
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "error", "limit must be a number", nil)
	}

	q := repository.ListQuery{
		FileType: fileType,
		Genre:    c.Query("genre"),
		Title:    c.Query("title"),
		SortBy:   c.Query("sortBy"),
		Page:     page,
		Limit:    limit,
	}
	items, pagination, err := h.svc.List(c.UserContext(), q)
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "ok", "", fiber.Map{
		payloadKey:   items,
		"pagination": pagination,
	})
}

type mediaIDRequest struct {
	ID string `json:"_id"`
}

func (h *MediaHandler) Download(c *fiber.Ctx) error {
	var req mediaIDRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "error", "Invalid request body", nil)
	}
	url, err := h.svc.Download(c.UserContext(), req.ID)
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "ok", "", fiber.Map{"downloadUrl": url})
}

func (h *MediaHandler) Details(c *fiber.Ctx) error {
	var req mediaIDRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "error", "Invalid request body", nil)
	}
	media, err := h.svc.Details(c.UserContext(), req.ID)
	if err != nil {
		return respondErr(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "ok", "", fiber.Map{"media": media})
}
