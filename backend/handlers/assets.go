package handlers

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/cardatelier/cardforge/backend/utils"
)

// AssetsUpload stores an uploaded player photo and returns its public URL,
// ready to use as a card's imageUrl.
func AssetsUpload(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		header, err := c.FormFile("file")
		if err != nil {
			return utils.SendBadRequest(c, "Missing file field", nil)
		}
		if err := utils.ValidateImageUpload(header); err != nil {
			return utils.SendUnprocessableEntity(c, err.Error(), nil)
		}

		file, err := header.Open()
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to read upload")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to read upload")
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		contentType := mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		key := fmt.Sprintf("%s/%s%s", session.UserID, uuid.NewString(), ext)
		url, err := webApp.SpacesService.Upload(c.Context(), key, data, contentType)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to store upload")
		}

		return utils.SendCreated(c, fiber.Map{
			"key": key,
			"url": url,
		}, "Asset uploaded")
	}
}

// AssetsPresign hands out a time-limited download URL for an asset.
func AssetsPresign(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Query("key")
		if key == "" {
			return utils.SendBadRequest(c, "Missing key parameter", nil)
		}

		url, err := webApp.SpacesService.PresignGet(c.Context(), key)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to presign asset")
		}
		return utils.SendSuccess(c, fiber.Map{"url": url}, "")
	}
}
