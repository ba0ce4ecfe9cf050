package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/cardatelier/cardforge/backend/utils"
)

// CardsExport rasterizes an owned card through the rendering service and
// streams the result. The response is either binary bytes with the matching
// Content-Type or the JSON error envelope, never a mix.
func CardsExport(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		format := c.Query("format", "png")
		// Reject bad formats before any composition or upstream work.
		if err := utils.ValidateExportFormat(format); err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		result, err := webApp.ExportService.Export(c.Context(), c.Params("id"), session.UserID, format)
		if err != nil {
			return sendServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, result.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
		c.Set(fiber.HeaderContentLength, fmt.Sprintf("%d", result.Size))
		return c.Send(result.Bytes)
	}
}
