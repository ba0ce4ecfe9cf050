package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilm/fuzzy"

	"github.com/cardatelier/cardforge/backend/models"
	"github.com/cardatelier/cardforge/backend/utils"
	dbmodels "github.com/cardatelier/cardforge/cardforge/database/models"
)

// TemplatesList returns the templates visible to the caller. An optional
// ?q= fuzzy-matches on template names.
func TemplatesList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var userID string
		if session := currentUser(c); session != nil {
			userID = session.UserID
		}

		templates, err := webApp.TemplateService.List(c.Context(), userID)
		if err != nil {
			return sendServiceError(c, err)
		}

		if q := c.Query("q"); q != "" {
			templates = fuzzyFilterTemplates(templates, q)
		}

		resp := make([]*models.TemplateResponse, 0, len(templates))
		for _, tpl := range templates {
			resp = append(resp, models.NewTemplateResponse(tpl))
		}
		return utils.SendSuccess(c, resp, "")
	}
}

// TemplatesDetail returns one template.
func TemplatesDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var userID string
		if session := currentUser(c); session != nil {
			userID = session.UserID
		}

		tpl, err := webApp.TemplateService.Get(c.Context(), c.Params("id"), userID)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, models.NewTemplateResponse(tpl), "")
	}
}

// TemplatesCreate stores a custom template.
func TemplatesCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		var req models.TemplateCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if details := utils.ValidateTemplateCreateRequest(&req); details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		tpl, err := webApp.TemplateService.Create(c.Context(), session.UserID, &req)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendCreated(c, models.NewTemplateResponse(tpl), "Template created")
	}
}

// TemplatesUpdate modifies an owned template.
func TemplatesUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		var req models.TemplateUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		tpl, err := webApp.TemplateService.Update(c.Context(), c.Params("id"), session.UserID, &req)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, models.NewTemplateResponse(tpl), "Template updated")
	}
}

// TemplatesDelete removes an owned template.
func TemplatesDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		if err := webApp.TemplateService.Delete(c.Context(), c.Params("id"), session.UserID); err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendNoContent(c)
	}
}

func fuzzyFilterTemplates(templates []*dbmodels.Template, query string) []*dbmodels.Template {
	names := make([]string, len(templates))
	for i, tpl := range templates {
		names[i] = tpl.Name
	}

	matches := fuzzy.Find(query, names)
	filtered := make([]*dbmodels.Template, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, templates[m.Index])
	}
	return filtered
}
