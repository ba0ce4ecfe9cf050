package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilm/fuzzy"

	"github.com/cardatelier/cardforge/backend/models"
	"github.com/cardatelier/cardforge/backend/utils"
	dbmodels "github.com/cardatelier/cardforge/cardforge/database/models"
	"github.com/cardatelier/cardforge/cardforge/render"
)

// CardsList returns the caller's cards. An optional ?q= fuzzy-matches on
// player names.
func CardsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		cards, err := webApp.CardService.List(c.Context(), session.UserID)
		if err != nil {
			return sendServiceError(c, err)
		}

		if q := c.Query("q"); q != "" {
			cards = fuzzyFilterCards(cards, q)
		}

		resp := make([]*models.CardResponse, 0, len(cards))
		for _, card := range cards {
			resp = append(resp, models.NewCardResponse(card))
		}
		return utils.SendSuccess(c, resp, "")
	}
}

// CardsDetail returns one owned card.
func CardsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		card, err := webApp.CardService.Get(c.Context(), c.Params("id"), session.UserID)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, models.NewCardResponse(card), "")
	}
}

// CardsCreate stores a new card.
func CardsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		var req models.CardCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if details := utils.ValidateCardCreateRequest(&req); details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		card, err := webApp.CardService.Create(c.Context(), session.UserID, &req)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendCreated(c, models.NewCardResponse(card), "Card created")
	}
}

// CardsUpdate modifies an owned card.
func CardsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		var req models.CardUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		card, err := webApp.CardService.Update(c.Context(), c.Params("id"), session.UserID, &req)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, models.NewCardResponse(card), "Card updated")
	}
}

// CardsDelete removes an owned card.
func CardsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		if err := webApp.CardService.Delete(c.Context(), c.Params("id"), session.UserID); err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendNoContent(c)
	}
}

// CardsDuplicate copies an owned card.
func CardsDuplicate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		card, err := webApp.CardService.Duplicate(c.Context(), c.Params("id"), session.UserID)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendCreated(c, models.NewCardResponse(card), "Card duplicated")
	}
}

// CardsPreview serves a stored card's composed HTML document.
func CardsPreview(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		html, err := webApp.ExportService.PreviewCard(c.Context(), c.Params("id"), session.UserID)
		if err != nil {
			return sendServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(html)
	}
}

func fuzzyFilterCards(cards []*dbmodels.Card, query string) []*dbmodels.Card {
	names := make([]string, len(cards))
	for i, card := range cards {
		if data, err := render.ParseCardData(card.CardDataJSON); err == nil {
			names[i] = data.Player.Name
		}
	}

	matches := fuzzy.Find(query, names)
	filtered := make([]*dbmodels.Card, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, cards[m.Index])
	}
	return filtered
}

// Preview composes an unsaved template and card data into an HTML document.
// Used by the editor for live previews before anything is stored.
func Preview(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.PreviewRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if len(req.Template.Front) == 0 || len(req.Template.Back) == 0 {
			return utils.SendBadRequest(c, "Missing template layouts", nil)
		}

		html, err := webApp.ExportService.PreviewInline(&req)
		if err != nil {
			return sendServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(html)
	}
}
