package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cardatelier/cardforge/backend/config"
	"github.com/cardatelier/cardforge/backend/models"
	"github.com/cardatelier/cardforge/backend/services"
	"github.com/cardatelier/cardforge/backend/utils"
	"github.com/cardatelier/cardforge/cardforge/database"
	cfservices "github.com/cardatelier/cardforge/cardforge/services"
)

// WebApp bundles everything the handlers need.
type WebApp struct {
	Config          *config.WebAppConfig
	DB              *database.DB
	Repos           *models.Repositories
	SpacesService   *cfservices.SpacesService
	SessionService  *services.SessionService
	UserService     *services.UserService
	TemplateService *services.TemplateService
	CardService     *services.CardService
	ExportService   *services.ExportService
	Version         string
	Commit          string
}

// currentUser returns the authenticated session; handlers behind
// AuthRequired can rely on it being present.
func currentUser(c *fiber.Ctx) *models.UserSession {
	session, _ := utils.ExtractUserSession(c)
	return session
}

// sendServiceError maps the service error taxonomy onto HTTP statuses.
func sendServiceError(c *fiber.Ctx, err error) error {
	var malformed *services.MalformedDataError
	var upstream *services.UpstreamRenderError

	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.SendNotFound(c, "Resource not found")
	case errors.Is(err, services.ErrForbidden):
		return utils.SendForbidden(c, "You do not have permission to modify this resource")
	case errors.Is(err, services.ErrEmailTaken):
		return utils.SendConflict(c, "Email already registered", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.SendUnauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrTemplateInUse):
		return utils.SendConflict(c, "Template is still used by existing cards", nil)
	case errors.As(err, &malformed):
		return utils.SendUnprocessableEntity(c, malformed.Error(), nil)
	case errors.As(err, &upstream):
		if upstream.Reason == "timeout" {
			return utils.SendError(c, fiber.StatusGatewayTimeout, "RENDER_TIMEOUT", upstream.Error(), nil)
		}
		return utils.SendBadGateway(c, upstream.Error())
	default:
		return utils.SendInternalServerError(c, "An unexpected error occurred")
	}
}

// HealthCheck reports service and dependency status.
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := models.NewHealthCheck(webApp.Version)

		if err := webApp.DB.GetPool().Ping(c.Context()); err != nil {
			health.AddComponent("database", "unhealthy", err.Error(), nil)
			return utils.SendJSON(c, fiber.StatusServiceUnavailable, health)
		}

		var userCount, templateCount, cardCount int64
		g, ctx := errgroup.WithContext(c.Context())
		g.Go(func() error {
			var err error
			userCount, err = webApp.Repos.User.GetUserCount(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			templateCount, err = webApp.Repos.Template.GetTemplateCount(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			cardCount, err = webApp.Repos.Card.GetCardCount(ctx)
			return err
		})

		if err := g.Wait(); err != nil {
			health.AddComponent("database", "degraded", err.Error(), nil)
		} else {
			health.AddComponent("database", "healthy", "", map[string]interface{}{
				"users":     userCount,
				"templates": templateCount,
				"cards":     cardCount,
			})
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, health)
	}
}
