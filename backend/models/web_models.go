package models

import (
	"encoding/json"
	"time"

	"github.com/cardatelier/cardforge/cardforge/database/models"
)

// UserSession holds the authenticated user carried in the signed session
// cookie.
type UserSession struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TemplateCreateRequest is the payload for creating a custom template.
type TemplateCreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Front       json.RawMessage `json:"front"`
	Back        json.RawMessage `json:"back"`
}

// TemplateUpdateRequest carries the fields a template owner may change.
// Nil fields are left untouched.
type TemplateUpdateRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Front       json.RawMessage `json:"front"`
	Back        json.RawMessage `json:"back"`
}

// CardCreateRequest is the payload for creating a card.
type CardCreateRequest struct {
	TemplateID string          `json:"templateId"`
	CardData   json.RawMessage `json:"cardData"`
}

// CardUpdateRequest carries the fields a card owner may change.
type CardUpdateRequest struct {
	TemplateID *string         `json:"templateId"`
	CardData   json.RawMessage `json:"cardData"`
}

// PreviewRequest composes an unsaved template and card data into a preview
// document without touching storage.
type PreviewRequest struct {
	Template PreviewTemplate `json:"template"`
	CardData json.RawMessage `json:"cardData"`
}

// PreviewTemplate is the inline template shape accepted by the preview and
// render endpoints. Front and back accept either layout objects or
// serialized layout strings.
type PreviewTemplate struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Front json.RawMessage `json:"front"`
	Back  json.RawMessage `json:"back"`
}

// RenderRequest is the body the backend posts to the rendering service.
type RenderRequest struct {
	Template PreviewTemplate `json:"template"`
	CardData json.RawMessage `json:"cardData"`
	Format   string          `json:"format"`
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse strips credentials from a stored user.
func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// TemplateResponse is the public shape of a template.
type TemplateResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	IsDefault   bool            `json:"isDefault"`
	UserID      string          `json:"userId,omitempty"`
	Front       json.RawMessage `json:"front"`
	Back        json.RawMessage `json:"back"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewTemplateResponse converts a stored template.
func NewTemplateResponse(t *models.Template) *TemplateResponse {
	return &TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsDefault:   t.IsDefault,
		UserID:      t.UserID,
		Front:       t.FrontJSON,
		Back:        t.BackJSON,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// CardResponse is the public shape of a card.
type CardResponse struct {
	ID         string                  `json:"id"`
	UserID     string                  `json:"userId"`
	TemplateID string                  `json:"templateId"`
	CardData   json.RawMessage         `json:"cardData"`
	Template   *models.TemplateSummary `json:"template,omitempty"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

// NewCardResponse converts a stored card, embedding the template summary
// when the relation was loaded.
func NewCardResponse(c *models.Card) *CardResponse {
	resp := &CardResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		TemplateID: c.TemplateID,
		CardData:   c.CardDataJSON,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.Template != nil {
		summary := c.Template.Summary()
		resp.Template = &summary
	}
	return resp
}
