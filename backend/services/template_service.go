package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/cardatelier/cardforge/backend/models"
	dbmodels "github.com/cardatelier/cardforge/cardforge/database/models"
	"github.com/cardatelier/cardforge/cardforge/render"
)

// TemplateService implements template CRUD with the visibility and
// ownership rules: defaults are readable by everyone and immutable; custom
// templates are owned by their creator.
type TemplateService struct {
	repos *models.Repositories
}

func NewTemplateService(repos *models.Repositories) *TemplateService {
	return &TemplateService{repos: repos}
}

// List returns the templates visible to a user: the defaults plus their own.
func (s *TemplateService) List(ctx context.Context, userID string) ([]*dbmodels.Template, error) {
	return s.repos.Template.GetVisible(ctx, userID)
}

// Get returns one template if the user may see it.
func (s *TemplateService) Get(ctx context.Context, id, userID string) (*dbmodels.Template, error) {
	tpl, err := s.repos.Template.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !tpl.IsDefault && tpl.UserID != userID {
		return nil, ErrNotFound
	}
	return tpl, nil
}

// Create stores a custom template after a structural parse of both layouts.
func (s *TemplateService) Create(ctx context.Context, userID string, req *models.TemplateCreateRequest) (*dbmodels.Template, error) {
	if err := s.validateLayouts(req.Name, req.Front, req.Back); err != nil {
		return nil, err
	}

	tpl := &dbmodels.Template{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
		FrontJSON:   req.Front,
		BackJSON:    req.Back,
	}
	if err := s.repos.Template.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Update modifies an owned template. Defaults and other users' templates
// refuse with ErrForbidden; the caller already proved the template visible.
func (s *TemplateService) Update(ctx context.Context, id, userID string, req *models.TemplateUpdateRequest) (*dbmodels.Template, error) {
	tpl, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if tpl.IsDefault || tpl.UserID != userID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Description != nil {
		tpl.Description = *req.Description
	}
	if len(req.Front) > 0 {
		tpl.FrontJSON = req.Front
	}
	if len(req.Back) > 0 {
		tpl.BackJSON = req.Back
	}
	if err := s.validateLayouts(tpl.Name, tpl.FrontJSON, tpl.BackJSON); err != nil {
		return nil, err
	}

	if err := s.repos.Template.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Delete removes an owned template unless cards still reference it.
func (s *TemplateService) Delete(ctx context.Context, id, userID string) error {
	tpl, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	if tpl.IsDefault || tpl.UserID != userID {
		return ErrForbidden
	}

	count, err := s.repos.Template.CountCardsUsing(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTemplateInUse
	}

	return s.repos.Template.Delete(ctx, id)
}

func (s *TemplateService) validateLayouts(name string, front, back []byte) error {
	if _, err := render.ParseTemplate("", name, front, back); err != nil {
		return &MalformedDataError{What: "template layout", Err: err}
	}
	return nil
}
