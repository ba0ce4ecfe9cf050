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

// CardService implements card CRUD. Cards are strictly owner-scoped:
// touching another user's card reports not-found rather than forbidden, so
// the API does not leak which IDs exist.
type CardService struct {
	repos *models.Repositories
}

func NewCardService(repos *models.Repositories) *CardService {
	return &CardService{repos: repos}
}

// List returns the user's cards, newest first.
func (s *CardService) List(ctx context.Context, userID string) ([]*dbmodels.Card, error) {
	return s.repos.Card.GetAllByUserID(ctx, userID)
}

// Get returns one card if the user owns it.
func (s *CardService) Get(ctx context.Context, id, userID string) (*dbmodels.Card, error) {
	card, err := s.repos.Card.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if card.UserID != userID {
		return nil, ErrNotFound
	}
	return card, nil
}

// Create stores a card after checking the template is visible to the user
// and the card data parses.
func (s *CardService) Create(ctx context.Context, userID string, req *models.CardCreateRequest) (*dbmodels.Card, error) {
	if err := s.checkTemplateVisible(ctx, req.TemplateID, userID); err != nil {
		return nil, err
	}
	if _, err := render.ParseCardData(req.CardData); err != nil {
		return nil, &MalformedDataError{What: "card data", Err: err}
	}

	card := &dbmodels.Card{
		ID:           uuid.NewString(),
		UserID:       userID,
		TemplateID:   req.TemplateID,
		CardDataJSON: req.CardData,
	}
	if err := s.repos.Card.Create(ctx, card); err != nil {
		return nil, err
	}
	return s.Get(ctx, card.ID, userID)
}

// Update modifies an owned card.
func (s *CardService) Update(ctx context.Context, id, userID string, req *models.CardUpdateRequest) (*dbmodels.Card, error) {
	card, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.TemplateID != nil && *req.TemplateID != card.TemplateID {
		if err := s.checkTemplateVisible(ctx, *req.TemplateID, userID); err != nil {
			return nil, err
		}
		card.TemplateID = *req.TemplateID
	}
	if len(req.CardData) > 0 {
		if _, err := render.ParseCardData(req.CardData); err != nil {
			return nil, &MalformedDataError{What: "card data", Err: err}
		}
		card.CardDataJSON = req.CardData
	}

	if err := s.repos.Card.Update(ctx, card); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, userID)
}

// Delete removes an owned card.
func (s *CardService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repos.Card.Delete(ctx, id)
}

// Duplicate copies an owned card into a new one.
func (s *CardService) Duplicate(ctx context.Context, id, userID string) (*dbmodels.Card, error) {
	src, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	copy := &dbmodels.Card{
		ID:           uuid.NewString(),
		UserID:       userID,
		TemplateID:   src.TemplateID,
		CardDataJSON: src.CardDataJSON,
	}
	if err := s.repos.Card.Create(ctx, copy); err != nil {
		return nil, err
	}
	return s.Get(ctx, copy.ID, userID)
}

func (s *CardService) checkTemplateVisible(ctx context.Context, templateID, userID string) error {
	tpl, err := s.repos.Template.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !tpl.IsDefault && tpl.UserID != userID {
		return ErrNotFound
	}
	return nil
}
