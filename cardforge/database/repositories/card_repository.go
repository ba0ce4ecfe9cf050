package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/uptrace/bun"

	"github.com/cardatelier/cardforge/cardforge/database/models"
)

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	// GetByID loads a card with its template relation.
	GetByID(ctx context.Context, id string) (*models.Card, error)
	GetAllByUserID(ctx context.Context, userID string) ([]*models.Card, error)
	Update(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id string) error
	GetCardCount(ctx context.Context) (int64, error)
}

type cardRepository struct {
	db    *bun.DB
	cache *sync.Map
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{
		db:    db,
		cache: &sync.Map{},
	}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(card).
		Exec(ctx)
	if err == nil {
		r.invalidateUser(card.UserID)
	}
	return err
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Relation("Template").
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) GetAllByUserID(ctx context.Context, userID string) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	cacheKey := fmt.Sprintf("user:%s", userID)
	if cached, ok := r.cache.Load(cacheKey); ok {
		entry := cached.(cacheEntry)
		if time.Since(entry.at) < 30*time.Second {
			return entry.cards, nil
		}
		r.cache.Delete(cacheKey)
	}

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Relation("Template").
		Where("c.user_id = ?", userID).
		OrderExpr("c.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Store(cacheKey, cacheEntry{cards: cards, at: time.Now()})
	return cards, nil
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	card.UpdatedAt = time.Now()

	_, err := r.db.NewUpdate().
		Model(card).
		WherePK().
		Exec(ctx)
	if err == nil {
		r.invalidateUser(card.UserID)
	}
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	card := new(models.Card)
	if err := r.db.NewSelect().Model(card).Where("id = ?", id).Scan(ctx); err == nil {
		r.invalidateUser(card.UserID)
	}

	_, err := r.db.NewDelete().
		Model((*models.Card)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *cardRepository) GetCardCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		Count(ctx)
	return int64(count), err
}

func (r *cardRepository) invalidateUser(userID string) {
	r.cache.Delete(fmt.Sprintf("user:%s", userID))
}

type cacheEntry struct {
	cards []*models.Card
	at    time.Time
}
