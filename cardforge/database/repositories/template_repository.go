package repositories

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"

	"github.com/cardatelier/cardforge/cardforge/database/models"
)

const templateCacheSize = 256

type TemplateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	GetByID(ctx context.Context, id string) (*models.Template, error)
	// GetVisible returns the default templates plus the user's own, defaults
	// first, newest first within each group.
	GetVisible(ctx context.Context, userID string) ([]*models.Template, error)
	Update(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id string) error
	CountCardsUsing(ctx context.Context, templateID string) (int, error)
	GetTemplateCount(ctx context.Context) (int64, error)
}

type templateRepository struct {
	db    *bun.DB
	cache *lru.Cache
}

func NewTemplateRepository(db *bun.DB) TemplateRepository {
	// Templates are read on every preview and export; a small LRU keeps the
	// hot ones out of the database.
	cache, _ := lru.New(templateCacheSize)
	return &templateRepository{db: db, cache: cache}
}

func (r *templateRepository) Create(ctx context.Context, template *models.Template) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(template).
		Exec(ctx)
	return err
}

func (r *templateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	if cached, ok := r.cache.Get(id); ok {
		return cached.(*models.Template), nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	template := new(models.Template)
	err := r.db.NewSelect().
		Model(template).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Add(id, template)
	return template, nil
}

func (r *templateRepository) GetVisible(ctx context.Context, userID string) ([]*models.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	var templates []*models.Template
	q := r.db.NewSelect().
		Model(&templates).
		OrderExpr("is_default DESC").
		OrderExpr("created_at DESC")
	if userID != "" {
		q = q.Where("is_default = TRUE OR user_id = ?", userID)
	} else {
		q = q.Where("is_default = TRUE")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) Update(ctx context.Context, template *models.Template) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	template.UpdatedAt = time.Now()

	_, err := r.db.NewUpdate().
		Model(template).
		WherePK().
		Exec(ctx)
	if err == nil {
		r.cache.Remove(template.ID)
	}
	return err
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Template)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err == nil {
		r.cache.Remove(id)
	}
	return err
}

func (r *templateRepository) CountCardsUsing(ctx context.Context, templateID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	return r.db.NewSelect().
		Model((*models.Card)(nil)).
		Where("template_id = ?", templateID).
		Count(ctx)
}

func (r *templateRepository) GetTemplateCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Template)(nil)).
		Count(ctx)
	return int64(count), err
}
