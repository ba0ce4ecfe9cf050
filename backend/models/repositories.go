package models

import (
	"github.com/cardatelier/cardforge/cardforge/database/repositories"
)

// Repositories bundles the data access layer handed to services and
// handlers.
type Repositories struct {
	User     repositories.UserRepository
	Template repositories.TemplateRepository
	Card     repositories.CardRepository
}

// NewRepositories creates the repository bundle.
func NewRepositories(
	user repositories.UserRepository,
	template repositories.TemplateRepository,
	card repositories.CardRepository,
) *Repositories {
	return &Repositories{
		User:     user,
		Template: template,
		Card:     card,
	}
}
