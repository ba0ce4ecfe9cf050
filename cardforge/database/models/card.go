package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// Card binds one user's player data to a template.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID           string          `bun:"id,pk"`
	UserID       string          `bun:"user_id,notnull"`
	TemplateID   string          `bun:"template_id,notnull"`
	CardDataJSON json.RawMessage `bun:"card_data_json,type:jsonb,notnull"`
	CreatedAt    time.Time       `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time       `bun:"updated_at,notnull"`

	// Relations
	Template *Template `bun:"rel:belongs-to,join:template_id=id"`
}
