package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// Template stores a card design: a front and a back layout as authored JSON.
// The layouts stay opaque at this layer; the render package parses them.
type Template struct {
	bun.BaseModel `bun:"table:templates,alias:t"`

	ID          string          `bun:"id,pk"`
	Name        string          `bun:"name,notnull"`
	Description string          `bun:"description"`
	IsDefault   bool            `bun:"is_default,notnull,default:false"`
	UserID      string          `bun:"user_id"`
	FrontJSON   json.RawMessage `bun:"front_json,type:jsonb,notnull"`
	BackJSON    json.RawMessage `bun:"back_json,type:jsonb,notnull"`
	CreatedAt   time.Time       `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time       `bun:"updated_at,notnull"`
}

// TemplateSummary is the slim shape embedded in card responses.
type TemplateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (t *Template) Summary() TemplateSummary {
	return TemplateSummary{ID: t.ID, Name: t.Name, Description: t.Description}
}
