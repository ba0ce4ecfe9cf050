package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardatelier/cardforge/cardforge/database/models"
)

// SeedDefaultTemplates installs the built-in card designs. Existing rows are
// left alone except the Donruss template, whose layout is kept current with
// the shipped design.
func (db *DB) SeedDefaultTemplates(ctx context.Context) error {
	for _, tpl := range defaultTemplates() {
		tpl.CreatedAt = time.Now()
		tpl.UpdatedAt = time.Now()
		q := db.BunDB().NewInsert().
			Model(tpl).
			On("CONFLICT (id) DO NOTHING")
		if tpl.ID == "donruss-1991-style" {
			q = db.BunDB().NewInsert().
				Model(tpl).
				On("CONFLICT (id) DO UPDATE").
				Set("name = EXCLUDED.name").
				Set("description = EXCLUDED.description").
				Set("front_json = EXCLUDED.front_json").
				Set("back_json = EXCLUDED.back_json").
				Set("updated_at = EXCLUDED.updated_at")
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("seeding template %s: %w", tpl.ID, err)
		}
	}
	slog.Info("Default templates seeded", "type", "db", "count", len(defaultTemplates()))
	return nil
}

func defaultTemplates() []*models.Template {
	return []*models.Template{
		{
			ID:          "topps-1990-style",
			Name:        "Topps 1990 Style",
			Description: "Classic Topps design inspired by 1990s baseball cards",
			IsDefault:   true,
			FrontJSON:   json.RawMessage(toppsFront),
			BackJSON:    json.RawMessage(toppsBack),
		},
		{
			ID:          "donruss-1991-style",
			Name:        "Donruss 1991 Style",
			Description: "Authentic Donruss 1991 design with green border and diagonal banner",
			IsDefault:   true,
			FrontJSON:   json.RawMessage(donrussFront),
			BackJSON:    json.RawMessage(donrussBack),
		},
		{
			ID:          "score-1992-style",
			Name:        "Score 1992 Style",
			Description: "Clean Score design with modern layout",
			IsDefault:   true,
			FrontJSON:   json.RawMessage(scoreFront),
			BackJSON:    json.RawMessage(scoreBack),
		},
		{
			ID:          "upper-deck-1990-style",
			Name:        "Upper Deck 1990 Style",
			Description: "Premium Upper Deck design with elegant styling",
			IsDefault:   true,
			FrontJSON:   json.RawMessage(upperDeckFront),
			BackJSON:    json.RawMessage(upperDeckBack),
		},
		{
			ID:          "fleer-1991-style",
			Name:        "Fleer 1991 Style",
			Description: "Classic Fleer design with colorful borders",
			IsDefault:   true,
			FrontJSON:   json.RawMessage(fleerFront),
			BackJSON:    json.RawMessage(fleerBack),
		},
	}
}

const toppsFront = `{
  "width": 630,
  "height": 880,
  "backgroundColor": "#FFFFFF",
  "elements": [
    {"id": "player-image", "type": "image", "x": 50, "y": 100, "width": 280, "height": 350, "zIndex": 1, "visible": true, "src": "", "objectFit": "cover"},
    {"id": "player-name", "type": "text", "x": 50, "y": 480, "width": 280, "zIndex": 2, "visible": true, "content": "Player Name", "fontSize": 32, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#000000", "textAlign": "left"},
    {"id": "team-position", "type": "text", "x": 50, "y": 520, "width": 280, "zIndex": 2, "visible": true, "content": "Team • Position", "fontSize": 20, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#666666", "textAlign": "left"},
    {"id": "stats-section", "type": "text", "x": 50, "y": 580, "width": 280, "zIndex": 2, "visible": true, "content": "STATS", "fontSize": 18, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#000000", "textAlign": "left"}
  ]
}`

const toppsBack = `{
  "width": 630,
  "height": 880,
  "backgroundColor": "#F5F5F5",
  "elements": [
    {"id": "back-title", "type": "text", "x": 50, "y": 50, "width": 530, "zIndex": 1, "visible": true, "content": "CAREER STATISTICS", "fontSize": 24, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#000000", "textAlign": "center"}
  ]
}`

const donrussFront = `{
  "width": 350,
  "height": 490,
  "backgroundColor": "#3f7f4f",
  "borderWidth": 12,
  "innerPadding": 6,
  "innerBackgroundColor": "#FFFFFF",
  "elements": [
    {"id": "player-photo", "type": "image", "x": 18, "y": 18, "width": 314, "height": 382, "zIndex": 1, "visible": true, "src": "", "objectFit": "cover"},
    {"id": "player-name", "type": "text", "x": 38, "y": 420, "width": 200, "zIndex": 10, "visible": true, "content": "{{player.name}}", "fontSize": 20, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#FFFFFF", "textAlign": "left"},
    {"id": "player-position", "type": "text", "x": 250, "y": 440, "width": 100, "zIndex": 10, "visible": true, "content": "{{player.position}}", "fontSize": 14, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#000000", "textAlign": "center", "backgroundColor": "#86a8b8", "padding": "2px 8px", "borderRadius": "2px"}
  ]
}`

const donrussBack = `{
  "width": 880,
  "height": 630,
  "backgroundColor": "#3f7f4f",
  "elements": [
    {"id": "stats-rectangle", "type": "rectangle", "x": 140, "y": 180, "width": 600, "height": 280, "backgroundColor": "#FFFFFF", "borderColor": "#3f7f4f", "borderWidth": 3, "borderRadius": 10, "zIndex": 1, "visible": true},
    {"id": "bio-title", "type": "text", "x": 50, "y": 30, "width": 780, "zIndex": 10, "visible": true, "content": "PLAYER BIO", "fontSize": 24, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#FFFFFF", "textAlign": "center"},
    {"id": "bio-name", "type": "text", "x": 50, "y": 70, "width": 240, "zIndex": 10, "visible": true, "content": "Name: {{player.name}}", "fontSize": 18, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#FFFFFF", "textAlign": "center"},
    {"id": "bio-position", "type": "text", "x": 50, "y": 105, "width": 240, "zIndex": 10, "visible": true, "content": "Position: {{player.position}}", "fontSize": 18, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#FFFFFF", "textAlign": "center"},
    {"id": "bio-team", "type": "text", "x": 320, "y": 70, "width": 240, "zIndex": 10, "visible": true, "content": "Team: {{player.team}}", "fontSize": 18, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#FFFFFF", "textAlign": "center"},
    {"id": "bio-jersey", "type": "text", "x": 320, "y": 105, "width": 240, "zIndex": 10, "visible": true, "content": "Jersey: #{{player.jerseyNumber}}", "fontSize": 18, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#FFFFFF", "textAlign": "center"},
    {"id": "bio-year", "type": "text", "x": 590, "y": 70, "width": 240, "zIndex": 10, "visible": true, "content": "Year: {{player.year}}", "fontSize": 18, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#FFFFFF", "textAlign": "center"},
    {"id": "bio-throws", "type": "text", "x": 590, "y": 105, "width": 240, "zIndex": 10, "visible": true, "content": "Throws: {{player.throws}}", "fontSize": 18, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#FFFFFF", "textAlign": "center"},
    {"id": "stats-title", "type": "text", "x": 140, "y": 195, "width": 600, "zIndex": 10, "visible": true, "content": "SEASON STATISTICS", "fontSize": 22, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#3f7f4f", "textAlign": "center"},
    {"id": "highlights-title", "type": "text", "x": 50, "y": 490, "width": 780, "zIndex": 10, "visible": true, "content": "CAREER HIGHLIGHTS", "fontSize": 22, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#FFFFFF", "textAlign": "center"},
    {"id": "highlights-text", "type": "text", "x": 50, "y": 520, "width": 780, "zIndex": 10, "visible": true, "content": "{{customFields.careerHighlights}}", "fontSize": 16, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#FFFFFF", "textAlign": "center", "whiteSpace": "normal"}
  ]
}`

const scoreFront = `{
  "width": 630,
  "height": 880,
  "backgroundColor": "#FFFFFF",
  "elements": [
    {"id": "player-image", "type": "image", "x": 100, "y": 80, "width": 230, "height": 300, "zIndex": 1, "visible": true, "src": "", "objectFit": "cover"},
    {"id": "player-name", "type": "text", "x": 100, "y": 400, "width": 230, "zIndex": 2, "visible": true, "content": "Player Name", "fontSize": 30, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#000000", "textAlign": "center"},
    {"id": "team-position", "type": "text", "x": 100, "y": 440, "width": 230, "zIndex": 2, "visible": true, "content": "Team • Position", "fontSize": 16, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#666666", "textAlign": "center"},
    {"id": "year", "type": "text", "x": 100, "y": 500, "width": 230, "zIndex": 2, "visible": true, "content": "1992", "fontSize": 24, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#1E3A8A", "textAlign": "center"}
  ]
}`

const scoreBack = `{
  "width": 630,
  "height": 880,
  "backgroundColor": "#F9F9F9",
  "elements": [
    {"id": "back-title", "type": "text", "x": 50, "y": 50, "width": 530, "zIndex": 1, "visible": true, "content": "STATISTICS", "fontSize": 26, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#1E3A8A", "textAlign": "center"}
  ]
}`

const upperDeckFront = `{
  "width": 630,
  "height": 880,
  "backgroundColor": "#000000",
  "elements": [
    {"id": "player-image", "type": "image", "x": 60, "y": 100, "width": 260, "height": 340, "zIndex": 1, "visible": true, "src": "", "objectFit": "cover"},
    {"id": "player-name", "type": "text", "x": 60, "y": 460, "width": 260, "zIndex": 2, "visible": true, "content": "Player Name", "fontSize": 26, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#FFD700", "textAlign": "left"},
    {"id": "team-position", "type": "text", "x": 60, "y": 500, "width": 260, "zIndex": 2, "visible": true, "content": "Team • Position", "fontSize": 18, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#FFFFFF", "textAlign": "left"}
  ]
}`

const upperDeckBack = `{
  "width": 630,
  "height": 880,
  "backgroundColor": "#1A1A1A",
  "elements": [
    {"id": "back-title", "type": "text", "x": 50, "y": 50, "width": 530, "zIndex": 1, "visible": true, "content": "CAREER HIGHLIGHTS", "fontSize": 24, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#FFD700", "textAlign": "center"}
  ]
}`

const fleerFront = `{
  "width": 630,
  "height": 880,
  "backgroundColor": "#FFFFFF",
  "elements": [
    {"id": "border-top", "type": "text", "x": 0, "y": 0, "width": 630, "height": 20, "zIndex": 0, "visible": true, "content": "", "fontSize": 1, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#FF6B35", "textAlign": "left"},
    {"id": "player-image", "type": "image", "x": 70, "y": 110, "width": 240, "height": 310, "zIndex": 1, "visible": true, "src": "", "objectFit": "cover"},
    {"id": "player-name", "type": "text", "x": 70, "y": 440, "width": 240, "zIndex": 2, "visible": true, "content": "Player Name", "fontSize": 28, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#000000", "textAlign": "center"},
    {"id": "team-position", "type": "text", "x": 70, "y": 480, "width": 240, "zIndex": 2, "visible": true, "content": "Team • Position", "fontSize": 16, "fontFamily": "Arial, sans-serif", "fontWeight": "normal", "color": "#666666", "textAlign": "center"}
  ]
}`

const fleerBack = `{
  "width": 630,
  "height": 880,
  "backgroundColor": "#FFFFFF",
  "elements": [
    {"id": "back-title", "type": "text", "x": 50, "y": 50, "width": 530, "zIndex": 1, "visible": true, "content": "PLAYER INFORMATION", "fontSize": 22, "fontFamily": "Arial, sans-serif", "fontWeight": "bold", "color": "#FF6B35", "textAlign": "center"}
  ]
}`
