package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/cardatelier/cardforge/backend/models"
	dbmodels "github.com/cardatelier/cardforge/cardforge/database/models"
	"github.com/cardatelier/cardforge/cardforge/render"
)

// maxExportSize caps how much of an upstream response we will buffer.
const maxExportSize = 64 << 20

// ExportService produces preview documents locally and delegates
// rasterization to the rendering service. Both paths go through the same
// composition pipeline, so a preview and its export always match.
type ExportService struct {
	cards   *CardService
	client  *http.Client
	baseURL string
}

// ExportResult is a finished export ready to stream to the client.
type ExportResult struct {
	Bytes       []byte
	ContentType string
	Filename    string
	Size        int
}

func NewExportService(cards *CardService, baseURL string, timeout time.Duration) *ExportService {
	return &ExportService{
		cards:   cards,
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// PreviewCard composes a stored card into a self-contained HTML document.
func (s *ExportService) PreviewCard(ctx context.Context, cardID, userID string) (string, error) {
	card, tpl, err := s.loadCard(ctx, cardID, userID)
	if err != nil {
		return "", err
	}
	html, err := render.ComposeDocument(tpl.ID, tpl.Name, tpl.FrontJSON, tpl.BackJSON, card.CardDataJSON)
	if err != nil {
		return "", &MalformedDataError{What: "stored card", Err: err}
	}
	return html, nil
}

// PreviewInline composes an unsaved template and card data. Nothing is
// persisted.
func (s *ExportService) PreviewInline(req *models.PreviewRequest) (string, error) {
	html, err := render.ComposeDocument(req.Template.ID, req.Template.Name,
		req.Template.Front, req.Template.Back, req.CardData)
	if err != nil {
		return "", &MalformedDataError{What: "preview request", Err: err}
	}
	return html, nil
}

// Export sends a stored card to the rendering service and returns the
// encoded bytes. Parsing happens here first so malformed stored data is
// reported as a client-side problem, never as an upstream failure.
func (s *ExportService) Export(ctx context.Context, cardID, userID, format string) (*ExportResult, error) {
	card, tpl, err := s.loadCard(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	if _, err := render.ParseTemplate(tpl.ID, tpl.Name, tpl.FrontJSON, tpl.BackJSON); err != nil {
		return nil, &MalformedDataError{What: "stored template", Err: err}
	}
	if _, err := render.ParseCardData(card.CardDataJSON); err != nil {
		return nil, &MalformedDataError{What: "stored card data", Err: err}
	}

	body, err := json.Marshal(&models.RenderRequest{
		Template: models.PreviewTemplate{
			ID:    tpl.ID,
			Name:  tpl.Name,
			Front: tpl.FrontJSON,
			Back:  tpl.BackJSON,
		},
		CardData: card.CardDataJSON,
		Format:   format,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, contentType, err := s.callRenderer(ctx, body)
	if err != nil {
		return nil, err
	}

	slog.Info("Card exported",
		slog.String("type", "render"),
		slog.String("card_id", cardID),
		slog.String("format", format),
		slog.Int("size", len(data)),
		slog.Duration("elapsed", time.Since(start)))

	return &ExportResult{
		Bytes:       data,
		ContentType: contentType,
		Filename:    fmt.Sprintf("card-%s.%s", cardID, extensionFor(format)),
		Size:        len(data),
	}, nil
}

func (s *ExportService) loadCard(ctx context.Context, cardID, userID string) (*dbmodels.Card, *dbmodels.Template, error) {
	card, err := s.cards.Get(ctx, cardID, userID)
	if err != nil {
		return nil, nil, err
	}
	if card.Template == nil {
		return nil, nil, fmt.Errorf("card %s has no template loaded", cardID)
	}
	return card, card.Template, nil
}

func (s *ExportService) callRenderer(ctx context.Context, body []byte) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, "", &UpstreamRenderError{Reason: "timeout", Message: err.Error()}
		}
		return nil, "", &UpstreamRenderError{Reason: "unreachable", Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExportSize))
	if err != nil {
		return nil, "", &UpstreamRenderError{Reason: "unreachable", Message: err.Error()}
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode != http.StatusOK {
		return nil, "", &UpstreamRenderError{
			Reason:  "render_failed",
			Status:  resp.StatusCode,
			Message: upstreamMessage(contentType, data),
		}
	}

	// A 200 with a JSON body is still a failure: the service answers with
	// binary image or PDF bytes on success.
	if mt, _, _ := mime.ParseMediaType(contentType); mt == "application/json" {
		return nil, "", &UpstreamRenderError{
			Reason:  "render_failed",
			Status:  resp.StatusCode,
			Message: upstreamMessage(contentType, data),
		}
	}

	return data, contentType, nil
}

func upstreamMessage(contentType string, data []byte) string {
	if mt, _, _ := mime.ParseMediaType(contentType); mt == "application/json" {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
			if payload.Message != "" {
				return payload.Error + ": " + payload.Message
			}
			return payload.Error
		}
	}
	return "rendering service returned an error"
}

func extensionFor(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
