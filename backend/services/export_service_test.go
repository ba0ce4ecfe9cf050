package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cardatelier/cardforge/backend/models"
)

func TestCallRendererSuccess(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/render" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer server.Close()

	svc := NewExportService(nil, server.URL, 5*time.Second)
	data, contentType, err := svc.callRenderer(context.Background(), []byte(`{}`))
	if err != nil {
		t.Fatalf("callRenderer: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("content type = %q, want image/png", contentType)
	}
	if string(data) != string(payload) {
		t.Errorf("body mismatch: %v", data)
	}
}

func TestCallRendererJSONOn200(t *testing.T) {
	// A 200 carrying JSON is a disguised failure, never image bytes.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Failed to render card",
			"message": "browser crashed",
		})
	}))
	defer server.Close()

	svc := NewExportService(nil, server.URL, 5*time.Second)
	_, _, err := svc.callRenderer(context.Background(), []byte(`{}`))

	var upstream *UpstreamRenderError
	if !errors.As(err, &upstream) {
		t.Fatalf("got %v, want UpstreamRenderError", err)
	}
	if upstream.Reason != "render_failed" {
		t.Errorf("reason = %q, want render_failed", upstream.Reason)
	}
	if !strings.Contains(upstream.Message, "browser crashed") {
		t.Errorf("message lost: %q", upstream.Message)
	}
}

func TestCallRendererUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to render card"})
	}))
	defer server.Close()

	svc := NewExportService(nil, server.URL, 5*time.Second)
	_, _, err := svc.callRenderer(context.Background(), []byte(`{}`))

	var upstream *UpstreamRenderError
	if !errors.As(err, &upstream) {
		t.Fatalf("got %v, want UpstreamRenderError", err)
	}
	if upstream.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", upstream.Status)
	}
}

func TestCallRendererUnreachable(t *testing.T) {
	// Closed port: the request never completes.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewExportService(nil, server.URL, time.Second)
	_, _, err := svc.callRenderer(context.Background(), []byte(`{}`))

	var upstream *UpstreamRenderError
	if !errors.As(err, &upstream) {
		t.Fatalf("got %v, want UpstreamRenderError", err)
	}
	if upstream.Reason != "unreachable" && upstream.Reason != "timeout" {
		t.Errorf("reason = %q, want unreachable or timeout", upstream.Reason)
	}
}

func TestCallRendererTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	svc := NewExportService(nil, server.URL, 50*time.Millisecond)
	_, _, err := svc.callRenderer(context.Background(), []byte(`{}`))

	var upstream *UpstreamRenderError
	if !errors.As(err, &upstream) {
		t.Fatalf("got %v, want UpstreamRenderError", err)
	}
	if upstream.Reason != "timeout" {
		t.Errorf("reason = %q, want timeout", upstream.Reason)
	}
}

func TestPreviewInline(t *testing.T) {
	svc := NewExportService(nil, "http://localhost:0", time.Second)

	req := &models.PreviewRequest{
		Template: models.PreviewTemplate{
			ID:    "topps-1990-style",
			Name:  "Topps 1990 Style",
			Front: json.RawMessage(`{"width": 630, "height": 880, "elements": [{"id": "n", "type": "text", "x": 0, "y": 0, "visible": true, "content": "{{player.name}}", "fontSize": 12}]}`),
			Back:  json.RawMessage(`{"width": 630, "height": 880, "elements": []}`),
		},
		CardData: json.RawMessage(`{"player": {"name": "Babe Ruth"}}`),
	}

	html, err := svc.PreviewInline(req)
	if err != nil {
		t.Fatalf("PreviewInline: %v", err)
	}
	if !strings.Contains(html, "Babe Ruth") {
		t.Error("resolved player name missing from document")
	}

	req.CardData = json.RawMessage(`{bad`)
	_, err = svc.PreviewInline(req)
	var malformed *MalformedDataError
	if !errors.As(err, &malformed) {
		t.Errorf("got %v, want MalformedDataError", err)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"png":  "png",
		"jpeg": "jpg",
		"pdf":  "pdf",
	}
	for format, want := range tests {
		if got := extensionFor(format); got != want {
			t.Errorf("extensionFor(%q) = %q, want %q", format, got, want)
		}
	}
}
