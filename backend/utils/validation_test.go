package utils

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cardatelier/cardforge/backend/models"
)

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       models.RegisterRequest
		wantField string
	}{
		{
			name: "valid",
			req:  models.RegisterRequest{Email: "ruth@example.com", Username: "babe", Password: "longenough"},
		},
		{
			name:      "missing email",
			req:       models.RegisterRequest{Username: "babe", Password: "longenough"},
			wantField: "email",
		},
		{
			name:      "bad email",
			req:       models.RegisterRequest{Email: "not-an-email", Username: "babe", Password: "longenough"},
			wantField: "email",
		},
		{
			name:      "missing username",
			req:       models.RegisterRequest{Email: "ruth@example.com", Password: "longenough"},
			wantField: "username",
		},
		{
			name:      "username too long",
			req:       models.RegisterRequest{Email: "ruth@example.com", Username: strings.Repeat("a", 51), Password: "longenough"},
			wantField: "username",
		},
		{
			name:      "short password",
			req:       models.RegisterRequest{Email: "ruth@example.com", Username: "babe", Password: "short"},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ValidateRegisterRequest(&tt.req)
			if tt.wantField == "" {
				if details != nil {
					t.Errorf("valid request rejected: %v", details)
				}
				return
			}
			if _, ok := details[tt.wantField]; !ok {
				t.Errorf("missing %q in details: %v", tt.wantField, details)
			}
		})
	}
}

func TestValidateTemplateCreateRequest(t *testing.T) {
	layout := json.RawMessage(`{"width": 630, "height": 880, "elements": []}`)

	req := &models.TemplateCreateRequest{Name: "Topps 1990", Front: layout, Back: layout}
	if details := ValidateTemplateCreateRequest(req); details != nil {
		t.Errorf("valid request rejected: %v", details)
	}

	req = &models.TemplateCreateRequest{Name: strings.Repeat("x", 101), Front: layout}
	details := ValidateTemplateCreateRequest(req)
	if _, ok := details["name"]; !ok {
		t.Errorf("overlong name accepted: %v", details)
	}
	if _, ok := details["back"]; !ok {
		t.Errorf("missing back layout accepted: %v", details)
	}
}

func TestValidateExportFormat(t *testing.T) {
	for _, format := range []string{"png", "jpeg", "pdf"} {
		if err := ValidateExportFormat(format); err != nil {
			t.Errorf("ValidateExportFormat(%q) = %v", format, err)
		}
	}
	for _, format := range []string{"", "jpg", "gif", "PNG", "svg"} {
		if err := ValidateExportFormat(format); err == nil {
			t.Errorf("ValidateExportFormat(%q) accepted", format)
		}
	}
}
