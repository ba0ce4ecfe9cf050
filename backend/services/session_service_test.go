package services

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cardatelier/cardforge/backend/config"
	"github.com/cardatelier/cardforge/backend/models"
	"github.com/cardatelier/cardforge/cardforge"
)

func testSessionService(secret string) *SessionService {
	cfg := &cardforge.Config{}
	cfg.Auth.SessionSecret = secret
	return NewSessionService(&config.WebAppConfig{Config: cfg, Environment: "test"})
}

func TestSessionSignRoundTrip(t *testing.T) {
	svc := testSessionService("0123456789abcdef0123456789abcdef")

	session := models.UserSession{
		UserID:    "u-1",
		Email:     "ruth@example.com",
		Username:  "babe",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	payload, err := json.Marshal(session)
	if err != nil {
		t.Fatal(err)
	}

	token, err := svc.signData(payload)
	if err != nil {
		t.Fatalf("signData: %v", err)
	}

	decoded, err := svc.verifyAndDecodeData(token)
	if err != nil {
		t.Fatalf("verifyAndDecodeData: %v", err)
	}

	var got models.UserSession
	if err := json.Unmarshal(decoded, &got); err != nil {
		t.Fatal(err)
	}
	if got.UserID != session.UserID || got.Email != session.Email {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestSessionTamperDetected(t *testing.T) {
	svc := testSessionService("0123456789abcdef0123456789abcdef")

	token, err := svc.signData([]byte(`{"userId":"u-1"}`))
	if err != nil {
		t.Fatal(err)
	}

	raw, _ := base64.URLEncoding.DecodeString(token)
	raw[0] ^= 0xff
	tampered := base64.URLEncoding.EncodeToString(raw)

	if _, err := svc.verifyAndDecodeData(tampered); err == nil {
		t.Error("tampered token verified")
	}
}

func TestSessionWrongKeyRejected(t *testing.T) {
	signer := testSessionService("0123456789abcdef0123456789abcdef")
	verifier := testSessionService("fedcba9876543210fedcba9876543210")

	token, err := signer.signData([]byte(`{"userId":"u-1"}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.verifyAndDecodeData(token); err == nil {
		t.Error("token signed with another key verified")
	}
}

func TestSessionMalformedTokens(t *testing.T) {
	svc := testSessionService("0123456789abcdef0123456789abcdef")

	cases := map[string]string{
		"not base64": "%%%not-base64%%%",
		"too short":  base64.URLEncoding.EncodeToString([]byte("short")),
		"empty":      "",
	}
	for name, token := range cases {
		if _, err := svc.verifyAndDecodeData(token); err == nil {
			t.Errorf("%s: verification succeeded", name)
		}
	}
}

func TestSessionRequiresKey(t *testing.T) {
	svc := testSessionService("")
	if _, err := svc.signData([]byte("data")); err == nil || !strings.Contains(err.Error(), "session key") {
		t.Errorf("got %v, want missing-key error", err)
	}
}
