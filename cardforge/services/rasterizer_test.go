package services

import (
	"net/url"
	"strings"
	"testing"
)

func TestEncodeDataURL(t *testing.T) {
	// Presigned asset URLs carry percent escapes that must survive the
	// browser decoding the data: URL body.
	html := "<html>\n<body style=\"color: #fff\">\n" +
		"<div style=\"background-image: url('https://bucket.sfo3.digitaloceanspaces.com/photos%2F1%2Fruth.jpg" +
		"?X-Amz-Credential=key%2F20260828%2Fsfo3&X-Amz-Signature=abc%3D')\"></div>\n" +
		"</body></html>"

	encoded := encodeDataURL(html)

	if strings.Contains(encoded, "\n") {
		t.Error("newlines survived encoding")
	}
	if strings.Contains(encoded, "#") {
		t.Error("raw fragment marker survived encoding")
	}

	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		t.Fatalf("browser-style decode failed: %v", err)
	}
	want := strings.ReplaceAll(html, "\n", "")
	if decoded != want {
		t.Errorf("decoded document differs from source:\n got %q\nwant %q", decoded, want)
	}
	if !strings.Contains(decoded, "key%2F20260828%2Fsfo3") {
		t.Error("signed URL escapes were lost in the round trip")
	}
}

func TestParseRasterFormat(t *testing.T) {
	valid := map[string]string{
		"png":  "image/png",
		"jpeg": "image/jpeg",
		"pdf":  "application/pdf",
	}
	for s, contentType := range valid {
		format, err := ParseRasterFormat(s)
		if err != nil {
			t.Errorf("ParseRasterFormat(%q) = %v", s, err)
			continue
		}
		if format.ContentType() != contentType {
			t.Errorf("ContentType(%q) = %q, want %q", s, format.ContentType(), contentType)
		}
	}

	for _, s := range []string{"", "gif", "jpg", "PNG"} {
		if _, err := ParseRasterFormat(s); err == nil {
			t.Errorf("ParseRasterFormat(%q) accepted", s)
		}
	}
}
