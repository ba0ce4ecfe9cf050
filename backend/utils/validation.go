package utils

import (
	"fmt"
	"mime/multipart"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/cardatelier/cardforge/backend/models"
)

var (
	// ValidImageExtensions contains valid image file extensions
	ValidImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	// MaxImageSize defines maximum upload size (10MB)
	MaxImageSize int64 = 10 * 1024 * 1024

	// ValidExportFormats are the encodings the rendering service produces
	ValidExportFormats = []string{"png", "jpeg", "pdf"}
)

const (
	minPasswordLength = 8
	maxUsernameLength = 50
	maxTemplateName   = 100
)

// ValidateRegisterRequest checks an account creation payload.
func ValidateRegisterRequest(req *models.RegisterRequest) map[string]string {
	details := make(map[string]string)

	if req.Email == "" {
		details["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		details["email"] = "Email is not valid"
	}

	if req.Username == "" {
		details["username"] = "Username is required"
	} else if len(req.Username) > maxUsernameLength {
		details["username"] = fmt.Sprintf("Username must be at most %d characters", maxUsernameLength)
	}

	if len(req.Password) < minPasswordLength {
		details["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// ValidateTemplateCreateRequest checks a template creation payload. Layout
// structure is validated separately by the composition pipeline.
func ValidateTemplateCreateRequest(req *models.TemplateCreateRequest) map[string]string {
	details := make(map[string]string)

	if req.Name == "" {
		details["name"] = "Name is required"
	} else if len(req.Name) > maxTemplateName {
		details["name"] = fmt.Sprintf("Name must be at most %d characters", maxTemplateName)
	}
	if len(req.Front) == 0 {
		details["front"] = "Front layout is required"
	}
	if len(req.Back) == 0 {
		details["back"] = "Back layout is required"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// ValidateCardCreateRequest checks a card creation payload.
func ValidateCardCreateRequest(req *models.CardCreateRequest) map[string]string {
	details := make(map[string]string)

	if req.TemplateID == "" {
		details["templateId"] = "Template ID is required"
	}
	if len(req.CardData) == 0 {
		details["cardData"] = "Card data is required"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// ValidateExportFormat checks the requested output encoding before any
// composition or upstream work happens.
func ValidateExportFormat(format string) error {
	for _, f := range ValidExportFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q: must be one of %s", format, strings.Join(ValidExportFormats, ", "))
}

// ValidateImageUpload checks an uploaded photo's extension and size.
func ValidateImageUpload(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	valid := false
	for _, e := range ValidImageExtensions {
		if ext == e {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported file type %q", ext)
	}
	if header.Size > MaxImageSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", header.Size, MaxImageSize)
	}
	return nil
}
