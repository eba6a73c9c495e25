package validator

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/alucardavid/samplemed-blog/internal/domain"
)

var (
	validTypes    = []interface{}{domain.ArticleTypeDraft, domain.ArticleTypePublished, domain.ArticleTypeArchived}
	validStatuses = []interface{}{domain.ArticleStatusPrivate, domain.ArticleStatusPublic}
)

// Validator provides validation methods for request payloads. Malformed
// payloads fail here, before any service runs.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateArticle validates the field set of an article payload.
func (v *Validator) ValidateArticle(a *domain.Article) error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Title,
			validation.Required.Error("title_required"),
			validation.Length(1, 200).Error("title_too_long"),
		),
		validation.Field(&a.Subtitle,
			validation.Required.Error("subtitle_required"),
			validation.Length(1, 200).Error("subtitle_too_long"),
		),
		validation.Field(&a.Content,
			validation.Required.Error("content_required"),
		),
		validation.Field(&a.Type,
			validation.In(validTypes...).Error("invalid_article_type"),
		),
		validation.Field(&a.Status,
			validation.In(validStatuses...).Error("invalid_article_status"),
		),
	)
}

// ValidateRegistration validates the registration payload.
func (v *Validator) ValidateRegistration(username, email, password string) error {
	return validation.Errors{
		"username": validation.Validate(username,
			validation.Required.Error("username_required"),
			validation.Length(1, 150).Error("username_too_long"),
		),
		"email": validation.Validate(email,
			validation.Required.Error("email_required"),
			is.Email.Error("invalid_email_format"),
		),
		"password": validation.Validate(password,
			validation.Required.Error("password_required"),
			validation.Length(8, 128).Error("password_too_short"),
		),
	}.Filter()
}

// ValidateComment validates the comment payload.
func (v *Validator) ValidateComment(c *domain.Comment) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ArticleID,
			validation.Required.Error("article_id_required"),
		),
		validation.Field(&c.Content,
			validation.Required.Error("content_required"),
		),
	)
}

// ValidateKeywordName validates a keyword payload. The name is checked
// after normalization so whitespace-only names fail.
func (v *Validator) ValidateKeywordName(name string) error {
	return validation.Errors{
		"name": validation.Validate(domain.NormalizeKeywordName(name),
			validation.Required.Error("name_required"),
			validation.Length(1, 50).Error("name_too_long"),
		),
	}.Filter()
}

// AsValidationError converts an ozzo validation error into the business
// validation failure carried on the wire. Field messages are joined in
// a stable order.
func AsValidationError(err error) *domain.Error {
	if err == nil {
		return nil
	}

	ve, ok := err.(validation.Errors)
	if !ok {
		return domain.NewValidationError(err.Error())
	}

	fields := make([]string, 0, len(ve))
	for field := range ve {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+ve[field].Error())
	}
	return domain.NewValidationError(strings.Join(parts, "; "))
}
