package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the Arabic labels shown in the forms.
var FieldLabels = map[string]string{
	// Evidence
	"Title":          "العنوان",
	"Description":    "الوصف",
	"EvidenceNumber": "رقم الشاهد",

	// About me
	"Name":     "الاسم",
	"Bio":      "نبذة تعريفية",
	"ImageURL": "رابط الصورة",
	"Email":    "البريد الإلكتروني",
	"Phone":    "رقم الهاتف",
	"School":   "المدرسة",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// Message joins FormatValidationErrors into a single line for {message} responses.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "، ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: حقل مطلوب", label)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: الحد الأقصى %s حرفًا", label, param)
		}
		return fmt.Sprintf("%s: الحد الأقصى %s", label, param)
	case "email":
		return fmt.Sprintf("%s: صيغة البريد الإلكتروني غير صحيحة", label)
	case "valid_phone":
		return fmt.Sprintf("%s: صيغة رقم الهاتف غير صحيحة", label)
	case "http_url":
		return fmt.Sprintf("%s: يجب أن يبدأ الرابط بـ http أو https أو بـ /", label)
	default:
		return fmt.Sprintf("%s: قيمة غير صالحة (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}
