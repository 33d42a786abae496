package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Digits of any script (Arabic-Indic included) with optional leading +. Groups may be
// separated by spaces or hyphens and the area code may be parenthesized.
var phoneRegex = regexp.MustCompile(`^\+?[\p{Nd}(][\p{Nd} ()\-]{5,18}\p{Nd}$`)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("http_url", HTTPURL)
}

// ValidPhone accepts an empty string; use required if needed.
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// HTTPURL accepts an empty string, an absolute http(s) URL or a site-relative path
// such as "/images/me.jpg". Protocol-relative "//host" URLs are refused.
func HTTPURL(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	u, err := url.Parse(val)
	if err != nil {
		return false
	}
	if strings.HasPrefix(val, "/") && !strings.HasPrefix(val, "//") {
		return u.Scheme == "" && u.Host == ""
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
