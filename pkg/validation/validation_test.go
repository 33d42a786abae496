package validation_test

import (
	"errors"
	"testing"

	"go-portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name     string `validate:"required"`
	Email    string `validate:"omitempty,email"`
	Phone    string `validate:"valid_phone"`
	ImageURL string `validate:"http_url"`
}

func TestCustomValidators(t *testing.T) {
	v := validation.New()

	t.Run("accepts a complete profile", func(t *testing.T) {
		err := v.Struct(profile{Name: "نوال", Email: "t@example.com", Phone: "+966 50 123 4567", ImageURL: "https://example.com/a.jpg"})
		assert.NoError(t, err)
	})

	t.Run("accepts empty optionals", func(t *testing.T) {
		assert.NoError(t, v.Struct(profile{Name: "نوال"}))
	})

	t.Run("rejects bad phone and url", func(t *testing.T) {
		err := v.Struct(profile{Name: "x", Phone: "abc", ImageURL: "javascript:alert(1)"})
		require.Error(t, err)

		msgs := validation.FormatValidationErrors(err)
		assert.Len(t, msgs, 2)
		assert.Contains(t, msgs[0], "رقم الهاتف")
		assert.Contains(t, msgs[1], "رابط الصورة")
	})
}

func TestPhoneFormats(t *testing.T) {
	v := validation.New()

	cases := []struct {
		phone string
		ok    bool
	}{
		{"0501234567", true},
		{"+966 50 123 4567", true},
		{"050-123-4567", true},
		{"(050) 123-4567", true},
		{"٠٥٠١٢٣٤٥٦٧", true},
		{"+٩٦٦ ٥٠ ١٢٣ ٤٥٦٧", true},
		{"abc", false},
		{"12345", false},
		{"050-123-", false},
		{"050 123 4567 ext 2", false},
	}
	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			err := v.Struct(profile{Name: "x", Phone: tc.phone})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestImageURLFormats(t *testing.T) {
	v := validation.New()

	cases := []struct {
		url string
		ok  bool
	}{
		{"https://example.com/a.jpg", true},
		{"http://example.com/a.jpg", true},
		{"/images/teacher.jpg", true},
		{"/", true},
		{"//evil.example/a.jpg", false},
		{"images/teacher.jpg", false},
		{"javascript:alert(1)", false},
		{"ftp://example.com/a.jpg", false},
	}
	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			err := v.Struct(profile{Name: "x", ImageURL: tc.url})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMessageLabelsRequiredFields(t *testing.T) {
	err := validation.New().Struct(profile{Email: "nope"})
	require.Error(t, err)

	msg := validation.Message(err)
	assert.Contains(t, msg, "الاسم: حقل مطلوب")
	assert.Contains(t, msg, "البريد الإلكتروني")
}

func TestFormatNonValidationError(t *testing.T) {
	msgs := validation.FormatValidationErrors(errors.New("boom"))
	assert.Equal(t, []string{"boom"}, msgs)
}
