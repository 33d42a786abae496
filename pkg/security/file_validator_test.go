package security_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"go-portfolio-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 230, G: 160, B: 176, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
	mp4Bytes = append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)
)

func TestValidateFile(t *testing.T) {
	t.Run("png image", func(t *testing.T) {
		res := security.ValidateFile("photo.PNG", pngBytes(t))
		assert.True(t, res.Valid, res.Error)
		assert.Equal(t, security.KindImage, res.Kind)
		assert.Equal(t, "image/png", res.DetectedMIME)
	})

	t.Run("pdf document", func(t *testing.T) {
		res := security.ValidateFile("خطة.pdf", pdfBytes)
		assert.True(t, res.Valid, res.Error)
		assert.Equal(t, security.KindPDF, res.Kind)
		assert.Equal(t, "application/pdf", res.DetectedMIME)
	})

	t.Run("mp4 video", func(t *testing.T) {
		res := security.ValidateFile("lesson.mp4", mp4Bytes)
		assert.True(t, res.Valid, res.Error)
		assert.Equal(t, security.KindVideo, res.Kind)
	})

	t.Run("missing extension", func(t *testing.T) {
		res := security.ValidateFile("README", pdfBytes)
		assert.False(t, res.Valid)
		assert.Equal(t, "file has no extension", res.Error)
	})

	t.Run("extension not allowed", func(t *testing.T) {
		res := security.ValidateFile("run.exe", []byte("MZ......"))
		assert.False(t, res.Valid)
		assert.Contains(t, res.Error, ".exe")
	})

	t.Run("spoofed pdf", func(t *testing.T) {
		res := security.ValidateFile("fake.pdf", []byte("just some text pretending"))
		assert.False(t, res.Valid)
		assert.Contains(t, res.Error, "does not match")
	})

	t.Run("png renamed to mp4", func(t *testing.T) {
		res := security.ValidateFile("clip.mp4", pngBytes(t))
		assert.False(t, res.Valid)
	})
}
