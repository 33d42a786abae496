package security

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// File kinds accepted as evidence attachments.
const (
	KindPDF   = "pdf"
	KindImage = "image"
	KindVideo = "video"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Kind         string // pdf, image or video
	Extension    string // Detected file extension
	DetectedMIME string // MIME type sniffed from content
	Error        string // Error message if validation failed
}

// Magic byte signatures for formats where the sniffer alone is too lenient.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	".webp": {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                                   // %PDF
}

// Extension whitelist and the kind each one maps to.
var allowedExtensions = map[string]string{
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
	".gif":  KindImage,
	".webp": KindImage,
	".pdf":  KindPDF,
	".mp4":  KindVideo,
	".m4v":  KindVideo,
	".mov":  KindVideo,
	".webm": KindVideo,
}

// Sniffed MIME types accepted per kind. application/octet-stream is never accepted.
var strictMIMETypes = map[string]string{
	"image/jpeg":      KindImage,
	"image/png":       KindImage,
	"image/gif":       KindImage,
	"image/webp":      KindImage,
	"application/pdf": KindPDF,
	"video/mp4":       KindVideo,
	"video/x-m4v":     KindVideo,
	"video/quicktime": KindVideo,
	"video/webm":      KindVideo,
}

// ValidateFile performs 3-layer file validation:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. Sniffed MIME type whitelist, which must agree with the extension's kind
func ValidateFile(filename string, data []byte) FileValidationResult {
	detected := mimetype.Detect(data)
	result := FileValidationResult{
		DetectedMIME: detected.String(),
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	kind, ok := allowedExtensions[ext]
	if !ok {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	// Strip parameters such as "; charset=binary".
	base := strings.TrimSpace(strings.SplitN(detected.String(), ";", 2)[0])
	result.DetectedMIME = base

	sniffedKind, ok := strictMIMETypes[base]
	if !ok {
		result.Error = "MIME type not allowed: " + base
		return result
	}
	if sniffedKind != kind {
		result.Error = "file content does not match extension"
		return result
	}

	result.Kind = kind
	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes.
// Extensions without a registered signature rely on the sniffer only.
func validateMagicBytes(ext string, data []byte) bool {
	signatures, ok := magicBytes[ext]
	if !ok {
		return true
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

// GetAllowedExtensions returns a list of allowed extensions for error messages
func GetAllowedExtensions() []string {
	extensions := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		extensions = append(extensions, ext)
	}
	return extensions
}
