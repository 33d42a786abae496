package preview

import (
	"bytes"
	"context"
	"fmt"
	"go-portfolio-backend/internal/domain"
	"image"

	// decoders registered with image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ImageGenerator decodes a stored image and scales it down.
type ImageGenerator struct{}

func (ImageGenerator) Generate(_ context.Context, f domain.EvidenceFile) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return Fit(img, MaxSize), nil
}
