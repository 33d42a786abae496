package preview

import (
	"bytes"
	"context"
	"fmt"
	"go-portfolio-backend/internal/domain"
	"image/jpeg"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	cacheTTL    = 24 * time.Hour
	jpegQuality = 80
)

// Cache stores encoded thumbnails.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// RedisCache keeps thumbnails in Redis. Failures degrade to a cache miss.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("preview cache read failed")
		}
		return nil, false
	}
	return b, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("preview cache write failed")
	}
}

// Service produces JPEG thumbnails for evidences.
type Service struct {
	gen   Generator
	cache Cache
}

// NewService builds the thumbnailer. cache may be nil.
func NewService(gen Generator, cache Cache) *Service {
	return &Service{gen: gen, cache: cache}
}

// CacheKey changes whenever the evidence file is replaced.
func CacheKey(ev domain.Evidence) string {
	return fmt.Sprintf("preview:%d:%d", ev.ID, ev.UpdatedAt.UnixNano())
}

// Thumbnail returns the JPEG preview of ev. load is only called on a cache miss.
func (s *Service) Thumbnail(ctx context.Context, ev domain.Evidence, load func(context.Context) (*domain.EvidenceFile, error)) ([]byte, error) {
	if !ev.HasFile() {
		return nil, ErrUnsupported
	}

	key := CacheKey(ev)
	if s.cache != nil {
		if b, ok := s.cache.Get(ctx, key); ok {
			return b, nil
		}
	}

	file, err := load(ctx)
	if err != nil {
		return nil, err
	}

	img, err := s.gen.Generate(ctx, *file)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, buf.Bytes(), cacheTTL)
	}
	return buf.Bytes(), nil
}

// DefaultGenerator wires the image scaler and whichever external tools are installed.
func DefaultGenerator() Mux {
	m := Mux{domain.FileTypeImage: ImageGenerator{}}
	if pdf := PDFFirstPage(); pdf.Available() {
		m[domain.FileTypePDF] = pdf
	} else {
		log.Info().Msg("pdftoppm not found, PDF previews disabled")
	}
	if video := VideoFrame(); video.Available() {
		m[domain.FileTypeVideo] = video
	} else {
		log.Info().Msg("ffmpeg not found, video previews disabled")
	}
	return m
}
