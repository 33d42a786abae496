package portfolio

import "go-portfolio-backend/internal/domain"

// Previewer resolves the thumbnail of a non-image evidence. ok is false when no
// preview can be shown and the card falls back to a placeholder.
type Previewer interface {
	PreviewURL(ev domain.Evidence) (url string, ok bool)
}

// ServerPreviewer points PDF and video cards at the server thumbnailer.
type ServerPreviewer struct {
	Client *Client
}

func (p ServerPreviewer) PreviewURL(ev domain.Evidence) (string, bool) {
	switch ev.FileType {
	case domain.FileTypePDF, domain.FileTypeVideo:
		return p.Client.PreviewURL(ev.ID), true
	}
	return "", false
}

// NoPreviews shows placeholders for every PDF and video.
type NoPreviews struct{}

func (NoPreviews) PreviewURL(domain.Evidence) (string, bool) { return "", false }
