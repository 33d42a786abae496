package portfolio

import (
	"context"
	"fmt"
	"go-portfolio-backend/internal/domain"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// RenderContext carries the deployment flags the view renders with.
type RenderContext struct {
	// Editable shows the add card and the per-card edit and delete affordances.
	Editable bool
	// Now stamps cache-busting versions. Defaults to time.Now.
	Now func() time.Time
}

func (rc RenderContext) now() time.Time {
	if rc.Now != nil {
		return rc.Now()
	}
	return time.Now()
}

// Card is one rendered evidence tile.
type Card struct {
	Evidence domain.Evidence
	// Thumbnail is empty when Placeholder is set.
	Thumbnail   string
	Placeholder bool
	CanEdit     bool
	CanDelete   bool
}

// Gallery is the evidence grid of one element.
type Gallery struct {
	client    *Client
	previewer Previewer
	alerter   Alerter
	rc        RenderContext

	mu        sync.Mutex
	elementID int64
	element   *domain.Element
	related   []domain.Element
	evidences []domain.Evidence
	version   int64
	issued    uint64
}

func NewGallery(client *Client, previewer Previewer, alerter Alerter, rc RenderContext) *Gallery {
	if previewer == nil {
		previewer = ServerPreviewer{Client: client}
	}
	if alerter == nil {
		alerter = silent{}
	}
	return &Gallery{
		client:    client,
		previewer: previewer,
		alerter:   alerter,
		rc:        rc,
		version:   rc.now().UnixMilli(),
	}
}

func (g *Gallery) nextToken() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

// invalidate retires every token issued so far, so list responses requested before a
// local change cannot overwrite it. Callers hold g.mu.
func (g *Gallery) invalidate() {
	g.issued++
}

// current reports whether token is still the latest one issued. Callers hold g.mu.
func (g *Gallery) current(token uint64) bool {
	return token == g.issued
}

// Load fetches the element, its evidences and its related elements concurrently.
func (g *Gallery) Load(ctx context.Context, elementID int64) error {
	token := g.nextToken()

	var (
		element   *domain.Element
		evidences []domain.Evidence
		related   []domain.Element
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		element, err = g.client.Element(egCtx, elementID)
		return err
	})
	eg.Go(func() (err error) {
		evidences, err = g.client.Evidences(egCtx, elementID)
		return err
	})
	eg.Go(func() (err error) {
		related, err = g.client.RelatedElements(egCtx, elementID)
		return err
	})
	if err := eg.Wait(); err != nil {
		alert(g.alerter, msgLoadFailed, err)
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.current(token) {
		return nil
	}
	g.elementID = elementID
	g.element = element
	g.evidences = evidences
	g.related = related
	g.version = g.rc.now().UnixMilli()
	return nil
}

// Refresh re-fetches the evidence list. A response that arrives after a newer
// Load or Refresh was issued is dropped.
func (g *Gallery) Refresh(ctx context.Context) error {
	g.mu.Lock()
	elementID := g.elementID
	g.mu.Unlock()

	token := g.nextToken()
	evidences, err := g.client.Evidences(ctx, elementID)
	if err != nil {
		alert(g.alerter, msgLoadFailed, err)
		return err
	}
	g.applyEvidences(token, evidences)
	return nil
}

func (g *Gallery) applyEvidences(token uint64, evidences []domain.Evidence) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.current(token) {
		return false
	}
	g.evidences = evidences
	g.version = g.rc.now().UnixMilli()
	return true
}

// Delete removes the evidence on the server and from the rendered list.
func (g *Gallery) Delete(ctx context.Context, evidenceID int64) error {
	if err := g.client.DeleteEvidence(ctx, evidenceID); err != nil {
		alert(g.alerter, msgDeleteFailed, err)
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.invalidate()
	kept := make([]domain.Evidence, 0, len(g.evidences))
	for _, ev := range g.evidences {
		if ev.ID != evidenceID {
			kept = append(kept, ev)
		}
	}
	g.evidences = kept
	g.version = g.rc.now().UnixMilli()
	return nil
}

// merge puts a saved record into the list, new records first.
func (g *Gallery) merge(ev domain.Evidence) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.invalidate()

	for i := range g.evidences {
		if g.evidences[i].ID == ev.ID {
			g.evidences, _ = replaceAt(g.evidences, i, ev)
			return
		}
	}
	out := make([]domain.Evidence, 0, len(g.evidences)+1)
	out = append(out, ev)
	g.evidences = append(out, g.evidences...)
}

func (g *Gallery) find(evidenceID int64) (domain.Evidence, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, ev := range g.evidences {
		if ev.ID == evidenceID {
			return ev, true
		}
	}
	return domain.Evidence{}, false
}

// NextEvidenceNumber suggests the label of a new evidence: "<element>.<count+1>".
func (g *Gallery) NextEvidenceNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%d.%d", g.elementID, len(g.evidences)+1)
}

func (g *Gallery) ElementID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.elementID
}

func (g *Gallery) Element() *domain.Element {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.element
}

func (g *Gallery) Related() []domain.Element {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Element(nil), g.related...)
}

func (g *Gallery) Evidences() []domain.Evidence {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Evidence(nil), g.evidences...)
}

// Editable reports whether authoring affordances are rendered.
func (g *Gallery) Editable() bool {
	return g.rc.Editable
}

// ShowAddCard reports whether the "add new" card is rendered.
func (g *Gallery) ShowAddCard() bool {
	return g.rc.Editable
}

// FileURL is the cache-busted URL of an evidence file.
func (g *Gallery) FileURL(evidenceID int64) string {
	g.mu.Lock()
	v := g.version
	g.mu.Unlock()
	return withVersion(g.client.FileURL(evidenceID), v)
}

func (g *Gallery) Cards() []Card {
	g.mu.Lock()
	evidences := append([]domain.Evidence(nil), g.evidences...)
	v := g.version
	g.mu.Unlock()

	cards := make([]Card, 0, len(evidences))
	for _, ev := range evidences {
		card := Card{
			Evidence:  ev,
			CanEdit:   g.rc.Editable,
			CanDelete: g.rc.Editable,
		}
		switch ev.FileType {
		case domain.FileTypeImage:
			card.Thumbnail = withVersion(g.client.FileURL(ev.ID), v)
		case domain.FileTypePDF, domain.FileTypeVideo:
			if u, ok := g.previewer.PreviewURL(ev); ok {
				card.Thumbnail = withVersion(u, v)
			}
		}
		card.Placeholder = card.Thumbnail == ""
		cards = append(cards, card)
	}
	return cards
}
