package portfolio

import (
	"context"
	"errors"
	"fmt"
	"go-portfolio-backend/internal/domain"
	"io"
	"sync"
	"sync/atomic"
)

type EditorState int

const (
	Closed EditorState = iota
	Viewing
	Editing
	New
)

func (s EditorState) String() string {
	switch s {
	case Closed:
		return "closed"
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case New:
		return "new"
	}
	return fmt.Sprintf("EditorState(%d)", int(s))
}

var (
	// ErrNotSaved is returned by file operations on a draft without a server id.
	ErrNotSaved = errors.New("portfolio: evidence is not saved yet")
	// ErrInvalidTransition is returned when an action does not apply to the current state.
	ErrInvalidTransition = errors.New("portfolio: invalid editor transition")
	ErrReadOnly          = errors.New("portfolio: site is read-only")
)

// Editor is the evidence detail modal of a gallery.
type Editor struct {
	gallery *Gallery

	mu     sync.Mutex
	state  EditorState
	record *domain.Evidence
	draft  domain.Evidence
	busy   atomic.Bool
}

func NewEditor(g *Gallery) *Editor {
	return &Editor{gallery: g}
}

func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Record is the evidence being viewed, if any.
func (e *Editor) Record() (domain.Evidence, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.record == nil {
		return domain.Evidence{}, false
	}
	return *e.record, true
}

func (e *Editor) Draft() domain.Evidence {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Busy is true while a file upload is in flight.
func (e *Editor) Busy() bool {
	return e.busy.Load()
}

func (e *Editor) Open(ev domain.Evidence) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record = &ev
	e.draft = domain.Evidence{}
	e.state = Viewing
}

func (e *Editor) Edit() error {
	if !e.gallery.Editable() {
		return ErrReadOnly
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Viewing || e.record == nil {
		return ErrInvalidTransition
	}
	e.draft = *e.record
	e.state = Editing
	return nil
}

// StartNew opens an empty draft numbered after the gallery's current evidences. The
// gallery must have loaded an element first.
func (e *Editor) StartNew() error {
	if !e.gallery.Editable() {
		return ErrReadOnly
	}
	if e.gallery.ElementID() == 0 {
		return ErrInvalidTransition
	}

	draft := domain.Evidence{
		ElementID:      e.gallery.ElementID(),
		EvidenceNumber: e.gallery.NextEvidenceNumber(),
		FileType:       domain.FileTypeNone,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = draft
	e.state = New
	return nil
}

// SetDraft replaces the editable metadata of the draft.
func (e *Editor) SetDraft(in domain.EvidenceInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing && e.state != New {
		return ErrInvalidTransition
	}
	e.draft.EvidenceNumber = in.EvidenceNumber
	e.draft.Title = in.Title
	e.draft.Description = in.Description
	return nil
}

// Save creates or updates the draft and shows the stored record. On failure the
// editor stays as it was.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	state, draft := e.state, e.draft
	e.mu.Unlock()

	if state != Editing && state != New {
		return ErrInvalidTransition
	}

	in := domain.EvidenceInput{
		EvidenceNumber: draft.EvidenceNumber,
		Title:          draft.Title,
		Description:    draft.Description,
	}

	var (
		saved *domain.Evidence
		err   error
	)
	if draft.ID == 0 {
		saved, err = e.gallery.client.CreateEvidence(ctx, e.gallery.ElementID(), in)
	} else {
		saved, err = e.gallery.client.UpdateEvidence(ctx, draft.ID, in)
	}
	if err != nil {
		alert(e.gallery.alerter, msgSaveFailed, err)
		return err
	}

	e.gallery.merge(*saved)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.record = saved
	e.draft = domain.Evidence{}
	e.state = Viewing
	return nil
}

// Cancel drops the draft and returns to the viewed record, or closes when there is none.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing && e.state != New {
		return
	}
	e.draft = domain.Evidence{}
	if e.record != nil {
		e.state = Viewing
		return
	}
	e.state = Closed
}

func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record = nil
	e.draft = domain.Evidence{}
	e.state = Closed
}

// persistedID is the server id file operations act on.
func (e *Editor) persistedID() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == New || e.state == Closed || e.record == nil || e.record.ID == 0 {
		return 0, ErrNotSaved
	}
	return e.record.ID, nil
}

// UploadFile attaches or replaces the file of the persisted record.
func (e *Editor) UploadFile(ctx context.Context, name string, r io.Reader) error {
	id, err := e.persistedID()
	if err != nil {
		e.gallery.alerter.Alert(msgNotSaved)
		return err
	}

	e.busy.Store(true)
	defer e.busy.Store(false)

	updated, err := e.gallery.client.UploadFile(ctx, id, name, r)
	if err != nil {
		alert(e.gallery.alerter, msgUploadFailed, err)
		return err
	}
	return e.afterFileChange(ctx, *updated)
}

// DeleteFile removes the binary of the persisted record, keeping its metadata.
func (e *Editor) DeleteFile(ctx context.Context) error {
	id, err := e.persistedID()
	if err != nil {
		e.gallery.alerter.Alert(msgNotSaved)
		return err
	}

	updated, err := e.gallery.client.DeleteFile(ctx, id)
	if err != nil {
		alert(e.gallery.alerter, msgDeleteFileFailed, err)
		return err
	}
	return e.afterFileChange(ctx, *updated)
}

// afterFileChange re-fetches the gallery and refreshes the open record from it.
func (e *Editor) afterFileChange(ctx context.Context, updated domain.Evidence) error {
	if err := e.gallery.Refresh(ctx); err != nil {
		// the server accepted the change; keep what it returned
		e.gallery.merge(updated)
	}
	if fresh, ok := e.gallery.find(updated.ID); ok {
		updated = fresh
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.record != nil && e.record.ID == updated.ID {
		e.record = &updated
		if e.state == Editing {
			e.draft.FileType = updated.FileType
			e.draft.FileName = updated.FileName
			e.draft.MimeType = updated.MimeType
			e.draft.UpdatedAt = updated.UpdatedAt
		}
	}
	return nil
}
