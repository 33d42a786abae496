package domain

import (
	"context"
	"io"
	"time"
)

type FileType string

const (
	FileTypeNone  FileType = "none"
	FileTypePDF   FileType = "pdf"
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// Evidence is a supporting artifact attached to an Element. The binary payload is
// never part of the JSON form; it is served by the file endpoint.
type Evidence struct {
	ID             int64     `json:"id,string"`
	ElementID      int64     `json:"element_id,string"`
	EvidenceNumber string    `json:"evidence_number"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	FileType       FileType  `json:"file_type"`
	FileName       *string   `json:"file_name"`
	MimeType       *string   `json:"mime_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasFile reports whether a binary is attached.
func (e Evidence) HasFile() bool {
	return e.FileType != "" && e.FileType != FileTypeNone
}

// EvidenceFile is the stored binary of an evidence.
type EvidenceFile struct {
	Name     string
	MimeType string
	FileType FileType
	Data     []byte
}

// EvidenceInput is the editable metadata of an evidence.
type EvidenceInput struct {
	EvidenceNumber string `json:"evidence_number" form:"evidence_number" validate:"max=50"`
	Title          string `json:"title" form:"title" validate:"required,max=255"`
	Description    string `json:"description" form:"description" validate:"max=5000"`
}

// Upload is a file received from a client before validation.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

type EvidenceRepository interface {
	Create(ctx context.Context, elementID int64, in EvidenceInput, file *EvidenceFile) (*Evidence, error)
	GetByID(ctx context.Context, id int64) (*Evidence, error)
	ListByElement(ctx context.Context, elementID int64) ([]Evidence, error)
	ListAll(ctx context.Context) ([]Evidence, error)
	UpdateMetadata(ctx context.Context, id int64, in EvidenceInput) (*Evidence, error)
	SetFile(ctx context.Context, id int64, file EvidenceFile) (*Evidence, error)
	ClearFile(ctx context.Context, id int64) (*Evidence, error)
	GetFile(ctx context.Context, id int64) (*EvidenceFile, error)
	Delete(ctx context.Context, id int64) error
}

type EvidenceUsecase interface {
	ListByElement(ctx context.Context, elementID int64) ([]Evidence, error)
	GetEvidence(ctx context.Context, id int64) (*Evidence, error)
	CreateEvidence(ctx context.Context, elementID int64, in EvidenceInput, upload *Upload) (*Evidence, error)
	UpdateEvidence(ctx context.Context, id int64, in EvidenceInput) (*Evidence, error)
	DeleteEvidence(ctx context.Context, id int64) error
	UploadFile(ctx context.Context, id int64, upload Upload) (*Evidence, error)
	DeleteFile(ctx context.Context, id int64) (*Evidence, error)
	GetFile(ctx context.Context, id int64) (*EvidenceFile, error)
	Export(ctx context.Context, w io.Writer) error
}
