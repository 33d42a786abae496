package postgres

import (
	"context"
	"go-portfolio-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// evidenceColumns never includes file_data; binaries are only read by GetFile.
const evidenceColumns = `id, element_id, evidence_number, title, description, file_type, file_name, mime_type, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvidence(row rowScanner) (*domain.Evidence, error) {
	var ev domain.Evidence
	var fileType string
	err := row.Scan(
		&ev.ID, &ev.ElementID, &ev.EvidenceNumber, &ev.Title, &ev.Description,
		&fileType, &ev.FileName, &ev.MimeType, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ev.FileType = domain.FileType(fileType)
	return &ev, nil
}

type evidenceRepo struct {
	db *pgxpool.Pool
}

func NewEvidenceRepository(db *pgxpool.Pool) domain.EvidenceRepository {
	return &evidenceRepo{db: db}
}

func (r *evidenceRepo) Create(ctx context.Context, elementID int64, in domain.EvidenceInput, file *domain.EvidenceFile) (*domain.Evidence, error) {
	fileType := string(domain.FileTypeNone)
	var fileName, mimeType *string
	var data []byte
	if file != nil {
		fileType = string(file.FileType)
		fileName, mimeType, data = &file.Name, &file.MimeType, file.Data
	}

	query := `INSERT INTO evidences (element_id, evidence_number, title, description, file_type, file_name, mime_type, file_data)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              RETURNING ` + evidenceColumns
	ev, err := scanEvidence(r.db.QueryRow(ctx, query,
		elementID, in.EvidenceNumber, in.Title, in.Description, fileType, fileName, mimeType, data,
	))
	if err != nil {
		return nil, errors.Wrap(err, "insert evidence")
	}
	return ev, nil
}

func (r *evidenceRepo) GetByID(ctx context.Context, id int64) (*domain.Evidence, error) {
	query := `SELECT ` + evidenceColumns + ` FROM evidences WHERE id = $1`
	ev, err := scanEvidence(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "get evidence")
	}
	return ev, nil
}

func (r *evidenceRepo) ListByElement(ctx context.Context, elementID int64) ([]domain.Evidence, error) {
	query := `SELECT ` + evidenceColumns + ` FROM evidences WHERE element_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, elementID)
}

func (r *evidenceRepo) ListAll(ctx context.Context) ([]domain.Evidence, error) {
	query := `SELECT ` + evidenceColumns + ` FROM evidences ORDER BY element_id, created_at, id`
	return r.list(ctx, query)
}

func (r *evidenceRepo) list(ctx context.Context, query string, args ...any) ([]domain.Evidence, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list evidences")
	}
	defer rows.Close()

	evidences := []domain.Evidence{}
	for rows.Next() {
		ev, err := scanEvidence(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan evidence")
		}
		evidences = append(evidences, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate evidences")
	}
	return evidences, nil
}

func (r *evidenceRepo) UpdateMetadata(ctx context.Context, id int64, in domain.EvidenceInput) (*domain.Evidence, error) {
	query := `UPDATE evidences
              SET evidence_number = $1, title = $2, description = $3, updated_at = NOW()
              WHERE id = $4
              RETURNING ` + evidenceColumns
	ev, err := scanEvidence(r.db.QueryRow(ctx, query, in.EvidenceNumber, in.Title, in.Description, id))
	if err != nil {
		return nil, notFound(err, "update evidence")
	}
	return ev, nil
}

func (r *evidenceRepo) SetFile(ctx context.Context, id int64, file domain.EvidenceFile) (*domain.Evidence, error) {
	query := `UPDATE evidences
              SET file_type = $1, file_name = $2, mime_type = $3, file_data = $4, updated_at = NOW()
              WHERE id = $5
              RETURNING ` + evidenceColumns
	ev, err := scanEvidence(r.db.QueryRow(ctx, query, string(file.FileType), file.Name, file.MimeType, file.Data, id))
	if err != nil {
		return nil, notFound(err, "set evidence file")
	}
	return ev, nil
}

func (r *evidenceRepo) ClearFile(ctx context.Context, id int64) (*domain.Evidence, error) {
	query := `UPDATE evidences
              SET file_type = 'none', file_name = NULL, mime_type = NULL, file_data = NULL, updated_at = NOW()
              WHERE id = $1
              RETURNING ` + evidenceColumns
	ev, err := scanEvidence(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "clear evidence file")
	}
	return ev, nil
}

// GetFile returns ErrNotFound both for a missing row and for a row without a file.
func (r *evidenceRepo) GetFile(ctx context.Context, id int64) (*domain.EvidenceFile, error) {
	query := `SELECT file_type, file_name, mime_type, file_data FROM evidences WHERE id = $1 AND file_type <> 'none'`
	var f domain.EvidenceFile
	var fileType string
	if err := r.db.QueryRow(ctx, query, id).Scan(&fileType, &f.Name, &f.MimeType, &f.Data); err != nil {
		return nil, notFound(err, "get evidence file")
	}
	f.FileType = domain.FileType(fileType)
	return &f, nil
}

func (r *evidenceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM evidences WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete evidence")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func notFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return errors.Wrap(err, op)
}
