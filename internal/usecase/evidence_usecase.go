package usecase

import (
	"context"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/security/antivirus"
	"go-portfolio-backend/pkg/validation"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const msgUnsupportedFile = "نوع الملف غير مدعوم، الأنواع المسموحة: PDF والصور والفيديو"

type evidenceUsecase struct {
	repo           domain.EvidenceRepository
	elements       domain.ElementRepository
	scanner        antivirus.Scanner
	validate       *validator.Validate
	maxUploadBytes int64
}

func NewEvidenceUsecase(
	repo domain.EvidenceRepository,
	elements domain.ElementRepository,
	scanner antivirus.Scanner,
	validate *validator.Validate,
	maxUploadBytes int64,
) domain.EvidenceUsecase {
	if scanner == nil {
		scanner = antivirus.NewNoOpScanner()
	}
	return &evidenceUsecase{
		repo:           repo,
		elements:       elements,
		scanner:        scanner,
		validate:       validate,
		maxUploadBytes: maxUploadBytes,
	}
}

func (u *evidenceUsecase) ListByElement(ctx context.Context, elementID int64) ([]domain.Evidence, error) {
	evidences, err := u.repo.ListByElement(ctx, elementID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return evidences, nil
}

func (u *evidenceUsecase) GetEvidence(ctx context.Context, id int64) (*domain.Evidence, error) {
	ev, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, msgEvidenceNotFound)
	}
	return ev, nil
}

// CreateEvidence stores metadata for an existing element, with an optional file.
// evidence_number is taken as given; duplicates are allowed.
func (u *evidenceUsecase) CreateEvidence(ctx context.Context, elementID int64, in domain.EvidenceInput, upload *domain.Upload) (*domain.Evidence, error) {
	in = trimInput(in)
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	exists, err := u.elements.Exists(ctx, elementID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, apperror.NotFound(msgElementNotFound)
	}

	var file *domain.EvidenceFile
	if upload != nil {
		if file, err = u.readUpload(ctx, *upload); err != nil {
			return nil, err
		}
	}

	ev, err := u.repo.Create(ctx, elementID, in, file)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	log.Info().Int64("evidence_id", ev.ID).Int64("element_id", elementID).Str("file_type", string(ev.FileType)).Msg("evidence created")
	return ev, nil
}

func (u *evidenceUsecase) UpdateEvidence(ctx context.Context, id int64, in domain.EvidenceInput) (*domain.Evidence, error) {
	in = trimInput(in)
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	ev, err := u.repo.UpdateMetadata(ctx, id, in)
	if err != nil {
		return nil, repoError(err, msgEvidenceNotFound)
	}
	return ev, nil
}

func (u *evidenceUsecase) DeleteEvidence(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return repoError(err, msgEvidenceNotFound)
	}
	log.Info().Int64("evidence_id", id).Msg("evidence deleted")
	return nil
}

// UploadFile replaces the evidence binary. The file kind is derived from its content.
func (u *evidenceUsecase) UploadFile(ctx context.Context, id int64, upload domain.Upload) (*domain.Evidence, error) {
	if _, err := u.repo.GetByID(ctx, id); err != nil {
		return nil, repoError(err, msgEvidenceNotFound)
	}

	file, err := u.readUpload(ctx, upload)
	if err != nil {
		return nil, err
	}

	ev, err := u.repo.SetFile(ctx, id, *file)
	if err != nil {
		return nil, repoError(err, msgEvidenceNotFound)
	}

	log.Info().Int64("evidence_id", id).Str("file_type", string(ev.FileType)).Int("bytes", len(file.Data)).Msg("evidence file uploaded")
	return ev, nil
}

// DeleteFile removes the binary and keeps the metadata row.
func (u *evidenceUsecase) DeleteFile(ctx context.Context, id int64) (*domain.Evidence, error) {
	ev, err := u.repo.ClearFile(ctx, id)
	if err != nil {
		return nil, repoError(err, msgEvidenceNotFound)
	}
	return ev, nil
}

func (u *evidenceUsecase) GetFile(ctx context.Context, id int64) (*domain.EvidenceFile, error) {
	f, err := u.repo.GetFile(ctx, id)
	if err != nil {
		return nil, repoError(err, msgFileNotFound)
	}
	return f, nil
}

func (u *evidenceUsecase) readUpload(ctx context.Context, upload domain.Upload) (*domain.EvidenceFile, error) {
	if u.maxUploadBytes > 0 && upload.Size > u.maxUploadBytes {
		return nil, apperror.PayloadTooLarge(msgFileTooLarge)
	}

	reader := upload.Reader
	if u.maxUploadBytes > 0 {
		reader = io.LimitReader(reader, u.maxUploadBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperror.BadRequest(msgFileEmpty)
	}
	if u.maxUploadBytes > 0 && int64(len(data)) > u.maxUploadBytes {
		return nil, apperror.PayloadTooLarge(msgFileTooLarge)
	}
	if len(data) == 0 {
		return nil, apperror.BadRequest(msgFileEmpty)
	}

	name := filepath.Base(strings.ReplaceAll(upload.Filename, "\\", "/"))
	result := security.ValidateFile(name, data)
	if !result.Valid {
		log.Warn().Str("file_name", name).Str("mime", result.DetectedMIME).Str("reason", result.Error).Msg("upload rejected by validator")
		return nil, apperror.UnsupportedMediaType(msgUnsupportedFile)
	}

	scan := u.scanner.Scan(ctx, name, data)
	if scan.Error != nil {
		log.Error().Err(scan.Error).Str("scanner", scan.ScannerName).Msg("antivirus scan failed")
		return nil, apperror.New(http.StatusServiceUnavailable, msgScanUnavailable, scan.Error)
	}
	if scan.Infected {
		log.Warn().Str("file_name", name).Str("threat", scan.ThreatName).Str("scanner", scan.ScannerName).Msg("upload rejected by antivirus")
		return nil, apperror.BadRequest(msgFileRejected)
	}

	return &domain.EvidenceFile{
		Name:     name,
		MimeType: result.DetectedMIME,
		FileType: domain.FileType(result.Kind),
		Data:     data,
	}, nil
}

func trimInput(in domain.EvidenceInput) domain.EvidenceInput {
	return domain.EvidenceInput{
		EvidenceNumber: strings.TrimSpace(in.EvidenceNumber),
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
	}
}
