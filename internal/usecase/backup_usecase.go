package usecase

import (
	"context"
	"fmt"
	"go-portfolio-backend/internal/domain"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const backupParallelism = 4

// ObjectStore receives backup copies.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// BackupReport summarizes one backup run.
type BackupReport struct {
	Evidences int
	Uploaded  int64
	Skipped   int
	Bytes     int64
}

type BackupUsecase struct {
	repo  domain.EvidenceRepository
	store ObjectStore
}

func NewBackupUsecase(repo domain.EvidenceRepository, store ObjectStore) *BackupUsecase {
	return &BackupUsecase{repo: repo, store: store}
}

// BackupKey is the object key of an evidence file.
func BackupKey(ev domain.Evidence) string {
	name := ""
	if ev.FileName != nil {
		name = *ev.FileName
	}
	return fmt.Sprintf("evidences/%d/%d-%s", ev.ElementID, ev.ID, name)
}

// Run copies every stored evidence file to the object store. The first failure cancels
// the remaining uploads.
func (u *BackupUsecase) Run(ctx context.Context) (BackupReport, error) {
	evidences, err := u.repo.ListAll(ctx)
	if err != nil {
		return BackupReport{}, errors.Wrap(err, "list evidences")
	}

	report := BackupReport{Evidences: len(evidences)}
	var uploaded, written atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(backupParallelism)

	for _, ev := range evidences {
		if !ev.HasFile() {
			report.Skipped++
			continue
		}

		ev := ev
		g.Go(func() error {
			file, err := u.repo.GetFile(gctx, ev.ID)
			if errors.Is(err, domain.ErrNotFound) {
				// removed since listing
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "read evidence %d", ev.ID)
			}

			key := BackupKey(ev)
			if err := u.store.Put(gctx, key, file.MimeType, file.Data); err != nil {
				return errors.Wrapf(err, "upload evidence %d", ev.ID)
			}

			uploaded.Add(1)
			written.Add(int64(len(file.Data)))
			log.Debug().Str("key", key).Int("bytes", len(file.Data)).Msg("evidence backed up")
			return nil
		})
	}

	err = g.Wait()
	report.Uploaded = uploaded.Load()
	report.Bytes = written.Load()
	return report, err
}
