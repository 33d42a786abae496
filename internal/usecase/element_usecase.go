package usecase

import (
	"context"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"

	"github.com/pkg/errors"
)

type elementUsecase struct {
	repo domain.ElementRepository
}

func NewElementUsecase(repo domain.ElementRepository) domain.ElementUsecase {
	return &elementUsecase{repo: repo}
}

func (u *elementUsecase) ListElements(ctx context.Context) ([]domain.Element, error) {
	elements, err := u.repo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return elements, nil
}

func (u *elementUsecase) GetElement(ctx context.Context, id int64) (*domain.Element, error) {
	element, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, msgElementNotFound)
	}
	return element, nil
}

// RelatedElements returns the neighbours shown under an element page.
func (u *elementUsecase) RelatedElements(ctx context.Context, id int64) ([]domain.Element, error) {
	if _, err := u.GetElement(ctx, id); err != nil {
		return nil, err
	}

	all, err := u.repo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var maxID int64
	for _, e := range all {
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	return domain.PickElements(all, domain.RelatedIDs(id, maxID)), nil
}

// repoError turns a repository failure into the error a handler renders.
func repoError(err error, notFoundMsg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(notFoundMsg)
	}
	return apperror.Internal(err)
}
