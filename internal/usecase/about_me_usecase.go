package usecase

import (
	"context"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/validation"
	"strings"

	"github.com/go-playground/validator/v10"
)

type aboutMeUsecase struct {
	repo     domain.AboutMeRepository
	validate *validator.Validate
}

func NewAboutMeUsecase(repo domain.AboutMeRepository, validate *validator.Validate) domain.AboutMeUsecase {
	return &aboutMeUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *aboutMeUsecase) GetAboutMe(ctx context.Context) (*domain.AboutMe, error) {
	a, err := u.repo.Get(ctx)
	if err != nil {
		return nil, repoError(err, msgAboutMeNotFound)
	}
	a.Normalize()
	return a, nil
}

// UpdateAboutMe applies the same list cleanup as the editor form before validating.
func (u *aboutMeUsecase) UpdateAboutMe(ctx context.Context, a *domain.AboutMe) (*domain.AboutMe, error) {
	a.Name = strings.TrimSpace(a.Name)
	a.Title = strings.TrimSpace(a.Title)
	a.Email = strings.TrimSpace(a.Email)
	a.Phone = strings.TrimSpace(a.Phone)
	a.ImageURL = strings.TrimSpace(a.ImageURL)
	a.Normalize()

	if err := u.validate.Struct(a); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	updated, err := u.repo.Update(ctx, a)
	if err != nil {
		return nil, repoError(err, msgAboutMeNotFound)
	}
	updated.Normalize()
	return updated, nil
}
