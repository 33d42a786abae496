package usecase

import (
	"context"
	"go-portfolio-backend/internal/domain"
)

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) domain.HealthStatus
}

type healthUsecase struct {
	checks map[string]HealthCheck
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks}
}

// Check reports "degraded" when any probe fails; the service still answers.
func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	status := domain.HealthStatus{
		Status:   "ok",
		Services: make(map[string]string, len(u.checks)),
	}

	for name, check := range u.checks {
		if err := check(ctx); err != nil {
			status.Services[name] = "down"
			status.Status = "degraded"
			continue
		}
		status.Services[name] = "up"
	}
	return status
}
