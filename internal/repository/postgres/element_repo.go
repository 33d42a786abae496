package postgres

import (
	"context"
	"go-portfolio-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type elementRepo struct {
	db *pgxpool.Pool
}

func NewElementRepository(db *pgxpool.Pool) domain.ElementRepository {
	return &elementRepo{db: db}
}

func (r *elementRepo) Fetch(ctx context.Context) ([]domain.Element, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, description, content FROM elements ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list elements")
	}
	defer rows.Close()

	elements := []domain.Element{}
	for rows.Next() {
		var e domain.Element
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Content); err != nil {
			return nil, errors.Wrap(err, "scan element")
		}
		elements = append(elements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate elements")
	}
	return elements, nil
}

func (r *elementRepo) GetByID(ctx context.Context, id int64) (*domain.Element, error) {
	var e domain.Element
	err := r.db.QueryRow(ctx, `SELECT id, title, description, content FROM elements WHERE id = $1`, id).
		Scan(&e.ID, &e.Title, &e.Description, &e.Content)
	if err != nil {
		return nil, notFound(err, "get element")
	}
	return &e, nil
}

func (r *elementRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM elements WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "check element")
	}
	return exists, nil
}
