package postgres

import (
	"context"
	"encoding/json"
	"go-portfolio-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const aboutMeColumns = `name, title, bio, image_url, email, phone, school, education, experience, skills, achievements, updated_at`

type aboutMeRepo struct {
	db *pgxpool.Pool
}

func NewAboutMeRepository(db *pgxpool.Pool) domain.AboutMeRepository {
	return &aboutMeRepo{db: db}
}

func (r *aboutMeRepo) Get(ctx context.Context) (*domain.AboutMe, error) {
	return r.scan(r.db.QueryRow(ctx, `SELECT `+aboutMeColumns+` FROM about_me WHERE id = 1`), "get about me")
}

// Update overwrites the singleton row. The lists are bound as text and cast, since the
// pool runs in simple protocol mode.
func (r *aboutMeRepo) Update(ctx context.Context, a *domain.AboutMe) (*domain.AboutMe, error) {
	lists := make([]string, 0, 4)
	for _, v := range []any{a.Education, a.Experience, a.Skills, a.Achievements} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "encode about me list")
		}
		lists = append(lists, string(b))
	}

	query := `INSERT INTO about_me (id, name, title, bio, image_url, email, phone, school, education, experience, skills, achievements, updated_at)
              VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10::jsonb, $11::jsonb, NOW())
              ON CONFLICT (id) DO UPDATE SET
                  name = EXCLUDED.name, title = EXCLUDED.title, bio = EXCLUDED.bio,
                  image_url = EXCLUDED.image_url, email = EXCLUDED.email, phone = EXCLUDED.phone,
                  school = EXCLUDED.school, education = EXCLUDED.education, experience = EXCLUDED.experience,
                  skills = EXCLUDED.skills, achievements = EXCLUDED.achievements, updated_at = NOW()
              RETURNING ` + aboutMeColumns
	return r.scan(r.db.QueryRow(ctx, query,
		a.Name, a.Title, a.Bio, a.ImageURL, a.Email, a.Phone, a.School,
		lists[0], lists[1], lists[2], lists[3],
	), "update about me")
}

func (r *aboutMeRepo) scan(row rowScanner, op string) (*domain.AboutMe, error) {
	var a domain.AboutMe
	var education, experience, skills, achievements []byte
	err := row.Scan(
		&a.Name, &a.Title, &a.Bio, &a.ImageURL, &a.Email, &a.Phone, &a.School,
		&education, &experience, &skills, &achievements, &a.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err, op)
	}

	// Items decode leniently and never fail on shape.
	_ = json.Unmarshal(education, &a.Education)
	_ = json.Unmarshal(experience, &a.Experience)
	_ = json.Unmarshal(skills, &a.Skills)
	_ = json.Unmarshal(achievements, &a.Achievements)
	return &a, nil
}
