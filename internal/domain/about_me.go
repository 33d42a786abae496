package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"
)

type Education struct {
	Degree      string `json:"degree"`
	University  string `json:"university"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

type Experience struct {
	Title            string   `json:"title"`
	School           string   `json:"school"`
	Period           string   `json:"period"`
	Responsibilities []string `json:"responsibilities"`
}

type Skill struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// UnmarshalJSON also accepts a bare string, which older profiles stored as the skill name.
func (s *Skill) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*s = Skill{Name: name}
		return nil
	}

	type plain Skill
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = Skill(p)
	return nil
}

type Achievement struct {
	Title  string `json:"title"`
	Year   string `json:"year"`
	Issuer string `json:"issuer"`
}

// Items is a profile list that decodes leniently: anything other than a JSON array
// becomes empty and entries that do not fit T are skipped. It always encodes as an array.
type Items[T any] []T

func (it *Items[T]) UnmarshalJSON(b []byte) error {
	*it = Items[T]{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}

	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		*it = append(*it, v)
	}
	return nil
}

func (it Items[T]) MarshalJSON() ([]byte, error) {
	if it == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(it))
}

// AboutMe is the singleton profile of the portfolio owner.
type AboutMe struct {
	Name         string             `json:"name" validate:"required,max=255"`
	Title        string             `json:"title" validate:"required,max=255"`
	Bio          string             `json:"bio" validate:"max=5000"`
	ImageURL     string             `json:"image_url" validate:"omitempty,http_url"`
	Email        string             `json:"email" validate:"omitempty,email"`
	Phone        string             `json:"phone" validate:"omitempty,valid_phone"`
	School       string             `json:"school" validate:"max=255"`
	Education    Items[Education]   `json:"education"`
	Experience   Items[Experience]  `json:"experience"`
	Skills       Items[Skill]       `json:"skills"`
	Achievements Items[Achievement] `json:"achievements"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Normalize drops list entries whose fields are all blank and blank responsibilities.
// Nil lists become empty.
func (a *AboutMe) Normalize() {
	a.Education = compact(a.Education, func(e Education) bool {
		return blank(e.Degree, e.University, e.Year, e.Description)
	})

	exp := make(Items[Experience], 0, len(a.Experience))
	for _, e := range a.Experience {
		e.Responsibilities = compact(e.Responsibilities, func(r string) bool { return blank(r) })
		if blank(e.Title, e.School, e.Period) && len(e.Responsibilities) == 0 {
			continue
		}
		exp = append(exp, e)
	}
	a.Experience = exp

	a.Skills = compact(a.Skills, func(s Skill) bool {
		return blank(s.Name, s.Institution, s.Year, s.Description)
	})
	a.Achievements = compact(a.Achievements, func(v Achievement) bool {
		return blank(v.Title, v.Year, v.Issuer)
	})
}

func compact[S ~[]T, T any](items S, isBlank func(T) bool) S {
	out := make(S, 0, len(items))
	for _, it := range items {
		if !isBlank(it) {
			out = append(out, it)
		}
	}
	return out
}

func blank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

type AboutMeRepository interface {
	Get(ctx context.Context) (*AboutMe, error)
	Update(ctx context.Context, a *AboutMe) (*AboutMe, error)
}

type AboutMeUsecase interface {
	GetAboutMe(ctx context.Context) (*AboutMe, error)
	UpdateAboutMe(ctx context.Context, a *AboutMe) (*AboutMe, error)
}
