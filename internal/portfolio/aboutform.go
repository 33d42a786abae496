package portfolio

import (
	"context"
	"encoding/json"
	"go-portfolio-backend/internal/domain"
	"slices"
	"sync"
)

// Basics are the scalar fields of the profile.
type Basics struct {
	Name     string
	Title    string
	Bio      string
	ImageURL string
	Email    string
	Phone    string
	School   string
}

// AboutForm edits a private draft of the profile. List edits replace whole slices
// so a profile handed to Open is never written through.
type AboutForm struct {
	client  *Client
	alerter Alerter
	lock    ScrollLock

	mu    sync.Mutex
	open  bool
	draft domain.AboutMe
	saved *domain.AboutMe
}

func NewAboutForm(client *Client, alerter Alerter, lock ScrollLock) *AboutForm {
	if alerter == nil {
		alerter = silent{}
	}
	if lock == nil {
		lock = &PageScrollLock{}
	}
	return &AboutForm{client: client, alerter: alerter, lock: lock}
}

// Open starts editing a copy of current and locks page scrolling.
func (f *AboutForm) Open(current domain.AboutMe) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft = cloneAboutMe(current)
	if !f.open {
		f.open = true
		f.lock.Lock()
	}
}

// Close releases the scroll lock. Calling it again is a no-op.
func (f *AboutForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open {
		return
	}
	f.open = false
	f.lock.Unlock()
}

func (f *AboutForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *AboutForm) Draft() domain.AboutMe {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneAboutMe(f.draft)
}

// Saved is the last profile returned by the server.
func (f *AboutForm) Saved() (domain.AboutMe, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		return domain.AboutMe{}, false
	}
	return cloneAboutMe(*f.saved), true
}

func (f *AboutForm) SetBasics(b Basics) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Name = b.Name
	f.draft.Title = b.Title
	f.draft.Bio = b.Bio
	f.draft.ImageURL = b.ImageURL
	f.draft.Email = b.Email
	f.draft.Phone = b.Phone
	f.draft.School = b.School
}

func (f *AboutForm) AddEducation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Education = appendItem(f.draft.Education, domain.Education{})
}

func (f *AboutForm) UpdateEducation(i int, v domain.Education) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := replaceAt(f.draft.Education, i, v)
	f.draft.Education = out
	return err
}

func (f *AboutForm) RemoveEducation(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := removeAt(f.draft.Education, i)
	f.draft.Education = out
	return err
}

func (f *AboutForm) AddExperience() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Experience = appendItem(f.draft.Experience, domain.Experience{Responsibilities: []string{}})
}

func (f *AboutForm) UpdateExperience(i int, v domain.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.Responsibilities = slices.Clone(v.Responsibilities)
	out, err := replaceAt(f.draft.Experience, i, v)
	f.draft.Experience = out
	return err
}

func (f *AboutForm) RemoveExperience(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := removeAt(f.draft.Experience, i)
	f.draft.Experience = out
	return err
}

// editResponsibilities rewrites the responsibilities of experience i through fn.
func (f *AboutForm) editResponsibilities(i int, fn func([]string) ([]string, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.draft.Experience) {
		return ErrIndexOutOfRange
	}
	exp := f.draft.Experience[i]
	list, err := fn(exp.Responsibilities)
	if err != nil {
		return err
	}
	exp.Responsibilities = list
	f.draft.Experience, _ = replaceAt(f.draft.Experience, i, exp)
	return nil
}

func (f *AboutForm) AddResponsibility(exp int) error {
	return f.editResponsibilities(exp, func(s []string) ([]string, error) {
		return appendItem(s, ""), nil
	})
}

func (f *AboutForm) UpdateResponsibility(exp, i int, v string) error {
	return f.editResponsibilities(exp, func(s []string) ([]string, error) {
		return replaceAt(s, i, v)
	})
}

func (f *AboutForm) RemoveResponsibility(exp, i int) error {
	return f.editResponsibilities(exp, func(s []string) ([]string, error) {
		return removeAt(s, i)
	})
}

func (f *AboutForm) AddSkill() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Skills = appendItem(f.draft.Skills, domain.Skill{})
}

func (f *AboutForm) UpdateSkill(i int, v domain.Skill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := replaceAt(f.draft.Skills, i, v)
	f.draft.Skills = out
	return err
}

func (f *AboutForm) RemoveSkill(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := removeAt(f.draft.Skills, i)
	f.draft.Skills = out
	return err
}

func (f *AboutForm) AddAchievement() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Achievements = appendItem(f.draft.Achievements, domain.Achievement{})
}

func (f *AboutForm) UpdateAchievement(i int, v domain.Achievement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := replaceAt(f.draft.Achievements, i, v)
	f.draft.Achievements = out
	return err
}

func (f *AboutForm) RemoveAchievement(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := removeAt(f.draft.Achievements, i)
	f.draft.Achievements = out
	return err
}

// Submit cleans the draft, sends it in one PUT, adopts the server's profile and closes.
// On failure the form stays open with the draft untouched.
func (f *AboutForm) Submit(ctx context.Context) (*domain.AboutMe, error) {
	f.mu.Lock()
	payload := cloneAboutMe(f.draft)
	f.mu.Unlock()

	payload.Normalize()
	body, err := json.Marshal(payload)
	if err != nil {
		f.alerter.Alert(msgSerializeFailed)
		return nil, err
	}

	saved, err := f.client.UpdateAboutMe(ctx, body)
	if err != nil {
		alert(f.alerter, msgAboutSaveFailed, err)
		return nil, err
	}

	f.mu.Lock()
	f.saved = saved
	f.draft = cloneAboutMe(*saved)
	f.mu.Unlock()

	f.Close()
	return saved, nil
}

func cloneAboutMe(a domain.AboutMe) domain.AboutMe {
	a.Education = slices.Clone(a.Education)
	a.Skills = slices.Clone(a.Skills)
	a.Achievements = slices.Clone(a.Achievements)

	exp := slices.Clone(a.Experience)
	for i := range exp {
		exp[i].Responsibilities = slices.Clone(exp[i].Responsibilities)
	}
	a.Experience = exp
	return a
}
