package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/security/antivirus"
	"go-portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Mock Repositories
type MockElementRepo struct {
	mock.Mock
}

func (m *MockElementRepo) Fetch(ctx context.Context) ([]domain.Element, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Element), args.Error(1)
}

func (m *MockElementRepo) GetByID(ctx context.Context, id int64) (*domain.Element, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Element), args.Error(1)
}

func (m *MockElementRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockEvidenceRepo struct {
	mock.Mock
}

func (m *MockEvidenceRepo) Create(ctx context.Context, elementID int64, in domain.EvidenceInput, file *domain.EvidenceFile) (*domain.Evidence, error) {
	args := m.Called(ctx, elementID, in, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evidence), args.Error(1)
}

func (m *MockEvidenceRepo) GetByID(ctx context.Context, id int64) (*domain.Evidence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evidence), args.Error(1)
}

func (m *MockEvidenceRepo) ListByElement(ctx context.Context, elementID int64) ([]domain.Evidence, error) {
	args := m.Called(ctx, elementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Evidence), args.Error(1)
}

func (m *MockEvidenceRepo) ListAll(ctx context.Context) ([]domain.Evidence, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Evidence), args.Error(1)
}

func (m *MockEvidenceRepo) UpdateMetadata(ctx context.Context, id int64, in domain.EvidenceInput) (*domain.Evidence, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evidence), args.Error(1)
}

func (m *MockEvidenceRepo) SetFile(ctx context.Context, id int64, file domain.EvidenceFile) (*domain.Evidence, error) {
	args := m.Called(ctx, id, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evidence), args.Error(1)
}

func (m *MockEvidenceRepo) ClearFile(ctx context.Context, id int64) (*domain.Evidence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evidence), args.Error(1)
}

func (m *MockEvidenceRepo) GetFile(ctx context.Context, id int64) (*domain.EvidenceFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvidenceFile), args.Error(1)
}

func (m *MockEvidenceRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockAboutMeRepo struct {
	mock.Mock
}

func (m *MockAboutMeRepo) Get(ctx context.Context) (*domain.AboutMe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AboutMe), args.Error(1)
}

func (m *MockAboutMeRepo) Update(ctx context.Context, a *domain.AboutMe) (*domain.AboutMe, error) {
	args := m.Called(ctx, a)
	if fn, ok := args.Get(0).(func(context.Context, *domain.AboutMe) *domain.AboutMe); ok {
		return fn(ctx, a), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AboutMe), args.Error(1)
}

type stubScanner struct {
	result antivirus.ScanResult
}

func (s stubScanner) Scan(context.Context, string, []byte) antivirus.ScanResult { return s.result }
func (s stubScanner) Name() string                                            { return "stub" }
func (s stubScanner) Available(context.Context) bool                          { return true }

var (
	pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
)

func strPtr(s string) *string { return &s }

func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestRelatedElements(t *testing.T) {
	ctx := context.Background()
	all := make([]domain.Element, 0, 11)
	for i := int64(1); i <= 11; i++ {
		all = append(all, domain.Element{ID: i})
	}

	t.Run("first element wraps to last", func(t *testing.T) {
		repo := new(MockElementRepo)
		repo.On("GetByID", ctx, int64(1)).Return(&all[0], nil)
		repo.On("Fetch", ctx).Return(all, nil)

		got, err := usecase.NewElementUsecase(repo).RelatedElements(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []int64{11, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("last element skips missing ids", func(t *testing.T) {
		repo := new(MockElementRepo)
		repo.On("GetByID", ctx, int64(11)).Return(&all[10], nil)
		repo.On("Fetch", ctx).Return(all, nil)

		got, err := usecase.NewElementUsecase(repo).RelatedElements(ctx, 11)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(10), got[0].ID)
	})

	t.Run("unknown element is 404", func(t *testing.T) {
		repo := new(MockElementRepo)
		repo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := usecase.NewElementUsecase(repo).RelatedElements(ctx, 99)
		assertAppError(t, err, http.StatusNotFound)
	})
}

func TestCreateEvidence(t *testing.T) {
	ctx := context.Background()
	in := domain.EvidenceInput{Title: "t", Description: "d", EvidenceNumber: "1.1"}

	t.Run("metadata only yields file type none", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		elements := new(MockElementRepo)
		elements.On("Exists", ctx, int64(1)).Return(true, nil)
		repo.On("Create", ctx, int64(1), in, (*domain.EvidenceFile)(nil)).
			Return(&domain.Evidence{ID: 5, ElementID: 1, Title: "t", EvidenceNumber: "1.1", FileType: domain.FileTypeNone}, nil)

		uc := usecase.NewEvidenceUsecase(repo, elements, nil, validation.New(), 1<<20)
		ev, err := uc.CreateEvidence(ctx, 1, in, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), ev.ElementID)
		assert.Equal(t, domain.FileTypeNone, ev.FileType)
		repo.AssertExpectations(t)
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		uc := usecase.NewEvidenceUsecase(new(MockEvidenceRepo), new(MockElementRepo), nil, validation.New(), 1<<20)
		_, err := uc.CreateEvidence(ctx, 1, domain.EvidenceInput{Title: "   "}, nil)
		assertAppError(t, err, http.StatusBadRequest)
		assert.Contains(t, err.Error(), "العنوان")
	})

	t.Run("unknown element is 404", func(t *testing.T) {
		elements := new(MockElementRepo)
		elements.On("Exists", ctx, int64(42)).Return(false, nil)
		uc := usecase.NewEvidenceUsecase(new(MockEvidenceRepo), elements, nil, validation.New(), 1<<20)

		_, err := uc.CreateEvidence(ctx, 42, in, nil)
		assertAppError(t, err, http.StatusNotFound)
	})

	t.Run("with file classifies content", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		elements := new(MockElementRepo)
		elements.On("Exists", ctx, int64(1)).Return(true, nil)
		repo.On("Create", ctx, int64(1), in, mock.MatchedBy(func(f *domain.EvidenceFile) bool {
			return f != nil && f.FileType == domain.FileTypePDF && f.MimeType == "application/pdf" && f.Name == "plan.pdf"
		})).Return(&domain.Evidence{ID: 6, ElementID: 1, FileType: domain.FileTypePDF}, nil)

		uc := usecase.NewEvidenceUsecase(repo, elements, nil, validation.New(), 1<<20)
		ev, err := uc.CreateEvidence(ctx, 1, in, &domain.Upload{Filename: "plan.pdf", Size: int64(len(pdfBytes)), Reader: bytes.NewReader(pdfBytes)})
		require.NoError(t, err)
		assert.Equal(t, domain.FileTypePDF, ev.FileType)
	})
}

func TestUploadFile(t *testing.T) {
	ctx := context.Background()
	existing := &domain.Evidence{ID: 3, ElementID: 1, Title: "t", FileType: domain.FileTypeNone}

	t.Run("png becomes image with sniffed mime", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		repo.On("SetFile", ctx, int64(3), domain.EvidenceFile{
			Name: "photo.png", MimeType: "image/png", FileType: domain.FileTypeImage, Data: pngBytes,
		}).Return(&domain.Evidence{ID: 3, FileType: domain.FileTypeImage, MimeType: strPtr("image/png")}, nil)

		uc := usecase.NewEvidenceUsecase(repo, new(MockElementRepo), nil, validation.New(), 1<<20)
		ev, err := uc.UploadFile(ctx, 3, domain.Upload{Filename: `C:\fakepath\photo.png`, Reader: bytes.NewReader(pngBytes)})
		require.NoError(t, err)
		assert.Equal(t, domain.FileTypeImage, ev.FileType)
		repo.AssertExpectations(t)
	})

	t.Run("declared size over limit", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		uc := usecase.NewEvidenceUsecase(repo, new(MockElementRepo), nil, validation.New(), 8)

		_, err := uc.UploadFile(ctx, 3, domain.Upload{Filename: "a.png", Size: 100, Reader: bytes.NewReader(pngBytes)})
		assertAppError(t, err, http.StatusRequestEntityTooLarge)
	})

	t.Run("stream longer than limit", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		uc := usecase.NewEvidenceUsecase(repo, new(MockElementRepo), nil, validation.New(), 8)

		_, err := uc.UploadFile(ctx, 3, domain.Upload{Filename: "a.png", Reader: bytes.NewReader(pngBytes)})
		assertAppError(t, err, http.StatusRequestEntityTooLarge)
	})

	t.Run("disguised file is unsupported", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		uc := usecase.NewEvidenceUsecase(repo, new(MockElementRepo), nil, validation.New(), 1<<20)

		_, err := uc.UploadFile(ctx, 3, domain.Upload{Filename: "a.pdf", Reader: strings.NewReader("#!/bin/sh\necho hi\n")})
		assertAppError(t, err, http.StatusUnsupportedMediaType)
		repo.AssertNotCalled(t, "SetFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("infected file is rejected", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		scanner := stubScanner{result: antivirus.ScanResult{Infected: true, ThreatName: "Eicar", ScannerName: "stub"}}
		uc := usecase.NewEvidenceUsecase(repo, new(MockElementRepo), scanner, validation.New(), 1<<20)

		_, err := uc.UploadFile(ctx, 3, domain.Upload{Filename: "a.pdf", Reader: bytes.NewReader(pdfBytes)})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("scanner failure is 503", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
		scanner := stubScanner{result: antivirus.ScanResult{Infected: true, Error: antivirus.ErrNoScanner}}
		uc := usecase.NewEvidenceUsecase(repo, new(MockElementRepo), scanner, validation.New(), 1<<20)

		_, err := uc.UploadFile(ctx, 3, domain.Upload{Filename: "a.pdf", Reader: bytes.NewReader(pdfBytes)})
		assertAppError(t, err, http.StatusServiceUnavailable)
	})

	t.Run("unknown evidence is 404", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		repo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound)
		uc := usecase.NewEvidenceUsecase(repo, new(MockElementRepo), nil, validation.New(), 1<<20)

		_, err := uc.UploadFile(ctx, 9, domain.Upload{Filename: "a.pdf", Reader: bytes.NewReader(pdfBytes)})
		assertAppError(t, err, http.StatusNotFound)
	})
}

func TestDeleteFileKeepsMetadata(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEvidenceRepo)
	repo.On("ClearFile", ctx, int64(3)).Return(&domain.Evidence{ID: 3, Title: "t", EvidenceNumber: "1.2", FileType: domain.FileTypeNone}, nil)

	uc := usecase.NewEvidenceUsecase(repo, new(MockElementRepo), nil, validation.New(), 0)
	ev, err := uc.DeleteFile(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.FileTypeNone, ev.FileType)
	assert.Equal(t, "1.2", ev.EvidenceNumber)
}

func TestRepositoryFailuresAreInternal(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEvidenceRepo)
	repo.On("Delete", ctx, int64(1)).Return(errors.New("connection reset"))
	repo.On("Delete", ctx, int64(2)).Return(domain.ErrNotFound)

	uc := usecase.NewEvidenceUsecase(repo, new(MockElementRepo), nil, validation.New(), 0)
	assertAppError(t, uc.DeleteEvidence(ctx, 1), http.StatusInternalServerError)
	assertAppError(t, uc.DeleteEvidence(ctx, 2), http.StatusNotFound)
}

func TestExportWritesRegister(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEvidenceRepo)
	elements := new(MockElementRepo)
	elements.On("Fetch", ctx).Return([]domain.Element{{ID: 1, Title: "أداء الواجبات الوظيفية"}}, nil)
	repo.On("ListAll", ctx).Return([]domain.Evidence{
		{ID: 1, ElementID: 1, EvidenceNumber: "1.1", Title: "خطة", FileType: domain.FileTypePDF, FileName: strPtr("plan.pdf"), CreatedAt: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, ElementID: 1, EvidenceNumber: "1.2", Title: "صورة", FileType: domain.FileTypeNone},
	}, nil)

	var buf bytes.Buffer
	uc := usecase.NewEvidenceUsecase(repo, elements, nil, validation.New(), 0)
	require.NoError(t, uc.Export(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("الشواهد")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "أداء الواجبات الوظيفية", rows[1][0])
	assert.Equal(t, "plan.pdf", rows[1][5])
	assert.Equal(t, "2024-09-01", rows[1][6])
	assert.Equal(t, "بدون ملف", rows[2][4])
}

func TestUpdateAboutMe(t *testing.T) {
	ctx := context.Background()

	t.Run("blank items are dropped before saving", func(t *testing.T) {
		repo := new(MockAboutMeRepo)
		saved := &domain.AboutMe{
			Name:      "نوال",
			Title:     "معلمة",
			Education: domain.Items[domain.Education]{{Degree: "MSc", University: "X", Year: "2020"}},
		}
		repo.On("Update", ctx, mock.AnythingOfType("*domain.AboutMe")).
			Return(saved, nil).
			Run(func(args mock.Arguments) {
				a := args.Get(1).(*domain.AboutMe)
				require.Len(t, a.Education, 1)
				assert.Equal(t, "MSc", a.Education[0].Degree)
			})

		uc := usecase.NewAboutMeUsecase(repo, validation.New())
		got, err := uc.UpdateAboutMe(ctx, &domain.AboutMe{
			Name:  "نوال",
			Title: "معلمة",
			Education: domain.Items[domain.Education]{
				{Degree: "MSc", University: "X", Year: "2020"},
				{},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.Education{Degree: "MSc", University: "X", Year: "2020"}, got.Education[0])
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		repo := new(MockAboutMeRepo)
		uc := usecase.NewAboutMeUsecase(repo, validation.New())

		_, err := uc.UpdateAboutMe(ctx, &domain.AboutMe{Name: "n", Title: "t", Email: "not-an-email"})
		assertAppError(t, err, http.StatusBadRequest)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("local phone and relative image are accepted", func(t *testing.T) {
		repo := new(MockAboutMeRepo)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.AboutMe")).
			Return(func(_ context.Context, a *domain.AboutMe) *domain.AboutMe { return a }, nil)

		uc := usecase.NewAboutMeUsecase(repo, validation.New())
		for _, in := range []domain.AboutMe{
			{Name: "n", Title: "t", Phone: "050-123-4567", ImageURL: "/images/teacher.jpg"},
			{Name: "n", Title: "t", Phone: "٠٥٠١٢٣٤٥٦٧"},
		} {
			got, err := uc.UpdateAboutMe(ctx, &in)
			require.NoError(t, err)
			assert.Equal(t, in.Phone, got.Phone)
			assert.Equal(t, in.ImageURL, got.ImageURL)
		}
	})

	t.Run("name is required", func(t *testing.T) {
		uc := usecase.NewAboutMeUsecase(new(MockAboutMeRepo), validation.New())
		_, err := uc.UpdateAboutMe(ctx, &domain.AboutMe{Title: "t"})
		assertAppError(t, err, http.StatusBadRequest)
	})
}

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("down") },
	})

	status := uc.Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "up", status.Services["database"])
	assert.Equal(t, "down", status.Services["redis"])
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	fail    bool
}

func (s *memoryStore) Put(_ context.Context, key, _ string, data []byte) error {
	if s.fail {
		return errors.New("bucket unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func TestBackupRun(t *testing.T) {
	ctx := context.Background()
	evidences := []domain.Evidence{
		{ID: 1, ElementID: 1, FileType: domain.FileTypePDF, FileName: strPtr("plan.pdf")},
		{ID: 2, ElementID: 1, FileType: domain.FileTypeNone},
		{ID: 3, ElementID: 2, FileType: domain.FileTypeImage, FileName: strPtr("photo.png")},
	}

	t.Run("copies every file", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		repo.On("ListAll", ctx).Return(evidences, nil)
		repo.On("GetFile", mock.Anything, int64(1)).Return(&domain.EvidenceFile{MimeType: "application/pdf", Data: pdfBytes}, nil)
		repo.On("GetFile", mock.Anything, int64(3)).Return(&domain.EvidenceFile{MimeType: "image/png", Data: pngBytes}, nil)

		store := &memoryStore{objects: map[string][]byte{}}
		report, err := usecase.NewBackupUsecase(repo, store).Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(2), report.Uploaded)
		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, int64(len(pdfBytes)+len(pngBytes)), report.Bytes)
		assert.Equal(t, pngBytes, store.objects["evidences/2/3-photo.png"])
		assert.Contains(t, store.objects, "evidences/1/1-plan.pdf")
	})

	t.Run("store failure is returned", func(t *testing.T) {
		repo := new(MockEvidenceRepo)
		repo.On("ListAll", ctx).Return(evidences[:1], nil)
		repo.On("GetFile", mock.Anything, int64(1)).Return(&domain.EvidenceFile{Data: pdfBytes}, nil)

		_, err := usecase.NewBackupUsecase(repo, &memoryStore{fail: true}).Run(ctx)
		assert.Error(t, err)
	})
}
