package portfolio

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"go-portfolio-backend/internal/domain"
)

// fakeAPI is an in-memory stand-in for the REST API.
type fakeAPI struct {
	mu        sync.Mutex
	elements  map[int64]domain.Element
	evidences map[int64]domain.Evidence
	files     map[int64][]byte
	about     domain.AboutMe
	nextID    int64
	clock     time.Time

	// fail answers the next request whose "METHOD path" matches with this status.
	fail     map[string]int
	requests []string
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		elements:  map[int64]domain.Element{},
		evidences: map[int64]domain.Evidence{},
		files:     map[int64][]byte{},
		fail:      map[string]int{},
		nextID:    100,
		clock:     time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC),
	}
	for i := int64(1); i <= 11; i++ {
		f.elements[i] = domain.Element{ID: i, Title: "عنصر " + strconv.FormatInt(i, 10)}
	}
	return f
}

func (f *fakeAPI) start(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", srv.Client())
}

func (f *fakeAPI) fileOf(evidenceID int64) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files[evidenceID]
}

// newRecordingServer answers {} to everything after passing the request to record.
func newRecordingServer(t *testing.T, record func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeAPI) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeAPI) seed(ev domain.Evidence) domain.Evidence {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ev.ID = f.nextID
	if ev.FileType == "" {
		ev.FileType = domain.FileTypeNone
	}
	ev.CreatedAt = f.tick()
	ev.UpdatedAt = ev.CreatedAt
	f.evidences[ev.ID] = ev
	return ev
}

func (f *fakeAPI) failNext(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[route] = status
}

func (f *fakeAPI) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) notFound(w http.ResponseWriter) {
	f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "غير موجود"})
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := strings.TrimPrefix(path.Clean(r.URL.Path), "/api/")
	route := r.Method + " " + p
	f.requests = append(f.requests, route)

	if status, ok := f.fail[route]; ok {
		delete(f.fail, route)
		_, _ = io.Copy(io.Discard, r.Body)
		if status == http.StatusBadGateway {
			w.WriteHeader(status)
			return
		}
		f.writeJSON(w, status, map[string]string{"message": "رفض الخادم الطلب"})
		return
	}

	seg := strings.Split(p, "/")
	num := func(i int) int64 {
		if i >= len(seg) {
			return 0
		}
		n, _ := strconv.ParseInt(seg[i], 10, 64)
		return n
	}

	switch {
	case r.Method == http.MethodGet && len(seg) == 2 && seg[0] == "elements":
		el, ok := f.elements[num(1)]
		if !ok {
			f.notFound(w)
			return
		}
		f.writeJSON(w, http.StatusOK, el)

	case r.Method == http.MethodGet && len(seg) == 3 && seg[0] == "elements" && seg[1] == "related":
		var out []domain.Element
		for _, rid := range domain.RelatedIDs(num(2), int64(len(f.elements))) {
			if el, ok := f.elements[rid]; ok {
				out = append(out, el)
			}
		}
		f.writeJSON(w, http.StatusOK, out)

	case len(seg) == 3 && seg[0] == "evidences" && seg[1] == "element":
		elementID := num(2)
		if r.Method == http.MethodGet {
			out := []domain.Evidence{}
			for _, ev := range f.evidences {
				if ev.ElementID == elementID {
					out = append(out, ev)
				}
			}
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
			f.writeJSON(w, http.StatusOK, out)
			return
		}
		var in domain.EvidenceInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			f.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "بيانات غير صالحة"})
			return
		}
		f.nextID++
		now := f.tick()
		ev := domain.Evidence{
			ID: f.nextID, ElementID: elementID, EvidenceNumber: in.EvidenceNumber,
			Title: in.Title, Description: in.Description, FileType: domain.FileTypeNone,
			CreatedAt: now, UpdatedAt: now,
		}
		f.evidences[ev.ID] = ev
		f.writeJSON(w, http.StatusCreated, ev)

	case len(seg) == 2 && seg[0] == "evidences":
		ev, ok := f.evidences[num(1)]
		if !ok {
			f.notFound(w)
			return
		}
		if r.Method == http.MethodDelete {
			delete(f.evidences, ev.ID)
			delete(f.files, ev.ID)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		f.writeJSON(w, http.StatusOK, ev)

	case len(seg) == 3 && seg[0] == "evidences" && seg[2] == "update":
		ev, ok := f.evidences[num(1)]
		if !ok {
			f.notFound(w)
			return
		}
		var in domain.EvidenceInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		ev.EvidenceNumber, ev.Title, ev.Description = in.EvidenceNumber, in.Title, in.Description
		ev.UpdatedAt = f.tick()
		f.evidences[ev.ID] = ev
		f.writeJSON(w, http.StatusOK, ev)

	case len(seg) == 3 && seg[0] == "evidences" && seg[2] == "upload":
		ev, ok := f.evidences[num(1)]
		if !ok {
			f.notFound(w)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			f.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "الملف مطلوب"})
			return
		}
		data, _ := io.ReadAll(file)
		file.Close()

		kind, mimeType := domain.FileTypePDF, "application/pdf"
		switch strings.ToLower(path.Ext(header.Filename)) {
		case ".png":
			kind, mimeType = domain.FileTypeImage, "image/png"
		case ".mp4":
			kind, mimeType = domain.FileTypeVideo, "video/mp4"
		}
		name := header.Filename
		ev.FileType, ev.FileName, ev.MimeType = kind, &name, &mimeType
		ev.UpdatedAt = f.tick()
		f.evidences[ev.ID] = ev
		f.files[ev.ID] = data
		f.writeJSON(w, http.StatusOK, ev)

	case len(seg) == 3 && seg[0] == "evidences" && seg[2] == "file" && r.Method == http.MethodDelete:
		ev, ok := f.evidences[num(1)]
		if !ok || !ev.HasFile() {
			f.notFound(w)
			return
		}
		ev.FileType, ev.FileName, ev.MimeType = domain.FileTypeNone, nil, nil
		ev.UpdatedAt = f.tick()
		f.evidences[ev.ID] = ev
		delete(f.files, ev.ID)
		f.writeJSON(w, http.StatusOK, ev)

	case p == "about-me" && r.Method == http.MethodGet:
		f.writeJSON(w, http.StatusOK, f.about)

	case p == "about-me" && r.Method == http.MethodPut:
		var in domain.AboutMe
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			f.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "بيانات غير صالحة"})
			return
		}
		in.Normalize()
		in.UpdatedAt = f.tick()
		f.about = in
		f.writeJSON(w, http.StatusOK, in)

	default:
		f.notFound(w)
	}
}
