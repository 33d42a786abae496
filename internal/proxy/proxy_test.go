package proxy_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-portfolio-backend/internal/proxy"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(f *proxy.Forwarder, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	proxy.NewRouter(f).ServeHTTP(w, req)
	return w
}

func TestForwardsRequest(t *testing.T) {
	var gotMethod, gotURI, gotBody, gotAuth, gotType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotURI = r.URL.RequestURI()
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{ "id": "7" }`))
	}))
	defer upstream.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/evidences/element/1?x=1", strings.NewReader(`{"title":"t"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer abc")

	w := serve(proxy.NewForwarder(upstream.URL+"/", upstream.Client()), req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"7"}`, w.Body.String())
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/evidences/element/1?x=1", gotURI)
	assert.Equal(t, `{"title":"t"}`, gotBody)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotType)
}

func TestGetSendsNoBody(t *testing.T) {
	var gotLen int64 = -2
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLen = r.ContentLength
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF"))
	}))
	defer upstream.Close()

	w := serve(proxy.NewForwarder(upstream.URL, upstream.Client()), httptest.NewRequest(http.MethodGet, "/api/evidences/1/file", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), gotLen)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String())
}

func TestUpstreamStatusRelayed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"غير موجود"}`))
	}))
	defer upstream.Close()

	w := serve(proxy.NewForwarder(upstream.URL, upstream.Client()), httptest.NewRequest(http.MethodGet, "/api/evidences/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"غير موجود"}`, w.Body.String())
}

func TestMissingUpstream(t *testing.T) {
	w := serve(proxy.NewForwarder("", nil), httptest.NewRequest(http.MethodGet, "/api/elements", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"API URL not configured"}`, w.Body.String())
}

func TestTransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	w := serve(proxy.NewForwarder(url, nil), httptest.NewRequest(http.MethodGet, "/api/elements", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Proxy error"`)
	assert.Contains(t, w.Body.String(), `"details"`)
}

func TestInvalidJSONFromUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{broken`))
	}))
	defer upstream.Close()

	w := serve(proxy.NewForwarder(upstream.URL, upstream.Client()), httptest.NewRequest(http.MethodGet, "/api/elements", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Proxy error")
}
