// Package proxy forwards browser API calls to the real API so its address stays server side.
package proxy

import (
	"bytes"
	"encoding/json"
	"go-portfolio-backend/internal/delivery/http/middleware"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// headers the client library sets per hop
var skipHeaders = map[string]bool{
	"Host":              true,
	"Connection":        true,
	"Content-Length":    true,
	"Accept-Encoding":   true,
	"Transfer-Encoding": true,
}

// Forwarder relays every request to Upstream + request URI.
type Forwarder struct {
	Upstream string
	Client   *http.Client
}

func NewForwarder(upstream string, client *http.Client) *Forwarder {
	if client == nil {
		client = http.DefaultClient
	}
	return &Forwarder{Upstream: strings.TrimRight(upstream, "/"), Client: client}
}

// NewRouter serves the forwarder for every path and method.
func NewRouter(f *Forwarder) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Msg("proxy recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	r.Use(middleware.AccessLog())
	r.NoRoute(f.Handle)
	return r
}

func (f *Forwarder) Handle(c *gin.Context) {
	if f.Upstream == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API URL not configured"})
		return
	}

	var body io.Reader
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		body = c.Request.Body
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, f.Upstream+c.Request.URL.RequestURI(), body)
	if err != nil {
		f.fail(c, err)
		return
	}
	for name, values := range c.Request.Header {
		if skipHeaders[http.CanonicalHeaderKey(name)] {
			continue
		}
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if body != nil {
		req.ContentLength = c.Request.ContentLength
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		f.fail(c, err)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		f.fail(c, err)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			f.fail(c, err)
			return
		}
		c.Data(resp.StatusCode, "application/json; charset=utf-8", compact.Bytes())
		return
	}

	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	c.Data(resp.StatusCode, contentType, data)
}

func (f *Forwarder) fail(c *gin.Context, err error) {
	log.Error().Err(err).Str("method", c.Request.Method).Str("uri", c.Request.URL.RequestURI()).Msg("proxy request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Proxy error", "details": err.Error()})
}
