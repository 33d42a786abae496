// Package portfolio is the view-state layer of the portfolio front end: the evidence
// gallery, the evidence editor modal, the about-me form and preview resolution, all
// driven through a typed client of the REST API.
package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"go-portfolio-backend/internal/domain"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// APIError is a non-2xx answer. Message is the server's {message} or the status line.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to the portfolio REST API. BaseURL includes the API base path,
// e.g. "https://example.com/api".
type Client struct {
	BaseURL string
	// Token is sent as a bearer token on every request when set.
	Token string
	http  *http.Client
}

// NewClient builds a client. A nil httpClient means http.DefaultClient, which has no timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) url(parts ...string) string {
	return c.BaseURL + "/" + strings.Join(parts, "/")
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FileURL is where the raw evidence file is served.
func (c *Client) FileURL(evidenceID int64) string {
	return c.url("evidences", id(evidenceID), "file")
}

// PreviewURL is where the server thumbnail of an evidence is served.
func (c *Client) PreviewURL(evidenceID int64) string {
	return c.url("evidences", id(evidenceID), "preview")
}

func (c *Client) Elements(ctx context.Context) ([]domain.Element, error) {
	var out []domain.Element
	return out, c.do(ctx, http.MethodGet, c.url("elements"), nil, "", &out)
}

func (c *Client) Element(ctx context.Context, elementID int64) (*domain.Element, error) {
	var out domain.Element
	if err := c.do(ctx, http.MethodGet, c.url("elements", id(elementID)), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RelatedElements(ctx context.Context, elementID int64) ([]domain.Element, error) {
	var out []domain.Element
	return out, c.do(ctx, http.MethodGet, c.url("elements", "related", id(elementID)), nil, "", &out)
}

func (c *Client) Evidences(ctx context.Context, elementID int64) ([]domain.Evidence, error) {
	var out []domain.Evidence
	return out, c.do(ctx, http.MethodGet, c.url("evidences", "element", id(elementID)), nil, "", &out)
}

func (c *Client) Evidence(ctx context.Context, evidenceID int64) (*domain.Evidence, error) {
	return c.evidence(ctx, http.MethodGet, c.url("evidences", id(evidenceID)), nil, "")
}

func (c *Client) CreateEvidence(ctx context.Context, elementID int64, in domain.EvidenceInput) (*domain.Evidence, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, errors.Wrap(err, "encode evidence")
	}
	return c.evidence(ctx, http.MethodPost, c.url("evidences", "element", id(elementID)), bytes.NewReader(body), "application/json")
}

func (c *Client) UpdateEvidence(ctx context.Context, evidenceID int64, in domain.EvidenceInput) (*domain.Evidence, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, errors.Wrap(err, "encode evidence")
	}
	return c.evidence(ctx, http.MethodPut, c.url("evidences", id(evidenceID), "update"), bytes.NewReader(body), "application/json")
}

func (c *Client) DeleteEvidence(ctx context.Context, evidenceID int64) error {
	return c.do(ctx, http.MethodDelete, c.url("evidences", id(evidenceID)), nil, "", nil)
}

// UploadFile streams r as the multipart field "file".
func (c *Client) UploadFile(ctx context.Context, evidenceID int64, name string, r io.Reader) (*domain.Evidence, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", name)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	ev, err := c.evidence(ctx, http.MethodPost, c.url("evidences", id(evidenceID), "upload"), pr, mw.FormDataContentType())
	// unblocks the writer when the request ended before the body was consumed
	pr.Close()
	return ev, err
}

func (c *Client) DeleteFile(ctx context.Context, evidenceID int64) (*domain.Evidence, error) {
	return c.evidence(ctx, http.MethodDelete, c.url("evidences", id(evidenceID), "file"), nil, "")
}

func (c *Client) AboutMe(ctx context.Context) (*domain.AboutMe, error) {
	var out domain.AboutMe
	if err := c.do(ctx, http.MethodGet, c.url("about-me"), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAboutMe(ctx context.Context, body []byte) (*domain.AboutMe, error) {
	var out domain.AboutMe
	if err := c.do(ctx, http.MethodPut, c.url("about-me"), bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) evidence(ctx context.Context, method, target string, body io.Reader, contentType string) (*domain.Evidence, error) {
	var out domain.Evidence
	if err := c.do(ctx, method, target, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, target)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, target)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}

	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}

// withVersion appends the cache-busting t parameter.
func withVersion(rawURL string, version int64) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(version, 10))
	u.RawQuery = q.Encode()
	return u.String()
}
