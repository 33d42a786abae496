package v1

import (
	"bytes"
	"context"
	"errors"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/preview"
	"go-portfolio-backend/pkg/apperror"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	msgFileRequired   = "الملف مطلوب"
	msgBadBody        = "بيانات الطلب غير صالحة"
	msgTooLarge       = "حجم الطلب أكبر من المسموح"
	msgNoPreview      = "لا تتوفر معاينة لهذا الملف"
	multipartOverhead = 1 << 20
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type EvidenceHandler struct {
	evidenceUC     domain.EvidenceUsecase
	previews       *preview.Service
	maxUploadBytes int64
}

func NewEvidenceHandler(public, authoring *gin.RouterGroup, evidenceUC domain.EvidenceUsecase, previews *preview.Service, maxUploadBytes int64) {
	handler := &EvidenceHandler{
		evidenceUC:     evidenceUC,
		previews:       previews,
		maxUploadBytes: maxUploadBytes,
	}

	evidences := public.Group("/evidences")
	{
		evidences.GET("/export", handler.Export)
		evidences.GET("/element/:id", handler.ListByElement)
		evidences.GET("/:id", handler.Get)
		evidences.GET("/:id/file", handler.File)
		evidences.GET("/:id/preview", handler.Preview)
	}

	authoringEvidences := authoring.Group("/evidences")
	{
		authoringEvidences.POST("/element/:id", handler.Create)
		authoringEvidences.PUT("/:id/update", handler.Update)
		authoringEvidences.DELETE("/:id", handler.Delete)
		authoringEvidences.POST("/:id/upload", handler.Upload)
		authoringEvidences.DELETE("/:id/file", handler.DeleteFile)
	}
}

// ListEvidences godoc
// @Summary      List evidences of an element
// @Description  Newest first. File contents are not included.
// @Tags         evidences
// @Produce      json
// @Param        id   path      int  true  "Element ID"
// @Success      200  {array}   domain.Evidence
// @Router       /evidences/element/{id} [get]
func (h *EvidenceHandler) ListByElement(c *gin.Context) {
	elementID, ok := paramID(c)
	if !ok {
		return
	}

	evidences, err := h.evidenceUC.ListByElement(c, elementID)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, evidences)
}

// GetEvidence godoc
// @Summary      Get an evidence
// @Tags         evidences
// @Produce      json
// @Param        id   path      int  true  "Evidence ID"
// @Success      200  {object}  domain.Evidence
// @Failure      404  {object}  response.ErrorBody
// @Router       /evidences/{id} [get]
func (h *EvidenceHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ev, err := h.evidenceUC.GetEvidence(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, ev)
}

// CreateEvidence godoc
// @Summary      Create an evidence
// @Description  JSON metadata, or multipart with the same fields and an optional "file".
// @Tags         evidences
// @Accept       json,mpfd
// @Produce      json
// @Param        id        path      int                   true   "Element ID"
// @Param        evidence  body      domain.EvidenceInput  false  "Evidence metadata"
// @Success      201       {object}  domain.Evidence
// @Failure      400       {object}  response.ErrorBody
// @Failure      403       {object}  response.ErrorBody
// @Failure      404       {object}  response.ErrorBody
// @Failure      413       {object}  response.ErrorBody
// @Failure      415       {object}  response.ErrorBody
// @Router       /evidences/element/{id} [post]
// @Security     BearerAuth
func (h *EvidenceHandler) Create(c *gin.Context) {
	elementID, ok := paramID(c)
	if !ok {
		return
	}

	var in domain.EvidenceInput
	var upload *domain.Upload

	if isMultipart(c) {
		h.limitBody(c)
		if err := c.ShouldBind(&in); err != nil {
			c.Error(bodyError(err))
			return
		}

		fh, err := c.FormFile("file")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			c.Error(bodyError(err))
			return
		}
		if fh != nil {
			f, err := fh.Open()
			if err != nil {
				c.Error(apperror.Internal(err))
				return
			}
			defer f.Close()
			upload = &domain.Upload{Filename: fh.Filename, Size: fh.Size, Reader: f}
		}
	} else if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.BadRequest(msgBadBody))
		return
	}

	ev, err := h.evidenceUC.CreateEvidence(c, elementID, in, upload)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, ev)
}

// UpdateEvidence godoc
// @Summary      Update evidence metadata
// @Tags         evidences
// @Accept       json
// @Produce      json
// @Param        id        path      int                   true  "Evidence ID"
// @Param        evidence  body      domain.EvidenceInput  true  "Evidence metadata"
// @Success      200       {object}  domain.Evidence
// @Failure      400       {object}  response.ErrorBody
// @Failure      404       {object}  response.ErrorBody
// @Router       /evidences/{id}/update [put]
// @Security     BearerAuth
func (h *EvidenceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var in domain.EvidenceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.BadRequest(msgBadBody))
		return
	}

	ev, err := h.evidenceUC.UpdateEvidence(c, id, in)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, ev)
}

// DeleteEvidence godoc
// @Summary      Delete an evidence and its file
// @Tags         evidences
// @Param        id   path  int  true  "Evidence ID"
// @Success      204
// @Failure      404  {object}  response.ErrorBody
// @Router       /evidences/{id} [delete]
// @Security     BearerAuth
func (h *EvidenceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.evidenceUC.DeleteEvidence(c, id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadEvidenceFile godoc
// @Summary      Attach or replace the evidence file
// @Description  The file type (pdf, image or video) is derived from the content.
// @Tags         evidences
// @Accept       mpfd
// @Produce      json
// @Param        id    path      int   true  "Evidence ID"
// @Param        file  formData  file  true  "PDF, image or video"
// @Success      200   {object}  domain.Evidence
// @Failure      400   {object}  response.ErrorBody
// @Failure      413   {object}  response.ErrorBody
// @Failure      415   {object}  response.ErrorBody
// @Router       /evidences/{id}/upload [post]
// @Security     BearerAuth
func (h *EvidenceHandler) Upload(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	h.limitBody(c)
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			c.Error(apperror.BadRequest(msgFileRequired))
			return
		}
		c.Error(bodyError(err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer f.Close()

	ev, err := h.evidenceUC.UploadFile(c, id, domain.Upload{Filename: fh.Filename, Size: fh.Size, Reader: f})
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, ev)
}

// DeleteEvidenceFile godoc
// @Summary      Remove the evidence file
// @Description  Metadata is kept and file_type becomes "none".
// @Tags         evidences
// @Produce      json
// @Param        id   path      int  true  "Evidence ID"
// @Success      200  {object}  domain.Evidence
// @Failure      404  {object}  response.ErrorBody
// @Router       /evidences/{id}/file [delete]
// @Security     BearerAuth
func (h *EvidenceHandler) DeleteFile(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ev, err := h.evidenceUC.DeleteFile(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, ev)
}

// GetEvidenceFile godoc
// @Summary      Download the evidence file
// @Tags         evidences
// @Produce      octet-stream
// @Param        id   path  int  true  "Evidence ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.ErrorBody
// @Router       /evidences/{id}/file [get]
func (h *EvidenceHandler) File(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	f, err := h.evidenceUC.GetFile(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	if disposition := mime.FormatMediaType("inline", map[string]string{"filename": f.Name}); disposition != "" {
		c.Header("Content-Disposition", disposition)
	}
	c.Header("Cache-Control", "private, max-age=0, must-revalidate")
	c.Data(http.StatusOK, f.MimeType, f.Data)
}

// GetEvidencePreview godoc
// @Summary      JPEG thumbnail of the evidence file
// @Tags         evidences
// @Produce      jpeg
// @Param        id   path  int  true  "Evidence ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.ErrorBody
// @Router       /evidences/{id}/preview [get]
func (h *EvidenceHandler) Preview(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ev, err := h.evidenceUC.GetEvidence(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	if h.previews == nil {
		c.Error(apperror.NotFound(msgNoPreview))
		return
	}

	thumb, err := h.previews.Thumbnail(c, *ev, func(ctx context.Context) (*domain.EvidenceFile, error) {
		return h.evidenceUC.GetFile(ctx, id)
	})
	if err != nil {
		if _, ok := apperror.From(err); !ok && !errors.Is(err, preview.ErrUnsupported) {
			log.Warn().Err(err).Int64("evidence_id", id).Msg("preview generation failed")
		}
		c.Error(apperror.NotFound(msgNoPreview))
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/jpeg", thumb)
}

// ExportEvidences godoc
// @Summary      Evidence register as a spreadsheet
// @Tags         evidences
// @Produce      octet-stream
// @Success      200  {file}  file
// @Router       /evidences/export [get]
func (h *EvidenceHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.evidenceUC.Export(c, &buf); err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="evidences.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

func (h *EvidenceHandler) limitBody(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.PayloadTooLarge(msgTooLarge)
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		return apperror.PayloadTooLarge(msgTooLarge)
	}
	return apperror.BadRequest(msgBadBody)
}
