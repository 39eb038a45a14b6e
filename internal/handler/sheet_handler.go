package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/sheetpreview/internal/logger"
	"github.com/locvowork/sheetpreview/internal/service"
	"github.com/locvowork/sheetpreview/internal/service/serviceutils"
	"github.com/locvowork/sheetpreview/pkg/pipeline"
	"github.com/locvowork/sheetpreview/pkg/preview"
	"github.com/locvowork/sheetpreview/pkg/sheetcodec"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type SheetHandler struct {
	svc         service.SheetService
	uploadLimit int
}

func NewSheetHandler(svc service.SheetService, uploadLimit int) *SheetHandler {
	if uploadLimit <= 0 {
		uploadLimit = 100
	}
	return &SheetHandler{svc: svc, uploadLimit: uploadLimit}
}

// IndexHandler handles GET /
func (h *SheetHandler) IndexHandler(c echo.Context) error {
	ctx := c.Request().Context()
	snap, err := h.svc.Current(ctx)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to read current sheet", err)
	}

	var table, snippet bytes.Buffer
	if err := h.svc.Preview(ctx, &table, preview.KindTable); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to render table", err)
	}
	if err := h.svc.Preview(ctx, &snippet, preview.KindSnippet); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to render snippet", err)
	}

	var page bytes.Buffer
	err = indexTmpl.Execute(&page, map[string]interface{}{
		"Accept":  sheetcodec.AcceptAttribute(),
		"HasData": len(snap.Data) > 0,
		"Source":  snap.Source,
		"Version": snap.Version,
		// rendered by html/template in the preview package
		"Table":   template.HTML(table.String()),
		"Snippet": snippet.String(),
	})
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to render page", err)
	}
	return c.HTMLBlob(http.StatusOK, page.Bytes())
}

// UploadHandler handles POST /api/sheets
func (h *SheetHandler) UploadHandler(c echo.Context) error {
	ctx := c.Request().Context()
	form, err := c.MultipartForm()
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid multipart form", err)
	}
	files := form.File["file"]
	if len(files) == 0 {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing file", errors.New(`form field "file" is required`))
	}

	src := pipeline.MultipartSource{Header: files[0]}
	if !sheetcodec.IsAccepted(src.Name()) {
		logger.DebugLog(ctx, "ingesting %s with an unlisted extension", src.Name())
	}

	snap, err := h.svc.Ingest(ctx, src)
	if err != nil {
		logger.ErrorLog(ctx, "failed to ingest %s: %v", src.Name(), err)
		return serviceutils.ResponseError(c, ingestStatus(err), "Failed to ingest spreadsheet", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Spreadsheet ingested", snap)
}

// CurrentHandler handles GET /api/sheets/current
func (h *SheetHandler) CurrentHandler(c echo.Context) error {
	snap, err := h.svc.Current(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to read current sheet", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", snap)
}

// ExportHandler handles GET /api/sheets/export
func (h *SheetHandler) ExportHandler(c echo.Context) error {
	ctx := c.Request().Context()
	var buf bytes.Buffer
	if err := h.svc.Export(ctx, &buf); err != nil {
		logger.ErrorLog(ctx, "failed to export sheet: %v", err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate Excel file", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+pipeline.ExportFileName+`"`)
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(buf.Len()))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// PreviewHandler handles GET /api/sheets/preview?kind=snippet|table
func (h *SheetHandler) PreviewHandler(c echo.Context) error {
	var buf bytes.Buffer
	err := h.svc.Preview(c.Request().Context(), &buf, preview.Kind(c.QueryParam("kind")))
	if errors.Is(err, service.ErrUnknownPreviewKind) {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid preview kind", err)
	}
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to render preview", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// UploadsHandler handles GET /api/uploads?limit=n
func (h *SheetHandler) UploadsHandler(c echo.Context) error {
	limit := h.uploadLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid limit", errors.New("limit must be a positive integer"))
		}
		limit = min(n, h.uploadLimit)
	}

	uploads, err := h.svc.Uploads(c.Request().Context(), limit)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to list uploads", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", uploads)
}

// ingestStatus maps codec input errors to 422; everything else is a server error.
func ingestStatus(err error) int {
	var parseErr *sheetcodec.ParseError
	switch {
	case errors.As(err, &parseErr),
		errors.Is(err, sheetcodec.ErrEmptyWorkbook),
		errors.Is(err, sheetcodec.ErrInvalidRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
