package ui

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"statreport/adapters/chart"
	"statreport/adapters/excel"
	"statreport/app"
	"statreport/domain/analysis"
	"statreport/domain/core"
	"statreport/domain/dataset"
	"statreport/domain/report"
	"statreport/internal/errors"

	"github.com/gin-gonic/gin"
)

const defaultPreviewRows = 5

// previewCSP allows the inline chart images of a report preview and nothing else.
const previewCSP = "default-src 'none'; img-src data:; style-src 'unsafe-inline'; sandbox"

// writeError maps an error onto its HTTP status and a {"error","code"} body.
func (s *Server) writeError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", gin.H{
		"Themes":      chart.ThemeNames(),
		"Policies":    dataset.Policies(),
		"MaxUploadMB": s.config.MaxUploadMB,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "uploads": s.uploads.Len()})
}

func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(c, errors.TooLarge(s.config.MaxUploadMB))
			return
		}
		s.writeError(c, errors.InvalidInput("multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes() {
		s.writeError(c, errors.TooLarge(s.config.MaxUploadMB))
		return
	}
	if !excel.Supported(header.Filename) {
		s.writeError(c, fmt.Errorf("%w: %s", core.ErrUnsupportedInput, header.Filename))
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		s.writeError(c, errors.Wrap(err, "failed to read upload"))
		return
	}

	ds, err := s.loader.Load(c.Request.Context(), header.Filename, bytes.NewReader(raw))
	if err != nil {
		s.logger.Warn("rejected %s: %v", header.Filename, err)
		s.writeError(c, err)
		return
	}

	u := s.uploads.Put(header.Filename, raw, ds)
	c.JSON(http.StatusCreated, newUploadResponse(u))
}

func (s *Server) handleListUploads(c *gin.Context) {
	uploads := s.uploads.List()
	out := make([]UploadResponse, len(uploads))
	for i, u := range uploads {
		out[i] = newUploadResponse(u)
	}
	c.JSON(http.StatusOK, gin.H{"uploads": out, "count": len(out)})
}

// upload resolves the :id path parameter, writing the error response
// itself when it fails.
func (s *Server) upload(c *gin.Context) (Upload, bool) {
	u, err := s.uploads.Get(core.ID(c.Param("id")))
	if err != nil {
		s.writeError(c, err)
		return Upload{}, false
	}
	return u, true
}

func (s *Server) handleGetUpload(c *gin.Context) {
	u, ok := s.upload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newUploadResponse(u))
}

func (s *Server) handleDeleteUpload(c *gin.Context) {
	if err := s.uploads.Delete(core.ID(c.Param("id"))); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePreview(c *gin.Context) {
	u, ok := s.upload(c)
	if !ok {
		return
	}
	n, err := strconv.Atoi(c.DefaultQuery("n", strconv.Itoa(defaultPreviewRows)))
	if err != nil || n < 0 {
		s.writeError(c, errors.InvalidInput("n must be a non-negative integer"))
		return
	}
	c.JSON(http.StatusOK, PreviewResponse{
		Columns: u.Dataset.Names(),
		Rows:    u.Dataset.Head(n),
	})
}

// bindRequest decodes the JSON analysis request body.
func (s *Server) bindRequest(c *gin.Context) (analysis.Request, bool) {
	var req analysis.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(c, errors.TooLarge(s.config.MaxUploadMB))
			return req, false
		}
		s.writeError(c, errors.InvalidInput(fmt.Sprintf("invalid request body: %v", err)))
		return req, false
	}
	return req, true
}

func (s *Server) handleAnalysis(c *gin.Context) {
	u, ok := s.upload(c)
	if !ok {
		return
	}
	req, ok := s.bindRequest(c)
	if !ok {
		return
	}
	result, err := s.reports.Analyze(c.Request.Context(), u.Dataset, req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAnalysisResponse(result))
}

func (s *Server) handleReport(c *gin.Context) {
	u, ok := s.upload(c)
	if !ok {
		return
	}
	req, ok := s.bindRequest(c)
	if !ok {
		return
	}
	doc, art, err := s.reports.ExportPDF(c.Request.Context(), u.Dataset, req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.logger.Info("report for %s: %d sections, %d charts, %d bytes", u.ID, art.Assembler.Len(), len(art.Charts), len(doc))
	attachment(c, report.DocumentFileName)
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (s *Server) handleReportPreview(c *gin.Context) {
	u, ok := s.upload(c)
	if !ok {
		return
	}
	req, ok := s.bindRequest(c)
	if !ok {
		return
	}
	page, err := s.reports.PreviewHTML(c.Request.Context(), u.Dataset, req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Header("Content-Security-Policy", previewCSP)
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// chartRequest reads the theme and policy query parameters.
func chartRequest(c *gin.Context) analysis.Request {
	return analysis.Request{
		Theme:         c.Query("theme"),
		MissingPolicy: dataset.MissingPolicy(c.Query("policy")),
	}
}

func (s *Server) handleChart(c *gin.Context) {
	u, ok := s.upload(c)
	if !ok {
		return
	}
	kind, ok := report.ParseChartKind(c.Param("kind"))
	if !ok {
		s.writeError(c, errors.InvalidInput(fmt.Sprintf("unknown chart kind %q", c.Param("kind"))))
		return
	}
	f, err := s.reports.Chart(c.Request.Context(), u.Dataset, chartRequest(c), c.Param("column"), kind)
	if err != nil {
		s.writeError(c, err)
		return
	}
	writePNG(c, f)
}

func (s *Server) handleCorrelationChart(c *gin.Context) {
	u, ok := s.upload(c)
	if !ok {
		return
	}
	f, err := s.reports.Chart(c.Request.Context(), u.Dataset, chartRequest(c), "", report.ChartHeatmap)
	if err != nil {
		s.writeError(c, err)
		return
	}
	writePNG(c, f)
}

func writePNG(c *gin.Context, f app.ChartFile) {
	attachment(c, f.Name)
	if f.Placeholder {
		c.Header("X-Chart-Placeholder", "true")
	}
	c.Data(http.StatusOK, "image/png", f.PNG)
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}
