package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iqbalrpambudi/disc-examination/internal/export"
	"github.com/iqbalrpambudi/disc-examination/internal/mail"
	"github.com/iqbalrpambudi/disc-examination/internal/model"
	"github.com/iqbalrpambudi/disc-examination/internal/response"
	"github.com/iqbalrpambudi/disc-examination/internal/service"
	"github.com/iqbalrpambudi/disc-examination/internal/validator"
)

// attachmentFilename is the default name for the PDF attached to result
// emails and offered for download.
const attachmentFilename = "DISC_Assessment_Results.pdf"

// ReportHandler serves the rendered report and drives export/delivery.
type ReportHandler struct {
	assessments *service.AssessmentService
	reports     *service.ReportService
	pipeline    *export.Pipeline
	gateway     mail.Gateway
	hrEmail     string
}

// NewReportHandler creates a new ReportHandler. hrEmail is CC'd on
// deliveries when the request carries no explicit CC.
func NewReportHandler(
	assessments *service.AssessmentService,
	reports *service.ReportService,
	pipeline *export.Pipeline,
	gateway mail.Gateway,
	hrEmail string,
) *ReportHandler {
	return &ReportHandler{
		assessments: assessments,
		reports:     reports,
		pipeline:    pipeline,
		gateway:     gateway,
		hrEmail:     hrEmail,
	}
}

// GetReport godoc
// GET /api/v1/assessments/:token/report?format=json|html|text
// Renders the results report for a completed session.
func (h *ReportHandler) GetReport(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	data, ok := h.buildReportData(c, token)
	if !ok {
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		response.Success(c, http.StatusOK, gin.H{"report": data})
	case "html":
		html, err := h.reports.RenderHTML(data)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	case "text":
		text, err := h.reports.RenderText(data)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
	default:
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	}
}

// ExportPDF godoc
// GET /api/v1/assessments/:token/report/pdf
// Runs the export pipeline and streams the paginated PDF as a download.
// A failed export leaves the session untouched; the client may retry.
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	data, ok := h.buildReportData(c, token)
	if !ok {
		return
	}

	if err := h.assessments.TryAcquire(token, service.OpExport); err != nil {
		failFromErr(c, err)
		return
	}
	defer h.assessments.Release(token, service.OpExport)

	html, err := h.reports.RenderHTML(data)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	pdf, err := h.pipeline.Export(c.Request.Context(), html)
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrExportFailed)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+attachmentFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// SendReport godoc
// POST /api/v1/assessments/:token/send
// Emails the report to the session's contact address, optionally with
// the PDF attached. A failed delivery is surfaced as an error result and
// leaves session state completely unchanged.
func (h *ReportHandler) SendReport(c *gin.Context) {
	token, ok := parseToken(c)
	if !ok {
		return
	}

	var req model.SendReportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	data, ok := h.buildReportData(c, token)
	if !ok {
		return
	}

	if err := h.assessments.TryAcquire(token, service.OpSend); err != nil {
		failFromErr(c, err)
		return
	}
	defer h.assessments.Release(token, service.OpSend)

	text, err := h.reports.RenderText(data)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	html, err := h.reports.RenderHTML(data)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	msg := mail.Message{
		To:      data.Email,
		CC:      req.CC,
		Subject: data.Subject(),
		Text:    text,
		HTML:    html,
	}
	if msg.CC == "" {
		msg.CC = h.hrEmail
	}

	if req.AttachPDF {
		pdf, err := h.pipeline.Export(c.Request.Context(), html)
		if err != nil {
			response.Fail(c, http.StatusBadGateway, response.ErrExportFailed)
			return
		}
		msg.Attachment = &mail.Attachment{
			Filename: attachmentFilename,
			MIMEType: "application/pdf",
			Content:  pdf,
		}
	}

	result := h.gateway.Send(c.Request.Context(), msg)
	if !result.Success {
		response.FailWithMessage(c, http.StatusBadGateway, response.ErrDeliveryFailed, result.Message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": result.Message})
}

// buildReportData loads the session and computes the report model,
// writing the error response itself on failure. The token comes from
// the caller so the path parameter is parsed once per request.
func (h *ReportHandler) buildReportData(c *gin.Context, token uuid.UUID) (*service.ReportData, bool) {
	session, err := h.assessments.GetSession(c.Request.Context(), token)
	if err != nil {
		failFromErr(c, err)
		return nil, false
	}

	data, err := h.reports.BuildReportData(session)
	if err != nil {
		failFromErr(c, err)
		return nil, false
	}
	return data, true
}
