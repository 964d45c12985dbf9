package controller

import (
	"aba_assessment_backend/internal/config"
	"aba_assessment_backend/internal/service"
	"aba_assessment_backend/internal/util"
	"aba_assessment_backend/pkg/logger"
	"aba_assessment_backend/pkg/monitoring"
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ScoringController struct {
	ScoringService *service.ScoringService
	ReportService  *service.ReportService
	Storage        service.StorageProvider
	Cfg            *config.Config
}

func NewScoringController(scoringService *service.ScoringService, reportService *service.ReportService, storage service.StorageProvider, cfg *config.Config) *ScoringController {
	return &ScoringController{
		ScoringService: scoringService,
		ReportService:  reportService,
		Storage:        storage,
		Cfg:            cfg,
	}
}

func (c *ScoringController) calculate(ctx *gin.Context) *service.VBGradingResult {
	result, err := c.ScoringService.CalculateScoring(ctx.Param("sessionId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrTemplateNotFound):
			monitoring.ScoringCounter.WithLabelValues("unknown", "not_found").Inc()
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionNotCompleted):
			monitoring.ScoringCounter.WithLabelValues("unknown", "invalid_state").Inc()
			util.Conflict(ctx, "Session is not completed")
		default:
			monitoring.ScoringCounter.WithLabelValues("unknown", "error").Inc()
			util.LogInternalError(ctx, err)
		}
		return nil
	}
	monitoring.ScoringCounter.WithLabelValues(result.AssessmentType, "success").Inc()
	return result
}

// GetScoring godoc
// @Summary Score a completed session
// @Description Runs the VB scoring pipeline and returns domain scores, proficiency bands, and the VB export rows.
// @Tags scoring
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=service.VBGradingResult}
// @Failure 404 {object} util.Response "Session or template not found"
// @Failure 409 {object} util.Response "Session is not completed"
// @Router /api/questionnaires/sessions/{sessionId}/scoring [get]
func (c *ScoringController) GetScoring(ctx *gin.Context) {
	if result := c.calculate(ctx); result != nil {
		util.Success(ctx, result)
	}
}

// GetVBExport godoc
// @Summary Flat VB export rows
// @Description Debug surface for inspecting the VB mapping independent of report formatting.
// @Tags scoring
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=[]service.VBExportRow}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/questionnaires/sessions/{sessionId}/scoring/vb-export [get]
func (c *ScoringController) GetVBExport(ctx *gin.Context) {
	if result := c.calculate(ctx); result != nil {
		util.Success(ctx, result.VBExport)
	}
}

// DownloadReport godoc
// @Summary Download the assessment report
// @Description Streams the four-sheet xlsx workbook. An archive copy is kept in storage when enabled.
// @Tags scoring
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param   sessionId path string true "Session ID"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/questionnaires/sessions/{sessionId}/report [get]
func (c *ScoringController) DownloadReport(ctx *gin.Context) {
	result := c.calculate(ctx)
	if result == nil {
		return
	}

	workbook, err := c.ReportService.BuildReport(result)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer workbook.Close()

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := service.ReportFilename(result)
	monitoring.ReportCounter.WithLabelValues(result.AssessmentType).Inc()

	if c.Cfg.Report.Archive && c.Storage != nil {
		archive := bytes.NewReader(buf.Bytes())
		if _, err := c.Storage.Upload(ctx.Request.Context(), filename, archive, int64(buf.Len()), xlsxContentType); err != nil {
			logger.Log.Warn("Report archive failed",
				zap.String("filename", filename),
				zap.Error(err))
		}
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
