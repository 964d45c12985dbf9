package controller

import (
	"aba_assessment_backend/internal/service"
	"aba_assessment_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuestionnaireController struct {
	TemplateService *service.TemplateService
	SessionService  *service.SessionService
}

func NewQuestionnaireController(templateService *service.TemplateService, sessionService *service.SessionService) *QuestionnaireController {
	return &QuestionnaireController{
		TemplateService: templateService,
		SessionService:  sessionService,
	}
}

// ListTemplates godoc
// @Summary List questionnaire templates
// @Description Returns each assessment type with its domain and question counts.
// @Tags questionnaires
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]repository.TemplateSummary}
// @Router /api/questionnaires/templates [get]
func (c *QuestionnaireController) ListTemplates(ctx *gin.Context) {
	summaries, err := c.TemplateService.ListSummaries()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

// GetTemplate godoc
// @Summary Get a full questionnaire template
// @Description Domains and questions are returned in display order.
// @Tags questionnaires
// @Produce  json
// @Security BearerAuth
// @Param   assessmentType path string true "Assessment type" Enums(ABLLS-R, AFLLS, DAYC-2, Behavior-Therapy)
// @Success 200 {object} util.Response{data=model.QuestionnaireTemplate}
// @Failure 404 {object} util.Response
// @Router /api/questionnaires/templates/{assessmentType} [get]
func (c *QuestionnaireController) GetTemplate(ctx *gin.Context) {
	template, err := c.TemplateService.GetByType(ctx.Request.Context(), ctx.Param("assessmentType"))
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, template)
}

// swagger:model StartSessionRequest
type StartSessionRequest struct {
	AssessmentType string `json:"assessmentType" binding:"required"`
	ChildID        string `json:"childId" binding:"required"`
}

// StartSession godoc
// @Summary Start an assessment session
// @Description Returns the existing in-progress session for the child and assessment type when one exists.
// @Tags questionnaires
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StartSessionRequest true "Session target"
// @Success 200 {object} util.Response{data=model.QuestionnaireSession} "Existing session resumed"
// @Success 201 {object} util.Response{data=model.QuestionnaireSession} "New session started"
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Unknown assessment type or child"
// @Router /api/questionnaires/sessions [post]
func (c *QuestionnaireController) StartSession(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	session, created, err := c.SessionService.Start(ctx.Request.Context(), req.AssessmentType, req.ChildID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTemplateNotFound), errors.Is(err, util.ErrChildNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if created {
		util.Created(ctx, session)
		return
	}
	util.Success(ctx, session)
}

// ListSessions godoc
// @Summary List sessions
// @Description Newest first, optionally filtered by child and assessment type, with response counts.
// @Tags questionnaires
// @Produce  json
// @Security BearerAuth
// @Param   childId        query string false "Filter by child"
// @Param   assessmentType query string false "Filter by assessment type"
// @Success 200 {object} util.Response{data=[]service.SessionSummary}
// @Router /api/questionnaires/sessions [get]
func (c *QuestionnaireController) ListSessions(ctx *gin.Context) {
	summaries, err := c.SessionService.List(ctx.Query("childId"), ctx.Query("assessmentType"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

// GetSession godoc
// @Summary Get a session with its responses
// @Tags questionnaires
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=model.QuestionnaireSession}
// @Failure 404 {object} util.Response
// @Router /api/questionnaires/sessions/{sessionId} [get]
func (c *QuestionnaireController) GetSession(ctx *gin.Context) {
	session, err := c.SessionService.GetWithResponses(ctx.Param("sessionId"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}

// swagger:model SaveResponseRequest
type SaveResponseRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// SaveResponse godoc
// @Summary Save one answer
// @Description Upserts the answer for a question. Completed sessions reject writes.
// @Tags questionnaires
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "Session ID"
// @Param   body body SaveResponseRequest true "Answer"
// @Success 200 {object} util.Response{data=model.QuestionnaireResponse}
// @Failure 404 {object} util.Response "Session or question not found"
// @Failure 409 {object} util.Response "Session already completed"
// @Router /api/questionnaires/sessions/{sessionId}/responses [put]
func (c *QuestionnaireController) SaveResponse(ctx *gin.Context) {
	var req SaveResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.SessionService.SaveResponse(ctx.Param("sessionId"), req.QuestionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionCompleted):
			util.Conflict(ctx, "Session is already completed")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, response)
}

// CompleteSession godoc
// @Summary Complete a session
// @Description Marks the session completed and stamps completedAt once. Idempotent.
// @Tags questionnaires
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=model.QuestionnaireSession}
// @Failure 404 {object} util.Response
// @Router /api/questionnaires/sessions/{sessionId}/complete [patch]
func (c *QuestionnaireController) CompleteSession(ctx *gin.Context) {
	session, err := c.SessionService.Complete(ctx.Param("sessionId"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}
