package service

import (
	"aba_assessment_backend/internal/model"
	"aba_assessment_backend/internal/repository"
	"aba_assessment_backend/internal/util"
	"aba_assessment_backend/pkg/logger"
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionSummary is a session list row with its answer count.
type SessionSummary struct {
	model.QuestionnaireSession
	ResponseCount int64 `json:"responseCount"`
}

type SessionService struct {
	SessionRepo  *repository.SessionRepository
	TemplateRepo *repository.TemplateRepository
	ChildRepo    *repository.ChildRepository
	Templates    *TemplateService
}

func NewSessionService(sessionRepo *repository.SessionRepository, templateRepo *repository.TemplateRepository, childRepo *repository.ChildRepository, templates *TemplateService) *SessionService {
	return &SessionService{
		SessionRepo:  sessionRepo,
		TemplateRepo: templateRepo,
		ChildRepo:    childRepo,
		Templates:    templates,
	}
}

// Start opens a session for a child and assessment type. When an
// in-progress session already exists for the pair it is returned instead
// of creating a second one.
func (s *SessionService) Start(ctx context.Context, assessmentType, childID string, respondentID uint) (*model.QuestionnaireSession, bool, error) {
	if _, err := s.Templates.GetByType(ctx, assessmentType); err != nil {
		return nil, false, err
	}

	if _, err := s.ChildRepo.FindByID(childID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrChildNotFound
		}
		return nil, false, err
	}

	existing, err := s.SessionRepo.FindInProgress(assessmentType, childID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	session := &model.QuestionnaireSession{
		AssessmentType: assessmentType,
		ChildID:        childID,
		RespondentID:   respondentID,
		Status:         model.SessionInProgress,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, false, err
	}

	logger.Log.Info("Started questionnaire session",
		zap.String("sessionId", session.ID),
		zap.String("assessmentType", assessmentType),
		zap.String("childId", childID))
	return session, true, nil
}

func (s *SessionService) List(childID, assessmentType string) ([]SessionSummary, error) {
	sessions, err := s.SessionRepo.ListFiltered(childID, assessmentType)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(sessions))
	for i, session := range sessions {
		ids[i] = session.ID
	}
	counts, err := s.SessionRepo.ResponseCounts(ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, len(sessions))
	for i, session := range sessions {
		summaries[i] = SessionSummary{
			QuestionnaireSession: session,
			ResponseCount:        counts[session.ID],
		}
	}
	return summaries, nil
}

func (s *SessionService) GetWithResponses(id string) (*model.QuestionnaireSession, error) {
	session, err := s.SessionRepo.FindByIDWithResponses(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// SaveResponse upserts one answer. Completed sessions are immutable
// snapshots; late writes are rejected.
func (s *SessionService) SaveResponse(sessionID, questionID, answer string) (*model.QuestionnaireResponse, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status == model.SessionCompleted {
		return nil, util.ErrSessionCompleted
	}

	if _, err := s.TemplateRepo.FindQuestionByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	response := &model.QuestionnaireResponse{
		SessionID:  sessionID,
		QuestionID: questionID,
		Answer:     answer,
	}
	if err := s.SessionRepo.UpsertResponse(response); err != nil {
		return nil, err
	}
	return response, nil
}

// Complete transitions a session to completed and stamps completedAt
// once. Completing an already-completed session is a no-op.
func (s *SessionService) Complete(id string) (*model.QuestionnaireSession, error) {
	session, err := s.SessionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status == model.SessionCompleted {
		return session, nil
	}

	if err := s.SessionRepo.Complete(id); err != nil {
		return nil, err
	}

	completed, err := s.SessionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Completed questionnaire session", zap.String("sessionId", id))
	return completed, nil
}
