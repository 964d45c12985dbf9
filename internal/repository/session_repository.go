package repository

import (
	"aba_assessment_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.QuestionnaireSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id string) (*model.QuestionnaireSession, error) {
	var session model.QuestionnaireSession
	err := r.DB.Where("id = ?", id).First(&session).Error
	return &session, err
}

func (r *SessionRepository) FindByIDWithResponses(id string) (*model.QuestionnaireSession, error) {
	var session model.QuestionnaireSession
	err := r.DB.Preload("Responses").Where("id = ?", id).First(&session).Error
	return &session, err
}

// FindInProgress returns the open session for a child and assessment type, if
// any. At most one such session exists at a time.
func (r *SessionRepository) FindInProgress(assessmentType, childID string) (*model.QuestionnaireSession, error) {
	var session model.QuestionnaireSession
	err := r.DB.
		Where("assessment_type = ? AND child_id = ? AND status = ?",
			assessmentType, childID, model.SessionInProgress).
		Order("created_at desc").
		First(&session).Error
	return &session, err
}

func (r *SessionRepository) ListByChild(childID string) ([]model.QuestionnaireSession, error) {
	var sessions []model.QuestionnaireSession
	err := r.DB.Where("child_id = ?", childID).Order("created_at desc").Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) List(status string, page, limit int) ([]model.QuestionnaireSession, int64, error) {
	var sessions []model.QuestionnaireSession
	var total int64
	query := r.DB.Model(&model.QuestionnaireSession{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, total, err
}

// ListFiltered returns sessions newest first, optionally narrowed by
// child and assessment type.
func (r *SessionRepository) ListFiltered(childID, assessmentType string) ([]model.QuestionnaireSession, error) {
	var sessions []model.QuestionnaireSession
	query := r.DB.Model(&model.QuestionnaireSession{})
	if childID != "" {
		query = query.Where("child_id = ?", childID)
	}
	if assessmentType != "" {
		query = query.Where("assessment_type = ?", assessmentType)
	}
	err := query.Order("created_at desc").Find(&sessions).Error
	return sessions, err
}

// ResponseCounts maps session IDs to their stored answer counts.
func (r *SessionRepository) ResponseCounts(sessionIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}
	type row struct {
		SessionID string
		Count     int64
	}
	var rows []row
	err := r.DB.Model(&model.QuestionnaireResponse{}).
		Select("session_id, count(*) as count").
		Where("session_id IN ?", sessionIDs).
		Group("session_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		counts[rw.SessionID] = rw.Count
	}
	return counts, nil
}

// UpsertResponse writes the answer for a question, replacing any earlier
// answer in the same session.
func (r *SessionRepository) UpsertResponse(response *model.QuestionnaireResponse) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer", "updated_at"}),
	}).Create(response).Error
}

func (r *SessionRepository) ListResponses(sessionID string) ([]model.QuestionnaireResponse, error) {
	var responses []model.QuestionnaireResponse
	err := r.DB.Where("session_id = ?", sessionID).Find(&responses).Error
	return responses, err
}

func (r *SessionRepository) Complete(id string) error {
	now := time.Now()
	return r.DB.Model(&model.QuestionnaireSession{}).
		Where("id = ? AND status = ?", id, model.SessionInProgress).
		Updates(map[string]interface{}{
			"status":       model.SessionCompleted,
			"completed_at": &now,
		}).Error
}

func (r *SessionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&model.QuestionnaireResponse{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.QuestionnaireSession{}).Error
	})
}

func (r *SessionRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&model.QuestionnaireSession{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
