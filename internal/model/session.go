package model

import "time"

const (
	SessionInProgress = "in-progress"
	SessionCompleted  = "completed"
)

// swagger:model QuestionnaireSession
type QuestionnaireSession struct {
	UUIDBase
	AssessmentType string                  `gorm:"size:50;index:idx_session_type_child;not null" json:"assessmentType"`
	ChildID        string                  `gorm:"size:36;index:idx_session_type_child;not null" json:"childId"`
	RespondentID   uint                    `gorm:"index;type:bigint unsigned;not null" json:"respondentId"`
	Status         string                  `gorm:"size:20;default:'in-progress'" json:"status"`
	CompletedAt    *time.Time              `json:"completedAt,omitempty"`
	Responses      []QuestionnaireResponse `gorm:"foreignKey:SessionID" json:"responses,omitempty"`
}

func (QuestionnaireSession) TableName() string {
	return "questionnaire_sessions"
}

// QuestionnaireResponse holds at most one row per (session, question); answers
// are upserted as the respondent progresses.
type QuestionnaireResponse struct {
	UUIDBase
	SessionID  string `gorm:"type:varchar(36);uniqueIndex:idx_response_session_question;not null" json:"sessionId"`
	QuestionID string `gorm:"type:varchar(36);uniqueIndex:idx_response_session_question;not null" json:"questionId"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
}

func (QuestionnaireResponse) TableName() string {
	return "questionnaire_responses"
}
