package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringArray stores a string slice as a JSON column.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("unsupported type for StringArray")
	}
}

// swagger:model QuestionnaireTemplate
type QuestionnaireTemplate struct {
	UUIDBase
	AssessmentType string                `gorm:"size:50;uniqueIndex;not null" json:"assessmentType"`
	Title          string                `gorm:"size:255;not null" json:"title"`
	Description    string                `gorm:"type:text" json:"description"`
	Domains        []QuestionnaireDomain `gorm:"foreignKey:TemplateID" json:"domains,omitempty"`
}

func (QuestionnaireTemplate) TableName() string {
	return "questionnaire_templates"
}

// QuestionnaireDomain is an ordered skill domain under a template. Code is a
// stable short label; scoring falls back to the first letter of Name when empty.
type QuestionnaireDomain struct {
	UUIDBase
	TemplateID string                  `gorm:"index;type:varchar(36);not null" json:"templateId"`
	Name       string                  `gorm:"size:255;not null" json:"name"`
	Code       string                  `gorm:"size:10" json:"code"`
	SortOrder  int                     `gorm:"default:0" json:"sortOrder"`
	Questions  []QuestionnaireQuestion `gorm:"foreignKey:DomainID" json:"questions,omitempty"`
}

func (QuestionnaireDomain) TableName() string {
	return "questionnaire_domains"
}

type QuestionnaireQuestion struct {
	UUIDBase
	DomainID     string      `gorm:"index;type:varchar(36);not null" json:"domainId"`
	SkillCode    string      `gorm:"size:20" json:"skillCode"`
	TaskName     string      `gorm:"size:255" json:"taskName"`
	QuestionText string      `gorm:"type:text;not null" json:"questionText"`
	ResponseType string      `gorm:"size:20;default:'dropdown'" json:"responseType"`
	Options      StringArray `gorm:"type:json" json:"options"`
	ScoreType    string      `gorm:"size:20" json:"scoreType,omitempty"` // e.g. "0-4"
	SortOrder    int         `gorm:"default:0" json:"sortOrder"`
}

func (QuestionnaireQuestion) TableName() string {
	return "questionnaire_questions"
}
