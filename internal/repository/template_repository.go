package repository

import (
	"aba_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type TemplateRepository struct {
	DB *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

// preloadOrdered loads domains and questions in their seeded display order.
func preloadOrdered(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Domains", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Preload("Domains.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		})
}

func (r *TemplateRepository) ListTypes() ([]model.QuestionnaireTemplate, error) {
	var templates []model.QuestionnaireTemplate
	err := r.DB.Order("assessment_type asc").Find(&templates).Error
	return templates, err
}

func (r *TemplateRepository) FindByType(assessmentType string) (*model.QuestionnaireTemplate, error) {
	var template model.QuestionnaireTemplate
	err := preloadOrdered(r.DB).
		Where("assessment_type = ?", assessmentType).
		First(&template).Error
	return &template, err
}

func (r *TemplateRepository) FindByID(id string) (*model.QuestionnaireTemplate, error) {
	var template model.QuestionnaireTemplate
	err := preloadOrdered(r.DB).Where("id = ?", id).First(&template).Error
	return &template, err
}

// TemplateSummary is a template header with its domain and question counts.
type TemplateSummary struct {
	ID             string `json:"id"`
	AssessmentType string `json:"assessmentType"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	DomainCount    int    `json:"domainCount"`
	QuestionCount  int    `json:"questionCount"`
}

func (r *TemplateRepository) ListSummaries() ([]TemplateSummary, error) {
	var summaries []TemplateSummary
	err := r.DB.Model(&model.QuestionnaireTemplate{}).
		Select(`questionnaire_templates.id,
			questionnaire_templates.assessment_type,
			questionnaire_templates.title,
			questionnaire_templates.description,
			count(distinct questionnaire_domains.id) as domain_count,
			count(questionnaire_questions.id) as question_count`).
		Joins("LEFT JOIN questionnaire_domains ON questionnaire_domains.template_id = questionnaire_templates.id AND questionnaire_domains.deleted_at IS NULL").
		Joins("LEFT JOIN questionnaire_questions ON questionnaire_questions.domain_id = questionnaire_domains.id AND questionnaire_questions.deleted_at IS NULL").
		Group("questionnaire_templates.id").
		Order("questionnaire_templates.assessment_type asc").
		Scan(&summaries).Error
	return summaries, err
}

func (r *TemplateRepository) FindQuestionByID(id string) (*model.QuestionnaireQuestion, error) {
	var question model.QuestionnaireQuestion
	err := r.DB.Where("id = ?", id).First(&question).Error
	return &question, err
}
