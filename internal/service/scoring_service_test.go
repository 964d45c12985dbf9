package service

import (
	"aba_assessment_backend/internal/model"
	"aba_assessment_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSessionStore struct {
	sessions map[string]*model.QuestionnaireSession
}

func (f *fakeSessionStore) FindByIDWithResponses(id string) (*model.QuestionnaireSession, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTemplateStore struct {
	templates map[string]*model.QuestionnaireTemplate
}

func (f *fakeTemplateStore) FindByType(assessmentType string) (*model.QuestionnaireTemplate, error) {
	if t, ok := f.templates[assessmentType]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeChildStore struct {
	children map[string]*model.Child
}

func (f *fakeChildStore) FindByID(id string) (*model.Child, error) {
	if c, ok := f.children[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func question(id, skillCode string, options []string, scoreType string) model.QuestionnaireQuestion {
	q := model.QuestionnaireQuestion{
		SkillCode:    skillCode,
		QuestionText: "Question " + id,
		ResponseType: "dropdown",
		Options:      model.StringArray(options),
		ScoreType:    scoreType,
	}
	q.ID = id
	return q
}

var fivePointOptions = []string{
	"0 - Not observed",
	"1 - Prompted",
	"2 - Emerging / Prompted",
	"3 - Inconsistent",
	"4 - Independent",
}

func completedSession(id, assessmentType, childID string, answers map[string]string) *model.QuestionnaireSession {
	now := time.Now()
	s := &model.QuestionnaireSession{
		AssessmentType: assessmentType,
		ChildID:        childID,
		Status:         model.SessionCompleted,
		CompletedAt:    &now,
	}
	s.ID = id
	for qid, answer := range answers {
		s.Responses = append(s.Responses, model.QuestionnaireResponse{
			SessionID:  id,
			QuestionID: qid,
			Answer:     answer,
		})
	}
	return s
}

func newTestScoring(session *model.QuestionnaireSession, template *model.QuestionnaireTemplate, child *model.Child) *ScoringService {
	sessions := &fakeSessionStore{sessions: map[string]*model.QuestionnaireSession{}}
	if session != nil {
		sessions.sessions[session.ID] = session
	}
	templates := &fakeTemplateStore{templates: map[string]*model.QuestionnaireTemplate{}}
	if template != nil {
		templates.templates[template.AssessmentType] = template
	}
	children := &fakeChildStore{children: map[string]*model.Child{}}
	if child != nil {
		children.children[child.ID] = child
	}
	return NewScoringService(sessions, templates, children)
}

func TestCalculateScoring_SessionNotFound(t *testing.T) {
	svc := newTestScoring(nil, nil, nil)

	_, err := svc.CalculateScoring("missing")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestCalculateScoring_SessionNotCompleted(t *testing.T) {
	session := completedSession("s1", "ABLLS-R", "c1", nil)
	session.Status = model.SessionInProgress
	svc := newTestScoring(session, nil, nil)

	_, err := svc.CalculateScoring("s1")
	assert.ErrorIs(t, err, util.ErrSessionNotCompleted)
}

func TestCalculateScoring_TemplateNotFound(t *testing.T) {
	session := completedSession("s1", "ABLLS-R", "c1", nil)
	svc := newTestScoring(session, nil, nil)

	_, err := svc.CalculateScoring("s1")
	assert.ErrorIs(t, err, util.ErrTemplateNotFound)
}

func TestCalculateScoring_DomainAggregation(t *testing.T) {
	template := &model.QuestionnaireTemplate{
		AssessmentType: "ABLLS-R",
		Domains: []model.QuestionnaireDomain{
			{
				Name: "Receptive Language",
				Code: "C",
				Questions: []model.QuestionnaireQuestion{
					question("q1", "C1", fivePointOptions, ""),
					question("q2", "C2", fivePointOptions, ""),
				},
			},
		},
	}
	session := completedSession("s1", "ABLLS-R", "c1", map[string]string{
		"q1": "2 - Emerging / Prompted",
		"q2": "3 - Inconsistent",
	})
	svc := newTestScoring(session, template, &model.Child{UUIDBase: model.UUIDBase{ID: "c1"}, Name: "Jamie"})

	result, err := svc.CalculateScoring("s1")
	require.NoError(t, err)

	require.Len(t, result.DomainScores, 1)
	ds := result.DomainScores[0]
	assert.Equal(t, "C", ds.Domain)
	assert.Equal(t, "Receptive Language", ds.DomainName)
	assert.Equal(t, 5.0, ds.RawScore)
	assert.Equal(t, 8, ds.MaxPossible)
	assert.Equal(t, 62.5, ds.Percentage)
	assert.Equal(t, ProficiencyProficient, ds.Proficiency)
	assert.Equal(t, 2, ds.QuestionCount)

	assert.Equal(t, 5.0, result.OverallScore)
	assert.Equal(t, 8, result.OverallMaxPossible)
	assert.Equal(t, 62.5, result.OverallPercentage)
	assert.Equal(t, ProficiencyProficient, result.OverallProficiency)
	assert.Equal(t, "Jamie", result.ChildName)
}

func TestCalculateScoring_UnansweredAndMalformedAnswers(t *testing.T) {
	template := &model.QuestionnaireTemplate{
		AssessmentType: "ABLLS-R",
		Domains: []model.QuestionnaireDomain{
			{
				Name: "Motor Imitation",
				Code: "D",
				Questions: []model.QuestionnaireQuestion{
					question("q1", "D1", fivePointOptions, ""),
					question("q2", "D2", fivePointOptions, ""),
					question("q3", "D3", fivePointOptions, ""),
				},
			},
		},
	}
	session := completedSession("s1", "ABLLS-R", "c1", map[string]string{
		"q1": "no leading digits",
		"q2": "",
	})
	svc := newTestScoring(session, template, nil)

	result, err := svc.CalculateScoring("s1")
	require.NoError(t, err)

	qs := result.DomainScores[0].Questions
	require.Len(t, qs, 3)
	assert.Equal(t, "no leading digits", qs[0].SelectedAnswer)
	assert.Equal(t, 0.0, qs[0].NumericScore)
	assert.Equal(t, "", qs[1].SelectedAnswer)
	assert.Equal(t, 0.0, qs[1].NumericScore)
	assert.Equal(t, "Not answered", qs[2].SelectedAnswer)
	assert.Equal(t, 0.0, qs[2].NumericScore)

	assert.Equal(t, 0.0, result.DomainScores[0].RawScore)
	assert.Equal(t, ProficiencyEmerging, result.DomainScores[0].Proficiency)
}

func TestCalculateScoring_MaxScoreResolution(t *testing.T) {
	template := &model.QuestionnaireTemplate{
		AssessmentType: "AFLLS",
		Domains: []model.QuestionnaireDomain{
			{
				Name: "School Skills",
				Code: "SC",
				Questions: []model.QuestionnaireQuestion{
					// Explicit scoreType wins over options length.
					question("q1", "S1", []string{"a", "b", "c"}, "0-4"),
					// Options length minus one.
					question("q2", "S2", fivePointOptions, ""),
					// No hints at all defaults to 4.
					question("q3", "S3", nil, ""),
					// Narrow 2-point scale doubles when normalized.
					question("q4", "S4", nil, "0-2"),
				},
			},
		},
	}
	session := completedSession("s1", "AFLLS", "c1", map[string]string{
		"q1": "4 - Independent",
		"q2": "4 - Independent",
		"q3": "4 - Independent",
		"q4": "1 - Sometimes",
	})
	svc := newTestScoring(session, template, nil)

	result, err := svc.CalculateScoring("s1")
	require.NoError(t, err)

	qs := result.DomainScores[0].Questions
	assert.Equal(t, 4, qs[0].MaxScore)
	assert.Equal(t, 4, qs[1].MaxScore)
	assert.Equal(t, 4, qs[2].MaxScore)
	assert.Equal(t, 2, qs[3].MaxScore)
	assert.Equal(t, 2.0, qs[3].NormalizedScore)
	assert.Equal(t, "_ _ X X", qs[3].VBBar)

	assert.Equal(t, 14, result.OverallMaxPossible)
}

func TestCalculateScoring_AnswersClampedToMax(t *testing.T) {
	template := &model.QuestionnaireTemplate{
		AssessmentType: "ABLLS-R",
		Domains: []model.QuestionnaireDomain{
			{
				Name: "Visual Performance",
				Code: "B",
				Questions: []model.QuestionnaireQuestion{
					question("q1", "B1", nil, "0-2"),
				},
			},
		},
	}
	session := completedSession("s1", "ABLLS-R", "c1", map[string]string{
		"q1": "9 - Out of range",
	})
	svc := newTestScoring(session, template, nil)

	result, err := svc.CalculateScoring("s1")
	require.NoError(t, err)

	q := result.DomainScores[0].Questions[0]
	assert.Equal(t, 2.0, q.NumericScore)
	assert.Equal(t, 2, result.DomainScores[0].MaxPossible)
	assert.Equal(t, 100.0, result.DomainScores[0].Percentage)
	assert.Equal(t, ProficiencyMastered, result.DomainScores[0].Proficiency)
}

func TestCalculateScoring_DomainCodeFallback(t *testing.T) {
	template := &model.QuestionnaireTemplate{
		AssessmentType: "ABLLS-R",
		Domains: []model.QuestionnaireDomain{
			{
				Name:      "Receptive Language",
				Questions: []model.QuestionnaireQuestion{question("q1", "", fivePointOptions, "")},
			},
			{
				Name:      "Requesting",
				Questions: []model.QuestionnaireQuestion{question("q2", "", fivePointOptions, "")},
			},
		},
	}
	session := completedSession("s1", "ABLLS-R", "c1", nil)
	svc := newTestScoring(session, template, nil)

	result, err := svc.CalculateScoring("s1")
	require.NoError(t, err)

	// Both fall back to the first letter; collisions are logged but the
	// codes are never rewritten.
	assert.Equal(t, "R", result.DomainScores[0].Domain)
	assert.Equal(t, "R", result.DomainScores[1].Domain)
}

func TestCalculateScoring_VBExportUsesSkillCodeOrQuestionID(t *testing.T) {
	template := &model.QuestionnaireTemplate{
		AssessmentType: "ABLLS-R",
		Domains: []model.QuestionnaireDomain{
			{
				Name: "Cooperation",
				Code: "A",
				Questions: []model.QuestionnaireQuestion{
					question("q1", "A3", fivePointOptions, ""),
					question("q2", "", fivePointOptions, ""),
				},
			},
		},
	}
	session := completedSession("s1", "ABLLS-R", "c1", map[string]string{
		"q1": "3 - Inconsistent",
		"q2": "4 - Independent",
	})
	svc := newTestScoring(session, template, nil)

	result, err := svc.CalculateScoring("s1")
	require.NoError(t, err)

	require.Len(t, result.VBExport, 2)
	assert.Equal(t, "A3", result.VBExport[0].Question)
	assert.Equal(t, "q2", result.VBExport[1].Question)
	assert.Equal(t, 3.0, result.VBExport[0].Score)
	assert.Equal(t, 4.0, result.VBExport[1].Score)
}

func TestCalculateScoring_Deterministic(t *testing.T) {
	template := &model.QuestionnaireTemplate{
		AssessmentType: "ABLLS-R",
		Domains: []model.QuestionnaireDomain{
			{
				Name: "Cooperation",
				Code: "A",
				Questions: []model.QuestionnaireQuestion{
					question("q1", "A1", fivePointOptions, ""),
					question("q2", "A2", fivePointOptions, ""),
				},
			},
		},
	}
	session := completedSession("s1", "ABLLS-R", "c1", map[string]string{
		"q1": "3 - Inconsistent",
		"q2": "4 - Independent",
	})
	svc := newTestScoring(session, template, nil)

	first, err := svc.CalculateScoring("s1")
	require.NoError(t, err)
	second, err := svc.CalculateScoring("s1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 87.5, first.OverallPercentage)
	assert.Equal(t, ProficiencyMastered, first.OverallProficiency)
}

func TestGetProficiencyLevel(t *testing.T) {
	tests := []struct {
		percentage float64
		want       string
	}{
		{0, ProficiencyEmerging},
		{25.99, ProficiencyEmerging},
		{26, ProficiencyDeveloping},
		{60.99, ProficiencyDeveloping},
		{61, ProficiencyProficient},
		{85.99, ProficiencyProficient},
		{86, ProficiencyMastered},
		{100, ProficiencyMastered},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetProficiencyLevel(tt.percentage), "percentage=%v", tt.percentage)
	}
}

func TestExtractNumericScore(t *testing.T) {
	tests := []struct {
		answer string
		want   float64
	}{
		{"2 - Emerging / Prompted", 2},
		{"0 - Not observed", 0},
		{"14 whatever", 14},
		{"Not answered", 0},
		{"", 0},
		{"- 3 leading dash", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractNumericScore(tt.answer), "answer=%q", tt.answer)
	}
}
