package service

import (
	"aba_assessment_backend/internal/model"
	"aba_assessment_backend/internal/util"
	"aba_assessment_backend/pkg/logger"
	"errors"
	"math"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DomainScore aggregates one domain's questions.
type DomainScore struct {
	Domain        string             `json:"domain"`
	DomainName    string             `json:"domainName"`
	RawScore      float64            `json:"rawScore"`
	MaxPossible   int                `json:"maxPossible"`
	Percentage    float64            `json:"percentage"`
	Proficiency   string             `json:"proficiency"`
	QuestionCount int                `json:"questionCount"`
	Questions     []QuestionResponse `json:"questions"`
}

// QuestionResponse is the scored detail for a single question.
type QuestionResponse struct {
	QuestionID      string  `json:"questionId"`
	SkillCode       string  `json:"skillCode"`
	TaskName        string  `json:"taskName"`
	QuestionText    string  `json:"questionText"`
	SelectedAnswer  string  `json:"selectedAnswer"`
	NumericScore    float64 `json:"numericScore"`
	MaxScore        int     `json:"maxScore"`
	NormalizedScore float64 `json:"normalizedScore"`
	VBFilledCells   []int   `json:"vbFilledCells"`
	VBBar           string  `json:"vbBar"`
}

// VBGradingResult is the complete scoring output for a completed session.
type VBGradingResult struct {
	SessionID          string        `json:"sessionId"`
	ChildID            string        `json:"childId"`
	ChildName          string        `json:"childName,omitempty"`
	AssessmentType     string        `json:"assessmentType"`
	CompletedAt        time.Time     `json:"completedAt"`
	DomainScores       []DomainScore `json:"domainScores"`
	OverallScore       float64       `json:"overallScore"`
	OverallMaxPossible int           `json:"overallMaxPossible"`
	OverallPercentage  float64       `json:"overallPercentage"`
	OverallProficiency string        `json:"overallProficiency"`
	VBExport           []VBExportRow `json:"vbExport"`
}

// Proficiency bands.
const (
	ProficiencyMastered   = "Mastered"
	ProficiencyProficient = "Proficient"
	ProficiencyDeveloping = "Developing"
	ProficiencyEmerging   = "Emerging"
)

const notAnswered = "Not answered"

var (
	leadingDigitsRe = regexp.MustCompile(`^(\d+)`)
	scoreTypeRe     = regexp.MustCompile(`0-(\d+)`)
)

// sessionStore and templateStore are the narrow repository views the
// scorer needs; the concrete repositories satisfy them.
type sessionStore interface {
	FindByIDWithResponses(id string) (*model.QuestionnaireSession, error)
}

type templateStore interface {
	FindByType(assessmentType string) (*model.QuestionnaireTemplate, error)
}

type childStore interface {
	FindByID(id string) (*model.Child, error)
}

type ScoringService struct {
	Sessions  sessionStore
	Templates templateStore
	Children  childStore
}

func NewScoringService(sessions sessionStore, templates templateStore, children childStore) *ScoringService {
	return &ScoringService{Sessions: sessions, Templates: templates, Children: children}
}

// extractNumericScore pulls the leading digits out of an answer such as
// "2 - Emerging / Prompted". Anything without a leading number scores 0.
func extractNumericScore(answer string) float64 {
	m := leadingDigitsRe.FindStringSubmatch(answer)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return float64(n)
}

// GetProficiencyLevel bands a percentage score.
func GetProficiencyLevel(percentage float64) string {
	switch {
	case percentage >= 86:
		return ProficiencyMastered
	case percentage >= 61:
		return ProficiencyProficient
	case percentage >= 26:
		return ProficiencyDeveloping
	default:
		return ProficiencyEmerging
	}
}

// getMaxScore resolves a question's maximum: an explicit "0-N" scoreType
// wins, then the option count (scores start at 0), then the standard 4.
func getMaxScore(scoreType string, optionsCount int) int {
	if scoreType != "" {
		if m := scoreTypeRe.FindStringSubmatch(scoreType); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	if optionsCount > 0 {
		return optionsCount - 1
	}
	return 4
}

// domainCode prefers the seeded code and falls back to the first letter
// of the domain name. Fallback collisions are logged so seed data can be
// fixed; the first-come code is never overwritten.
func domainCode(domain *model.QuestionnaireDomain, seen map[string]string) string {
	code := domain.Code
	if code == "" && domain.Name != "" {
		code = string([]rune(domain.Name)[0])
		if prior, ok := seen[code]; ok && prior != domain.Name {
			logger.Log.Warn("Ambiguous domain code derived from name",
				zap.String("code", code),
				zap.String("domain", domain.Name),
				zap.String("conflictsWith", prior))
		} else {
			seen[code] = domain.Name
		}
	}
	return code
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateScoring grades a completed session against its template. The
// result is computed fresh on every call and nothing is written back.
func (s *ScoringService) CalculateScoring(sessionID string) (*VBGradingResult, error) {
	session, err := s.Sessions.FindByIDWithResponses(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status != model.SessionCompleted {
		return nil, util.ErrSessionNotCompleted
	}

	template, err := s.Templates.FindByType(session.AssessmentType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}

	responseMap := make(map[string]string, len(session.Responses))
	for _, resp := range session.Responses {
		responseMap[resp.QuestionID] = resp.Answer
	}

	domainScores := make([]DomainScore, 0, len(template.Domains))
	var vbMappings []VBMappingResult
	seenCodes := make(map[string]string)

	for di := range template.Domains {
		domain := &template.Domains[di]

		questionResponses := make([]QuestionResponse, 0, len(domain.Questions))
		var domainRawScore float64
		domainMaxPossible := 0

		for _, question := range domain.Questions {
			answer, answered := responseMap[question.ID]
			maxScore := getMaxScore(question.ScoreType, len(question.Options))

			var rawNumericScore float64
			if answered {
				rawNumericScore = extractNumericScore(answer)
			}
			clampedScore := ClampVBScore(rawNumericScore, maxScore)

			vbKey := question.SkillCode
			if vbKey == "" {
				vbKey = question.ID
			}
			vbMapping := MapQuestionToVB(vbKey, rawNumericScore, maxScore)
			vbMappings = append(vbMappings, vbMapping)

			selectedAnswer := answer
			if !answered {
				selectedAnswer = notAnswered
			}

			questionResponses = append(questionResponses, QuestionResponse{
				QuestionID:      question.ID,
				SkillCode:       question.SkillCode,
				TaskName:        question.TaskName,
				QuestionText:    question.QuestionText,
				SelectedAnswer:  selectedAnswer,
				NumericScore:    clampedScore,
				MaxScore:        maxScore,
				NormalizedScore: vbMapping.Normalized,
				VBFilledCells:   vbMapping.FilledUnits,
				VBBar:           RenderVBBar(vbMapping.FilledMap),
			})

			domainRawScore += clampedScore
			if maxScore > 0 {
				domainMaxPossible += maxScore
			}
		}

		var domainPercentage float64
		if domainMaxPossible > 0 {
			domainPercentage = domainRawScore / float64(domainMaxPossible) * 100
		}

		domainScores = append(domainScores, DomainScore{
			Domain:        domainCode(domain, seenCodes),
			DomainName:    domain.Name,
			RawScore:      domainRawScore,
			MaxPossible:   domainMaxPossible,
			Percentage:    round2(domainPercentage),
			Proficiency:   GetProficiencyLevel(domainPercentage),
			QuestionCount: len(domain.Questions),
			Questions:     questionResponses,
		})
	}

	var overallScore float64
	overallMaxPossible := 0
	for _, ds := range domainScores {
		overallScore += ds.RawScore
		overallMaxPossible += ds.MaxPossible
	}
	var overallPercentage float64
	if overallMaxPossible > 0 {
		overallPercentage = round2(overallScore / float64(overallMaxPossible) * 100)
	}

	completedAt := time.Now()
	if session.CompletedAt != nil {
		completedAt = *session.CompletedAt
	}

	result := &VBGradingResult{
		SessionID:          session.ID,
		ChildID:            session.ChildID,
		AssessmentType:     template.AssessmentType,
		CompletedAt:        completedAt,
		DomainScores:       domainScores,
		OverallScore:       overallScore,
		OverallMaxPossible: overallMaxPossible,
		OverallPercentage:  overallPercentage,
		OverallProficiency: GetProficiencyLevel(overallPercentage),
		VBExport:           ToVBExportRows(vbMappings),
	}

	if s.Children != nil {
		if child, err := s.Children.FindByID(session.ChildID); err == nil {
			result.ChildName = child.Name
		}
	}

	return result, nil
}
