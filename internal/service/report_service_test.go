package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGradingResult() *VBGradingResult {
	completedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	return &VBGradingResult{
		SessionID:      "sess-1",
		ChildID:        "child-1",
		ChildName:      "Jamie",
		AssessmentType: "ABLLS-R",
		CompletedAt:    completedAt,
		DomainScores: []DomainScore{
			{
				Domain:        "A",
				DomainName:    "Cooperation",
				RawScore:      7,
				MaxPossible:   8,
				Percentage:    87.5,
				Proficiency:   ProficiencyMastered,
				QuestionCount: 2,
				Questions: []QuestionResponse{
					{
						QuestionID:      "q1",
						SkillCode:       "A1",
						QuestionText:    "Takes a reinforcer",
						SelectedAnswer:  "3 - Inconsistent",
						NumericScore:    3,
						MaxScore:        4,
						NormalizedScore: 3,
						VBBar:           "_ X X X",
					},
					{
						QuestionID:      "q2",
						SkillCode:       "A2",
						QuestionText:    "Waits for reinforcer",
						SelectedAnswer:  "4 - Independent",
						NumericScore:    4,
						MaxScore:        4,
						NormalizedScore: 4,
						VBBar:           "X X X X",
					},
				},
			},
			{
				Domain:        "B",
				DomainName:    "Visual Performance",
				RawScore:      1,
				MaxPossible:   2,
				Percentage:    50,
				Proficiency:   ProficiencyDeveloping,
				QuestionCount: 1,
				Questions: []QuestionResponse{
					{
						QuestionID:      "q3",
						SkillCode:       "B1",
						QuestionText:    "Matches objects",
						SelectedAnswer:  "1 - Prompted",
						NumericScore:    1,
						MaxScore:        2,
						NormalizedScore: 2,
						VBBar:           "_ _ X X",
					},
				},
			},
		},
		OverallScore:       8,
		OverallMaxPossible: 10,
		OverallPercentage:  80,
		OverallProficiency: ProficiencyProficient,
		VBExport: []VBExportRow{
			{Question: "A1", Score: 3, Max: 4, Normalized: 3},
			{Question: "A2", Score: 4, Max: 4, Normalized: 4},
			{Question: "B1", Score: 1, Max: 2, Normalized: 2},
		},
	}
}

func TestReportFilename(t *testing.T) {
	result := sampleGradingResult()
	assert.Equal(t, "ABLLS_R_child-1_2026-03-14.xlsx", ReportFilename(result))

	result.AssessmentType = "Behavior-Therapy"
	assert.Equal(t, "Behavior_Therapy_child-1_2026-03-14.xlsx", ReportFilename(result))
}

func TestBuildReport_SheetOrder(t *testing.T) {
	svc := NewReportService()
	f, err := svc.BuildReport(sampleGradingResult())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Domain Scores", "Detailed Responses", "VB Mapping"}, f.GetSheetList())
}

func TestBuildReport_SummarySheet(t *testing.T) {
	svc := NewReportService()
	f, err := svc.BuildReport(sampleGradingResult())
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ABLLS Assessment Report", title)

	name, _ := f.GetCellValue("Summary", "B4")
	assert.Equal(t, "Jamie", name)
	childID, _ := f.GetCellValue("Summary", "B5")
	assert.Equal(t, "child-1", childID)
	assessmentType, _ := f.GetCellValue("Summary", "B6")
	assert.Equal(t, "ABLLS-R", assessmentType)
	sessionID, _ := f.GetCellValue("Summary", "B8")
	assert.Equal(t, "sess-1", sessionID)

	rawScore, _ := f.GetCellValue("Summary", "B11")
	assert.Equal(t, "8 / 10", rawScore)
	percentage, _ := f.GetCellValue("Summary", "B12")
	assert.Equal(t, "80%", percentage)
	proficiency, _ := f.GetCellValue("Summary", "B13")
	assert.Equal(t, ProficiencyProficient, proficiency)
}

func TestBuildReport_SummaryFallbackChildName(t *testing.T) {
	result := sampleGradingResult()
	result.ChildName = ""

	svc := NewReportService()
	f, err := svc.BuildReport(result)
	require.NoError(t, err)
	defer f.Close()

	name, _ := f.GetCellValue("Summary", "B4")
	assert.Equal(t, "N/A", name)
}

func TestBuildReport_DomainScoresSheet(t *testing.T) {
	svc := NewReportService()
	f, err := svc.BuildReport(sampleGradingResult())
	require.NoError(t, err)
	defer f.Close()

	header, _ := f.GetCellValue("Domain Scores", "A1")
	assert.Equal(t, "Domain", header)
	proficiencyHeader, _ := f.GetCellValue("Domain Scores", "G1")
	assert.Equal(t, "Proficiency Level", proficiencyHeader)

	domain, _ := f.GetCellValue("Domain Scores", "A2")
	assert.Equal(t, "A", domain)
	domainName, _ := f.GetCellValue("Domain Scores", "B2")
	assert.Equal(t, "Cooperation", domainName)
	percentage, _ := f.GetCellValue("Domain Scores", "F2")
	assert.Equal(t, "87.5%", percentage)
	proficiency, _ := f.GetCellValue("Domain Scores", "G2")
	assert.Equal(t, ProficiencyMastered, proficiency)

	secondDomain, _ := f.GetCellValue("Domain Scores", "A3")
	assert.Equal(t, "B", secondDomain)
	secondProficiency, _ := f.GetCellValue("Domain Scores", "G3")
	assert.Equal(t, ProficiencyDeveloping, secondProficiency)
}

func TestBuildReport_DetailedResponsesSheet(t *testing.T) {
	svc := NewReportService()
	f, err := svc.BuildReport(sampleGradingResult())
	require.NoError(t, err)
	defer f.Close()

	// Rows follow domain-then-question order.
	q1, _ := f.GetCellValue("Detailed Responses", "D2")
	assert.Equal(t, "Takes a reinforcer", q1)
	q2, _ := f.GetCellValue("Detailed Responses", "D3")
	assert.Equal(t, "Waits for reinforcer", q2)
	q3, _ := f.GetCellValue("Detailed Responses", "D4")
	assert.Equal(t, "Matches objects", q3)

	answer, _ := f.GetCellValue("Detailed Responses", "E2")
	assert.Equal(t, "3 - Inconsistent", answer)
	bar, _ := f.GetCellValue("Detailed Responses", "I4")
	assert.Equal(t, "_ _ X X", bar)

	domainOfThird, _ := f.GetCellValue("Detailed Responses", "A4")
	assert.Equal(t, "B", domainOfThird)
}

func TestBuildReport_VBMappingSheet(t *testing.T) {
	svc := NewReportService()
	f, err := svc.BuildReport(sampleGradingResult())
	require.NoError(t, err)
	defer f.Close()

	question, _ := f.GetCellValue("VB Mapping", "A2")
	assert.Equal(t, "A1", question)
	bar, _ := f.GetCellValue("VB Mapping", "I2")
	assert.Equal(t, "_ X X X", bar)

	// The 2-point row merges its unit cells into two 2-column blocks.
	merged, err := f.GetMergeCells("VB Mapping")
	require.NoError(t, err)
	var ranges []string
	for _, m := range merged {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.Contains(t, ranges, "E4:F4")
	assert.Contains(t, ranges, "G4:H4")
}

func TestBuildReport_DoesNotMutateInput(t *testing.T) {
	result := sampleGradingResult()
	want := *result
	wantDomains := make([]DomainScore, len(result.DomainScores))
	copy(wantDomains, result.DomainScores)

	svc := NewReportService()
	f, err := svc.BuildReport(result)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, want.OverallPercentage, result.OverallPercentage)
	assert.Equal(t, wantDomains, result.DomainScores)
}
