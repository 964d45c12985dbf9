package service

import (
	"fmt"
	"regexp"

	"github.com/xuri/excelize/v2"
)

// Red report theme.
const (
	colorTitleRed      = "DC143C"
	colorSectionRed    = "C13018"
	colorHighlightRed  = "FADBD8"
	colorStripeRed     = "FFF5F5"
	colorWhite         = "FFFFFF"
	colorMastered      = "90EE90"
	colorProficient    = "FFEB3B"
	colorDeveloping    = "FFA726"
	colorEmerging      = "FFCDD2"
	colorVBFilled      = "C95A5A"
)

var nonAlphanumericRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// ReportService renders a grading result into the four-sheet assessment
// workbook.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// ReportFilename builds the download name for a grading result. The
// format is fixed; downstream tooling parses it.
func ReportFilename(result *VBGradingResult) string {
	assessmentType := nonAlphanumericRe.ReplaceAllString(result.AssessmentType, "_")
	return fmt.Sprintf("%s_%s_%s.xlsx",
		assessmentType, result.ChildID, result.CompletedAt.Format("2006-01-02"))
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "top", Style: 1},
		{Type: "left", Style: 1},
		{Type: "bottom", Style: 1},
		{Type: "right", Style: 1},
	}
}

func mediumBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "top", Style: 2},
		{Type: "left", Style: 2},
		{Type: "bottom", Style: 2},
		{Type: "right", Style: 2},
	}
}

func proficiencyColor(proficiency string) string {
	switch proficiency {
	case ProficiencyMastered:
		return colorMastered
	case ProficiencyProficient:
		return colorProficient
	case ProficiencyDeveloping:
		return colorDeveloping
	default:
		return colorEmerging
	}
}

// BuildReport renders the workbook. The input is read-only; sheet order
// is Summary, Domain Scores, Detailed Responses, VB Mapping.
func (s *ReportService) BuildReport(result *VBGradingResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := s.buildSummarySheet(f, result); err != nil {
		return nil, err
	}
	if err := s.buildDomainScoresSheet(f, result); err != nil {
		return nil, err
	}
	if err := s.buildDetailedResponsesSheet(f, result); err != nil {
		return nil, err
	}
	if err := s.buildVBMappingSheet(f, result); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (s *ReportService) buildSummarySheet(f *excelize.File, result *VBGradingResult) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 18, Bold: true, Color: colorTitleRed},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Bold: true, Color: colorSectionRed},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return err
	}
	highlightLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Fill:      solidFill(colorHighlightRed),
	})
	if err != nil {
		return err
	}
	highlightValueStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Fill:      solidFill(colorHighlightRed),
	})
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "ABLLS Assessment Report")
	f.MergeCell(sheet, "A1", "B1")
	f.SetCellStyle(sheet, "A1", "B1", titleStyle)
	f.SetRowHeight(sheet, 1, 30)

	childName := result.ChildName
	if childName == "" {
		childName = "N/A"
	}

	f.SetCellValue(sheet, "A3", "Child Information")
	f.MergeCell(sheet, "A3", "B3")
	f.SetCellStyle(sheet, "A3", "B3", sectionStyle)

	identity := [][2]interface{}{
		{"Child Name:", childName},
		{"Child ID:", result.ChildID},
		{"Assessment Type:", result.AssessmentType},
		{"Completed Date:", result.CompletedAt.Format("1/2/2006")},
		{"Session ID:", result.SessionID},
	}
	for i, pair := range identity {
		rowNum := 4 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), pair[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), pair[1])
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), labelStyle)
		f.SetRowHeight(sheet, rowNum, 20)
	}

	f.SetCellValue(sheet, "A10", "Overall Score Summary")
	f.MergeCell(sheet, "A10", "B10")
	f.SetCellStyle(sheet, "A10", "B10", sectionStyle)

	overall := [][2]interface{}{
		{"Total Raw Score:", fmt.Sprintf("%v / %d", formatScore(result.OverallScore), result.OverallMaxPossible)},
		{"Overall Percentage:", fmt.Sprintf("%v%%", formatScore(result.OverallPercentage))},
		{"Overall Proficiency:", result.OverallProficiency},
	}
	for i, pair := range overall {
		rowNum := 11 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), pair[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), pair[1])
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), highlightLabelStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("B%d", rowNum), highlightValueStyle)
		f.SetRowHeight(sheet, rowNum, 20)
	}

	return nil
}

func (s *ReportService) buildDomainScoresSheet(f *excelize.File, result *VBGradingResult) error {
	const sheet = "Domain Scores"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	widths := []float64{12, 40, 15, 12, 15, 12, 18}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: colorWhite},
		Fill:      solidFill(colorTitleRed),
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border:    mediumBorders(),
	})
	if err != nil {
		return err
	}

	headers := []string{"Domain", "Domain Name", "Question Count", "Raw Score", "Max Possible", "Percentage", "Proficiency Level"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	f.SetCellStyle(sheet, "A1", "G1", headerStyle)
	f.SetRowHeight(sheet, 1, 25)

	for i, ds := range result.DomainScores {
		rowNum := i + 2

		rowFill := excelize.Fill{}
		if i%2 == 0 {
			rowFill = solidFill(colorStripeRed)
		}
		rowStyle, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Vertical: "center"},
			Fill:      rowFill,
			Border:    thinBorders(),
		})
		if err != nil {
			return err
		}
		proficiencyStyle, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Vertical: "center"},
			Fill:      solidFill(proficiencyColor(ds.Proficiency)),
			Border:    thinBorders(),
		})
		if err != nil {
			return err
		}

		row := []interface{}{
			ds.Domain,
			ds.DomainName,
			ds.QuestionCount,
			ds.RawScore,
			ds.MaxPossible,
			fmt.Sprintf("%v%%", formatScore(ds.Percentage)),
			ds.Proficiency,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return err
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("F%d", rowNum), rowStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("G%d", rowNum), fmt.Sprintf("G%d", rowNum), proficiencyStyle)
		f.SetRowHeight(sheet, rowNum, 20)
	}

	return nil
}

func (s *ReportService) buildDetailedResponsesSheet(f *excelize.File, result *VBGradingResult) error {
	const sheet = "Detailed Responses"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	widths := []float64{10, 12, 35, 50, 40, 10, 12, 16, 18}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: colorWhite},
		Fill:      solidFill(colorTitleRed),
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center", WrapText: true},
		Border:    mediumBorders(),
	})
	if err != nil {
		return err
	}

	headers := []string{"Domain", "Skill Code", "Task Name", "Question", "Selected Answer", "Score", "Max Score", "Normalized (4u)", "VB Bar"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	f.SetCellStyle(sheet, "A1", "I1", headerStyle)
	f.SetRowHeight(sheet, 1, 25)

	// Rows shade by domain group, not by row parity.
	domainColors := []string{colorStripeRed, colorWhite}
	rowNum := 1
	for di, ds := range result.DomainScores {
		fillColor := domainColors[di%len(domainColors)]
		rowStyle, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
			Fill:      solidFill(fillColor),
			Border:    thinBorders(),
		})
		if err != nil {
			return err
		}

		for _, q := range ds.Questions {
			rowNum++
			row := []interface{}{
				ds.Domain,
				q.SkillCode,
				q.TaskName,
				q.QuestionText,
				q.SelectedAnswer,
				q.NumericScore,
				q.MaxScore,
				q.NormalizedScore,
				q.VBBar,
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
				return err
			}
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("I%d", rowNum), rowStyle)
			f.SetRowHeight(sheet, rowNum, 30)
		}
	}

	return nil
}

func (s *ReportService) buildVBMappingSheet(f *excelize.File, result *VBGradingResult) error {
	const sheet = "VB Mapping"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	widths := []float64{14, 10, 8, 12, 8, 8, 8, 8, 18}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: colorWhite},
		Fill:      solidFill(colorTitleRed),
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border:    mediumBorders(),
	})
	if err != nil {
		return err
	}

	headers := []string{"Question", "Score", "Max", "Normalized", "Unit 1", "Unit 2", "Unit 3", "Unit 4", "Bar"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	f.SetCellStyle(sheet, "A1", "I1", headerStyle)
	f.SetRowHeight(sheet, 1, 24)

	baseStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return err
	}
	filledStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Fill:      solidFill(colorVBFilled),
		Border:    thinBorders(),
	})
	if err != nil {
		return err
	}
	emptyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Fill:      solidFill(colorWhite),
		Border:    thinBorders(),
	})
	if err != nil {
		return err
	}

	for i, vbRow := range result.VBExport {
		rowNum := i + 2
		// The sheet re-derives the fill pattern from the export row, so
		// the flat export alone is enough to reproduce it.
		mapped := MapQuestionToVB(vbRow.Question, vbRow.Score, vbRow.Max)

		row := []interface{}{
			vbRow.Question,
			vbRow.Score,
			vbRow.Max,
			vbRow.Normalized,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return err
		}
		f.SetCellValue(sheet, fmt.Sprintf("I%d", rowNum), RenderVBBar(mapped.FilledMap))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("I%d", rowNum), baseStyle)
		f.SetRowHeight(sheet, rowNum, 20)

		if vbRow.Max == 2 {
			f.MergeCell(sheet, fmt.Sprintf("E%d", rowNum), fmt.Sprintf("F%d", rowNum))
			f.MergeCell(sheet, fmt.Sprintf("G%d", rowNum), fmt.Sprintf("H%d", rowNum))

			s.setFillStyle(f, sheet, fmt.Sprintf("E%d", rowNum), mapped.PairedFillMap[0], filledStyle, emptyStyle)
			s.setFillStyle(f, sheet, fmt.Sprintf("G%d", rowNum), mapped.PairedFillMap[1], filledStyle, emptyStyle)
		} else {
			for u := 0; u < VBBaseUnits; u++ {
				col, _ := excelize.ColumnNumberToName(5 + u)
				s.setFillStyle(f, sheet, fmt.Sprintf("%s%d", col, rowNum), mapped.FilledMap[u], filledStyle, emptyStyle)
			}
		}
	}

	return nil
}

func (s *ReportService) setFillStyle(f *excelize.File, sheet, cell string, filled bool, filledStyle, emptyStyle int) {
	style := emptyStyle
	if filled {
		style = filledStyle
	}
	f.SetCellStyle(sheet, cell, cell, style)
}

// formatScore prints whole numbers without a trailing ".0", matching the
// way scores appear in the JSON surface.
func formatScore(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
