package service

import (
	"math"
	"strings"
)

// VBBaseUnits is the width of a VB mapping bar. Every question maps onto
// four unit cells; 2-point scales are stretched to fit.
const VBBaseUnits = 4

const (
	vbFilledChar = "X"
	vbEmptyChar  = "_"
)

// VBMappingResult describes how one question's score fills a VB bar.
type VBMappingResult struct {
	Question      string  `json:"question"`
	Score         float64 `json:"score"`
	Max           int     `json:"max"`
	Normalized    float64 `json:"normalized"`
	Threshold     float64 `json:"threshold"`
	FilledUnits   []int   `json:"filledUnits"`
	FilledMap     [4]bool `json:"filledMap"`
	PairedFillMap [2]bool `json:"pairedFillMap"`
}

// VBExportRow is the reduced form used by the export surface and the
// report renderer, which re-derives the full mapping from it.
type VBExportRow struct {
	Question   string  `json:"question"`
	Score      float64 `json:"score"`
	Max        int     `json:"max"`
	Normalized float64 `json:"normalized"`
}

// ResolveVBMax maps a question's raw maximum onto a VB scale. Only a
// literal 2 keeps the narrow scale; every other value, including
// malformed ones, is treated as the standard 4-point scale.
func ResolveVBMax(rawMax int) int {
	if rawMax == 2 {
		return 2
	}
	return VBBaseUnits
}

// ClampVBScore forces a raw score into [0, max]. Non-finite values
// collapse to 0.
func ClampVBScore(raw float64, max int) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	if raw < 0 {
		return 0
	}
	if raw > float64(max) {
		return float64(max)
	}
	return raw
}

// NormalizeVBScore stretches a 2-point score onto the 4-unit bar.
func NormalizeVBScore(score float64, max int) float64 {
	if max == 2 {
		return score * 2
	}
	return score
}

// MapQuestionToVB converts one scored question into its VB bar. Cells
// fill from the right: a normalized score of n lights the last n of the
// four unit cells.
func MapQuestionToVB(question string, rawScore float64, rawMax int) VBMappingResult {
	max := ResolveVBMax(rawMax)
	score := ClampVBScore(rawScore, max)
	normalized := NormalizeVBScore(score, max)

	threshold := float64(VBBaseUnits) - normalized + 1

	var filled [4]bool
	filledUnits := []int{}
	for cellIndex := 1; cellIndex <= VBBaseUnits; cellIndex++ {
		if float64(cellIndex) >= threshold {
			filled[cellIndex-1] = true
			filledUnits = append(filledUnits, cellIndex)
		}
	}

	paired := [2]bool{
		filled[0] || filled[1],
		filled[2] || filled[3],
	}

	return VBMappingResult{
		Question:      question,
		Score:         score,
		Max:           max,
		Normalized:    normalized,
		Threshold:     threshold,
		FilledUnits:   filledUnits,
		FilledMap:     filled,
		PairedFillMap: paired,
	}
}

// RenderVBBar renders a fill map as a compact text bar, e.g. "_ _ X X".
func RenderVBBar(filledMap [4]bool) string {
	cells := make([]string, VBBaseUnits)
	for i, f := range filledMap {
		if f {
			cells[i] = vbFilledChar
		} else {
			cells[i] = vbEmptyChar
		}
	}
	return strings.Join(cells, " ")
}

// ToVBExportRows reduces full mapping results to the export shape.
func ToVBExportRows(results []VBMappingResult) []VBExportRow {
	rows := make([]VBExportRow, len(results))
	for i, r := range results {
		rows[i] = VBExportRow{
			Question:   r.Question,
			Score:      r.Score,
			Max:        r.Max,
			Normalized: r.Normalized,
		}
	}
	return rows
}
