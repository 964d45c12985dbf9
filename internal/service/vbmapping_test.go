package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveVBMax(t *testing.T) {
	tests := []struct {
		rawMax int
		want   int
	}{
		{2, 2},
		{4, 4},
		{0, 4},
		{-1, 4},
		{3, 4},
		{5, 4},
		{100, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveVBMax(tt.rawMax), "rawMax=%d", tt.rawMax)
	}
}

func TestClampVBScore(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		max  int
		want float64
	}{
		{"in range", 2, 4, 2},
		{"fractional in range", 2.5, 4, 2.5},
		{"below zero", -3, 4, 0},
		{"above max", 7, 4, 4},
		{"at max", 4, 4, 4},
		{"nan", math.NaN(), 4, 0},
		{"positive inf", math.Inf(1), 4, 0},
		{"negative inf", math.Inf(-1), 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampVBScore(tt.raw, tt.max))
		})
	}
}

func TestClampVBScoreIdempotent(t *testing.T) {
	for _, raw := range []float64{-5, 0, 1.5, 3, 9} {
		once := ClampVBScore(raw, 4)
		assert.Equal(t, once, ClampVBScore(once, 4))
	}
}

func TestMapQuestionToVB_RightAlignment(t *testing.T) {
	tests := []struct {
		score      float64
		max        int
		wantFilled [4]bool
		wantUnits  []int
	}{
		{0, 4, [4]bool{false, false, false, false}, []int{}},
		{1, 4, [4]bool{false, false, false, true}, []int{4}},
		{2, 4, [4]bool{false, false, true, true}, []int{3, 4}},
		{3, 4, [4]bool{false, true, true, true}, []int{2, 3, 4}},
		{4, 4, [4]bool{true, true, true, true}, []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got := MapQuestionToVB("Q1", tt.score, tt.max)
		assert.Equal(t, tt.wantFilled, got.FilledMap, "score=%v", tt.score)
		assert.Equal(t, tt.wantUnits, got.FilledUnits, "score=%v", tt.score)
	}
}

func TestMapQuestionToVB_TwoPointScale(t *testing.T) {
	got := MapQuestionToVB("Q1", 1, 2)
	assert.Equal(t, 2, got.Max)
	assert.Equal(t, 2.0, got.Normalized)
	assert.Equal(t, [4]bool{false, false, true, true}, got.FilledMap)
	assert.Equal(t, [2]bool{false, true}, got.PairedFillMap)

	got = MapQuestionToVB("Q1", 2, 2)
	assert.Equal(t, 4.0, got.Normalized)
	assert.Equal(t, [4]bool{true, true, true, true}, got.FilledMap)
	assert.Equal(t, [2]bool{true, true}, got.PairedFillMap)

	got = MapQuestionToVB("Q1", 0, 2)
	assert.Equal(t, [4]bool{false, false, false, false}, got.FilledMap)
	assert.Equal(t, [2]bool{false, false}, got.PairedFillMap)
}

func TestMapQuestionToVB_ClampsOutOfRange(t *testing.T) {
	got := MapQuestionToVB("Q1", 9, 4)
	assert.Equal(t, 4.0, got.Score)
	assert.Equal(t, [4]bool{true, true, true, true}, got.FilledMap)

	got = MapQuestionToVB("Q1", -2, 4)
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, [4]bool{false, false, false, false}, got.FilledMap)

	got = MapQuestionToVB("Q1", math.NaN(), 4)
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, []int{}, got.FilledUnits)
}

func TestMapQuestionToVB_NonStandardMaxTreatedAsFour(t *testing.T) {
	// A 5-point raw maximum still maps onto the standard 4-unit bar.
	got := MapQuestionToVB("Q1", 5, 5)
	assert.Equal(t, 4, got.Max)
	assert.Equal(t, 4.0, got.Score)
	assert.Equal(t, [4]bool{true, true, true, true}, got.FilledMap)
}

func TestMapQuestionToVB_Monotonic(t *testing.T) {
	prev := -1
	for score := 0; score <= 4; score++ {
		got := MapQuestionToVB("Q1", float64(score), 4)
		assert.Greater(t, len(got.FilledUnits), prev, "filled count must grow with score")
		prev = len(got.FilledUnits)
	}
}

func TestMapQuestionToVB_PairedFillIsOrOfCells(t *testing.T) {
	for score := 0; score <= 4; score++ {
		got := MapQuestionToVB("Q1", float64(score), 4)
		assert.Equal(t, got.FilledMap[0] || got.FilledMap[1], got.PairedFillMap[0])
		assert.Equal(t, got.FilledMap[2] || got.FilledMap[3], got.PairedFillMap[1])
	}
}

func TestRenderVBBar(t *testing.T) {
	assert.Equal(t, "_ _ _ _", RenderVBBar([4]bool{}))
	assert.Equal(t, "_ _ X X", RenderVBBar([4]bool{false, false, true, true}))
	assert.Equal(t, "X X X X", RenderVBBar([4]bool{true, true, true, true}))
	assert.Equal(t, "_ X _ X", RenderVBBar([4]bool{false, true, false, true}))
}

func TestToVBExportRows(t *testing.T) {
	results := []VBMappingResult{
		MapQuestionToVB("A1", 2, 4),
		MapQuestionToVB("B3", 1, 2),
	}
	rows := ToVBExportRows(results)

	assert.Len(t, rows, 2)
	assert.Equal(t, VBExportRow{Question: "A1", Score: 2, Max: 4, Normalized: 2}, rows[0])
	assert.Equal(t, VBExportRow{Question: "B3", Score: 1, Max: 2, Normalized: 2}, rows[1])
}
