package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedTemplates_Shape(t *testing.T) {
	require.Len(t, seedTemplates, 4)

	types := make(map[string]seedTemplate, len(seedTemplates))
	for _, st := range seedTemplates {
		types[st.AssessmentType] = st
	}
	require.Contains(t, types, "ABLLS-R")
	require.Contains(t, types, "AFLLS")
	require.Contains(t, types, "DAYC-2")
	require.Contains(t, types, "Behavior-Therapy")

	assert.Len(t, types["ABLLS-R"].Domains, 4)
	assert.Len(t, types["AFLLS"].Domains, 6)
	assert.Len(t, types["DAYC-2"].Domains, 5)
	assert.Len(t, types["Behavior-Therapy"].Domains, 4)
}

func TestSeedTemplates_DomainCodesDistinctPerTemplate(t *testing.T) {
	for _, st := range seedTemplates {
		seen := make(map[string]string)
		for _, d := range st.Domains {
			require.NotEmpty(t, d.Code, "%s / %s has no code", st.AssessmentType, d.Name)
			prior, dup := seen[d.Code]
			assert.False(t, dup, "%s: code %q used by both %q and %q", st.AssessmentType, d.Code, prior, d.Name)
			seen[d.Code] = d.Name
		}
	}
}

func TestSeedTemplates_EveryQuestionScoresFromZero(t *testing.T) {
	// All seeded options carry a leading rank digit, so the scorer's
	// leading-digit extraction always applies.
	for _, st := range seedTemplates {
		for _, d := range st.Domains {
			for _, q := range d.Questions {
				require.NotEmpty(t, q.Options, "%s / %s: %q has no options", st.AssessmentType, d.Name, q.Text)
				for _, opt := range q.Options {
					assert.Regexp(t, `^\d+ - `, opt)
				}
			}
		}
	}
}

func TestSeedTemplates_OptionSets(t *testing.T) {
	assert.Len(t, abaScoreOptions, 5)
	assert.Len(t, dayc2ScoreOptions, 4)
	assert.Len(t, behaviorScoreOptions, 5)

	// DAYC-2 uses the narrower developmental scale.
	for _, st := range seedTemplates {
		if st.AssessmentType != "DAYC-2" {
			continue
		}
		for _, d := range st.Domains {
			for _, q := range d.Questions {
				assert.Len(t, q.Options, 4)
			}
		}
	}
}
