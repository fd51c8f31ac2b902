package config

import (
	"path/filepath"
	"testing"

	"research-brief-api/pkg/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIntentBanks(t *testing.T) {
	banks, err := LoadIntentBanks(filepath.Join("testdata", "banks.yaml"))
	require.NoError(t, err)

	defaults := intent.DefaultBanks()

	assert.Equal(t, intent.KeywordSet{"why", "story"}, banks.QualitativeKeywords)
	assert.Equal(t, defaults.QuantitativeKeywords, banks.QuantitativeKeywords)
	assert.Equal(t, "How many orders shipped late?", banks.Suggestions[intent.Quantitative][0])
	assert.Equal(t, defaults.Suggestions[intent.Qualitative], banks.Suggestions[intent.Qualitative])
	assert.Equal(t, []string{"Who is the audience?", "Which region?", "Which timeframe?"}, banks.GenericFollowUps)
	assert.Equal(t, defaults.FollowUps[intent.Mixed], banks.FollowUps[intent.Mixed])

	c := intent.NewClassifier(banks)
	assert.Equal(t, intent.Qualitative, c.DetectIntent("tell me the story"))
}

func TestLoadIntentBanksMissingFile(t *testing.T) {
	_, err := LoadIntentBanks(filepath.Join("testdata", "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestParseIntentBanksRejectsBlankKeyword(t *testing.T) {
	_, err := ParseIntentBanks([]byte("keywords:\n  quantitative:\n    - \"count\"\n    - \"  \"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keywords.quantitative[1]")
}

func TestParseIntentBanksInvalidYAML(t *testing.T) {
	_, err := ParseIntentBanks([]byte("keywords: [unclosed"))
	assert.Error(t, err)
}

func TestParseIntentBanksFollowUpOverride(t *testing.T) {
	banks, err := ParseIntentBanks([]byte("follow_ups:\n  mixed:\n    - a\n    - b\n    - c\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, banks.FollowUps[intent.Mixed])
}
