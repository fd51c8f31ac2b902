package services

import (
	"context"
	"errors"
	"testing"

	config "research-brief-api/configs"
	"research-brief-api/pkg/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	systemPrompt string
	userPrompt   string
	reply        string
	err          error
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userPrompt string, _ int, _ float32) (string, error) {
	f.systemPrompt = systemPrompt
	f.userPrompt = userPrompt
	return f.reply, f.err
}

func TestAskWithoutClientReturnsMock(t *testing.T) {
	svc := NewAssistantService(nil, "", nil, nil)

	ans, err := svc.Ask(context.Background(), "How many people mention refills?", "", "")
	require.NoError(t, err)

	assert.True(t, ans.Mock)
	assert.Equal(t, intent.Quantitative, ans.Mode)
	assert.Contains(t, ans.Text, "Quantitative brief")
	assert.Equal(t, intent.GenerateFollowUps("", intent.Quantitative, true), ans.FollowUps)
}

func TestAskUsesModeOverride(t *testing.T) {
	svc := NewAssistantService(nil, "", nil, nil)

	ans, err := svc.Ask(context.Background(), "How many people mention refills?", "qualitative", "")
	require.NoError(t, err)
	assert.Equal(t, intent.Qualitative, ans.Mode)

	ans, err = svc.Ask(context.Background(), "How many people mention refills?", "garbage", "")
	require.NoError(t, err)
	assert.Equal(t, intent.Mixed, ans.Mode)
}

func TestAskCallsClientWithModePrompt(t *testing.T) {
	fake := &fakeCompleter{reply: "Most people cite convenience."}
	svc := NewAssistantService(fake, "gpt-4o-mini", nil, nil)

	ans, err := svc.Ask(context.Background(), "Why do people buy refills?", "", "survey of 200 posts")
	require.NoError(t, err)

	assert.False(t, ans.Mock)
	assert.Equal(t, "gpt-4o-mini", ans.Model)
	assert.Equal(t, intent.Qualitative, ans.Mode)
	assert.Equal(t, "Most people cite convenience.", ans.Text)
	assert.Contains(t, fake.systemPrompt, "Analysis mode: Qualitative")
	assert.Contains(t, fake.userPrompt, "Why do people buy refills?")
	assert.Contains(t, fake.userPrompt, "survey of 200 posts")
	assert.Equal(t, intent.GenerateFollowUps("", intent.Qualitative, true), ans.FollowUps)
}

func TestAskEmptyAnswerGivesGenericFollowUps(t *testing.T) {
	fake := &fakeCompleter{reply: "  "}
	svc := NewAssistantService(fake, "m", nil, nil)

	ans, err := svc.Ask(context.Background(), "Why?", "", "")
	require.NoError(t, err)
	assert.Equal(t, intent.GenerateFollowUps("", intent.Mixed, false), ans.FollowUps)
}

func TestAskClientError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("boom")}
	svc := NewAssistantService(fake, "m", nil, nil)

	_, err := svc.Ask(context.Background(), "Why?", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestAskSpecialCommand(t *testing.T) {
	prompts := config.DefaultAssistantPrompt()
	prompts.SpecialCommands.Help.Trigger = []string{"/help"}
	prompts.SpecialCommands.Help.Response = "help text"
	fake := &fakeCompleter{reply: "should not be used"}
	svc := NewAssistantService(fake, "m", prompts, nil)

	ans, err := svc.Ask(context.Background(), "/help", "", "")
	require.NoError(t, err)
	assert.Equal(t, "help text", ans.Text)
	assert.Empty(t, fake.userPrompt)
}
