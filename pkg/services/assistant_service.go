package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	config "research-brief-api/configs"
	"research-brief-api/pkg/intent"
)

// mockModelName はLLM未設定時にレスポンスへ載せるモデル名
const mockModelName = "template"

// Completer はチャット補完APIの最小インターフェースです。
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error)
}

// Answer はアシスタントの回答です。
type Answer struct {
	Text      string
	Mode      intent.Intent
	Model     string
	Mock      bool
	FollowUps []string
}

// AssistantService は質問の分析モードを判定し、モードに応じたプロンプトでLLMに回答させます。
type AssistantService struct {
	client     Completer
	model      string
	prompts    *config.AssistantPromptConfig
	classifier *intent.Classifier
	timeout    time.Duration
}

// NewAssistantService は新しいAssistantServiceを作成します。
// clientがnilの場合はテンプレートによる模擬回答を返します。
func NewAssistantService(client Completer, model string, prompts *config.AssistantPromptConfig, classifier *intent.Classifier) *AssistantService {
	if prompts == nil {
		prompts = config.DefaultAssistantPrompt()
	}
	if classifier == nil {
		classifier = intent.Default()
	}
	return &AssistantService{
		client:     client,
		model:      model,
		prompts:    prompts,
		classifier: classifier,
		timeout:    30 * time.Second,
	}
}

// Classifier はサービスが使うClassifierを返します。
func (s *AssistantService) Classifier() *intent.Classifier {
	return s.classifier
}

// Ask は質問に回答します。modeが空の場合は質問文から判定します。
func (s *AssistantService) Ask(ctx context.Context, question, mode, analysisContext string) (*Answer, error) {
	resolved := s.resolveMode(question, mode)

	if ok, resp := s.prompts.CheckSpecialCommand(question); ok {
		return &Answer{
			Text:      resp,
			Mode:      resolved,
			Model:     mockModelName,
			Mock:      true,
			FollowUps: s.classifier.GenerateFollowUps(question, resolved, false),
		}, nil
	}

	if s.client == nil {
		text := mockAnswer(question, resolved)
		return &Answer{
			Text:      text,
			Mode:      resolved,
			Model:     mockModelName,
			Mock:      true,
			FollowUps: s.classifier.GenerateFollowUps(question, resolved, text != ""),
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.client.Complete(ctx, s.prompts.BuildSystemPrompt(resolved), buildUserPrompt(question, analysisContext), 1500, 0.5)
	if err != nil {
		return nil, fmt.Errorf("AI処理中にエラーが発生しました: %w", err)
	}
	log.Printf("🤖 [assistant] mode=%s answer_len=%d", resolved, len(text))

	return &Answer{
		Text:      text,
		Mode:      resolved,
		Model:     s.model,
		FollowUps: s.classifier.GenerateFollowUps(question, resolved, strings.TrimSpace(text) != ""),
	}, nil
}

func (s *AssistantService) resolveMode(question, mode string) intent.Intent {
	if strings.TrimSpace(mode) != "" {
		return intent.ParseIntent(mode)
	}
	return s.classifier.DetectIntent(question)
}

func buildUserPrompt(question, analysisContext string) string {
	var sb strings.Builder
	sb.WriteString("## Research question\n")
	sb.WriteString(question)
	sb.WriteString("\n")
	if analysisContext != "" {
		sb.WriteString("\n## Analysis context\n")
		sb.WriteString(analysisContext)
		sb.WriteString("\n")
	}
	return sb.String()
}

func mockAnswer(question string, mode intent.Intent) string {
	switch mode {
	case intent.Qualitative:
		return fmt.Sprintf("Qualitative brief for %q: the recurring themes, the motivations behind them and representative quotes will appear here once a data source is connected.", question)
	case intent.Quantitative:
		return fmt.Sprintf("Quantitative brief for %q: mention counts, percentages and trend lines will appear here once a data source is connected.", question)
	default:
		return fmt.Sprintf("Mixed-methods brief for %q: each theme will be paired with how often it occurs once a data source is connected.", question)
	}
}
