package config

import (
	"fmt"
	"os"
	"strings"

	"research-brief-api/pkg/intent"

	"gopkg.in/yaml.v3"
)

// AssistantPromptConfig はassistant_prompt.yamlの構造を定義
type AssistantPromptConfig struct {
	System struct {
		Role     string `yaml:"role"`
		Version  string `yaml:"version"`
		Language string `yaml:"language"`
	} `yaml:"system"`

	// モード別の回答方針
	Modes map[string]struct {
		Focus        string   `yaml:"focus"`
		Instructions []string `yaml:"instructions"`
	} `yaml:"modes"`

	Tone struct {
		Style       string `yaml:"style"`
		Personality string `yaml:"personality"`
	} `yaml:"tone"`

	Constraints []string `yaml:"constraints"`

	SpecialCommands struct {
		Help struct {
			Trigger  []string `yaml:"trigger"`
			Response string   `yaml:"response"`
		} `yaml:"help"`
	} `yaml:"special_commands"`
}

// DefaultAssistantPrompt はYAMLが無い場合に使う最小限の設定を返します。
func DefaultAssistantPrompt() *AssistantPromptConfig {
	var c AssistantPromptConfig
	c.System.Role = "a research assistant that turns consumer conversation data into briefs"
	c.Tone.Style = "concise"
	c.Tone.Personality = "analytical"
	c.Constraints = []string{"Do not invent numbers that are not present in the provided context."}
	return &c
}

// LoadAssistantPrompt はYAMLファイルからアシスタントのプロンプト設定を読み込む
func LoadAssistantPrompt(path string) (*AssistantPromptConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("プロンプト設定ファイルの読み込みに失敗: %w", err)
	}

	var config AssistantPromptConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("YAMLのパースに失敗: %w", err)
	}
	return &config, nil
}

// BuildSystemPrompt は設定と分析モードからシステムプロンプトを構築
func (c *AssistantPromptConfig) BuildSystemPrompt(mode intent.Intent) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are %s.\n\n", c.System.Role))

	sb.WriteString(fmt.Sprintf("## Analysis mode: %s\n", intent.ModeLabel(mode)))
	if m, ok := c.Modes[string(mode)]; ok {
		if m.Focus != "" {
			sb.WriteString(fmt.Sprintf("Focus: %s\n", m.Focus))
		}
		for _, ins := range m.Instructions {
			sb.WriteString(fmt.Sprintf("- %s\n", ins))
		}
	}
	sb.WriteString("\n")

	if c.Tone.Style != "" || c.Tone.Personality != "" {
		sb.WriteString("## Tone\n")
		sb.WriteString(fmt.Sprintf("- Style: %s\n", c.Tone.Style))
		sb.WriteString(fmt.Sprintf("- Personality: %s\n", c.Tone.Personality))
		sb.WriteString("\n")
	}

	if len(c.Constraints) > 0 {
		sb.WriteString("## Constraints\n")
		for _, constraint := range c.Constraints {
			sb.WriteString(fmt.Sprintf("- %s\n", constraint))
		}
	}

	return sb.String()
}

// CheckSpecialCommand は特別なコマンドかチェック
func (c *AssistantPromptConfig) CheckSpecialCommand(message string) (bool, string) {
	lowerMsg := strings.ToLower(message)

	for _, trigger := range c.SpecialCommands.Help.Trigger {
		if trigger != "" && strings.Contains(lowerMsg, strings.ToLower(trigger)) {
			return true, c.SpecialCommands.Help.Response
		}
	}

	return false, ""
}
