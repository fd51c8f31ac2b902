package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	Port                          string
	Environment                   string
	APIKey                        string
	AdminUsername                 string
	AdminPassword                 string
	AzureOpenAIEndpoint           string
	AzureOpenAIAPIKey             string
	AzureOpenAIAPIVersion         string
	AzureOpenAIChatDeploymentName string
	IntentBanksFile               string
	AssistantPromptFile           string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:                          getEnv("PORT", "8080"),
		Environment:                   getEnv("ENVIRONMENT", "development"),
		APIKey:                        getEnv("API_KEY", ""),
		AdminUsername:                 getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:                 getEnv("ADMIN_PASSWORD", ""),
		AzureOpenAIEndpoint:           getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureOpenAIAPIKey:             getEnv("AZURE_OPENAI_API_KEY", ""),
		AzureOpenAIAPIVersion:         getEnv("AZURE_OPENAI_API_VERSION", "2024-06-01"),
		AzureOpenAIChatDeploymentName: getEnv("AZURE_OPENAI_CHAT_DEPLOYMENT_NAME", "gpt-4o-mini"),
		IntentBanksFile:               getEnv("INTENT_BANKS_FILE", ""),
		AssistantPromptFile:           getEnv("ASSISTANT_PROMPT_FILE", "configs/assistant_prompt.yaml"),
	}
}

// AssistantEnabled はLLMへの接続情報が揃っているかどうかを返します。
func (c *Config) AssistantEnabled() bool {
	return c.AzureOpenAIEndpoint != "" && c.AzureOpenAIAPIKey != ""
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
