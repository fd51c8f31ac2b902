package main

import (
	"context"
	"log"
	"os"
	"time"

	config "research-brief-api/configs"
	"research-brief-api/pkg/azure"
	"research-brief-api/pkg/intent"

	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Fatalf("FATAL: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()
	if !cfg.AssistantEnabled() {
		log.Fatal("FATAL: 必要な環境変数 (AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY) が設定されていません。")
	}

	prompts, err := config.LoadAssistantPrompt(cfg.AssistantPromptFile)
	if err != nil {
		log.Printf("WARN: %v", err)
		prompts = config.DefaultAssistantPrompt()
	}

	question := "What percentage of consumers are discussing refill packaging?"
	if len(os.Args) > 1 {
		question = os.Args[1]
	}
	mode := intent.DetectIntent(question)

	client := azure.NewOpenAIClient(
		cfg.AzureOpenAIEndpoint,
		cfg.AzureOpenAIAPIKey,
		cfg.AzureOpenAIAPIVersion,
		cfg.AzureOpenAIChatDeploymentName,
		os.Getenv("AZURE_OPENAI_PROXY_URL"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	log.Printf("INFO: リクエストを送信します... mode=%s", mode)
	answer, err := client.Complete(ctx, prompts.BuildSystemPrompt(mode), question, 300, 0.3)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	log.Println("--- レスポンス ---")
	log.Println(answer)
	log.Println("SUCCESS: 正常に応答が返ってきました。")
}
