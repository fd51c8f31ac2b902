package server

import (
	"fmt"
	"log"
	"net/http"

	config "research-brief-api/configs"
	"research-brief-api/pkg/azure"
	"research-brief-api/pkg/handlers"
	"research-brief-api/pkg/intent"
	"research-brief-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// APIKeyAuth はX-API-KEYヘッダーを検証するミドルウェアです。
// apiKeyが未設定の場合は認証を行いません。
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-KEY") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// NewClassifier は設定に応じてClassifierを生成します。
// INTENT_BANKS_FILEが指定されていればそのテーブルを使います。
func NewClassifier(cfg *config.Config) (*intent.Classifier, error) {
	if cfg.IntentBanksFile == "" {
		return intent.Default(), nil
	}
	banks, err := config.LoadIntentBanks(cfg.IntentBanksFile)
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: インテントテーブルを %s から読み込みました", cfg.IntentBanksFile)
	return intent.NewClassifier(banks), nil
}

// NewAssistant は設定に応じてAssistantServiceを生成します。
// LLMの接続情報が無い場合はテンプレート回答モードで動作します。
func NewAssistant(cfg *config.Config, classifier *intent.Classifier) *services.AssistantService {
	prompts, err := config.LoadAssistantPrompt(cfg.AssistantPromptFile)
	if err != nil {
		log.Printf("WARN: プロンプト設定を読み込めないため既定値を使います: %v", err)
		prompts = config.DefaultAssistantPrompt()
	}

	if !cfg.AssistantEnabled() {
		log.Println("WARN: Azure OpenAIが未設定のため、テンプレート回答モードで起動します")
		return services.NewAssistantService(nil, "", prompts, classifier)
	}

	client := azure.NewOpenAIClient(
		cfg.AzureOpenAIEndpoint,
		cfg.AzureOpenAIAPIKey,
		cfg.AzureOpenAIAPIVersion,
		cfg.AzureOpenAIChatDeploymentName,
		"",
	)
	return services.NewAssistantService(client, client.DeploymentName(), prompts, classifier)
}

// NewRouter はGinルーターを初期化し、全ルートを登録します。
func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	classifier, err := NewClassifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("Classifierの初期化に失敗: %w", err)
	}

	// サービスの初期化
	monitoringService := services.NewMonitoringService()
	exportService := services.NewExportService()
	caseService := services.NewCaseService(classifier)
	assistantService := NewAssistant(cfg, classifier)

	// ハンドラーの初期化
	intentHandler := handlers.NewIntentHandler(classifier, monitoringService, exportService)
	chatHandler := handlers.NewChatHandler(assistantService, caseService, monitoringService)
	caseHandler := handlers.NewCaseHandler(caseService, exportService)
	adminHandler := handlers.NewAdminHandler(cfg)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	r := gin.Default()

	// ミドルウェアの登録
	r.Use(monitoringService.LoggingMiddleware())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-API-KEY")
	r.Use(cors.New(corsConfig))

	r.GET("/health", adminHandler.HealthCheck)

	v1 := r.Group("/api/v1")
	v1.Use(APIKeyAuth(cfg.APIKey))
	{
		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}

		intentGroup := v1.Group("/intent")
		{
			intentGroup.GET("/modes", intentHandler.GetModes)
			intentGroup.POST("/detect", intentHandler.DetectIntent)
			intentGroup.POST("/suggestions", intentHandler.GetSuggestions)
			intentGroup.POST("/follow-ups", intentHandler.GetFollowUps)
			intentGroup.POST("/batch", intentHandler.ClassifyBatch)
		}

		v1.POST("/chat", chatHandler.Chat)

		cases := v1.Group("/cases")
		{
			cases.POST("", caseHandler.CreateCase)
			cases.GET("", caseHandler.ListCases)
			cases.GET("/:id", caseHandler.GetCase)
			cases.DELETE("/:id", caseHandler.DeleteCase)
			cases.GET("/:id/export", caseHandler.ExportCase)
			cases.POST("/:id/briefs", caseHandler.AddBrief)
			cases.POST("/:id/briefs/move", caseHandler.MoveBrief)
			cases.DELETE("/:id/briefs/:briefId", caseHandler.DeleteBrief)
		}
	}

	return r, nil
}
