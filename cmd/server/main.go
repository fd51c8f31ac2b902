package main

import (
	"log"

	config "research-brief-api/configs"
	"research-brief-api/pkg/server"

	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()

	r, err := server.NewRouter(cfg)
	if err != nil {
		log.Fatalf("FATAL: ルーターの初期化に失敗: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("Starting Research Brief API server on %s (env=%s)", addr, cfg.Environment)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
