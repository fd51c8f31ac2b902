package handler

import (
	"log"
	"net/http"
	"sync"

	config "research-brief-api/configs"
	"research-brief-api/pkg/server"

	"github.com/gin-gonic/gin"
)

var (
	app     *gin.Engine
	initErr error
	once    sync.Once
)

// setupApp はGinアプリケーションを初期化します。
// サーバーレス環境では、リクエストごとに初期化が走らないようsync.Onceで一度だけ実行します。
func setupApp() (*gin.Engine, error) {
	once.Do(func() {
		// 環境変数はVercelの設定から読み込まれるため、ここではgodotenvを呼び出しません。
		cfg := config.LoadConfig()
		app, initErr = server.NewRouter(cfg)
		if initErr != nil {
			log.Printf("FATAL: [setupApp] %v", initErr)
			return
		}
		log.Printf("🟢 [setupApp] Gin application initialized")
	})
	return app, initErr
}

// Handler はVercelのエントリーポイントです。
func Handler(w http.ResponseWriter, r *http.Request) {
	engine, err := setupApp()
	if err != nil {
		http.Error(w, "service initialization failed", http.StatusInternalServerError)
		return
	}
	engine.ServeHTTP(w, r)
}
