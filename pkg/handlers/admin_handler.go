package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"sync/atomic"

	config "research-brief-api/configs"

	"github.com/gin-gonic/gin"
)

// AdminHandler は管理者向け操作のハンドラです。
// メンテナンスモードはハンドラごとに保持し、HealthCheckもこの状態を参照します。
type AdminHandler struct {
	adminUsername string
	adminPassword string
	maintenance   atomic.Bool
}

// NewAdminHandler は新しいAdminHandlerを生成します。
func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		adminUsername: cfg.AdminUsername,
		adminPassword: cfg.AdminPassword,
	}
}

// AdminCredentials は管理者認証のためのリクエストボディです。
type AdminCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authorize は資格情報を検証し、失敗時はレスポンスを書き込んでfalseを返します。
func (h *AdminHandler) authorize(c *gin.Context) bool {
	var input AdminCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return false
	}

	// パスワード未設定の場合は管理操作を無効にする
	if h.adminPassword == "" {
		respondError(c, http.StatusForbidden, "Admin operations are disabled")
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(h.adminPassword)) == 1
	if !userOK || !passOK {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return false
	}
	return true
}

// StartMaintenance はメンテナンスモードを開始します。
func (h *AdminHandler) StartMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	h.maintenance.Store(true)
	log.Println("INFO: メンテナンスモードを開始しました")
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode started"})
}

// StopMaintenance はメンテナンスモードを停止します。
func (h *AdminHandler) StopMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	h.maintenance.Store(false)
	log.Println("INFO: メンテナンスモードを停止しました")
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode stopped"})
}

// GetHealthStatus は現在のサーバーの状態を返します。
func (h *AdminHandler) GetHealthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"isMaintenanceMode": h.maintenance.Load()})
}

// HealthCheck は外部のヘルスチェッカー（例: ロードバランサー）からのリクエストに応答します。
func (h *AdminHandler) HealthCheck(c *gin.Context) {
	if h.maintenance.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": "Server is in maintenance mode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
