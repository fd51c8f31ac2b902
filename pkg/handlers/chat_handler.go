package handlers

import (
	"log"
	"net/http"
	"time"

	"research-brief-api/pkg/intent"
	"research-brief-api/pkg/models"
	"research-brief-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// ChatHandler はアシスタントとのチャットのハンドラです。
type ChatHandler struct {
	assistant  *services.AssistantService
	cases      *services.CaseService
	monitoring *services.MonitoringService
}

// NewChatHandler は新しいChatHandlerを生成します。
func NewChatHandler(assistant *services.AssistantService, cases *services.CaseService, monitoring *services.MonitoringService) *ChatHandler {
	return &ChatHandler{
		assistant:  assistant,
		cases:      cases,
		monitoring: monitoring,
	}
}

// Chat は質問の分析モードを判定してアシスタントに回答させます。
// case_idが指定された場合は回答をBriefとしてCaseに追加します。
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません: "+err.Error())
		return
	}

	if req.CaseID != "" {
		if _, err := h.cases.Get(req.CaseID); err != nil {
			respondError(c, statusForError(err), err.Error())
			return
		}
	}

	answer, err := h.assistant.Ask(c.Request.Context(), req.Message, req.Mode, req.Context)
	if err != nil {
		log.Printf("ERROR: [chat] AI処理エラー詳細: %v", err)
		respondError(c, http.StatusBadGateway, err.Error())
		return
	}
	if h.monitoring != nil {
		h.monitoring.RecordIntent(answer.Mode)
	}

	resp := models.ChatResponse{
		Response:  answer.Text,
		Mode:      intent.Describe(answer.Mode),
		FollowUps: answer.FollowUps,
		Model:     answer.Model,
		Mock:      answer.Mock,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if req.CaseID != "" {
		brief, err := h.cases.AddBrief(req.CaseID, models.AddBriefRequest{
			Question: req.Message,
			Mode:     string(answer.Mode),
			Summary:  answer.Text,
		})
		if err != nil {
			// Caseが途中で削除された場合も回答自体は返す
			log.Printf("WARN: [chat] Briefの保存に失敗: CaseID=%s: %v", req.CaseID, err)
		} else {
			resp.BriefID = brief.ID
			log.Printf("✅ [chat] Briefを保存: CaseID=%s BriefID=%s", req.CaseID, brief.ID)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}
