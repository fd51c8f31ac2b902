package handlers

import (
	"log"
	"net/http"

	"research-brief-api/pkg/intent"
	"research-brief-api/pkg/models"
	"research-brief-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// IntentHandler はIntent判定・サジェスト・フォローアップのハンドラです。
type IntentHandler struct {
	classifier *intent.Classifier
	monitoring *services.MonitoringService
	export     *services.ExportService
}

// NewIntentHandler は新しいIntentHandlerを生成します。
func NewIntentHandler(classifier *intent.Classifier, monitoring *services.MonitoringService, export *services.ExportService) *IntentHandler {
	if classifier == nil {
		classifier = intent.Default()
	}
	return &IntentHandler{
		classifier: classifier,
		monitoring: monitoring,
		export:     export,
	}
}

func (h *IntentHandler) record(mode intent.Intent) {
	if h.monitoring != nil {
		h.monitoring.RecordIntent(mode)
	}
}

// GetModes はモードごとの表示名とアイコンを返します。
func (h *IntentHandler) GetModes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": intent.Modes()})
}

// DetectIntent はテキストのIntentを判定します。
func (h *IntentHandler) DetectIntent(c *gin.Context) {
	var req models.IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません: "+err.Error())
		return
	}

	resp := models.IntentResponse{
		Text:   req.Text,
		Mode:   intent.Describe(intent.Mixed),
		Scores: intent.Scores{QualitativeMatches: []string{}, QuantitativeMatches: []string{}},
	}
	if shouldClassify(req.Text) {
		scores := h.classifier.Score(req.Text)
		mode := scores.Intent()
		resp.Mode = intent.Describe(mode)
		resp.Scores = scores
		resp.Classified = true
		h.record(mode)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// GetSuggestions は入力途中のテキストに対するサジェストを返します。
func (h *IntentHandler) GetSuggestions(c *gin.Context) {
	var req models.IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません: "+err.Error())
		return
	}

	mode := resolveMode(h.classifier, req.Text, req.Mode)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"mode":        intent.Describe(mode),
			"suggestions": h.classifier.GenerateSuggestions(req.Text, mode),
		},
	})
}

// GetFollowUps は次の質問候補を返します。
func (h *IntentHandler) GetFollowUps(c *gin.Context) {
	var req models.FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません: "+err.Error())
		return
	}

	mode := resolveMode(h.classifier, req.Question, req.Mode)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"mode":       intent.Describe(mode),
			"follow_ups": h.classifier.GenerateFollowUps(req.Question, mode, req.HasResults),
		},
	})
}

// ClassifyBatch はアップロードされたxlsx/csvの質問を一括判定します。
func (h *IntentHandler) ClassifyBatch(c *gin.Context) {
	file, fileHeader, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "ファイルの取得に失敗しました。")
		return
	}
	defer file.Close()

	questions, err := h.export.ReadQuestions(fileHeader.Filename, file)
	if err != nil {
		log.Printf("WARN: [batch] %s の読み込みに失敗: %v", fileHeader.Filename, err)
		respondError(c, statusForError(err), err.Error())
		return
	}

	results := make([]models.BatchIntentResult, 0, len(questions))
	counts := make(map[intent.Intent]int)
	for i, q := range questions {
		mode := h.classifier.DetectIntent(q)
		counts[mode]++
		h.record(mode)
		results = append(results, models.BatchIntentResult{
			Row:      i + 1,
			Question: q,
			Mode:     mode,
			Label:    intent.ModeLabel(mode),
		})
	}
	log.Printf("📊 [batch] %s: %d件の質問を判定しました", fileHeader.Filename, len(results))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"file_name": fileHeader.Filename,
			"count":     len(results),
			"summary":   counts,
			"results":   results,
		},
	})
}
