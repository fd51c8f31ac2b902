package handlers

import (
	"fmt"
	"log"
	"net/http"

	"research-brief-api/pkg/models"
	"research-brief-api/pkg/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CaseHandler はCase・Briefの操作のハンドラです。
type CaseHandler struct {
	cases  *services.CaseService
	export *services.ExportService
}

// NewCaseHandler は新しいCaseHandlerを生成します。
func NewCaseHandler(cases *services.CaseService, export *services.ExportService) *CaseHandler {
	return &CaseHandler{cases: cases, export: export}
}

// CreateCase は新しいCaseを作成します。
func (h *CaseHandler) CreateCase(c *gin.Context) {
	var req models.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "objectiveが必要です。")
		return
	}
	created := h.cases.Create(req.Objective)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// ListCases は全Caseを返します。
func (h *CaseHandler) ListCases(c *gin.Context) {
	list := h.cases.List()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list, "count": len(list)})
}

// GetCase はCaseを1件返します。
func (h *CaseHandler) GetCase(c *gin.Context) {
	found, err := h.cases.Get(c.Param("id"))
	if err != nil {
		respondError(c, statusForError(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": found})
}

// DeleteCase はCaseを削除します。
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	if err := h.cases.Delete(c.Param("id")); err != nil {
		respondError(c, statusForError(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddBrief はCaseにBriefを追加します。
func (h *CaseHandler) AddBrief(c *gin.Context) {
	var req models.AddBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "questionが必要です。")
		return
	}
	brief, err := h.cases.AddBrief(c.Param("id"), req)
	if err != nil {
		respondError(c, statusForError(err), err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": brief})
}

// MoveBrief はノートブック上でBriefの並び順を変更します。
func (h *CaseHandler) MoveBrief(c *gin.Context) {
	var req models.MoveBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "fromとtoが必要です。")
		return
	}
	updated, err := h.cases.MoveBrief(c.Param("id"), *req.From, *req.To)
	if err != nil {
		respondError(c, statusForError(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// DeleteBrief はCaseからBriefを削除します。
func (h *CaseHandler) DeleteBrief(c *gin.Context) {
	if err := h.cases.DeleteBrief(c.Param("id"), c.Param("briefId")); err != nil {
		respondError(c, statusForError(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportCase はCaseをExcelファイルとしてダウンロードさせます。
func (h *CaseHandler) ExportCase(c *gin.Context) {
	found, err := h.cases.Get(c.Param("id"))
	if err != nil {
		respondError(c, statusForError(err), err.Error())
		return
	}
	data, err := h.export.ExportCase(found)
	if err != nil {
		log.Printf("ERROR: [export] CaseID=%s: %v", found.ID, err)
		respondError(c, http.StatusInternalServerError, "Excelファイルの生成に失敗しました。")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="case-%s.xlsx"`, found.ID))
	c.Data(http.StatusOK, xlsxContentType, data)
}
