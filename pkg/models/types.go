package models

import (
	"time"

	"research-brief-api/pkg/intent"
)

// IntentRequest は分類・サジェスト系APIの共通リクエストです。
type IntentRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode,omitempty"` // 省略時は判定結果を使う
}

// IntentResponse は分類結果のレスポンスです。
type IntentResponse struct {
	Text   string          `json:"text"`
	Mode   intent.ModeInfo `json:"mode"`
	Scores intent.Scores   `json:"scores"`
	// Classified はテキストが短すぎて判定をスキップした場合false
	Classified bool `json:"classified"`
}

// FollowUpRequest はフォローアップ生成のリクエストです。
type FollowUpRequest struct {
	Question   string `json:"question"`
	Mode       string `json:"mode,omitempty"`
	HasResults bool   `json:"has_results"`
}

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Context string `json:"context,omitempty"` // 事前の分析結果など
	Mode    string `json:"mode,omitempty"`    // 指定時は判定より優先
	CaseID  string `json:"case_id,omitempty"` // 指定時は回答をBriefとして保存
}

// ChatResponse represents the response from the chat API
type ChatResponse struct {
	Response  string          `json:"response"`
	Mode      intent.ModeInfo `json:"mode"`
	FollowUps []string        `json:"follow_ups"`
	Model     string          `json:"model"`
	Mock      bool            `json:"mock"`
	Timestamp string          `json:"timestamp"`
	BriefID   string          `json:"brief_id,omitempty"`
}

// Brief は1つの質問に紐づく生成済みのリサーチ成果物です。
type Brief struct {
	ID        string        `json:"id"`
	Question  string        `json:"question"`
	Mode      intent.Intent `json:"mode"`
	Summary   string        `json:"summary"`
	Evidence  []string      `json:"evidence"`
	CreatedAt time.Time     `json:"created_at"`
}

// Case は1つのリサーチ目的の下にまとめられた質問と結果の集合です。
type Case struct {
	ID        string    `json:"id"`
	Objective string    `json:"objective"`
	Briefs    []Brief   `json:"briefs"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCaseRequest はCase作成のリクエストです。
type CreateCaseRequest struct {
	Objective string `json:"objective" binding:"required"`
}

// AddBriefRequest はBrief追加のリクエストです。
type AddBriefRequest struct {
	Question string   `json:"question" binding:"required"`
	Mode     string   `json:"mode,omitempty"`
	Summary  string   `json:"summary"`
	Evidence []string `json:"evidence,omitempty"`
}

// MoveBriefRequest はノートブック上のブロック並べ替えのリクエストです。
type MoveBriefRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// BatchIntentResult はファイル一括分類の1行分の結果です。
type BatchIntentResult struct {
	Row      int           `json:"row"`
	Question string        `json:"question"`
	Mode     intent.Intent `json:"mode"`
	Label    string        `json:"label"`
}
