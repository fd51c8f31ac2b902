package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	config "research-brief-api/configs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                "8080",
		Environment:         "test",
		AdminUsername:       "admin",
		AdminPassword:       "pass",
		AssistantPromptFile: filepath.Join("..", "..", "configs", "assistant_prompt.yaml"),
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	r, err := NewRouter(cfg)
	require.NoError(t, err)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, testConfig())
	w, _ := doJSON(t, r, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "secret"
	r := newTestRouter(t, cfg)

	w, _ := doJSON(t, r, "GET", "/api/v1/intent/modes", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req, _ := http.NewRequest("GET", "/api/v1/intent/modes", nil)
	req.Header.Set("X-API-KEY", "secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDetectIntentEndpoint(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w, env := doJSON(t, r, "POST", "/api/v1/intent/detect", gin.H{"text": "What percentage of consumers are discussing refill packaging?"})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Mode struct {
			Mode  string `json:"mode"`
			Label string `json:"label"`
		} `json:"mode"`
		Scores struct {
			Quantitative int `json:"quantitative"`
		} `json:"scores"`
		Classified bool `json:"classified"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "quantitative", data.Mode.Mode)
	assert.Equal(t, "Quantitative", data.Mode.Label)
	assert.True(t, data.Classified)
	assert.Greater(t, data.Scores.Quantitative, 0)

	_, env = doJSON(t, r, "POST", "/api/v1/intent/detect", gin.H{"text": "wh"})
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "mixed", data.Mode.Mode)
	assert.False(t, data.Classified)
}

func TestSuggestionsAndFollowUpsEndpoints(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w, env := doJSON(t, r, "POST", "/api/v1/intent/suggestions", gin.H{"text": "", "mode": "qualitative"})
	require.Equal(t, http.StatusOK, w.Code)
	var sugg struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sugg))
	assert.Len(t, sugg.Suggestions, 3)
	assert.Equal(t, "Why do consumers prefer refillable packaging?", sugg.Suggestions[0])

	w, env = doJSON(t, r, "POST", "/api/v1/intent/follow-ups", gin.H{"question": "x", "mode": "quantitative", "has_results": true})
	require.Equal(t, http.StatusOK, w.Code)
	var fu struct {
		FollowUps []string `json:"follow_ups"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fu))
	assert.Equal(t, "How have these numbers changed over time?", fu.FollowUps[0])
}

func TestBatchEndpoint(t *testing.T) {
	r := newTestRouter(t, testConfig())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "questions.csv")
	require.NoError(t, err)
	part.Write([]byte("question\nWhy do people refill?\nHow many posts mention refills?\n"))
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", "/api/v1/intent/batch", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data struct {
		Count   int `json:"count"`
		Results []struct {
			Mode string `json:"mode"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Count)
	assert.Equal(t, "qualitative", data.Results[0].Mode)
	assert.Equal(t, "quantitative", data.Results[1].Mode)
}

func TestCaseLifecycleWithChat(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w, env := doJSON(t, r, "POST", "/api/v1/cases", gin.H{"objective": "Refill packaging"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	w, env = doJSON(t, r, "POST", "/api/v1/chat", gin.H{"message": "Why do people refill?", "case_id": created.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var chat struct {
		Mock      bool     `json:"mock"`
		BriefID   string   `json:"brief_id"`
		FollowUps []string `json:"follow_ups"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &chat))
	assert.True(t, chat.Mock)
	assert.NotEmpty(t, chat.BriefID)
	assert.Len(t, chat.FollowUps, 3)

	w, _ = doJSON(t, r, "POST", "/api/v1/cases/"+created.ID+"/briefs", gin.H{"question": "How many posts?", "summary": "1,200"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = doJSON(t, r, "POST", "/api/v1/cases/"+created.ID+"/briefs/move", gin.H{"from": 1, "to": 0})
	require.Equal(t, http.StatusOK, w.Code)
	var moved struct {
		Briefs []struct {
			Question string `json:"question"`
		} `json:"briefs"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &moved))
	require.Len(t, moved.Briefs, 2)
	assert.Equal(t, "How many posts?", moved.Briefs[0].Question)

	w, _ = doJSON(t, r, "POST", "/api/v1/cases/"+created.ID+"/briefs/move", gin.H{"from": 0, "to": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req, _ := http.NewRequest("GET", "/api/v1/cases/"+created.ID+"/export", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())

	w, _ = doJSON(t, r, "DELETE", "/api/v1/cases/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, "GET", "/api/v1/cases/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, "POST", "/api/v1/chat", gin.H{"message": "Why?", "case_id": created.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMaintenanceMode(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w, _ := doJSON(t, r, "POST", "/api/v1/admin/maintenance/start", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, "POST", "/api/v1/admin/maintenance/start", gin.H{"username": "admin", "password": "pass"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, "GET", "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = doJSON(t, r, "POST", "/api/v1/admin/maintenance/stop", gin.H{"username": "admin", "password": "pass"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvalidBanksFile(t *testing.T) {
	cfg := testConfig()
	cfg.IntentBanksFile = "does-not-exist.yaml"
	_, err := NewRouter(cfg)
	assert.Error(t, err)
}
