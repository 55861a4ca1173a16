package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"res4city/api/chatbot"
)

func newChatRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewChatHandlers(chatbot.New(), nil)
	r := gin.New()
	r.GET("/api/chat", h.Greeting)
	r.POST("/api/chat", h.Chat)
	return r
}

func TestChatGreeting(t *testing.T) {
	r := newChatRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, chatbot.Greeting, resp["reply"])
}

func TestChatAnswersKnownQuestion(t *testing.T) {
	r := newChatRouter(t)

	body, _ := json.Marshal(ChatRequest{Message: "leaderboard"})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.Contains(strings.ToLower(resp["reply"]), "ranks users"))
	assert.NotEqual(t, chatbot.FallbackAnswer, resp["reply"])
}

func TestChatFallsBackOnUnknownQuestion(t *testing.T) {
	r := newChatRouter(t)

	body, _ := json.Marshal(ChatRequest{Message: "quantum entanglement homework"})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, chatbot.FallbackAnswer, resp["reply"])
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	r := newChatRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
