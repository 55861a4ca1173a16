// api/handlers/chat_handlers.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"res4city/api/analytics"
	"res4city/api/chatbot"
	"res4city/api/models"
)

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatHandlers struct {
	Bot *chatbot.Bot
	// Engine records chatbot usage in the server's telemetry stream.
	// Optional.
	Engine *analytics.Engine
}

func NewChatHandlers(bot *chatbot.Bot, engine *analytics.Engine) *ChatHandlers {
	return &ChatHandlers{Bot: bot, Engine: engine}
}

// Chat answers a support question from the static Q&A table.
func (h *ChatHandlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	reply := h.Bot.Reply(req.Message)

	if h.Engine != nil {
		h.Engine.Track(models.EventChatbotMessage, map[string]any{"message": req.Message})
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Greeting returns the bot's opening message.
func (h *ChatHandlers) Greeting(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reply": chatbot.Greeting})
}
