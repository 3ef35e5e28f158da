package handlers

import (
	"net/http"

	"slotbot/models"
	"slotbot/services/agent"
	"slotbot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgServiceUnavailable = "⚠️ The scheduling service is unavailable right now. Please try again later."

// ChatHandler exposes the conversational assistant over HTTP.
type ChatHandler struct {
	Agent agent.Service
}

// NewChatHandler builds the handler. Agent may be nil when a collaborator
// failed to initialize; the endpoint then degrades to a fixed reply instead
// of failing the request path.
func NewChatHandler(svc agent.Service) *ChatHandler {
	return &ChatHandler{Agent: svc}
}

// HandleChat processes POST /chat.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if h.Agent == nil {
		c.JSON(http.StatusOK, models.ChatResponse{Response: msgServiceUnavailable})
		return
	}

	reply := h.Agent.ProcessMessage(c.Request.Context(), req.ConversationID, req.Message)
	c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
}
