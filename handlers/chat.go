package handlers

import (
	"net/http"

	"obrafacil/middleware"
	"obrafacil/services/chat"
	"obrafacil/utils"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes conversation endpoints.
type ChatHandler struct {
	ChatService chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: svc}
}

type openChatRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}

// OpenChatHandler handles POST /api/chats: returns the chat between the caller
// and the given participant, creating it on first contact.
func (h *ChatHandler) OpenChatHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var req openChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.ChatService.EnsureChat(c.Request.Context(), callerID, req.ParticipantID)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conv)
}

// ListChatsHandler handles GET /api/chats.
func (h *ChatHandler) ListChatsHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	chats, err := h.ChatService.ListChats(c.Request.Context(), callerID)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chats)
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessageHandler handles POST /api/chats/:id/messages.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.ChatService.SendMessage(c.Request.Context(), callerID, c.Param("id"), req.Text)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListMessagesHandler handles GET /api/chats/:id/messages.
func (h *ChatHandler) ListMessagesHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	messages, err := h.ChatService.ListMessages(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, messages)
}
