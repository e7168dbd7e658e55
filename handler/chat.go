package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborview/claimchat/backend/model"
	"github.com/harborview/claimchat/backend/pkg/logger"
	"github.com/harborview/claimchat/backend/service"
)

// DefaultSessionID scopes clients that do not supply their own session
const DefaultSessionID = "default"

const internalErrorMessage = "Sorry, I couldn't process your request. Please try again in a moment."

// Composer is the reply-generation dependency of the chat flow
type Composer interface {
	Compose(ctx context.Context, userMessage string, claim *model.ClaimRecord, upstreamErr string, history []model.ConversationEntry) (string, error)
}

type ChatHandler struct {
	claims        *service.ClaimStore
	conversations *service.ConversationStore
	composer      Composer
}

func NewChatHandler(claims *service.ClaimStore, conversations *service.ConversationStore, composer Composer) *ChatHandler {
	return &ChatHandler{
		claims:        claims,
		conversations: conversations,
		composer:      composer,
	}
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type ClearConversationRequest struct {
	SessionID string `json:"sessionId"`
}

// Chat handles one chat turn: extract a claim id, resolve it, compose a
// reply, and record the exchange
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Message is required",
		})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	ctx := context.WithValue(c.Request.Context(), logger.SessionIDKey, sessionID)
	history := h.conversations.Get(sessionID)

	var claim *model.ClaimRecord
	var upstreamErr string

	if claimID := service.ExtractClaimID(req.Message); claimID != "" {
		// A token that fails the strict format is treated like no id at
		// all: no lookup, ask-for-id framing
		if service.IsValidClaimID(claimID) {
			resolved, err := h.claims.Resolve(ctx, claimID)
			if err != nil {
				logger.Error(ctx, "claim resolution failed", "claim_id", claimID, "error", err)
				upstreamErr = "Unable to retrieve claim information at this time"
			} else {
				claim = resolved
			}
		}
	}

	reply, err := h.composer.Compose(ctx, req.Message, claim, upstreamErr, history)
	if err != nil {
		logger.Error(ctx, "failed to compose reply", "error", err)
		// History stays untouched for a failed turn
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   internalErrorMessage,
		})
		return
	}

	h.conversations.Append(sessionID, req.Message, reply)

	response := gin.H{
		"success":       true,
		"response":      reply,
		"usingMockData": h.claims.UsingMockData(),
	}
	if claim != nil {
		response["claimData"] = claim
	}
	c.JSON(http.StatusOK, response)
}

// ClearConversation drops a session's history; idempotent
func (h *ChatHandler) ClearConversation(c *gin.Context) {
	var req ClearConversationRequest
	_ = c.ShouldBindJSON(&req)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	h.conversations.Clear(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Conversation history cleared",
	})
}
