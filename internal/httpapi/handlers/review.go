package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"codementor-backend/internal/ai"
	"codementor-backend/internal/common"
	"codementor-backend/internal/review"
)

type turnMsg struct {
	Role    string `json:"role" binding:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

type codeReviewReq struct {
	Messages     []turnMsg `json:"messages" binding:"required,min=1,dive"`
	LearningMode bool      `json:"learning_mode"`
	SessionID    string    `json:"session_id"`
	Email        string    `json:"email" binding:"omitempty,email"`
}

// CodeReview accepts the full transcript for one turn, persists it, and asks
// the configured AI provider for feedback. The transcript write happens
// before the provider call, so the returned session_id stays valid even when
// the provider errors.
func (h *Handler) CodeReview(c *gin.Context) {
	var req codeReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Email" {
			common.Fail(c, http.StatusBadRequest, 10003, "email is malformed")
			return
		}
		common.Fail(c, http.StatusBadRequest, 10001, "a non-empty messages list is required")
		return
	}

	msgs := make([]review.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, review.Message{Role: m.Role, Content: m.Content})
	}

	sid, err := h.ChatMgr.SubmitTurn(c.Request.Context(), req.SessionID, msgs, req.Email)
	if err != nil {
		log.Printf("[CodeReview] submit turn session=%q err=%v", req.SessionID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to save chat turn")
		return
	}

	provider, err := h.Registry.Get(c.Request.Context(), h.Cfg.AIProvider, "")
	if err != nil {
		log.Printf("[CodeReview] provider %q unavailable: %v", h.Cfg.AIProvider, err)
		common.Fail(c, http.StatusInternalServerError, 50003, "ai provider unavailable")
		return
	}

	history := make([]ai.Message, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, ai.Message{Role: m.Role, Content: m.Content})
	}

	feedback, err := provider.Chat(c.Request.Context(), ai.ReviewMessages(history, req.LearningMode))
	if err != nil {
		log.Printf("[CodeReview] provider chat session=%s err=%v", sid, err)
		common.Fail(c, http.StatusBadGateway, 50201, "code review backend unavailable")
		return
	}

	common.OK(c, gin.H{
		"session_id": sid,
		"feedback":   feedback,
	})
}
