package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"codementor-backend/internal/common"
)

type fetchChatsReq struct {
	Email string `json:"email" binding:"required"`
}

// FetchUserChats lists the chats owned by the user behind the given email.
// An unknown email is a normal empty list, not a 404.
func (h *Handler) FetchUserChats(c *gin.Context) {
	var req fetchChatsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10002, "email is required")
		return
	}

	chats, err := h.Chats.ListChatsForEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("[FetchUserChats] list chats email=%s err=%v", req.Email, err)
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to list chats")
		return
	}

	common.OK(c, gin.H{"chats": chats})
}
