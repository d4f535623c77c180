package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codementor-backend/internal/common"
)

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"status": "ok"})
}

// Home is the landing page.
func (h *Handler) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<h1>Welcome to CodeMentor</h1><p>AI Code Review Assistant for Beginners</p>"))
}
