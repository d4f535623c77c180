package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"codementor-backend/internal/common"
	"codementor-backend/internal/models"
)

type signupReq struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=128"`
}

// Signup inserts a user record unconditionally: no duplicate-email check and
// no password hashing, matching the historical schema this service fronts.
func (h *Handler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "name, a valid email and password are required")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.Store.CreateUser(c.Request.Context(), &user); err != nil {
		log.Printf("[Signup] create user email=%s err=%v", req.Email, err)
		common.Fail(c, http.StatusInternalServerError, 20001, "failed to create user")
		return
	}

	// Welcome email rides the queue; a broker outage must not fail the signup.
	if h.Rabbit != nil {
		if err := h.Rabbit.PublishSignup(c.Request.Context(), user.ID); err != nil {
			log.Printf("[Signup] publish signup event user=%d err=%v", user.ID, err)
		}
	}

	common.OK(c, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}
