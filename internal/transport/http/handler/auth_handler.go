package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artshare/internal/service"
	resp "artshare/internal/transport/http/response"
)

type AuthHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewAuthHandler(users *service.UserService, l *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: l}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Nickname string `json:"nickname"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.users.Register(c.Request.Context(), in.Email, in.Password, in.Nickname)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registered", "user": u})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.users.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login ok", "user": u})
}

// POST /auth/logout
//
// Identity is caller-managed (no server-side session), so there is nothing
// to invalidate here; the client drops its stored user.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// PUT /auth/users/:id
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var in struct {
		Nickname  string  `json:"nickname"`
		Signature *string `json:"signature"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.users.UpdateProfile(c.Request.Context(), parseUint(c.Param("id")), in.Nickname, in.Signature)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "user": u})
}

// GET /auth/users/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), parseUint(c.Param("id")))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
