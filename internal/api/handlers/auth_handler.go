package handlers

import (
	"net/http"
	"time"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/api/middleware"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/auth"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *service.NetworkService
	tokens  *auth.TokenManager
}

func NewAuthHandler(service *service.NetworkService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      auth.Session `json:"user"`
}

// Login exchanges a username/password pair for a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required", err)
		return
	}

	session, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, "Invalid username or password.", err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(session)
	if err != nil {
		respondError(c, "failed to issue token", err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt, User: session})
}

// Me returns the session behind the bearer token
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Session(c))
}
