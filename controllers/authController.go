package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/services"
	"resto-pos/utils"
)

type AuthController struct {
	auth  services.AuthService
	audit services.AuditService
}

func NewAuthController(auth services.AuthService, audit services.AuditService) *AuthController {
	return &AuthController{auth: auth, audit: audit}
}

func (a *AuthController) Login(c *gin.Context) {
	var input dtos.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	resp, err := a.auth.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me echoes the identity carried by the token.
func (a *AuthController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": currentUser(c), "role": utils.GetUserRole(c)})
}

func (a *AuthController) CreateUser(c *gin.Context) {
	var input dtos.CreateUserInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := a.auth.CreateUser(c.Request.Context(), input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (a *AuthController) GetUsers(c *gin.Context) {
	users, err := a.auth.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (a *AuthController) GetAuditLogs(c *gin.Context) {
	logs, err := a.audit.List(c.Request.Context(), utils.QueryInt(c, "limit", 100, 1000))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
