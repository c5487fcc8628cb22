package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/services"
	"resto-pos/telegram"
	"resto-pos/utils"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, telegram.ErrDisabled):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrBackupUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParamID(c, name)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
	}
	return id, ok
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func bindRange(c *gin.Context) (dtos.DateRange, bool) {
	var r dtos.DateRange
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return r, false
	}
	return r, true
}

// currentUser is only called behind AuthMiddleware, which always sets user_id.
func currentUser(c *gin.Context) uint {
	if id := utils.GetUserID(c); id != nil {
		return *id
	}
	return 0
}
