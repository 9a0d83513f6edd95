package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenStatus reports when the current application token expires.
type TokenStatus interface {
	ExpiresAt() time.Time
}

type HealthHandler struct {
	tokens TokenStatus
}

func NewHealthHandler(tokens TokenStatus) *HealthHandler {
	return &HealthHandler{tokens: tokens}
}

func (h *HealthHandler) Health(c *gin.Context) {
	resp := gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if expiry := h.tokens.ExpiresAt(); !expiry.IsZero() {
		resp["token_expires_at"] = expiry.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
