package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"timesheet-api/internal/auth"
	"timesheet-api/internal/domain"
)

const (
	requestIDHeader     = "X-Request-Id"
	contextRequestIDKey = "request_id"
	contextUserIDKey    = "user_id"
)

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func (h *Handler) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := h.requestLogger(c).WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Info("request")
	}
}

func (h *Handler) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		h.requestLogger(c).WithField("panic", recovered).Error("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	})
}

// authMiddleware accepts "Authorization: Bearer <token>" with a case-insensitive scheme.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			h.writeError(c, domain.ErrMissingToken)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			h.writeError(c, domain.ErrInvalidToken)
			return
		}

		claims, err := h.tokens.Verify(parts[1])
		if err != nil {
			h.writeError(c, err)
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), auth.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		}))
		c.Next()
	}
}

func (h *Handler) requestLogger(c *gin.Context) logrus.FieldLogger {
	fields := logrus.Fields{
		"request_id": c.GetString(contextRequestIDKey),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}
	if userID, ok := c.Get(contextUserIDKey); ok {
		fields["user_id"] = userID
	}
	return h.logger.WithFields(fields)
}

func currentIdentity(c *gin.Context) auth.Identity {
	id, _ := auth.IdentityFrom(c.Request.Context())
	return id
}
