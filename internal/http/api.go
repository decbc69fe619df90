package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"timesheet-api/internal/auth"
	"timesheet-api/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	projects   service.ProjectService
	timesheets service.TimesheetService
	receipts   service.ReceiptService
	hotels     service.HotelService
	tokens     *auth.TokenService
	logger     logrus.FieldLogger
}

func NewHandler(
	users service.UserService,
	projects service.ProjectService,
	timesheets service.TimesheetService,
	receipts service.ReceiptService,
	hotels service.HotelService,
	tokens *auth.TokenService,
	logger logrus.FieldLogger,
) *Handler {
	return &Handler{
		users:      users,
		projects:   projects,
		timesheets: timesheets,
		receipts:   receipts,
		hotels:     hotels,
		tokens:     tokens,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(
		requestIDMiddleware(),
		h.loggingMiddleware(),
		h.recoveryMiddleware(),
		corsMiddleware(),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithCustomShouldCompressFn(shouldCompress)),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UnixMilli()})
	})

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
	}

	protected := api.Group("", h.authMiddleware())
	{
		protected.GET("/me", h.me)

		protected.GET("/projects", h.listProjects)
		protected.POST("/projects", h.createProject)

		protected.GET("/timesheets", h.listTimesheets)
		protected.POST("/timesheets", h.createTimesheet)
		protected.GET("/timesheets/:id", h.getTimesheet)
		protected.PUT("/timesheets/:id", h.updateTimesheet)
		protected.DELETE("/timesheets/:id", h.deleteTimesheet)

		protected.POST("/timesheets/:id/receipts", h.uploadReceipt)
		protected.GET("/timesheets/:id/receipts", h.listReceipts)
		protected.GET("/receipts/:id/url", h.receiptURL)

		protected.GET("/hotels", h.listHotels)
		protected.POST("/hotels", h.createHotel)
		protected.PATCH("/hotels/:id", h.updateHotel)
		protected.DELETE("/hotels/:id", h.deleteHotel)
	}
}

// shouldCompress skips DELETE, whose success response is an empty 204 that must not
// advertise a content encoding.
func shouldCompress(c *gin.Context) bool {
	if c.Request.Method == http.MethodDelete {
		return false
	}
	return strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") &&
		!strings.Contains(c.GetHeader("Connection"), "Upgrade")
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-Id")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
