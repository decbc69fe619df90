package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"timesheet-api/internal/service"
)

// multipartOverhead leaves room for boundaries and part headers around the file.
const multipartOverhead = 1 << 20

func (h *Handler) uploadReceipt(c *gin.Context) {
	timesheetID, ok := pathID(c, "timesheet")
	if !ok {
		return
	}

	maxBytes := h.receipts.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		badRequest(c, "file is required")
		return
	}
	if header.Size > maxBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer file.Close()

	receipt, err := h.receipts.Upload(c.Request.Context(), currentIdentity(c).UserID, timesheetID, service.ReceiptUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receiptToResponse(*receipt))
}

func (h *Handler) listReceipts(c *gin.Context) {
	timesheetID, ok := pathID(c, "timesheet")
	if !ok {
		return
	}

	receipts, err := h.receipts.List(c.Request.Context(), currentIdentity(c).UserID, timesheetID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		resp[i] = receiptToResponse(receipts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) receiptURL(c *gin.Context) {
	receiptID, ok := pathID(c, "receipt")
	if !ok {
		return
	}

	link, err := h.receipts.URL(c.Request.Context(), currentIdentity(c).UserID, receiptID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ReceiptURLResponse{
		URL:       link.URL,
		ExpiresAt: link.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
