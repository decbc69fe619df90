package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"timesheet-api/internal/domain"
	"timesheet-api/internal/service"
)

const receiptPurgeTimeout = 30 * time.Second

type timesheetRequest struct {
	ProjectID int64    `json:"projectId"`
	Date      string   `json:"date"`
	Hours     *float64 `json:"hours"`
	Note      string   `json:"note"`
}

func (r timesheetRequest) input() (service.TimesheetInput, bool) {
	if r.Hours == nil {
		return service.TimesheetInput{}, false
	}
	return service.TimesheetInput{
		ProjectID: r.ProjectID,
		Date:      r.Date,
		Hours:     *r.Hours,
		Note:      r.Note,
	}, true
}

func (h *Handler) listTimesheets(c *gin.Context) {
	var filter domain.TimesheetFilter
	if v := c.Query("from"); v != "" {
		from, err := domain.ParseDate(v)
		if err != nil {
			badRequest(c, "invalid from date")
			return
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := domain.ParseDate(v)
		if err != nil {
			badRequest(c, "invalid to date")
			return
		}
		filter.To = &to
	}
	if v := c.Query("projectId"); v != "" {
		projectID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || projectID <= 0 {
			badRequest(c, "invalid projectId")
			return
		}
		filter.ProjectID = projectID
	}

	sheets, err := h.timesheets.List(c.Request.Context(), currentIdentity(c).UserID, filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]TimesheetResponse, len(sheets))
	for i := range sheets {
		resp[i] = timesheetToResponse(sheets[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getTimesheet(c *gin.Context) {
	id, ok := pathID(c, "timesheet")
	if !ok {
		return
	}

	sheet, err := h.timesheets.Get(c.Request.Context(), id, currentIdentity(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, timesheetToResponse(*sheet))
}

func (h *Handler) createTimesheet(c *gin.Context) {
	var req timesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in, ok := req.input()
	if !ok {
		badRequest(c, "hours is required")
		return
	}

	sheet, err := h.timesheets.Create(c.Request.Context(), currentIdentity(c).UserID, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, timesheetToResponse(*sheet))
}

func (h *Handler) updateTimesheet(c *gin.Context) {
	id, ok := pathID(c, "timesheet")
	if !ok {
		return
	}
	var req timesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in, ok := req.input()
	if !ok {
		badRequest(c, "hours is required")
		return
	}

	sheet, err := h.timesheets.Update(c.Request.Context(), id, currentIdentity(c).UserID, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, timesheetToResponse(*sheet))
}

func (h *Handler) deleteTimesheet(c *gin.Context) {
	id, ok := pathID(c, "timesheet")
	if !ok {
		return
	}
	userID := currentIdentity(c).UserID

	if err := h.timesheets.Delete(c.Request.Context(), id, userID); err != nil {
		h.writeError(c, err)
		return
	}

	purgeCtx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), receiptPurgeTimeout)
	defer cancel()
	if err := h.receipts.PurgeTimesheet(purgeCtx, userID, id); err != nil {
		h.requestLogger(c).WithError(err).WithField("timesheet_id", id).Warn("purge receipt objects")
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context, resource string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+resource+" id")
		return 0, false
	}
	return id, true
}
