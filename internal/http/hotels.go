package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type hotelRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (h *Handler) listHotels(c *gin.Context) {
	hotels, err := h.hotels.List(c.Request.Context(), currentIdentity(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]HotelResponse, len(hotels))
	for i := range hotels {
		resp[i] = hotelToResponse(hotels[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createHotel(c *gin.Context) {
	var req hotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	hotel, err := h.hotels.Create(c.Request.Context(), currentIdentity(c).UserID, req.Name, req.Address)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotelToResponse(*hotel))
}

func (h *Handler) updateHotel(c *gin.Context) {
	id, ok := pathID(c, "hotel")
	if !ok {
		return
	}
	var req hotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	hotel, err := h.hotels.Update(c.Request.Context(), id, currentIdentity(c).UserID, req.Name, req.Address)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotelToResponse(*hotel))
}

func (h *Handler) deleteHotel(c *gin.Context) {
	id, ok := pathID(c, "hotel")
	if !ok {
		return
	}

	if err := h.hotels.Delete(c.Request.Context(), id, currentIdentity(c).UserID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
