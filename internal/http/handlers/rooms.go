package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// Room returns the persisted record of one live room.
func (h *Handler) Room(c *gin.Context) {
	code := c.Param("code")

	room, err := h.RoomRepo.GetByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		return
	}

	c.JSON(http.StatusOK, room)
}

// WaitingRooms lists rooms with an open seat.
func (h *Handler) WaitingRooms(c *gin.Context) {
	rooms, err := h.RoomRepo.FindWaiting(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "count": len(rooms)})
}
