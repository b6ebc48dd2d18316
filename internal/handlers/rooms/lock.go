package rooms

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Lock marks a room as manually disabled.
// The existence check and the write are one conditional update, so a room
// deleted concurrently yields 404 instead of being recreated.
func (h *Handler) Lock(c *gin.Context) {
	err := h.store.Update(c.Request.Context(), store.Rooms, c.Param("id"), map[string]any{
		FieldAvailability: Disabled,
	})
	if err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room disabled for maintenance or other reasons"})
}
