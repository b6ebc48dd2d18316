package rooms

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Delete removes a room by id. Its ratings and reports sub-collections are
// left in place.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), store.Rooms, c.Param("id")); err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}
