package rooms

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Availability reports the derived status of one room.
func (h *Handler) Availability(c *gin.Context) {
	doc, err := h.store.Get(c.Request.Context(), store.Rooms, c.Param("id"))
	if err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": doc.ID, FieldAvailability: Status(doc.Data)})
}
