package reservations

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Delete cancels a reservation by id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), store.Reservations, c.Param("id")); err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}
