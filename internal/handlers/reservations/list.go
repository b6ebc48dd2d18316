package reservations

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// List returns all reservations.
func (h *Handler) List(c *gin.Context) {
	docs, err := h.store.List(c.Request.Context(), store.Reservations)
	if err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, common.Documents(docs))
}
