package rooms

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Update merges the body into an existing room. Any field may be written,
// availability and occupied included; combinations are not checked.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	body, ok := common.BindDocument(c)
	if !ok {
		return
	}
	if err := h.store.Update(c.Request.Context(), store.Rooms, id, body); err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, common.WithID(id, body))
}
