package rooms

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// List returns every room with availability replaced by its display label.
// The label is computed per response and never written back.
func (h *Handler) List(c *gin.Context) {
	docs, err := h.store.List(c.Request.Context(), store.Rooms)
	if err != nil {
		common.Fail(c, err, notFound)
		return
	}
	out := common.Documents(docs)
	for i, d := range docs {
		out[i][FieldAvailability] = Label(d.Data[FieldAvailability])
	}
	c.JSON(http.StatusOK, out)
}
