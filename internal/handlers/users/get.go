package users

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Get returns a single user by id.
func (h *Handler) Get(c *gin.Context) {
	doc, err := h.store.Get(c.Request.Context(), store.Users, c.Param("id"))
	if err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, common.WithID(doc.ID, doc.Data))
}
