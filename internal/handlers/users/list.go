package users

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// List returns every user as {id, ...fields}.
func (h *Handler) List(c *gin.Context) {
	docs, err := h.store.List(c.Request.Context(), store.Users)
	if err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, common.Documents(docs))
}
