package users

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Create stores the request body verbatim as a new user and echoes it back
// with the assigned id.
func (h *Handler) Create(c *gin.Context) {
	body, ok := common.BindDocument(c)
	if !ok {
		return
	}
	id, err := h.store.Add(c.Request.Context(), store.Users, body)
	if err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusCreated, common.WithID(id, body))
}
