package users

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Delete removes a user by id. Deleting an unknown id still succeeds.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), store.Users, c.Param("id")); err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
