package rooms

import (
	"net/http"

	"github.com/DonSam77/reservasjs/internal/handlers/common"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/gin-gonic/gin"
)

// Ratings and reports are appended to sub-collections of the room. The room
// itself is not looked up. The write is committed before the 201 is sent.

// Rate appends a rating to the room.
func (h *Handler) Rate(c *gin.Context) {
	h.addEntry(c, store.Ratings, "Rating added", "rating")
}

// Report appends a complaint or incident report to the room.
func (h *Handler) Report(c *gin.Context) {
	h.addEntry(c, store.Reports, "Report added", "report")
}

// Ratings lists the ratings of a room.
func (h *Handler) Ratings(c *gin.Context) {
	h.listEntries(c, store.Ratings)
}

// Reports lists the reports of a room.
func (h *Handler) Reports(c *gin.Context) {
	h.listEntries(c, store.Reports)
}

func (h *Handler) addEntry(c *gin.Context, sub, message, key string) {
	body, ok := common.BindDocument(c)
	if !ok {
		return
	}
	col := store.SubCollection(store.Rooms, c.Param("id"), sub)
	if _, err := h.store.Add(c.Request.Context(), col, body); err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, key: body})
}

func (h *Handler) listEntries(c *gin.Context, sub string) {
	col := store.SubCollection(store.Rooms, c.Param("id"), sub)
	docs, err := h.store.List(c.Request.Context(), col)
	if err != nil {
		common.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, common.Documents(docs))
}
