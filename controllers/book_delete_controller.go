package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/longbourn/pemberley/models"
	"github.com/longbourn/pemberley/utils"
)

// DeleteBook deletes a book record. Stored files behind its images are
// removed best-effort first; image rows fall to the foreign key cascade.
func (h *BookHandler) DeleteBook(c *gin.Context) {
	utils.LogInfo("DeleteBook called")

	bookID := c.Param("id")

	var images []models.BookImage
	if err := h.DB.Where("book_id = ?", bookID).Find(&images).Error; err != nil {
		utils.LogError("Failed to fetch images for book %s: %v", bookID, err)
		utils.InternalServerError(c, "Failed to delete book", err.Error())
		return
	}

	for _, image := range images {
		// storage failures must not block record cleanup
		_ = h.Store.Remove(image.URL)
	}

	if err := h.DB.Delete(&models.Book{}, "id = ?", bookID).Error; err != nil {
		utils.LogError("Failed to delete book %s: %v", bookID, err)
		utils.InternalServerError(c, "Failed to delete book", err.Error())
		return
	}

	utils.LogInfo("Book deleted: %s (%d stored files)", bookID, len(images))
	c.Status(http.StatusNoContent)
}
