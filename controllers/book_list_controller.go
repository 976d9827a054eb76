package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/longbourn/pemberley/models"
	"github.com/longbourn/pemberley/utils"
)

// ListBooks returns all books ordered by year published, oldest first.
// Books without a year sort last.
func (h *BookHandler) ListBooks(c *gin.Context) {
	utils.LogInfo("ListBooks called")

	books := []models.Book{}
	if err := h.DB.Order("year_published ASC NULLS LAST").Find(&books).Error; err != nil {
		utils.LogError("Failed to fetch books: %v", err)
		utils.InternalServerError(c, "Failed to fetch books", err.Error())
		return
	}

	utils.LogDebug("Retrieved %d books", len(books))
	c.JSON(http.StatusOK, books)
}
