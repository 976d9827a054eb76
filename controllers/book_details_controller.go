package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/longbourn/pemberley/models"
	"github.com/longbourn/pemberley/utils"
)

// GetBook returns a single book merged with its ordered image list
func (h *BookHandler) GetBook(c *gin.Context) {
	utils.LogInfo("GetBook called")

	bookID := c.Param("id")

	var book models.Book
	err := h.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("is_primary DESC, position ASC")
	}).First(&book, "id = ?", bookID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Book not found: %s", bookID)
			utils.NotFound(c, "Book not found")
			return
		}
		utils.LogError("Failed to fetch book: %v", err)
		utils.InternalServerError(c, "Failed to fetch book", err.Error())
		return
	}

	c.JSON(http.StatusOK, book)
}
