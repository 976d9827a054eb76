package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/longbourn/pemberley/models"
	"github.com/longbourn/pemberley/utils"
)

// UpdateBook handles partial book updates. Only recognized fields present in
// the payload are written; a payload with none of them is rejected.
func (h *BookHandler) UpdateBook(c *gin.Context) {
	utils.LogInfo("UpdateBook called")

	bookID := c.Param("id")

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	updates := make(map[string]interface{})

	for _, field := range []string{
		"title", "author", "description", "edition", "publisher",
		"condition", "acquisition_date", "acquisition_notes", "cover_image_url",
	} {
		if value, ok := updateData[field].(string); ok {
			updates[field] = value
		}
	}
	if year, ok := updateData["year_published"].(float64); ok {
		updates["year_published"] = int(year)
	}
	if price, ok := updateData["acquisition_price"].(float64); ok {
		updates["acquisition_price"] = price
	}

	if len(updates) == 0 {
		utils.LogError("Update payload had no recognized fields")
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	var book models.Book
	if err := h.DB.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Book not found: %s", bookID)
			utils.NotFound(c, "Book not found")
			return
		}
		utils.LogError("Failed to fetch book: %v", err)
		utils.InternalServerError(c, "Failed to fetch book", err.Error())
		return
	}

	if err := h.DB.Model(&book).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update book: %v", err)
		utils.InternalServerError(c, "Failed to update book", err.Error())
		return
	}

	var updated models.Book
	if err := h.DB.First(&updated, "id = ?", bookID).Error; err != nil {
		utils.LogError("Failed to fetch updated book: %v", err)
		utils.InternalServerError(c, "Book updated but failed to fetch details", err.Error())
		return
	}

	utils.LogInfo("Book updated: %s (%d fields)", bookID, len(updates))
	c.JSON(http.StatusOK, updated)
}
