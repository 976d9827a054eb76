package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/longbourn/pemberley/models"
	"github.com/longbourn/pemberley/utils"
)

// SetPrimaryImage promotes one image to be a book's cover. The clear and set
// run in a single transaction holding the book row lock, so a book can never
// end up with zero or multiple primaries.
func (h *ImageHandler) SetPrimaryImage(c *gin.Context) {
	utils.LogInfo("SetPrimaryImage called")

	bookID := c.Param("id")
	imageID := c.Param("image_id")

	var image models.BookImage
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := lockForUpdate(tx).First(&book, "id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Image not found", err)
			}
			return err
		}

		if err := tx.Model(&models.BookImage{}).
			Where("book_id = ?", bookID).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		res := tx.Model(&models.BookImage{}).
			Where("id = ? AND book_id = ?", imageID, bookID).
			Update("is_primary", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.NotFoundError("Image not found", nil)
		}

		if err := tx.First(&image, "id = ?", imageID).Error; err != nil {
			return err
		}
		return tx.Model(&book).Update("cover_image_url", image.URL).Error
	})
	if err != nil {
		utils.LogError("Failed to set primary image %s for book %s: %v", imageID, bookID, err)
		utils.AppErrorResponse(c, err, "Failed to set primary image")
		return
	}

	utils.LogInfo("Image %s is now primary for book %s", imageID, bookID)
	c.JSON(http.StatusOK, image)
}

// DeleteImage removes one image from a book. When the primary is deleted the
// next image in canonical order is promoted; when nothing remains the book's
// cover_image_url is cleared.
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	utils.LogInfo("DeleteImage called")

	bookID := c.Param("id")
	imageID := c.Param("image_id")

	var removedURL string
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := lockForUpdate(tx).First(&book, "id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Image not found", err)
			}
			return err
		}

		var image models.BookImage
		if err := tx.First(&image, "id = ? AND book_id = ?", imageID, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Image not found", err)
			}
			return err
		}

		if err := tx.Delete(&image).Error; err != nil {
			return err
		}
		removedURL = image.URL

		if !image.IsPrimary {
			return nil
		}

		remaining, err := bookImagesOrdered(tx, bookID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return tx.Model(&book).Update("cover_image_url", nil).Error
		}

		next := remaining[0]
		if err := tx.Model(&models.BookImage{}).
			Where("id = ?", next.ID).
			Update("is_primary", true).Error; err != nil {
			return err
		}
		return tx.Model(&book).Update("cover_image_url", next.URL).Error
	})
	if err != nil {
		utils.LogError("Failed to delete image %s from book %s: %v", imageID, bookID, err)
		utils.AppErrorResponse(c, err, "Failed to delete image")
		return
	}

	// storage failures must not block record cleanup
	_ = h.Store.Remove(removedURL)

	utils.LogInfo("Image %s deleted from book %s", imageID, bookID)
	c.Status(http.StatusNoContent)
}
