package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/longbourn/pemberley/models"
	"github.com/longbourn/pemberley/storage"
	"github.com/longbourn/pemberley/utils"
)

// ImageHandler serves the per-book image endpoints
type ImageHandler struct {
	DB    *gorm.DB
	Store storage.CoverStore
}

// NewImageHandler creates an image handler with its collaborators
func NewImageHandler(db *gorm.DB, store storage.CoverStore) *ImageHandler {
	return &ImageHandler{DB: db, Store: store}
}

// bookImagesOrdered returns a book's images in canonical order: the primary
// image first, then ascending position.
func bookImagesOrdered(db *gorm.DB, bookID string) ([]models.BookImage, error) {
	images := []models.BookImage{}
	err := db.Where("book_id = ?", bookID).
		Order("is_primary DESC, position ASC").
		Find(&images).Error
	return images, err
}

// ListImages returns all images for a book in canonical order
func (h *ImageHandler) ListImages(c *gin.Context) {
	utils.LogInfo("ListImages called")

	bookID := c.Param("id")

	images, err := bookImagesOrdered(h.DB, bookID)
	if err != nil {
		utils.LogError("Failed to fetch images: %v", err)
		utils.InternalServerError(c, "Failed to fetch images", err.Error())
		return
	}

	utils.LogDebug("Retrieved %d images for book %s", len(images), bookID)
	c.JSON(http.StatusOK, images)
}

// UploadImage attaches an uploaded image to a book. The first image for a
// book automatically becomes its primary and is mirrored into the book's
// cover_image_url.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	utils.LogInfo("UploadImage called")

	bookID := c.Param("id")

	file, err := c.FormFile("file")
	if err != nil {
		utils.LogError("No file in upload request: %v", err)
		utils.BadRequest(c, "No file uploaded", "Please provide an image file")
		return
	}
	caption := c.PostForm("caption")

	src, err := file.Open()
	if err != nil {
		utils.LogError("Failed to open uploaded file: %v", err)
		utils.InternalServerError(c, "Failed to read uploaded file", err.Error())
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	publicURL, err := h.Store.Upload(c.Request.Context(), file.Filename, contentType, src)
	if err != nil {
		utils.LogError("Upload rejected: %v", err)
		utils.AppErrorResponse(c, err, "Failed to upload image")
		return
	}
	utils.LogDebug("Stored file for book %s at %s", bookID, publicURL)

	var image models.BookImage
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := lockForUpdate(tx).First(&book, "id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Book not found", err)
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.BookImage{}).Where("book_id = ?", book.ID).Count(&existing).Error; err != nil {
			return err
		}

		image = models.BookImage{
			BookID:    book.ID,
			URL:       publicURL,
			Position:  int(existing),
			IsPrimary: existing == 0,
		}
		if caption != "" {
			image.Caption = &caption
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}

		if image.IsPrimary {
			return tx.Model(&book).Update("cover_image_url", publicURL).Error
		}
		return nil
	})
	if err != nil {
		// the file is already in storage; clean it up best-effort
		_ = h.Store.Remove(publicURL)
		utils.LogError("Failed to attach image to book %s: %v", bookID, err)
		utils.AppErrorResponse(c, err, "Failed to save image")
		return
	}

	utils.LogInfo("Image %s attached to book %s (primary: %v, position: %d)",
		image.ID, bookID, image.IsPrimary, image.Position)
	c.JSON(http.StatusCreated, image)
}
