package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/longbourn/pemberley/models"
	"github.com/longbourn/pemberley/utils"
)

// BookIn is the payload for creating a book. Optional fields left unset are
// omitted from the insert rather than written as null.
type BookIn struct {
	Title            string   `json:"title" binding:"required"`
	Author           string   `json:"author"`
	YearPublished    *int     `json:"year_published"`
	Description      *string  `json:"description"`
	Edition          *string  `json:"edition"`
	Publisher        *string  `json:"publisher"`
	Condition        *string  `json:"condition"`
	AcquisitionDate  *string  `json:"acquisition_date"`
	AcquisitionNotes *string  `json:"acquisition_notes"`
	AcquisitionPrice *float64 `json:"acquisition_price"`
	CoverImageURL    *string  `json:"cover_image_url"`
}

// CreateBook handles book creation
func (h *BookHandler) CreateBook(c *gin.Context) {
	utils.LogInfo("CreateBook called")

	var input BookIn
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if input.Author == "" {
		input.Author = "Jane Austen"
	}

	book := models.Book{
		Title:            input.Title,
		Author:           input.Author,
		YearPublished:    input.YearPublished,
		Description:      input.Description,
		Edition:          input.Edition,
		Publisher:        input.Publisher,
		Condition:        input.Condition,
		AcquisitionDate:  input.AcquisitionDate,
		AcquisitionNotes: input.AcquisitionNotes,
		AcquisitionPrice: input.AcquisitionPrice,
		CoverImageURL:    input.CoverImageURL,
	}

	if err := h.DB.Create(&book).Error; err != nil {
		utils.LogError("Failed to create book: %v", err)
		utils.InternalServerError(c, "Failed to create book", err.Error())
		return
	}

	utils.LogInfo("Book created: %s (%s)", book.Title, book.ID)
	c.JSON(http.StatusCreated, book)
}
