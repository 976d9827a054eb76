package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookImage represents an image attached to a book. At most one image per
// book carries IsPrimary; its URL is mirrored into the book's CoverImageURL.
type BookImage struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	BookID    string    `gorm:"type:uuid;not null;index" json:"book_id"`
	URL       string    `gorm:"not null" json:"url"`
	Caption   *string   `json:"caption,omitempty"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for BookImage
func (BookImage) TableName() string {
	return "book_images"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (i *BookImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
