package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book represents one physical copy in the collection
type Book struct {
	ID               string      `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string      `gorm:"not null" json:"title"`
	Author           string      `gorm:"not null;default:'Jane Austen'" json:"author"`
	YearPublished    *int        `json:"year_published,omitempty"`
	Description      *string     `json:"description,omitempty"`
	Edition          *string     `json:"edition,omitempty"`
	Publisher        *string     `json:"publisher,omitempty"`
	Condition        *string     `json:"condition,omitempty"`
	AcquisitionDate  *string     `json:"acquisition_date,omitempty"`
	AcquisitionNotes *string     `json:"acquisition_notes,omitempty"`
	AcquisitionPrice *float64    `json:"acquisition_price,omitempty"`
	CoverImageURL    *string     `json:"cover_image_url,omitempty"`
	Images           []BookImage `json:"images,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// TableName specifies the table name for Book
func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
