package db

import (
	"time"

	"gorm.io/gorm"
)

// Page is a standalone content page such as About Us or Placements. Content
// holds the open editable document; its keys follow naming conventions rather
// than a fixed schema.
type Page struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug     string  `gorm:"uniqueIndex;not null" json:"slug"`
	Title    string  `gorm:"not null" json:"title"`
	Route    string  `json:"route"`
	Category string  `json:"category"`
	Content  JSONMap `gorm:"type:text" json:"content"`
}
