package db

import (
	"time"

	"gorm.io/gorm"
)

// GalleryImage is one photo in the campus gallery (events, labs, fests).
type GalleryImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `gorm:"not null" json:"imageUrl"`
	ImageWidth  int    `json:"imageWidth"`
	ImageHeight int    `json:"imageHeight"`
	Status      string `gorm:"default:published" json:"status"` // published, draft
	SortOrder   int    `gorm:"default:0" json:"sortOrder"`
}
