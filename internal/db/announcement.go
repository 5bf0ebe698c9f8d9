package db

import (
	"time"

	"gorm.io/gorm"
)

// Announcement is a dated notice shown on the public site. Body is markdown
// authored in the admin panel.
type Announcement struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string     `gorm:"not null" json:"title"`
	Body        string     `gorm:"type:text" json:"body"`
	Category    string     `json:"category"`
	Pinned      bool       `gorm:"default:false" json:"pinned"`
	PublishedAt *time.Time `json:"publishedAt"`
}
