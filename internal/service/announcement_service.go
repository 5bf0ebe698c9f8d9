package service

import (
	"errors"
	"strings"
	"time"

	"github.com/campuscms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrAnnouncementNotFound     = errors.New("announcement not found")
	ErrAnnouncementTitleMissing = errors.New("announcement title is required")
)

// AnnouncementService handles notices shown on the public site.
type AnnouncementService struct {
	db *gorm.DB
}

// AnnouncementInput represents fields accepted when creating or updating an
// announcement. A nil PublishedAt keeps the announcement in draft.
type AnnouncementInput struct {
	Title       string
	Body        string
	Category    string
	Pinned      bool
	PublishedAt *time.Time
}

// NewAnnouncementService creates an AnnouncementService instance.
func NewAnnouncementService(gdb *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: gdb}
}

// List returns all announcements for the admin panel, newest first.
func (s *AnnouncementService) List() ([]db.Announcement, error) {
	var items []db.Announcement
	if err := s.db.Order("pinned desc").Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListPublished returns announcements visible on the public site.
func (s *AnnouncementService) ListPublished(limit int) ([]db.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}

	var items []db.Announcement
	if err := s.db.
		Where("published_at IS NOT NULL AND published_at <= ?", time.Now()).
		Order("pinned desc").Order("published_at desc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches an announcement by id.
func (s *AnnouncementService) Get(id uint) (*db.Announcement, error) {
	var item db.Announcement
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new announcement.
func (s *AnnouncementService) Create(input AnnouncementInput) (*db.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrAnnouncementTitleMissing
	}

	item := db.Announcement{
		Title:       title,
		Body:        strings.TrimSpace(input.Body),
		Category:    strings.TrimSpace(input.Category),
		Pinned:      input.Pinned,
		PublishedAt: input.PublishedAt,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing announcement.
func (s *AnnouncementService) Update(id uint, input AnnouncementInput) (*db.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrAnnouncementTitleMissing
	}

	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	item.Title = title
	item.Body = strings.TrimSpace(input.Body)
	item.Category = strings.TrimSpace(input.Category)
	item.Pinned = input.Pinned
	item.PublishedAt = input.PublishedAt

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}
