package service

import (
	"errors"
	"strings"

	"github.com/campuscms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrGalleryNotFound      = errors.New("gallery image not found")
	ErrGalleryImageMissing  = errors.New("gallery image is required")
	ErrGalleryStatusInvalid = errors.New("gallery status is invalid")
)

const (
	GalleryStatusPublished = "published"
	GalleryStatusDraft     = "draft"
)

// GalleryService handles the campus photo gallery.
type GalleryService struct {
	db *gorm.DB
}

// GalleryInput represents fields accepted when creating or updating a
// gallery image.
type GalleryInput struct {
	Title       string
	Description string
	ImageURL    string
	ImageWidth  int
	ImageHeight int
	Status      string
	SortOrder   int
}

// GalleryListResult aggregates paginated gallery results.
type GalleryListResult struct {
	Items      []db.GalleryImage
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// ListAll returns every gallery image ordered by priority, for the admin
// panel.
func (s *GalleryService) ListAll() ([]db.GalleryImage, error) {
	var items []db.GalleryImage
	if err := s.db.Order("sort_order desc").Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListPublished returns published gallery images with pagination for the
// public site.
func (s *GalleryService) ListPublished(page, perPage int) (GalleryListResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 12
	}
	result := GalleryListResult{Page: page, PerPage: perPage}

	query := s.db.Model(&db.GalleryImage{}).Where("status = ?", GalleryStatusPublished)
	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = int((result.Total + int64(perPage) - 1) / int64(perPage))
	if result.TotalPages == 0 {
		result.TotalPages = 1
	}

	if err := query.Order("sort_order desc").Order("created_at desc").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Get fetches a gallery image by id.
func (s *GalleryService) Get(id uint) (*db.GalleryImage, error) {
	var item db.GalleryImage
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new gallery image.
func (s *GalleryService) Create(input GalleryInput) (*db.GalleryImage, error) {
	if err := validateGalleryInput(input); err != nil {
		return nil, err
	}

	item := db.GalleryImage{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		ImageWidth:  input.ImageWidth,
		ImageHeight: input.ImageHeight,
		Status:      normalizeGalleryStatus(input.Status),
		SortOrder:   input.SortOrder,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing gallery image.
func (s *GalleryService) Update(id uint, input GalleryInput) (*db.GalleryImage, error) {
	if err := validateGalleryInput(input); err != nil {
		return nil, err
	}

	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Description = strings.TrimSpace(input.Description)
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.ImageWidth = input.ImageWidth
	item.ImageHeight = input.ImageHeight
	item.Status = normalizeGalleryStatus(input.Status)
	item.SortOrder = input.SortOrder

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a gallery image.
func (s *GalleryService) Delete(id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func validateGalleryInput(input GalleryInput) error {
	if strings.TrimSpace(input.ImageURL) == "" {
		return ErrGalleryImageMissing
	}
	status := normalizeGalleryStatus(input.Status)
	if status != GalleryStatusPublished && status != GalleryStatusDraft {
		return ErrGalleryStatusInvalid
	}
	return nil
}

func normalizeGalleryStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return GalleryStatusPublished
	}
	return status
}
