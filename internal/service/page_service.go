package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/campuscms/internal/content"
	"github.com/campuscms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrPageTitleMissing = errors.New("page title is required")
	ErrSlugInvalid      = errors.New("page slug is invalid")
	ErrSlugTaken        = errors.New("page slug is already in use")
	ErrContentInvalid   = errors.New("content payload is invalid")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PageService manages content pages and applies the document merge contract:
// within an update payload an absent key leaves the stored value unchanged
// and an explicit null clears it.
type PageService struct {
	db *gorm.DB
}

// PageInput carries the fields accepted when creating a page.
type PageInput struct {
	Slug     string
	Title    string
	Route    string
	Category string
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// List returns all pages grouped for the admin panel.
func (s *PageService) List() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Order("category").Order("title").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Get fetches a page by id.
func (s *PageService) Get(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Create inserts a new page with an empty content document. The slug must be
// URL-safe and unique; uniqueness is enforced here and backed by the index.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	title := strings.TrimSpace(input.Title)

	if title == "" {
		return nil, ErrPageTitleMissing
	}
	if !slugPattern.MatchString(slug) {
		return nil, ErrSlugInvalid
	}

	var count int64
	if err := s.db.Model(&db.Page{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	page := db.Page{
		Slug:     slug,
		Title:    title,
		Route:    strings.TrimSpace(input.Route),
		Category: strings.TrimSpace(input.Category),
		Content:  db.JSONMap{},
	}

	if err := s.db.Create(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// ApplyUpdate merges a reconciled payload into the stored content document.
// storedFiles maps image field keys to the server paths of files persisted by
// the upload pipeline; a stored path wins over any string value the payload
// carries for the same key.
func (s *PageService) ApplyUpdate(id uint, payload map[string]any, storedFiles map[string]string) (*db.Page, error) {
	page, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	merged := make(db.JSONMap, len(page.Content)+len(payload))
	for key, value := range page.Content {
		merged[key] = value
	}

	for key, value := range payload {
		// Preview shadow fields are a client-side artifact; drop them even if
		// a buggy client leaks one.
		if content.IsPreviewKey(key) {
			continue
		}
		if value == nil {
			delete(merged, key)
			continue
		}
		if content.IsImageKey(key) {
			path, ok := value.(string)
			if !ok || path == "" || strings.HasPrefix(path, "data:") {
				return nil, ErrContentInvalid
			}
		}
		merged[key] = value
	}

	for key, path := range storedFiles {
		if path == "" {
			continue
		}
		merged[key] = path
	}

	page.Content = merged
	if err := s.db.Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// Delete removes a page permanently so its slug can be reused.
func (s *PageService) Delete(id uint) error {
	page, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Unscoped().Delete(page).Error
}
