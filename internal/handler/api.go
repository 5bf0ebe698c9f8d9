package handler

import (
	"time"

	"github.com/campuscms/internal/config"
	"github.com/campuscms/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	pages         *service.PageService
	announcements *service.AnnouncementService
	galleries     *service.GalleryService
	uploadDir     string
	uploadURL     string
	jwtSecret     []byte
	tokenTTL      time.Duration
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	return &API{
		db:            gdb,
		pages:         service.NewPageService(gdb),
		announcements: service.NewAnnouncementService(gdb),
		galleries:     service.NewGalleryService(gdb),
		uploadDir:     cfg.UploadDir,
		uploadURL:     cfg.UploadURLPath,
		jwtSecret:     []byte(cfg.JWTSecret),
		tokenTTL:      cfg.TokenTTL,
	}
}

// DB exposes the underlying gorm instance for tests.
func (a *API) DB() *gorm.DB {
	return a.db
}
