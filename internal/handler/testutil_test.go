package handler

import (
	"testing"
	"time"

	"github.com/campuscms/internal/config"
	"github.com/campuscms/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestAPI(t *testing.T) (*API, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Page{}, &db.Announcement{}, &db.GalleryImage{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	api := NewAPI(gdb, config.AppConfig{
		UploadDir:     t.TempDir(),
		UploadURLPath: "/static/uploads",
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
	})

	cleanup := func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return api, cleanup
}
