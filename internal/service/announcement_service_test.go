package service

import (
	"errors"
	"testing"
	"time"

	"github.com/campuscms/internal/db"
)

func TestCreateAnnouncementRequiresTitle(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAnnouncementService(db.DB)
	if _, err := svc.Create(AnnouncementInput{Title: "  "}); !errors.Is(err, ErrAnnouncementTitleMissing) {
		t.Fatalf("expected ErrAnnouncementTitleMissing, got %v", err)
	}
}

func TestListPublishedSkipsDraftsAndFutureNotices(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAnnouncementService(db.DB)

	now := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	if _, err := svc.Create(AnnouncementInput{Title: "Admissions open", PublishedAt: &now}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(AnnouncementInput{Title: "Draft notice"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(AnnouncementInput{Title: "Scheduled notice", PublishedAt: &future}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, err := svc.ListPublished(0)
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one published announcement, got %d", len(items))
	}
	if items[0].Title != "Admissions open" {
		t.Fatalf("unexpected announcement %q", items[0].Title)
	}
}

func TestPinnedAnnouncementsSortFirst(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAnnouncementService(db.DB)

	earlier := time.Now().Add(-2 * time.Hour)
	later := time.Now().Add(-time.Hour)

	if _, err := svc.Create(AnnouncementInput{Title: "Regular", PublishedAt: &later}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(AnnouncementInput{Title: "Pinned", Pinned: true, PublishedAt: &earlier}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, err := svc.ListPublished(0)
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(items) != 2 || items[0].Title != "Pinned" {
		t.Fatalf("expected pinned announcement first, got %+v", items)
	}
}

func TestUpdateAnnouncement(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAnnouncementService(db.DB)
	item, err := svc.Create(AnnouncementInput{Title: "Old title"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(item.ID, AnnouncementInput{Title: "New title", Body: "Details"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "New title" || updated.Body != "Details" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := svc.Update(9999, AnnouncementInput{Title: "X"}); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}
