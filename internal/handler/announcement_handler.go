package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/campuscms/internal/service"
	"github.com/campuscms/internal/view"
	"github.com/gin-gonic/gin"
)

type announcementPayload struct {
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Category    string     `json:"category"`
	Pinned      bool       `json:"pinned"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (p announcementPayload) toInput() service.AnnouncementInput {
	return service.AnnouncementInput{
		Title:       p.Title,
		Body:        p.Body,
		Category:    p.Category,
		Pinned:      p.Pinned,
		PublishedAt: p.PublishedAt,
	}
}

// ListAnnouncements returns all announcements for the admin panel.
func (a *API) ListAnnouncements(c *gin.Context) {
	items, err := a.announcements.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load announcements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": items})
}

// ListPublishedAnnouncements returns publicly visible announcements with
// their markdown bodies rendered to HTML.
func (a *API) ListPublishedAnnouncements(c *gin.Context) {
	items, err := a.announcements.ListPublished(parseIntQuery(c, "limit", 20))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load announcements")
		return
	}

	rendered := make([]gin.H, 0, len(items))
	for _, item := range items {
		rendered = append(rendered, gin.H{
			"id":          item.ID,
			"title":       item.Title,
			"category":    item.Category,
			"pinned":      item.Pinned,
			"publishedAt": item.PublishedAt,
			"html":        view.RenderMarkdown(item.Body),
		})
	}
	c.JSON(http.StatusOK, gin.H{"announcements": rendered})
}

// CreateAnnouncement creates a new announcement.
func (a *API) CreateAnnouncement(c *gin.Context) {
	var payload announcementPayload
	if !bindJSON(c, &payload, "invalid announcement payload") {
		return
	}

	item, err := a.announcements.Create(payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementTitleMissing) {
			respondError(c, http.StatusBadRequest, "announcement title is required")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create announcement")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateAnnouncement modifies an existing announcement.
func (a *API) UpdateAnnouncement(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid announcement id")
		return
	}

	var payload announcementPayload
	if !bindJSON(c, &payload, "invalid announcement payload") {
		return
	}

	item, err := a.announcements.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			respondError(c, http.StatusNotFound, "announcement not found")
		case errors.Is(err, service.ErrAnnouncementTitleMissing):
			respondError(c, http.StatusBadRequest, "announcement title is required")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update announcement")
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteAnnouncement removes an announcement.
func (a *API) DeleteAnnouncement(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid announcement id")
		return
	}

	if err := a.announcements.Delete(id); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			respondError(c, http.StatusNotFound, "announcement not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete announcement")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "announcement deleted"})
}
