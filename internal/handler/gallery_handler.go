package handler

import (
	"errors"
	"net/http"

	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

type galleryPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ImageWidth  int    `json:"imageWidth"`
	ImageHeight int    `json:"imageHeight"`
	Status      string `json:"status"`
	SortOrder   int    `json:"sortOrder"`
}

func (p galleryPayload) toInput() service.GalleryInput {
	return service.GalleryInput{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		ImageWidth:  p.ImageWidth,
		ImageHeight: p.ImageHeight,
		Status:      p.Status,
		SortOrder:   p.SortOrder,
	}
}

// ListGalleryImages returns all gallery images for the admin panel.
func (a *API) ListGalleryImages(c *gin.Context) {
	items, err := a.galleries.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load gallery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListPublishedGallery returns published gallery images for the public site.
func (a *API) ListPublishedGallery(c *gin.Context) {
	result, err := a.galleries.ListPublished(
		parseIntQuery(c, "page", 1),
		parseIntQuery(c, "perPage", 12),
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load gallery")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"perPage":    result.PerPage,
	})
}

// CreateGalleryImage creates a new gallery image.
func (a *API) CreateGalleryImage(c *gin.Context) {
	var payload galleryPayload
	if !bindJSON(c, &payload, "invalid gallery payload") {
		return
	}

	item, err := a.galleries.Create(payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryImageMissing):
			respondError(c, http.StatusBadRequest, "gallery image URL is required")
		case errors.Is(err, service.ErrGalleryStatusInvalid):
			respondError(c, http.StatusBadRequest, "gallery status is invalid")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create gallery image")
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateGalleryImage updates an existing gallery image.
func (a *API) UpdateGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid gallery image id")
		return
	}

	var payload galleryPayload
	if !bindJSON(c, &payload, "invalid gallery payload") {
		return
	}

	item, err := a.galleries.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryNotFound):
			respondError(c, http.StatusNotFound, "gallery image not found")
		case errors.Is(err, service.ErrGalleryImageMissing):
			respondError(c, http.StatusBadRequest, "gallery image URL is required")
		case errors.Is(err, service.ErrGalleryStatusInvalid):
			respondError(c, http.StatusBadRequest, "gallery status is invalid")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update gallery image")
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteGalleryImage removes a gallery image.
func (a *API) DeleteGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid gallery image id")
		return
	}

	if err := a.galleries.Delete(id); err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "gallery image not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete gallery image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "gallery image deleted"})
}
