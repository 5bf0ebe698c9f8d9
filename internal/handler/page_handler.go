package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/campuscms/internal/content"
	"github.com/campuscms/internal/service"
	"github.com/campuscms/internal/view"
	"github.com/gin-gonic/gin"
)

type createPagePayload struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Route    string `json:"route"`
	Category string `json:"category"`
}

// ListPages returns all pages for the admin panel.
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPage returns a page by id.
func (a *API) GetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	page, err := a.pages.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPageBySlug returns a page by slug for public consumption.
func (a *API) GetPageBySlug(c *gin.Context) {
	page, err := a.pages.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPageView returns the render-ready view for a slug. A missing document is
// not an error: the public page must always have something to show, so the
// compiled-in defaults fill every absent field.
func (a *API) GetPageView(c *gin.Context) {
	slug := c.Param("slug")
	defaults := view.DefaultsFor(slug)

	page, err := a.pages.GetBySlug(slug)
	if err != nil {
		page = nil
	}

	c.JSON(http.StatusOK, view.BuildPageView(page, defaults))
}

// CreatePage creates a page with an empty content document.
func (a *API) CreatePage(c *gin.Context) {
	var payload createPagePayload
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.pages.Create(service.PageInput{
		Slug:     payload.Slug,
		Title:    payload.Title,
		Route:    payload.Route,
		Category: payload.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPageTitleMissing):
			respondError(c, http.StatusBadRequest, "page title is required")
		case errors.Is(err, service.ErrSlugInvalid):
			respondError(c, http.StatusBadRequest, "page slug must be lowercase letters, digits and hyphens")
		case errors.Is(err, service.ErrSlugTaken):
			respondError(c, http.StatusConflict, "a page with this slug already exists")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create page")
		}
		return
	}

	c.JSON(http.StatusCreated, page)
}

// UpdatePage merges a reconciled content payload into a page. The request is
// multipart: a "data" part with the JSON payload plus one "image_<key>" part
// per staged file. Uploaded files are stored first so their server paths can
// replace the corresponding image fields.
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	raw := c.PostForm("data")
	if strings.TrimSpace(raw) == "" {
		respondError(c, http.StatusBadRequest, "missing data field")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		respondError(c, http.StatusBadRequest, "data field is not valid JSON")
		return
	}

	stored := make(map[string]string)
	if form, err := c.MultipartForm(); err == nil {
		for name, files := range form.File {
			key, ok := strings.CutPrefix(name, "image_")
			if !ok || len(files) == 0 {
				continue
			}
			if !content.IsImageKey(key) {
				respondError(c, http.StatusBadRequest, "unexpected file part "+name)
				return
			}

			urlPath, err := a.saveUpload(files[0])
			if err != nil {
				status := http.StatusInternalServerError
				if errors.Is(err, errUploadNotImage) || errors.Is(err, errUploadTooLarge) {
					status = http.StatusBadRequest
				}
				respondError(c, status, "failed to store "+name+": "+err.Error())
				return
			}
			stored[key] = urlPath
		}
	}

	page, err := a.pages.ApplyUpdate(id, payload, stored)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPageNotFound):
			respondError(c, http.StatusNotFound, "page not found")
		case errors.Is(err, service.ErrContentInvalid):
			respondError(c, http.StatusBadRequest, "content payload is invalid")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update page")
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeletePage removes a page permanently.
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	if err := a.pages.Delete(id); err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete page")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "page deleted"})
}
