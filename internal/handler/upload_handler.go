package handler

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	maxUploadSize  = 10 << 20
	thumbnailWidth = 480
	thumbnailQuality = 80
)

var (
	errUploadNotImage = errors.New("only image files are allowed")
	errUploadTooLarge = errors.New("file exceeds the upload size limit")
)

// UploadImage stores a single editor asset (e.g. an image embedded in rich
// text) and returns its public URL.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no image file in request")
		return
	}

	urlPath, err := a.saveUpload(file)
	if err != nil {
		if errors.Is(err, errUploadNotImage) || errors.Is(err, errUploadTooLarge) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to store image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": urlPath})
}

// saveUpload persists an uploaded image under a unique date+uuid name and
// returns its URL path. A downscaled thumbnail is written alongside on a
// best-effort basis.
func (a *API) saveUpload(file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", errUploadNotImage
	}
	if file.Size > maxUploadSize {
		return "", errUploadTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxUploadSize {
		return "", errUploadTooLarge
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)

	if err := os.WriteFile(filepath.Join(a.uploadDir, name), data, 0o644); err != nil {
		return "", err
	}

	if err := a.writeThumbnail(data, name); err != nil {
		log.Printf("thumbnail generation skipped for %s: %v", name, err)
	}

	return strings.TrimRight(a.uploadURL, "/") + "/" + name, nil
}

// writeThumbnail decodes an uploaded image and stores a JPEG downscaled to
// thumbnailWidth next to the original.
func (a *API) writeThumbnail(data []byte, name string) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > thumbnailWidth {
		scaledHeight := height * thumbnailWidth / width
		dst := image.NewRGBA(image.Rect(0, 0, thumbnailWidth, scaledHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return err
	}

	ext := filepath.Ext(name)
	thumbName := strings.TrimSuffix(name, ext) + ".thumb.jpg"
	return os.WriteFile(filepath.Join(a.uploadDir, thumbName), buf.Bytes(), 0o644)
}
