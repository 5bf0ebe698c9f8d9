package e2e

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/campuscms/client"
	"github.com/campuscms/internal/config"
	"github.com/campuscms/internal/content"
	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/handler"
	"github.com/campuscms/internal/router"
	"github.com/gin-gonic/gin"
)

type e2eSuite struct {
	server *httptest.Server
	client *client.Client
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.AppConfig{
		DatabasePath:  filepath.Join(t.TempDir(), "e2e.db"),
		UploadDir:     t.TempDir(),
		UploadURLPath: "/static/uploads",
		JWTSecret:     "e2e-secret",
		TokenTTL:      time.Hour,
	}

	if err := db.Init(cfg.DatabasePath); err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	if err := db.EnsureUser("admin", "campus-secret"); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	api := handler.NewAPI(db.DB, cfg)
	server := httptest.NewServer(router.SetupRouter(api, cfg))
	t.Cleanup(server.Close)

	c := client.New(server.URL+"/api", "")
	if err := c.Login(context.Background(), "admin", "campus-secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	return &e2eSuite{server: server, client: c}
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestPageEditLifecycle(t *testing.T) {
	suite := newE2ESuite(t)
	ctx := context.Background()

	page, err := suite.client.Create(ctx, client.CreatePageInput{
		Slug: "about-us", Title: "About Us", Route: "/about", Category: "general",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// First edit session: text fields plus a staged hero image.
	session, err := suite.client.NewEditSession(ctx, page.ID)
	if err != nil {
		t.Fatalf("failed to open edit session: %v", err)
	}
	if err := session.Buffer().SetField("hero.title", "About the College"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := session.Buffer().SetField("mainContent", "<p>Founded in 1998.</p>"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := session.Buffer().StageImage("heroImage", "hero.png", testPNG(t)); err != nil {
		t.Fatalf("StageImage failed: %v", err)
	}

	updated, err := session.Submit(ctx)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if title, _ := content.StringField(updated.Content, "hero.title"); title != "About the College" {
		t.Fatalf("expected hero title persisted, got %q", title)
	}
	heroPath, ok := updated.Content["heroImage"].(string)
	if !ok || !strings.HasPrefix(heroPath, "/static/uploads/") {
		t.Fatalf("expected stored hero image path, got %v", updated.Content["heroImage"])
	}
	for key := range updated.Content {
		if strings.HasSuffix(key, "_preview") {
			t.Fatalf("preview key %q leaked into the stored document", key)
		}
	}

	// Round trip: an untouched session submits and nothing changes.
	before, err := suite.client.GetBySlug(ctx, "about-us")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	idle, err := suite.client.NewEditSession(ctx, page.ID)
	if err != nil {
		t.Fatalf("failed to open idle session: %v", err)
	}
	after, err := idle.Submit(ctx)
	if err != nil {
		t.Fatalf("idle submit failed: %v", err)
	}
	if !reflect.DeepEqual(map[string]any(before.Content), map[string]any(after.Content)) {
		t.Fatalf("idle submit changed the document:\nbefore %v\nafter  %v", before.Content, after.Content)
	}

	// Remove the hero image: the tombstone must clear it server-side.
	removal, err := suite.client.NewEditSession(ctx, page.ID)
	if err != nil {
		t.Fatalf("failed to open removal session: %v", err)
	}
	removal.Buffer().RemoveImage("heroImage")
	cleared, err := removal.Submit(ctx)
	if err != nil {
		t.Fatalf("removal submit failed: %v", err)
	}
	if _, exists := cleared.Content["heroImage"]; exists {
		t.Fatalf("expected hero image cleared, got %v", cleared.Content["heroImage"])
	}
	if title, _ := content.StringField(cleared.Content, "hero.title"); title != "About the College" {
		t.Fatalf("expected untouched fields to survive removal, got %q", title)
	}

	if err := suite.client.Delete(ctx, page.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := suite.client.GetBySlug(ctx, "about-us"); err == nil {
		t.Fatal("expected fetch of deleted page to fail")
	}
}

func TestDuplicateSlugRejectedByServer(t *testing.T) {
	suite := newE2ESuite(t)
	ctx := context.Background()

	if _, err := suite.client.Create(ctx, client.CreatePageInput{Slug: "placements", Title: "Placements"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err := suite.client.Create(ctx, client.CreatePageInput{Slug: "placements", Title: "Again"})
	if err == nil {
		t.Fatal("expected duplicate slug rejected")
	}
	if !strings.Contains(err.Error(), "slug") {
		t.Fatalf("expected server-provided slug message, got %v", err)
	}
}

func TestMutationsRequireToken(t *testing.T) {
	suite := newE2ESuite(t)
	ctx := context.Background()

	anonymous := client.New(suite.server.URL+"/api", "")
	_, err := anonymous.Create(ctx, client.CreatePageInput{Slug: "hostel", Title: "Hostel"})
	if err == nil {
		t.Fatal("expected unauthenticated create to fail")
	}
}
