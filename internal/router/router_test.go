package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sitecms/internal/auth"
	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/handler"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	engine    *gin.Engine
	cfg       config.AppConfig
	api       *handler.API
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	gdb, err := db.Open(filepath.Join(dir, fmt.Sprintf("router-%d.db", time.Now().UnixNano())), logger.Silent)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := config.Default()
	cfg.Upload.Dir = filepath.Join(dir, "uploads")
	cfg.Server.AllowedOrigins = []string{"http://frontend.test"}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenIssuer, cfg.Auth.TokenTTL)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}

	api := handler.NewAPI(gdb, handler.Options{
		Tokens:    tokens,
		UploadDir: cfg.Upload.Dir,
		UploadURL: cfg.Upload.URLPath,
		UploadMax: cfg.Upload.MaxBytes,
	})

	return &testServer{
		engine:    SetupRouter(api, cfg, zerolog.Nop()),
		cfg:       cfg,
		api:       api,
		uploadDir: cfg.Upload.Dir,
	}
}

func TestSetupRouterServesUploads(t *testing.T) {
	srv := newTestServer(t)

	if err := os.MkdirAll(srv.uploadDir, 0o755); err != nil {
		t.Fatalf("failed to create upload dir: %v", err)
	}
	fileContent := []byte("hello uploads")
	if err := os.WriteFile(filepath.Join(srv.uploadDir, "example.txt"), fileContent, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/uploads/example.txt", nil)
	rr := httptest.NewRecorder()
	srv.engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != string(fileContent) {
		t.Fatalf("unexpected body, got %q", rr.Body.String())
	}
}

func TestSetupRouterSystemEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/ping", "/healthz"} {
		rr := httptest.NewRecorder()
		srv.engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
		if rr.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: expected a request id header", path)
		}
	}

	rr := httptest.NewRecorder()
	srv.engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}

func TestSetupRouterCORS(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/blogs", nil)
	req.Header.Set("Origin", "http://frontend.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	srv.engine.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://frontend.test" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
	if rr.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("expected credentials to be allowed")
	}
}
