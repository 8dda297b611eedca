package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Kapilpaliwal42/Saas-project/config"
	"github.com/Kapilpaliwal42/Saas-project/media"
	"github.com/Kapilpaliwal42/Saas-project/models"
	"github.com/Kapilpaliwal42/Saas-project/store"
)

const testSecret = "test-secret"

type fakeMedia struct {
	mu         sync.Mutex
	uploads    int
	destroys   []string
	uploadErr  error
	destroyErr error
	bytes      int64
	duration   float64
}

func (f *fakeMedia) Upload(ctx context.Context, in media.UploadInput) (*media.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	// Drain the body the way a real backend would.
	if _, err := io.Copy(io.Discard, in.Reader); err != nil {
		return nil, err
	}
	f.uploads++
	publicID := fmt.Sprintf("asset_%d", f.uploads)
	return &media.UploadResult{
		PublicID:  publicID,
		SecureURL: "https://media.example/" + publicID,
		Bytes:     f.bytes,
		Duration:  f.duration,
	}, nil
}

func (f *fakeMedia) Destroy(ctx context.Context, publicID string, kind models.MediaKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyErr != nil {
		return f.destroyErr
	}
	f.destroys = append(f.destroys, publicID)
	return nil
}

func (f *fakeMedia) PreviewURL(publicID string, format models.SocialFormat, state models.TransformationState, original bool) string {
	return fmt.Sprintf("https://media.example/render/%s/%dx%d/original=%t", publicID, format.Width, format.Height, original)
}

func newTestRouter(t *testing.T, cfg *config.Config, mediaService media.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	videos, err := store.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("store.Open error: %v", err)
	}
	if err := videos.Init(); err != nil {
		t.Fatalf("store Init error: %v", err)
	}
	t.Cleanup(func() { _ = videos.Close() })

	handler := New(cfg, mediaService, videos)
	router := gin.New()
	router.GET("/api/video", handler.HandleVideoList)
	authed := router.Group("/", RequireAuth(cfg.AuthSecret))
	authed.POST("/api/image-upload", handler.HandleImageUpload)
	authed.DELETE("/api/image-upload/delete", handler.HandleImageDelete)
	authed.POST("/api/video-upload", handler.HandleVideoUpload)
	authed.GET("/api/image-transform", handler.HandleTransformURL)
	return router
}

func testConfig() *config.Config {
	return &config.Config{
		AuthSecret:   testSecret,
		MediaBackend: "local",
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileField, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField error: %v", err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("CreateFormFile error: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("file write error: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer close error: %v", err)
	}
	return body, writer.FormDataContentType()
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+MintToken("user_1", testSecret))
	return req
}

func TestImageUpload_RequiresAuth(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{})

	body, contentType := multipartBody(t, nil, "file", "photo.png", "png-bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/image-upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Error != "Unauthorized" {
		t.Errorf("expected Unauthorized body, got %q", resp.Error)
	}
}

func TestImageUpload_RejectsTamperedToken(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{})

	body, contentType := multipartBody(t, nil, "file", "photo.png", "png-bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/image-upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+MintToken("user_1", "wrong-secret"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestImageUpload_ReturnsIdentifiers(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{})

	body, contentType := multipartBody(t, nil, "file", "photo.png", "png-bytes")
	req := authed(httptest.NewRequest(http.MethodPost, "/api/image-upload", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.ImageUploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.PublicID == "" || resp.SecureURL == "" {
		t.Errorf("expected usable identifier and URL, got %+v", resp)
	}
}

func TestImageUpload_MissingFile(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{})

	body, contentType := multipartBody(t, map[string]string{"other": "x"}, "", "", "")
	req := authed(httptest.NewRequest(http.MethodPost, "/api/image-upload", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestImageUpload_UpstreamFailure(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{uploadErr: fmt.Errorf("host down")})

	body, contentType := multipartBody(t, nil, "file", "photo.png", "png-bytes")
	req := authed(httptest.NewRequest(http.MethodPost, "/api/image-upload", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestImageDelete_MissingPublicID(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{})

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/image-upload/delete", strings.NewReader(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestImageDelete_Succeeds(t *testing.T) {
	mediaService := &fakeMedia{}
	router := newTestRouter(t, testConfig(), mediaService)

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/image-upload/delete",
		strings.NewReader(`{"public_id":"asset_1"}`)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(mediaService.destroys) != 1 || mediaService.destroys[0] != "asset_1" {
		t.Errorf("expected destroy of asset_1, got %v", mediaService.destroys)
	}
}

func TestImageDelete_UpstreamFailureSurfacesMessage(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{destroyErr: fmt.Errorf("asset locked")})

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/image-upload/delete",
		strings.NewReader(`{"public_id":"asset_1"}`)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Error != "asset locked" {
		t.Errorf("expected underlying failure message, got %q", resp.Error)
	}
}

func TestVideoUpload_MissingCloudinaryConfig(t *testing.T) {
	cfg := testConfig()
	cfg.MediaBackend = "cloudinary" // no credentials set
	router := newTestRouter(t, cfg, &fakeMedia{})

	body, contentType := multipartBody(t, map[string]string{"title": "demo"}, "file", "clip.mp4", "mp4-bytes")
	req := authed(httptest.NewRequest(http.MethodPost, "/api/video-upload", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Error != "Missing cloudinary config" {
		t.Errorf("expected missing config error, got %q", resp.Error)
	}
}

func TestVideoUpload_CreatesRecord(t *testing.T) {
	mediaService := &fakeMedia{bytes: 524288, duration: 42.5}
	router := newTestRouter(t, testConfig(), mediaService)

	fields := map[string]string{
		"title":        "demo",
		"description":  "a clip",
		"originalSize": "1048576",
	}
	body, contentType := multipartBody(t, fields, "file", "clip.mp4", "mp4-bytes")
	req := authed(httptest.NewRequest(http.MethodPost, "/api/video-upload", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var record models.VideoRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if record.Title != "demo" || record.Description != "a clip" {
		t.Errorf("unexpected record fields: %+v", record)
	}
	if record.OriginalSize != "1048576" || record.CompressedSize != "524288" {
		t.Errorf("unexpected size fields: %+v", record)
	}
	if record.Duration != 42.5 {
		t.Errorf("expected duration 42.5, got %v", record.Duration)
	}

	// The record is visible in the listing afterwards.
	listReq := httptest.NewRequest(http.MethodGet, "/api/video", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200 on list, got %d", listRec.Code)
	}
	var records []models.VideoRecord
	if err := json.Unmarshal(listRec.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(records) != 1 || records[0].PublicID != record.PublicID {
		t.Errorf("expected the created record in the listing, got %v", records)
	}
}

func TestVideoUpload_MissingFile(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{})

	body, contentType := multipartBody(t, map[string]string{"title": "demo"}, "", "", "")
	req := authed(httptest.NewRequest(http.MethodPost, "/api/video-upload", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVideoList_IsPublicAndEmptyByDefault(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{})

	req := httptest.NewRequest(http.MethodGet, "/api/video", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestTransformURL_Validation(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing public_id", "", http.StatusBadRequest},
		{"unknown format", "public_id=asset_1&format=Nope", http.StatusBadRequest},
		{"brightness too low", "public_id=asset_1&brightness=-100", http.StatusBadRequest},
		{"brightness not a number", "public_id=asset_1&brightness=abc", http.StatusBadRequest},
		{"valid", "public_id=asset_1&brightness=40&sepia=true", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authed(httptest.NewRequest(http.MethodGet, "/api/image-transform?"+tt.query, nil))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTransformURL_DerivesOriginalVariant(t *testing.T) {
	router := newTestRouter(t, testConfig(), &fakeMedia{})

	req := authed(httptest.NewRequest(http.MethodGet,
		"/api/image-transform?public_id=asset_1&format=Twitter+Post+(16%3A9)&original=true", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.TransformURLResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !strings.Contains(resp.URL, "1200x675") || !strings.Contains(resp.URL, "original=true") {
		t.Errorf("unexpected derived URL: %q", resp.URL)
	}
}
