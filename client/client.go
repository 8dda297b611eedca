// Package client is the Go consumer of the HTTP API. The editor
// session and the video upload form drive it the way the web pages
// drive the original routes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// UploadImage posts a multipart image upload.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.ImageUploadResponse, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload body: %w", err)
	}

	var resp models.ImageUploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/image-upload", writer.FormDataContentType(), body, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteImage asks the service to destroy an image asset.
func (c *Client) DeleteImage(ctx context.Context, publicID string) error {
	payload, err := json.Marshal(models.DeleteImageRequest{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to encode delete request: %w", err)
	}
	return c.do(ctx, http.MethodDelete, "/api/image-upload/delete", "application/json", bytes.NewReader(payload), http.StatusOK, nil)
}

// DeleteImageDetached fires a delete without awaiting the outcome, for
// unload-time cleanup where the caller cannot block. The request runs
// on a background context so it survives the caller going away;
// failures are logged, never surfaced.
func (c *Client) DeleteImageDetached(publicID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.DeleteImage(ctx, publicID); err != nil {
			logrus.Errorf("detached delete of %s failed: %v", publicID, err)
		}
	}()
}

// PreviewURL asks the service to derive the preview URL for the given
// transformation parameters.
func (c *Client) PreviewURL(ctx context.Context, publicID string, state models.TransformationState, original bool) (string, error) {
	values := url.Values{}
	values.Set("public_id", publicID)
	values.Set("format", state.Format)
	if original {
		values.Set("original", "true")
	} else {
		if state.RemoveBackground {
			values.Set("removeBackground", "true")
		}
		if state.Enhance {
			values.Set("enhance", "true")
		}
		if state.Brightness != 0 {
			values.Set("brightness", strconv.Itoa(state.Brightness))
		}
		if state.Sepia {
			values.Set("sepia", "true")
		}
		if state.Grayscale {
			values.Set("grayscale", "true")
		}
	}

	var resp models.TransformURLResponse
	if err := c.do(ctx, http.MethodGet, "/api/image-transform?"+values.Encode(), "", nil, http.StatusOK, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// VideoUploadInput is one video upload form submission.
type VideoUploadInput struct {
	Title       string
	Description string
	Filename    string
	Reader      io.Reader
	Size        int64
}

// UploadVideo validates the form client-side, then posts it. Size and
// required-field checks happen before any network call.
func (c *Client) UploadVideo(ctx context.Context, in VideoUploadInput) (*models.VideoRecord, error) {
	if in.Reader == nil || in.Filename == "" {
		return nil, fmt.Errorf("a video file is required")
	}
	if in.Title == "" {
		return nil, fmt.Errorf("a title is required")
	}
	if in.Size > models.MaxVideoUploadSize {
		return nil, fmt.Errorf("file size exceeds the 100MB limit")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", in.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := io.Copy(part, in.Reader); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	_ = writer.WriteField("title", in.Title)
	_ = writer.WriteField("description", in.Description)
	_ = writer.WriteField("originalSize", strconv.FormatInt(in.Size, 10))
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload body: %w", err)
	}

	var record models.VideoRecord
	if err := c.do(ctx, http.MethodPost, "/api/video-upload", writer.FormDataContentType(), body, http.StatusCreated, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListVideos fetches every video record, newest first.
func (c *Client) ListVideos(ctx context.Context) ([]models.VideoRecord, error) {
	var records []models.VideoRecord
	if err := c.do(ctx, http.MethodGet, "/api/video", "", nil, http.StatusOK, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, wantStatus int, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
