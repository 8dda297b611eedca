package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

const (
	renderCacheCapacity = 256
	renderCacheTTL      = 10 * time.Minute
)

// LocalService is a self-hosted media backend for development and
// single-node deployments. Blobs live in a BlobStore, videos are
// compressed on upload, and image transformations are rendered
// in-process on request.
type LocalService struct {
	blobs   BlobStore
	cache   *renderCache
	baseURL string
}

func NewLocalService(blobs BlobStore, baseURL string) *LocalService {
	return &LocalService{
		blobs:   blobs,
		cache:   newRenderCache(renderCacheCapacity, renderCacheTTL),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *LocalService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	tempFile, err := os.CreateTemp("", "upload-*"+filepath.Ext(in.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	size, err := io.Copy(tempFile, in.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if size == 0 {
		return nil, fmt.Errorf("empty upload")
	}

	head := make([]byte, 261)
	if _, err := tempFile.ReadAt(head, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	detected, mime, err := detectKind(head)
	if err != nil {
		return nil, err
	}
	if detected != in.Kind {
		return nil, fmt.Errorf("expected a %s upload, got %s", in.Kind, mime)
	}

	folder := imageFolder
	if in.Kind == models.KindVideo {
		folder = videoFolder
	}
	publicID := folder + "/" + uuid.New().String()

	result := &UploadResult{PublicID: publicID, Bytes: size}

	sourcePath := tempFile.Name()
	if in.Kind == models.KindVideo {
		compressedPath := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + "_processed.mp4"
		if err := compressVideo(sourcePath, compressedPath); err != nil {
			return nil, err
		}
		defer os.Remove(compressedPath)
		sourcePath = compressedPath

		if info, err := os.Stat(compressedPath); err == nil {
			result.Bytes = info.Size()
		}
		duration, err := probeVideoDuration(compressedPath)
		if err != nil {
			logrus.Warnf("failed to probe video duration: %v", err)
		}
		result.Duration = duration
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen upload: %w", err)
	}
	defer source.Close()

	location, err := s.blobs.Put(ctx, publicID, source)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	result.SecureURL = location

	logrus.Infof("local upload complete: %s (%d bytes, %s)", publicID, result.Bytes, mime)
	return result, nil
}

func (s *LocalService) Destroy(ctx context.Context, publicID string, kind models.MediaKind) error {
	s.cache.InvalidatePrefix(publicID)
	return s.blobs.Delete(ctx, publicID)
}

// PreviewURL points at this service's own render route; the transform
// happens lazily when the preview is fetched.
func (s *LocalService) PreviewURL(publicID string, format models.SocialFormat, state models.TransformationState, original bool) string {
	values := url.Values{}
	values.Set("public_id", publicID)
	values.Set("format", format.Name)
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
	return s.baseURL + "/media/render?" + values.Encode()
}

// Render produces the transformed preview for a stored image.
// Renders are memoized per parameter set.
func (s *LocalService) Render(ctx context.Context, publicID string, format models.SocialFormat, state models.TransformationState, original bool) ([]byte, error) {
	key := fmt.Sprintf("%s|%s|%v|%t", publicID, format.Name, state, original)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	blob, err := s.blobs.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	rendered, err := renderImage(blob, format, state, original)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, rendered)
	return rendered, nil
}

// Original returns the stored blob as uploaded.
func (s *LocalService) Original(ctx context.Context, publicID string) ([]byte, error) {
	return s.blobs.Get(ctx, publicID)
}
