// Package media abstracts the hosted media service behind a small
// upload/destroy/preview contract. Two backends exist: the cloudinary
// REST API and a self-hosted backend that keeps blobs in a BlobStore
// and renders transformations in-process.
package media

import (
	"context"
	"errors"
	"io"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

var ErrNotFound = errors.New("media: asset not found")

// UploadInput carries one file into the media service.
type UploadInput struct {
	Reader   io.Reader
	Filename string
	Kind     models.MediaKind
}

// UploadResult reports what the media service stored.
type UploadResult struct {
	PublicID  string
	SecureURL string
	Bytes     int64
	Duration  float64 // seconds, 0 for images
}

// Service is the contract every handler and the editor talk to.
// Implementations are assumed reliable eventually, fallible
// synchronously; callers do not retry.
type Service interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string, kind models.MediaKind) error

	// PreviewURL derives the delivery URL for a transformed preview of
	// an uploaded image. With original set, only the crop to the format
	// is applied and every filter is ignored.
	PreviewURL(publicID string, format models.SocialFormat, state models.TransformationState, original bool) string
}
