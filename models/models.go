package models

import "time"

// MaxVideoUploadSize is the client-side ceiling for video uploads.
// Files above it are rejected before any network call is made.
const MaxVideoUploadSize = 100 << 20 // 100 MiB

type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// VideoRecord is the persisted metadata for one uploaded video.
// Records are created once and never mutated or deleted.
type VideoRecord struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PublicID       string    `json:"publicId"`
	OriginalSize   string    `json:"originalSize"`
	CompressedSize string    `json:"compressedSize"`
	Duration       float64   `json:"duration"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TransformationState is the full set of editor transformation
// parameters. It lives only for the duration of an editor session.
type TransformationState struct {
	Format           string `json:"format"`
	RemoveBackground bool   `json:"removeBackground"`
	Enhance          bool   `json:"enhance"`
	Brightness       int    `json:"brightness"` // -99..100, 0 is neutral
	Sepia            bool   `json:"sepia"`
	Grayscale        bool   `json:"grayscale"`
}

// DefaultTransformations returns the state a fresh upload starts with.
func DefaultTransformations() TransformationState {
	return TransformationState{Format: DefaultFormatName}
}

type ImageUploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

type DeleteImageRequest struct {
	PublicID string `json:"public_id" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type TransformURLResponse struct {
	URL string `json:"url"`
}
