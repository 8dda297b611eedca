// Package editor implements the social-share editor session: one live
// image asset, a set of transformation parameters, debounced
// brightness input, and best-effort cleanup of superseded uploads.
package editor

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

// State is the editor lifecycle position.
type State int

const (
	StateEmpty State = iota
	StateUploading
	StateReady
	StateTransforming
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateUploading:
		return "uploading"
	case StateReady:
		return "ready"
	case StateTransforming:
		return "transforming"
	default:
		return "unknown"
	}
}

// DebounceInterval is the quiet period after which a brightness change
// becomes effective.
const DebounceInterval = 300 * time.Millisecond

// API is what a session needs from the backing service. client.Client
// satisfies it.
type API interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (*models.ImageUploadResponse, error)
	DeleteImage(ctx context.Context, publicID string) error
	PreviewURL(ctx context.Context, publicID string, state models.TransformationState, original bool) (string, error)
}

// Snapshot is a point-in-time copy of the session for display.
type Snapshot struct {
	State         State
	PublicID      string
	SecureURL     string
	Params        models.TransformationState
	RawBrightness int
	ShowOriginal  bool
	Generation    uint64
}

// Session is the editor state machine. Methods are safe for
// concurrent use; the UI thread and debounce timer share it.
type Session struct {
	api   API
	alert func(string)

	mu            sync.Mutex
	state         State
	publicID      string
	secureURL     string
	params        models.TransformationState
	rawBrightness int
	showOriginal  bool
	generation    uint64
	debounce      *time.Timer

	teardownWG sync.WaitGroup // pending detached deletes, for tests
}

// NewSession creates an empty editor session. alert receives
// user-visible failure messages; nil falls back to logging.
func NewSession(api API, alert func(string)) *Session {
	if alert == nil {
		alert = func(msg string) { logrus.Warnf("editor alert: %s", msg) }
	}
	return &Session{
		api:    api,
		alert:  alert,
		state:  StateEmpty,
		params: models.DefaultTransformations(),
	}
}

// SelectFile replaces the live asset with a new upload. Any previous
// asset gets exactly one best-effort delete; its failure is logged
// and never delays the upload. Parameters reset to defaults before
// the upload is issued.
func (s *Session) SelectFile(ctx context.Context, filename string, r io.Reader) error {
	s.mu.Lock()
	previous := s.publicID
	s.publicID = ""
	s.secureURL = ""
	s.params = models.DefaultTransformations()
	s.rawBrightness = 0
	s.showOriginal = false
	s.stopDebounceLocked()
	s.state = StateUploading
	s.mu.Unlock()

	if previous != "" {
		if err := s.api.DeleteImage(ctx, previous); err != nil {
			logrus.Errorf("cleanup of superseded asset %s failed: %v", previous, err)
		}
	}

	resp, err := s.api.UploadImage(ctx, filename, r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateEmpty
		s.alert("Upload failed")
		return fmt.Errorf("upload failed: %w", err)
	}
	s.publicID = resp.PublicID
	s.secureURL = resp.SecureURL
	s.generation++
	s.state = StateReady
	return nil
}

// SetFormat switches the aspect preset.
func (s *Session) SetFormat(name string) error {
	if _, err := models.FormatByName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.params.Format == name {
		return nil
	}
	s.params.Format = name
	s.effectiveChangeLocked()
	return nil
}

func (s *Session) SetRemoveBackground(v bool) { s.setToggle(&s.params.RemoveBackground, v) }
func (s *Session) SetEnhance(v bool)          { s.setToggle(&s.params.Enhance, v) }
func (s *Session) SetSepia(v bool)            { s.setToggle(&s.params.Sepia, v) }
func (s *Session) SetGrayscale(v bool)        { s.setToggle(&s.params.Grayscale, v) }

func (s *Session) setToggle(field *bool, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if *field == v {
		return
	}
	*field = v
	s.effectiveChangeLocked()
}

// SetBrightness records a raw slider value. The effective value
// propagates only after DebounceInterval of quiescence, so a drag
// burst yields a single transform request.
func (s *Session) SetBrightness(v int) error {
	if v < -99 || v > 100 {
		return fmt.Errorf("brightness must be between -99 and 100, got %d", v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawBrightness = v
	s.stopDebounceLocked()
	s.debounce = time.AfterFunc(DebounceInterval, s.commitBrightness)
	return nil
}

func (s *Session) commitBrightness() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = nil
	if s.rawBrightness == s.params.Brightness {
		return
	}
	s.params.Brightness = s.rawBrightness
	s.effectiveChangeLocked()
}

// effectiveChangeLocked marks the preview stale. Each change gets a
// new generation so only the newest preview's load event clears the
// transforming indicator.
func (s *Session) effectiveChangeLocked() {
	if s.publicID == "" {
		return
	}
	s.generation++
	s.state = StateTransforming
}

// PreviewLoaded signals that the preview for the given generation has
// finished rendering. Loads for superseded generations are ignored.
func (s *Session) PreviewLoaded(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return
	}
	if s.state == StateTransforming {
		s.state = StateReady
	}
}

// CompareOriginal toggles the press-and-hold original preview. Pure
// display switch; transformation parameters are untouched.
func (s *Session) CompareOriginal(pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showOriginal = pressed
}

// ResetFilters restores every transformation parameter to its default
// without touching the live asset.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopDebounceLocked()
	s.rawBrightness = 0
	if s.params == models.DefaultTransformations() {
		return
	}
	s.params = models.DefaultTransformations()
	s.effectiveChangeLocked()
}

// PreviewURL derives the URL the preview should display right now,
// along with the generation to report back via PreviewLoaded. While
// the compare control is held, the crop-only original is shown.
func (s *Session) PreviewURL(ctx context.Context) (string, uint64, error) {
	s.mu.Lock()
	publicID := s.publicID
	params := s.params
	original := s.showOriginal
	generation := s.generation
	s.mu.Unlock()

	if publicID == "" {
		return "", 0, fmt.Errorf("no uploaded image")
	}
	url, err := s.api.PreviewURL(ctx, publicID, params, original)
	if err != nil {
		return "", 0, err
	}
	return url, generation, nil
}

// Teardown fires a detached best-effort delete for the live asset.
// It returns immediately; the delete runs on a background context so
// it survives the caller going away, and no acknowledgment is
// awaited.
func (s *Session) Teardown() {
	s.mu.Lock()
	publicID := s.publicID
	s.publicID = ""
	s.secureURL = ""
	s.stopDebounceLocked()
	s.state = StateEmpty
	s.mu.Unlock()

	if publicID == "" {
		return
	}
	s.teardownWG.Add(1)
	go func() {
		defer s.teardownWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.api.DeleteImage(ctx, publicID); err != nil {
			logrus.Errorf("teardown cleanup of %s failed: %v", publicID, err)
		}
	}()
}

// Snapshot copies the current session for display or assertions.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:         s.state,
		PublicID:      s.publicID,
		SecureURL:     s.secureURL,
		Params:        s.params,
		RawBrightness: s.rawBrightness,
		ShowOriginal:  s.showOriginal,
		Generation:    s.generation,
	}
}

// Wait blocks until detached teardown deletes have finished.
func (s *Session) Wait() {
	s.teardownWG.Wait()
}

func (s *Session) stopDebounceLocked() {
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
}
