package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

const (
	imageFolder = "next-cloudinary-upload"
	videoFolder = "next-cloudinary-video-upload"
)

// CloudinaryService stores media in cloudinary. Images land in the
// image folder, videos in the video folder with an eager mp4/q_auto
// derivation, matching the web app's upload options.
type CloudinaryService struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	resBase   string // override in tests
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryService{
		cld:       cld,
		cloudName: cloudName,
		resBase:   "https://res.cloudinary.com",
	}, nil
}

func (s *CloudinaryService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	params := uploader.UploadParams{
		Folder:       imageFolder,
		ResourceType: string(in.Kind),
	}

	var file interface{} = in.Reader
	var duration float64
	if in.Kind == models.KindVideo {
		params.Folder = videoFolder
		params.Eager = "q_auto,f_mp4"

		// The upload response carries no duration, so spool the video
		// and probe it before it goes out.
		temp, err := os.CreateTemp("", "upload-*"+filepath.Ext(in.Filename))
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary file: %w", err)
		}
		defer os.Remove(temp.Name())
		defer temp.Close()
		if _, err := io.Copy(temp, in.Reader); err != nil {
			return nil, fmt.Errorf("failed to copy file content: %w", err)
		}
		duration, err = probeVideoDuration(temp.Name())
		if err != nil {
			logrus.Warnf("failed to probe video duration: %v", err)
		}
		if _, err := temp.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind upload: %w", err)
		}
		file = temp
	}

	resp, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary error: %s", resp.Error.Message)
	}

	logrus.Infof("cloudinary upload complete: %s (%d bytes)", resp.PublicID, resp.Bytes)
	return &UploadResult{
		PublicID:  resp.PublicID,
		SecureURL: resp.SecureURL,
		Bytes:     int64(resp.Bytes),
		Duration:  duration,
	}, nil
}

// Destroy removes an asset and invalidates its cached deliveries. A
// missing asset is not an error, so best-effort cleanup stays
// idempotent.
func (s *CloudinaryService) Destroy(ctx context.Context, publicID string, kind models.MediaKind) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy failed: %s", resp.Result)
	}
	return nil
}

// PreviewURL builds the cloudinary delivery URL. Crop and gravity
// always apply; filters chain as separate effect components. The
// editor's URLs are unversioned, so the URL is assembled directly
// rather than through the SDK's asset builder, which pins a version
// component into folder-qualified public IDs.
func (s *CloudinaryService) PreviewURL(publicID string, format models.SocialFormat, state models.TransformationState, original bool) string {
	components := []string{
		fmt.Sprintf("c_fill,g_face,w_%d,h_%d,ar_%s", format.Width, format.Height, format.AspectRatio),
	}
	if !original {
		if state.RemoveBackground {
			components = append(components, "e_background_removal")
		}
		if state.Enhance {
			components = append(components, "e_improve")
		}
		if state.Brightness != 0 {
			components = append(components, fmt.Sprintf("e_brightness:%d", state.Brightness))
		}
		if state.Sepia {
			components = append(components, "e_sepia")
		}
		if state.Grayscale {
			components = append(components, "e_grayscale")
		}
	}
	return fmt.Sprintf("%s/%s/image/upload/%s/%s", s.resBase, s.cloudName, strings.Join(components, "/"), publicID)
}
