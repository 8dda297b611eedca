package media

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/h2non/filetype"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

// detectKind sniffs the MIME type from the first bytes of the file.
// filetype needs at most 261 bytes.
func detectKind(head []byte) (models.MediaKind, string, error) {
	kind, err := filetype.Match(head)
	if err != nil {
		return "", "", fmt.Errorf("failed to determine file type: %w", err)
	}
	switch {
	case strings.HasPrefix(kind.MIME.Value, "image/"):
		return models.KindImage, kind.MIME.Value, nil
	case strings.HasPrefix(kind.MIME.Value, "video/"):
		return models.KindVideo, kind.MIME.Value, nil
	default:
		return "", kind.MIME.Value, fmt.Errorf("unsupported file type: %s", kind.MIME.Value)
	}
}

// probeVideoDuration reads the duration of the first video stream in
// seconds via ffprobe.
func probeVideoDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-select_streams", "v:0",
		"-show_entries", "format=duration", "-of", "csv=p=0", path)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to probe video: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output: %w", err)
	}
	return duration, nil
}
