package media

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Error-output buffers reused across compressions.
var errBufPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// compressVideo re-encodes a video at a reduced bitrate while keeping
// the original resolution. This is the local stand-in for the hosted
// service's quality-auto mp4 derivation.
func compressVideo(inputPath, outputPath string) error {
	errBuf := errBufPool.Get().(*bytes.Buffer)
	errBuf.Reset()
	defer errBufPool.Put(errBuf)

	err := ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"c:v":      "libx264",
			"preset":   "medium",
			"crf":      "28",
			"c:a":      "aac",
			"b:a":      "128k",
			"movflags": "+faststart",
			"pix_fmt":  "yuv420p",
		}).
		OverWriteOutput().
		WithErrorOutput(errBuf).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg error: %w\nLogs:\n%s", err, errBuf.String())
	}

	outInfo, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("output file not created: %w", err)
	}
	if outInfo.Size() == 0 {
		return fmt.Errorf("output file has zero size")
	}

	logrus.Infof("video compression complete: %s (%d bytes)", outputPath, outInfo.Size())
	return nil
}
