package media

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

const renderQuality = 90

// renderImage crops an original image to the requested social format
// and applies the color filters. Background removal and AI enhance
// need a hosted model and are accepted as no-ops here.
func renderImage(original []byte, format models.SocialFormat, state models.TransformationState, showOriginal bool) ([]byte, error) {
	srcImage, err := imaging.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Fill crops from the center after scaling, the closest local
	// equivalent of the hosted c_fill,g_face crop.
	dstImage := imaging.Fill(srcImage, format.Width, format.Height, imaging.Center, imaging.Lanczos)

	if !showOriginal {
		if state.Brightness != 0 {
			dstImage = imaging.AdjustBrightness(dstImage, float64(state.Brightness))
		}
		if state.Sepia {
			dstImage = imaging.AdjustFunc(dstImage, sepiaTone)
		}
		if state.Grayscale {
			dstImage = imaging.Grayscale(dstImage)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dstImage, imaging.JPEG, imaging.JPEGQuality(renderQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// sepiaTone applies the standard sepia weight matrix per pixel.
func sepiaTone(c color.NRGBA) color.NRGBA {
	r := float64(c.R)
	g := float64(c.G)
	b := float64(c.B)
	c.R = clampChannel(0.393*r + 0.769*g + 0.189*b)
	c.G = clampChannel(0.349*r + 0.686*g + 0.168*b)
	c.B = clampChannel(0.272*r + 0.534*g + 0.131*b)
	return c
}

func clampChannel(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}
