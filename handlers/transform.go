package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

// HandleTransformURL derives the preview URL for a set of
// transformation parameters without touching the asset itself.
func (h *Handler) HandleTransformURL(c *gin.Context) {
	publicID, format, state, original, err := transformQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	url := h.media.PreviewURL(publicID, format, state, original)
	c.JSON(http.StatusOK, models.TransformURLResponse{URL: url})
}

func transformQuery(c *gin.Context) (string, models.SocialFormat, models.TransformationState, bool, error) {
	state := models.DefaultTransformations()

	publicID := c.Query("public_id")
	if publicID == "" {
		return "", models.SocialFormat{}, state, false, fmt.Errorf("missing required 'public_id' parameter")
	}

	formatName := c.Query("format")
	if formatName == "" {
		formatName = models.DefaultFormatName
	}
	format, err := models.FormatByName(formatName)
	if err != nil {
		return "", models.SocialFormat{}, state, false, err
	}
	state.Format = format.Name

	if raw := c.Query("brightness"); raw != "" {
		brightness, err := strconv.Atoi(raw)
		if err != nil || brightness < -99 || brightness > 100 {
			return "", models.SocialFormat{}, state, false, fmt.Errorf("brightness must be an integer between -99 and 100")
		}
		state.Brightness = brightness
	}
	state.RemoveBackground = c.Query("removeBackground") == "true"
	state.Enhance = c.Query("enhance") == "true"
	state.Sepia = c.Query("sepia") == "true"
	state.Grayscale = c.Query("grayscale") == "true"

	original := c.Query("original") == "true"
	return publicID, format, state, original, nil
}
