package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Kapilpaliwal42/Saas-project/media"
	"github.com/Kapilpaliwal42/Saas-project/models"
)

// The media file routes only exist when the local backend serves
// blobs itself; the cloudinary backend delivers from its own CDN.

// HandleMediaFile serves a stored blob as uploaded.
func (h *Handler) HandleMediaFile(c *gin.Context) {
	local, ok := h.media.(*media.LocalService)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	blob, err := local.Original(c.Request.Context(), key)
	if errors.Is(err, media.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
		return
	}
	if err != nil {
		logrus.Errorf("error reading blob %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(blob), blob)
}

// HandleMediaRender computes a transformed preview on demand.
func (h *Handler) HandleMediaRender(c *gin.Context) {
	local, ok := h.media.(*media.LocalService)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
		return
	}

	publicID, format, state, original, err := transformQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	rendered, err := local.Render(c.Request.Context(), publicID, format, state, original)
	if errors.Is(err, media.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
		return
	}
	if err != nil {
		logrus.Errorf("error rendering %s: %v", publicID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.Data(http.StatusOK, "image/jpeg", rendered)
}

// HandleProbe is the liveness endpoint; it also reports store health.
func (h *Handler) HandleProbe(c *gin.Context) {
	if err := h.videos.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
