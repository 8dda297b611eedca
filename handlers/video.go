package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Kapilpaliwal42/Saas-project/media"
	"github.com/Kapilpaliwal42/Saas-project/models"
)

// HandleVideoUpload forwards a video to the media service for
// compression and storage, then persists the resulting metadata.
// A persistence failure after a successful upload leaves the remote
// asset orphaned; the public ID is logged so it can be reaped.
func (h *Handler) HandleVideoUpload(c *gin.Context) {
	if h.cfg.MediaBackend == "cloudinary" && !h.cfg.HasCloudinary() {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Missing cloudinary config"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No file found"})
		return
	}
	defer file.Close()

	title := c.PostForm("title")
	description := c.PostForm("description")
	originalSize := c.PostForm("originalSize")

	result, err := h.media.Upload(c.Request.Context(), media.UploadInput{
		Reader:   file,
		Filename: header.Filename,
		Kind:     models.KindVideo,
	})
	if err != nil {
		logrus.Errorf("error upload video: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	record, err := h.videos.CreateVideo(c.Request.Context(),
		title, description, result.PublicID, originalSize,
		strconv.FormatInt(result.Bytes, 10), result.Duration)
	if err != nil {
		logrus.Errorf("video record insert failed, remote asset %s is orphaned: %v", result.PublicID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// HandleVideoList returns every video record, newest first.
func (h *Handler) HandleVideoList(c *gin.Context) {
	records, err := h.videos.ListVideos(c.Request.Context())
	if err != nil {
		logrus.Errorf("error fetching videos: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error fetching videos"})
		return
	}
	if records == nil {
		records = []models.VideoRecord{}
	}
	c.JSON(http.StatusOK, records)
}
