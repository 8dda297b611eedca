package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Kapilpaliwal42/Saas-project/media"
	"github.com/Kapilpaliwal42/Saas-project/models"
)

// HandleImageUpload accepts a multipart image and forwards it to the
// media service. The editor owns the returned public ID for the
// lifetime of its session.
func (h *Handler) HandleImageUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No file found"})
		return
	}
	defer file.Close()

	result, err := h.media.Upload(c.Request.Context(), media.UploadInput{
		Reader:   file,
		Filename: header.Filename,
		Kind:     models.KindImage,
	})
	if err != nil {
		logrus.Errorf("error upload image: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.ImageUploadResponse{
		PublicID:  result.PublicID,
		SecureURL: result.SecureURL,
	})
}

// HandleImageDelete destroys an image asset. Used for best-effort
// cleanup of superseded or abandoned uploads; callers treat it as
// idempotent.
func (h *Handler) HandleImageDelete(c *gin.Context) {
	var req models.DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Public ID is required"})
		return
	}

	logrus.Infof("deleting image asset: %s", req.PublicID)
	if err := h.media.Destroy(c.Request.Context(), req.PublicID, models.KindImage); err != nil {
		logrus.Errorf("error deleting image %s: %v", req.PublicID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Image deleted successfully"})
}
