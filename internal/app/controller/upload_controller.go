package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/ekaraca/mekanbul-backend/internal/errors"
	"github.com/ekaraca/mekanbul-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(storage *storage.S3Storage) *UploadController {
	return &UploadController{storage: storage}
}

// UploadImage handles POST /api/uploads/images. Accepts a multipart "image"
// field and an optional "folder" field (places or reviews, default places).
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	if ctrl.storage == nil {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.UploadFailed, "Image uploads are not configured")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "image file is required")
		return
	}

	folder := c.PostForm("folder")
	switch folder {
	case "":
		folder = "places"
	case "places", "reviews":
	default:
		apperrors.BadRequest(c, apperrors.ValidationInvalidParameter, "folder must be places or reviews")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := ctrl.storage.UploadImage(c.Request.Context(), folder, contentType, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidFileType):
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only jpeg, png and webp images are allowed")
		case errors.Is(err, storage.ErrFileTooLarge):
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "File is too large")
		default:
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to upload image")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
