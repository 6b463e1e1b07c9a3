package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/aurelle-jewellery/aurelle-backend/internal/errors"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
	"github.com/aurelle-jewellery/aurelle-backend/internal/storage"
)

// Upload folders the back office is allowed to write into
var uploadFolders = map[string][]string{
	"products":    storage.AllowedImageTypes,
	"watches":     storage.AllowedImageTypes,
	"categories":  storage.AllowedImageTypes,
	"collections": storage.AllowedImageTypes,
	"brands":      storage.AllowedImageTypes,
	"avatars":     storage.AllowedImageTypes,
	"videos":      storage.AllowedVideoTypes,
}

// UploadController stores media locally, or hands out S3 presigned URLs
// when the bucket is configured
type UploadController struct {
	local       *storage.LocalStorage
	s3          *storage.S3Storage
	maxFileSize int64
}

func NewUploadController(local *storage.LocalStorage, s3 *storage.S3Storage, maxFileSize int64) *UploadController {
	return &UploadController{local: local, s3: s3, maxFileSize: maxFileSize}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required"`
}

func respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "File exceeds the maximum upload size")
	case errors.Is(err, storage.ErrDisallowedFileType):
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "File type is not allowed for this folder")
	default:
		middleware.GetLoggerFromContext(c).Error("Upload failed", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to store file")
	}
}

func folderTypes(c *gin.Context) (string, []string, bool) {
	folder := c.Param("folder")
	allowed, ok := uploadFolders[folder]
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown upload folder")
		return "", nil, false
	}
	return folder, allowed, true
}

// Upload receives a multipart file and stores it on local disk
// POST /api/v1/admin/uploads/:folder
func (ctrl *UploadController) Upload(c *gin.Context) {
	folder, allowed, ok := folderTypes(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "A file field is required")
		return
	}

	fileURL, err := ctrl.local.Save(file, folder, allowed)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url": fileURL,
	})
}

// Delete removes a previously uploaded local file
// DELETE /api/v1/admin/uploads
func (ctrl *UploadController) Delete(c *gin.Context) {
	fileURL := c.Query("url")
	if fileURL == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "url is required")
		return
	}

	if err := ctrl.local.Delete(fileURL); err != nil {
		respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted",
	})
}

// Presign returns a short-lived S3 PUT URL so the browser uploads directly
// POST /api/v1/admin/uploads/:folder/presign
func (ctrl *UploadController) Presign(c *gin.Context) {
	if ctrl.s3 == nil {
		apperrors.RespondWithError(c, http.StatusNotImplemented, apperrors.UploadFailed, "Direct uploads are not configured")
		return
	}

	folder, allowed, ok := folderTypes(c)
	if !ok {
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	presigned, err := ctrl.s3.PresignUpload(req.Filename, req.ContentType, folder, req.Size, allowed, ctrl.maxFileSize)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": presigned.UploadURL,
		"file_url":   presigned.FileURL,
		"key":        presigned.Key,
	})
}
