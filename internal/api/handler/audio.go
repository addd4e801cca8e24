package handler

import (
	"net/http"
	"path/filepath"

	"github.com/audiovault/audiovault/internal/api/auth"
	"github.com/audiovault/audiovault/internal/api/models"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// ListUserAudioFiles lists a user's audio files. Self-or-admin access only;
// a user with zero records yields 404.
func (h *Handler) ListUserAudioFiles(c *gin.Context) {
	targetID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	current := auth.CurrentUser(c)
	if !auth.CanAccessUser(current, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to view this user's audio files"})
		return
	}

	files, err := h.db.GetUserAudioFiles(c.Request.Context(), targetID)
	if err != nil {
		log.Error("failed to list audio files", "user_id", targetID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no audio files found for this user"})
		return
	}

	c.JSON(http.StatusOK, models.UserAudioFilesResponse{
		UserID: targetID,
		Files:  models.ToAudioFileInfos(files),
	})
}

// UploadAudioFile stores the uploaded file under the caller's media
// directory and records it. Uploading the same filename again overwrites
// the stored content and creates a second record.
func (h *Handler) UploadAudioFile(c *gin.Context) {
	current := auth.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file was uploaded"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer src.Close() //nolint:errcheck

	path, err := h.storage.Save(current.ID, fileHeader.Filename, src)
	if err != nil {
		log.Error("failed to store uploaded file", "user_id", current.ID, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to store uploaded file"})
		return
	}

	fileName := filepath.Base(path)
	if _, err := h.db.CreateAudioFile(c.Request.Context(), current.ID, fileName, path); err != nil {
		log.Error("failed to record uploaded file", "user_id", current.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, models.AudioFileInfo{
		FileName: fileName,
		FilePath: path,
	})
}
