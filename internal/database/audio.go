package database

import (
	"context"

	"github.com/charmbracelet/log"
)

// CreateAudioFile records an uploaded audio file for the given user.
// Re-uploading the same filename creates a new record; the on-disk path
// is overwritten by the storage layer.
func (c *Client) CreateAudioFile(ctx context.Context, userID uint, fileName, filePath string) (*AudioFile, error) {
	record := AudioFile{
		UserID:   userID,
		FileName: fileName,
		FilePath: filePath,
	}
	if err := c.db.WithContext(ctx).Create(&record).Error; err != nil {
		log.Error("failed to create audio file record", "user_id", userID, "error", err)
		return nil, err
	}
	return &record, nil
}

// GetUserAudioFiles returns all audio file records for the given user,
// oldest first.
func (c *Client) GetUserAudioFiles(ctx context.Context, userID uint) ([]AudioFile, error) {
	var files []AudioFile
	if err := c.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&files).Error; err != nil {
		log.Error("failed to list audio files", "user_id", userID, "error", err)
		return nil, err
	}
	return files, nil
}
