package models

import (
	"github.com/audiovault/audiovault/internal/database"
	"github.com/samber/lo"
)

// ToUser converts a database user to its external representation.
func ToUser(u *database.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

// ToAudioFileInfos converts database audio records for listing.
func ToAudioFileInfos(files []database.AudioFile) []AudioFileInfo {
	return lo.Map(files, func(f database.AudioFile, _ int) AudioFileInfo {
		return AudioFileInfo{
			FileName: f.FileName,
			FilePath: f.FilePath,
		}
	})
}

// ToUserUpdate converts the request payload to the store's field mask.
func (r UserUpdateRequest) ToUserUpdate() database.UserUpdate {
	return database.UserUpdate{
		Username: r.Username,
		Email:    r.Email,
		IsAdmin:  r.IsAdmin,
	}
}
