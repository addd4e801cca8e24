package models

// User is the external representation of a user account.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserUpdateRequest is the partial update payload for a user.
// Absent fields are left unchanged.
type UserUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	IsAdmin  *bool   `json:"is_admin"`
}

// AudioFileInfo describes a stored audio file.
type AudioFileInfo struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

// UserAudioFilesResponse lists a user's audio files.
type UserAudioFilesResponse struct {
	UserID uint            `json:"user_id"`
	Files  []AudioFileInfo `json:"files"`
}
