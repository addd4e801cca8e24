package database

// User represents a user account. Users are created on first successful
// OAuth login or by an explicit create call. Email is the external lookup
// key and must be unique.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	IsAdmin  bool   `gorm:"not null;default:false"`

	AudioFiles []AudioFile `gorm:"foreignKey:UserID"`
}

// TableName sets the table name for GORM.
func (User) TableName() string {
	return "users"
}

// AudioFile records an uploaded audio file belonging to a user.
// Records are never mutated after creation.
type AudioFile struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"not null;index"`
	FileName string `gorm:"not null"`
	FilePath string `gorm:"not null"`
}

// TableName sets the table name for GORM.
func (AudioFile) TableName() string {
	return "user_audio_files"
}

// UserUpdate is an explicit field mask for partial user updates.
// Nil fields are left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	IsAdmin  *bool
}

// IsEmpty reports whether the mask selects no fields.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.IsAdmin == nil
}
