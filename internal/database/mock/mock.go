// Package mock provides an in-memory implementation of database.DB for testing.
package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/audiovault/audiovault/internal/database"
	"gorm.io/gorm"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	users       map[uint]*database.User
	nextUserID  uint
	audioFiles  map[uint]*database.AudioFile
	nextAudioID uint

	// Error simulation
	CreateUserError        error
	GetUserByEmailError    error
	GetUserByIDError       error
	UpdateUserError        error
	DeleteUserError        error
	CreateAudioFileError   error
	GetUserAudioFilesError error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:       make(map[uint]*database.User),
		nextUserID:  1,
		audioFiles:  make(map[uint]*database.AudioFile),
		nextAudioID: 1,
	}
}

// CreateUser creates a user, defaulting the username to the email local part.
func (m *MockDB) CreateUser(_ context.Context, email, username string) (*database.User, error) {
	if m.CreateUserError != nil {
		return nil, m.CreateUserError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if username == "" {
		username = email
		if i := strings.Index(email, "@"); i >= 0 {
			username = email[:i]
		}
	}
	user := &database.User{
		ID:       m.nextUserID,
		Email:    email,
		Username: username,
	}
	m.users[user.ID] = user
	m.nextUserID++
	copied := *user
	return &copied, nil
}

// GetUserByEmail returns the user with the given email.
func (m *MockDB) GetUserByEmail(_ context.Context, email string) (*database.User, error) {
	if m.GetUserByEmailError != nil {
		return nil, m.GetUserByEmailError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// GetUserByID returns the user with the given ID.
func (m *MockDB) GetUserByID(_ context.Context, id uint) (*database.User, error) {
	if m.GetUserByIDError != nil {
		return nil, m.GetUserByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

// GetOrCreateUserByEmail resolves or creates a user by email.
func (m *MockDB) GetOrCreateUserByEmail(ctx context.Context, email, username string) (*database.User, error) {
	user, err := m.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return m.CreateUser(ctx, email, username)
}

// UpdateUser applies the field mask to the stored user.
func (m *MockDB) UpdateUser(_ context.Context, id uint, update database.UserUpdate) (*database.User, error) {
	if m.UpdateUserError != nil {
		return nil, m.UpdateUserError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if update.IsEmpty() {
		copied := *u
		return &copied, nil
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.IsAdmin != nil {
		u.IsAdmin = *update.IsAdmin
	}
	copied := *u
	return &copied, nil
}

// DeleteUser removes the user with the given ID.
func (m *MockDB) DeleteUser(_ context.Context, id uint) error {
	if m.DeleteUserError != nil {
		return m.DeleteUserError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.users, id)
	return nil
}

// CreateAudioFile records an uploaded audio file.
func (m *MockDB) CreateAudioFile(_ context.Context, userID uint, fileName, filePath string) (*database.AudioFile, error) {
	if m.CreateAudioFileError != nil {
		return nil, m.CreateAudioFileError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	record := &database.AudioFile{
		ID:       m.nextAudioID,
		UserID:   userID,
		FileName: fileName,
		FilePath: filePath,
	}
	m.audioFiles[record.ID] = record
	m.nextAudioID++
	copied := *record
	return &copied, nil
}

// GetUserAudioFiles returns all audio records for the given user.
func (m *MockDB) GetUserAudioFiles(_ context.Context, userID uint) ([]database.AudioFile, error) {
	if m.GetUserAudioFilesError != nil {
		return nil, m.GetUserAudioFilesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var files []database.AudioFile
	for id := uint(1); id < m.nextAudioID; id++ {
		if f, ok := m.audioFiles[id]; ok && f.UserID == userID {
			files = append(files, *f)
		}
	}
	return files, nil
}

// SetUser inserts or replaces a user directly, for test setup.
func (m *MockDB) SetUser(user *database.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[user.ID] = user
	if user.ID >= m.nextUserID {
		m.nextUserID = user.ID + 1
	}
}

// Close is a no-op for the mock.
func (m *MockDB) Close() error {
	return nil
}
