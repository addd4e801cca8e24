package database

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// CreateUser creates a new user. When username is empty it defaults to the
// local part of the email address.
func (c *Client) CreateUser(ctx context.Context, email, username string) (*User, error) {
	if username == "" {
		username = emailLocalPart(email)
	}
	user := User{
		Email:    email,
		Username: username,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Error("failed to create user", "email", email, "error", err)
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns the user with the given email, or
// gorm.ErrRecordNotFound.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get user by email", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user with the given ID, or gorm.ErrRecordNotFound.
func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get user by id", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// GetOrCreateUserByEmail resolves a user by email, creating one on first
// login. At most one user is ever created per email.
func (c *Client) GetOrCreateUserByEmail(ctx context.Context, email, username string) (*User, error) {
	user, err := c.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return c.CreateUser(ctx, email, username)
}

// UpdateUser applies the given field mask to the user and returns the
// updated record. Returns gorm.ErrRecordNotFound when the user does not exist.
func (c *Client) UpdateUser(ctx context.Context, id uint, update UserUpdate) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return &user, nil
	}

	values := map[string]any{}
	if update.Username != nil {
		values["username"] = *update.Username
	}
	if update.Email != nil {
		values["email"] = *update.Email
	}
	if update.IsAdmin != nil {
		values["is_admin"] = *update.IsAdmin
	}

	if err := c.db.WithContext(ctx).Model(&user).Updates(values).Error; err != nil {
		log.Error("failed to update user", "id", id, "error", err)
		return nil, err
	}

	var updated User
	if err := c.db.WithContext(ctx).First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser deletes the user with the given ID. Deleting a missing user
// is not an error.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Delete(&User{}, id).Error; err != nil {
		log.Error("failed to delete user", "id", id, "error", err)
		return err
	}
	return nil
}

// emailLocalPart returns the substring before the "@" of an email address.
func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
