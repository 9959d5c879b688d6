package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(u *User) error
	GetUserByEmail(email string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	GetUserByID(id uint) (*User, error)

	SaveRefreshToken(token *RefreshToken) error
	GetRefreshToken(tokenString string) (*RefreshToken, error)
	InvalidateRefreshToken(tokenString string) error
	InvalidateAllRefreshTokensForUser(userID uint) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(u *User) error {
	return r.db.Create(u).Error
}

func (r *authRepository) findUser(query string, args ...interface{}) (*User, error) {
	var u User
	if err := r.db.Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByEmail(email string) (*User, error) {
	return r.findUser("email = ?", email)
}

func (r *authRepository) GetUserByUsername(username string) (*User, error) {
	return r.findUser("username = ?", username)
}

func (r *authRepository) GetUserByID(id uint) (*User, error) {
	return r.findUser("id = ?", id)
}

func (r *authRepository) SaveRefreshToken(token *RefreshToken) error {
	return r.db.Create(token).Error
}

// GetRefreshToken returns the stored token when it is neither expired nor revoked.
func (r *authRepository) GetRefreshToken(tokenString string) (*RefreshToken, error) {
	var rt RefreshToken
	if err := r.db.Where("token = ? AND expires_at > ? AND revoked = ?", tokenString, time.Now(), false).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *authRepository) InvalidateRefreshToken(tokenString string) error {
	return r.db.Model(&RefreshToken{}).Where("token = ?", tokenString).Update("revoked", true).Error
}

func (r *authRepository) InvalidateAllRefreshTokensForUser(userID uint) error {
	result := r.db.Model(&RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("failed to invalidate all refresh tokens: %w", result.Error)
	}
	return nil
}
