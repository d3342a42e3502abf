// Package identity handles the account lifecycle: email/password accounts,
// Google sign-in, session tokens and auth-state observers. The rest of the
// app only cares that it yields a stable user identifier; anonymous device
// identities never touch this package.
package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sreddit/sreddit/internal/models"
)

var (
	ErrEmailTaken         = errors.New("this email is already registered, try logging in instead")
	ErrUsernameTaken      = errors.New("this username is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("no account found with this email")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrResetExpired       = errors.New("this reset link has expired, request a new one")
)

const (
	tokenLifetime = 72 * time.Hour
	resetLifetime = time.Hour
)

type Service struct {
	db        *gorm.DB
	jwtSecret []byte

	mu        sync.Mutex
	current   *models.User
	listeners map[int]func(*models.User)
	nextID    int

	// Google tokeninfo endpoint, swapped out in tests.
	verifyURL string
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:        db,
		jwtSecret: []byte(os.Getenv("JWT_SECRET")),
		listeners: make(map[int]func(*models.User)),
		verifyURL: googleTokenInfoURL,
	}
}

// SignUp registers an email/password account and signs the user in.
func (s *Service) SignUp(ctx context.Context, email, password, username string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" || !strings.Contains(email, "@") {
		return nil, "", &models.ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	if username == "" {
		return nil, "", &models.ValidationError{Field: "username", Message: "username is required"}
	}
	if len(password) < 6 {
		return nil, "", ErrWeakPassword
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", ErrEmailTaken
	}
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, "", ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		UID:          uuid.NewString(),
		Username:     username,
		DisplayName:  username,
		Email:        email,
		Password:     string(hashed),
		AuthProvider: "email",
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	s.setCurrent(&user)
	return &user, token, nil
}

// SignIn authenticates an email/password account.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND auth_provider = ?", email, "email").
		First(&user).Error
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	s.setCurrent(&user)
	return &user, token, nil
}

// SignOut drops the in-memory session and notifies observers.
func (s *Service) SignOut() {
	s.setCurrent(nil)
}

// ResetPassword issues a one-hour reset token for the account. Token
// delivery is delegated; the token is returned for the caller to hand off.
func (s *Service) ResetPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrUserNotFound
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetLifetime),
	}
	if err := s.db.WithContext(ctx).Create(&reset).Error; err != nil {
		return "", fmt.Errorf("creating reset token: %w", err)
	}
	return reset.Token, nil
}

// CompleteReset consumes a reset token and sets the new password.
func (s *Service) CompleteReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	var reset models.PasswordReset
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&reset).Error; err != nil {
		return ErrResetExpired
	}
	if time.Now().After(reset.ExpiresAt) {
		s.db.WithContext(ctx).Delete(&reset)
		return ErrResetExpired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", reset.UserID).
			Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Delete(&reset).Error
	})
}

// OnAuthChange registers an observer, fires it immediately with the current
// state, and returns an unsubscribe function.
func (s *Service) OnAuthChange(callback func(*models.User)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = callback
	current := s.current
	s.mu.Unlock()

	callback(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// CurrentUser returns the signed-in account, nil when anonymous.
func (s *Service) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Resume restores a session from a previously issued token, e.g. one the
// device store kept across runs.
func (s *Service) Resume(ctx context.Context, token string) (*models.User, error) {
	uid, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	s.setCurrent(&user)
	return &user, nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":      user.UID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (s *Service) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredentials
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return "", ErrInvalidCredentials
	}
	return uid, nil
}

func (s *Service) setCurrent(user *models.User) {
	s.mu.Lock()
	s.current = user
	listeners := make([]func(*models.User), 0, len(s.listeners))
	for _, cb := range s.listeners {
		listeners = append(listeners, cb)
	}
	s.mu.Unlock()

	for _, cb := range listeners {
		cb(user)
	}
}
