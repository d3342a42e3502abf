package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sreddit/sreddit/internal/models"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleUserInfo represents user data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
	Name          string `json:"name"`
}

// SignInWithGoogle verifies a Google ID token, creating the account profile
// on first sign-in.
func (s *Service) SignInWithGoogle(ctx context.Context, idToken string) (*models.User, string, error) {
	googleUser, err := s.verifyGoogleIDToken(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid google token: %w", err)
	}

	var user models.User
	result := s.db.WithContext(ctx).
		Where("email = ? OR google_id = ?", googleUser.Email, googleUser.Sub).
		First(&user)

	switch {
	case result.Error == gorm.ErrRecordNotFound:
		username := googleUser.Name
		if username == "" {
			username = usernameFromEmail(googleUser.Email)
		}
		username = s.ensureUniqueUsername(ctx, username)

		user = models.User{
			UID:          uuid.NewString(),
			Username:     username,
			DisplayName:  googleUser.Name,
			Email:        googleUser.Email,
			PhotoURL:     googleUser.Picture,
			GoogleID:     googleUser.Sub,
			AuthProvider: "google",
			Password:     "", // no password for OAuth users
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, "", fmt.Errorf("creating user: %w", err)
		}
	case result.Error != nil:
		return nil, "", fmt.Errorf("looking up user: %w", result.Error)
	default:
		// Existing user - link the Google ID if not set
		if user.GoogleID == "" {
			user.GoogleID = googleUser.Sub
			s.db.WithContext(ctx).Save(&user)
		}
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	s.setCurrent(&user)
	return &user, token, nil
}

// verifyGoogleIDToken verifies the Google ID token and returns user info
func (s *Service) verifyGoogleIDToken(ctx context.Context, idToken string) (*GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.verifyURL+"?id_token="+idToken, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid google token")
	}

	var user GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if !user.EmailVerified {
		return nil, fmt.Errorf("email not verified")
	}
	return &user, nil
}

func usernameFromEmail(email string) string {
	for i, c := range email {
		if c == '@' {
			return email[:i]
		}
	}
	return email
}

func (s *Service) ensureUniqueUsername(ctx context.Context, base string) string {
	username := base
	counter := 1
	for {
		var existing models.User
		err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			return username
		}
		username = fmt.Sprintf("%s%d", base, counter)
		counter++
	}
}
