package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"suryayoga/internal/models"
	"suryayoga/internal/repository"
	"suryayoga/internal/security"
	"suryayoga/internal/token"
)

// ErrGoogleEmailUnverified rejects Google accounts whose email Google has
// not verified. Accepting one would let anyone claim an address they do not
// own.
var ErrGoogleEmailUnverified = errors.New("google email not verified")

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleUser is the subset of Google's userinfo response we consume
type GoogleUser struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// OAuthService runs the Google sign-in flow: authorization-code exchange,
// userinfo fetch, and mapping the Google identity onto a local account.
type OAuthService struct {
	config  *oauth2.Config
	users   *repository.UserRepository
	tokens  *token.Service
	enabled bool
}

// NewOAuthService creates an OAuth service. With no client id configured
// the service reports disabled and the handlers turn the flow away.
func NewOAuthService(clientID, clientSecret, redirectURL string, users *repository.UserRepository, tokens *token.Service) *OAuthService {
	return &OAuthService{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		users:   users,
		tokens:  tokens,
		enabled: clientID != "" && clientSecret != "",
	}
}

// IsEnabled reports whether Google sign-in is configured
func (s *OAuthService) IsEnabled() bool {
	return s.enabled
}

// AuthURL builds the Google consent page URL for the sign-in popup
func (s *OAuthService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
}

// HandleCallback exchanges the authorization code, resolves the Google
// identity to a local account, and opens a session for it.
func (s *OAuthService) HandleCallback(ctx context.Context, code string) (*models.User, string, time.Time, error) {
	oauthToken, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, oauthToken)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if info.Email == "" {
		return nil, "", time.Time{}, fmt.Errorf("google userinfo missing email")
	}
	if !info.EmailVerified {
		return nil, "", time.Time{}, ErrGoogleEmailUnverified
	}

	user, err := s.resolveGoogleUser(info)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	sessionToken, sessionID, expiresAt, err := s.tokens.IssueSessionToken(user)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("failed to issue session: %w", err)
	}

	log.Printf("Google sign-in: user=%d session=%s", user.ID, sessionID)
	return user, sessionToken, expiresAt, nil
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, t *oauth2.Token) (*GoogleUser, error) {
	resp, err := s.config.Client(ctx, t).Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	info := &GoogleUser{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("failed to decode google userinfo: %w", err)
	}
	return info, nil
}

// resolveGoogleUser finds or creates the local account for a Google
// identity. Match by email first, then by previously linked Google id.
// Existing accounts get force-verified and linked; the two updates are
// separable, a failed link never fails the sign-in.
func (s *OAuthService) resolveGoogleUser(info *GoogleUser) (*models.User, error) {
	user, err := s.users.GetUserByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if user == nil && info.Sub != "" {
		user, err = s.users.GetUserByGoogleID(info.Sub)
		if err != nil {
			return nil, err
		}
	}

	if user == nil {
		return s.createGoogleUser(info)
	}

	if !user.IsVerified {
		if _, err := s.users.MarkVerified(user.Email); err != nil {
			return nil, err
		}
		user.IsVerified = true
	}
	if user.GoogleID == "" && info.Sub != "" {
		if err := s.users.LinkGoogleID(user.ID, info.Sub); err != nil {
			log.Printf("Failed to link google id for user %d: %v", user.ID, err)
		} else {
			user.GoogleID = info.Sub
		}
	}

	return user, nil
}

func (s *OAuthService) createGoogleUser(info *GoogleUser) (*models.User, error) {
	username := info.Name
	if username == "" {
		username = emailLocalPart(info.Email)
	}

	// Username collisions get a timestamp suffix rather than failing the
	// whole sign-in.
	if taken, err := s.users.GetUserByUsername(username); err != nil {
		return nil, err
	} else if taken != nil {
		username = fmt.Sprintf("%s_%d", username, time.Now().UnixMilli())
	}

	// Google accounts never log in with this password; it only satisfies
	// the NOT NULL hash column.
	password, err := security.GenerateRandomPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	user, err := s.users.CreateUser(username, info.Email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	if _, err := s.users.MarkVerified(user.Email); err != nil {
		return nil, err
	}
	user.IsVerified = true

	if info.Sub != "" {
		if err := s.users.LinkGoogleID(user.ID, info.Sub); err != nil {
			log.Printf("Failed to link google id for new user %d: %v", user.ID, err)
		} else {
			user.GoogleID = info.Sub
		}
	}

	log.Printf("Created user %d from google sign-in", user.ID)
	return user, nil
}

func emailLocalPart(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
