package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/supabase-community/gotrue-go"
)

// ErrNotAuthorized is returned when an account is not on the admin
// allow-list, regardless of whether its credentials are valid.
var ErrNotAuthorized = errors.New("account is not allowed to access the admin portal")

// ErrInvalidCredentials is returned when the identity backend rejects a
// sign-in attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is the application's view of an authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated admin session.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// AdminPolicy decides whether an email may use the admin surface.
type AdminPolicy func(email string) bool

// AllowedEmails builds an AdminPolicy from a fixed set of permitted
// addresses. Comparison is case-insensitive and whitespace-tolerant.
func AllowedEmails(emails ...string) AdminPolicy {
	allowed := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		allowed[normalizeEmail(e)] = struct{}{}
	}
	return func(email string) bool {
		_, ok := allowed[normalizeEmail(email)]
		return ok
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticator is the slice of the identity backend the auth gate needs.
type Authenticator interface {
	SignIn(email, password string) (*Session, error)
	UserFromToken(token string) (*User, error)
	SignOut(token string) error
}

// GotrueAuthenticator implements Authenticator on the Supabase auth API.
type GotrueAuthenticator struct {
	client gotrue.Client
}

func NewGotrueAuthenticator(client gotrue.Client) *GotrueAuthenticator {
	return &GotrueAuthenticator{client: client}
}

func (g *GotrueAuthenticator) SignIn(email, password string) (*Session, error) {
	resp, err := g.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         User{ID: resp.User.ID.String(), Email: resp.User.Email},
	}, nil
}

func (g *GotrueAuthenticator) UserFromToken(token string) (*User, error) {
	resp, err := g.client.WithToken(token).GetUser()
	if err != nil {
		return nil, err
	}
	return &User{ID: resp.ID.String(), Email: resp.Email}, nil
}

func (g *GotrueAuthenticator) SignOut(token string) error {
	return g.client.WithToken(token).Logout()
}

// AuthService gates admin access behind the allow-list. Only two states
// exist: unauthenticated, and authenticated as an allow-listed admin.
type AuthService struct {
	auth    Authenticator
	isAdmin AdminPolicy
	log     *logrus.Logger
}

func NewAuthService(auth Authenticator, isAdmin AdminPolicy, log *logrus.Logger) *AuthService {
	return &AuthService{auth: auth, isAdmin: isAdmin, log: log}
}

// Login signs an admin in. Emails outside the allow-list are rejected
// before any backend call, so non-admin accounts never learn whether their
// password was valid. After a successful sign-in the returned session's
// email is checked again; a mismatch forces a sign-out.
func (s *AuthService) Login(email, password string) (*Session, error) {
	normalized := normalizeEmail(email)

	if !s.isAdmin(normalized) {
		s.log.WithField("email", normalized).Info("Rejected admin login for non-allow-listed email")
		return nil, ErrNotAuthorized
	}

	session, err := s.auth.SignIn(normalized, password)
	if err != nil {
		s.log.WithError(err).Warn("Supabase sign-in failed")
		return nil, ErrInvalidCredentials
	}

	// The backend could have resolved a different-but-similar account.
	if !s.isAdmin(session.User.Email) {
		s.log.WithField("email", session.User.Email).Warn("Signed-in account failed allow-list re-check, signing out")
		if err := s.auth.SignOut(session.AccessToken); err != nil {
			s.log.WithError(err).Warn("Forced sign-out failed")
		}
		return nil, ErrNotAuthorized
	}

	s.log.WithField("email", session.User.Email).Info("Admin login successful")
	return session, nil
}

// CurrentUser resolves the session behind a token, returning the user only
// when the allow-list check passes. A valid session for a non-admin account
// reports as no user.
func (s *AuthService) CurrentUser(token string) (*User, error) {
	user, err := s.auth.UserFromToken(token)
	if err != nil {
		return nil, err
	}
	if !s.isAdmin(user.Email) {
		return nil, ErrNotAuthorized
	}
	return user, nil
}

// Logout delegates to the backend's sign-out.
func (s *AuthService) Logout(token string) error {
	return s.auth.SignOut(token)
}
