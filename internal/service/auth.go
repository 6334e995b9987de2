package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/tickbox/tickbox/internal/auth"
	"github.com/tickbox/tickbox/internal/metrics"
	"github.com/tickbox/tickbox/internal/model"
	"github.com/tickbox/tickbox/internal/repository"
)

const minPasswordLength = 6

// AuthService handles signup, signin and session token checks.
type AuthService struct {
	users   UserStore
	hasher  *auth.Hasher
	tokens  *auth.TokenManager
	metrics metrics.Recorder
	now     func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher *auth.Hasher, tokens *auth.TokenManager, recorder metrics.Recorder) *AuthService {
	if hasher == nil {
		hasher = auth.NewHasher(auth.DefaultCost)
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		metrics: recorder,
		now:     time.Now,
	}
}

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup validates the credentials and creates an account.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		s.metrics.IncSignupRejected("invalid")
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			s.metrics.IncSignupRejected("duplicate")
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncSignup()
	return user, nil
}

// Signin checks the credentials and returns a signed session token.
// An unknown email and a wrong password return the same error.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.hasher.Burn(password)
			s.metrics.IncSignin(false)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.metrics.IncSignin(false)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(model.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncSignin(true)
	return token, nil
}

// VerifyToken returns the identity embedded in a session token.
func (s *AuthService) VerifyToken(token string) (model.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		s.metrics.IncTokenRejected("missing")
		return model.Identity{}, ErrMissingToken
	}

	id, err := s.tokens.Verify(token)
	if err != nil {
		s.metrics.IncTokenRejected("invalid")
		return model.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return id, nil
}

// Profile returns the account behind userID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func validateCredentials(email, password string) error {
	verr := &ValidationError{}
	if !validEmail(email) {
		verr.Add("email", "must be a valid email address", email)
	}
	switch {
	case utf8.RuneCountInString(password) < minPasswordLength:
		verr.Add("password", fmt.Sprintf("must be at least %d characters", minPasswordLength), nil)
	case len(password) > auth.MaxPasswordBytes:
		verr.Add("password", fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes), nil)
	}
	return verr.Err()
}

// validEmail accepts a bare addr-spec with a dotted domain; display names are rejected.
func validEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	return at > 0 && strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}
