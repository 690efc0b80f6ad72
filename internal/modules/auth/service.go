package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"surveyhub/internal/domain"
	"surveyhub/internal/pkg/jwt"
	"surveyhub/internal/pkg/validator"
)

// Revocation reasons recorded on the ledger. Once set, a token never comes
// back to life.
const (
	reasonNewLogin   = "new login"
	reasonRotated    = "replaced by new token"
	reasonUserLogout = "user logout"
)

// refreshTokenBytes is the entropy of an opaque refresh-token value before
// encoding. 64 bytes keeps brute-force guessing infeasible within the 7-day
// window.
const refreshTokenBytes = 64

// Service is the session manager: it owns the login/refresh/logout state
// machine by composing the credential store, the token signer and the
// refresh-token ledger. It never retries internally and takes no locks; two
// concurrent logins for one account can race each other's revocation, with
// the accepted net effect that at most one session survives.
type Service struct {
	users  UserRepositoryInterface
	roles  RoleRepositoryInterface
	tokens RefreshTokenRepositoryInterface
	signer tokenSigner

	refreshTTL time.Duration
	now        func() time.Time
}

func NewService(
	users UserRepositoryInterface,
	roles RoleRepositoryInterface,
	tokens RefreshTokenRepositoryInterface,
	signer tokenSigner,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		roles:      roles,
		tokens:     tokens,
		signer:     signer,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Register creates the user, grants the requested role and opens a first
// session.
func (s *Service) Register(ctx context.Context, req RegisterRequest, ip string) (*RegisterResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.RoleName == "" {
		req.RoleName = domain.RoleUser
	}

	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	role, err := s.roles.GetByName(ctx, req.RoleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownRole
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.AddRole(ctx, user.ID, role.ID); err != nil {
		return nil, err
	}
	user.Roles = []domain.Role{*role}

	pair, err := s.issueTokenPair(ctx, user, ip)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: user, Tokens: pair}, nil
}

// Login verifies credentials, invalidates every standing session for the
// account and opens a fresh one. Unknown username and wrong password are
// deliberately the same failure.
func (s *Service) Login(ctx context.Context, req LoginRequest, ip string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Single-active-session: a successful login revokes every other standing
	// session for this account before minting the new pair.
	if err := s.tokens.RevokeAllForUser(ctx, user.ID, reasonNewLogin, ip); err != nil {
		return nil, err
	}

	pair, err := s.issueTokenPair(ctx, user, ip)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Tokens: pair}, nil
}

// Refresh rotates the presented token: it is revoked unconditionally, its
// replaced-by field points at the successor, and a new pair is minted.
// Single-use — redeeming a rotated token again fails, which is what blocks a
// replayed stolen token.
func (s *Service) Refresh(ctx context.Context, refreshValue, ip string) (*RefreshResult, error) {
	if refreshValue == "" {
		return nil, ErrInvalidOrExpiredToken
	}

	current, err := s.tokens.GetByToken(ctx, refreshValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOrExpiredToken
		}
		return nil, err
	}

	now := s.now()
	if !current.IsActive(now) {
		return nil, ErrInvalidOrExpiredToken
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		return nil, err
	}

	successor, err := newOpaqueToken()
	if err != nil {
		return nil, err
	}

	current.Revoke(now, reasonRotated, ip, successor)
	if err := s.tokens.Update(ctx, current); err != nil {
		return nil, err
	}

	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		Token:       successor,
		UserID:      user.ID,
		ExpiresAt:   now.Add(s.refreshTTL),
		CreatedByIP: ip,
	}); err != nil {
		return nil, err
	}

	access, err := s.signer.Issue(user, user.RoleNames())
	if err != nil {
		return nil, err
	}

	return &RefreshResult{Tokens: TokenPair{AccessToken: access, RefreshToken: successor}}, nil
}

// Logout is best-effort and idempotent: a missing, already-revoked or empty
// token is not an error, so session existence never leaks and double-submits
// are harmless.
func (s *Service) Logout(ctx context.Context, refreshValue, ip string) error {
	if refreshValue == "" {
		return nil
	}

	token, err := s.tokens.GetByToken(ctx, refreshValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if token.IsRevoked() {
		return nil
	}

	token.Revoke(s.now(), reasonUserLogout, ip, "")
	return s.tokens.Update(ctx, token)
}

// ValidateToken verifies an access token statelessly; the ledger is never
// consulted.
func (s *Service) ValidateToken(accessToken string) (*jwt.Claims, error) {
	claims, err := s.signer.Verify(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]domain.User, int64, error) {
	return s.users.List(ctx, page, limit)
}

func (s *Service) GrantRole(ctx context.Context, userID int64, roleName string) error {
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownRole
		}
		return err
	}
	return s.users.AddRole(ctx, userID, role.ID)
}

func (s *Service) RevokeRole(ctx context.Context, userID int64, roleName string) error {
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownRole
		}
		return err
	}
	return s.users.RemoveRole(ctx, userID, role.ID)
}

func (s *Service) issueTokenPair(ctx context.Context, user *domain.User, ip string) (TokenPair, error) {
	access, err := s.signer.Issue(user, user.RoleNames())
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := newOpaqueToken()
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		Token:       refresh,
		UserID:      user.ID,
		ExpiresAt:   s.now().Add(s.refreshTTL),
		CreatedByIP: ip,
	}); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func newOpaqueToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
