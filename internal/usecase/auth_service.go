package usecase

import (
	"context"
	"errors"
	"fmt"

	"tritogether/internal/auth"
	"tritogether/internal/domain/coaching"
)

// AuthService implements sign-in, password reset and password change for
// both principal tables.
type AuthService struct {
	Credentials CredentialRepository
	Athletes    AthleteRepository
	Coaches     CoachRepository
	Tokens      *auth.TokenService
	Hasher      *auth.PasswordHasher
	Mail        RecoverySender
}

func NewAuthService(credentials CredentialRepository, athletes AthleteRepository, coaches CoachRepository, tokens *auth.TokenService, hasher *auth.PasswordHasher, mail RecoverySender) *AuthService {
	return &AuthService{
		Credentials: credentials,
		Athletes:    athletes,
		Coaches:     coaches,
		Tokens:      tokens,
		Hasher:      hasher,
		Mail:        mail,
	}
}

type SignInInput struct {
	Email    string
	Password string
	Role     coaching.Role
}

type SignInResult struct {
	User        any
	AccessToken string
}

// SignIn verifies the supplied password against the permanent digest and,
// failing that, the temporary digest. A temporary code is single use: it is
// cleared the moment it signs somebody in. Either mismatch yields the same
// generic unauthorized outcome.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (SignInResult, error) {
	if input.Email == "" || input.Password == "" {
		return SignInResult{}, fmt.Errorf("email and password are required: %w", coaching.ErrInvalidInput)
	}
	id, creds, err := s.Credentials.GetByEmail(ctx, input.Role, input.Email)
	if errors.Is(err, coaching.ErrNotFound) {
		return SignInResult{}, coaching.ErrUnauthorized
	}
	if err != nil {
		return SignInResult{}, err
	}

	matched := s.Hasher.Check(input.Password, creds.PasswordDigest)
	usedTemp := false
	if !matched && creds.TempDigest != nil {
		matched = s.Hasher.Check(input.Password, *creds.TempDigest)
		usedTemp = matched
	}
	if !matched {
		return SignInResult{}, coaching.ErrUnauthorized
	}
	if usedTemp {
		if err := s.Credentials.ClearTempPassword(ctx, input.Role, id); err != nil {
			return SignInResult{}, err
		}
	}

	principal := coaching.Principal{ID: id, Role: input.Role}
	token, err := s.Tokens.Issue(principal)
	if err != nil {
		return SignInResult{}, err
	}
	user, err := s.loadUser(ctx, principal)
	if err != nil {
		return SignInResult{}, err
	}
	return SignInResult{User: user, AccessToken: token}, nil
}

// ResetPassword stores a freshly hashed temporary code and mails the
// plaintext to the account's address. A prior unused code is overwritten.
func (s *AuthService) ResetPassword(ctx context.Context, role coaching.Role, email string) error {
	if email == "" {
		return fmt.Errorf("email is required: %w", coaching.ErrInvalidInput)
	}
	id, _, err := s.Credentials.GetByEmail(ctx, role, email)
	if errors.Is(err, coaching.ErrNotFound) {
		return fmt.Errorf("email not registered: %w", coaching.ErrInvalidInput)
	}
	if err != nil {
		return err
	}
	code, err := auth.GenerateTempPassword()
	if err != nil {
		return err
	}
	digest, err := s.Hasher.Hash(code)
	if err != nil {
		return err
	}
	if err := s.Credentials.SetTempPassword(ctx, role, id, digest); err != nil {
		return err
	}
	if err := s.Mail.SendPasswordRecovery(email, code); err != nil {
		return fmt.Errorf("recovery mail: %w", coaching.ErrUpstreamUnavailable)
	}
	return nil
}

type ChangePasswordInput struct {
	Email       string
	Password    string
	NewPassword string
	Role        coaching.Role
	Temporary   bool
}

// ChangePassword replaces the permanent digest after verifying the current
// password; Temporary selects which digest the current password is checked
// against. The temporary digest is always cleared on success.
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.Email == "" || input.Password == "" || input.NewPassword == "" {
		return fmt.Errorf("email and passwords are required: %w", coaching.ErrInvalidInput)
	}
	if len(input.NewPassword) < auth.MinPasswordLength {
		return fmt.Errorf("new password shorter than %d characters: %w", auth.MinPasswordLength, coaching.ErrInvalidInput)
	}
	id, creds, err := s.Credentials.GetByEmail(ctx, input.Role, input.Email)
	if errors.Is(err, coaching.ErrNotFound) {
		return fmt.Errorf("user not found: %w", coaching.ErrInvalidInput)
	}
	if err != nil {
		return err
	}
	digest := creds.PasswordDigest
	if input.Temporary {
		if creds.TempDigest == nil {
			return fmt.Errorf("incorrect password: %w", coaching.ErrInvalidInput)
		}
		digest = *creds.TempDigest
	}
	if !s.Hasher.Check(input.Password, digest) {
		return fmt.Errorf("incorrect password: %w", coaching.ErrInvalidInput)
	}
	newDigest, err := s.Hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	return s.Credentials.SetPassword(ctx, input.Role, id, newDigest)
}

func (s *AuthService) loadUser(ctx context.Context, principal coaching.Principal) (any, error) {
	switch principal.Role {
	case coaching.RoleCoach:
		coach, err := s.Coaches.GetByID(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		coach.Role = coaching.RoleCoach
		return coach, nil
	default:
		athlete, err := s.Athletes.GetByID(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		athlete.Role = coaching.RoleAthlete
		return athlete, nil
	}
}
