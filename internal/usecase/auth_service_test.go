package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tritogether/internal/auth"
	"tritogether/internal/domain/coaching"
)

func newAuthFixture(t *testing.T) (*AuthService, *stubCredentialRepo, *stubSender, *auth.PasswordHasher) {
	t.Helper()
	athletes := newStubAthleteRepo()
	coaches := newStubCoachRepo()
	creds := newStubCredentialRepo()
	sender := &stubSender{}
	hasher := auth.NewPasswordHasher(4)

	digest, err := hasher.Hash("athlete-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	athletes.put(coaching.Athlete{ID: 7, Name: "Athlete Javi", Email: "athlete@example.com"})
	creds.set(coaching.RoleAthlete, 7, "athlete@example.com", coaching.Credentials{PasswordDigest: digest})

	svc := NewAuthService(creds, athletes, coaches, auth.NewTokenService("test-secret", time.Hour), hasher, sender)
	return svc, creds, sender, hasher
}

func TestSignInIssuesToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	result, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "athlete@example.com",
		Password: "athlete-password",
		Role:     coaching.RoleAthlete,
	})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected an access token")
	}
	principal, err := svc.Tokens.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if principal.ID != 7 || principal.Role != coaching.RoleAthlete {
		t.Fatalf("unexpected claims %+v", principal)
	}
	athlete, ok := result.User.(coaching.Athlete)
	if !ok {
		t.Fatalf("expected athlete payload, got %T", result.User)
	}
	if athlete.Role != coaching.RoleAthlete {
		t.Fatalf("user payload should carry the role")
	}
}

func TestSignInGenericFailure(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, unknownErr := svc.SignIn(ctx, SignInInput{Email: "nobody@example.com", Password: "whatever1", Role: coaching.RoleAthlete})
	_, wrongErr := svc.SignIn(ctx, SignInInput{Email: "athlete@example.com", Password: "wrong-password", Role: coaching.RoleAthlete})

	// unknown account and wrong password are indistinguishable
	if !errors.Is(unknownErr, coaching.ErrUnauthorized) || !errors.Is(wrongErr, coaching.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for both, got %v / %v", unknownErr, wrongErr)
	}
}

func TestSignInRequiresFields(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, err := svc.SignIn(context.Background(), SignInInput{Email: "athlete@example.com", Role: coaching.RoleAthlete}); !errors.Is(err, coaching.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestTemporaryPasswordSingleUse(t *testing.T) {
	svc, creds, sender, _ := newAuthFixture(t)
	ctx := context.Background()

	if err := svc.ResetPassword(ctx, coaching.RoleAthlete, "athlete@example.com"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one recovery mail, got %d", len(sender.sent))
	}
	code := strings.SplitN(sender.sent[0], ":", 2)[1]
	if len(code) != 12 {
		t.Fatalf("expected a 12-character code, got %q", code)
	}

	if _, err := svc.SignIn(ctx, SignInInput{Email: "athlete@example.com", Password: code, Role: coaching.RoleAthlete}); err != nil {
		t.Fatalf("sign in with temp code: %v", err)
	}
	stored, _ := creds.GetByID(ctx, coaching.RoleAthlete, 7)
	if stored.TempDigest != nil {
		t.Fatalf("temp digest should be cleared after use")
	}
	if _, err := svc.SignIn(ctx, SignInInput{Email: "athlete@example.com", Password: code, Role: coaching.RoleAthlete}); !errors.Is(err, coaching.ErrUnauthorized) {
		t.Fatalf("temp code must be single use, got %v", err)
	}
	// the permanent password still works
	if _, err := svc.SignIn(ctx, SignInInput{Email: "athlete@example.com", Password: "athlete-password", Role: coaching.RoleAthlete}); err != nil {
		t.Fatalf("permanent password should survive a reset: %v", err)
	}
}

func TestResetPasswordMailFailure(t *testing.T) {
	svc, creds, sender, _ := newAuthFixture(t)
	sender.err = errors.New("smtp timeout")

	err := svc.ResetPassword(context.Background(), coaching.RoleAthlete, "athlete@example.com")
	if !errors.Is(err, coaching.ErrUpstreamUnavailable) {
		t.Fatalf("expected upstream unavailable, got %v", err)
	}
	// the digest is stored before delivery is attempted
	stored, _ := creds.GetByID(context.Background(), coaching.RoleAthlete, 7)
	if stored.TempDigest == nil {
		t.Fatalf("temp digest should have been stored")
	}
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	err := svc.ResetPassword(context.Background(), coaching.RoleAthlete, "nobody@example.com")
	if !errors.Is(err, coaching.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, creds, _, hasher := newAuthFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, ChangePasswordInput{
		Email:       "athlete@example.com",
		Password:    "athlete-password",
		NewPassword: "brand-new-password",
		Role:        coaching.RoleAthlete,
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	stored, _ := creds.GetByID(ctx, coaching.RoleAthlete, 7)
	if !hasher.Check("brand-new-password", stored.PasswordDigest) {
		t.Fatalf("new password should verify")
	}
	if hasher.Check("athlete-password", stored.PasswordDigest) {
		t.Fatalf("old password should no longer verify")
	}
}

func TestChangePasswordValidation(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ChangePasswordInput
	}{
		{
			name:  "missing fields",
			input: ChangePasswordInput{Email: "athlete@example.com", Role: coaching.RoleAthlete},
		},
		{
			name: "short new password",
			input: ChangePasswordInput{
				Email: "athlete@example.com", Password: "athlete-password", NewPassword: "short", Role: coaching.RoleAthlete,
			},
		},
		{
			name: "wrong current password",
			input: ChangePasswordInput{
				Email: "athlete@example.com", Password: "wrong", NewPassword: "long-enough-pass", Role: coaching.RoleAthlete,
			},
		},
		{
			name: "temporary flag without a pending code",
			input: ChangePasswordInput{
				Email: "athlete@example.com", Password: "athlete-password", NewPassword: "long-enough-pass",
				Role: coaching.RoleAthlete, Temporary: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ChangePassword(ctx, tt.input); !errors.Is(err, coaching.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestChangePasswordWithTemporaryCode(t *testing.T) {
	svc, creds, sender, hasher := newAuthFixture(t)
	ctx := context.Background()

	if err := svc.ResetPassword(ctx, coaching.RoleAthlete, "athlete@example.com"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	code := strings.SplitN(sender.sent[0], ":", 2)[1]

	err := svc.ChangePassword(ctx, ChangePasswordInput{
		Email:       "athlete@example.com",
		Password:    code,
		NewPassword: "recovered-password",
		Role:        coaching.RoleAthlete,
		Temporary:   true,
	})
	if err != nil {
		t.Fatalf("change password with temp code: %v", err)
	}
	stored, _ := creds.GetByID(ctx, coaching.RoleAthlete, 7)
	if stored.TempDigest != nil {
		t.Fatalf("temp digest should be cleared")
	}
	if !hasher.Check("recovered-password", stored.PasswordDigest) {
		t.Fatalf("new password should verify")
	}
}

type failingCredentialRepo struct {
	*stubCredentialRepo
	err error
}

func (r *failingCredentialRepo) GetByEmail(context.Context, coaching.Role, string) (int, coaching.Credentials, error) {
	return 0, coaching.Credentials{}, r.err
}

func TestSignInPropagatesStoreFailure(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	storeErr := errors.New("connection refused")
	svc.Credentials = &failingCredentialRepo{err: storeErr}

	_, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "athlete@example.com",
		Password: "athlete-password",
		Role:     coaching.RoleAthlete,
	})
	if errors.Is(err, coaching.ErrUnauthorized) {
		t.Fatalf("a store failure must not read as bad credentials")
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the store error, got %v", err)
	}
}
