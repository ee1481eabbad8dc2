// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
	domainerror "github.com/invoice-tracker/invoicetrack/internal/domain/error"
)

type fakeUserRepo struct {
	users   map[string]*entity.User
	created []*entity.User
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.Email] = user
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

type fakePasswordService struct {
	weak bool
}

func (s *fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (s *fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (s *fakePasswordService) ValidatePasswordStrength(string) error {
	if s.weak {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type fakeTokenService struct {
	token string
}

func (s *fakeTokenService) GenerateAccessToken(_ context.Context, _ uuid.UUID, _ string) (string, error) {
	return s.token, nil
}

func (s *fakeTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	panic("not used")
}

type fakeEmailService struct {
	queued []string
	err    error
}

func (s *fakeEmailService) QueueWelcomeEmail(_ context.Context, email string) error {
	if s.err != nil {
		return s.err
	}
	s.queued = append(s.queued, email)
	return nil
}

func TestRegisterUserUseCase_Execute(t *testing.T) {
	t.Run("registers a new user and queues welcome email", func(t *testing.T) {
		repo := newFakeUserRepo()
		emails := &fakeEmailService{}
		uc := NewRegisterUserUseCase(repo, &fakePasswordService{}, emails)

		out, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "user@example.com",
			Password: "Sup3rSecret!",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.User.Email != "user@example.com" {
			t.Errorf("expected email user@example.com, got %s", out.User.Email)
		}
		if out.User.PasswordHash != "hashed:Sup3rSecret!" {
			t.Errorf("expected hashed password, got %s", out.User.PasswordHash)
		}
		if !out.User.IsActive {
			t.Error("expected new user to be active")
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected 1 created user, got %d", len(repo.created))
		}
		if len(emails.queued) != 1 || emails.queued[0] != "user@example.com" {
			t.Errorf("expected welcome email queued for user@example.com, got %v", emails.queued)
		}
	})

	t.Run("rejects invalid email format", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepo(), &fakePasswordService{}, nil)

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "not-an-email",
			Password: "Sup3rSecret!",
		})
		if !errors.Is(err, domainerror.ErrInvalidEmail) {
			t.Errorf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("rejects weak password", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepo(), &fakePasswordService{weak: true}, nil)

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "user@example.com",
			Password: "short",
		})
		if !errors.Is(err, domainerror.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.users["user@example.com"] = entity.NewUser("user@example.com", "hash")
		uc := NewRegisterUserUseCase(repo, &fakePasswordService{}, nil)

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "user@example.com",
			Password: "Sup3rSecret!",
		})
		if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}

		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatal("expected an AuthError")
		}
		if authErr.Code != domainerror.ErrCodeEmailExists {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmailExists, authErr.Code)
		}
	})

	t.Run("email queue failure does not fail registration", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewRegisterUserUseCase(repo, &fakePasswordService{}, &fakeEmailService{err: errors.New("queue down")})

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "user@example.com",
			Password: "Sup3rSecret!",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected user to be created, got %d", len(repo.created))
		}
	})
}

func TestLoginUserUseCase_Execute(t *testing.T) {
	setup := func() (*fakeUserRepo, *LoginUserUseCase) {
		repo := newFakeUserRepo()
		repo.users["user@example.com"] = entity.NewUser("user@example.com", "hashed:Sup3rSecret!")
		uc := NewLoginUserUseCase(repo, &fakePasswordService{}, &fakeTokenService{token: "tok-123"})
		return repo, uc
	}

	t.Run("returns access token on valid credentials", func(t *testing.T) {
		_, uc := setup()

		out, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "user@example.com",
			Password: "Sup3rSecret!",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken != "tok-123" {
			t.Errorf("expected token tok-123, got %s", out.AccessToken)
		}
	})

	t.Run("unknown email yields generic credentials error", func(t *testing.T) {
		_, uc := setup()

		_, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "nobody@example.com",
			Password: "Sup3rSecret!",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password yields generic credentials error", func(t *testing.T) {
		_, uc := setup()

		_, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "user@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("deactivated account yields generic credentials error", func(t *testing.T) {
		repo, uc := setup()
		repo.users["user@example.com"].IsActive = false

		_, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "user@example.com",
			Password: "Sup3rSecret!",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
