package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/config"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
	"github.com/oksasatya/portfolio-api/pkg/mailer"
	mailtpl "github.com/oksasatya/portfolio-api/pkg/mailer/templates"
)

type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// PublicProfileCache is the part of the profile service role changes
// touch: the public profile belongs to the first owner.
type PublicProfileCache interface {
	InvalidatePublic(ctx context.Context)
}

type AuthService struct {
	Users  repo.UserRepository
	Tokens TokenIssuer
	Mail   *Notifier
	Cfg    *config.Config
	Logger logrus.FieldLogger
	// Profiles is optional.
	Profiles PublicProfileCache
}

func NewAuthService(users repo.UserRepository, tokens TokenIssuer, mail *Notifier, cfg *config.Config, logger logrus.FieldLogger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Mail: mail, Cfg: cfg, Logger: logger}
}

// Session is the result of a successful register or login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Register creates an account. The store assigns the role: owner for the
// very first account, viewer afterwards.
func (s *AuthService) Register(ctx context.Context, email, password string) (*Session, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Email: entity.NormalizeEmail(email), PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	helpers.LogInfo(s.Logger, "account created", logrus.Fields{"user_id": u.ID, "email": u.Email, "role": u.Role})

	s.Mail.Notify(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Cfg, u.Email, string(u.Role)),
	})
	return s.issue(u)
}

// Login checks credentials. Unknown emails and wrong passwords fail with
// distinct errors.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrIncorrectPassword
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		helpers.LogError(s.Logger, "issue token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *AuthService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// UpdateRole sets the role of user id. actor may be nil for changes made
// outside a request, e.g. from the CLI.
func (s *AuthService) UpdateRole(ctx context.Context, actor *entity.User, id string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if uuid.Validate(id) != nil {
		return nil, ErrUserNotFound
	}
	before, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u, err := s.Users.UpdateRole(ctx, id, role)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, err
	}

	fields := logrus.Fields{"user_id": u.ID, "email": u.Email, "from": before.Role, "to": u.Role}
	if actor != nil {
		fields["by"] = actor.Email
	}
	helpers.LogInfo(s.Logger, "user role updated", fields)

	if s.Profiles != nil && (before.Role == entity.RoleOwner) != (u.Role == entity.RoleOwner) {
		s.Profiles.InvalidatePublic(ctx)
	}

	if before.Role != u.Role {
		s.Mail.Notify(ctx, mailer.EmailJob{
			To:       u.Email,
			Template: mailtpl.RoleChanged,
			Data:     mailtpl.NewRoleChangedData(s.Cfg, u.Email, string(before.Role), string(u.Role), mailtpl.WithTime(u.UpdatedAt)),
		})
	}
	return u, nil
}

// SetRoleByEmail is UpdateRole addressed by email.
func (s *AuthService) SetRoleByEmail(ctx context.Context, email string, role entity.Role) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.UpdateRole(ctx, nil, u.ID, role)
}
