package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// CreateUser регистрирует пользователя.
type CreateUser struct {
	users     domain.UserRepository
	validator domain.Validator
	hasher    domain.PasswordHasher
	opts      options
}

// NewCreateUser собирает use case.
func NewCreateUser(users domain.UserRepository, validator domain.Validator, hasher domain.PasswordHasher, opts ...Option) (*CreateUser, error) {
	const name = "create_user"
	switch {
	case users == nil:
		return nil, domain.MissingDependency(name, "users")
	case validator == nil:
		return nil, domain.MissingDependency(name, "validator")
	case hasher == nil:
		return nil, domain.MissingDependency(name, "hasher")
	}
	return &CreateUser{users: users, validator: validator, hasher: hasher, opts: buildOptions(name, opts)}, nil
}

// Execute проверяет уникальность email и сохраняет пользователя с хешем пароля.
func (uc *CreateUser) Execute(ctx context.Context, in *CreateUserInput) (user domain.User, err error) {
	if in == nil {
		return domain.User{}, domain.ErrMissingInput
	}
	defer func() {
		if err != nil {
			logFailure(uc.opts.logger, err, log.Fields{"email": in.Email})
		}
	}()

	if err := uc.validator.Validate(SchemaUserCreate, in); err != nil {
		return domain.User{}, err
	}

	email := normalizeEmail(in.Email)
	_, err = uc.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.User{}, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.User{}, fmt.Errorf("find user by email: %w", err)
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err = uc.users.Insert(ctx, domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Admin:        in.Admin,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	uc.opts.logger.WithFields(log.Fields{"user_id": user.ID, "admin": user.Admin}).Info("user created")
	return user, nil
}

// Session: результат успешного входа.
type Session struct {
	User  domain.User
	Token string
}

// CreateSession проверяет учётные данные и выпускает токен.
type CreateSession struct {
	users     domain.UserRepository
	validator domain.Validator
	hasher    domain.PasswordHasher
	tokens    domain.TokenIssuer
	opts      options
}

// NewCreateSession собирает use case.
func NewCreateSession(users domain.UserRepository, validator domain.Validator, hasher domain.PasswordHasher, tokens domain.TokenIssuer, opts ...Option) (*CreateSession, error) {
	const name = "create_session"
	switch {
	case users == nil:
		return nil, domain.MissingDependency(name, "users")
	case validator == nil:
		return nil, domain.MissingDependency(name, "validator")
	case hasher == nil:
		return nil, domain.MissingDependency(name, "hasher")
	case tokens == nil:
		return nil, domain.MissingDependency(name, "tokens")
	}
	return &CreateSession{users: users, validator: validator, hasher: hasher, tokens: tokens, opts: buildOptions(name, opts)}, nil
}

// Execute возвращает ErrInvalidCredentials одинаково для неизвестного email,
// неверного пароля и некорректной формы входа.
func (uc *CreateSession) Execute(ctx context.Context, in *CreateSessionInput) (session Session, err error) {
	if in == nil {
		return Session{}, domain.ErrMissingInput
	}
	defer func() {
		if err != nil {
			logFailure(uc.opts.logger, err, nil)
		}
	}()

	if err := uc.validator.Validate(SchemaSessionCreate, in); err != nil {
		var shapeErr *domain.ShapeError
		if errors.As(err, &shapeErr) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, err
	}

	user, err := uc.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("find user by email: %w", err)
	}

	if err := uc.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		return Session{}, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	uc.opts.logger.WithField("user_id", user.ID).Debug("session created")
	return Session{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
