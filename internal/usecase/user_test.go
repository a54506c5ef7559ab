package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
)

func TestCreateUserAndSession(t *testing.T) {
	t.Parallel()

	users := memory.NewUserRepository()
	createUser, err := NewCreateUser(users, newValidator(), stubHasher{}, WithLogger(silentLogger()))
	require.NoError(t, err)
	createSession, err := NewCreateSession(users, newValidator(), stubHasher{}, stubTokens{}, WithLogger(silentLogger()))
	require.NoError(t, err)

	ctx := context.Background()
	user, err := createUser.Execute(ctx, &CreateUserInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "secret1",
		Admin:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "hashed:secret1", user.PasswordHash)
	assert.True(t, user.Admin)

	_, err = createUser.Execute(ctx, &CreateUserInput{Name: "Ada 2", Email: "ada@example.com", Password: "secret2"})
	assert.Equal(t, domain.KindDuplicateEmail, domain.KindOf(err))

	session, err := createSession.Execute(ctx, &CreateSessionInput{Email: "ADA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)
	assert.Equal(t, "token-"+user.ID, session.Token)
}

func TestCreateUser_ShapeError(t *testing.T) {
	t.Parallel()

	uc, err := NewCreateUser(memory.NewUserRepository(), newValidator(), stubHasher{}, WithLogger(silentLogger()))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &CreateUserInput{Name: "Bob", Email: "bob", Password: "123"})

	var shapeErr *domain.ShapeError
	require.True(t, errors.As(err, &shapeErr))
	fields := make([]string, 0, len(shapeErr.Fields))
	for _, fe := range shapeErr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)
}

func TestCreateSession_InvalidCredentials(t *testing.T) {
	t.Parallel()

	users := memory.NewUserRepository()
	_, err := users.Insert(context.Background(), domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hashed:secret1"})
	require.NoError(t, err)

	uc, err := NewCreateSession(users, newValidator(), stubHasher{}, stubTokens{}, WithLogger(silentLogger()))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input *CreateSessionInput
	}{
		{name: "unknown email", input: &CreateSessionInput{Email: "eve@example.com", Password: "secret1"}},
		{name: "wrong password", input: &CreateSessionInput{Email: "ada@example.com", Password: "secret2"}},
		{name: "malformed email", input: &CreateSessionInput{Email: "ada", Password: "secret1"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := uc.Execute(context.Background(), tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestNewCreateSession_MissingDependency(t *testing.T) {
	t.Parallel()

	_, err := NewCreateSession(memory.NewUserRepository(), newValidator(), stubHasher{}, nil)
	assert.ErrorIs(t, err, domain.ErrMissingDependency)
}

func TestCreateUser_PasswordByteLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "72 bytes", password: strings.Repeat("a", 72)},
		{name: "73 bytes", password: strings.Repeat("a", 73), wantErr: true},
		{name: "40 runes of 2 bytes", password: strings.Repeat("я", 40), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			users := memory.NewUserRepository()
			uc, err := NewCreateUser(users, newValidator(), stubHasher{}, WithLogger(silentLogger()))
			require.NoError(t, err)

			_, err = uc.Execute(context.Background(), &CreateUserInput{Name: "Eve", Email: "eve@example.com", Password: tt.password})
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			var shapeErr *domain.ShapeError
			require.True(t, errors.As(err, &shapeErr), "expected ShapeError, got %v", err)
			require.Len(t, shapeErr.Fields, 1)
			assert.Equal(t, "password", shapeErr.Fields[0].Field)
			assert.True(t, domain.IsClientError(err))

			_, err = users.FindByEmail(context.Background(), "eve@example.com")
			assert.ErrorIs(t, err, domain.ErrUserNotFound)
		})
	}
}
