package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"notice-board/internal/database"
	"notice-board/internal/model"
	"notice-board/internal/service"
)

func restoreGlobals() {
	loadDotenv = godotenv.Load
	newPgxPool = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	createSuperuser = service.CreateSuperuser
	exitFunc = os.Exit
	stdout = os.Stdout
}

func stubAll(t *testing.T) *bytes.Buffer {
	t.Cleanup(restoreGlobals)
	t.Setenv("DATABASE_URL", "postgres://localhost/board")
	loadDotenv = func(...string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	runMigrationsFn = func(string) error { return nil }
	buf := &bytes.Buffer{}
	stdout = buf
	return buf
}

func TestRunCreatesSuperuser(t *testing.T) {
	out := stubAll(t)
	closed := false
	newPgxPool = func(context.Context, string) (database.DB, error) {
		return &database.FakeDB{CloseFn: func() { closed = true }}, nil
	}
	createSuperuser = func(_ context.Context, _ database.DB, in service.NewUser) (*model.User, error) {
		require.Equal(t, "admin@example.com", in.Email)
		require.Equal(t, "secret123", in.Password)
		require.Equal(t, "Ada", in.FirstName)
		require.NotNil(t, in.Phone)
		require.Equal(t, "+886", *in.Phone)
		return &model.User{ID: 7, Email: in.Email, Role: model.RoleAdmin}, nil
	}

	err := run([]string{"-email", "admin@example.com", "-password", "secret123", "-first-name", "Ada", "-phone", "+886"})
	require.NoError(t, err)
	require.True(t, closed)
	require.Contains(t, out.String(), "admin@example.com")
	require.Contains(t, out.String(), "id=7")
}

func TestRunNoPhone(t *testing.T) {
	stubAll(t)
	createSuperuser = func(_ context.Context, _ database.DB, in service.NewUser) (*model.User, error) {
		require.Nil(t, in.Phone)
		return &model.User{ID: 1, Email: in.Email}, nil
	}
	require.NoError(t, run([]string{"-email", "a@b.c", "-password", "pw"}))
}

func TestRunErrors(t *testing.T) {
	t.Run("bad flag", func(t *testing.T) {
		stubAll(t)
		require.Error(t, run([]string{"-unknown"}))
	})

	t.Run("dotenv", func(t *testing.T) {
		stubAll(t)
		loadDotenv = func(...string) error { return errors.New("parse") }
		require.Error(t, run(nil))
	})

	t.Run("missing env file is fine", func(t *testing.T) {
		stubAll(t)
		loadDotenv = func(...string) error { return os.ErrNotExist }
		createSuperuser = func(context.Context, database.DB, service.NewUser) (*model.User, error) {
			return &model.User{}, nil
		}
		require.NoError(t, run(nil))
	})

	t.Run("no DATABASE_URL", func(t *testing.T) {
		stubAll(t)
		t.Setenv("DATABASE_URL", "")
		require.Error(t, run(nil))
	})

	t.Run("db", func(t *testing.T) {
		stubAll(t)
		newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
		require.Error(t, run(nil))
	})

	t.Run("migrate", func(t *testing.T) {
		stubAll(t)
		runMigrationsFn = func(string) error { return errors.New("migrate") }
		require.Error(t, run(nil))
	})

	t.Run("validation", func(t *testing.T) {
		stubAll(t)
		createSuperuser = service.CreateSuperuser
		err := run([]string{"-password", "pw"})
		var ve *service.ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, "Email must be provided", ve.Fields["email"])
	})
}

func TestMainExit(t *testing.T) {
	stubAll(t)
	t.Setenv("DATABASE_URL", "")
	code := 0
	exitFunc = func(c int) { code = c }
	stdout = io.Discard
	main()
	require.Equal(t, 1, code)
}
