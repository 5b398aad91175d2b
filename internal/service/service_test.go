package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templui/fileshare/internal/db"
	"github.com/templui/fileshare/internal/repository"
	"github.com/templui/fileshare/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-test-secret-test-secret"

type testServices struct {
	auth     *AuthService
	sessions *SessionService
	files    *FileService
	dir      string
}

func setupServices(t *testing.T, maxUploadSize int64) *testServices {
	t.Helper()

	tmp := t.TempDir()
	database, err := db.Init("sqlite", filepath.Join(tmp, "test.db")+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	dir := filepath.Join(tmp, "uploads")
	local, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	auth := NewAuthService(repository.NewUserRepository(database))
	auth.bcryptCost = bcrypt.MinCost

	return &testServices{
		auth:     auth,
		sessions: NewSessionService(repository.NewSessionRepository(database), testSecret, time.Hour, false),
		files:    NewFileService(local, maxUploadSize),
		dir:      dir,
	}
}
