package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"timesheet-api/internal/auth"
	"timesheet-api/internal/domain"
	"timesheet-api/internal/repository/sqlite"
	"timesheet-api/internal/storage"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = sqlite.Migrate(context.Background(), db)
	require.NoError(t, err)
	return db
}

func newTestUserService(db *sql.DB) (UserService, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewUserService(sqlite.NewUserRepository(db), tokens, bcrypt.MinCost), tokens
}

func registerUser(t *testing.T, users UserService, email string) *domain.User {
	t.Helper()
	user, err := users.Register(context.Background(), RegisterInput{
		Email:     email,
		Password:  "secret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	return user
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *memoryStorage) PutObject(_ context.Context, body io.Reader, opts storage.PutOptions) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[opts.Key] = data
	m.types[opts.Key] = opts.ContentType
	return "s3://" + opts.Bucket + "/" + opts.Key, nil
}

func (m *memoryStorage) DeletePrefix(_ context.Context, _ string, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			delete(m.objects, key)
			delete(m.types, key)
		}
	}
	return nil
}

func (m *memoryStorage) GetObjectURL(_ context.Context, bucket, key string, expires time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://" + bucket + ".example.com/" + key + "?expires=" + expires.String(), nil
}

func (m *memoryStorage) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		keys = append(keys, key)
	}
	return keys
}

func pngUpload(name string) ReceiptUpload {
	data := []byte("\x89PNG fake")
	return ReceiptUpload{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}
}
