package session

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
)

const lastEmailKey = "last_email"

// TokenStore persists the refresh token between runs.
type TokenStore interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// loginRecorder is implemented by stores that can also remember which
// account logged in last.
type loginRecorder interface {
	SaveLogin(ctx context.Context, token, email string) error
}

// SQLTokenStore keeps the refresh token in the metadata table.
type SQLTokenStore struct {
	db *sql.DB
}

var _ TokenStore = (*SQLTokenStore)(nil)

func NewSQLTokenStore(db *sql.DB) *SQLTokenStore {
	return &SQLTokenStore{db: db}
}

func (s *SQLTokenStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *SQLTokenStore) Load(ctx context.Context) (string, bool, error) {
	token, ok, err := s.repo(s.db).Get(ctx, common.RefreshTokenKey)
	if err != nil || !ok || token == "" {
		return "", false, err
	}
	return token, true, nil
}

func (s *SQLTokenStore) Save(ctx context.Context, token string) error {
	return s.repo(s.db).Set(ctx, common.RefreshTokenKey, token)
}

func (s *SQLTokenStore) Delete(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, common.RefreshTokenKey)
}

// SaveLogin stores the refresh token and the account email atomically.
func (s *SQLTokenStore) SaveLogin(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.RefreshTokenKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, lastEmailKey, email)
	})
}

// LastEmail returns the email of the most recent successful login.
func (s *SQLTokenStore) LastEmail(ctx context.Context) (string, error) {
	email, _, err := s.repo(s.db).Get(ctx, lastEmailKey)
	return email, err
}

// MemoryTokenStore is a process-local TokenStore.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

var _ TokenStore = (*MemoryTokenStore)(nil)

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Load(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != "", nil
}

func (m *MemoryTokenStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
