package session

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSession_EmptyUntilUserSet(t *testing.T) {
	s := New(NewMemoryTokenStore(""))

	assert.True(t, s.IsEmpty())
	_, ok := s.UserID()
	assert.False(t, ok)
	name, ok := s.UserName()
	assert.False(t, ok)
	assert.Empty(t, name)
	_, ok = s.UserEmail()
	assert.False(t, ok)

	u := models.User{ID: uuid.New(), Username: "paul", Email: "paul@arrakis.test"}
	s.SetUser(u)

	assert.False(t, s.IsEmpty())
	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, u, got)

	id, _ := s.UserID()
	assert.Equal(t, u.ID, id)
	email, _ := s.UserEmail()
	assert.Equal(t, "paul@arrakis.test", email)
}

func TestSession_SaveLoginPersistsRefreshToken(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	store := NewSQLTokenStore(db)
	s := New(store)

	login := models.UserLogin{
		AccessToken:  "a1",
		RefreshToken: "r1",
		UserData:     models.User{ID: uuid.New(), Username: "jessica", Email: "j@bg.test"},
	}
	require.NoError(t, s.SaveLogin(ctx, login))

	assert.Equal(t, "a1", s.AccessToken())
	assert.False(t, s.IsEmpty())

	token, ok, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "r1", token)

	email, err := store.LastEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "j@bg.test", email)

	// a fresh session over the same database sees the persisted token only
	other := New(NewSQLTokenStore(db))
	assert.True(t, other.IsEmpty())
	token, ok, err = other.RefreshToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "r1", token)
}

func TestSession_RefreshTokenReadFresh(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	s := New(NewSQLTokenStore(db))

	_, ok, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = db.Exec(`INSERT INTO metadata(key, value) VALUES ('refresh_token', 'out-of-band')`)
	require.NoError(t, err)

	token, ok, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "out-of-band", token)
}

func TestSession_Clear(t *testing.T) {
	ctx := context.Background()
	s := New(NewSQLTokenStore(openDB(t)))
	require.NoError(t, s.SaveLogin(ctx, models.UserLogin{AccessToken: "a", RefreshToken: "r"}))

	require.NoError(t, s.Clear(ctx))

	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.AccessToken())
	_, ok, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingStore struct{ err error }

func (f failingStore) Load(context.Context) (string, bool, error) { return "", false, f.err }
func (f failingStore) Save(context.Context, string) error         { return f.err }
func (f failingStore) Delete(context.Context) error               { return f.err }

func TestSession_StoreErrorsWrapped(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	s := New(failingStore{err: boom})

	_, _, err := s.RefreshToken(ctx)
	require.ErrorIs(t, err, boom)

	require.ErrorIs(t, s.SetRefreshToken(ctx, "x"), boom)

	err = s.SaveLogin(ctx, models.UserLogin{RefreshToken: "r", UserData: models.User{Username: "u"}})
	require.ErrorIs(t, err, boom)
	assert.True(t, s.IsEmpty(), "user must not be set when the token could not be saved")

	require.ErrorIs(t, s.Clear(ctx), boom)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := New(NewMemoryTokenStore(""))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetAccessToken("t")
			s.SetUser(models.User{Username: "u"})
		}()
		go func() {
			defer wg.Done()
			_ = s.AccessToken()
			_, _ = s.UserName()
		}()
	}
	wg.Wait()
	assert.Equal(t, "t", s.AccessToken())
}

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryTokenStore("")

	_, ok, _ := m.Load(ctx)
	assert.False(t, ok)

	require.NoError(t, m.Save(ctx, "r"))
	tok, ok, _ := m.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, "r", tok)

	require.NoError(t, m.Delete(ctx))
	_, ok, _ = m.Load(ctx)
	assert.False(t, ok)
}
