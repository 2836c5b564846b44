package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/pages"
	"github.com/dmitrijs2005/bookshelf/internal/client/storage"
	"github.com/dmitrijs2005/bookshelf/internal/client/transport"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 lossless WebP.
const tinyWebP = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestReader_OpenSavesPageAndRecordsProgress(t *testing.T) {
	id := uuid.New()
	data := pngBytes(t, 4, 3)
	fc := &fakeClient{
		BookEnv: ok(t, models.Book{ID: id, Title: "Dune", PagesCount: 10}),
		PageRet: &client.PageImage{Data: data, ContentType: "image/png", PageNumber: 2},
	}
	sess := &fakeSession{user: &models.User{Username: "reader"}}
	dir := t.TempDir()

	view, err := NewReaderService(fc, sess, dir, nil, nil).Open(context.Background(), id, 2)
	require.NoError(t, err)

	assert.Equal(t, "Dune", view.Book.Title)
	assert.Equal(t, 2, view.Page)
	assert.Equal(t, 10, view.TotalPages)
	assert.Equal(t, "png", view.Format)
	assert.Equal(t, 4, view.Width)
	assert.Equal(t, 3, view.Height)
	assert.Equal(t, len(data), view.Size)
	assert.Equal(t, filepath.Join(dir, id.String(), "2.png"), view.Path)

	saved, err := os.ReadFile(view.Path)
	require.NoError(t, err)
	assert.Equal(t, data, saved)

	assert.Equal(t, 2, fc.LastPage)
	assert.Equal(t, []int{2}, fc.EndPages)
}

func TestReader_GuestDoesNotRecordProgress(t *testing.T) {
	fc := &fakeClient{
		BookEnv: ok(t, models.Book{PagesCount: 3}),
		PageRet: &client.PageImage{Data: []byte("%PDF-1.4 ..."), ContentType: "application/pdf", TotalPages: 3},
	}

	view, err := NewReaderService(fc, &fakeSession{}, t.TempDir(), nil, nil).Open(context.Background(), uuid.New(), 1)
	require.NoError(t, err)
	assert.Equal(t, "pdf", view.Format)
	assert.Equal(t, ".pdf", filepath.Ext(view.Path))
	assert.Empty(t, fc.EndPages)
}

func TestReader_ProgressFailureIsNotFatal(t *testing.T) {
	fc := &fakeClient{
		BookEnv: ok(t, models.Book{PagesCount: 3}),
		PageRet: &client.PageImage{Data: pngBytes(t, 1, 1)},
		TextEnv: failed[string](t, "error", "Status not found"),
	}
	sess := &fakeSession{user: &models.User{Username: "reader"}}

	_, err := NewReaderService(fc, sess, t.TempDir(), nil, nil).Open(context.Background(), uuid.New(), 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, fc.EndPages)
}

func TestReader_PageOutOfRange(t *testing.T) {
	fc := &fakeClient{BookEnv: ok(t, models.Book{PagesCount: 3})}
	svc := NewReaderService(fc, &fakeSession{}, t.TempDir(), nil, nil)

	for _, page := range []int{0, 4} {
		_, err := svc.Open(context.Background(), uuid.New(), page)
		require.ErrorIs(t, err, ErrPageOutOfRange)
	}
	assert.Zero(t, fc.LastPage, "no page is requested")
}

func TestReader_BookNotFound(t *testing.T) {
	fc := &fakeClient{BookEnv: failed[models.Book](t, "error", "x")}
	fc.BookEnv.Data = nil

	_, err := NewReaderService(fc, &fakeSession{}, t.TempDir(), nil, nil).Open(context.Background(), uuid.New(), 1)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestReader_PageError(t *testing.T) {
	boom := errors.New("gone")
	fc := &fakeClient{BookEnv: ok(t, models.Book{PagesCount: 3}), PageErr: boom}

	_, err := NewReaderService(fc, &fakeSession{}, t.TempDir(), nil, nil).Open(context.Background(), uuid.New(), 1)
	require.ErrorIs(t, err, boom)
}

func TestDescribe(t *testing.T) {
	webp, err := base64.StdEncoding.DecodeString(tinyWebP)
	require.NoError(t, err)

	tests := []struct {
		name        string
		data        []byte
		contentType string
		format      string
		w, h        int
	}{
		{name: "png", data: pngBytes(t, 5, 2), format: "png", w: 5, h: 2},
		{name: "webp", data: webp, format: "webp", w: 1, h: 1},
		{name: "pdf", data: []byte("%PDF-1.7"), format: "pdf"},
		{name: "by content type", data: []byte("?"), contentType: "image/svg+xml; charset=utf-8", format: "svg+xml"},
		{name: "unknown", data: []byte("?"), format: "bin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, w, h := describe(tt.data, tt.contentType)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}

	assert.Equal(t, ".jpg", extension("jpeg"))
	assert.Equal(t, ".webp", extension("webp"))
	assert.Equal(t, ".bin", extension("svg+xml"))
}

func savedRepo(t *testing.T) *pages.SQLiteRepository {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return pages.NewSQLiteRepository(db)
}

func TestReader_IndexesSavedPages(t *testing.T) {
	id := uuid.New()
	fc := &fakeClient{
		BookEnv: ok(t, models.Book{ID: id, Title: "Dune", PagesCount: 10}),
		PageRet: &client.PageImage{Data: pngBytes(t, 2, 2), ContentType: "image/png"},
	}
	repo := savedRepo(t)
	svc := NewReaderService(fc, &fakeSession{}, t.TempDir(), repo, nil)
	ctx := context.Background()

	_, err := svc.Open(ctx, id, 4)
	require.NoError(t, err)
	_, err = svc.Open(ctx, id, 1)
	require.NoError(t, err)

	saved, err := svc.Saved(ctx, id)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, 1, saved[0].PageNumber)
	assert.Equal(t, 4, saved[1].PageNumber)
	assert.Equal(t, "Dune", saved[0].Title)
	assert.Equal(t, "png", saved[0].Format)

	recent, err := svc.Saved(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestReader_ServesSavedPageWhenOffline(t *testing.T) {
	id := uuid.New()
	data := pngBytes(t, 3, 5)
	fc := &fakeClient{
		BookEnv: ok(t, models.Book{ID: id, Title: "Dune", PagesCount: 10}),
		PageRet: &client.PageImage{Data: data, ContentType: "image/png"},
	}
	sess := &fakeSession{user: &models.User{Username: "reader"}}
	svc := NewReaderService(fc, sess, t.TempDir(), savedRepo(t), nil)
	ctx := context.Background()

	first, err := svc.Open(ctx, id, 2)
	require.NoError(t, err)
	require.False(t, first.Cached)

	fc.BookEnv = offline[models.Book]()
	fc.EndPages = nil

	view, err := svc.Open(ctx, id, 2)
	require.NoError(t, err)
	assert.True(t, view.Cached)
	assert.Equal(t, first.Path, view.Path)
	assert.Equal(t, "Dune", view.Book.Title)
	assert.Equal(t, 10, view.TotalPages)
	assert.Equal(t, 3, view.Width)
	assert.Equal(t, 5, view.Height)
	assert.Empty(t, fc.EndPages, "progress is not recorded offline")

	_, err = svc.Open(ctx, id, 3)
	require.ErrorIs(t, err, ErrOffline, "pages never saved are not served")
}

func TestReader_PageNetworkFailureFallsBack(t *testing.T) {
	id := uuid.New()
	fc := &fakeClient{
		BookEnv: ok(t, models.Book{ID: id, Title: "Dune", PagesCount: 10}),
		PageRet: &client.PageImage{Data: []byte("%PDF-1.4 ...")},
	}
	svc := NewReaderService(fc, &fakeSession{}, t.TempDir(), savedRepo(t), nil)
	ctx := context.Background()

	_, err := svc.Open(ctx, id, 1)
	require.NoError(t, err)

	fc.PageErr = &transport.Error{Kind: transport.KindNetworkFailure, Op: "GET /page", Err: errors.New("refused")}
	view, err := svc.Open(ctx, id, 1)
	require.NoError(t, err)
	assert.True(t, view.Cached)
	assert.Equal(t, "pdf", view.Format)
}

func TestReader_ServerErrorDoesNotFallBack(t *testing.T) {
	id := uuid.New()
	fc := &fakeClient{
		BookEnv: ok(t, models.Book{ID: id, PagesCount: 10}),
		PageRet: &client.PageImage{Data: pngBytes(t, 1, 1)},
	}
	svc := NewReaderService(fc, &fakeSession{}, t.TempDir(), savedRepo(t), nil)
	ctx := context.Background()

	_, err := svc.Open(ctx, id, 1)
	require.NoError(t, err)

	fc.BookEnv = failed[models.Book](t, "error", "Book is blocked")
	_, err = svc.Open(ctx, id, 1)
	require.Error(t, err)
	assert.Equal(t, "Book is blocked", err.Error())
}

func TestReader_Forget(t *testing.T) {
	id := uuid.New()
	fc := &fakeClient{
		BookEnv: ok(t, models.Book{ID: id, PagesCount: 10}),
		PageRet: &client.PageImage{Data: pngBytes(t, 1, 1)},
	}
	dir := t.TempDir()
	svc := NewReaderService(fc, &fakeSession{}, dir, savedRepo(t), nil)
	ctx := context.Background()

	view, err := svc.Open(ctx, id, 1)
	require.NoError(t, err)

	n, err := svc.Forget(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoFileExists(t, view.Path)

	saved, err := svc.Saved(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestReader_NoIndex(t *testing.T) {
	svc := NewReaderService(&fakeClient{}, &fakeSession{}, t.TempDir(), nil, nil)

	saved, err := svc.Saved(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, saved)

	n, err := svc.Forget(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, n)
}
