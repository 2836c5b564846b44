package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/pages"
	"github.com/dmitrijs2005/bookshelf/internal/filex"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const pdfMagic = "%PDF-"

// PageView is a downloaded book page saved to disk. Cached views come from an
// earlier download because the server could not be reached.
type PageView struct {
	Book       models.Book
	Page       int
	TotalPages int
	Path       string
	Format     string
	Width      int
	Height     int
	Size       int
	Cached     bool
}

// RecentLimit bounds the saved-page listing when no book is given.
const RecentLimit = 20

// ReaderService downloads book pages. Signed-in readers also get their
// reading progress recorded. Downloaded pages are indexed locally and served
// from disk while the server is unreachable.
type ReaderService interface {
	Open(ctx context.Context, id uuid.UUID, page int) (*PageView, error)
	Saved(ctx context.Context, id uuid.UUID) ([]models.SavedPage, error)
	Forget(ctx context.Context, id uuid.UUID) (int64, error)
}

type readerService struct {
	client   client.Client
	sess     Session
	pagesDir string
	saved    pages.Repository
	log      logging.Logger
}

// NewReaderService stores pages under pagesDir, one directory per book.
// saved may be nil, which disables the local index and offline reading.
func NewReaderService(c client.Client, sess Session, pagesDir string, saved pages.Repository, log logging.Logger) ReaderService {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &readerService{client: c, sess: sess, pagesDir: pagesDir, saved: saved, log: log}
}

func (s *readerService) Open(ctx context.Context, id uuid.UUID, page int) (*PageView, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
	}

	book, err := bookFrom(s.client.GetBook(ctx, id))
	if err != nil {
		return s.fallback(ctx, id, page, err)
	}
	if book.PagesCount > 0 && page > book.PagesCount {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, book.PagesCount)
	}

	img, err := s.client.GetPage(ctx, id, page)
	if err != nil {
		return s.fallback(ctx, id, page, fmt.Errorf("get page: %w", err))
	}

	view := &PageView{
		Book:       book,
		Page:       page,
		TotalPages: book.PagesCount,
		Size:       len(img.Data),
	}
	if img.TotalPages > 0 {
		view.TotalPages = img.TotalPages
	}
	view.Format, view.Width, view.Height = describe(img.Data, img.ContentType)

	dir, err := filex.EnsureDir(filepath.Join(s.pagesDir, id.String()))
	if err != nil {
		return nil, fmt.Errorf("pages dir: %w", err)
	}
	view.Path = filepath.Join(dir, strconv.Itoa(page)+extension(view.Format))
	if err := filex.WriteFileAtomic(view.Path, img.Data); err != nil {
		return nil, fmt.Errorf("save page: %w", err)
	}
	s.index(ctx, view)

	if _, ok := s.sess.User(); ok {
		if _, err := unwrap(s.client.UpdateReadingEndPage(ctx, id, page)); err != nil {
			s.log.Warn(ctx, "reading progress not saved", "book", id, "page", page, "error", err)
		}
	}

	return view, nil
}

// Saved lists the pages of one book kept on disk, or the most recent pages
// of any book when id is uuid.Nil.
func (s *readerService) Saved(ctx context.Context, id uuid.UUID) ([]models.SavedPage, error) {
	if s.saved == nil {
		return nil, nil
	}
	if id == uuid.Nil {
		return s.saved.Recent(ctx, RecentLimit)
	}
	return s.saved.ListByBook(ctx, id)
}

// Forget deletes a book's saved pages from disk and from the index.
func (s *readerService) Forget(ctx context.Context, id uuid.UUID) (int64, error) {
	if err := os.RemoveAll(filepath.Join(s.pagesDir, id.String())); err != nil {
		return 0, fmt.Errorf("remove pages: %w", err)
	}
	if s.saved == nil {
		return 0, nil
	}
	return s.saved.DeleteByBook(ctx, id)
}

func (s *readerService) index(ctx context.Context, v *PageView) {
	if s.saved == nil {
		return
	}
	rec := &models.SavedPage{
		BookID:     v.Book.ID,
		PageNumber: v.Page,
		Title:      v.Book.Title,
		TotalPages: v.TotalPages,
		Path:       v.Path,
		Format:     v.Format,
		Size:       v.Size,
	}
	if rec.BookID == uuid.Nil {
		return
	}
	if err := s.saved.Save(ctx, rec); err != nil {
		s.log.Warn(ctx, "saved page not indexed", "book", v.Book.ID, "page", v.Page, "error", err)
	}
}

// fallback serves a previously saved page when cause says the server is
// unreachable. Otherwise, or when nothing usable is on disk, cause is returned.
func (s *readerService) fallback(ctx context.Context, id uuid.UUID, page int, cause error) (*PageView, error) {
	if s.saved == nil || !Unreachable(cause) {
		return nil, cause
	}

	rec, err := s.saved.Get(ctx, id, page)
	if err != nil {
		return nil, cause
	}
	data, err := os.ReadFile(rec.Path)
	if err != nil {
		s.log.Debug(ctx, "saved page missing on disk", "path", rec.Path, "error", err)
		return nil, cause
	}

	view := &PageView{
		Book:       models.Book{ID: rec.BookID, Title: rec.Title, PagesCount: rec.TotalPages},
		Page:       rec.PageNumber,
		TotalPages: rec.TotalPages,
		Path:       rec.Path,
		Size:       len(data),
		Cached:     true,
	}
	view.Format, view.Width, view.Height = describe(data, "")
	s.log.Info(ctx, "serving saved page", "book", id, "page", page)
	return view, nil
}

// describe names the page format and, for images, their size in pixels.
func describe(data []byte, contentType string) (format string, width, height int) {
	if cfg, name, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		return name, cfg.Width, cfg.Height
	}
	if bytes.HasPrefix(data, []byte(pdfMagic)) {
		return "pdf", 0, 0
	}
	if _, sub, ok := strings.Cut(contentType, "/"); ok {
		sub, _, _ = strings.Cut(sub, ";")
		return strings.TrimSpace(sub), 0, 0
	}
	return "bin", 0, 0
}

func extension(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png", "gif", "webp", "pdf":
		return "." + format
	default:
		return ".bin"
	}
}
