package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/google/uuid"
)

// CatalogPageSize is how many books a search page holds.
const CatalogPageSize = 10

// CatalogService browses the book catalog. Search starts a new result list
// and More continues the latest one.
type CatalogService interface {
	Search(ctx context.Context, keyWords, genres string) (models.BookSearch, error)
	More(ctx context.Context) (models.BookSearch, error)
	Book(ctx context.Context, id uuid.UUID) (models.Book, error)
	Like(ctx context.Context, id uuid.UUID) (string, error)
	Unlike(ctx context.Context, id uuid.UUID) (string, error)
}

// searchCursor remembers where the latest search stopped.
type searchCursor struct {
	query   client.BookQuery
	hasMore bool
}

type catalogService struct {
	client client.Client

	mu     sync.Mutex
	cursor *searchCursor
}

func NewCatalogService(c client.Client) CatalogService {
	return &catalogService{client: c}
}

func (s *catalogService) Search(ctx context.Context, keyWords, genres string) (models.BookSearch, error) {
	q := client.BookQuery{KeyWords: keyWords, Genres: genres, PageNumber: 1, PageSize: CatalogPageSize}
	return s.fetch(ctx, q)
}

func (s *catalogService) More(ctx context.Context) (models.BookSearch, error) {
	s.mu.Lock()
	cur := s.cursor
	s.mu.Unlock()

	if cur == nil {
		return models.BookSearch{}, ErrNoSearch
	}
	if !cur.hasMore {
		return models.BookSearch{}, ErrNoMorePages
	}
	return s.fetch(ctx, cur.query)
}

// fetch loads one page and moves the cursor to the page after the one the
// server reports.
func (s *catalogService) fetch(ctx context.Context, q client.BookQuery) (models.BookSearch, error) {
	res, err := unwrap(s.client.SearchBooks(ctx, q))
	if err != nil {
		return models.BookSearch{}, err
	}

	next := q
	next.PageNumber = res.NextPageNumber()

	s.mu.Lock()
	s.cursor = &searchCursor{query: next, hasMore: res.HasNext()}
	s.mu.Unlock()

	return res, nil
}

func (s *catalogService) Book(ctx context.Context, id uuid.UUID) (models.Book, error) {
	return bookFrom(s.client.GetBook(ctx, id))
}

func (s *catalogService) Like(ctx context.Context, id uuid.UUID) (string, error) {
	return unwrap(s.client.LikeBook(ctx, id))
}

func (s *catalogService) Unlike(ctx context.Context, id uuid.UUID) (string, error) {
	return unwrap(s.client.UnlikeBook(ctx, id))
}

// bookFrom unwraps a book envelope. A text payload is reported as the
// server's message even under a success status; a missing payload means the
// book does not exist.
func bookFrom(env *envelope.Envelope[models.Book], err error) (models.Book, error) {
	if err != nil {
		return models.Book{}, err
	}
	if env.Local() {
		return models.Book{}, fmt.Errorf("%w: %w", ErrOffline, env.Err())
	}
	if msg, ok := env.Text(); ok {
		return models.Book{}, &envelope.ServerError{Status: env.Status, Message: msg}
	}
	if env.Empty() {
		return models.Book{}, common.ErrNotFound
	}
	return unwrap(env, nil)
}
