package services

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/google/uuid"
)

// ShelfPageSize is how many books a shelf page holds.
const ShelfPageSize = 10

// ShelfService manages the user's reading statuses: one shelf per status.
type ShelfService interface {
	List(ctx context.Context, status models.ReadingStatus, page int) (models.UserBookStatusList, error)
	Add(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (string, error)
	Change(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (string, error)
	Remove(ctx context.Context, id uuid.UUID) (string, error)
	SetEndPage(ctx context.Context, id uuid.UUID, page int) (string, error)
}

type shelfService struct {
	client client.Client
}

func NewShelfService(c client.Client) ShelfService {
	return &shelfService{client: c}
}

func (s *shelfService) List(ctx context.Context, status models.ReadingStatus, page int) (models.UserBookStatusList, error) {
	if page < 1 {
		page = 1
	}
	q := client.StatusQuery{Status: status, PageNumber: page, PageSize: ShelfPageSize}
	return unwrap(s.client.ListUserBookStatuses(ctx, q))
}

func (s *shelfService) Add(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (string, error) {
	return unwrap(s.client.AddUserBookStatus(ctx, id, status))
}

func (s *shelfService) Change(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (string, error) {
	return unwrap(s.client.UpdateUserBookStatus(ctx, id, status))
}

func (s *shelfService) Remove(ctx context.Context, id uuid.UUID) (string, error) {
	return unwrap(s.client.DeleteUserBookStatus(ctx, id))
}

func (s *shelfService) SetEndPage(ctx context.Context, id uuid.UUID, page int) (string, error) {
	if page < 1 {
		return "", ErrPageOutOfRange
	}
	return unwrap(s.client.UpdateReadingEndPage(ctx, id, page))
}
