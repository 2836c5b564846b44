package client

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/google/uuid"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username, email, password string) (*envelope.Envelope[models.User], error)
	Login(ctx context.Context, email, password string) (*envelope.Envelope[models.User], error)
	Ping(ctx context.Context) error

	SearchBooks(ctx context.Context, q BookQuery) (*envelope.Envelope[models.BookSearch], error)
	GetBook(ctx context.Context, id uuid.UUID) (*envelope.Envelope[models.Book], error)
	LikeBook(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error)
	UnlikeBook(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error)
	GetPage(ctx context.Context, id uuid.UUID, page int) (*PageImage, error)

	ListUserBookStatuses(ctx context.Context, q StatusQuery) (*envelope.Envelope[models.UserBookStatusList], error)
	AddUserBookStatus(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (*envelope.Envelope[string], error)
	UpdateUserBookStatus(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (*envelope.Envelope[string], error)
	DeleteUserBookStatus(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error)
	UpdateReadingEndPage(ctx context.Context, id uuid.UUID, endPage int) (*envelope.Envelope[string], error)

	ListReviews(ctx context.Context, bookID uuid.UUID, pageNumber, pageSize int) (*envelope.Envelope[models.ReviewsList], error)
	AddReview(ctx context.Context, bookID uuid.UUID, text string, rating int) (*envelope.Envelope[models.Review], error)
	UpdateReview(ctx context.Context, id uuid.UUID, patch models.ReviewPatch) (*envelope.Envelope[models.Review], error)
	DeleteReview(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error)
	LikeReview(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error)
	UnlikeReview(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error)
}
