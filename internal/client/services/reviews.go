package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/google/uuid"
)

// ReviewPageSize is how many reviews a page holds.
const ReviewPageSize = 10

const (
	minRating = 0
	maxRating = 5
)

type ReviewService interface {
	List(ctx context.Context, bookID uuid.UUID, page int) (models.ReviewsList, error)
	Add(ctx context.Context, bookID uuid.UUID, text string, rating int) (models.Review, error)
	Update(ctx context.Context, id uuid.UUID, patch models.ReviewPatch) (models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) (string, error)
	Like(ctx context.Context, id uuid.UUID) (string, error)
	Unlike(ctx context.Context, id uuid.UUID) (string, error)
}

type reviewService struct {
	client client.Client
}

func NewReviewService(c client.Client) ReviewService {
	return &reviewService{client: c}
}

// List returns one page of a book's reviews. Pages start at 1; lower values
// are treated as 1.
func (s *reviewService) List(ctx context.Context, bookID uuid.UUID, page int) (models.ReviewsList, error) {
	if page < 1 {
		page = 1
	}
	return unwrap(s.client.ListReviews(ctx, bookID, page, ReviewPageSize))
}

func (s *reviewService) Add(ctx context.Context, bookID uuid.UUID, text string, rating int) (models.Review, error) {
	if err := checkRating(rating); err != nil {
		return models.Review{}, err
	}
	return unwrap(s.client.AddReview(ctx, bookID, strings.TrimSpace(text), rating))
}

func (s *reviewService) Update(ctx context.Context, id uuid.UUID, patch models.ReviewPatch) (models.Review, error) {
	if patch.Text != nil && strings.TrimSpace(*patch.Text) == "" {
		patch.Text = nil
	}
	if patch.Empty() {
		return models.Review{}, ErrEmptyPatch
	}
	if patch.Rating != nil {
		if err := checkRating(*patch.Rating); err != nil {
			return models.Review{}, err
		}
	}
	return unwrap(s.client.UpdateReview(ctx, id, patch))
}

func (s *reviewService) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	return unwrap(s.client.DeleteReview(ctx, id))
}

func (s *reviewService) Like(ctx context.Context, id uuid.UUID) (string, error) {
	return unwrap(s.client.LikeReview(ctx, id))
}

func (s *reviewService) Unlike(ctx context.Context, id uuid.UUID) (string, error) {
	return unwrap(s.client.UnlikeReview(ctx, id))
}

func checkRating(r int) error {
	if r < minRating || r > maxRating {
		return common.ErrInvalidRating
	}
	return nil
}
