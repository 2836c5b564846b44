package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/transport"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/google/uuid"
)

type newReview struct {
	BookID uuid.UUID `json:"book_id"`
	Text   string    `json:"text"`
	Rating int       `json:"rating"`
}

func reviewPath(id uuid.UUID) string {
	return fmt.Sprintf("%s/%s", reviewServicePath, id)
}

func reviewLikesPath(id uuid.UUID) string {
	return fmt.Sprintf("%s/likes/%s", reviewServicePath, id)
}

func (c *HTTPClient) ListReviews(ctx context.Context, bookID uuid.UUID, pageNumber, pageSize int) (*envelope.Envelope[models.ReviewsList], error) {
	path := fmt.Sprintf("%s?page_size=%d&page_number=%d", reviewPath(bookID), pageSize, pageNumber)
	return send[models.ReviewsList](ctx, c, transport.NewRequest(http.MethodGet, path))
}

func (c *HTTPClient) AddReview(ctx context.Context, bookID uuid.UUID, text string, rating int) (*envelope.Envelope[models.Review], error) {
	return sendJSON[models.Review](ctx, c, http.MethodPost, reviewServicePath+"/", newReview{BookID: bookID, Text: text, Rating: rating})
}

// UpdateReview sends only the fields set in patch.
func (c *HTTPClient) UpdateReview(ctx context.Context, id uuid.UUID, patch models.ReviewPatch) (*envelope.Envelope[models.Review], error) {
	return sendJSON[models.Review](ctx, c, http.MethodPost, reviewPath(id), patch)
}

func (c *HTTPClient) DeleteReview(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return send[string](ctx, c, transport.NewRequest(http.MethodDelete, reviewPath(id)))
}

// LikeReview posts with a JSON content type and no body.
func (c *HTTPClient) LikeReview(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	req := transport.NewRequest(http.MethodPost, reviewLikesPath(id))
	req.Header = http.Header{}
	req.Header.Set(common.ContentTypeHeader, common.ContentTypeJSON)
	return send[string](ctx, c, req)
}

func (c *HTTPClient) UnlikeReview(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return send[string](ctx, c, transport.NewRequest(http.MethodDelete, reviewLikesPath(id)))
}
