package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/transport"
	"github.com/google/uuid"
)

type statusBody struct {
	Status models.ReadingStatus `json:"status"`
}

func (c *HTTPClient) ListUserBookStatuses(ctx context.Context, q StatusQuery) (*envelope.Envelope[models.UserBookStatusList], error) {
	return send[models.UserBookStatusList](ctx, c, transport.NewRequest(http.MethodGet, bookServicePath+"/user-status?"+q.Encode()))
}

func (c *HTTPClient) AddUserBookStatus(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (*envelope.Envelope[string], error) {
	return sendJSON[string](ctx, c, http.MethodPost, bookPath(id, "/user-status"), statusBody{Status: status})
}

func (c *HTTPClient) UpdateUserBookStatus(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (*envelope.Envelope[string], error) {
	return sendJSON[string](ctx, c, http.MethodPut, bookPath(id, "/like"), statusBody{Status: status})
}

func (c *HTTPClient) DeleteUserBookStatus(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return send[string](ctx, c, transport.NewRequest(http.MethodDelete, bookPath(id, "/user-status")))
}

func (c *HTTPClient) UpdateReadingEndPage(ctx context.Context, id uuid.UUID, endPage int) (*envelope.Envelope[string], error) {
	return sendJSON[string](ctx, c, http.MethodPost, bookPath(id, "/user-status/end-page"), map[string]int{"end_page": endPage})
}
