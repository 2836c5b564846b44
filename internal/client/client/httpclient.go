package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/transport"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

const (
	userServicePath   = "/api/user-service"
	bookServicePath   = "/api/book-service/books"
	reviewServicePath = "/api/review-service/reviews"
)

// Session receives the credentials of a successful login or register.
type Session interface {
	SaveLogin(ctx context.Context, login models.UserLogin) error
}

// HTTPClient implements Client over the catalog's HTTP/JSON API.
type HTTPClient struct {
	tr   *transport.Transport
	sess Session
	log  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(tr *transport.Transport, sess Session, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &HTTPClient{tr: tr, sess: sess, log: log.With("component", "client")}
}

// send runs req through the refreshing transport and types the envelope.
func send[T any](ctx context.Context, c *HTTPClient, req transport.Request) (*envelope.Envelope[T], error) {
	env, err := c.tr.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return envelope.Convert[T](env), nil
}

func sendJSON[T any](ctx context.Context, c *HTTPClient, method, path string, body any) (*envelope.Envelope[T], error) {
	req, err := transport.NewJSONRequest(method, path, body)
	if err != nil {
		return nil, err
	}
	return send[T](ctx, c, req)
}

func (c *HTTPClient) Close() error {
	c.tr.Close()
	return nil
}

// Ping reports whether the API answers. Any JSON envelope from the server
// counts, whatever its status.
func (c *HTTPClient) Ping(ctx context.Context) error {
	q := BookQuery{PageSize: 1}
	env, err := c.tr.Send(ctx, transport.NewRequest(http.MethodGet, bookServicePath+"/search?"+q.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if env.Local() {
		return ErrUnavailable
	}
	return nil
}
