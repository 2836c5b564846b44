package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/transport"
	"github.com/google/uuid"
)

func bookPath(id uuid.UUID, suffix string) string {
	return fmt.Sprintf("%s/%s%s", bookServicePath, id, suffix)
}

func (c *HTTPClient) SearchBooks(ctx context.Context, q BookQuery) (*envelope.Envelope[models.BookSearch], error) {
	return send[models.BookSearch](ctx, c, transport.NewRequest(http.MethodGet, bookServicePath+"/search?"+q.Encode()))
}

func (c *HTTPClient) GetBook(ctx context.Context, id uuid.UUID) (*envelope.Envelope[models.Book], error) {
	return send[models.Book](ctx, c, transport.NewRequest(http.MethodGet, bookPath(id, "")))
}

func (c *HTTPClient) LikeBook(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return sendJSON[string](ctx, c, http.MethodPost, bookPath(id, "/likes"), map[string]string{"bookId": id.String()})
}

func (c *HTTPClient) UnlikeBook(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return send[string](ctx, c, transport.NewRequest(http.MethodDelete, bookPath(id, "/likes")))
}

// PageImage is the content of one book page. The book service answers either
// with the bytes themselves or with a JSON document carrying them base64
// encoded; both end up here.
type PageImage struct {
	Data        []byte
	ContentType string
	PageNumber  int
	TotalPages  int
}

type pageDocument struct {
	BookID     string `json:"book_id"`
	PageNumber int    `json:"page_number"`
	TotalPages int    `json:"total_pages"`
	Content    string `json:"content"`
}

// GetPage downloads page n of a book. Unlike the envelope methods, a request
// that fails before a response is returned as an error.
func (c *HTTPClient) GetPage(ctx context.Context, id uuid.UUID, n int) (*PageImage, error) {
	res, err := c.tr.Fetch(ctx, transport.NewRequest(http.MethodGet, bookPath(id, fmt.Sprintf("/page/%d", n))))
	if err != nil {
		return nil, err
	}

	if !res.OK() {
		if res.IsJSON() {
			if env, derr := envelope.Decode(res.Body); derr == nil && env.Status != "" {
				return nil, env.Err()
			}
		}
		return nil, fmt.Errorf("get page %d of %s: http status %d", n, id, res.StatusCode)
	}

	if !res.IsJSON() {
		return &PageImage{Data: res.Body, ContentType: res.ContentType, PageNumber: n}, nil
	}

	doc, err := decodePageDocument(res.Body)
	if err != nil {
		return nil, err
	}
	if doc.PageNumber == 0 {
		doc.PageNumber = n
	}
	data, err := base64.StdEncoding.DecodeString(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: page content: %w", ErrUnexpectedPayload, err)
	}
	return &PageImage{
		Data:        data,
		ContentType: http.DetectContentType(data),
		PageNumber:  doc.PageNumber,
		TotalPages:  doc.TotalPages,
	}, nil
}

// decodePageDocument accepts the page document bare or wrapped in an
// envelope.
func decodePageDocument(body []byte) (pageDocument, error) {
	var doc pageDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return doc, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}
	if doc.Content != "" {
		return doc, nil
	}

	env, err := envelope.Decode(body)
	if err != nil || env.Status == "" {
		return doc, fmt.Errorf("%w: page has no content", ErrUnexpectedPayload)
	}
	if err := env.Err(); err != nil {
		return doc, err
	}
	wrapped, err := envelope.Convert[pageDocument](env).Value()
	if err != nil {
		return doc, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}
	if wrapped.Content == "" {
		return doc, fmt.Errorf("%w: page has no content", ErrUnexpectedPayload)
	}
	return wrapped, nil
}
