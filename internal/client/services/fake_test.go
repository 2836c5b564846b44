package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client. Each method returns the preset
// envelope for its operation and records its arguments.
type fakeClient struct {
	CloseErr error
	PingErr  error

	LoginEnv    *envelope.Envelope[models.User]
	LoginErr    error
	RegisterEnv *envelope.Envelope[models.User]
	RegisterErr error

	SearchEnv *envelope.Envelope[models.BookSearch]
	SearchErr error
	BookEnv   *envelope.Envelope[models.Book]
	BookErr   error
	PageRet   *client.PageImage
	PageErr   error

	StatusesEnv *envelope.Envelope[models.UserBookStatusList]
	ReviewsEnv  *envelope.Envelope[models.ReviewsList]
	ReviewEnv   *envelope.Envelope[models.Review]

	// shared by every mutation answering with a text
	TextEnv *envelope.Envelope[string]
	TextErr error

	LastLoginEmail    string
	LastLoginPassword string
	LastRegister      [3]string
	Searches          []client.BookQuery
	LastStatusQuery   client.StatusQuery
	LastReviewsPage   [2]int
	LastPatch         models.ReviewPatch
	LastAddReview     struct {
		Text   string
		Rating int
	}
	LastPage  int
	EndPages  []int
	Mutations []string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error                   { return f.CloseErr }
func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Register(ctx context.Context, username, email, password string) (*envelope.Envelope[models.User], error) {
	f.LastRegister = [3]string{username, email, password}
	return f.RegisterEnv, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*envelope.Envelope[models.User], error) {
	f.LastLoginEmail, f.LastLoginPassword = email, password
	return f.LoginEnv, f.LoginErr
}

func (f *fakeClient) SearchBooks(ctx context.Context, q client.BookQuery) (*envelope.Envelope[models.BookSearch], error) {
	f.Searches = append(f.Searches, q)
	return f.SearchEnv, f.SearchErr
}

func (f *fakeClient) GetBook(ctx context.Context, id uuid.UUID) (*envelope.Envelope[models.Book], error) {
	return f.BookEnv, f.BookErr
}

func (f *fakeClient) LikeBook(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return f.text("like " + id.String())
}

func (f *fakeClient) UnlikeBook(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return f.text("unlike " + id.String())
}

func (f *fakeClient) GetPage(ctx context.Context, id uuid.UUID, page int) (*client.PageImage, error) {
	f.LastPage = page
	return f.PageRet, f.PageErr
}

func (f *fakeClient) ListUserBookStatuses(ctx context.Context, q client.StatusQuery) (*envelope.Envelope[models.UserBookStatusList], error) {
	f.LastStatusQuery = q
	return f.StatusesEnv, nil
}

func (f *fakeClient) AddUserBookStatus(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (*envelope.Envelope[string], error) {
	return f.text("add-status " + string(status))
}

func (f *fakeClient) UpdateUserBookStatus(ctx context.Context, id uuid.UUID, status models.ReadingStatus) (*envelope.Envelope[string], error) {
	return f.text("update-status " + string(status))
}

func (f *fakeClient) DeleteUserBookStatus(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return f.text("delete-status")
}

func (f *fakeClient) UpdateReadingEndPage(ctx context.Context, id uuid.UUID, endPage int) (*envelope.Envelope[string], error) {
	f.EndPages = append(f.EndPages, endPage)
	return f.text("end-page")
}

func (f *fakeClient) ListReviews(ctx context.Context, bookID uuid.UUID, pageNumber, pageSize int) (*envelope.Envelope[models.ReviewsList], error) {
	f.LastReviewsPage = [2]int{pageNumber, pageSize}
	return f.ReviewsEnv, nil
}

func (f *fakeClient) AddReview(ctx context.Context, bookID uuid.UUID, text string, rating int) (*envelope.Envelope[models.Review], error) {
	f.LastAddReview.Text, f.LastAddReview.Rating = text, rating
	return f.ReviewEnv, nil
}

func (f *fakeClient) UpdateReview(ctx context.Context, id uuid.UUID, patch models.ReviewPatch) (*envelope.Envelope[models.Review], error) {
	f.LastPatch = patch
	return f.ReviewEnv, nil
}

func (f *fakeClient) DeleteReview(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return f.text("delete-review")
}

func (f *fakeClient) LikeReview(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return f.text("like-review")
}

func (f *fakeClient) UnlikeReview(ctx context.Context, id uuid.UUID) (*envelope.Envelope[string], error) {
	return f.text("unlike-review")
}

func (f *fakeClient) text(op string) (*envelope.Envelope[string], error) {
	f.Mutations = append(f.Mutations, op)
	if f.TextEnv == nil && f.TextErr == nil {
		return ok(nil, "done"), nil
	}
	return f.TextEnv, f.TextErr
}

// ok builds a successful envelope around v.
func ok[T any](t *testing.T, v T) *envelope.Envelope[T] {
	e, err := envelope.Of("json", v)
	if t != nil {
		require.NoError(t, err)
	}
	return e
}

// failed builds an envelope whose payload is the server's error message.
func failed[T any](t *testing.T, status, msg string) *envelope.Envelope[T] {
	t.Helper()
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	return &envelope.Envelope[T]{Status: status, DataType: "str", Data: data}
}

func offline[T any]() *envelope.Envelope[T] {
	return envelope.Convert[T](envelope.NetworkFailure())
}

// fakeSession implements Session.
type fakeSession struct {
	user     *models.User
	token    string
	clearErr error
	cleared  bool
}

func (s *fakeSession) User() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *fakeSession) AccessToken() string { return s.token }

func (s *fakeSession) Clear(context.Context) error {
	s.cleared = true
	s.user = nil
	s.token = ""
	return s.clearErr
}
