package cli

import (
	"bytes"
	"context"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/google/uuid"
)

type recLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recLogger) add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *recLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}

func (l *recLogger) Debug(_ context.Context, msg string, _ ...any) { l.add(msg) }
func (l *recLogger) Info(_ context.Context, msg string, _ ...any)  { l.add(msg) }
func (l *recLogger) Warn(_ context.Context, msg string, _ ...any)  { l.add(msg) }
func (l *recLogger) Error(_ context.Context, msg string, _ ...any) { l.add(msg) }
func (l *recLogger) With(...any) logging.Logger                    { return l }

type fakeAuth struct {
	regUser, regEmail, regPass string
	loginEmail, loginPass      string
	user                       models.User
	err                        error

	lastEmail   string
	logoutCalls int
	identity    services.Identity

	mu      sync.Mutex
	pingErr error
	pings   int
}

func (f *fakeAuth) Register(_ context.Context, username, email string, password []byte) (models.User, error) {
	f.regUser, f.regEmail, f.regPass = username, email, string(password)
	return f.user, f.err
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (models.User, error) {
	f.loginEmail, f.loginPass = email, string(password)
	return f.user, f.err
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	return f.err
}

func (f *fakeAuth) WhoAmI(context.Context) (services.Identity, error) { return f.identity, f.err }
func (f *fakeAuth) LastEmail(context.Context) string                   { return f.lastEmail }
func (f *fakeAuth) Close(context.Context) error                        { return nil }

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

type fakeCatalog struct {
	keyWords, genres string
	search           models.BookSearch
	book             models.Book
	liked, unliked   uuid.UUID
	err              error
}

func (f *fakeCatalog) Search(_ context.Context, keyWords, genres string) (models.BookSearch, error) {
	f.keyWords, f.genres = keyWords, genres
	return f.search, f.err
}
func (f *fakeCatalog) More(context.Context) (models.BookSearch, error) { return f.search, f.err }
func (f *fakeCatalog) Book(context.Context, uuid.UUID) (models.Book, error) {
	return f.book, f.err
}
func (f *fakeCatalog) Like(_ context.Context, id uuid.UUID) (string, error) {
	f.liked = id
	return "", f.err
}
func (f *fakeCatalog) Unlike(_ context.Context, id uuid.UUID) (string, error) {
	f.unliked = id
	return "Like removed successfully", f.err
}

type fakeReviews struct {
	listID   uuid.UUID
	listPage int
	list     models.ReviewsList

	addText   string
	addRating int
	patch     models.ReviewPatch
	review    models.Review
	err       error
}

func (f *fakeReviews) List(_ context.Context, id uuid.UUID, page int) (models.ReviewsList, error) {
	f.listID, f.listPage = id, page
	return f.list, f.err
}
func (f *fakeReviews) Add(_ context.Context, _ uuid.UUID, text string, rating int) (models.Review, error) {
	f.addText, f.addRating = text, rating
	return f.review, f.err
}
func (f *fakeReviews) Update(_ context.Context, _ uuid.UUID, p models.ReviewPatch) (models.Review, error) {
	f.patch = p
	return f.review, f.err
}
func (f *fakeReviews) Delete(context.Context, uuid.UUID) (string, error) { return "deleted", f.err }
func (f *fakeReviews) Like(context.Context, uuid.UUID) (string, error)   { return "", f.err }
func (f *fakeReviews) Unlike(context.Context, uuid.UUID) (string, error) { return "", f.err }

type fakeShelf struct {
	status  models.ReadingStatus
	page    int
	list    models.UserBookStatusList
	endPage int
	err     error
}

func (f *fakeShelf) List(_ context.Context, st models.ReadingStatus, page int) (models.UserBookStatusList, error) {
	f.status, f.page = st, page
	return f.list, f.err
}
func (f *fakeShelf) Add(_ context.Context, _ uuid.UUID, st models.ReadingStatus) (string, error) {
	f.status = st
	return "Status added successfully", f.err
}
func (f *fakeShelf) Change(_ context.Context, _ uuid.UUID, st models.ReadingStatus) (string, error) {
	f.status = st
	return "", f.err
}
func (f *fakeShelf) Remove(context.Context, uuid.UUID) (string, error) { return "", f.err }
func (f *fakeShelf) SetEndPage(_ context.Context, _ uuid.UUID, page int) (string, error) {
	f.endPage = page
	return "", f.err
}

type fakeReader struct {
	page int
	view *services.PageView

	savedID   uuid.UUID
	saved     []models.SavedPage
	forgotten uuid.UUID
	err       error
}

func (f *fakeReader) Open(_ context.Context, _ uuid.UUID, page int) (*services.PageView, error) {
	f.page = page
	return f.view, f.err
}

func (f *fakeReader) Saved(_ context.Context, id uuid.UUID) ([]models.SavedPage, error) {
	f.savedID = id
	return f.saved, f.err
}

func (f *fakeReader) Forget(_ context.Context, id uuid.UUID) (int64, error) {
	f.forgotten = id
	return 3, f.err
}

type testApp struct {
	*App
	auth    *fakeAuth
	catalog *fakeCatalog
	reviews *fakeReviews
	shelf   *fakeShelf
	reader  *fakeReader
	log     *recLogger
	out     *bytes.Buffer
}

// newTestApp wires fakes into an App; input feeds the interactive prompts.
func newTestApp(input string) *testApp {
	ta := &testApp{
		auth:    &fakeAuth{},
		catalog: &fakeCatalog{},
		reviews: &fakeReviews{},
		shelf:   &fakeShelf{},
		reader:  &fakeReader{},
		log:     &recLogger{},
		out:     &bytes.Buffer{},
	}
	ta.App = &App{
		auth:    ta.auth,
		catalog: ta.catalog,
		reviews: ta.reviews,
		shelf:   ta.shelf,
		pages:   ta.reader,
		log:     ta.log,
		in:      rdr(input),
		out:     ta.out,
	}
	return ta
}
