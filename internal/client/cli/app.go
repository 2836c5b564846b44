package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/config"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// Services bundles the use cases the shell drives.
type Services struct {
	Auth    services.AuthService
	Catalog services.CatalogService
	Reviews services.ReviewService
	Shelf   services.ShelfService
	Reader  services.ReaderService
}

type App struct {
	config  *config.Config
	auth    services.AuthService
	catalog services.CatalogService
	reviews services.ReviewService
	shelf   services.ShelfService
	pages   services.ReaderService
	log     logging.Logger

	mu       sync.RWMutex
	mode     Mode
	userName string

	in  *bufio.Reader
	out io.Writer
}

// NewApp builds a shell reading commands from stdin and printing to stdout.
func NewApp(c *config.Config, svc Services, log logging.Logger) *App {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &App{
		config:  c,
		auth:    svc.Auth,
		catalog: svc.Catalog,
		reviews: svc.Reviews,
		shelf:   svc.Shelf,
		pages:   svc.Reader,
		log:     log,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userName != ""
}

// getStatus renders the prompt suffix: the signed-in user and the mode.
func (a *App) getStatus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.auth.Close(ctx); err != nil {
			a.log.Warn(ctx, "close client", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to Bookshelf (type 'help' for commands)")
	a.checkOnline(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.in)
}

// checkOnline pings the server once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.auth.Ping(ctx); err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
