package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error

	Search(ctx context.Context, args []string) error
	More(ctx context.Context, args []string) error
	Book(ctx context.Context, args []string) error
	Like(ctx context.Context, args []string) error
	Unlike(ctx context.Context, args []string) error
	Read(ctx context.Context, args []string) error
	Saved(ctx context.Context, args []string) error
	Forget(ctx context.Context, args []string) error

	Reviews(ctx context.Context, args []string) error
	AddReview(ctx context.Context, args []string) error
	EditReview(ctx context.Context, args []string) error
	DeleteReview(ctx context.Context, args []string) error
	LikeReview(ctx context.Context, args []string) error
	UnlikeReview(ctx context.Context, args []string) error

	Shelf(ctx context.Context, args []string) error
	Shelve(ctx context.Context, args []string) error
	Restatus(ctx context.Context, args []string) error
	Unshelve(ctx context.Context, args []string) error
	Progress(ctx context.Context, args []string) error
}

type handler func(execIface, context.Context, []string) error

type command struct {
	run  handler
	auth bool
}

var commands = map[string]command{
	"register": {run: execIface.Register},
	"login":    {run: execIface.Login},
	"logout":   {run: execIface.Logout, auth: true},
	"whoami":   {run: execIface.WhoAmI, auth: true},

	"search": {run: execIface.Search},
	"s":      {run: execIface.Search},
	"more":   {run: execIface.More},
	"m":      {run: execIface.More},
	"book":   {run: execIface.Book},
	"read":   {run: execIface.Read},
	"saved":  {run: execIface.Saved},
	"forget": {run: execIface.Forget},
	"like":   {run: execIface.Like, auth: true},
	"unlike": {run: execIface.Unlike, auth: true},

	"reviews":      {run: execIface.Reviews},
	"review":       {run: execIface.AddReview, auth: true},
	"editreview":   {run: execIface.EditReview, auth: true},
	"delreview":    {run: execIface.DeleteReview, auth: true},
	"likereview":   {run: execIface.LikeReview, auth: true},
	"unlikereview": {run: execIface.UnlikeReview, auth: true},

	"shelf":    {run: execIface.Shelf, auth: true},
	"shelve":   {run: execIface.Shelve, auth: true},
	"restatus": {run: execIface.Restatus, auth: true},
	"unshelve": {run: execIface.Unshelve, auth: true},
	"progress": {run: execIface.Progress, auth: true},
}

const (
	guestHelp = `Available commands:
  search [words] [| genres]   search the catalog (alias: s)
  more                        next page of the last search (alias: m)
  book <id>                   show a book
  read <id> [page]            download a page
  saved [id]                  list pages kept on disk
  forget <id>                 delete a book's saved pages
  reviews <id> [page]         list a book's reviews
  register, login, exit`

	userHelp = `Available commands:
  search [words] [| genres]   search the catalog (alias: s)
  more                        next page of the last search (alias: m)
  book <id>                   show a book
  read <id> [page]            download a page and record progress
  saved [id]                  list pages kept on disk
  forget <id>                 delete a book's saved pages
  like <id>, unlike <id>      like or unlike a book
  reviews <id> [page]         list a book's reviews
  review <book-id>            write a review
  editreview <id>             change your review
  delreview <id>              delete your review
  likereview <id>, unlikereview <id>
  shelf <status> [page]       list a shelf (LIKED, READING, READ, DROP)
  shelve <id> <status>        put a book on a shelf
  restatus <id> <status>      move a book to another shelf
  unshelve <id>               take a book off your shelves
  progress <id> <page>        set the last page read
  whoami, logout, exit`
)

// runREPL starts a read–eval–print loop for the bookshelf shell.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Commands that need an account are refused until the user logs in.
// Handler errors are printed and the loop continues. The loop exits on EOF
// or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bookshelf %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "h":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if c.auth && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if err := c.run(a, ctx, args); err != nil {
			printlnFn(errorText(err))
		}
	}
}
