// Package cli provides the interactive bookshelf shell.
//
// The shell drives the catalog services: search and browse books, read
// pages, manage reviews and keep books on reading shelves. Browsing works
// without an account; shelves, likes and reviews need a login.
//
// Key features:
//   - Register / Login / Logout, with the last email offered as the default
//   - Search with paging, book details, likes
//   - Page download with reading progress
//   - Reviews and reading shelves
//
// A background watcher pings the server and switches the prompt between
// online and offline mode. The REPL is started via App.Run(ctx), which
// blocks until the user exits. See runREPL for command dispatch.
package cli
