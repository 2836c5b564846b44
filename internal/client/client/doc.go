// Package client contains the resource clients of the bookshelf catalog API.
//
// # Overview
//
// The Client interface lists one method per remote operation: authentication
// (Login, Register), the book catalog (SearchBooks, GetBook, likes, pages),
// reading statuses and reviews. HTTPClient implements it on top of
// transport.Transport.
//
// Every method except Login and Register goes through Transport.Send and so
// gets the silent refresh-and-replay behavior. The envelope the server sent
// is returned without interpretation: a non-success status is not an error at
// this level. Callers check Envelope.Succeeded, Envelope.Text and
// Envelope.Value, or use the services package, which does it for them.
//
// # Errors
//
// Errors are the transport's *transport.Error values (match with errors.Is
// against transport.ErrNoRefreshToken, transport.ErrRefreshFailed,
// transport.ErrNotJSON) plus ErrUnavailable from Ping. A request that fails
// before any response yields the network-failure envelope and a nil error.
//
// # Paths
//
// URL paths and query strings are fixed by the API gateway. Two of them look
// wrong but are what the gateway routes: UpdateUserBookStatus uses
// PUT /books/{id}/like and UpdateReadingEndPage uses POST.
package client
