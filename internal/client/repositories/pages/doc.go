// Package pages indexes the book pages saved to local disk so they can be
// listed and opened again while the server is unreachable.
package pages
