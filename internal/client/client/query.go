package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
)

const (
	DefaultPageSize   = 20
	DefaultPageNumber = 0
)

// BookQuery selects a page of the catalog. Empty KeyWords and Genres are left
// out of the query string. A zero PageSize means DefaultPageSize.
type BookQuery struct {
	KeyWords   string
	Genres     string
	PageNumber int
	PageSize   int
}

// Encode renders the query in the parameter order the search endpoint
// expects, sorted by rating, best first.
func (q BookQuery) Encode() string {
	var b strings.Builder
	if q.KeyWords != "" {
		fmt.Fprintf(&b, "key=%s&", url.QueryEscape(q.KeyWords))
	}
	if q.Genres != "" {
		fmt.Fprintf(&b, "book_genres=%s&", url.QueryEscape(q.Genres))
	}
	fmt.Fprintf(&b, "page_size=%d&page_number=%d&", pageSizeOr(q.PageSize), q.PageNumber)
	b.WriteString("sort_by=rating&sort_order=desc")
	return b.String()
}

// StatusQuery selects a page of the user's books with one reading status.
type StatusQuery struct {
	Status     models.ReadingStatus
	PageNumber int
	PageSize   int
}

// Encode renders the query newest first.
func (q StatusQuery) Encode() string {
	return fmt.Sprintf("status=%s&page_size=%d&page_number=%d&sort_by=added_date&sort_order=desc",
		url.QueryEscape(string(q.Status)), pageSizeOr(q.PageSize), q.PageNumber)
}

func pageSizeOr(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	return n
}
