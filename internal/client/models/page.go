// Package models holds the records the catalog API returns. The client treats
// them as plain values; their lifecycle is owned by the server.
package models

// Page is the pagination header shared by every list response.
type Page struct {
	TotalCount int `json:"total_count"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// HasNext reports whether a page after this one exists. List endpoints number
// pages from 1.
func (p Page) HasNext() bool {
	return p.PageNumber < p.TotalPages
}

// NextPageNumber is the page_number to send for the following page.
func (p Page) NextPageNumber() int {
	return p.PageNumber + 1
}
