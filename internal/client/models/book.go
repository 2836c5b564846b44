package models

import "github.com/google/uuid"

type Author struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Rating       float64   `json:"rating"`
	CommonGenres []string  `json:"common_genres"`
	BooksCount   int       `json:"books_count"`
	ReviewsCount int       `json:"reviews_count"`
	LikesCount   int       `json:"likes_count"`
	Status       string    `json:"status"`
}

type Book struct {
	ID           uuid.UUID `json:"id"`
	AuthorID     uuid.UUID `json:"author_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	FilePath     string    `json:"file_path"`
	CoverPath    string    `json:"cover_path"`
	Genres       []string  `json:"genres"`
	AddedDate    string    `json:"added_date"`
	Status       string    `json:"status"`
	TotalRating  float64   `json:"total_rating"`
	LikesCount   int       `json:"likes_count"`
	PagesCount   int       `json:"pages_count"`
	ReviewsCount int       `json:"reviews_count"`
	IsLikedByMe  *bool     `json:"is_liked_by_me,omitempty"`
	Author       *Author   `json:"author,omitempty"`
}

// BookSearch is one page of catalog search results.
type BookSearch struct {
	Books []Book `json:"books"`
	Page
}

type BookStatusUpdate struct {
	ID        string `json:"id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Message   string `json:"message"`
}
