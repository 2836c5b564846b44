package models

import "github.com/google/uuid"

type Review struct {
	ID          uuid.UUID `json:"id"`
	BookID      uuid.UUID `json:"book_id"`
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name"`
	Text        string    `json:"text"`
	Rating      int       `json:"rating"`
	AddedDate   string    `json:"added_date"`
	IsLikedByMe bool      `json:"is_liked_by_me"`
	LikesCount  int       `json:"likes_count"`
}

type ReviewsList struct {
	Reviews []Review `json:"reviews"`
	Page
}

// ReviewPatch carries the fields of a review update. Nil fields are left out
// of the request body.
type ReviewPatch struct {
	Text   *string `json:"text,omitempty"`
	Rating *int    `json:"rating,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ReviewPatch) Empty() bool {
	return p.Text == nil && p.Rating == nil
}
